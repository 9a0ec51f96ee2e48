package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/event"
	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

// fakeRepository enforces the (event, user) unique constraint the way the
// real store does.
type fakeRepository struct {
	events        map[uint]*event.Event
	registrations []*event.Registration
	nextID        uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{events: make(map[uint]*event.Event), nextID: 1}
}

func (f *fakeRepository) Create(_ context.Context, evt *event.Event) (*event.Event, error) {
	stored := *evt
	stored.ID = f.nextID
	f.nextID++
	f.events[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id uint) (*event.Event, error) {
	evt, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	copied := *evt
	return &copied, nil
}

func (f *fakeRepository) List(_ context.Context) ([]*event.Event, error) {
	out := make([]*event.Event, 0, len(f.events))
	for _, evt := range f.events {
		copied := *evt
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeRepository) Update(_ context.Context, evt *event.Event) (*event.Event, error) {
	stored := *evt
	f.events[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeRepository) Delete(_ context.Context, id uint) error {
	delete(f.events, id)
	return nil
}

func (f *fakeRepository) CreateRegistration(ctx context.Context, reg *event.Registration) (*event.Registration, error) {
	for _, existing := range f.registrations {
		if existing.EventID == reg.EventID && existing.UserID == reg.UserID {
			return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeConflict,
				"registration already exists", nil,
				"e2b0f7d4-3a51-4d89-bd6c-9f0a2c4e6810")
		}
	}
	stored := *reg
	stored.ID = f.nextID
	f.nextID++
	f.registrations = append(f.registrations, &stored)
	copied := stored
	return &copied, nil
}

func (f *fakeRepository) DeleteRegistration(_ context.Context, eventID, userID uint) (bool, error) {
	for i, existing := range f.registrations {
		if existing.EventID == eventID && existing.UserID == userID {
			f.registrations = append(f.registrations[:i], f.registrations[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) ListRegistrations(_ context.Context, eventID uint) ([]*event.Registration, error) {
	var out []*event.Registration
	for _, reg := range f.registrations {
		if reg.EventID == eventID {
			copied := *reg
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakeBroadcaster records emitted notifications in order.
type fakeBroadcaster struct {
	events []string
}

func (f *fakeBroadcaster) Broadcast(name string, _ interface{}) {
	f.events = append(f.events, name)
}

func newService() (*event.Service, *fakeRepository, *fakeBroadcaster) {
	repo := newFakeRepository()
	bc := &fakeBroadcaster{}
	return event.NewService(repo, bc, zerolog.Nop()), repo, bc
}

func validEvent(organizerID uint) *event.Event {
	return &event.Event{
		Title:       "Tech Talk",
		Location:    "Auditorium",
		StartsAt:    time.Now().Add(24 * time.Hour),
		OrganizerID: organizerID,
	}
}

func TestCreate_BroadcastsAfterStore(t *testing.T) {
	svc, repo, bc := newService()

	created, err := svc.Create(context.Background(), validEvent(1))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Len(t, repo.events, 1)
	assert.Equal(t, []string{event.BroadcastNew}, bc.events)
}

func TestCreate_RejectsMissingTitle(t *testing.T) {
	svc, _, bc := newService()

	evt := validEvent(1)
	evt.Title = " "
	_, err := svc.Create(context.Background(), evt)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
	assert.Empty(t, bc.events)
}

func TestUpdate_OnlyOrganizer(t *testing.T) {
	svc, _, bc := newService()
	created, err := svc.Create(context.Background(), validEvent(1))
	require.NoError(t, err)
	bc.events = nil

	created.Title = "Renamed"
	_, err = svc.Update(context.Background(), 2, created)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeForbidden))
	assert.Empty(t, bc.events)
}

func TestRegister_SecondAttemptConflicts(t *testing.T) {
	svc, _, bc := newService()
	created, err := svc.Create(context.Background(), validEvent(1))
	require.NoError(t, err)
	bc.events = nil

	_, err = svc.Register(context.Background(), created.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{event.BroadcastRegister}, bc.events)

	_, err = svc.Register(context.Background(), created.ID, 7)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConflict))
	// No broadcast for the failed attempt.
	assert.Equal(t, []string{event.BroadcastRegister}, bc.events)

	regs, err := svc.ListRegistrations(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, regs, 1)
}

func TestRegister_UnknownEventIsNotFound(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Register(context.Background(), 404, 7)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestUnregister_ThenRegisterAgain(t *testing.T) {
	svc, _, _ := newService()
	created, err := svc.Create(context.Background(), validEvent(1))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), created.ID, 7)
	require.NoError(t, err)
	require.NoError(t, svc.Unregister(context.Background(), created.ID, 7))

	// The constraint is per current state, not history.
	_, err = svc.Register(context.Background(), created.ID, 7)
	require.NoError(t, err)
}

func TestUnregister_WithoutRegistrationIsNotFound(t *testing.T) {
	svc, _, bc := newService()
	created, err := svc.Create(context.Background(), validEvent(1))
	require.NoError(t, err)
	bc.events = nil

	err = svc.Unregister(context.Background(), created.ID, 7)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	assert.Empty(t, bc.events)
}

func TestDelete_OnlyOrganizer(t *testing.T) {
	svc, repo, _ := newService()
	created, err := svc.Create(context.Background(), validEvent(1))
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 2, created.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeForbidden))

	require.NoError(t, svc.Delete(context.Background(), 1, created.ID))
	assert.Empty(t, repo.events)
}
