package message_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/message"
	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

// fakeRepository is an in-memory message.Repository backed by slices.
type fakeRepository struct {
	messages  []*message.Message
	anonymous []*message.AnonymousMessage
	nextID    uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1}
}

func (f *fakeRepository) Create(_ context.Context, msg *message.Message) (*message.Message, error) {
	stored := *msg
	stored.ID = f.nextID
	f.nextID++
	if stored.Timestamp.IsZero() {
		stored.Timestamp = time.Now().UTC()
	}
	f.messages = append(f.messages, &stored)
	return &stored, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id uint) (*message.Message, error) {
	for _, msg := range f.messages {
		if msg.ID == id {
			copied := *msg
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) HistoryBetween(_ context.Context, userA, userB uint) ([]*message.Message, error) {
	var out []*message.Message
	for _, msg := range f.messages {
		if (msg.SenderID == userA && msg.ReceiverID == userB) ||
			(msg.SenderID == userB && msg.ReceiverID == userA) {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (f *fakeRepository) AllInvolving(_ context.Context, userID uint) ([]*message.Message, error) {
	var out []*message.Message
	for _, msg := range f.messages {
		if msg.SenderID == userID || msg.ReceiverID == userID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (f *fakeRepository) SetSeen(_ context.Context, id uint) (*message.Message, error) {
	for _, msg := range f.messages {
		if msg.ID == id {
			msg.Seen = true
			copied := *msg
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) CreateAnonymous(_ context.Context, msg *message.AnonymousMessage) (*message.AnonymousMessage, error) {
	stored := *msg
	stored.ID = f.nextID
	f.nextID++
	stored.Timestamp = time.Now().UTC()
	f.anonymous = append(f.anonymous, &stored)
	return &stored, nil
}

func (f *fakeRepository) ListAnonymous(_ context.Context, limit int) ([]*message.AnonymousMessage, error) {
	if limit > len(f.anonymous) {
		limit = len(f.anonymous)
	}
	return f.anonymous[len(f.anonymous)-limit:], nil
}

type fakeDirectory struct{}

func (fakeDirectory) FindByID(_ context.Context, id uint) (*message.User, error) {
	return &message.User{ID: id, Name: "user", Email: "user@example.edu"}, nil
}

func newService(repo message.Repository) *message.Service {
	return message.NewService(repo, fakeDirectory{}, zerolog.Nop())
}

func TestSend_PersistsSingleRow(t *testing.T) {
	repo := newFakeRepository()
	svc := newService(repo)

	msg, err := svc.Send(context.Background(), 1, 2, "hello", false)
	require.NoError(t, err)
	assert.Equal(t, uint(1), msg.ID)
	assert.Len(t, repo.messages, 1)
	assert.False(t, msg.Seen)
}

func TestSend_IdenticalContentCreatesDistinctRows(t *testing.T) {
	repo := newFakeRepository()
	svc := newService(repo)

	first, err := svc.Send(context.Background(), 1, 2, "same", false)
	require.NoError(t, err)
	second, err := svc.Send(context.Background(), 1, 2, "same", false)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, repo.messages, 2)
}

func TestSend_RejectsEmptyContent(t *testing.T) {
	svc := newService(newFakeRepository())

	_, err := svc.Send(context.Background(), 1, 2, "   ", false)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
}

func TestSend_RejectsSelfMessage(t *testing.T) {
	svc := newService(newFakeRepository())

	_, err := svc.Send(context.Background(), 1, 1, "hi me", false)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
}

func TestHistory_RequiresParticipant(t *testing.T) {
	svc := newService(newFakeRepository())

	_, err := svc.History(context.Background(), 99, 1, 2)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeForbidden))
}

func TestHistory_VisibleToReceiverAfterSend(t *testing.T) {
	repo := newFakeRepository()
	svc := newService(repo)

	_, err := svc.Send(context.Background(), 1, 2, "while you were away", false)
	require.NoError(t, err)

	history, err := svc.History(context.Background(), 2, 2, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "while you were away", history[0].Content)
}

func TestMarkSeen_IsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	svc := newService(repo)

	msg, err := svc.Send(context.Background(), 1, 2, "read me", false)
	require.NoError(t, err)

	first, err := svc.MarkSeen(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.True(t, first.Seen)

	second, err := svc.MarkSeen(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.True(t, second.Seen)
}

func TestMarkSeen_UnknownIDIsNotFound(t *testing.T) {
	svc := newService(newFakeRepository())

	_, err := svc.MarkSeen(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestListConversations_CountsUnreadForReceiverOnly(t *testing.T) {
	repo := newFakeRepository()
	svc := newService(repo)
	ctx := context.Background()

	// Two unseen to user 1, one unseen from user 1. Only the incoming two
	// count toward user 1's unread.
	_, err := svc.Send(ctx, 2, 1, "one", false)
	require.NoError(t, err)
	_, err = svc.Send(ctx, 2, 1, "two", false)
	require.NoError(t, err)
	_, err = svc.Send(ctx, 1, 2, "reply", false)
	require.NoError(t, err)

	summaries, err := svc.ListConversations(ctx, 1)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, uint(2), summaries[0].UserID)
	assert.Equal(t, 2, summaries[0].UnreadCount)
	assert.Equal(t, "reply", summaries[0].LastMessage)
}

func TestSendAnonymous_DefaultsGuestID(t *testing.T) {
	repo := newFakeRepository()
	svc := newService(repo)

	msg, err := svc.SendAnonymous(context.Background(), "", "who said that")
	require.NoError(t, err)
	assert.Equal(t, "guest", msg.GuestID)
}
