package job_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/job"
	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

type fakeRepository struct {
	jobs   map[uint]*job.Job
	nextID uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{jobs: make(map[uint]*job.Job), nextID: 1}
}

func (f *fakeRepository) Create(_ context.Context, posting *job.Job) (*job.Job, error) {
	stored := *posting
	stored.ID = f.nextID
	f.nextID++
	f.jobs[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id uint) (*job.Job, error) {
	posting, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	copied := *posting
	return &copied, nil
}

func (f *fakeRepository) List(_ context.Context, filter job.Filter) ([]*job.Job, error) {
	var out []*job.Job
	for _, posting := range f.jobs {
		if filter.Type != nil && posting.Type != *filter.Type {
			continue
		}
		if filter.Location != nil &&
			!strings.Contains(strings.ToLower(posting.Location), strings.ToLower(*filter.Location)) {
			continue
		}
		copied := *posting
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeRepository) Update(_ context.Context, posting *job.Job) (*job.Job, error) {
	stored := *posting
	f.jobs[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeRepository) Delete(_ context.Context, id uint) error {
	delete(f.jobs, id)
	return nil
}

func newService() (*job.Service, *fakeRepository) {
	repo := newFakeRepository()
	return job.NewService(repo, zerolog.Nop()), repo
}

func TestCreate_DefaultsTypeToFullTime(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Create(context.Background(), &job.Job{
		Title:    "Backend Intern",
		Company:  "Acme",
		PostedBy: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, job.TypeFullTime, created.Type)
}

func TestCreate_RequiresTitleAndCompany(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), &job.Job{Title: "x"})
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
}

func TestList_FiltersByTypeAndLocation(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &job.Job{Title: "A", Company: "Acme", Type: job.TypeInternship, Location: "Greater Noida", PostedBy: 1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &job.Job{Title: "B", Company: "Acme", Type: job.TypeFullTime, Location: "Remote", PostedBy: 1})
	require.NoError(t, err)

	internship := job.TypeInternship
	jobs, err := svc.List(ctx, job.Filter{Type: &internship})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "A", jobs[0].Title)

	location := "noida"
	jobs, err = svc.List(ctx, job.Filter{Location: &location})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "A", jobs[0].Title)
}

func TestUpdate_OnlyPoster(t *testing.T) {
	svc, _ := newService()
	created, err := svc.Create(context.Background(), &job.Job{Title: "A", Company: "Acme", PostedBy: 1})
	require.NoError(t, err)

	created.Title = "Renamed"
	_, err = svc.Update(context.Background(), 2, created)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeForbidden))
}

func TestUpdate_CannotReassignPoster(t *testing.T) {
	svc, repo := newService()
	created, err := svc.Create(context.Background(), &job.Job{Title: "A", Company: "Acme", PostedBy: 1})
	require.NoError(t, err)

	created.PostedBy = 99
	updated, err := svc.Update(context.Background(), 1, created)
	require.NoError(t, err)
	assert.Equal(t, uint(1), updated.PostedBy)
	assert.Equal(t, uint(1), repo.jobs[created.ID].PostedBy)
}

func TestDelete_UnknownJobIsNotFound(t *testing.T) {
	svc, _ := newService()

	err := svc.Delete(context.Background(), 1, 404)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}
