package user_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/user"
	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

type fakeRepository struct {
	users  map[uint]*user.User
	nextID uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[uint]*user.User), nextID: 1}
}

func (f *fakeRepository) Create(_ context.Context, usr *user.User) (*user.User, error) {
	stored := *usr
	stored.ID = f.nextID
	f.nextID++
	f.users[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id uint) (*user.User, error) {
	usr, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *usr
	return &copied, nil
}

func (f *fakeRepository) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, usr := range f.users {
		if usr.Email == email {
			copied := *usr
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) List(_ context.Context, exceptID uint) ([]*user.User, error) {
	var out []*user.User
	for _, usr := range f.users {
		if usr.ID == exceptID {
			continue
		}
		copied := *usr
		out = append(out, &copied)
	}
	return out, nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(userID uint, _, _ string) (string, error) {
	return "token-" + strconv.FormatUint(uint64(userID), 10), nil
}

func newService() *user.Service {
	return user.NewService(newFakeRepository(), fakeIssuer{}, zerolog.Nop())
}

func TestRegister_ReturnsTokenAndHashesPassword(t *testing.T) {
	repo := newFakeRepository()
	svc := user.NewService(repo, fakeIssuer{}, zerolog.Nop())

	created, token, err := svc.Register(context.Background(), "Aarav", "Aarav@Example.edu", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
	assert.Equal(t, "aarav@example.edu", created.Email)
	assert.NotEqual(t, "secret1", repo.users[created.ID].PasswordHash)
	assert.NotEmpty(t, repo.users[created.ID].PasswordHash)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	svc := newService()

	_, _, err := svc.Register(context.Background(), "One", "dup@example.edu", "secret1")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "Two", "dup@example.edu", "secret2")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConflict))
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	svc := newService()

	_, _, err := svc.Register(context.Background(), "One", "short@example.edu", "12345")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
}

func TestLogin_RoundTrip(t *testing.T) {
	svc := newService()

	_, _, err := svc.Register(context.Background(), "One", "login@example.edu", "secret1")
	require.NoError(t, err)

	usr, token, err := svc.Login(context.Background(), "login@example.edu", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "login@example.edu", usr.Email)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc := newService()

	_, _, err := svc.Register(context.Background(), "One", "real@example.edu", "secret1")
	require.NoError(t, err)

	_, _, wrongPass := svc.Login(context.Background(), "real@example.edu", "nope")
	_, _, unknown := svc.Login(context.Background(), "ghost@example.edu", "nope")

	require.Error(t, wrongPass)
	require.Error(t, unknown)
	assert.True(t, apperrors.IsErrorType(wrongPass, apperrors.ErrorTypeUnauthenticated))
	assert.True(t, apperrors.IsErrorType(unknown, apperrors.ErrorTypeUnauthenticated))
	assert.Equal(t, wrongPass.Error(), unknown.Error())
}

func TestList_ExcludesCaller(t *testing.T) {
	repo := newFakeRepository()
	svc := user.NewService(repo, fakeIssuer{}, zerolog.Nop())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "One", "one@example.edu", "secret1")
	require.NoError(t, err)
	_, _, err = svc.Register(ctx, "Two", "two@example.edu", "secret1")
	require.NoError(t, err)

	users, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, uint(2), users[0].ID)
}
