package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/user"
	"github.com/mb-aarfi/glbconnect-sub000/internal/interfaces/httpserver/handlers"
	"github.com/mb-aarfi/glbconnect-sub000/internal/interfaces/httpserver/responses"
	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

type memoryUserRepo struct {
	users  map[uint]*user.User
	nextID uint
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uint]*user.User), nextID: 1}
}

func (m *memoryUserRepo) Create(_ context.Context, usr *user.User) (*user.User, error) {
	stored := *usr
	stored.ID = m.nextID
	m.nextID++
	m.users[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (m *memoryUserRepo) FindByID(_ context.Context, id uint) (*user.User, error) {
	usr, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *usr
	return &copied, nil
}

func (m *memoryUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, usr := range m.users {
		if usr.Email == email {
			copied := *usr
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memoryUserRepo) List(_ context.Context, exceptID uint) ([]*user.User, error) {
	var out []*user.User
	for _, usr := range m.users {
		if usr.ID != exceptID {
			copied := *usr
			out = append(out, &copied)
		}
	}
	return out, nil
}

type staticIssuer struct{}

func (staticIssuer) Issue(uint, string, string) (string, error) { return "test-token", nil }

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := user.NewService(newMemoryUserRepo(), staticIssuer{}, zerolog.Nop())
	handler := handlers.NewUserHandler(svc, zerolog.Nop())

	router := gin.New()
	router.POST("/v1/auth/register", handler.Register)
	router.POST("/v1/auth/login", handler.Login)
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegister_ReturnsTokenAndUser(t *testing.T) {
	router := authRouter()

	rec := postJSON(router, "/v1/auth/register", map[string]string{
		"name":     "Aarav",
		"email":    "aarav@example.edu",
		"password": "secret1",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp responses.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "test-token", resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "aarav@example.edu", resp.User.Email)
}

func TestRegister_NeverLeaksPasswordHash(t *testing.T) {
	router := authRouter()

	rec := postJSON(router, "/v1/auth/register", map[string]string{
		"name":     "Aarav",
		"email":    "aarav@example.edu",
		"password": "secret1",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegister_DuplicateEmailIs409(t *testing.T) {
	router := authRouter()
	body := map[string]string{"name": "A", "email": "dup@example.edu", "password": "secret1"}

	require.Equal(t, http.StatusCreated, postJSON(router, "/v1/auth/register", body).Code)

	rec := postJSON(router, "/v1/auth/register", body)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp apperrors.HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(apperrors.ErrorTypeConflict), resp.Error.Type)
}

func TestRegister_MalformedBodyIs400(t *testing.T) {
	router := authRouter()

	rec := postJSON(router, "/v1/auth/register", map[string]string{"name": "no email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_BadCredentialsAre401(t *testing.T) {
	router := authRouter()

	require.Equal(t, http.StatusCreated, postJSON(router, "/v1/auth/register", map[string]string{
		"name": "A", "email": "a@example.edu", "password": "secret1",
	}).Code)

	rec := postJSON(router, "/v1/auth/login", map[string]string{
		"email": "a@example.edu", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(router, "/v1/auth/login", map[string]string{
		"email": "a@example.edu", "password": "secret1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}
