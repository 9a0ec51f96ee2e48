package user

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

// Service handles account registration, login and the member directory.
type Service struct {
	repo   Repository
	tokens TokenIssuer
	log    zerolog.Logger
}

func NewService(repo Repository, tokens TokenIssuer, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		log:    log.With().Str("component", "user-service").Logger(),
	}
}

// Register creates an account and returns it together with a fresh token.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || len(password) < 6 {
		return nil, "", apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeValidation,
			"name, email and a password of at least 6 characters are required", nil,
			"0f4c5f5e-1f2a-4a86-b6cb-2f6a1d3f9a01")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeConflict,
			"an account with this email already exists", nil,
			"7f9e4d23-8c31-4f6a-9d0b-5e2a8c7b1f42")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeInternal,
			"failed to hash password", err,
			"c1d8a3b7-6e42-4c9f-8a15-3d7b9e0f2c64")
	}

	created, err := s.repo.Create(ctx, &User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(created.ID, created.Name, created.Email)
	if err != nil {
		return nil, "", apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeInternal,
			"failed to issue token", err,
			"9a2b7c4d-1e83-4f5a-b6c9-8d0e3f1a5b27")
	}

	s.log.Info().Uint("user_id", created.ID).Msg("user registered")
	return created, token, nil
}

// Login verifies credentials and returns the user and a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	usr, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if usr == nil {
		return nil, "", invalidCredentials(ctx)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, "", invalidCredentials(ctx)
	}

	token, err := s.tokens.Issue(usr.ID, usr.Name, usr.Email)
	if err != nil {
		return nil, "", apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeInternal,
			"failed to issue token", err,
			"4e6f1a8b-3c92-4d7e-a5b0-7c8d9e2f4a16")
	}

	return usr, token, nil
}

// GetByID fetches one user for profile display.
func (s *Service) GetByID(ctx context.Context, id uint) (*User, error) {
	usr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeNotFound,
			"user not found", nil,
			"2b5d8e1f-7a43-4c6b-9d0e-1f3a5b7c9d82")
	}
	return usr, nil
}

// List returns the member directory, excluding the caller.
func (s *Service) List(ctx context.Context, exceptID uint) ([]*User, error) {
	return s.repo.List(ctx, exceptID)
}

func invalidCredentials(ctx context.Context) error {
	// Same error for unknown email and wrong password so the endpoint
	// does not leak which accounts exist.
	return apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeUnauthenticated,
		"invalid email or password", nil,
		"e8c2a6f1-5b94-4d3e-8a7c-0b1d2e3f4a58")
}
