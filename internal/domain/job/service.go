package job

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

// Service handles job board CRUD. Only the poster may update or delete.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "job-service").Logger(),
	}
}

func (s *Service) Create(ctx context.Context, posting *Job) (*Job, error) {
	if strings.TrimSpace(posting.Title) == "" || strings.TrimSpace(posting.Company) == "" {
		return nil, apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeValidation,
			"job title and company are required", nil,
			"7e9f1a3b-5c2d-4e4f-8a6b-0c2d4e6f8a15")
	}
	if posting.Type == "" {
		posting.Type = TypeFullTime
	}
	return s.repo.Create(ctx, posting)
}

func (s *Service) GetByID(ctx context.Context, id uint) (*Job, error) {
	posting, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if posting == nil {
		return nil, s.notFound(ctx)
	}
	return posting, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Job, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, callerID uint, posting *Job) (*Job, error) {
	existing, err := s.repo.FindByID(ctx, posting.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, s.notFound(ctx)
	}
	if existing.PostedBy != callerID {
		return nil, s.notPoster(ctx)
	}

	posting.PostedBy = existing.PostedBy
	return s.repo.Update(ctx, posting)
}

func (s *Service) Delete(ctx context.Context, callerID, id uint) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.notFound(ctx)
	}
	if existing.PostedBy != callerID {
		return s.notPoster(ctx)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) notFound(ctx context.Context) error {
	return apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeNotFound,
		"job not found", nil,
		"3b5c7d9e-1f0a-4b2c-8d4e-6f8a0b2c4d69")
}

func (s *Service) notPoster(ctx context.Context) error {
	return apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeForbidden,
		"only the poster may modify this job", nil,
		"9c1d3e5f-7a8b-4c0d-a2e4-5f7a9b1c3d86")
}
