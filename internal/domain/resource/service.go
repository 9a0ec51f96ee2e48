package resource

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

// Service handles the shared resource library.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "resource-service").Logger(),
	}
}

// SeedCategories makes sure the default category set exists.
func (s *Service) SeedCategories(ctx context.Context) error {
	return s.repo.EnsureCategories(ctx, DefaultCategories)
}

func (s *Service) Create(ctx context.Context, res *Resource) (*Resource, error) {
	if strings.TrimSpace(res.Title) == "" || strings.TrimSpace(res.FileURL) == "" {
		return nil, apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeValidation,
			"resource title and file URL are required", nil,
			"1a3b5c7d-9e0f-4a2b-8c4d-6e8f0a2b4c51")
	}
	return s.repo.Create(ctx, res)
}

func (s *Service) GetByID(ctx context.Context, id uint) (*Resource, error) {
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, s.notFound(ctx)
	}
	return res, nil
}

func (s *Service) List(ctx context.Context, categoryID *uint) ([]*Resource, error) {
	return s.repo.List(ctx, categoryID)
}

// Delete removes a resource. Only the uploader may delete it.
func (s *Service) Delete(ctx context.Context, callerID, id uint) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.notFound(ctx)
	}
	if existing.UploadedBy != callerID {
		return apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeForbidden,
			"only the uploader may delete this resource", nil,
			"5d7e9f1a-3b4c-4d6e-b8f0-2a4b6c8d0e37")
	}
	return s.repo.Delete(ctx, id)
}

// RecordDownload bumps the download counter for the resource.
func (s *Service) RecordDownload(ctx context.Context, id uint) (*Resource, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, s.notFound(ctx)
	}
	if err := s.repo.IncrementDownloads(ctx, id); err != nil {
		return nil, err
	}
	existing.Downloads++
	return existing, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) notFound(ctx context.Context) error {
	return apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeNotFound,
		"resource not found", nil,
		"7f9a1b3c-5d6e-4f8a-90b2-4c6d8e0f2a93")
}
