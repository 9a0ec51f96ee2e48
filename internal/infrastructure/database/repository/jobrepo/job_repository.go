package jobrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/job"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/database/dbschema"
	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

type JobGormRepository struct {
	db *gorm.DB
}

var _ job.Repository = (*JobGormRepository)(nil)

func NewJobGormRepository(db *gorm.DB) job.Repository {
	return &JobGormRepository{db: db}
}

func (repo *JobGormRepository) Create(ctx context.Context, posting *job.Job) (*job.Job, error) {
	entity := dbschema.NewSchemaJob(posting)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to create job", err,
			"3e5f7a9b-1c2d-4e4f-85a7-9b1c3d5e7f02")
	}
	return entity.EtoD(), nil
}

func (repo *JobGormRepository) FindByID(ctx context.Context, id uint) (*job.Job, error) {
	var entity dbschema.Job
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to find job by ID", err,
			"7a9b1c3d-5e6f-4a8b-96c8-0d2e4f6a8b13")
	}
	return entity.EtoD(), nil
}

func (repo *JobGormRepository) List(ctx context.Context, filter job.Filter) ([]*job.Job, error) {
	query := repo.db.WithContext(ctx).Order("created_at DESC")
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Location != nil {
		query = query.Where("location ILIKE ?", "%"+*filter.Location+"%")
	}

	var entities []dbschema.Job
	if err := query.Find(&entities).Error; err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to list jobs", err,
			"1c3d5e7f-9a0b-4c2d-87e9-1f3a5b7c9d24")
	}

	jobs := make([]*job.Job, 0, len(entities))
	for i := range entities {
		jobs = append(jobs, entities[i].EtoD())
	}
	return jobs, nil
}

func (repo *JobGormRepository) Update(ctx context.Context, posting *job.Job) (*job.Job, error) {
	entity := dbschema.NewSchemaJob(posting)
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Job{}).
		Where("id = ?", entity.ID).
		Updates(map[string]any{
			"title":       entity.Title,
			"company":     entity.Company,
			"location":    entity.Location,
			"type":        entity.Type,
			"description": entity.Description,
			"apply_url":   entity.ApplyURL,
			"deadline":    entity.Deadline,
		}).
		Error
	if err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to update job", err,
			"5e7f9a1b-3c4d-4e6f-a8b0-2c4d6e8f0a35")
	}
	return repo.FindByID(ctx, posting.ID)
}

func (repo *JobGormRepository) Delete(ctx context.Context, id uint) error {
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&dbschema.Job{}).
		Error
	if err != nil {
		return apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to delete job", err,
			"9a1b3c5d-7e8f-4a0b-b9c1-3d5e7f9a1b46")
	}
	return nil
}
