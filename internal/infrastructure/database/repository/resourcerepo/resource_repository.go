package resourcerepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/resource"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/database/dbschema"
	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

type ResourceGormRepository struct {
	db *gorm.DB
}

var _ resource.Repository = (*ResourceGormRepository)(nil)

func NewResourceGormRepository(db *gorm.DB) resource.Repository {
	return &ResourceGormRepository{db: db}
}

func (repo *ResourceGormRepository) Create(ctx context.Context, res *resource.Resource) (*resource.Resource, error) {
	entity, err := dbschema.NewSchemaResource(res)
	if err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeInternal,
			"failed to encode resource tags", err,
			"3d5e7f9a-1b0c-4d2e-84f6-8a0b2c4d6e57")
	}
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to create resource", err,
			"7f9a1b3c-5d4e-4f6a-95b7-9c1d3e5f7a68")
	}
	return entity.EtoD()
}

func (repo *ResourceGormRepository) FindByID(ctx context.Context, id uint) (*resource.Resource, error) {
	var entity dbschema.Resource
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to find resource by ID", err,
			"1b3c5d7e-9f0a-4b2c-86d8-0e2f4a6b8c79")
	}
	return entity.EtoD()
}

func (repo *ResourceGormRepository) List(ctx context.Context, categoryID *uint) ([]*resource.Resource, error) {
	query := repo.db.WithContext(ctx).Order("created_at DESC")
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var entities []dbschema.Resource
	if err := query.Find(&entities).Error; err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to list resources", err,
			"5d7e9f1a-3b2c-4d4e-97a9-1f3a5b7c9d80")
	}

	resources := make([]*resource.Resource, 0, len(entities))
	for i := range entities {
		res, err := entities[i].EtoD()
		if err != nil {
			return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeInternal,
				"failed to decode resource tags", err,
				"9f1a3b5c-7d6e-4f8a-a8b0-2c4d6e8f0a91")
		}
		resources = append(resources, res)
	}
	return resources, nil
}

func (repo *ResourceGormRepository) Delete(ctx context.Context, id uint) error {
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&dbschema.Resource{}).
		Error
	if err != nil {
		return apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to delete resource", err,
			"3b5c7d9e-1f0a-4b4c-89d1-3e5f7a9b1c02")
	}
	return nil
}

func (repo *ResourceGormRepository) IncrementDownloads(ctx context.Context, id uint) error {
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Resource{}).
		Where("id = ?", id).
		Update("downloads", gorm.Expr("downloads + 1")).
		Error
	if err != nil {
		return apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to increment downloads", err,
			"7d9e1f3a-5b4c-4d6e-90e2-4f6a8b0c2d13")
	}
	return nil
}

func (repo *ResourceGormRepository) ListCategories(ctx context.Context) ([]*resource.Category, error) {
	var entities []dbschema.ResourceCategory
	err := repo.db.WithContext(ctx).
		Order("id ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to list resource categories", err,
			"1f3a5b7c-9d8e-4f0a-81b3-5c7d9e1f3a24")
	}

	categories := make([]*resource.Category, 0, len(entities))
	for i := range entities {
		categories = append(categories, entities[i].EtoD())
	}
	return categories, nil
}

func (repo *ResourceGormRepository) EnsureCategories(ctx context.Context, names []string) error {
	for _, name := range names {
		entity := dbschema.ResourceCategory{Name: name}
		err := repo.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).
			Create(&entity).
			Error
		if err != nil {
			return apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
				"failed to seed resource category", err,
				"5b7c9d1e-3f2a-4b6c-82d4-6e8f0a2b4c35")
		}
	}
	return nil
}
