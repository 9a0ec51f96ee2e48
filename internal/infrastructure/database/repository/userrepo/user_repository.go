package userrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/user"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/database/dbschema"
	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

type UserGormRepository struct {
	db *gorm.DB
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *gorm.DB) user.Repository {
	return &UserGormRepository{db: db}
}

func (repo *UserGormRepository) Create(ctx context.Context, usr *user.User) (*user.User, error) {
	entity := dbschema.NewSchemaUser(usr)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeConflict,
				"an account with this email already exists", err,
				"d4a8b2c6-0e1f-4a3b-8c5d-7e9f1a3b5c02")
		}
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to create user", err,
			"6b0c2d4e-8f1a-4b3c-9d5e-0f2a4b6c8d14")
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to find user by ID", err,
			"1f3a5b7c-9d0e-4f2a-b4c6-8d0e2f4a6b93")
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to find user by email", err,
			"8e0f2a4b-6c1d-4e3f-a5b7-9c1d3e5f7a24")
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) List(ctx context.Context, exceptID uint) ([]*user.User, error) {
	var entities []dbschema.User
	query := repo.db.WithContext(ctx).Order("name ASC")
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Find(&entities).Error; err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to list users", err,
			"3a5b7c9d-1e2f-4a4b-8c6d-0e2f4a6b8c35")
	}

	users := make([]*user.User, 0, len(entities))
	for i := range entities {
		users = append(users, entities[i].EtoD())
	}
	return users, nil
}
