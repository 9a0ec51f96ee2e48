package eventrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/event"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/database/dbschema"
	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

type EventGormRepository struct {
	db *gorm.DB
}

var _ event.Repository = (*EventGormRepository)(nil)

func NewEventGormRepository(db *gorm.DB) event.Repository {
	return &EventGormRepository{db: db}
}

func (repo *EventGormRepository) Create(ctx context.Context, evt *event.Event) (*event.Event, error) {
	entity := dbschema.NewSchemaEvent(evt)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to create event", err,
			"6e8f0a2b-4c3d-4e9f-85a7-9c1d3e5f7a13")
	}
	return entity.EtoD(), nil
}

func (repo *EventGormRepository) FindByID(ctx context.Context, id uint) (*event.Event, error) {
	var entity dbschema.Event
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to find event by ID", err,
			"0a2b4c6d-8e5f-4a1b-96c8-0d2e4f6a8b24")
	}
	return entity.EtoD(), nil
}

func (repo *EventGormRepository) List(ctx context.Context) ([]*event.Event, error) {
	var entities []dbschema.Event
	err := repo.db.WithContext(ctx).
		Order("starts_at ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to list events", err,
			"4f6a8b0c-2d1e-4f3a-87b9-1c3d5e7f9a35")
	}

	events := make([]*event.Event, 0, len(entities))
	for i := range entities {
		events = append(events, entities[i].EtoD())
	}
	return events, nil
}

func (repo *EventGormRepository) Update(ctx context.Context, evt *event.Event) (*event.Event, error) {
	entity := dbschema.NewSchemaEvent(evt)
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Event{}).
		Where("id = ?", entity.ID).
		Updates(map[string]any{
			"title":       entity.Title,
			"description": entity.Description,
			"location":    entity.Location,
			"starts_at":   entity.StartsAt,
			"ends_at":     entity.EndsAt,
		}).
		Error
	if err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to update event", err,
			"8b0c2d4e-6f3a-4b5c-98d0-2e4f6a8b0c46")
	}
	return repo.FindByID(ctx, evt.ID)
}

func (repo *EventGormRepository) Delete(ctx context.Context, id uint) error {
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&dbschema.Event{}).
		Error
	if err != nil {
		return apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to delete event", err,
			"2d4e6f8a-0b1c-4d7e-a9f1-3a5b7c9d1e57")
	}
	return nil
}

func (repo *EventGormRepository) CreateRegistration(ctx context.Context, reg *event.Registration) (*event.Registration, error) {
	entity := &dbschema.EventRegistration{
		EventID: reg.EventID,
		UserID:  reg.UserID,
	}
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeConflict,
				"already registered for this event", err,
				"7c9d1e3f-5a2b-4c8d-b0e2-4f6a8b0c2d68")
		}
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to create registration", err,
			"1e3f5a7b-9c0d-4e2f-81a3-5b7c9d1e3f79")
	}
	return entity.EtoD(), nil
}

func (repo *EventGormRepository) DeleteRegistration(ctx context.Context, eventID, userID uint) (bool, error) {
	result := repo.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&dbschema.EventRegistration{})
	if result.Error != nil {
		return false, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to delete registration", result.Error,
			"5a7b9c1d-3e4f-4a6b-92c4-6d8e0f2a4b80")
	}
	return result.RowsAffected > 0, nil
}

func (repo *EventGormRepository) ListRegistrations(ctx context.Context, eventID uint) ([]*event.Registration, error) {
	var entities []dbschema.EventRegistration
	err := repo.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to list registrations", err,
			"9c1d3e5f-7a8b-4c0d-83e5-7f9a1b3c5d91")
	}

	regs := make([]*event.Registration, 0, len(entities))
	for i := range entities {
		regs = append(regs, entities[i].EtoD())
	}
	return regs, nil
}
