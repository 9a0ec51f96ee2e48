package messagerepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/message"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/database/dbschema"
	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

type MessageGormRepository struct {
	db *gorm.DB
}

var _ message.Repository = (*MessageGormRepository)(nil)

func NewMessageGormRepository(db *gorm.DB) message.Repository {
	return &MessageGormRepository{db: db}
}

func (repo *MessageGormRepository) Create(ctx context.Context, msg *message.Message) (*message.Message, error) {
	entity := dbschema.NewSchemaMessage(msg)
	if entity.Timestamp.IsZero() {
		entity.Timestamp = time.Now().UTC()
	}
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to create message", err,
			"b6c8d0e2-4f3a-4b5c-8d7e-9f1a3b5c7d46")
	}
	return entity.EtoD(), nil
}

func (repo *MessageGormRepository) FindByID(ctx context.Context, id uint) (*message.Message, error) {
	var entity dbschema.Message
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to find message by ID", err,
			"0e2f4a6b-8c5d-4e1f-a9b1-3c5d7e9f1a57")
	}
	return entity.EtoD(), nil
}

func (repo *MessageGormRepository) HistoryBetween(ctx context.Context, userA, userB uint) ([]*message.Message, error) {
	var entities []dbschema.Message
	err := repo.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("timestamp ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to load chat history", err,
			"5a7b9c1d-3e2f-4a6b-b0c2-4d6e8f0a2b68")
	}

	msgs := make([]*message.Message, 0, len(entities))
	for i := range entities {
		msgs = append(msgs, entities[i].EtoD())
	}
	return msgs, nil
}

func (repo *MessageGormRepository) AllInvolving(ctx context.Context, userID uint) ([]*message.Message, error) {
	var entities []dbschema.Message
	err := repo.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("timestamp ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to load messages for user", err,
			"9f1a3b5c-7d4e-4f8a-a1b3-5c7d9e1f3a79")
	}

	msgs := make([]*message.Message, 0, len(entities))
	for i := range entities {
		msgs = append(msgs, entities[i].EtoD())
	}
	return msgs, nil
}

func (repo *MessageGormRepository) SetSeen(ctx context.Context, id uint) (*message.Message, error) {
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Message{}).
		Where("id = ?", id).
		Update("seen", true).
		Error
	if err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to mark message seen", err,
			"4b6c8d0e-2f1a-4b4c-92d4-6e8f0a2b4c80")
	}
	return repo.FindByID(ctx, id)
}

func (repo *MessageGormRepository) CreateAnonymous(ctx context.Context, msg *message.AnonymousMessage) (*message.AnonymousMessage, error) {
	entity := &dbschema.AnonymousMessage{
		GuestID:   msg.GuestID,
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
	}
	if entity.Timestamp.IsZero() {
		entity.Timestamp = time.Now().UTC()
	}
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to create anonymous message", err,
			"8d0e2f4a-6b3c-4d7e-83f5-7a9b1c3d5e91")
	}
	return entity.EtoD(), nil
}

func (repo *MessageGormRepository) ListAnonymous(ctx context.Context, limit int) ([]*message.AnonymousMessage, error) {
	// Fetch the newest rows, then reverse so callers render oldest first.
	var entities []dbschema.AnonymousMessage
	err := repo.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&entities).
		Error
	if err != nil {
		return nil, apperrors.New(ctx, apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError,
			"failed to list anonymous messages", err,
			"2c4d6e8f-0a1b-4c5d-94e6-8b0c2d4e6f02")
	}

	msgs := make([]*message.AnonymousMessage, len(entities))
	for i := range entities {
		msgs[len(entities)-1-i] = entities[i].EtoD()
	}
	return msgs, nil
}
