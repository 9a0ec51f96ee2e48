package event

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

// Service owns event CRUD and the registration state machine. Every
// successful mutation is broadcast globally, always after the store write.
type Service struct {
	repo        Repository
	broadcaster Broadcaster
	log         zerolog.Logger
}

func NewService(repo Repository, broadcaster Broadcaster, log zerolog.Logger) *Service {
	return &Service{
		repo:        repo,
		broadcaster: broadcaster,
		log:         log.With().Str("component", "event-service").Logger(),
	}
}

// Create stores a new event and broadcasts it.
func (s *Service) Create(ctx context.Context, evt *Event) (*Event, error) {
	if strings.TrimSpace(evt.Title) == "" {
		return nil, apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeValidation,
			"event title is required", nil,
			"5b8c1d4e-7f2a-4b6c-9d0e-3f5a7b9c1d28")
	}
	if !evt.EndsAt.IsZero() && evt.EndsAt.Before(evt.StartsAt) {
		return nil, apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeValidation,
			"event cannot end before it starts", nil,
			"2d6e8f0a-1b3c-4d5e-8f7a-9b0c2d4e6f81")
	}

	created, err := s.repo.Create(ctx, evt)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(BroadcastNew, created)
	return created, nil
}

// GetByID fetches one event.
func (s *Service) GetByID(ctx context.Context, id uint) (*Event, error) {
	evt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if evt == nil {
		return nil, s.notFound(ctx)
	}
	return evt, nil
}

// List returns all events.
func (s *Service) List(ctx context.Context) ([]*Event, error) {
	return s.repo.List(ctx)
}

// Update applies changes to an event. Only the organizer may update.
func (s *Service) Update(ctx context.Context, callerID uint, evt *Event) (*Event, error) {
	existing, err := s.repo.FindByID(ctx, evt.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, s.notFound(ctx)
	}
	if existing.OrganizerID != callerID {
		return nil, s.notOrganizer(ctx)
	}

	evt.OrganizerID = existing.OrganizerID
	updated, err := s.repo.Update(ctx, evt)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(BroadcastUpdate, updated)
	return updated, nil
}

// Delete removes an event. Only the organizer may delete.
func (s *Service) Delete(ctx context.Context, callerID, id uint) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.notFound(ctx)
	}
	if existing.OrganizerID != callerID {
		return s.notOrganizer(ctx)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.broadcaster.Broadcast(BroadcastDelete, map[string]uint{"id": id})
	return nil
}

// Register creates the registration row. A duplicate attempt surfaces the
// store's unique-constraint violation as a Conflict.
func (s *Service) Register(ctx context.Context, eventID, userID uint) (*Registration, error) {
	evt, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if evt == nil {
		return nil, s.notFound(ctx)
	}

	reg, err := s.repo.CreateRegistration(ctx, &Registration{EventID: eventID, UserID: userID})
	if err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(BroadcastRegister, reg)
	return reg, nil
}

// Unregister removes the registration row if present.
func (s *Service) Unregister(ctx context.Context, eventID, userID uint) error {
	removed, err := s.repo.DeleteRegistration(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeNotFound,
			"registration not found", nil,
			"8a0b2c4d-6e1f-4a3b-9c5d-7e9f1a3b5c60")
	}

	s.broadcaster.Broadcast(BroadcastUnregister, map[string]uint{"event_id": eventID, "user_id": userID})
	return nil
}

// ListRegistrations returns every registration for an event.
func (s *Service) ListRegistrations(ctx context.Context, eventID uint) ([]*Registration, error) {
	evt, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if evt == nil {
		return nil, s.notFound(ctx)
	}
	return s.repo.ListRegistrations(ctx, eventID)
}

func (s *Service) notFound(ctx context.Context) error {
	return apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeNotFound,
		"event not found", nil,
		"4c6d8e0f-2a1b-4c3d-9e5f-6a8b0c2d4e73")
}

func (s *Service) notOrganizer(ctx context.Context) error {
	return apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeForbidden,
		"only the organizer may modify this event", nil,
		"0d2e4f6a-8b9c-4d1e-a3f5-7b9c1d3e5f07")
}
