package message

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

// Service owns durable create/read of direct messages and the derived
// conversation summaries. Deduplication is deliberately not done here; the
// gateway and client reconciliation layer handle duplicate observations.
type Service struct {
	repo      Repository
	directory Directory
	log       zerolog.Logger
}

func NewService(repo Repository, directory Directory, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		log:       log.With().Str("component", "message-service").Logger(),
	}
}

// Send inserts one message row and returns it with its durable id and
// server timestamp.
func (s *Service) Send(ctx context.Context, senderID, receiverID uint, content string, isAnonymous bool) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeValidation,
			"message content is required", nil,
			"6a1b3c5d-7e9f-4a2b-8c4d-0e1f2a3b4c56")
	}
	if senderID == receiverID {
		return nil, apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeValidation,
			"sender and receiver must differ", nil,
			"8d2e4f6a-9b1c-4d3e-a5f7-2b4c6d8e0f13")
	}

	return s.repo.Create(ctx, &Message{
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Content:     content,
		IsAnonymous: isAnonymous,
	})
}

// History returns every message between the pair, ascending by timestamp.
// The caller must be one of the participants.
func (s *Service) History(ctx context.Context, callerID, userA, userB uint) ([]*Message, error) {
	if callerID != userA && callerID != userB {
		return nil, apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeForbidden,
			"caller is not a participant in this conversation", nil,
			"3c7d9e1f-2a4b-4c6d-8e0f-5a7b9c1d3e92")
	}
	return s.repo.HistoryBetween(ctx, userA, userB)
}

// MarkSeen flips seen to true. Marking an already-seen message again is a
// no-op success.
func (s *Service) MarkSeen(ctx context.Context, id uint) (*Message, error) {
	msg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeNotFound,
			"message not found", nil,
			"1e5f7a9b-3c2d-4e6f-b8a0-7c9d1e3f5a74")
	}
	if msg.Seen {
		return msg, nil
	}
	return s.repo.SetSeen(ctx, id)
}

// ListConversations scans every message involving the user and derives one
// summary per counterpart, decorated with the counterpart's identity.
func (s *Service) ListConversations(ctx context.Context, userID uint) ([]ConversationSummary, error) {
	msgs, err := s.repo.AllInvolving(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := DeriveSummaries(userID, msgs)

	for i := range summaries {
		counterpart, err := s.directory.FindByID(ctx, summaries[i].UserID)
		if err != nil {
			return nil, err
		}
		if counterpart == nil {
			continue
		}
		summaries[i].Name = counterpart.Name
		summaries[i].Email = counterpart.Email
	}

	return summaries, nil
}

// SendAnonymous stores one shared-room message.
func (s *Service) SendAnonymous(ctx context.Context, guestID, content string) (*AnonymousMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.New(ctx, apperrors.LayerDomain, apperrors.ErrorTypeValidation,
			"message content is required", nil,
			"9f3a5b7c-1d2e-4f6a-8b0c-3d5e7f9a1b36")
	}
	if guestID == "" {
		guestID = "guest"
	}
	return s.repo.CreateAnonymous(ctx, &AnonymousMessage{
		GuestID: guestID,
		Content: content,
	})
}

// ListAnonymous returns the most recent shared-room messages, oldest first.
func (s *Service) ListAnonymous(ctx context.Context, limit int) ([]*AnonymousMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.repo.ListAnonymous(ctx, limit)
}
