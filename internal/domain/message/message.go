package message

import (
	"context"
	"time"
)

// Message is one direct message between two users. Seen only ever
// transitions false to true.
type Message struct {
	ID          uint      `json:"id"`
	SenderID    uint      `json:"sender_id"`
	ReceiverID  uint      `json:"receiver_id"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	Seen        bool      `json:"seen"`
	IsAnonymous bool      `json:"is_anonymous"`
}

// AnonymousMessage is a shared-room message. GuestID is a client-generated
// throwaway label, not a durable identity.
type AnonymousMessage struct {
	ID        uint      `json:"id"`
	GuestID   string    `json:"guest_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationSummary is a derived view over the messages a user exchanged
// with one counterpart. It is never persisted separately.
type ConversationSummary struct {
	UserID          uint      `json:"user_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
	UnreadCount     int       `json:"unread_count"`
	IsAnonymous     bool      `json:"is_anonymous"`
}

// Repository defines persistence operations needed by the message service.
type Repository interface {
	Create(ctx context.Context, msg *Message) (*Message, error)
	FindByID(ctx context.Context, id uint) (*Message, error)
	// HistoryBetween returns every message exchanged between the pair in
	// either direction, ascending by timestamp.
	HistoryBetween(ctx context.Context, userA, userB uint) ([]*Message, error)
	// AllInvolving returns every message where the user is sender or receiver.
	AllInvolving(ctx context.Context, userID uint) ([]*Message, error)
	SetSeen(ctx context.Context, id uint) (*Message, error)

	CreateAnonymous(ctx context.Context, msg *AnonymousMessage) (*AnonymousMessage, error)
	ListAnonymous(ctx context.Context, limit int) ([]*AnonymousMessage, error)
}

// Directory resolves counterpart identities when building summaries.
type Directory interface {
	FindByID(ctx context.Context, id uint) (*User, error)
}

// User is the slice of user identity the message service needs.
type User struct {
	ID    uint
	Name  string
	Email string
}
