package event

import (
	"context"
	"time"
)

// Event is a community event owned by its organizer.
type Event struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	OrganizerID uint      `json:"organizer_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Registration joins a user to an event. At most one registration per
// (event, user) pair, enforced by a store unique constraint.
type Registration struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository defines persistence operations needed by the event service.
type Repository interface {
	Create(ctx context.Context, evt *Event) (*Event, error)
	FindByID(ctx context.Context, id uint) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, evt *Event) (*Event, error)
	Delete(ctx context.Context, id uint) error

	// CreateRegistration returns a Conflict error when the (event, user)
	// pair already exists; the unique constraint is the only guard against
	// two simultaneous registration attempts.
	CreateRegistration(ctx context.Context, reg *Registration) (*Registration, error)
	DeleteRegistration(ctx context.Context, eventID, userID uint) (bool, error)
	ListRegistrations(ctx context.Context, eventID uint) ([]*Registration, error)
}

// Broadcaster pushes event lifecycle notifications to every connected
// client. Injected so tests can observe broadcasts without a live gateway.
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// Broadcast event names, emitted after a successful store mutation.
const (
	BroadcastNew        = "event:new"
	BroadcastUpdate     = "event:update"
	BroadcastDelete     = "event:delete"
	BroadcastRegister   = "event:register"
	BroadcastUnregister = "event:unregister"
)
