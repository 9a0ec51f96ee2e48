package dbschema

import (
	"time"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/event"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Event{})
	database.RegisterSchemaForAutoMigrate(EventRegistration{})
}

// Event represents the persisted event schema.
type Event struct {
	BaseModel
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Location    string    `gorm:"type:varchar(255)"`
	StartsAt    time.Time `gorm:"not null;index"`
	EndsAt      time.Time
	OrganizerID uint `gorm:"not null;index"`
	Organizer   User `gorm:"foreignKey:OrganizerID"`
}

// EventRegistration joins users to events. The unique index is the only
// guard against concurrent duplicate registrations.
type EventRegistration struct {
	BaseModel
	EventID uint  `gorm:"not null;uniqueIndex:ux_event_registrations_event_user"`
	Event   Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	UserID  uint  `gorm:"not null;uniqueIndex:ux_event_registrations_event_user"`
	User    User  `gorm:"foreignKey:UserID"`
}

// NewSchemaEvent converts a domain event into a schema instance.
func NewSchemaEvent(e *event.Event) *Event {
	if e == nil {
		return nil
	}

	return &Event{
		BaseModel: BaseModel{
			ID:        e.ID,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		},
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		OrganizerID: e.OrganizerID,
	}
}

// EtoD converts a schema event back to the domain representation.
func (e *Event) EtoD() *event.Event {
	if e == nil {
		return nil
	}

	return &event.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		OrganizerID: e.OrganizerID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// EtoD converts a schema registration back to the domain representation.
func (r *EventRegistration) EtoD() *event.Registration {
	if r == nil {
		return nil
	}

	return &event.Registration{
		ID:        r.ID,
		EventID:   r.EventID,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
	}
}
