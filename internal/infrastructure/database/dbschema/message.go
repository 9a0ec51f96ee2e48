package dbschema

import (
	"time"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/message"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Message{})
	database.RegisterSchemaForAutoMigrate(AnonymousMessage{})
}

// Message represents the persisted direct message schema. The compound
// indexes cover both directions of the history query.
type Message struct {
	BaseModel
	SenderID    uint      `gorm:"not null;index:idx_messages_sender_receiver"`
	Sender      User      `gorm:"foreignKey:SenderID"`
	ReceiverID  uint      `gorm:"not null;index:idx_messages_sender_receiver;index:idx_messages_receiver_seen"`
	Receiver    User      `gorm:"foreignKey:ReceiverID"`
	Content     string    `gorm:"type:text;not null"`
	Timestamp   time.Time `gorm:"not null;index"`
	Seen        bool      `gorm:"not null;default:false;index:idx_messages_receiver_seen"`
	IsAnonymous bool      `gorm:"not null;default:false"`
}

// NewSchemaMessage converts a domain message into a schema instance.
func NewSchemaMessage(m *message.Message) *Message {
	if m == nil {
		return nil
	}

	return &Message{
		BaseModel: BaseModel{
			ID: m.ID,
		},
		SenderID:    m.SenderID,
		ReceiverID:  m.ReceiverID,
		Content:     m.Content,
		Timestamp:   m.Timestamp,
		Seen:        m.Seen,
		IsAnonymous: m.IsAnonymous,
	}
}

// EtoD converts a schema message back to the domain representation.
func (m *Message) EtoD() *message.Message {
	if m == nil {
		return nil
	}

	return &message.Message{
		ID:          m.ID,
		SenderID:    m.SenderID,
		ReceiverID:  m.ReceiverID,
		Content:     m.Content,
		Timestamp:   m.Timestamp,
		Seen:        m.Seen,
		IsAnonymous: m.IsAnonymous,
	}
}

// AnonymousMessage represents the persisted shared-room message schema.
// GuestID is an ephemeral label with no relation to users.
type AnonymousMessage struct {
	BaseModel
	GuestID   string    `gorm:"type:varchar(64);not null"`
	Content   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"not null;index"`
}

// EtoD converts a schema anonymous message back to the domain representation.
func (m *AnonymousMessage) EtoD() *message.AnonymousMessage {
	if m == nil {
		return nil
	}

	return &message.AnonymousMessage{
		ID:        m.ID,
		GuestID:   m.GuestID,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}
