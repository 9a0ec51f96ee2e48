package dbschema

import "time"

// BaseModel carries the identity and bookkeeping columns shared by every
// persisted entity.
type BaseModel struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
