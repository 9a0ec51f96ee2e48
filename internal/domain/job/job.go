package job

import (
	"context"
	"time"
)

// Type classifies a posting on the job board.
type Type string

const (
	TypeFullTime   Type = "full-time"
	TypePartTime   Type = "part-time"
	TypeInternship Type = "internship"
)

// Job is one posting on the board.
type Job struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Type        Type       `json:"type"`
	Description string     `json:"description"`
	ApplyURL    string     `json:"apply_url"`
	PostedBy    uint       `json:"posted_by"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Filter narrows job listings.
type Filter struct {
	Type     *Type
	Location *string
}

// Repository defines persistence operations needed by the job service.
type Repository interface {
	Create(ctx context.Context, posting *Job) (*Job, error)
	FindByID(ctx context.Context, id uint) (*Job, error)
	List(ctx context.Context, filter Filter) ([]*Job, error)
	Update(ctx context.Context, posting *Job) (*Job, error)
	Delete(ctx context.Context, id uint) error
}
