package requests

import "time"

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SendMessageRequest persists a direct message over REST.
type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// CreateEventRequest creates an event owned by the caller.
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at"`
}

// UpdateEventRequest updates fields of an existing event.
type UpdateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at"`
}

// CreateJobRequest posts a job listing.
type CreateJobRequest struct {
	Title       string     `json:"title" binding:"required"`
	Company     string     `json:"company" binding:"required"`
	Location    string     `json:"location"`
	Type        string     `json:"type" binding:"required"`
	Description string     `json:"description"`
	ApplyURL    string     `json:"apply_url"`
	Deadline    *time.Time `json:"deadline"`
}

// UpdateJobRequest updates a job listing.
type UpdateJobRequest struct {
	Title       string     `json:"title" binding:"required"`
	Company     string     `json:"company" binding:"required"`
	Location    string     `json:"location"`
	Type        string     `json:"type" binding:"required"`
	Description string     `json:"description"`
	ApplyURL    string     `json:"apply_url"`
	Deadline    *time.Time `json:"deadline"`
}

// CreateResourceRequest publishes a study resource.
type CreateResourceRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	CategoryID  uint     `json:"category_id" binding:"required"`
	FileURL     string   `json:"file_url" binding:"required"`
	Tags        []string `json:"tags"`
}
