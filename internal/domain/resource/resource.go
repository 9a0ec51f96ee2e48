package resource

import (
	"context"
	"time"
)

// Category groups resources in the shared library. The default set is
// seeded at startup.
type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// DefaultCategories are created on first boot if missing.
var DefaultCategories = []string{
	"Notes",
	"Question Papers",
	"Books",
	"Assignments",
	"Other",
}

// Resource is one shared file in the library.
type Resource struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  uint      `json:"category_id"`
	FileURL     string    `json:"file_url"`
	Tags        []string  `json:"tags"`
	UploadedBy  uint      `json:"uploaded_by"`
	Downloads   int64     `json:"downloads"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Repository defines persistence operations needed by the resource service.
type Repository interface {
	Create(ctx context.Context, res *Resource) (*Resource, error)
	FindByID(ctx context.Context, id uint) (*Resource, error)
	List(ctx context.Context, categoryID *uint) ([]*Resource, error)
	Delete(ctx context.Context, id uint) error
	IncrementDownloads(ctx context.Context, id uint) error

	ListCategories(ctx context.Context) ([]*Category, error)
	EnsureCategories(ctx context.Context, names []string) error
}
