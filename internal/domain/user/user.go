package user

import (
	"context"
	"time"
)

// User represents a registered member of the community.
type User struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Repository defines persistence operations needed by the user service.
type Repository interface {
	Create(ctx context.Context, usr *User) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, exceptID uint) ([]*User, error)
}

// TokenIssuer mints a bearer credential for an authenticated user.
type TokenIssuer interface {
	Issue(userID uint, name, email string) (string, error)
}
