package responses

import (
	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/user"
)

// AuthResponse carries the signed token plus the account it belongs to.
type AuthResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// StatusResponse acknowledges a mutation without a body of its own.
type StatusResponse struct {
	Status string `json:"status"`
}

var OK = StatusResponse{Status: "ok"}
