package dto

import (
	"time"

	"github.com/DrNour/Nour-translation-app/internal/models"
)

// RegisterRequest carries the payload for account registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Role     string `json:"role" validate:"required,oneof=student instructor"`
}

// LoginRequest carries the payload for credential verification.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccountResponse is returned to API clients when viewing accounts. The
// password hash is never serialized.
type AccountResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse bundles a signed token with the authenticated account.
type AuthResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

// NewAccountResponse converts an Account model into a DTO.
func NewAccountResponse(model models.Account) AccountResponse {
	return AccountResponse{
		ID:        model.ID,
		Username:  model.Username,
		Role:      model.Role,
		CreatedAt: model.CreatedAt,
	}
}
