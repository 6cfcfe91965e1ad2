package dto

import (
	"time"

	"github.com/familycare/clinic-api/internal/domain"
)

// LoginRequest payload for POST /login.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	IssueToken bool   `json:"issueToken"`
}

// SessionUser is the user view returned after login.
type SessionUser struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Specialty string      `json:"specialty"`
}

// LoginResponse is the success body of POST /login. Token fields are set
// only for token clients.
type LoginResponse struct {
	Success   bool        `json:"success"`
	User      SessionUser `json:"user"`
	Token     string      `json:"token,omitempty"`
	ExpiresAt *time.Time  `json:"expiresAt,omitempty"`
}

// NewLoginResponse maps a session to its wire shape.
func NewLoginResponse(session domain.Session, token string, expiresAt time.Time) LoginResponse {
	resp := LoginResponse{
		Success: true,
		User: SessionUser{
			ID:        session.ID,
			Name:      session.Name,
			Email:     session.Email,
			Role:      session.Role,
			Specialty: session.Specialty,
		},
	}
	if token != "" {
		resp.Token = token
		resp.ExpiresAt = &expiresAt
	}
	return resp
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool           `json:"success"`
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
