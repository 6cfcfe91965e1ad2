package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/familycare/clinic-api/internal/api/dto"
	"github.com/familycare/clinic-api/internal/service"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := decodeStrict(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), service.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		IssueToken: wantsToken(c, req.IssueToken),
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.NewLoginResponse(result.Session, result.Token, result.ExpiresAt))
}
