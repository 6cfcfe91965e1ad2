package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/familycare/clinic-api/internal/api/dto"
	"github.com/familycare/clinic-api/internal/auth"
	"github.com/familycare/clinic-api/internal/service"
	apperrors "github.com/familycare/clinic-api/pkg/util/errorutil"
)

// ProfileHandler serves the caller's own record.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get handles GET /profile. The subject always comes from the verified token.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(apperrors.CodeNoToken, "authorization token required")
	}

	profile, err := h.profiles.Get(c.UserContext(), claims.SubjectID, claims.Role)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProfileResponse(profile, service.BirthDateLayout))
}
