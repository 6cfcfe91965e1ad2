package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/familycare/clinic-api/internal/api/dto"
	"github.com/familycare/clinic-api/internal/service"
)

// DoctorsHandler serves the public doctor directory.
type DoctorsHandler struct {
	directory *service.DirectoryService
}

// NewDoctorsHandler constructs handler.
func NewDoctorsHandler(directory *service.DirectoryService) *DoctorsHandler {
	return &DoctorsHandler{directory: directory}
}

// List handles GET /doctors.
func (h *DoctorsHandler) List(c *fiber.Ctx) error {
	doctors, err := h.directory.ListDoctors(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.DoctorsResponse{Success: true, Doctors: doctors})
}
