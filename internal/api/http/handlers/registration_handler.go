package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/familycare/clinic-api/internal/api/dto"
	"github.com/familycare/clinic-api/internal/service"
)

// RegistrationHandler exposes doctor and general-user enrollment.
type RegistrationHandler struct {
	registration *service.RegistrationService
}

// NewRegistrationHandler constructs handler.
func NewRegistrationHandler(registration *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registration: registration}
}

// RegisterDoctor handles POST /register-doctor.
func (h *RegistrationHandler) RegisterDoctor(c *fiber.Ctx) error {
	var req dto.RegisterDoctorRequest
	if err := decodeStrict(c, &req); err != nil {
		return err
	}

	id, err := h.registration.RegisterDoctor(c.UserContext(), service.DoctorRegistration{
		Nombre:       req.Nombre,
		Apellidos:    req.Apellidos,
		Especialidad: req.Especialidad,
		Cedula:       req.Cedula,
		Telefono:     req.Telefono,
		Email:        req.Email,
		Password:     req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.RegisterDoctorResponse{
		Success: true,
		Message: "doctor registered",
		ID:      id,
	})
}

// RegisterUser handles POST /register-user.
func (h *RegistrationHandler) RegisterUser(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := decodeStrict(c, &req); err != nil {
		return err
	}

	result, err := h.registration.RegisterUser(c.UserContext(), service.UserRegistration{
		Nombre:          req.Nombre,
		Apellidos:       req.Apellidos,
		Email:           req.Email,
		Password:        req.Password,
		Telefono:        req.Telefono,
		FechaNacimiento: req.FechaNacimiento,
		Sexo:            req.Sexo,
		TipoUsuario:     req.TipoUsuario,
	}, wantsToken(c, req.IssueToken))
	if err != nil {
		return err
	}

	resp := dto.RegisterUserResponse{
		Success: true,
		Message: "user registered",
		UserID:  result.UserID,
	}
	if result.Token != "" {
		resp.Token = result.Token
		resp.ExpiresAt = &result.ExpiresAt
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
