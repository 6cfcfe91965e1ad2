package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/familycare/clinic-api/internal/domain"
	"github.com/familycare/clinic-api/internal/repository"
	apperrors "github.com/familycare/clinic-api/pkg/util/errorutil"
)

// ProfileService reads the authenticated caller's own record.
type ProfileService struct {
	doctors repository.DoctorRepository
	users   repository.UserRepository
}

// NewProfileService builds the service.
func NewProfileService(doctors repository.DoctorRepository, users repository.UserRepository) *ProfileService {
	return &ProfileService{doctors: doctors, users: users}
}

// Get loads the profile for a verified subject. subjectID and role must come
// from token claims, never from request input.
func (s *ProfileService) Get(ctx context.Context, subjectID int64, role domain.Role) (*domain.Profile, error) {
	switch role {
	case domain.RoleDoctor:
		doctor, err := s.doctors.GetByID(ctx, subjectID)
		if err != nil {
			return nil, lookupError("doctor", err)
		}
		return &domain.Profile{
			ID:           doctor.ID,
			Role:         domain.RoleDoctor,
			Nombre:       doctor.Nombre,
			Apellidos:    doctor.Apellidos,
			Correo:       doctor.Correo,
			Telefono:     doctor.Telefono,
			Especialidad: doctor.Especialidad,
			Cedula:       doctor.CedulaProfesional,
		}, nil
	case domain.RolePatient, domain.RoleFamily:
		user, err := s.users.GetByID(ctx, subjectID)
		if err != nil {
			return nil, lookupError("user", err)
		}
		userType := user.TipoUsuario.OrDefault()
		return &domain.Profile{
			ID:              user.ID,
			Role:            domain.Role(userType),
			Nombre:          user.Nombre,
			Apellidos:       user.Apellidos,
			Correo:          user.Correo,
			Telefono:        user.Telefono,
			FechaNacimiento: user.FechaNacimiento,
			Sexo:            user.Sexo,
			TipoUsuario:     userType,
		}, nil
	default:
		return nil, apperrors.NewForbidden("role not allowed to read profiles")
	}
}

func lookupError(resource string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource, nil)
	}
	return apperrors.NewInternalError(fmt.Errorf("load %s profile: %w", resource, err))
}
