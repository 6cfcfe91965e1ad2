package dto

import "github.com/familycare/clinic-api/internal/domain"

// ProfileUser is the caller's own record without credentials.
type ProfileUser struct {
	ID              int64           `json:"id"`
	Role            domain.Role     `json:"role"`
	Nombre          string          `json:"nombre"`
	Apellidos       string          `json:"apellidos"`
	Email           string          `json:"email"`
	Telefono        *string         `json:"telefono,omitempty"`
	Especialidad    string          `json:"especialidad,omitempty"`
	Cedula          string          `json:"cedula,omitempty"`
	FechaNacimiento string          `json:"fechaNacimiento,omitempty"`
	Sexo            *string         `json:"sexo,omitempty"`
	TipoUsuario     domain.UserType `json:"tipoUsuario,omitempty"`
}

// ProfileResponse is the success body of GET /profile.
type ProfileResponse struct {
	Success bool        `json:"success"`
	User    ProfileUser `json:"user"`
}

// NewProfileResponse maps a profile to its wire shape.
func NewProfileResponse(p *domain.Profile, birthDateLayout string) ProfileResponse {
	user := ProfileUser{
		ID:           p.ID,
		Role:         p.Role,
		Nombre:       p.Nombre,
		Apellidos:    p.Apellidos,
		Email:        p.Correo,
		Telefono:     p.Telefono,
		Especialidad: p.Especialidad,
		Cedula:       p.Cedula,
		Sexo:         p.Sexo,
		TipoUsuario:  p.TipoUsuario,
	}
	if p.FechaNacimiento != nil {
		user.FechaNacimiento = p.FechaNacimiento.Format(birthDateLayout)
	}
	return ProfileResponse{Success: true, User: user}
}

// DoctorsResponse is the success body of GET /doctors.
type DoctorsResponse struct {
	Success bool                   `json:"success"`
	Doctors []domain.DoctorSummary `json:"doctors"`
}
