package domain

import "time"

// Session is the user view returned after a successful login.
type Session struct {
	ID        int64
	Name      string
	Email     string
	Role      Role
	Specialty string
}

// NewSession normalizes an identity into the common user-view shape.
func NewSession(identity *Identity) Session {
	return Session{
		ID:        identity.ID(),
		Name:      identity.DisplayName(),
		Email:     identity.Email(),
		Role:      identity.Role(),
		Specialty: identity.Specialty(),
	}
}

// Profile is the authenticated caller's own record, without credentials.
type Profile struct {
	ID              int64
	Role            Role
	Nombre          string
	Apellidos       string
	Correo          string
	Telefono        *string
	Especialidad    string
	Cedula          string
	FechaNacimiento *time.Time
	Sexo            *string
	TipoUsuario     UserType
}

// DoctorSummary is the public directory view of a doctor.
type DoctorSummary struct {
	ID           int64   `json:"id"`
	Nombre       string  `json:"nombre"`
	Apellidos    string  `json:"apellidos"`
	Especialidad string  `json:"especialidad"`
	Cedula       string  `json:"cedula"`
	Telefono     *string `json:"telefono,omitempty"`
	Email        string  `json:"email"`
}

// Summary drops credentials from a doctor record.
func (d Doctor) Summary() DoctorSummary {
	return DoctorSummary{
		ID:           d.ID,
		Nombre:       d.Nombre,
		Apellidos:    d.Apellidos,
		Especialidad: d.Especialidad,
		Cedula:       d.CedulaProfesional,
		Telefono:     d.Telefono,
		Email:        d.Correo,
	}
}
