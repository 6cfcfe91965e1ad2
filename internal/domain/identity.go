package domain

import (
	"errors"
	"time"
)

// Role is the wire value naming an identity's audience.
type Role string

const (
	RoleDoctor  Role = "Medico"
	RolePatient Role = "Paciente"
	RoleFamily  Role = "Familiar"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleDoctor, RolePatient, RoleFamily:
		return true
	}
	return false
}

// UserType tags a general user as a patient or a family member.
type UserType string

const (
	UserTypePatient UserType = UserType(RolePatient)
	UserTypeFamily  UserType = UserType(RoleFamily)
)

// Valid reports whether t is a known user type.
func (t UserType) Valid() bool {
	return t == UserTypePatient || t == UserTypeFamily
}

// OrDefault returns t, or the patient type when t is empty.
func (t UserType) OrDefault() UserType {
	if t == "" {
		return UserTypePatient
	}
	return t
}

// ErrIdentityNotFound is returned when no table owns an email.
var ErrIdentityNotFound = errors.New("identity not found")

// ErrBadCredentials is returned when a stored password does not match.
var ErrBadCredentials = errors.New("bad credentials")

// Doctor is a row of the medicos table.
type Doctor struct {
	ID                int64
	Nombre            string
	Apellidos         string
	Especialidad      string
	CedulaProfesional string
	Telefono          *string
	Correo            string
	Contrasena        string
}

// GeneralUser is a row of the usuarios table.
type GeneralUser struct {
	ID              int64
	Nombre          string
	Apellidos       string
	Correo          string
	Contrasena      string
	Telefono        *string
	FechaNacimiento *time.Time
	Sexo            *string
	TipoUsuario     UserType
}

// IdentityKind discriminates the Identity variants.
type IdentityKind int

const (
	IdentityDoctor IdentityKind = iota + 1
	IdentityGeneralUser
)

// Identity is a login-capable principal: exactly one of Doctor or User is set.
type Identity struct {
	Kind   IdentityKind
	Doctor *Doctor
	User   *GeneralUser
}

// DoctorIdentity wraps a doctor record.
func DoctorIdentity(d *Doctor) *Identity {
	return &Identity{Kind: IdentityDoctor, Doctor: d}
}

// UserIdentity wraps a general-user record.
func UserIdentity(u *GeneralUser) *Identity {
	return &Identity{Kind: IdentityGeneralUser, User: u}
}

// ID returns the row id in the owning table.
func (i *Identity) ID() int64 {
	if i.Kind == IdentityDoctor {
		return i.Doctor.ID
	}
	return i.User.ID
}

// Email returns the stored, normalized email.
func (i *Identity) Email() string {
	if i.Kind == IdentityDoctor {
		return i.Doctor.Correo
	}
	return i.User.Correo
}

// Password returns the stored password value, opaque to the caller.
func (i *Identity) Password() string {
	if i.Kind == IdentityDoctor {
		return i.Doctor.Contrasena
	}
	return i.User.Contrasena
}

// DisplayName joins given name and surname with a single space.
func (i *Identity) DisplayName() string {
	if i.Kind == IdentityDoctor {
		return i.Doctor.Nombre + " " + i.Doctor.Apellidos
	}
	return i.User.Nombre + " " + i.User.Apellidos
}

// Role is Medico for doctors and the stored user type otherwise.
func (i *Identity) Role() Role {
	if i.Kind == IdentityDoctor {
		return RoleDoctor
	}
	return Role(i.User.TipoUsuario.OrDefault())
}

// Specialty returns the doctor's specialty, or Paciente for general users.
func (i *Identity) Specialty() string {
	if i.Kind == IdentityDoctor && i.Doctor.Especialidad != "" {
		return i.Doctor.Especialidad
	}
	return string(RolePatient)
}
