package dto

import "time"

// RegisterDoctorRequest payload for POST /register-doctor.
type RegisterDoctorRequest struct {
	Nombre       string `json:"nombre"`
	Apellidos    string `json:"apellidos"`
	Especialidad string `json:"especialidad"`
	Cedula       string `json:"cedula"`
	Telefono     string `json:"telefono"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

// RegisterDoctorResponse is the success body of POST /register-doctor.
type RegisterDoctorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// RegisterUserRequest payload for POST /register-user.
type RegisterUserRequest struct {
	Nombre          string `json:"nombre"`
	Apellidos       string `json:"apellidos"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Telefono        string `json:"telefono"`
	FechaNacimiento string `json:"fechaNacimiento"`
	Sexo            string `json:"sexo"`
	TipoUsuario     string `json:"tipoUsuario"`
	IssueToken      bool   `json:"issueToken"`
}

// RegisterUserResponse is the success body of POST /register-user.
type RegisterUserResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	UserID    int64      `json:"userId"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}
