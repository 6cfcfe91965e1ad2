package events

import (
	"time"

	"github.com/familycare/clinic-api/internal/domain"
	"github.com/familycare/clinic-api/internal/ids"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDoctorRegistered EventType = "doctor_registered"
	EventUserRegistered   EventType = "user_registered"
	EventLoginSucceeded   EventType = "login_succeeded"
	EventLoginFailed      EventType = "login_failed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID int64       `json:"subject_id,omitempty"`
	Role      domain.Role `json:"role,omitempty"`
	Email     string      `json:"email"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, subjectID int64, role domain.Role, email string, payload interface{}) Event {
	return Event{
		ID:        ids.New(),
		Type:      eventType,
		SubjectID: subjectID,
		Role:      role,
		Email:     email,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// DoctorRegisteredPayload payload.
type DoctorRegisteredPayload struct {
	Name         string `json:"name"`
	Especialidad string `json:"especialidad"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Name        string          `json:"name"`
	TipoUsuario domain.UserType `json:"tipo_usuario"`
}

// LoginFailedPayload records why a login was refused. Never returned to clients.
type LoginFailedPayload struct {
	Reason string `json:"reason"`
}
