package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/familycare/clinic-api/internal/auth"
	"github.com/familycare/clinic-api/internal/config"
	"github.com/familycare/clinic-api/internal/domain"
	"github.com/familycare/clinic-api/internal/events"
	"github.com/familycare/clinic-api/internal/observability"
	"github.com/familycare/clinic-api/internal/repository"
	apperrors "github.com/familycare/clinic-api/pkg/util/errorutil"
)

// BirthDateLayout is the accepted fechaNacimiento format.
const BirthDateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// DoctorRegistration is the input of a doctor enrollment.
type DoctorRegistration struct {
	Nombre       string
	Apellidos    string
	Especialidad string
	Cedula       string
	Telefono     string
	Email        string
	Password     string
}

// UserRegistration is the input of a general-user enrollment.
type UserRegistration struct {
	Nombre          string
	Apellidos       string
	Email           string
	Password        string
	Telefono        string
	FechaNacimiento string
	Sexo            string
	TipoUsuario     string
}

// UserRegistrationResult carries the new id and, for token clients, a session token.
type UserRegistrationResult struct {
	UserID    int64
	Token     string
	ExpiresAt time.Time
}

// RegistrationService enrolls doctors and general users.
//
// Uniqueness is checked before insert without a transaction; the store's
// unique constraints catch concurrent duplicates and those surface as the same
// conflict errors as the pre-checks.
type RegistrationService struct {
	doctors          repository.DoctorRepository
	users            repository.UserRepository
	hasher           auth.PasswordHasher
	tokenMgr         *auth.TokenManager
	dispatcher       events.Dispatcher
	metrics          *observability.Metrics
	logger           *zap.Logger
	strictUserFields bool
}

// RegistrationDependencies encapsulates collaborators for registration.
type RegistrationDependencies struct {
	DoctorRepo repository.DoctorRepository
	UserRepo   repository.UserRepository
	Hasher     auth.PasswordHasher
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewRegistrationService builds the service.
func NewRegistrationService(cfg config.RegistrationConfig, deps RegistrationDependencies) *RegistrationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		doctors:          deps.DoctorRepo,
		users:            deps.UserRepo,
		hasher:           deps.Hasher,
		tokenMgr:         deps.Tokens,
		dispatcher:       deps.Dispatcher,
		metrics:          deps.Metrics,
		logger:           logger,
		strictUserFields: cfg.StrictUserFields,
	}
}

// RegisterDoctor validates and inserts a doctor, returning its id.
func (s *RegistrationService) RegisterDoctor(ctx context.Context, in DoctorRegistration) (int64, error) {
	id, err := s.registerDoctor(ctx, in)
	s.metrics.RecordRegistration("doctor", registrationOutcome(err))
	return id, err
}

func (s *RegistrationService) registerDoctor(ctx context.Context, in DoctorRegistration) (int64, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Apellidos = strings.TrimSpace(in.Apellidos)
	in.Especialidad = strings.TrimSpace(in.Especialidad)
	in.Cedula = strings.TrimSpace(in.Cedula)
	in.Email = NormalizeEmail(in.Email)

	if missing := missingFields(
		field{"nombre", in.Nombre},
		field{"apellidos", in.Apellidos},
		field{"especialidad", in.Especialidad},
		field{"cedula", in.Cedula},
		field{"email", in.Email},
		field{"password", in.Password},
	); len(missing) > 0 {
		return 0, apperrors.NewMissingFields(missing)
	}
	if err := validateEmail(in.Email); err != nil {
		return 0, err
	}

	taken, err := s.doctors.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return 0, apperrors.NewInternalError(fmt.Errorf("check doctor email: %w", err))
	}
	if taken {
		return 0, emailTaken(nil)
	}

	taken, err = s.doctors.ExistsByLicense(ctx, in.Cedula)
	if err != nil {
		return 0, apperrors.NewInternalError(fmt.Errorf("check doctor license: %w", err))
	}
	if taken {
		return 0, licenseTaken(nil)
	}

	stored, err := s.hasher.Hash(in.Password)
	if err != nil {
		return 0, apperrors.NewInternalError(fmt.Errorf("hash password: %w", err))
	}

	doctor := &domain.Doctor{
		Nombre:            in.Nombre,
		Apellidos:         in.Apellidos,
		Especialidad:      in.Especialidad,
		CedulaProfesional: in.Cedula,
		Telefono:          optional(in.Telefono),
		Correo:            in.Email,
		Contrasena:        stored,
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return 0, mapInsertError("insert doctor", err)
	}

	s.logger.Info("doctor registered", zap.Int64("doctor_id", doctor.ID))
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventDoctorRegistered, doctor.ID, domain.RoleDoctor, doctor.Correo,
		events.DoctorRegisteredPayload{Name: doctor.Nombre + " " + doctor.Apellidos, Especialidad: doctor.Especialidad}))
	return doctor.ID, nil
}

// RegisterUser validates and inserts a general user. With issueToken set the
// new user is logged in immediately.
func (s *RegistrationService) RegisterUser(ctx context.Context, in UserRegistration, issueToken bool) (*UserRegistrationResult, error) {
	result, err := s.registerUser(ctx, in, issueToken)
	s.metrics.RecordRegistration("user", registrationOutcome(err))
	return result, err
}

func (s *RegistrationService) registerUser(ctx context.Context, in UserRegistration, issueToken bool) (*UserRegistrationResult, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Apellidos = strings.TrimSpace(in.Apellidos)
	in.Email = NormalizeEmail(in.Email)
	in.FechaNacimiento = strings.TrimSpace(in.FechaNacimiento)
	in.TipoUsuario = strings.TrimSpace(in.TipoUsuario)

	required := []field{
		{"nombre", in.Nombre},
		{"apellidos", in.Apellidos},
		{"email", in.Email},
		{"password", in.Password},
	}
	if s.strictUserFields {
		required = append(required, field{"fechaNacimiento", in.FechaNacimiento}, field{"tipoUsuario", in.TipoUsuario})
	}
	if missing := missingFields(required...); len(missing) > 0 {
		return nil, apperrors.NewMissingFields(missing)
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}

	var birthDate *time.Time
	if in.FechaNacimiento != "" {
		parsed, err := time.Parse(BirthDateLayout, in.FechaNacimiento)
		if err != nil {
			return nil, apperrors.NewValidationError("fechaNacimiento must be YYYY-MM-DD",
				map[string]any{"field": "fechaNacimiento"})
		}
		birthDate = &parsed
	}

	userType := domain.UserType(in.TipoUsuario).OrDefault()
	if !userType.Valid() {
		return nil, apperrors.NewValidationError("tipoUsuario must be Paciente or Familiar",
			map[string]any{"field": "tipoUsuario"})
	}

	taken, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("check user email: %w", err))
	}
	if taken {
		return nil, emailTaken(nil)
	}

	stored, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("hash password: %w", err))
	}

	user := &domain.GeneralUser{
		Nombre:          in.Nombre,
		Apellidos:       in.Apellidos,
		Correo:          in.Email,
		Contrasena:      stored,
		Telefono:        optional(in.Telefono),
		FechaNacimiento: birthDate,
		Sexo:            optional(in.Sexo),
		TipoUsuario:     userType,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, mapInsertError("insert user", err)
	}

	result := &UserRegistrationResult{UserID: user.ID}
	if issueToken && s.tokenMgr != nil {
		token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Correo, user.Nombre, domain.Role(userType))
		if err != nil {
			return nil, apperrors.NewInternalError(fmt.Errorf("sign token: %w", err))
		}
		result.Token = token
		result.ExpiresAt = exp
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("tipo_usuario", string(userType)))
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventUserRegistered, user.ID, domain.Role(userType), user.Correo,
		events.UserRegisteredPayload{Name: user.Nombre + " " + user.Apellidos, TipoUsuario: userType}))
	return result, nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return apperrors.NewValidationError("invalid email format", map[string]any{"field": "email"})
	}
	return nil
}

func emailTaken(err error) error {
	return apperrors.NewConflict(apperrors.CodeEmailTaken, "email already registered", err)
}

func licenseTaken(err error) error {
	return apperrors.NewConflict(apperrors.CodeLicenseTaken, "professional license already registered", err)
}

// mapInsertError turns a unique violation lost to a concurrent insert into
// the matching conflict; anything else is a store failure.
func mapInsertError(op string, err error) error {
	var unique *repository.UniqueViolationError
	if errors.As(err, &unique) {
		if unique.Field == repository.FieldLicense {
			return licenseTaken(unique)
		}
		return emailTaken(unique)
	}
	return apperrors.NewInternalError(fmt.Errorf("%s: %w", op, err))
}

func registrationOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.HasCode(err, apperrors.CodeEmailTaken), apperrors.HasCode(err, apperrors.CodeLicenseTaken):
		return "conflict"
	case apperrors.HasCode(err, apperrors.CodeInternal):
		return "error"
	default:
		return "invalid"
	}
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
