package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familycare/clinic-api/internal/config"
	"github.com/familycare/clinic-api/internal/domain"
	"github.com/familycare/clinic-api/internal/events"
	apperrors "github.com/familycare/clinic-api/pkg/util/errorutil"
)

func TestLoginDoctor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	id, err := f.registration.RegisterDoctor(ctx, juanPerez())
	require.NoError(t, err)

	result, err := f.auth.Login(ctx, LoginInput{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, domain.Session{
		ID:        id,
		Name:      "Juan Pérez",
		Email:     "a@b.com",
		Role:      domain.RoleDoctor,
		Specialty: "Medicina General",
	}, result.Session)
	assert.Empty(t, result.Token, "web clients get no token")
	assert.Contains(t, f.eventTypes(), events.EventLoginSucceeded)
}

func TestLoginGeneralUserWithToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	reg, err := f.registration.RegisterUser(ctx, UserRegistration{
		Nombre: "Ana", Apellidos: "López", Email: "ana@x.com", Password: "pw", TipoUsuario: "Familiar",
	}, false)
	require.NoError(t, err)

	result, err := f.auth.Login(ctx, LoginInput{Email: "ana@x.com", Password: "pw", IssueToken: true})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleFamily, result.Session.Role)
	assert.Equal(t, "Paciente", result.Session.Specialty)
	require.NotEmpty(t, result.Token)

	claims, err := f.auth.TokenManager().ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, claims.SubjectID)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.Equal(t, "Ana López", claims.Name)
	assert.Equal(t, domain.RoleFamily, claims.Role)
	assert.Equal(t, result.ExpiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	_, err := f.registration.RegisterDoctor(ctx, juanPerez())
	require.NoError(t, err)

	tests := []struct {
		name  string
		input LoginInput
		code  string
		cause error
	}{
		{"unknown email", LoginInput{Email: "x@b.com", Password: "secret1"}, apperrors.CodeInvalidCredentials, domain.ErrIdentityNotFound},
		{"wrong password", LoginInput{Email: "a@b.com", Password: "wrong"}, apperrors.CodeInvalidCredentials, domain.ErrBadCredentials},
		{"case differs", LoginInput{Email: "a@b.com", Password: "SECRET1"}, apperrors.CodeInvalidCredentials, domain.ErrBadCredentials},
		{"missing password", LoginInput{Email: "a@b.com"}, apperrors.CodeMissingFields, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := f.auth.Login(ctx, tt.input)
			assert.Nil(t, result)
			requireCode(t, err, tt.code)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
		})
	}

	_, errUnknown := f.auth.Login(ctx, LoginInput{Email: "x@b.com", Password: "p"})
	_, errWrong := f.auth.Login(ctx, LoginInput{Email: "a@b.com", Password: "p"})
	assert.Equal(t, apperrors.ToDomainError(errUnknown).Message, apperrors.ToDomainError(errWrong).Message,
		"unknown email and wrong password are indistinguishable to clients")
	assert.Contains(t, f.eventTypes(), events.EventLoginFailed)
}

func TestLoginStoreFailureIsInternal(t *testing.T) {
	f := newFixture(t, false)
	f.store.Err = errors.New("pool exhausted")

	_, err := f.auth.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "secret1"})
	requireCode(t, err, apperrors.CodeInternal)
	assert.Equal(t, 500, apperrors.ToDomainError(err).HTTPStatus)
}

func TestLoginWithBcryptScheme(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	authSvc, err := NewAuthService(config.AuthConfig{
		JWTSecret:       "test-secret",
		SessionTTLHours: 24,
		PasswordScheme:  config.PasswordSchemeBcrypt,
		BcryptCost:      4,
	}, AuthDependencies{Resolver: NewIdentityResolver(f.store.Doctors(), f.store.Users())})
	require.NoError(t, err)

	reg := NewRegistrationService(config.RegistrationConfig{}, RegistrationDependencies{
		DoctorRepo: f.store.Doctors(),
		UserRepo:   f.store.Users(),
		Hasher:     authSvc.PasswordHasher(),
	})
	_, err = reg.RegisterDoctor(ctx, juanPerez())
	require.NoError(t, err)

	stored, err := f.store.Doctors().GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Contrasena)

	_, err = authSvc.Login(ctx, LoginInput{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = authSvc.Login(ctx, LoginInput{Email: "a@b.com", Password: "secret2"})
	requireCode(t, err, apperrors.CodeInvalidCredentials)
}

func TestNewAuthServiceRejectsUnknownScheme(t *testing.T) {
	_, err := NewAuthService(config.AuthConfig{JWTSecret: "x", PasswordScheme: "rot13"}, AuthDependencies{})
	require.Error(t, err)
}
