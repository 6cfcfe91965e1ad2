package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familycare/clinic-api/internal/domain"
	"github.com/familycare/clinic-api/internal/events"
	apperrors "github.com/familycare/clinic-api/pkg/util/errorutil"
)

func TestRegisterDoctor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	in := juanPerez()
	in.Email = " A@B.com "
	in.Telefono = "555-0100"
	id, err := f.registration.RegisterDoctor(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	stored, err := f.store.Doctors().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", stored.Correo)
	assert.Equal(t, "secret1", stored.Contrasena)
	require.NotNil(t, stored.Telefono)
	assert.Equal(t, "555-0100", *stored.Telefono)
	assert.Equal(t, []events.EventType{events.EventDoctorRegistered}, f.eventTypes())
}

func TestRegisterDoctorConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	_, err := f.registration.RegisterDoctor(ctx, juanPerez())
	require.NoError(t, err)

	sameEmail := juanPerez()
	sameEmail.Cedula = "CP2"
	_, err = f.registration.RegisterDoctor(ctx, sameEmail)
	requireCode(t, err, apperrors.CodeEmailTaken)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)

	sameLicense := juanPerez()
	sameLicense.Email = "other@b.com"
	_, err = f.registration.RegisterDoctor(ctx, sameLicense)
	requireCode(t, err, apperrors.CodeLicenseTaken)

	both := juanPerez()
	_, err = f.registration.RegisterDoctor(ctx, both)
	requireCode(t, err, apperrors.CodeEmailTaken)

	assert.Equal(t, 1, f.store.DoctorCount())
}

func TestRegisterDoctorValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	_, err := f.registration.RegisterDoctor(ctx, DoctorRegistration{Nombre: "Juan", Email: "a@b.com"})
	requireCode(t, err, apperrors.CodeMissingFields)
	assert.Equal(t, []string{"apellidos", "especialidad", "cedula", "password"},
		apperrors.ToDomainError(err).Details["fields"])

	bad := juanPerez()
	bad.Email = "not-an-email"
	_, err = f.registration.RegisterDoctor(ctx, bad)
	requireCode(t, err, apperrors.CodeValidation)

	blank := juanPerez()
	blank.Nombre = "   "
	_, err = f.registration.RegisterDoctor(ctx, blank)
	requireCode(t, err, apperrors.CodeMissingFields)

	assert.Zero(t, f.store.DoctorCount())
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	result, err := f.registration.RegisterUser(ctx, UserRegistration{
		Nombre:          "Ana",
		Apellidos:       "López",
		Email:           "ana@x.com",
		Password:        "pw",
		FechaNacimiento: "1990-04-12",
		Sexo:            "F",
	}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.UserID)
	require.NotEmpty(t, result.Token)

	claims, err := f.auth.TokenManager().ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.UserID, claims.SubjectID)
	assert.Equal(t, "Ana", claims.Name, "self-login token carries the given name")
	assert.Equal(t, domain.RolePatient, claims.Role)

	stored, err := f.store.Users().GetByID(ctx, result.UserID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserTypePatient, stored.TipoUsuario)
	require.NotNil(t, stored.FechaNacimiento)
	assert.Equal(t, time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC), *stored.FechaNacimiento)
	assert.Nil(t, stored.Telefono)
}

func TestRegisterUserWithoutTokenForWebClients(t *testing.T) {
	f := newFixture(t, false)

	result, err := f.registration.RegisterUser(context.Background(), UserRegistration{
		Nombre: "Ana", Apellidos: "López", Email: "ana@x.com", Password: "pw",
	}, false)
	require.NoError(t, err)
	assert.Empty(t, result.Token)
}

func TestRegisterUserValidation(t *testing.T) {
	ctx := context.Background()
	valid := UserRegistration{Nombre: "Ana", Apellidos: "López", Email: "ana@x.com", Password: "pw"}

	tests := []struct {
		name   string
		strict bool
		mutate func(*UserRegistration)
		code   string
	}{
		{"missing password", false, func(u *UserRegistration) { u.Password = "" }, apperrors.CodeMissingFields},
		{"strict requires birth date and type", true, func(*UserRegistration) {}, apperrors.CodeMissingFields},
		{"bad birth date", false, func(u *UserRegistration) { u.FechaNacimiento = "12/04/1990" }, apperrors.CodeValidation},
		{"unknown user type", false, func(u *UserRegistration) { u.TipoUsuario = "Admin" }, apperrors.CodeValidation},
		{"bad email", false, func(u *UserRegistration) { u.Email = "ana" }, apperrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.strict)
			in := valid
			tt.mutate(&in)

			_, err := f.registration.RegisterUser(ctx, in, false)
			requireCode(t, err, tt.code)
			assert.Zero(t, f.store.UserCount())
		})
	}

	t.Run("strict policy accepts complete input", func(t *testing.T) {
		f := newFixture(t, true)
		in := valid
		in.FechaNacimiento = "1990-04-12"
		in.TipoUsuario = "Familiar"

		_, err := f.registration.RegisterUser(ctx, in, false)
		require.NoError(t, err)
	})
}

func TestRegisterUserEmailTaken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	in := UserRegistration{Nombre: "Ana", Apellidos: "López", Email: "ana@x.com", Password: "pw"}

	_, err := f.registration.RegisterUser(ctx, in, false)
	require.NoError(t, err)

	in.Nombre = "Otra"
	_, err = f.registration.RegisterUser(ctx, in, false)
	requireCode(t, err, apperrors.CodeEmailTaken)
	assert.Equal(t, 1, f.store.UserCount())
}

func TestDoctorAndUserMayShareEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	_, err := f.registration.RegisterDoctor(ctx, juanPerez())
	require.NoError(t, err)
	_, err = f.registration.RegisterUser(ctx, UserRegistration{
		Nombre: "Juan", Apellidos: "Pérez", Email: "a@b.com", Password: "other",
	}, false)
	require.NoError(t, err)

	result, err := f.auth.Login(ctx, LoginInput{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDoctor, result.Session.Role)

	_, err = f.auth.Login(ctx, LoginInput{Email: "a@b.com", Password: "other"})
	requireCode(t, err, apperrors.CodeInvalidCredentials)
}

func TestConcurrentUserRegistrationSameEmail(t *testing.T) {
	f := newFixture(t, false)

	// Hold both requests after their pre-check so both see the email as free.
	f.store.AfterExistsCheck = barrier(2)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.registration.RegisterUser(context.Background(), UserRegistration{
				Nombre: "Ana", Apellidos: "López", Email: "race@x.com", Password: "pw",
			}, false)
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case apperrors.HasCode(err, apperrors.CodeEmailTaken):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.Equal(t, 1, f.store.UserCount())
}

func TestConcurrentDoctorRegistrationSameLicense(t *testing.T) {
	f := newFixture(t, false)

	f.store.AfterExistsCheck = barrier(2)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := juanPerez()
			in.Email = []string{"one@x.com", "two@x.com"}[i]
			_, errs[i] = f.registration.RegisterDoctor(context.Background(), in)
		}(i)
	}
	wg.Wait()

	var conflicts int
	for _, err := range errs {
		if err != nil {
			requireCode(t, err, apperrors.CodeLicenseTaken)
			conflicts++
		}
	}
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, 1, f.store.DoctorCount())
}

func TestRegisterStoreFailure(t *testing.T) {
	f := newFixture(t, false)
	f.store.Err = errors.New("connection reset")

	_, err := f.registration.RegisterDoctor(context.Background(), juanPerez())
	requireCode(t, err, apperrors.CodeInternal)

	_, err = f.registration.RegisterUser(context.Background(), UserRegistration{
		Nombre: "Ana", Apellidos: "López", Email: "ana@x.com", Password: "pw",
	}, false)
	requireCode(t, err, apperrors.CodeInternal)
}

// barrier blocks the first n callers until all n have arrived; later calls
// pass straight through.
func barrier(n int) func() {
	var (
		mu      sync.Mutex
		arrived int
	)
	release := make(chan struct{})
	return func() {
		mu.Lock()
		arrived++
		if arrived == n {
			close(release)
		}
		mu.Unlock()
		<-release
	}
}
