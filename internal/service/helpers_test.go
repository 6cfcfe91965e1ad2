package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/familycare/clinic-api/internal/config"
	"github.com/familycare/clinic-api/internal/events"
	"github.com/familycare/clinic-api/internal/mocks"
	"github.com/familycare/clinic-api/internal/observability"
	apperrors "github.com/familycare/clinic-api/pkg/util/errorutil"
)

type fixture struct {
	store        *mocks.IdentityStore
	dispatcher   events.Dispatcher
	auth         *AuthService
	registration *RegistrationService

	mu        sync.Mutex
	published []events.Event
}

func newFixture(t *testing.T, strict bool) *fixture {
	t.Helper()

	f := &fixture{
		store:      mocks.NewIdentityStore(),
		dispatcher: events.NewInMemoryDispatcher(),
	}
	for _, et := range []events.EventType{
		events.EventDoctorRegistered,
		events.EventUserRegistered,
		events.EventLoginSucceeded,
		events.EventLoginFailed,
	} {
		f.dispatcher.Subscribe(et, f.record)
	}

	metrics := observability.NewMetrics()
	authSvc, err := NewAuthService(config.AuthConfig{
		JWTSecret:       "test-secret",
		SessionTTLHours: 24,
		PasswordScheme:  config.PasswordSchemePlaintext,
	}, AuthDependencies{
		Resolver:   NewIdentityResolver(f.store.Doctors(), f.store.Users()),
		Dispatcher: f.dispatcher,
		Metrics:    metrics,
	})
	require.NoError(t, err)
	f.auth = authSvc

	f.registration = NewRegistrationService(config.RegistrationConfig{StrictUserFields: strict}, RegistrationDependencies{
		DoctorRepo: f.store.Doctors(),
		UserRepo:   f.store.Users(),
		Hasher:     authSvc.PasswordHasher(),
		Tokens:     authSvc.TokenManager(),
		Dispatcher: f.dispatcher,
		Metrics:    metrics,
	})
	return f
}

func (f *fixture) record(_ context.Context, e events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, e)
	return nil
}

func (f *fixture) eventTypes() []events.EventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]events.EventType, 0, len(f.published))
	for _, e := range f.published {
		types = append(types, e.Type)
	}
	return types
}

func juanPerez() DoctorRegistration {
	return DoctorRegistration{
		Nombre:       "Juan",
		Apellidos:    "Pérez",
		Especialidad: "Medicina General",
		Cedula:       "CP1",
		Email:        "a@b.com",
		Password:     "secret1",
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.Equal(t, code, de.Code, "unexpected error: %v", err)
}
