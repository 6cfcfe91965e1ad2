package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familycare/clinic-api/internal/domain"
	"github.com/familycare/clinic-api/internal/mocks"
)

func TestResolveDoctorTakesPriority(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewIdentityStore()
	require.NoError(t, store.Doctors().Create(ctx, &domain.Doctor{Nombre: "Juan", Apellidos: "Pérez", CedulaProfesional: "CP1", Correo: "shared@x.com"}))
	require.NoError(t, store.Users().Create(ctx, &domain.GeneralUser{Nombre: "Ana", Apellidos: "López", Correo: "shared@x.com"}))

	identity, err := NewIdentityResolver(store.Doctors(), store.Users()).Resolve(ctx, "shared@x.com")
	require.NoError(t, err)
	assert.Equal(t, domain.IdentityDoctor, identity.Kind)
	assert.Equal(t, domain.RoleDoctor, identity.Role())
}

func TestResolveGeneralUser(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewIdentityStore()
	require.NoError(t, store.Users().Create(ctx, &domain.GeneralUser{Nombre: "Ana", Apellidos: "López", Correo: "ana@x.com", TipoUsuario: domain.UserTypeFamily}))

	identity, err := NewIdentityResolver(store.Doctors(), store.Users()).Resolve(ctx, "  ANA@x.com ")
	require.NoError(t, err)
	assert.Equal(t, domain.IdentityGeneralUser, identity.Kind)
	assert.Equal(t, domain.RoleFamily, identity.Role())
}

func TestResolveNotFound(t *testing.T) {
	store := mocks.NewIdentityStore()

	_, err := NewIdentityResolver(store.Doctors(), store.Users()).Resolve(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, domain.ErrIdentityNotFound)
}

func TestResolveStoreFailure(t *testing.T) {
	store := mocks.NewIdentityStore()
	store.Err = errors.New("connection refused")

	_, err := NewIdentityResolver(store.Doctors(), store.Users()).Resolve(context.Background(), "a@b.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrIdentityNotFound)
}
