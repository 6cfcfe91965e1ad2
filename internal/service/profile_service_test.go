package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familycare/clinic-api/internal/domain"
	"github.com/familycare/clinic-api/internal/mocks"
	apperrors "github.com/familycare/clinic-api/pkg/util/errorutil"
)

func TestProfileGet(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewIdentityStore()
	doctor := &domain.Doctor{Nombre: "Juan", Apellidos: "Pérez", Especialidad: "Pediatría", CedulaProfesional: "CP1", Correo: "a@b.com", Contrasena: "secret1"}
	require.NoError(t, store.Doctors().Create(ctx, doctor))
	user := &domain.GeneralUser{Nombre: "Ana", Apellidos: "López", Correo: "ana@x.com", Contrasena: "pw", TipoUsuario: domain.UserTypeFamily}
	require.NoError(t, store.Users().Create(ctx, user))

	svc := NewProfileService(store.Doctors(), store.Users())

	t.Run("doctor", func(t *testing.T) {
		profile, err := svc.Get(ctx, doctor.ID, domain.RoleDoctor)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleDoctor, profile.Role)
		assert.Equal(t, "Pediatría", profile.Especialidad)
		assert.Equal(t, "CP1", profile.Cedula)
		assert.Equal(t, "a@b.com", profile.Correo)
	})

	t.Run("family member", func(t *testing.T) {
		profile, err := svc.Get(ctx, user.ID, domain.RoleFamily)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleFamily, profile.Role)
		assert.Equal(t, domain.UserTypeFamily, profile.TipoUsuario)
		assert.Empty(t, profile.Cedula)
	})

	t.Run("role selects the table", func(t *testing.T) {
		// Same numeric id exists in both tables.
		profile, err := svc.Get(ctx, 1, domain.RolePatient)
		require.NoError(t, err)
		assert.Equal(t, "ana@x.com", profile.Correo)
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := svc.Get(ctx, 99, domain.RoleDoctor)
		requireCode(t, err, apperrors.CodeNotFound)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := svc.Get(ctx, doctor.ID, domain.Role("Admin"))
		requireCode(t, err, apperrors.CodeForbidden)
	})
}

func TestProfileGetStoreFailure(t *testing.T) {
	store := mocks.NewIdentityStore()
	store.Err = errors.New("timeout")

	_, err := NewProfileService(store.Doctors(), store.Users()).Get(context.Background(), 1, domain.RoleDoctor)
	requireCode(t, err, apperrors.CodeInternal)
}
