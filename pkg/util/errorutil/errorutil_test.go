package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	conflict := NewConflict(CodeEmailTaken, "email already registered", nil)
	wrapped := fmt.Errorf("register: %w", conflict)
	de := ToDomainError(wrapped)
	require.NotNil(t, de)
	assert.Equal(t, CodeEmailTaken, de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)

	plain := ToDomainError(errors.New("connection refused"))
	assert.Equal(t, CodeInternal, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.HTTPStatus)
	assert.Equal(t, "internal server error", plain.Message)
}

func TestAuthErrorHidesCause(t *testing.T) {
	cause := errors.New("identity not found")
	err := NewAuthError(cause)

	de := ToDomainError(err)
	assert.Equal(t, http.StatusUnauthorized, de.HTTPStatus)
	assert.Equal(t, "invalid email or password", de.Message)
	assert.ErrorIs(t, err, cause)
}

func TestMissingFields(t *testing.T) {
	err := NewMissingFields([]string{"nombre", "email"})

	de := ToDomainError(err)
	assert.Equal(t, CodeMissingFields, de.Code)
	assert.Equal(t, []string{"nombre", "email"}, de.Details["fields"])
	assert.Contains(t, de.Message, "nombre, email")
}

func TestHasCode(t *testing.T) {
	assert.True(t, HasCode(NewUnauthorized(CodeNoToken, "missing token"), CodeNoToken))
	assert.False(t, HasCode(NewUnauthorized(CodeNoToken, "missing token"), CodeInvalidToken))
	assert.False(t, HasCode(errors.New("boom"), CodeInternal))
}
