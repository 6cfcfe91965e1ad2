package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familycare/clinic-api/internal/domain"
	apperrors "github.com/familycare/clinic-api/pkg/util/errorutil"
)

func newVerifierApp(tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": de.Code})
		},
	})
	app.Get("/me", NewSessionVerifier(tm).Handle, func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"id": claims.SubjectID, "role": claims.Role})
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, header string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestSessionVerifier(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	app := newVerifierApp(tm)

	valid, _, err := tm.GenerateToken(9, "a@b.com", "Juan Pérez", domain.RoleDoctor)
	require.NoError(t, err)

	expired, _, err := NewTokenManager("test-secret", time.Hour).
		WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).
		GenerateToken(9, "a@b.com", "Juan Pérez", domain.RoleDoctor)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"missing header", "", http.StatusUnauthorized, apperrors.CodeNoToken},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, apperrors.CodeInvalidToken},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, apperrors.CodeInvalidToken},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized, apperrors.CodeInvalidToken},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, apperrors.CodeInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doGet(t, app, tt.header)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body["error"])
		})
	}

	t.Run("valid token attaches claims", func(t *testing.T) {
		status, body := doGet(t, app, "bearer "+valid)
		assert.Equal(t, http.StatusOK, status)
		assert.EqualValues(t, 9, body["id"])
		assert.Equal(t, "Medico", body["role"])
	})
}
