package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/familycare/clinic-api/pkg/util/errorutil"
)

const claimsKey = "auth_claims"

// SessionVerifier validates bearer tokens on protected routes.
type SessionVerifier struct {
	tokens *TokenManager
}

// NewSessionVerifier constructs middleware.
func NewSessionVerifier(tokens *TokenManager) *SessionVerifier {
	return &SessionVerifier{tokens: tokens}
}

// Handle rejects requests without a valid token and attaches the claims
// for downstream handlers.
func (m *SessionVerifier) Handle(c *fiber.Ctx) error {
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authHeader == "" {
		return apperrors.NewUnauthorized(apperrors.CodeNoToken, "authorization token required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return apperrors.NewUnauthorized(apperrors.CodeInvalidToken, "invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.NewUnauthorized(apperrors.CodeInvalidToken, "invalid or expired token")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// ClaimsFromContext retrieves the verified token claims.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*Claims)
	return claims, ok && claims != nil
}
