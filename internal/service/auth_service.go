package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/familycare/clinic-api/internal/auth"
	"github.com/familycare/clinic-api/internal/config"
	"github.com/familycare/clinic-api/internal/domain"
	"github.com/familycare/clinic-api/internal/events"
	"github.com/familycare/clinic-api/internal/observability"
	apperrors "github.com/familycare/clinic-api/pkg/util/errorutil"
)

// LoginInput carries the credentials of a login attempt.
type LoginInput struct {
	Email      string
	Password   string
	IssueToken bool
}

// LoginResult is a successful login. Token is empty for web clients.
type LoginResult struct {
	Session   domain.Session
	Token     string
	ExpiresAt time.Time
}

// AuthService authenticates identities and mints session tokens.
type AuthService struct {
	resolver   *IdentityResolver
	hasher     auth.PasswordHasher
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Resolver   *IdentityResolver
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewAuthService builds the service, its token manager and password hasher
// from the auth configuration.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) (*AuthService, error) {
	hasher, err := auth.NewPasswordHasher(cfg)
	if err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		resolver:   deps.Resolver,
		hasher:     hasher,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL()),
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}, nil
}

// Login resolves the identity behind email and checks the password.
// Unknown emails and wrong passwords produce the same client-facing error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := NormalizeEmail(in.Email)
	if missing := missingFields(field{"email", email}, field{"password", in.Password}); len(missing) > 0 {
		return nil, apperrors.NewMissingFields(missing)
	}

	identity, err := s.resolver.Resolve(ctx, email)
	if errors.Is(err, domain.ErrIdentityNotFound) {
		s.loginFailed(ctx, email, "not_found")
		return nil, apperrors.NewAuthError(domain.ErrIdentityNotFound)
	}
	if err != nil {
		s.metrics.RecordLogin("error")
		return nil, apperrors.NewInternalError(err)
	}

	if !s.hasher.Matches(identity.Password(), in.Password) {
		s.loginFailed(ctx, email, "bad_credentials")
		return nil, apperrors.NewAuthError(domain.ErrBadCredentials)
	}

	result := &LoginResult{Session: domain.NewSession(identity)}
	if in.IssueToken {
		token, exp, err := s.tokenMgr.GenerateToken(result.Session.ID, result.Session.Email, result.Session.Name, result.Session.Role)
		if err != nil {
			s.metrics.RecordLogin("error")
			return nil, apperrors.NewInternalError(fmt.Errorf("sign token: %w", err))
		}
		result.Token = token
		result.ExpiresAt = exp
	}

	s.metrics.RecordLogin("success")
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventLoginSucceeded,
		result.Session.ID, result.Session.Role, result.Session.Email, nil))
	return result, nil
}

func (s *AuthService) loginFailed(ctx context.Context, email, reason string) {
	s.metrics.RecordLogin(reason)
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventLoginFailed, 0, "", email,
		events.LoginFailedPayload{Reason: reason}))
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// PasswordHasher exposes the configured hasher for registration.
func (s *AuthService) PasswordHasher() auth.PasswordHasher {
	return s.hasher
}

func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

type field struct {
	name  string
	value string
}

func missingFields(fields ...field) []string {
	var missing []string
	for _, f := range fields {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
