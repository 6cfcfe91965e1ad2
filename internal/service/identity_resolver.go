package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/familycare/clinic-api/internal/domain"
	"github.com/familycare/clinic-api/internal/repository"
)

// IdentityResolver maps an email to the identity that owns it.
//
// Emails are unique per table only, so the same address may exist as both a
// doctor and a general user. The doctor table always wins.
type IdentityResolver struct {
	doctors repository.DoctorRepository
	users   repository.UserRepository
}

// NewIdentityResolver builds the resolver.
func NewIdentityResolver(doctors repository.DoctorRepository, users repository.UserRepository) *IdentityResolver {
	return &IdentityResolver{doctors: doctors, users: users}
}

// Resolve returns the identity for email or domain.ErrIdentityNotFound.
func (r *IdentityResolver) Resolve(ctx context.Context, email string) (*domain.Identity, error) {
	email = NormalizeEmail(email)

	doctor, err := r.doctors.GetByEmail(ctx, email)
	if err == nil {
		return domain.DoctorIdentity(doctor), nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup doctor: %w", err)
	}

	user, err := r.users.GetByEmail(ctx, email)
	if err == nil {
		return domain.UserIdentity(user), nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	return nil, domain.ErrIdentityNotFound
}

// NormalizeEmail trims and lower-cases an address before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
