package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/familycare/clinic-api/internal/config"
)

// PasswordHasher turns passwords into stored values and checks them.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Matches(stored, plain string) bool
}

// NewPasswordHasher returns the hasher for the configured scheme.
func NewPasswordHasher(cfg config.AuthConfig) (PasswordHasher, error) {
	switch cfg.PasswordScheme {
	case config.PasswordSchemePlaintext, "":
		return PlaintextHasher{}, nil
	case config.PasswordSchemeBcrypt:
		return BcryptHasher{Cost: cfg.BcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", cfg.PasswordScheme)
	}
}

// PlaintextHasher stores passwords verbatim and compares them exactly,
// case-sensitive and without normalization. Kept for compatibility with
// existing rows.
type PlaintextHasher struct{}

func (PlaintextHasher) Hash(plain string) (string, error) {
	return plain, nil
}

func (PlaintextHasher) Matches(stored, plain string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1
}

// BcryptHasher stores salted bcrypt hashes.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (BcryptHasher) Matches(stored, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}
