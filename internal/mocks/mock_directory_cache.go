package mocks

import (
	"context"

	"github.com/familycare/clinic-api/internal/cache"
	"github.com/familycare/clinic-api/internal/domain"
)

// MockDirectoryCache implements service.DoctorDirectoryCache for testing.
type MockDirectoryCache struct {
	GetFunc        func(ctx context.Context) ([]domain.DoctorSummary, error)
	SetFunc        func(ctx context.Context, doctors []domain.DoctorSummary) error
	InvalidateFunc func(ctx context.Context) error
}

// Get returns the cached listing
func (m *MockDirectoryCache) Get(ctx context.Context) ([]domain.DoctorSummary, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	// Default behavior: miss
	return nil, cache.ErrMiss
}

// Set stores a listing
func (m *MockDirectoryCache) Set(ctx context.Context, doctors []domain.DoctorSummary) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, doctors)
	}
	return nil
}

// Invalidate drops the listing
func (m *MockDirectoryCache) Invalidate(ctx context.Context) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx)
	}
	return nil
}
