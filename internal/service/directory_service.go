package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/familycare/clinic-api/internal/cache"
	"github.com/familycare/clinic-api/internal/domain"
	"github.com/familycare/clinic-api/internal/events"
	"github.com/familycare/clinic-api/internal/repository"
	apperrors "github.com/familycare/clinic-api/pkg/util/errorutil"
)

// DoctorDirectoryCache stores the public doctor listing.
// Get returns cache.ErrMiss when nothing is cached.
type DoctorDirectoryCache interface {
	Get(ctx context.Context) ([]domain.DoctorSummary, error)
	Set(ctx context.Context, doctors []domain.DoctorSummary) error
	Invalidate(ctx context.Context) error
}

// DirectoryService lists doctors through a read-through cache.
//
// generation counts invalidations seen by this process. A listing read from
// the database before an invalidation must not outlive it in the cache.
// Invalidations from other instances are not tracked; their stale window is
// bounded by the cache ttl.
type DirectoryService struct {
	doctors    repository.DoctorRepository
	cache      DoctorDirectoryCache
	logger     *zap.Logger
	generation atomic.Uint64
}

// NewDirectoryService builds the service. directoryCache may be nil.
func NewDirectoryService(doctors repository.DoctorRepository, directoryCache DoctorDirectoryCache, logger *zap.Logger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{doctors: doctors, cache: directoryCache, logger: logger}
}

// ListDoctors returns every doctor without credentials, ordered by id.
// Cache failures are logged and fall through to the database.
func (s *DirectoryService) ListDoctors(ctx context.Context) ([]domain.DoctorSummary, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("doctor directory cache read failed", zap.Error(err))
		}
	}

	generation := s.generation.Load()
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("list doctors: %w", err))
	}

	summaries := make([]domain.DoctorSummary, 0, len(doctors))
	for _, doctor := range doctors {
		summaries = append(summaries, doctor.Summary())
	}

	if s.cache != nil {
		s.fill(ctx, generation, summaries)
	}
	return summaries, nil
}

// fill caches a listing read at generation. The generation is checked after
// the write: invalidate bumps it before deleting, so a write that raced an
// invalidation is either deleted by it or dropped here.
func (s *DirectoryService) fill(ctx context.Context, generation uint64, summaries []domain.DoctorSummary) {
	if s.generation.Load() != generation {
		return
	}
	if err := s.cache.Set(ctx, summaries); err != nil {
		s.logger.Warn("doctor directory cache write failed", zap.Error(err))
		return
	}
	if s.generation.Load() != generation {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("doctor directory cache invalidate failed", zap.Error(err))
		}
	}
}

func (s *DirectoryService) invalidate(ctx context.Context) error {
	s.generation.Add(1)
	return s.cache.Invalidate(ctx)
}

// RegisterHandlers drops the cached listing whenever a doctor registers.
func (s *DirectoryService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil || s.cache == nil {
		return
	}
	dispatcher.Subscribe(events.EventDoctorRegistered, func(ctx context.Context, _ events.Event) error {
		return s.invalidate(ctx)
	})
}
