package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/familycare/clinic-api/internal/domain"
)

// ErrMiss is returned when the directory is not cached.
var ErrMiss = errors.New("cache miss")

const doctorDirectoryKey = "familycare:directory:doctors"

// DoctorDirectory caches the public doctor listing in Redis.
type DoctorDirectory struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDoctorDirectory returns a Redis-backed cache. A nil client or a zero
// ttl disables caching: every Get misses and writes are dropped.
func NewDoctorDirectory(client *redis.Client, ttl time.Duration) *DoctorDirectory {
	return &DoctorDirectory{client: client, ttl: ttl}
}

func (d *DoctorDirectory) enabled() bool {
	return d != nil && d.client != nil && d.ttl > 0
}

// Get returns the cached listing or ErrMiss.
func (d *DoctorDirectory) Get(ctx context.Context) ([]domain.DoctorSummary, error) {
	if !d.enabled() {
		return nil, ErrMiss
	}
	raw, err := d.client.Get(ctx, doctorDirectoryKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var doctors []domain.DoctorSummary
	if err := json.Unmarshal(raw, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// Set stores the listing for the configured ttl.
func (d *DoctorDirectory) Set(ctx context.Context, doctors []domain.DoctorSummary) error {
	if !d.enabled() {
		return nil
	}
	raw, err := json.Marshal(doctors)
	if err != nil {
		return err
	}
	return d.client.Set(ctx, doctorDirectoryKey, raw, d.ttl).Err()
}

// Invalidate drops the cached listing.
func (d *DoctorDirectory) Invalidate(ctx context.Context) error {
	if !d.enabled() {
		return nil
	}
	return d.client.Del(ctx, doctorDirectoryKey).Err()
}
