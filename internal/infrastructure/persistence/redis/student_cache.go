package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uni-hub/student-records-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT CACHE IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// StudentCache implements student.Cache using Redis. Records are stored
// as snapshots and rebuilt through the validating constructor on read, so
// a tampered or stale entry can never resurrect an invalid student.
type StudentCache struct {
	cache *Cache
}

// NewStudentCache creates a new StudentCache.
func NewStudentCache(cache *Cache) *StudentCache {
	return &StudentCache{cache: cache}
}

// Get fetches a student from the cache by internal ID.
func (c *StudentCache) Get(ctx context.Context, id string) (*student.Student, error) {
	var snap student.Snapshot
	if err := c.cache.Get(ctx, StudentKey(id), &snap); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get student from cache: %w", err)
	}

	s, err := student.FromSnapshot(snap)
	if err != nil {
		// Drop the poisoned entry so the next read goes to the database.
		_ = c.cache.Delete(ctx, StudentKey(id))
		return nil, ErrCacheMiss
	}
	return s, nil
}

// Set stores a student in the cache with the given TTL.
func (c *StudentCache) Set(ctx context.Context, s *student.Student, ttl time.Duration) error {
	if s == nil {
		return ErrCacheNilValue
	}

	if err := c.cache.Set(ctx, StudentKey(s.ID), s.Snapshot(), ttl); err != nil {
		return fmt.Errorf("failed to cache student: %w", err)
	}
	return nil
}

// Invalidate drops all cached entries for a student.
func (c *StudentCache) Invalidate(ctx context.Context, id string) error {
	if err := c.cache.Delete(ctx, StudentKey(id)); err != nil {
		return fmt.Errorf("failed to invalidate student cache: %w", err)
	}
	return nil
}
