package redis

import (
	"context"
	"fmt"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTRY CACHE IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// RegistryCache invalidates cached registry listings (email domains and
// phone configs) when a registry mutation commits. It satisfies the
// command layer's RegistryCache interface.
type RegistryCache struct {
	cache *Cache
}

// NewRegistryCache creates a new RegistryCache.
func NewRegistryCache(cache *Cache) *RegistryCache {
	return &RegistryCache{cache: cache}
}

// InvalidateRegistry drops every cached key under the named registry.
func (c *RegistryCache) InvalidateRegistry(ctx context.Context, registry string) error {
	if err := c.cache.DeleteByPattern(ctx, RegistryKey(registry)+"*"); err != nil {
		return fmt.Errorf("failed to invalidate registry cache %s: %w", registry, err)
	}
	return nil
}
