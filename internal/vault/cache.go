// cache.go implements the TTL cache for vault path listings.
//
// Walking a large vault on every search is the dominant fixed cost, so the
// listing is cached for a short window. The clock is injected so tests can
// advance time without sleeping, and Invalidate gives writers an explicit
// hook after create/edit operations.

package vault

import (
	"sync"
	"time"
)

// listingCache caches the vault's relative path listing for a TTL window.
// Safe for concurrent use; concurrent searches share one listing.
type listingCache struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	paths     []string
	loaded    bool
	fetchedAt time.Time
}

func newListingCache(ttl time.Duration, now func() time.Time) *listingCache {
	if now == nil {
		now = time.Now
	}
	return &listingCache{ttl: ttl, now: now}
}

// get returns the cached listing, calling load to refresh it when the cache
// is empty or stale. Load errors are never cached.
func (c *listingCache) get(load func() ([]string, error)) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.paths, nil
	}

	paths, err := load()
	if err != nil {
		return nil, err
	}
	c.paths = paths
	c.loaded = true
	c.fetchedAt = c.now()
	return paths, nil
}

// invalidate drops the cached listing so the next get reloads from disk.
func (c *listingCache) invalidate() {
	c.mu.Lock()
	c.paths = nil
	c.loaded = false
	c.mu.Unlock()
}
