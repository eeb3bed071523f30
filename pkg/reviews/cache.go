package reviews

import (
	"context"
	"sync"
	"time"
)

// Cache stores fetched review lists for a TTL so every page view does not
// hit the review source's rate-limited API.
type Cache interface {
	Get(ctx context.Context, key string) ([]Review, bool)
	Set(ctx context.Context, key string, reviews []Review)
}

// cacheEntry holds cached reviews with a timestamp for TTL expiration.
type cacheEntry struct {
	reviews   []Review
	fetchedAt time.Time
}

// MemoryCache is a thread-safe in-memory cache with TTL expiration.
// Expired entries are cleaned up lazily on Get(); no background goroutine.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
}

// NewMemoryCache creates a new cache with the given TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
	}
}

// Get returns cached reviews if present and not expired.
func (c *MemoryCache) Get(_ context.Context, key string) ([]Review, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Since(entry.fetchedAt) > c.ttl {
		// Expired, clean up lazily. Re-check under write lock: a concurrent
		// Set() may have replaced the entry with a fresh one in between.
		c.mu.Lock()
		if current, ok := c.entries[key]; ok && time.Since(current.fetchedAt) > c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return entry.reviews, true
}

// Set stores reviews with the current timestamp.
func (c *MemoryCache) Set(_ context.Context, key string, reviews []Review) {
	c.mu.Lock()
	c.entries[key] = &cacheEntry{
		reviews:   reviews,
		fetchedAt: time.Now(),
	}
	c.mu.Unlock()
}
