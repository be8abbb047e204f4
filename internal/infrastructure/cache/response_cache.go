package cache

import (
	"context"
	"sync"
	"time"

	"sample-app/internal/domain"
)

// cacheEntry is a cached upstream answer.
type cacheEntry struct {
	resp      *domain.UpstreamResponse
	expiresAt time.Time
}

// ResponseCache provides thread-safe in-memory caching of upstream responses
// with TTL. Implements domain.ResponseCache.
type ResponseCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewResponseCache creates a cache whose entries live for ttl. Expired entries
// are swept every interval until ctx is done.
func NewResponseCache(ctx context.Context, ttl, interval time.Duration) *ResponseCache {
	c := &ResponseCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
	if interval > 0 {
		go c.cleanupLoop(ctx, interval)
	}
	return c
}

// Get returns a copy of the cached response for key.
func (c *ResponseCache) Get(key string) (*domain.UpstreamResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[key]
	if !found || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.resp.Clone(), true
}

// Set stores a copy of resp under key.
func (c *ResponseCache) Set(key string, resp *domain.UpstreamResponse) {
	if resp == nil || c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cacheEntry{
		resp:      resp.Clone(),
		expiresAt: c.now().Add(c.ttl),
	}
}

// Delete evicts key.
func (c *ResponseCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// cleanup removes expired entries.
func (c *ResponseCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// cleanupLoop runs periodic cleanup of expired entries.
func (c *ResponseCache) cleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}
