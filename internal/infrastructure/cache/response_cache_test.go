package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"sample-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) *ResponseCache {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewResponseCache(ctx, ttl, 0)
}

func TestResponseCache_SetAndGet(t *testing.T) {
	c := newTestCache(t, 5*time.Minute)

	c.Set("key-1", &domain.UpstreamResponse{StatusCode: 200, Body: []byte(`{"@id":"u1"}`)})

	got, found := c.Get("key-1")
	require.True(t, found)
	assert.Equal(t, 200, got.StatusCode)
	assert.JSONEq(t, `{"@id":"u1"}`, string(got.Body))
}

func TestResponseCache_NotFound(t *testing.T) {
	c := newTestCache(t, 5*time.Minute)

	got, found := c.Get("nonexistent")
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestResponseCache_Expiration(t *testing.T) {
	c := newTestCache(t, time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("key-exp", &domain.UpstreamResponse{StatusCode: 200})

	_, found := c.Get("key-exp")
	assert.True(t, found)

	now = now.Add(2 * time.Minute)
	got, found := c.Get("key-exp")
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestResponseCache_StoresCopies(t *testing.T) {
	c := newTestCache(t, time.Minute)
	original := &domain.UpstreamResponse{StatusCode: 200, Body: []byte("abc")}

	c.Set("k", original)
	original.Body[0] = 'x'

	got, _ := c.Get("k")
	assert.Equal(t, "abc", string(got.Body))

	got.Body[0] = 'y'
	again, _ := c.Get("k")
	assert.Equal(t, "abc", string(again.Body))
}

func TestResponseCache_Delete(t *testing.T) {
	c := newTestCache(t, time.Minute)
	c.Set("k", &domain.UpstreamResponse{StatusCode: 200})

	c.Delete("k")

	_, found := c.Get("k")
	assert.False(t, found)
	c.Delete("missing")
}

func TestResponseCache_DisabledTTL(t *testing.T) {
	c := newTestCache(t, 0)
	c.Set("k", &domain.UpstreamResponse{StatusCode: 200})

	_, found := c.Get("k")
	assert.False(t, found)
}

func TestResponseCache_Cleanup(t *testing.T) {
	c := newTestCache(t, time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("old", &domain.UpstreamResponse{StatusCode: 200})
	now = now.Add(30 * time.Second)
	c.Set("fresh", &domain.UpstreamResponse{StatusCode: 200})
	now = now.Add(45 * time.Second)

	c.cleanup()

	c.mu.RLock()
	remaining := len(c.entries)
	c.mu.RUnlock()
	assert.Equal(t, 1, remaining)
	_, found := c.Get("fresh")
	assert.True(t, found)
}

func TestResponseCache_ConcurrentAccess(t *testing.T) {
	c := newTestCache(t, time.Minute)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k-%d", i%5)
			c.Set(key, &domain.UpstreamResponse{StatusCode: 200, Body: []byte("x")})
			c.Get(key)
			if i%7 == 0 {
				c.Delete(key)
			}
		}(i)
	}
	wg.Wait()
}
