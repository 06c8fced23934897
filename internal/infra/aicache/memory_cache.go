package aicache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const defaultCleanupInterval = 10 * time.Minute

// MemoryCache keeps AI responses in process memory with per-entry TTL.
type MemoryCache struct {
	prefix string
	items  *gocache.Cache
}

// NewMemoryCache constructs an in-process cache. Entries stored with ttl <= 0
// use defaultTTL; a non-positive defaultTTL means entries never expire.
func NewMemoryCache(prefix string, defaultTTL time.Duration) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = gocache.NoExpiration
	}
	return &MemoryCache{
		prefix: normalizePrefix(prefix),
		items:  gocache.New(defaultTTL, defaultCleanupInterval),
	}
}

// Get returns the cached value for key.
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := c.items.Get(c.prefix + key)
	if !ok {
		return "", false, nil
	}
	text, ok := value.(string)
	return text, ok, nil
}

// Set stores value under key.
func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.items.Set(c.prefix+key, value, ttl)
	return nil
}

// Reset drops every entry.
func (c *MemoryCache) Reset() {
	c.items.Flush()
}

// Len reports the number of live entries.
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}

func normalizePrefix(prefix string) string {
	if prefix == "" {
		prefix = "skinsight"
	}
	return prefix + ":"
}

var _ Cache = (*MemoryCache)(nil)
