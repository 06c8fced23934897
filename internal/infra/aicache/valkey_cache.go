package aicache

import (
	"context"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyCache persists AI responses in a Valkey-compatible database so
// replicas share them.
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string) *ValkeyCache {
	return &ValkeyCache{client: client, prefix: normalizePrefix(prefix)}
}

// Get returns the cached value for key.
func (c *ValkeyCache) Get(ctx context.Context, key string) (string, bool, error) {
	result := c.client.Do(ctx, c.client.B().Get().Key(c.prefix+key).Build())
	payload, err := result.ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return payload, true, nil
}

// Set stores value under key. Sub-second TTLs round up to one second.
func (c *ValkeyCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	builder := c.client.B().Set().Key(c.prefix + key).Value(value)
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}

var _ Cache = (*ValkeyCache)(nil)
