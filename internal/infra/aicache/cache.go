// Package aicache stores raw AI generation responses so identical prompts
// skip the network call.
package aicache

import (
	"context"
	"time"
)

// Cache is satisfied by every implementation in this package and matches the
// cache ports of the weekly and products services.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
