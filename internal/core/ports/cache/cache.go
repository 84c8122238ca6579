package cache

import (
	"context"
	"time"
)

// Cache is a small JSON value cache used for slow-changing reference data.
type Cache interface {
	// Get decodes the cached value for key into dest and reports whether it was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete removes keys; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
