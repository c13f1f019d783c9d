// Package cache provides the read-through, tag-invalidated cache that sits
// between the public site and the content store.
//
// Every entry is stored together with the version of each of its tags at the
// moment population started. InvalidateTag bumps a tag's version, so every
// entry carrying that tag stops matching and the next read repopulates it.
// Entries also expire after their TTL.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Tag vocabulary. Admin mutations invalidate by these exact names.
const (
	TagPackages     = "packages"
	TagDestinations = "destinations"
	TagSections     = "sections"
	TagHeaderData   = "header-data"
)

// DefaultTTL is the staleness window of every cached read
const DefaultTTL = time.Hour

// ErrNilDestination is returned when GetOrPopulate is given nothing to decode into
var ErrNilDestination = errors.New("cache: destination must be a non-nil pointer")

// Producer computes the value for a key on a miss
type Producer func(ctx context.Context) (any, error)

// Service is a read-through cache with tag-based invalidation
type Service interface {
	// GetOrPopulate decodes the cached value for key into dest. On a miss,
	// an expired entry, or an entry whose tags were invalidated, it calls
	// produce, stores the result under key with the given ttl and tags, and
	// decodes it into dest. Errors from produce are returned and never cached.
	GetOrPopulate(ctx context.Context, key string, ttl time.Duration, tags []string, dest any, produce Producer) error

	// InvalidateTag marks every entry carrying tag as stale
	InvalidateTag(ctx context.Context, tag string) error
}

// GetOrPopulate is the typed form of Service.GetOrPopulate
func GetOrPopulate[T any](ctx context.Context, svc Service, key string, ttl time.Duration, tags []string, fetch func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := svc.GetOrPopulate(ctx, key, ttl, tags, &out, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Backend names accepted by New
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// New returns the backend named by backend. The Redis backend requires client.
func New(backend string, cfg Config, client *redis.Client) (Service, error) {
	switch backend {
	case BackendMemory, "":
		m, err := NewMemoryCache(cfg)
		if err != nil {
			return nil, err
		}
		return m, nil
	case BackendRedis:
		if client == nil {
			return nil, &ConfigError{Field: "Driver", Message: "redis backend requires a redis client"}
		}
		return NewRedisCache(client), nil
	default:
		return nil, &ConfigError{Field: "Driver", Message: "unknown backend " + backend}
	}
}
