package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	entryKeyPrefix = "catalog:cache:"
	tagKeyPrefix   = "catalog:tag:"
)

// RedisCache stores entries in Redis so that several API instances share
// one cache and one set of tag versions. Entry expiry uses Redis TTLs.
type RedisCache struct {
	client *redis.Client
	inst   instruments
}

// NewRedisCache creates a new Redis-backed cache
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
		inst:   newInstruments("redis"),
	}
}

// GetOrPopulate implements Service
func (r *RedisCache) GetOrPopulate(ctx context.Context, key string, ttl time.Duration, tags []string, dest any, produce Producer) error {
	if dest == nil {
		return ErrNilDestination
	}
	tags = dedupeTags(tags)
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	ctx, span := r.inst.startGet(ctx, key, tags)
	defer span.End()

	versions, err := r.tagVersions(ctx, tags)
	if err != nil {
		// Without tag versions nothing can be trusted or safely stored
		log.Printf("[Cache] tag versions unavailable for %s: %v", key, err)
		span.RecordError(err)
		r.inst.record(ctx, span, resultMiss)
		value, err := produce(ctx)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("cache: marshal error: %w", err)
		}
		return decode(payload, dest)
	}

	cached, err := r.get(ctx, key)
	switch {
	case err == nil && cached.fresh(time.Now(), versions):
		if decodeErr := decode(cached.Payload, dest); decodeErr == nil {
			r.inst.record(ctx, span, resultHit)
			return nil
		}
		r.inst.record(ctx, span, resultStale)
	case err == nil:
		r.inst.record(ctx, span, resultStale)
	case errors.Is(err, redis.Nil):
		r.inst.record(ctx, span, resultMiss)
	default:
		log.Printf("[Cache] read %s failed, falling through: %v", key, err)
		span.RecordError(err)
		r.inst.record(ctx, span, resultMiss)
	}

	fresh, err := populate(func() (any, error) { return produce(ctx) }, versions, time.Time{})
	if err != nil {
		span.RecordError(err)
		return err
	}

	// Store in cache (ignore cache errors)
	if err := r.set(ctx, key, fresh, ttl); err != nil {
		log.Printf("[Cache] write %s failed: %v", key, err)
	}

	return decode(fresh.Payload, dest)
}

// InvalidateTag implements Service
func (r *RedisCache) InvalidateTag(ctx context.Context, tag string) error {
	ctx, span := r.inst.tracer.Start(ctx, "cache.InvalidateTag",
		trace.WithAttributes(attribute.String("cache.tag", tag)),
	)
	defer span.End()

	if err := r.client.Incr(ctx, tagKeyPrefix+tag).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to invalidate tag %s: %w", tag, err)
	}
	return nil
}

func (r *RedisCache) get(ctx context.Context, key string) (*entry, error) {
	data, err := r.client.Get(ctx, entryKeyPrefix+key).Bytes()
	if err != nil {
		return nil, err
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}
	return &e, nil
}

func (r *RedisCache) set(ctx context.Context, key string, e *entry, ttl time.Duration) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	if err := r.client.Set(ctx, entryKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

func (r *RedisCache) tagVersions(ctx context.Context, tags []string) (map[string]int64, error) {
	out := make(map[string]int64, len(tags))
	if len(tags) == 0 {
		return out, nil
	}

	keys := make([]string, len(tags))
	for i, t := range tags {
		keys[i] = tagKeyPrefix + t
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget error: %w", err)
	}

	for i, v := range values {
		var version int64
		if s, ok := v.(string); ok {
			version, err = strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid version for tag %s: %w", tags[i], err)
			}
		}
		out[tags[i]] = version
	}
	return out, nil
}
