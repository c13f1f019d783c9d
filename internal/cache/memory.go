package cache

import (
	"context"
	"sync"
	"time"

	"github.com/viccon/sturdyc"
)

// MemoryCache keeps entries in-process in a sharded sturdyc client.
// Tag versions live next to it, so invalidation is visible to the whole process.
type MemoryCache struct {
	client *sturdyc.Client[*entry]
	now    func() time.Time
	inst   instruments

	mu       sync.RWMutex
	versions map[string]int64
}

// MemoryOption customizes a MemoryCache
type MemoryOption func(*MemoryCache)

// WithClock replaces time.Now, used to drive expiry in tests
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryCache) {
		m.now = now
	}
}

// NewMemoryCache creates an in-process cache from cfg
func NewMemoryCache(cfg Config, opts ...MemoryOption) (*MemoryCache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var sturdyOpts []sturdyc.Option
	if cfg.EvictionInterval > 0 {
		sturdyOpts = append(sturdyOpts, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	m := &MemoryCache{
		client:   sturdyc.New[*entry](cfg.Capacity, cfg.NumShards, cfg.TTL, cfg.EvictionPercentage, sturdyOpts...),
		now:      time.Now,
		inst:     newInstruments("memory"),
		versions: make(map[string]int64),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// GetOrPopulate implements Service
func (m *MemoryCache) GetOrPopulate(ctx context.Context, key string, ttl time.Duration, tags []string, dest any, produce Producer) error {
	if dest == nil {
		return ErrNilDestination
	}
	tags = dedupeTags(tags)

	ctx, span := m.inst.startGet(ctx, key, tags)
	defer span.End()

	versions := m.snapshot(tags)

	cached, ok := m.client.Get(key)
	if ok && cached.fresh(m.now(), versions) {
		if err := decode(cached.Payload, dest); err == nil {
			m.inst.record(ctx, span, resultHit)
			return nil
		}
	}
	if ok {
		m.inst.record(ctx, span, resultStale)
	} else {
		m.inst.record(ctx, span, resultMiss)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}
	fresh, err := populate(func() (any, error) { return produce(ctx) }, versions, m.now().Add(ttl))
	if err != nil {
		span.RecordError(err)
		return err
	}
	m.client.Set(key, fresh)

	return decode(fresh.Payload, dest)
}

// InvalidateTag implements Service
func (m *MemoryCache) InvalidateTag(ctx context.Context, tag string) error {
	_, span := m.inst.tracer.Start(ctx, "cache.InvalidateTag")
	defer span.End()

	m.mu.Lock()
	m.versions[tag]++
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, including stale ones not yet evicted
func (m *MemoryCache) Len() int {
	return m.client.Size()
}

func (m *MemoryCache) snapshot(tags []string) map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]int64, len(tags))
	for _, t := range tags {
		out[t] = m.versions[t]
	}
	return out
}
