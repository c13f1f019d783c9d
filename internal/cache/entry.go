package cache

import (
	"encoding/json"
	"fmt"
	"time"
)

// entry is what both backends store under a key
type entry struct {
	Payload   json.RawMessage  `json:"payload"`
	Tags      map[string]int64 `json:"tags"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// fresh reports whether e may be served given the current tag versions
func (e *entry) fresh(now time.Time, versions map[string]int64) bool {
	if e == nil {
		return false
	}
	if !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt) {
		return false
	}
	if len(e.Tags) != len(versions) {
		return false
	}
	for tag, v := range versions {
		stored, ok := e.Tags[tag]
		if !ok || stored != v {
			return false
		}
	}
	return true
}

// populate runs produce and returns the entry to store plus its encoded payload
func populate(produce func() (any, error), versions map[string]int64, expiresAt time.Time) (*entry, error) {
	value, err := produce()
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("cache: marshal error: %w", err)
	}
	return &entry{Payload: payload, Tags: versions, ExpiresAt: expiresAt}, nil
}

func decode(payload []byte, dest any) error {
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("cache: unmarshal error: %w", err)
	}
	return nil
}

func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
