package cache

import (
	"time"
)

// Config sizes the in-process backend. The Redis backend only uses TTL.
type Config struct {
	// Capacity is the maximum number of entries kept in memory
	Capacity int

	// NumShards splits the in-memory store to reduce lock contention
	NumShards int

	// TTL is the upper bound on how long the backing store keeps an entry.
	// Individual reads may ask for a shorter ttl.
	TTL time.Duration

	// EvictionPercentage is the share of entries dropped when Capacity is hit
	EvictionPercentage int

	// EvictionInterval controls how often expired entries are swept; zero keeps the default
	EvictionInterval time.Duration
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          64,
		TTL:                DefaultTTL,
		EvictionPercentage: 10,
	}
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "cache config error in field " + e.Field + ": " + e.Message
}
