package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CACHE_DRIVER", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("ADMIN_EMAILS", " Ops@TigoViajes.com ,ventas@tigoviajes.com,,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, CacheDriverMemory, cfg.Cache.Driver)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, int64(5), cfg.Server.MaxUploadSizeMB)
	assert.Equal(t, []string{"ops@tigoviajes.com", "ventas@tigoviajes.com"}, cfg.Admin.Emails)
	assert.True(t, cfg.Admin.IsAdminEmail("OPS@tigoviajes.com"))
	assert.False(t, cfg.Admin.IsAdminEmail("someone@else.com"))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			JWT:   JWTConfig{Secret: "s"},
			Cache: CacheConfig{Driver: CacheDriverRedis, TTL: time.Hour},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing jwt secret", mutate: func(c *Config) { c.JWT.Secret = "" }, wantErr: true},
		{name: "unknown cache driver", mutate: func(c *Config) { c.Cache.Driver = "memcached" }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.Cache.TTL = 0 }, wantErr: true},
		{name: "otel without endpoint", mutate: func(c *Config) { c.OTEL.Enabled = true }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOptionalIntegrations(t *testing.T) {
	assert.False(t, FirebaseConfig{ProjectID: "p"}.Enabled())
	assert.True(t, FirebaseConfig{ProjectID: "p", PrivateKey: "k", ClientEmail: "e"}.Enabled())
	assert.False(t, S3Config{Bucket: "b"}.Enabled())
	assert.True(t, S3Config{Endpoint: "http://localhost:8333", Bucket: "b"}.Enabled())
}
