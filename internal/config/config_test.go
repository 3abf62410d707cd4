package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "APP_ENV", "LOG_LEVEL", "SHUTDOWN_TIMEOUT", "STORAGE_DRIVER", "DATABASE_URL",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB", "POSTGRES_SSLMODE",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "CACHE_ENABLED", "CACHE_TTL",
		"REJECT_EMPTY_ENTRIES", "SESSION_IDLE_TIMEOUT", "SESSION_SWEEP_SCHEDULE",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)

	t.Run("Should apply defaults", func(t *testing.T) {
		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, "9091", cfg.Port)
		assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
		assert.True(t, cfg.CacheEnabled)
		assert.False(t, cfg.RejectEmptyEntries)
		assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
		assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
		assert.Equal(t, "@every 5m", cfg.SessionSweepSchedule)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
		assert.Equal(t, "postgres://postgres:@localhost:5432/vybes?sslmode=disable", cfg.Postgres.DSN())
	})

	t.Run("Should read overrides", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("REJECT_EMPTY_ENTRIES", "true")
		t.Setenv("CACHE_TTL", "1h")
		t.Setenv("REDIS_DB", "3")
		t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
		assert.False(t, cfg.CacheEnabled)
		assert.True(t, cfg.RejectEmptyEntries)
		assert.Equal(t, time.Hour, cfg.CacheTTL)
		assert.Equal(t, 3, cfg.Redis.DB)
		assert.Equal(t, "postgres://u:p@db:5432/x", cfg.Postgres.DSN())
	})

	t.Run("Should allow a cache in front of the memory driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("CACHE_ENABLED", "true")
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.True(t, cfg.CacheEnabled)
	})

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad redis db", key: "REDIS_DB", value: "zero"},
		{name: "bad bool", key: "CACHE_ENABLED", value: "maybe"},
		{name: "bad duration", key: "SESSION_IDLE_TIMEOUT", value: "soon"},
		{name: "unknown driver", key: "STORAGE_DRIVER", value: "sqlite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
