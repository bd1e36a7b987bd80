package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8083", cfg.Port)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "", cfg.Redis.Addr)
	assert.Equal(t, 10*time.Minute, cfg.RoomCacheTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Jobs.CheckoutEnabled)
	assert.Equal(t, "0 0 * * *", cfg.Jobs.CheckoutCron)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "rooms")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("ROOM_CACHE_TTL", "30s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CHECKOUT_JOB_ENABLED", "false")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 30*time.Second, cfg.RoomCacheTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Jobs.CheckoutEnabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Contains(t, cfg.Database.DSN(), "dbname=rooms")
}

func TestLoad_UnknownStoreDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}
