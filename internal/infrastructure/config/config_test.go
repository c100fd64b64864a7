package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cr3t",
	}))
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "s3cr3t", cfg.Auth.JWTSecret)
	require.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	require.Equal(t, 10, cfg.Auth.BcryptCost)
	require.Equal(t, DriverPostgres, cfg.Store.Driver)
	require.Empty(t, cfg.Redis.Addr)
	require.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	require.Equal(t, 5*time.Second, cfg.Redis.Timeout)
	require.Equal(t, 10*time.Second, cfg.Mongo.Timeout)
	require.Zero(t, cfg.Mongo.MaxPoolSize)
	require.True(t, cfg.IsDevelopment())
}

func TestLoad_RequiresSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":          "x",
		"TOKEN_TTL":           "2h",
		"STORE_DRIVER":        "sqlite",
		"SQLITE_PATH":         "/tmp/t.db",
		"REDIS_ADDR":          "localhost:6379",
		"REDIS_POOL_SIZE":     "32",
		"MONGO_MAX_POOL_SIZE": "64",
		"ENV":                 "production",
	}))
	require.NoError(t, err)

	require.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, DriverSQLite, cfg.Store.Driver)
	require.Equal(t, "/tmp/t.db", cfg.SQLite.Path)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.Equal(t, 32, cfg.Redis.PoolSize)
	require.Equal(t, uint64(64), cfg.Mongo.MaxPoolSize)
	require.False(t, cfg.IsDevelopment())
}

func TestLoad_UnknownDriver(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "x",
		"STORE_DRIVER": "cassandra",
	}))
	require.Error(t, err)
}
