package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/schlac/mazepath/config"
)

var keys = []string{
	"HOST_IP", "REST_PORT", "GIN_MODE", "LOG_LEVEL", "LOG_FORMAT",
	"CACHE_BACKEND", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"CACHE_TTL_SECONDS", "CACHE_MAX_ENTRIES", "MONGO_URI", "MONGO_DB", "MONGO_COLLECTION",
	"MAX_MAZE_BYTES",
}

// clearEnv unsets every key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.Addr())
	require.Equal(t, config.CacheMemory, cfg.CacheBackend)
	require.Equal(t, time.Hour, cfg.CacheTTL)
	require.Equal(t, 4096, cfg.CacheMaxEntries)
	require.Equal(t, 1<<20, cfg.MaxMazeBytes)
	require.Empty(t, cfg.MongoURI)
	require.Equal(t, "solves", cfg.MongoCollection)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST_IP", "127.0.0.1")
	t.Setenv("REST_PORT", "9090")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("CACHE_MAX_ENTRIES", "10")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9090", cfg.Addr())
	require.Equal(t, config.CacheRedis, cfg.CacheBackend)
	require.Equal(t, 3, cfg.RedisDB)
	require.Equal(t, time.Minute, cfg.CacheTTL)
	require.Equal(t, 10, cfg.CacheMaxEntries)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("REST_PORT=7000\nLOG_FORMAT=json\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("REST_PORT")
		_ = os.Unsetenv("LOG_FORMAT")
	})

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 7000, cfg.RESTPort)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"REST_PORT", "eighty"},
		{"REST_PORT", "70000"},
		{"CACHE_BACKEND", "memcached"},
		{"CACHE_TTL_SECONDS", "-5"},
		{"CACHE_MAX_ENTRIES", "0"},
		{"MAX_MAZE_BYTES", "0"},
		{"REDIS_DB", "x"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)
			_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
			require.ErrorIs(t, err, config.ErrInvalidEnv)
		})
	}
}
