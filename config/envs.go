// Package config loads the mazepathd settings from the environment, after
// merging an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Cache backends accepted in CACHE_BACKEND.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// ErrInvalidEnv is wrapped by every parse or validation failure.
var ErrInvalidEnv = errors.New("config: invalid environment")

// Config holds the application's configuration values.
type Config struct {
	HostIP   string // Host IP for the server
	RESTPort int    // Port for the REST API
	GinMode  string // Mode for the Gin framework (release, debug, test)

	LogLevel  string // logrus level name
	LogFormat string // "text" or "json"

	CacheBackend    string        // CacheMemory or CacheRedis
	RedisAddr       string        // host:port of the Redis server
	RedisPassword   string        // may be empty
	RedisDB         int           // Redis logical database
	CacheTTL        time.Duration // lifetime of cached solves
	CacheMaxEntries int           // bound of the in-memory cache

	MongoURI        string // empty selects the in-memory store
	MongoDB         string
	MongoCollection string

	MaxMazeBytes int // request bodies above this are rejected
}

// Addr returns the listen address for the REST API.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HostIP, c.RESTPort)
}

// Load reads .env if present and builds a Config from the environment.
// Unset keys take their defaults; malformed values are errors.
func Load(files ...string) (Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load(files...)

	cfg := Config{
		HostIP:          getEnvWithDefault("HOST_IP", "0.0.0.0"),
		GinMode:         getEnvWithDefault("GIN_MODE", "release"),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat:       getEnvWithDefault("LOG_FORMAT", "text"),
		CacheBackend:    getEnvWithDefault("CACHE_BACKEND", CacheMemory),
		RedisAddr:       getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnvWithDefault("REDIS_PASSWORD", ""),
		MongoURI:        getEnvWithDefault("MONGO_URI", ""),
		MongoDB:         getEnvWithDefault("MONGO_DB", "mazepath"),
		MongoCollection: getEnvWithDefault("MONGO_COLLECTION", "solves"),
	}

	var err error
	if cfg.RESTPort, err = getEnvAsInt("REST_PORT", 8080); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	ttl, err := getEnvAsInt("CACHE_TTL_SECONDS", 3600)
	if err != nil {
		return Config{}, err
	}
	cfg.CacheTTL = time.Duration(ttl) * time.Second
	if cfg.CacheMaxEntries, err = getEnvAsInt("CACHE_MAX_ENTRIES", 4096); err != nil {
		return Config{}, err
	}
	if cfg.MaxMazeBytes, err = getEnvAsInt("MAX_MAZE_BYTES", 1<<20); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.RESTPort <= 0 || c.RESTPort > 65535:
		return fmt.Errorf("%w: REST_PORT %d out of range", ErrInvalidEnv, c.RESTPort)
	case c.CacheBackend != CacheMemory && c.CacheBackend != CacheRedis:
		return fmt.Errorf("%w: CACHE_BACKEND must be %q or %q, got %q", ErrInvalidEnv, CacheMemory, CacheRedis, c.CacheBackend)
	case c.CacheTTL < 0:
		return fmt.Errorf("%w: CACHE_TTL_SECONDS cannot be negative", ErrInvalidEnv)
	case c.CacheMaxEntries <= 0:
		return fmt.Errorf("%w: CACHE_MAX_ENTRIES must be positive", ErrInvalidEnv)
	case c.MaxMazeBytes <= 0:
		return fmt.Errorf("%w: MAX_MAZE_BYTES must be positive", ErrInvalidEnv)
	}

	return nil
}

// getEnvAsInt parses key as an integer, returning def when unset.
func getEnvAsInt(key string, def int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return def, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidEnv, key, err)
	}

	return value, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
