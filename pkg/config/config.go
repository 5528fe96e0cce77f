// ABOUTME: Configuration for the recipe cook service from environment variables
// ABOUTME: An optional TOML file named by CONFIG_FILE is applied before the environment

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `toml:"server"`

	// Cache contains response cache configuration
	Cache CacheConfig `toml:"cache"`

	// Engine sizes the recipe cooking engine
	Engine EngineConfig `toml:"engine"`

	// Log configures the logrus logger
	Log LogConfig `toml:"log"`

	// Recipes locates the named recipe files
	Recipes RecipesConfig `toml:"recipes"`

	// RateLimit bounds requests per client IP
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `toml:"port"`

	// MaxBodyBytes caps the size of a cook request body
	MaxBodyBytes int64 `toml:"max_body_bytes"`

	// FetchTimeout bounds retrieval of documents referenced by URL
	FetchTimeout Duration `toml:"fetch_timeout"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string `toml:"type"`

	// TTL is how long a cooked response stays cached
	TTL Duration `toml:"ttl"`

	Redis  RedisConfig  `toml:"redis"`
	Memory MemoryConfig `toml:"memory"`
	SQLite SQLiteConfig `toml:"sqlite"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address  string `toml:"address"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int `toml:"default_expiration"`

	// CleanupInterval is how often expired entries are purged, in seconds
	CleanupInterval int `toml:"cleanup_interval"`
}

// SQLiteConfig holds the SQLite cache location
type SQLiteConfig struct {
	Path string `toml:"path"`
}

// EngineConfig sizes the cooking engine
type EngineConfig struct {
	// Workers is the multithread fan-out and async pool size
	Workers int `toml:"workers"`

	// QueueSize bounds queued async cooks
	QueueSize int `toml:"queue_size"`

	// DocumentCacheTTL keeps decoded documents for repeated cooks of the same payload
	DocumentCacheTTL Duration `toml:"document_cache_ttl"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level"`

	// Format is json or text
	Format string `toml:"format"`

	// File enables rotated file output when set
	File string `toml:"file"`
}

// RecipesConfig locates named recipes
type RecipesConfig struct {
	Dir string `toml:"dir"`
}

// RateLimitConfig is a token bucket per client IP
type RateLimitConfig struct {
	Requests int      `toml:"requests"`
	Window   Duration `toml:"window"`
}

// Duration decodes TOML strings such as "90s" or "5m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8000",
			MaxBodyBytes: 10 << 20,
			FetchTimeout: Duration{30 * time.Second},
		},
		Cache: CacheConfig{
			Type: "memory",
			TTL:  Duration{10 * time.Minute},
			Redis: RedisConfig{
				Address: "localhost:6379",
			},
			Memory: MemoryConfig{
				DefaultExpiration: 3600,
				CleanupInterval:   600,
			},
			SQLite: SQLiteConfig{
				Path: "recipecook-cache.db",
			},
		},
		Engine: EngineConfig{
			Workers:          4,
			QueueSize:        64,
			DocumentCacheTTL: Duration{time.Minute},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Recipes: RecipesConfig{
			Dir: "recipes",
		},
		RateLimit: RateLimitConfig{
			Requests: 60,
			Window:   Duration{time.Minute},
		},
	}
}

// Load applies the TOML file named by CONFIG_FILE, when set, on top of the
// defaults and then the environment on top of that.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

// LoadFile decodes a TOML file into cfg. Keys missing from the file keep
// their current values.
func LoadFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys in config file %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := Default()
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnvOrDefault("PORT", cfg.Server.Port)
	cfg.Server.MaxBodyBytes = int64(getEnvAsIntOrDefault("MAX_BODY_BYTES", int(cfg.Server.MaxBodyBytes)))
	cfg.Server.FetchTimeout.Duration = getEnvAsDurationOrDefault("FETCH_TIMEOUT", cfg.Server.FetchTimeout.Duration)

	cfg.Cache.Type = getEnvOrDefault("CACHE_TYPE", cfg.Cache.Type)
	cfg.Cache.TTL.Duration = getEnvAsDurationOrDefault("CACHE_TTL", cfg.Cache.TTL.Duration)
	cfg.Cache.Redis.Address = getEnvOrDefault("REDIS_ADDRESS", cfg.Cache.Redis.Address)
	cfg.Cache.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", cfg.Cache.Redis.Password)
	cfg.Cache.Redis.DB = getEnvAsIntOrDefault("REDIS_DB", cfg.Cache.Redis.DB)
	cfg.Cache.Memory.DefaultExpiration = getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", cfg.Cache.Memory.DefaultExpiration)
	cfg.Cache.Memory.CleanupInterval = getEnvAsIntOrDefault("MEMORY_CACHE_CLEANUP", cfg.Cache.Memory.CleanupInterval)
	cfg.Cache.SQLite.Path = getEnvOrDefault("SQLITE_PATH", cfg.Cache.SQLite.Path)

	cfg.Engine.Workers = getEnvAsIntOrDefault("ENGINE_WORKERS", cfg.Engine.Workers)
	cfg.Engine.QueueSize = getEnvAsIntOrDefault("ENGINE_QUEUE_SIZE", cfg.Engine.QueueSize)
	cfg.Engine.DocumentCacheTTL.Duration = getEnvAsDurationOrDefault("DOCUMENT_CACHE_TTL", cfg.Engine.DocumentCacheTTL.Duration)

	cfg.Log.Level = getEnvOrDefault("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnvOrDefault("LOG_FORMAT", cfg.Log.Format)
	cfg.Log.File = getEnvOrDefault("LOG_FILE", cfg.Log.File)

	cfg.Recipes.Dir = getEnvOrDefault("RECIPES_DIR", cfg.Recipes.Dir)

	cfg.RateLimit.Requests = getEnvAsIntOrDefault("RATE_LIMIT_REQUESTS", cfg.RateLimit.Requests)
	cfg.RateLimit.Window.Duration = getEnvAsDurationOrDefault("RATE_LIMIT_WINDOW", cfg.RateLimit.Window.Duration)
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts Go durations and plain seconds
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.MaxBodyBytes < 1 {
		return errors.New("max body bytes must be positive")
	}

	switch c.Cache.Type {
	case "memory", "redis", "sqlite":
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	if c.Engine.Workers < 1 {
		return errors.New("engine workers must be at least 1")
	}

	if c.Engine.QueueSize < 1 {
		return errors.New("engine queue size must be at least 1")
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return errors.New("log format must be 'json' or 'text'")
	}

	if c.RateLimit.Requests < 0 {
		return errors.New("rate limit requests cannot be negative")
	}

	return nil
}
