// ABOUTME: Default implementations for library dependencies
// ABOUTME: Factory functions for caches, the HTTP client and loggers

package recipecook

import (
	"os"
	"time"

	"recipe-cook-api/core/interfaces"
	"recipe-cook-api/infrastructure/cache/memory"
	"recipe-cook-api/infrastructure/cache/sqlite"
	httpInfra "recipe-cook-api/infrastructure/http/standard"
	"recipe-cook-api/infrastructure/logger"
)

// DefaultHTTPClient creates the HTTP client used for document URLs
func DefaultHTTPClient() interfaces.HTTPClient {
	return httpInfra.NewStandardHTTPClient(30*time.Second, httpInfra.DefaultMaxBodyBytes)
}

// DefaultMemoryCache creates a default in-memory cache
func DefaultMemoryCache() interfaces.Cache {
	return memory.NewMemoryCache(time.Hour, 10*time.Minute)
}

// DefaultSQLiteCache creates a SQLite cache at filePath
func DefaultSQLiteCache(filePath string) (interfaces.Cache, error) {
	return sqlite.NewSQLiteCache(filePath, QuietLogger())
}

// DefaultLogger creates a text logger writing to stderr at the given level
func DefaultLogger(level string) interfaces.Logger {
	return logger.New(logger.Options{
		Level:  level,
		Format: "text",
		Output: os.Stderr,
	})
}

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return quietLogger{}
}

type quietLogger struct{}

func (quietLogger) Debug(msg string, fields map[string]interface{}) {}
func (quietLogger) Info(msg string, fields map[string]interface{})  {}
func (quietLogger) Warn(msg string, fields map[string]interface{})  {}
func (quietLogger) Error(msg string, fields map[string]interface{}) {}

// CacheOption represents cache configuration options
type CacheOption struct {
	Type     CacheType
	FilePath string // For SQLite cache
}

// CacheType represents the type of cache
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeSQLite CacheType = "sqlite"
)

// WithCacheOption creates a cache based on the provided options
func WithCacheOption(opt CacheOption) Option {
	return func(c *Config) error {
		switch opt.Type {
		case CacheTypeMemory:
			c.Cache = DefaultMemoryCache()
		case CacheTypeSQLite:
			if opt.FilePath == "" {
				opt.FilePath = "recipecook_cache.db"
			}
			cache, err := sqlite.NewSQLiteCache(opt.FilePath, QuietLogger())
			if err != nil {
				return NewError(ErrorTypeConfiguration, "failed to open sqlite cache").WithCause(err)
			}
			c.Cache = cache
			c.closers = append(c.closers, cache.Close)
		default:
			return NewError(ErrorTypeConfiguration, "invalid cache type").
				WithContext("type", string(opt.Type))
		}
		return nil
	}
}

// WithVerboseLogging logs engine activity to stderr at level
func WithVerboseLogging(level string) Option {
	return func(c *Config) error {
		l := logger.New(logger.Options{Level: level, Format: "text", Output: os.Stderr})
		c.Logger = l
		c.closers = append(c.closers, l.Close)
		return nil
	}
}
