// ABOUTME: Configuration options for the recipecook library client
// ABOUTME: Functional options applied over the defaults in defaultConfig

package recipecook

import (
	"time"

	"recipe-cook-api/core/interfaces"
	"recipe-cook-api/core/translation"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithCache sets the cache for CookJSON results
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithCacheTTL sets how long CookJSON results stay cached
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		if ttl < 0 {
			return NewError(ErrorTypeConfiguration, "cache TTL cannot be negative")
		}
		c.CacheTTL = ttl
		return nil
	}
}

// WithHTTPClient sets the client used to fetch documents by URL
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithWorkers sets the number of goroutines used for multithreaded cooks.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewError(ErrorTypeConfiguration, "workers must be at least 1").
				WithContext("workers", n)
		}
		c.Workers = n
		return nil
	}
}

// WithMultithread populates models in parallel for every cook.
func WithMultithread(enabled bool) Option {
	return func(c *Config) error {
		c.Multithread = enabled
		return nil
	}
}

// WithRecipeDir loads named recipes from dir.
func WithRecipeDir(dir string) Option {
	return func(c *Config) error {
		c.RecipeDir = dir
		return nil
	}
}

// WithExtraParsers registers the rss, html and gjson parsers.
func WithExtraParsers() Option {
	return func(c *Config) error {
		c.ExtraParsers = true
		return nil
	}
}

// WithDocumentCache keeps decoded documents for ttl so repeated cooks of the
// same payload skip decoding.
func WithDocumentCache(ttl time.Duration) Option {
	return func(c *Config) error {
		if ttl <= 0 {
			return NewError(ErrorTypeConfiguration, "document cache TTL must be positive")
		}
		c.DocumentCacheTTL = ttl
		return nil
	}
}

// WithModel registers an extra model constructor for reflection translation.
func WithModel(name string, ctor translation.Constructor) Option {
	return func(c *Config) error {
		if name == "" || ctor == nil {
			return NewError(ErrorTypeConfiguration, "model name and constructor are required")
		}
		if c.Models == nil {
			c.Models = make(map[string]translation.Constructor)
		}
		c.Models[name] = ctor
		return nil
	}
}

// WithTranslator registers an extra model translator.
func WithTranslator(t translation.ModelTranslator) Option {
	return func(c *Config) error {
		if t == nil {
			return NewError(ErrorTypeConfiguration, "translator cannot be nil")
		}
		c.Translators = append(c.Translators, t)
		return nil
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		Cache:      DefaultMemoryCache(),
		HTTPClient: DefaultHTTPClient(),
		Logger:     QuietLogger(),
		Workers:    4,
		CacheTTL:   10 * time.Minute,
	}
}
