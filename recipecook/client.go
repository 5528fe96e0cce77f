// ABOUTME: Main client for the recipecook library
// ABOUTME: Cooks recipes in-process without the HTTP layer

package recipecook

import (
	"context"
	"sync"
	"time"

	"recipe-cook-api/core/content"
	"recipe-cook-api/core/cook"
	"recipe-cook-api/core/cooker"
	"recipe-cook-api/core/interfaces"
	"recipe-cook-api/core/parsers"
	"recipe-cook-api/core/translation"
	"recipe-cook-api/infrastructure/recipes/file"
	"recipe-cook-api/pkg/featureflags"
)

// Client is the main entry point for the recipecook library
type Client struct {
	engine  *cooker.Engine
	service *cook.Service
	config  Config

	mu     sync.RWMutex
	closed bool
}

// Config holds the configuration for the client
type Config struct {
	// Cache stores CookJSON results
	Cache interfaces.Cache

	// CacheTTL is how long CookJSON results stay cached
	CacheTTL time.Duration

	// HTTPClient fetches documents given by URL
	HTTPClient interfaces.HTTPClient

	// Logger receives engine and service logs
	Logger interfaces.Logger

	// Workers bounds multithreaded population
	Workers int

	// Multithread populates models in parallel
	Multithread bool

	// RecipeDir, when set, is loaded as the named recipe store
	RecipeDir string

	// ExtraParsers registers the rss, html and gjson parsers
	ExtraParsers bool

	// DocumentCacheTTL enables the decoded document cache when positive
	DocumentCacheTTL time.Duration

	// Models and Translators are registered after the content models
	Models      map[string]translation.Constructor
	Translators []translation.ModelTranslator

	closers []func() error
}

// NewClient creates a new client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()
	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	engineOpts := []cooker.Option{
		cooker.WithLogger(config.Logger),
		cooker.WithWorkers(config.Workers),
	}
	if config.ExtraParsers {
		engineOpts = append(engineOpts, cooker.WithExtraParsers())
	}
	if config.DocumentCacheTTL > 0 {
		engineOpts = append(engineOpts, cooker.WithDocumentCache(parsers.NewDocumentCache(config.DocumentCacheTTL)))
	}
	engine := cooker.New(engineOpts...)
	content.Register(engine)

	for name, ctor := range config.Models {
		if !engine.RegisterModel(name, ctor) {
			engine.Close()
			return nil, NewError(ErrorTypeConfiguration, "model is already registered").
				WithContext("model", name)
		}
	}
	for _, t := range config.Translators {
		if !engine.AddTranslatorImpl(t) {
			engine.Close()
			return nil, NewError(ErrorTypeConfiguration, "translator is already registered").
				WithContext("translator", t.Name())
		}
	}

	deps := interfaces.Dependencies{
		Cache:      config.Cache,
		HTTPClient: config.HTTPClient,
		Logger:     config.Logger,
	}
	if config.RecipeDir != "" {
		store, err := file.NewStore(config.RecipeDir, config.Logger)
		if err != nil {
			engine.Close()
			return nil, NewError(ErrorTypeConfiguration, "failed to load recipes").
				WithCause(err).
				WithContext("dir", config.RecipeDir)
		}
		deps.Recipes = store
	}

	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
		featureflags.ResponseCache: config.Cache != nil,
		featureflags.Multithread:   config.Multithread,
	})

	return &Client{
		engine:  engine,
		service: cook.NewService(deps, engine, cook.WithFlags(flags), cook.WithCacheTTL(config.CacheTTL)),
		config:  config,
	}, nil
}

// Close releases the engine workers and any resources the options opened.
// Calling Close more than once is safe.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	err := c.engine.Close()
	for _, closer := range c.config.closers {
		if cerr := closer(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Engine exposes the underlying engine for callback and async use.
func (c *Client) Engine() *cooker.Engine { return c.engine }

// Cook runs r against data and returns the models in query order.
func (c *Client) Cook(ctx context.Context, r *Recipe, data string, params ...string) ([]interface{}, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	models, err := c.engine.Produce(ctx, r, data, params, c.config.Multithread)
	if err != nil {
		return nil, wrap(err, "failed to cook recipe")
	}
	return models, nil
}

// CookNamed runs the named recipe from the recipe directory against data.
func (c *Client) CookNamed(ctx context.Context, name, data string, params ...string) ([]interface{}, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	r, err := c.service.Recipe(ctx, name)
	if err != nil {
		return nil, wrap(err, "failed to load recipe")
	}
	return c.Cook(ctx, r, data, params...)
}

// CookJSON runs req and returns the models encoded as JSON. Results are
// cached by recipe, document and parameters.
func (c *Client) CookJSON(ctx context.Context, req Request) (*Result, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	res, err := c.service.Cook(ctx, req.toService(c.config.Multithread))
	if err != nil {
		return nil, wrap(err, "failed to cook recipe")
	}
	return resultFromService(res), nil
}

// Stream emits models one at a time. See cooker.Engine.CookRecipeStream.
func (c *Client) Stream(ctx context.Context, r *Recipe, data string, params ...string) (<-chan interface{}, <-chan error) {
	if err := c.checkOpen(); err != nil {
		out := make(chan interface{})
		errc := make(chan error, 1)
		errc <- err
		close(out)
		close(errc)
		return out, errc
	}
	return c.engine.CookRecipeStream(ctx, r, data, params)
}

// Validate checks that r carries every required tag.
func (c *Client) Validate(r *Recipe) error {
	if _, err := c.engine.ValidateRecipe(r); err != nil {
		return wrap(err, "invalid recipe")
	}
	return nil
}

// Recipes lists the named recipes, empty without a recipe directory.
func (c *Client) Recipes(ctx context.Context) ([]string, error) {
	names, err := c.service.Recipes(ctx)
	if err != nil {
		return nil, wrap(err, "failed to list recipes")
	}
	return names, nil
}

func (c *Client) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// validateConfig validates the client configuration
func validateConfig(config *Config) error {
	if config.HTTPClient == nil {
		return NewError(ErrorTypeConfiguration, "HTTP client is required")
	}
	if config.Logger == nil {
		return NewError(ErrorTypeConfiguration, "logger is required")
	}
	if config.Workers < 1 {
		return NewError(ErrorTypeConfiguration, "workers must be at least 1")
	}
	// A nil cache disables result caching.
	return nil
}
