// ABOUTME: Main entry point for the Recipe Cook API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-cook-api/api"
	"recipe-cook-api/api/handlers"
	"recipe-cook-api/core/content"
	"recipe-cook-api/core/cook"
	"recipe-cook-api/core/cooker"
	"recipe-cook-api/core/interfaces"
	"recipe-cook-api/core/parsers"
	"recipe-cook-api/infrastructure/cache/memory"
	"recipe-cook-api/infrastructure/cache/redis"
	"recipe-cook-api/infrastructure/cache/sqlite"
	stdhttp "recipe-cook-api/infrastructure/http/standard"
	"recipe-cook-api/infrastructure/logger"
	"recipe-cook-api/infrastructure/recipes/file"
	"recipe-cook-api/pkg/config"
	"recipe-cook-api/pkg/featureflags"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logs := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	defer logs.Close()

	flags := featureflags.NewEnvManager("FEATURE_")
	logs.Info("Starting Recipe Cook API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"workers":    cfg.Engine.Workers,
		"features":   featureflags.Enabled(flags),
	})

	cache, closeCache := newCache(cfg, logs)
	defer closeCache()

	engine := newEngine(cfg, flags, logs)
	defer engine.Close()

	store, err := file.NewStore(cfg.Recipes.Dir, logs)
	if err != nil {
		log.Fatalf("Failed to load recipes: %v", err)
	}

	httpClient := stdhttp.NewStandardHTTPClient(cfg.Server.FetchTimeout.Duration, cfg.Server.MaxBodyBytes)

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logs,
		Recipes:    store,
	}
	cookService := cook.NewService(deps, engine,
		cook.WithFlags(flags),
		cook.WithCacheTTL(cfg.Cache.TTL.Duration),
	)

	ctx := context.Background()
	apiConfig := api.APIConfig{
		Logger:  logs,
		Metrics: flags.IsEnabled(ctx, featureflags.MetricsEnabled),
	}
	if flags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		apiConfig.RateLimit = cfg.RateLimit.Requests
		apiConfig.RateWindow = cfg.RateLimit.Window.Duration
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	cookHandler := handlers.NewCookHandler(cookService)
	cookHandler.SetMaxBodyBytes(cfg.Server.MaxBodyBytes)
	cookHandler.RegisterRoutes(humaAPI)

	handlers.NewHealthHandler(engine).RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Server.FetchTimeout.Duration + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logs.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logs.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logs.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logs.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logs.Info("Server stopped", nil)
}

// newEngine builds the cooking engine with the content models registered.
func newEngine(cfg *config.Config, flags featureflags.Manager, logs interfaces.Logger) *cooker.Engine {
	ctx := context.Background()
	opts := []cooker.Option{
		cooker.WithLogger(logs),
		cooker.WithWorkers(cfg.Engine.Workers),
		cooker.WithQueueSize(cfg.Engine.QueueSize),
	}
	if flags.IsEnabled(ctx, featureflags.DocumentCache) {
		opts = append(opts, cooker.WithDocumentCache(parsers.NewDocumentCache(cfg.Engine.DocumentCacheTTL.Duration)))
	}
	if flags.IsEnabled(ctx, featureflags.ExtraParsers) {
		opts = append(opts, cooker.WithExtraParsers())
	}

	engine := cooker.New(opts...)
	content.Register(engine)
	return engine
}

// newCache returns the configured response cache, falling back to memory when
// the backend is unreachable.
func newCache(cfg *config.Config, logs interfaces.Logger) (interfaces.Cache, func()) {
	fallback := func(err error) (interfaces.Cache, func()) {
		logs.Error("Failed to create cache, falling back to memory", map[string]interface{}{
			"cache_type": cfg.Cache.Type,
			"error":      err.Error(),
		})
		return newMemoryCache(cfg), func() {}
	}

	switch cfg.Cache.Type {
	case "redis":
		c, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			return fallback(err)
		}
		logs.Info("Using Redis cache", map[string]interface{}{"address": cfg.Cache.Redis.Address})
		return c, func() { c.Close() }
	case "sqlite":
		c, err := sqlite.NewSQLiteCache(cfg.Cache.SQLite.Path, logs)
		if err != nil {
			return fallback(err)
		}
		logs.Info("Using SQLite cache", map[string]interface{}{"path": cfg.Cache.SQLite.Path})
		return c, func() { c.Close() }
	}

	logs.Info("Using memory cache", nil)
	return newMemoryCache(cfg), func() {}
}

func newMemoryCache(cfg *config.Config) interfaces.Cache {
	return memory.NewMemoryCache(
		time.Duration(cfg.Cache.Memory.DefaultExpiration)*time.Second,
		time.Duration(cfg.Cache.Memory.CleanupInterval)*time.Second,
	)
}
