// Package infrastructure provides concrete implementations of the interfaces
// defined in core/interfaces.
//
// - cache/memory: in-process cache on go-cache
// - cache/redis: Redis cache on go-redis
// - cache/sqlite: file-backed cache on go-sqlite3 with periodic purging
// - http/standard: net/http client with retries and a body size cap
// - logger: logrus logger with optional lumberjack file rotation
// - recipes/file: named recipes loaded from a directory of JSON and YAML files
//
// # Caches
//
//	cache := memory.NewMemoryCache(time.Hour, 10*time.Minute)
//	err := cache.Set(ctx, "cook:abc", body, 10*time.Minute)
//	body, err := cache.Get(ctx, "cook:abc") // interfaces.ErrCacheMiss when absent
//
// # HTTP Client
//
//	client := standard.NewStandardHTTPClient(30*time.Second, standard.DefaultMaxBodyBytes)
//	resp, err := client.Get(ctx, "https://example.com/feed.xml")
//	if err != nil {
//	    return err
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	log := logger.New(logger.Options{Level: "debug", Format: "text"})
//	defer log.Close()
//	log.Info("Recipe cooked", map[string]interface{}{
//	    "recipe": "categories",
//	    "count":  12,
//	})
package infrastructure
