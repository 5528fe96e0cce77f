// ABOUTME: Cook service runs recipes for request/response callers such as the HTTP API
// ABOUTME: Resolves named recipes and URL documents and caches encoded results

package cook

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"recipe-cook-api/core/cooker"
	coreerrors "recipe-cook-api/core/errors"
	"recipe-cook-api/core/interfaces"
	"recipe-cook-api/core/recipe"
	"recipe-cook-api/pkg/featureflags"
)

// DefaultCacheTTL applies when the service is built with a zero TTL.
const DefaultCacheTTL = 10 * time.Minute

const cacheKeyPrefix = "cook:"

// InlineRecipeName labels results of recipes sent with the request.
const InlineRecipeName = "inline"

// Request describes one cook. Exactly one of RecipeName and Recipe, and
// exactly one of Data and DataURL, must be set.
type Request struct {
	RecipeName  string
	Recipe      *recipe.Recipe
	Data        string
	DataURL     string
	Params      []string
	Multithread bool
}

// Result is the JSON encoding of the cooked models.
type Result struct {
	Recipe   string
	Model    string
	Count    int
	Models   json.RawMessage
	Cached   bool
	Duration time.Duration
}

// Service cooks recipes synchronously on top of a shared engine.
type Service struct {
	deps   interfaces.Dependencies
	engine *cooker.Engine
	flags  featureflags.Manager
	ttl    time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithFlags sets the feature flag manager. Without one the flag defaults apply.
func WithFlags(m featureflags.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.flags = m
		}
	}
}

// WithCacheTTL sets how long cooked results stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewService creates a cook service instance
func NewService(deps interfaces.Dependencies, engine *cooker.Engine, opts ...Option) *Service {
	if deps.Logger == nil {
		deps.Logger = nopLogger{}
	}
	s := &Service{
		deps:   deps,
		engine: engine,
		flags:  featureflags.NewStaticManager(featureflags.Defaults),
		ttl:    DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine returns the underlying engine.
func (s *Service) Engine() *cooker.Engine { return s.engine }

// Cook runs the request and returns the encoded models in query order.
func (s *Service) Cook(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	name, r, err := s.resolveRecipe(ctx, req)
	if err != nil {
		return nil, err
	}
	if _, err := s.engine.ValidateRecipe(r); err != nil {
		return nil, err
	}
	data, err := s.resolveData(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &Result{Recipe: name, Model: r.GetString(recipe.TagModel)}

	useCache := s.deps.Cache != nil && s.flags.IsEnabled(ctx, featureflags.ResponseCache)
	key := CacheKey(r, data, req.Params)
	if useCache {
		if body, err := s.deps.Cache.Get(ctx, key); err == nil {
			responseCacheLookups.WithLabelValues("hit").Inc()
			result.Models = body
			result.Count = int(gjson.GetBytes(body, "#").Int())
			result.Cached = true
			result.Duration = time.Since(start)
			return result, nil
		} else if !errors.Is(err, interfaces.ErrCacheMiss) {
			s.deps.Logger.Warn("Response cache read failed", map[string]interface{}{
				"recipe": name,
				"error":  err.Error(),
			})
		}
		responseCacheLookups.WithLabelValues("miss").Inc()
	}

	multithread := req.Multithread || s.flags.IsEnabled(ctx, featureflags.Multithread)
	models, err := s.engine.Produce(ctx, r, data, req.Params, multithread)
	if err != nil {
		s.deps.Logger.Debug("Cook failed", map[string]interface{}{
			"recipe": name,
			"kind":   coreerrors.Kind(err),
			"error":  err.Error(),
		})
		return nil, err
	}

	body, err := json.Marshal(models)
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to encode models")
	}
	result.Models = body
	result.Count = len(models)

	if useCache {
		if err := s.deps.Cache.Set(ctx, key, body, s.ttl); err != nil {
			s.deps.Logger.Warn("Response cache write failed", map[string]interface{}{
				"recipe": name,
				"error":  err.Error(),
			})
		}
	}

	result.Duration = time.Since(start)
	s.deps.Logger.Info("Recipe cooked", map[string]interface{}{
		"recipe":   name,
		"format":   r.GetString(recipe.TagFormat),
		"models":   result.Count,
		"duration": result.Duration.String(),
	})
	return result, nil
}

// Validate checks an inline recipe without cooking it.
func (s *Service) Validate(ctx context.Context, r *recipe.Recipe) error {
	_, err := s.engine.ValidateRecipe(r)
	return err
}

// Recipe returns a named recipe.
func (s *Service) Recipe(ctx context.Context, name string) (*recipe.Recipe, error) {
	if s.deps.Recipes == nil {
		return nil, &coreerrors.NotFoundError{Resource: "recipe", ID: name}
	}
	return s.deps.Recipes.Get(ctx, name)
}

// Recipes lists the named recipes. Without a store the list is empty.
func (s *Service) Recipes(ctx context.Context) ([]string, error) {
	if s.deps.Recipes == nil {
		return []string{}, nil
	}
	return s.deps.Recipes.List(ctx)
}

func (s *Service) resolveRecipe(ctx context.Context, req Request) (string, *recipe.Recipe, error) {
	switch {
	case req.RecipeName != "" && req.Recipe != nil:
		return "", nil, &coreerrors.ValidationError{Field: "recipe", Message: "give either a recipe or a recipe name, not both"}
	case req.Recipe != nil:
		return InlineRecipeName, req.Recipe, nil
	case req.RecipeName != "":
		if s.deps.Recipes == nil {
			return "", nil, &coreerrors.ValidationError{Field: "recipeName", Message: "named recipes are not configured"}
		}
		r, err := s.deps.Recipes.Get(ctx, req.RecipeName)
		if err != nil {
			return "", nil, err
		}
		return req.RecipeName, r, nil
	}
	return "", nil, &coreerrors.ValidationError{Field: "recipe", Message: "a recipe or a recipe name is required"}
}

func (s *Service) resolveData(ctx context.Context, req Request) (string, error) {
	switch {
	case req.Data != "" && req.DataURL != "":
		return "", &coreerrors.ValidationError{Field: "data", Message: "give either data or a data URL, not both"}
	case req.Data != "":
		return req.Data, nil
	case req.DataURL == "":
		return "", &coreerrors.ValidationError{Field: "data", Message: "data or a data URL is required"}
	}

	parsed, err := url.Parse(req.DataURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", &coreerrors.ValidationError{Field: "dataUrl", Message: "must be an absolute http or https URL"}
	}
	if s.deps.HTTPClient == nil {
		return "", &coreerrors.ValidationError{Field: "dataUrl", Message: "document fetching is not configured"}
	}

	resp, err := s.deps.HTTPClient.Get(ctx, req.DataURL)
	if err != nil {
		return "", &coreerrors.FetchError{URL: req.DataURL, Cause: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		return "", &coreerrors.FetchError{URL: req.DataURL, Status: resp.StatusCode()}
	}
	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return "", &coreerrors.FetchError{URL: req.DataURL, Status: resp.StatusCode(), Cause: err}
	}
	return string(body), nil
}

// CacheKey identifies a cook by its recipe, document and parameters.
func CacheKey(r *recipe.Recipe, data string, params []string) string {
	h := sha256.New()
	h.Write([]byte(r.String()))
	h.Write([]byte{0})
	h.Write([]byte(data))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(params, "\x1f")))
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
