package cook

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"recipe-cook-api/core/interfaces"
	"recipe-cook-api/core/recipe"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

// mockCache is a map-backed Cache that records calls
type mockCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	gets    int
	getFunc func(ctx context.Context, key string) ([]byte, error)
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, interfaces.ErrCacheMiss
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// mockRecipes serves recipes from a map
type mockRecipes struct {
	recipes map[string]*recipe.Recipe
}

func (m *mockRecipes) Get(ctx context.Context, name string) (*recipe.Recipe, error) {
	if r, ok := m.recipes[name]; ok {
		return r.Clone(), nil
	}
	return nil, notFound(name)
}

func (m *mockRecipes) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(m.recipes))
	for name := range m.recipes {
		names = append(names, name)
	}
	return names, nil
}

// mockLogger records messages by level
type mockLogger struct {
	mu       sync.Mutex
	messages map[string][]string
}

func newMockLogger() *mockLogger {
	return &mockLogger{messages: make(map[string][]string)}
}

func (m *mockLogger) log(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[level] = append(m.messages[level], msg)
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.log("debug", msg) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.log("info", msg) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.log("warn", msg) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.log("error", msg) }
