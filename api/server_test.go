package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

func TestNewAPI_Info(t *testing.T) {
	api, router := NewAPI()
	if api == nil || router == nil {
		t.Fatal("NewAPI returned nil")
	}

	info := api.OpenAPI().Info
	if info.Title != Title {
		t.Errorf("API title = %s, want %s", info.Title, Title)
	}
	if info.Version != Version {
		t.Errorf("API version = %s, want %s", info.Version, Version)
	}
}

func TestAPI_OpenAPIEndpoint(t *testing.T) {
	_, router := NewAPI()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/openapi.json", nil))

	if w.Code != http.StatusOK {
		t.Errorf("OpenAPI endpoint status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.oai.openapi+json" {
		t.Errorf("OpenAPI content-type = %s", ct)
	}
}

func TestAPI_CORS(t *testing.T) {
	_, router := NewAPI()

	req := httptest.NewRequest("OPTIONS", "/cook", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestNewAPIWithMiddleware_Metrics(t *testing.T) {
	_, router := NewAPIWithMiddleware(APIConfig{Logger: nopLogger{}, Metrics: true})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Error("metrics output should contain the Go collector")
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("request logging middleware should set X-Request-ID")
	}
}

func TestNewAPIWithMiddleware_NoMetrics(t *testing.T) {
	_, router := NewAPIWithMiddleware(APIConfig{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("metrics status = %d, want 404 when disabled", w.Code)
	}
}

func TestNewAPIWithMiddleware_RateLimit(t *testing.T) {
	_, router := NewAPIWithMiddleware(APIConfig{RateLimit: 1, RateWindow: time.Minute})

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/openapi.json", nil)
		req.RemoteAddr = "10.1.1.1:4000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [200 429]", codes)
	}
}
