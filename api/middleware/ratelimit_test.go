package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func serveFrom(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/cook", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, 300*time.Millisecond)
	defer rl.Close()

	assert.True(t, rl.Allow("127.0.0.1"))
	assert.True(t, rl.Allow("127.0.0.1"))
	assert.True(t, rl.Allow("127.0.0.1"))

	assert.False(t, rl.Allow("127.0.0.1"))

	// Different IP has its own bucket
	assert.True(t, rl.Allow("192.168.1.1"))

	// One token returns every window/limit
	time.Sleep(150 * time.Millisecond)
	assert.True(t, rl.Allow("127.0.0.1"))
}

func TestNewRateLimiter_ClampsBadSettings(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	defer rl.Close()

	assert.Equal(t, 1, rl.limit)
	assert.Equal(t, time.Minute, rl.window)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
}

func TestRateLimitMiddleware_AllowsRequestsUnderLimit(t *testing.T) {
	limiter := NewRateLimiter(5, time.Minute)
	defer limiter.Close()
	handler := RateLimitMiddleware(limiter)(okHandler())

	for i := 0; i < 5; i++ {
		rec := serveFrom(handler, "127.0.0.1:1234")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
		assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimitMiddleware_Returns429ForExceededLimit(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	defer limiter.Close()
	handler := RateLimitMiddleware(limiter)(okHandler())

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, serveFrom(handler, "127.0.0.1:1234").Code)
	}

	rec := serveFrom(handler, "127.0.0.1:5555")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rate limit exceeded")
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_UsesIPAddressForLimiting(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Close()
	handler := RateLimitMiddleware(limiter)(okHandler())

	assert.Equal(t, http.StatusOK, serveFrom(handler, "127.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, serveFrom(handler, "127.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, serveFrom(handler, "192.168.1.1:5678").Code)
}

func TestRateLimitMiddleware_RefillsAfterWindow(t *testing.T) {
	limiter := NewRateLimiter(1, 100*time.Millisecond)
	defer limiter.Close()
	handler := RateLimitMiddleware(limiter)(okHandler())

	assert.Equal(t, http.StatusOK, serveFrom(handler, "127.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, serveFrom(handler, "127.0.0.1:1234").Code)

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, http.StatusOK, serveFrom(handler, "127.0.0.1:1234").Code)
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		setupReq   func(*http.Request)
		expectedIP string
	}{
		{
			name: "uses the client entry of X-Forwarded-For",
			setupReq: func(r *http.Request) {
				r.Header.Set("X-Forwarded-For", "203.0.113.1, 198.51.100.2")
				r.RemoteAddr = "10.0.0.1:1234"
			},
			expectedIP: "203.0.113.1",
		},
		{
			name: "uses X-Real-IP header",
			setupReq: func(r *http.Request) {
				r.Header.Set("X-Real-IP", "203.0.113.1")
				r.RemoteAddr = "10.0.0.1:1234"
			},
			expectedIP: "203.0.113.1",
		},
		{
			name: "falls back to RemoteAddr without the port",
			setupReq: func(r *http.Request) {
				r.RemoteAddr = "192.168.1.1:1234"
			},
			expectedIP: "192.168.1.1",
		},
		{
			name: "keeps a RemoteAddr without a port",
			setupReq: func(r *http.Request) {
				r.RemoteAddr = "192.168.1.1"
			},
			expectedIP: "192.168.1.1",
		},
		{
			name: "prefers X-Forwarded-For over X-Real-IP",
			setupReq: func(r *http.Request) {
				r.Header.Set("X-Forwarded-For", "203.0.113.1")
				r.Header.Set("X-Real-IP", "198.51.100.1")
			},
			expectedIP: "203.0.113.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			tt.setupReq(req)
			assert.Equal(t, tt.expectedIP, extractIP(req))
		})
	}
}
