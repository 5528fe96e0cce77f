package standard

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"recipe-cook-api/core/interfaces"
)

var _ interfaces.HTTPClient = (*StandardHTTPClient)(nil)

func TestNewStandardHTTPClient(t *testing.T) {
	client := NewStandardHTTPClient(10*time.Second, 0)
	if client.client.Timeout != 10*time.Second {
		t.Errorf("Client timeout = %v, want 10s", client.client.Timeout)
	}
	if client.maxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("maxBodyBytes = %d, want %d", client.maxBodyBytes, DefaultMaxBodyBytes)
	}
}

func TestStandardHTTPClient_Get_Success(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte("<feed/>"))
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(10*time.Second, 0).Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode())
	}
	if resp.Header("content-type") != "application/xml" {
		t.Errorf("Header(content-type) = %q", resp.Header("content-type"))
	}
	body, err := io.ReadAll(resp.Body())
	if err != nil || string(body) != "<feed/>" {
		t.Errorf("Body = %q, %v", body, err)
	}
	if userAgent != "RecipeCook/1.0" {
		t.Errorf("User-Agent = %q", userAgent)
	}
}

func TestStandardHTTPClient_Get_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(10*time.Second, 0).Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()
	if resp.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode())
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server saw %d calls, want 3", got)
	}
}

func TestStandardHTTPClient_Get_ReturnsLastServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(10*time.Second, 0).Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()
	if resp.StatusCode() != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", resp.StatusCode())
	}
	if got := atomic.LoadInt32(&calls); got != maxRetries {
		t.Errorf("server saw %d calls, want %d", got, maxRetries)
	}
}

func TestStandardHTTPClient_Get_NoRetryOnClientError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(10*time.Second, 0).Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server saw %d calls, want 1", got)
	}
}

func TestStandardHTTPClient_Get_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("a", 64)))
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(10*time.Second, 16).Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	defer resp.Body().Close()

	_, err = io.ReadAll(resp.Body())
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Errorf("ReadAll error = %v, want ErrBodyTooLarge", err)
	}

	exact, err := NewStandardHTTPClient(10*time.Second, 64).Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	defer exact.Body().Close()
	body, err := io.ReadAll(exact.Body())
	if err != nil || len(body) != 64 {
		t.Errorf("ReadAll = %d bytes, %v; want 64, nil", len(body), err)
	}
}

func TestStandardHTTPClient_Get_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := NewStandardHTTPClient(10*time.Second, 0).Get(ctx, server.URL)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Get error = %v, want context.DeadlineExceeded", err)
	}
}

func TestStandardHTTPClient_Get_InvalidURL(t *testing.T) {
	if _, err := NewStandardHTTPClient(time.Second, 0).Get(context.Background(), "://bad"); err == nil {
		t.Error("Get should return error for invalid URL")
	}
}
