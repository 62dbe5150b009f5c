package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"filedrop/internal/storage"
)

func newTestServer(store storage.Store) *Server {
	return New(Config{
		Addr:  ":0",
		Build: BuildInfo{Version: "test", Commit: "none"},
		Store: store,
	})
}

func TestRoot_Liveness(t *testing.T) {
	srv := newTestServer(storage.NewMemStore())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("Expected no body, got %q", rr.Body.String())
	}
}

func TestUnmatchedRoute_NotFound(t *testing.T) {
	srv := newTestServer(storage.NewMemStore())

	for _, path := range []string{"/nope", "/upload/extra/deep", "/downloads"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", path, rr.Code)
		}
	}
}

func TestGetUpload_ReturnsListing(t *testing.T) {
	store := storage.NewMemStore()
	_ = store.Write(context.Background(), "a.txt", []byte("a"))
	srv := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/upload", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var names []string
	if err := json.NewDecoder(rr.Body).Decode(&names); err != nil {
		t.Fatalf("Failed to decode listing: %v", err)
	}
	if len(names) != 1 || names[0] != "a.txt" {
		t.Errorf("Listing = %v, want [a.txt]", names)
	}
}

func TestUploadThenDownload_FullStack(t *testing.T) {
	srv := newTestServer(storage.NewMemStore())
	payload := []byte("full stack round trip")

	req := httptest.NewRequest(http.MethodPut, "/upload?filename=rt.txt", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("Upload: expected 201, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/download?filename=rt.txt", nil)
	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Download: expected 200, got %d", rr.Code)
	}
	if !bytes.Equal(rr.Body.Bytes(), payload) {
		t.Errorf("Downloaded %q, want %q", rr.Body.Bytes(), payload)
	}
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	srv := newTestServer(storage.NewMemStore())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	if rr.Header().Get("X-Request-Id") == "" {
		t.Error("Expected generated X-Request-Id header")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "client-rid")
	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-Id"); got != "client-rid" {
		t.Errorf("Expected client rid to be kept, got %q", got)
	}
}

func TestSecurityHeaders_Present(t *testing.T) {
	srv := newTestServer(storage.NewMemStore())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rr.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(storage.NewMemStore())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{"fd_requests_total", "fd_uploads_total", "fd_listings_swallowed_total", "fd_uptime_seconds"} {
		if !strings.Contains(body, metric) {
			t.Errorf("Metrics output missing %s", metric)
		}
	}
}

func TestHealthz(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		srv := newTestServer(storage.NewMemStore())

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rr.Code)
		}
		var health Health
		if err := json.NewDecoder(rr.Body).Decode(&health); err != nil {
			t.Fatalf("Failed to decode health: %v", err)
		}
		if health.Status != HealthStatusHealthy {
			t.Errorf("Status = %s, want healthy", health.Status)
		}
	})

	t.Run("storage down", func(t *testing.T) {
		store := storage.NewMemStore()
		store.FailList = context.DeadlineExceeded
		srv := newTestServer(store)

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, req)

		if rr.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d", rr.Code)
		}
	})
}
