package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gridironsim/franchise-flow/internal/metrics"
	"github.com/gridironsim/franchise-flow/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestID(t *testing.T) {
	var seen string
	next := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		seen = requestIDFromContext(r.Context())
		w.WriteHeader(nethttp.StatusNoContent)
	})
	wrapped := LoggingMiddleware(testutil.SilentLogger(), metrics.NewRecorder(), next)

	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	if seen == "" {
		t.Fatalf("expected request ID in context")
	}
	if got := rr.Header().Get("X-Request-ID"); got != seen {
		t.Fatalf("header %q does not match context %q", got, seen)
	}
	if rr.Code != nethttp.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
}

func TestLoggingMiddlewarePropagatesIncomingID(t *testing.T) {
	var seen string
	next := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		seen = requestIDFromContext(r.Context())
	})
	wrapped := LoggingMiddleware(testutil.SilentLogger(), metrics.NewRecorder(), next)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", "req-abc")
	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)

	if seen != "req-abc" {
		t.Fatalf("expected propagated ID, got %q", seen)
	}
	if got := rr.Header().Get("X-Request-ID"); got != "req-abc" {
		t.Fatalf("unexpected response header %q", got)
	}
}

func TestResponseWriterDefaultsTo200(t *testing.T) {
	next := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Write([]byte("ok"))
	})
	wrapped := LoggingMiddleware(testutil.SilentLogger(), metrics.NewRecorder(), next)

	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
