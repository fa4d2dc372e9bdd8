package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gridironsim/franchise-flow/internal/events"
	"github.com/gridironsim/franchise-flow/internal/testutil"
)

func TestRouterRoutes(t *testing.T) {
	bus := events.NewBus(testutil.SilentLogger())
	handler := newTestHandler(bus, true)
	router := NewRouter(handler, NewStreamHandler(bus, testutil.SilentLogger()))

	cases := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/health", 200},
		{"GET", "/ready", 200},
		{"GET", "/flow/state", 200},
		{"GET", "/flow/summary", 200},
		{"GET", "/events", 200},
		{"GET", "/saves", 503},
		{"GET", "/nope", 404},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(c.method, c.path, nil))
		if rr.Code != c.status {
			t.Fatalf("%s %s: expected %d, got %d", c.method, c.path, c.status, rr.Code)
		}
	}
}
