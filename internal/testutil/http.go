package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
)

// Serve executes a request against the provided handler and returns the
// recorder.
func Serve(h http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
