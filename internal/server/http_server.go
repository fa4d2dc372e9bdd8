package server

import (
	"context"
	"net/http"
)

// listener is the slice of *http.Server the run and shutdown code relies on;
// tests substitute stubs.
type listener interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
}

type stdServer struct {
	srv *http.Server
}

func (s stdServer) ListenAndServe() error              { return s.srv.ListenAndServe() }
func (s stdServer) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
func (s stdServer) Addr() string                       { return s.srv.Addr }
