package http

import nethttp "net/http"

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *Handler, stream *StreamHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/flow/state", handler.FlowState)
	mux.HandleFunc("/flow/actions", handler.FlowAction)
	mux.HandleFunc("/flow/summary", handler.FlowSummary)
	mux.HandleFunc("/events", handler.Events)
	mux.HandleFunc("/events/stream", stream.Handle)
	mux.HandleFunc("/saves", handler.Saves)
	return mux
}
