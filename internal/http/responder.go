package http

import (
	"encoding/json"
	"log/slog"
	nethttp "net/http"
)

type responder struct {
	logger *slog.Logger
}

func (rp responder) writeJSON(w nethttp.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && rp.logger != nil {
		rp.logger.Error("failed to encode response", "error", err)
	}
}

func (rp responder) writeError(w nethttp.ResponseWriter, status int, message string) {
	rp.writeJSON(w, status, map[string]string{"error": message})
}
