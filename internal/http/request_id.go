package http

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// generateRequestID mints an id for requests that arrive without one.
func generateRequestID() string {
	return uuid.NewString()
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFromContext(ctx context.Context) string {
	val, _ := ctx.Value(requestIDKey{}).(string)
	return val
}
