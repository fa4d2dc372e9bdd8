package http

import (
	"encoding/json"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gridironsim/franchise-flow/internal/events"
)

const (
	streamQueueSize  = 64
	streamWriteLimit = 10 * time.Second
)

// StreamHandler pushes every bus event to websocket clients as it happens.
type StreamHandler struct {
	bus      *events.Bus
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewStreamHandler constructs a StreamHandler for the given bus.
func NewStreamHandler(bus *events.Bus, logger *slog.Logger) *StreamHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamHandler{
		bus:    bus,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *nethttp.Request) bool {
				return true
			},
		},
	}
}

// Handle upgrades the connection and streams events until the client
// disconnects. Events are dropped rather than blocking the bus when the
// client cannot keep up.
func (h *StreamHandler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err, "request_id", requestIDFromContext(r.Context()))
		return
	}

	queue := make(chan events.Event, streamQueueSize)
	sub := h.bus.SubscribeAll(func(ev events.Event) {
		select {
		case queue <- ev:
		default:
			h.logger.Warn("stream client lagging, dropping event", "event_type", string(ev.EventType()))
		}
	})

	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			// Drain reads so close frames and pings are processed.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		sub.Unsubscribe()
		conn.Close()
	}()

	for {
		select {
		case <-done:
			return
		case ev := <-queue:
			payload, err := json.Marshal(eventEnvelope{Type: ev.EventType(), Event: ev})
			if err != nil {
				h.logger.Error("failed to encode event", "error", err)
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(streamWriteLimit))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}
}
