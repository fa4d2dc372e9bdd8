package http

import (
	"encoding/json"
	"log/slog"
	nethttp "net/http"
	"strconv"

	"github.com/gridironsim/franchise-flow/internal/events"
	"github.com/gridironsim/franchise-flow/internal/flow"
	"github.com/gridironsim/franchise-flow/internal/flow/gameday"
	"github.com/gridironsim/franchise-flow/internal/store"
)

const defaultEventLimit = 50

// Handler wires HTTP routes to the flow manager.
type Handler struct {
	mgr    *flow.Manager
	bus    *events.Bus
	saves  *store.SaveStore
	logger *slog.Logger
	responder
}

// NewHandler constructs a Handler. The save store is optional.
func NewHandler(mgr *flow.Manager, bus *events.Bus, saves *store.SaveStore, logger *slog.Logger) *Handler {
	return &Handler{
		mgr:       mgr,
		bus:       bus,
		saves:     saves,
		logger:    logger,
		responder: responder{logger: logger},
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether a franchise has been loaded into the manager.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	st := h.mgr.State()
	if st.WeekFlow.Week == 0 {
		h.writeError(w, nethttp.StatusServiceUnavailable, "franchise not loaded")
		return
	}
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"})
}

// FlowState returns the current flow snapshot.
func (h *Handler) FlowState(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, h.mgr.State())
}

type actionRequest struct {
	Type       string `json:"type"`
	Prediction string `json:"prediction,omitempty"`
	Speed      string `json:"speed,omitempty"`
}

// FlowAction decodes an action request, dispatches it, and returns the
// resulting state. Flow violations surface in the state's error field, not
// as HTTP errors.
func (h *Handler) FlowAction(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost {
		h.writeError(w, nethttp.StatusMethodNotAllowed, "POST required")
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, nethttp.StatusBadRequest, "invalid action payload")
		return
	}

	action, err := actionFromRequest(req)
	if err != "" {
		h.writeError(w, nethttp.StatusBadRequest, err)
		return
	}

	h.mgr.Dispatch(r.Context(), action)
	h.writeJSON(w, nethttp.StatusOK, h.mgr.State())
}

func actionFromRequest(req actionRequest) (flow.Action, string) {
	switch req.Type {
	case "view_pre_game":
		return flow.ViewPreGame{}, ""
	case "set_prediction":
		// Empty clears the prediction.
		p := gameday.Prediction(req.Prediction)
		if p != gameday.PredictWin && p != gameday.PredictLoss && p != gameday.PredictNone {
			return nil, "prediction must be win, loss, or empty"
		}
		return flow.SetPrediction{Prediction: p}, ""
	case "start_game":
		return flow.StartGame{}, ""
	case "set_speed":
		s := gameday.Speed(req.Speed)
		if s != gameday.SpeedSlow && s != gameday.SpeedNormal && s != gameday.SpeedFast {
			return nil, "speed must be slow, normal, or fast"
		}
		return flow.SetSpeed{Speed: s}, ""
	case "pause":
		return flow.Pause{}, ""
	case "resume":
		return flow.Resume{}, ""
	case "run_next_play":
		return flow.RunNextPlay{}, ""
	case "run_continuous":
		return flow.RunContinuous{}, ""
	case "skip_to_end":
		return flow.SkipToEnd{}, ""
	case "mark_game_result_viewed":
		return flow.MarkGameResultViewed{}, ""
	case "simulate_other_games":
		return flow.SimulateOtherGames{}, ""
	case "view_week_summary":
		return flow.ViewWeekSummary{}, ""
	case "mark_week_summary_viewed":
		return flow.MarkWeekSummaryViewed{}, ""
	case "advance_week":
		return flow.AdvanceWeek{}, ""
	case "clear_error":
		return flow.ClearError{}, ""
	default:
		return nil, "unknown action type"
	}
}

// FlowSummary returns the week summary once all games are resolved.
func (h *Handler) FlowSummary(w nethttp.ResponseWriter, r *nethttp.Request) {
	summary := h.mgr.ViewWeekSummary()
	if summary == nil {
		h.writeError(w, nethttp.StatusConflict, "week summary not available")
		return
	}
	h.writeJSON(w, nethttp.StatusOK, summary)
}

type eventEnvelope struct {
	Type  events.Type  `json:"type"`
	Event events.Event `json:"event"`
}

// Events returns recent bus history, optionally filtered by ?type= and
// bounded by ?limit=.
func (h *Handler) Events(w nethttp.ResponseWriter, r *nethttp.Request) {
	limit := defaultEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.writeError(w, nethttp.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	var history []events.Event
	if raw := r.URL.Query().Get("type"); raw != "" {
		history = h.bus.EventsByType(events.Type(raw), limit)
	} else {
		history = h.bus.History(limit)
	}

	envelopes := make([]eventEnvelope, 0, len(history))
	for _, ev := range history {
		envelopes = append(envelopes, eventEnvelope{Type: ev.EventType(), Event: ev})
	}
	h.writeJSON(w, nethttp.StatusOK, envelopes)
}

// Saves lists persisted save slots, newest first.
func (h *Handler) Saves(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.saves == nil {
		h.writeError(w, nethttp.StatusServiceUnavailable, "save store not configured")
		return
	}
	slots, err := h.saves.List()
	if err != nil {
		h.logger.Error("failed to list save slots", "error", err)
		h.writeError(w, nethttp.StatusInternalServerError, "failed to list save slots")
		return
	}
	if slots == nil {
		slots = []store.SaveSlot{}
	}
	h.writeJSON(w, nethttp.StatusOK, slots)
}
