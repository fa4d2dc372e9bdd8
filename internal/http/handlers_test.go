package http

import (
	"encoding/json"
	"math/rand"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gridironsim/franchise-flow/internal/domain"
	"github.com/gridironsim/franchise-flow/internal/domain/schedule"
	"github.com/gridironsim/franchise-flow/internal/events"
	"github.com/gridironsim/franchise-flow/internal/flow"
	"github.com/gridironsim/franchise-flow/internal/flow/gameday"
	"github.com/gridironsim/franchise-flow/internal/flow/week"
	"github.com/gridironsim/franchise-flow/internal/sim"
	"github.com/gridironsim/franchise-flow/internal/testutil"
)

func newTestManager(bus *events.Bus) *flow.Manager {
	weekSvc := week.NewService(week.DefaultConfig(), bus, rand.New(rand.NewSource(3)), testutil.SilentLogger())
	gameDay := gameday.New(gameday.Config{
		Bus:    bus,
		Logger: testutil.SilentLogger(),
		Factory: func(game schedule.ScheduledGame, weekNum int, state domain.GameState) (gameday.Engine, error) {
			eng, err := sim.New(sim.Config{
				Game:   game,
				Week:   weekNum,
				State:  state,
				Bus:    bus,
				Rand:   rand.New(rand.NewSource(3)),
				Logger: testutil.SilentLogger(),
			})
			if err != nil {
				return nil, err
			}
			return eng, nil
		},
	})
	return flow.NewManager(flow.Config{
		WeekService: weekSvc,
		GameDay:     gameDay,
		Logger:      testutil.SilentLogger(),
	})
}

func newTestHandler(bus *events.Bus, initialized bool) *Handler {
	mgr := newTestManager(bus)
	if initialized {
		mgr.Initialize(testutil.SampleState(), testutil.SampleSchedule(18, 0), testutil.UserTeamID, 1, domain.PhaseRegularSeason)
	}
	return NewHandler(mgr, bus, nil, testutil.SilentLogger())
}

func TestHealth(t *testing.T) {
	h := newTestHandler(events.NewBus(testutil.SilentLogger()), false)

	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest("GET", "/health", nil))

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed decoding response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestReadyReflectsInitialization(t *testing.T) {
	bus := events.NewBus(testutil.SilentLogger())

	cold := newTestHandler(bus, false)
	rr := httptest.NewRecorder()
	cold.Ready(rr, httptest.NewRequest("GET", "/ready", nil))
	if rr.Code != 503 {
		t.Fatalf("expected 503 before initialization, got %d", rr.Code)
	}

	warm := newTestHandler(bus, true)
	rr = httptest.NewRecorder()
	warm.Ready(rr, httptest.NewRequest("GET", "/ready", nil))
	if rr.Code != 200 {
		t.Fatalf("expected 200 after initialization, got %d", rr.Code)
	}
}

func TestFlowStateSnapshot(t *testing.T) {
	h := newTestHandler(events.NewBus(testutil.SilentLogger()), true)

	rr := httptest.NewRecorder()
	h.FlowState(rr, httptest.NewRequest("GET", "/flow/state", nil))

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var st flow.State
	if err := json.NewDecoder(rr.Body).Decode(&st); err != nil {
		t.Fatalf("failed decoding state: %v", err)
	}
	if st.WeekFlow.Week != 1 || st.WeekFlow.Phase != week.PhaseWeekStart {
		t.Fatalf("unexpected state: %+v", st.WeekFlow)
	}
}

func TestFlowActionDispatches(t *testing.T) {
	h := newTestHandler(events.NewBus(testutil.SilentLogger()), true)

	body := strings.NewReader(`{"type":"view_pre_game"}`)
	rr := httptest.NewRecorder()
	h.FlowAction(rr, httptest.NewRequest("POST", "/flow/actions", body))

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var st flow.State
	if err := json.NewDecoder(rr.Body).Decode(&st); err != nil {
		t.Fatalf("failed decoding state: %v", err)
	}
	if st.WeekFlow.Phase != week.PhasePreGame {
		t.Fatalf("expected pre_game after action, got %s", st.WeekFlow.Phase)
	}
}

func TestFlowActionValidation(t *testing.T) {
	h := newTestHandler(events.NewBus(testutil.SilentLogger()), true)

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"unknown type", `{"type":"teleport"}`},
		{"bad prediction", `{"type":"set_prediction","prediction":"maybe"}`},
		{"bad speed", `{"type":"set_speed","speed":"ludicrous"}`},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		h.FlowAction(rr, httptest.NewRequest("POST", "/flow/actions", strings.NewReader(c.body)))
		if rr.Code != 400 {
			t.Fatalf("%s: expected 400, got %d", c.name, rr.Code)
		}
	}
}

func TestFlowActionClearsPrediction(t *testing.T) {
	h := newTestHandler(events.NewBus(testutil.SilentLogger()), true)

	post := func(body string) flow.State {
		t.Helper()
		rr := httptest.NewRecorder()
		h.FlowAction(rr, httptest.NewRequest("POST", "/flow/actions", strings.NewReader(body)))
		if rr.Code != 200 {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		var st flow.State
		if err := json.NewDecoder(rr.Body).Decode(&st); err != nil {
			t.Fatalf("failed decoding state: %v", err)
		}
		return st
	}

	post(`{"type":"view_pre_game"}`)
	st := post(`{"type":"set_prediction","prediction":"win"}`)
	if st.GameDay == nil || st.GameDay.Prediction != gameday.PredictWin {
		t.Fatalf("expected prediction win, got %+v", st.GameDay)
	}

	// An empty prediction clears the call back to none.
	st = post(`{"type":"set_prediction"}`)
	if st.GameDay == nil || st.GameDay.Prediction != gameday.PredictNone {
		t.Fatalf("expected cleared prediction, got %+v", st.GameDay)
	}
}

func TestFlowActionRequiresPost(t *testing.T) {
	h := newTestHandler(events.NewBus(testutil.SilentLogger()), true)

	rr := httptest.NewRecorder()
	h.FlowAction(rr, httptest.NewRequest("GET", "/flow/actions", nil))
	if rr.Code != 405 {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestFlowActionFlowViolationIsNotHTTPError(t *testing.T) {
	h := newTestHandler(events.NewBus(testutil.SilentLogger()), true)

	// Starting without pre-game is a flow violation, reported in state.
	rr := httptest.NewRecorder()
	h.FlowAction(rr, httptest.NewRequest("POST", "/flow/actions", strings.NewReader(`{"type":"start_game"}`)))

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var st flow.State
	if err := json.NewDecoder(rr.Body).Decode(&st); err != nil {
		t.Fatalf("failed decoding state: %v", err)
	}
	if st.Error == "" {
		t.Fatalf("expected flow error surfaced in state")
	}
}

func TestFlowSummary(t *testing.T) {
	bus := events.NewBus(testutil.SilentLogger())

	cold := newTestHandler(bus, false)
	rr := httptest.NewRecorder()
	cold.FlowSummary(rr, httptest.NewRequest("GET", "/flow/summary", nil))
	if rr.Code != 409 {
		t.Fatalf("expected 409 before initialization, got %d", rr.Code)
	}

	warm := newTestHandler(bus, true)
	rr = httptest.NewRecorder()
	warm.FlowSummary(rr, httptest.NewRequest("GET", "/flow/summary", nil))
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var summary week.Summary
	if err := json.NewDecoder(rr.Body).Decode(&summary); err != nil {
		t.Fatalf("failed decoding summary: %v", err)
	}
	if summary.Week != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestEventsHistory(t *testing.T) {
	bus := events.NewBus(testutil.SilentLogger())
	h := newTestHandler(bus, false)

	bus.Emit(events.ScoreChange{GameID: "g1", Points: 7})
	bus.Emit(events.QuarterEnd{GameID: "g1", Quarter: 1})
	bus.Emit(events.ScoreChange{GameID: "g1", Points: 3})

	type envelope struct {
		Type  events.Type     `json:"type"`
		Event json.RawMessage `json:"event"`
	}

	rr := httptest.NewRecorder()
	h.Events(rr, httptest.NewRequest("GET", "/events", nil))
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var all []envelope
	if err := json.NewDecoder(rr.Body).Decode(&all); err != nil {
		t.Fatalf("failed decoding events: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}

	rr = httptest.NewRecorder()
	h.Events(rr, httptest.NewRequest("GET", "/events?type=score_change&limit=1", nil))
	var filtered []envelope
	if err := json.NewDecoder(rr.Body).Decode(&filtered); err != nil {
		t.Fatalf("failed decoding events: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Type != events.TypeScoreChange {
		t.Fatalf("unexpected filtered events: %+v", filtered)
	}
}

func TestEventsRejectsBadLimit(t *testing.T) {
	h := newTestHandler(events.NewBus(testutil.SilentLogger()), false)

	rr := httptest.NewRecorder()
	h.Events(rr, httptest.NewRequest("GET", "/events?limit=zero", nil))
	if rr.Code != 400 {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestSavesUnavailableWithoutStore(t *testing.T) {
	h := newTestHandler(events.NewBus(testutil.SilentLogger()), false)

	rr := httptest.NewRecorder()
	h.Saves(rr, httptest.NewRequest("GET", "/saves", nil))
	if rr.Code != 503 {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}
