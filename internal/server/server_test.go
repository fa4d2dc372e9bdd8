package server

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gridironsim/franchise-flow/internal/config"
	"github.com/gridironsim/franchise-flow/internal/flow"
	"github.com/gridironsim/franchise-flow/internal/flow/week"
	"github.com/gridironsim/franchise-flow/internal/league"
	"github.com/gridironsim/franchise-flow/internal/metrics"
	"github.com/gridironsim/franchise-flow/internal/testutil"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Load()
	cfg.SaveDBPath = filepath.Join(t.TempDir(), "franchise.db")
	cfg.Metrics.Enabled = false
	return cfg
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := testConfig(t)
	state, sched := league.Build(11, 2026, cfg.Season.RegularSeasonWeeks)
	srv := newServerWithLeague(cfg, testutil.SilentLogger(), 11, state, sched)
	t.Cleanup(func() {
		if srv.saves != nil {
			srv.saves.Close()
		}
	})
	return srv
}

func TestServerServesHealth(t *testing.T) {
	srv := newTestServer(t)

	rr := testutil.Serve(srv.Handler(), "GET", "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestServerInitializesFranchise(t *testing.T) {
	srv := newTestServer(t)

	rr := testutil.Serve(srv.Handler(), "GET", "/flow/state", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var st flow.State
	if err := json.NewDecoder(rr.Body).Decode(&st); err != nil {
		t.Fatalf("failed decoding state: %v", err)
	}
	if st.WeekFlow.Week != 1 || st.WeekFlow.Phase != week.PhaseWeekStart {
		t.Fatalf("unexpected initial state: %+v", st.WeekFlow)
	}
	if st.WeekFlow.UserGame == nil {
		t.Fatalf("expected a week 1 game for the user team")
	}
}

func TestServerSavesRouteBacksOntoStore(t *testing.T) {
	srv := newTestServer(t)

	rr := testutil.Serve(srv.Handler(), "GET", "/saves", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestServerDegradesWhenMetricsSetupFails(t *testing.T) {
	orig := metricsSetup
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, context.DeadlineExceeded
	}
	t.Cleanup(func() { metricsSetup = orig })

	srv := newTestServer(t)
	if srv.metrics == nil {
		t.Fatalf("expected fallback recorder")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server after setup failure")
	}
}

func TestPlayAndLeagueSimulationRunConcurrently(t *testing.T) {
	srv := newTestServer(t)
	mgr := srv.Manager()

	mgr.ViewPreGame()
	mgr.StartGameSimulation()

	// The engine and the week service draw randomness under different locks;
	// each must own its source for these to overlap safely.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			mgr.RunNextPlay()
		}
	}()
	go func() {
		defer wg.Done()
		mgr.SimulateOtherGames()
	}()
	wg.Wait()
}

func TestGracefulShutdownSafe(t *testing.T) {
	srv := newTestServer(t)
	srv.gracefulShutdown()
}
