// Package server composes configuration, telemetry, stores, and the flow
// manager into a runnable HTTP service.
package server

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/gridironsim/franchise-flow/internal/config"
	"github.com/gridironsim/franchise-flow/internal/domain"
	"github.com/gridironsim/franchise-flow/internal/domain/schedule"
	"github.com/gridironsim/franchise-flow/internal/events"
	"github.com/gridironsim/franchise-flow/internal/flow"
	"github.com/gridironsim/franchise-flow/internal/flow/gameday"
	"github.com/gridironsim/franchise-flow/internal/flow/week"
	httpserver "github.com/gridironsim/franchise-flow/internal/http"
	"github.com/gridironsim/franchise-flow/internal/league"
	"github.com/gridironsim/franchise-flow/internal/logging"
	"github.com/gridironsim/franchise-flow/internal/metrics"
	"github.com/gridironsim/franchise-flow/internal/sim"
	"github.com/gridironsim/franchise-flow/internal/store"
)

var metricsSetup = metrics.Setup

// Server owns the composed components and their lifecycles.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	bus           *events.Bus
	manager       *flow.Manager
	memory        *store.MemoryStore
	saves         *store.SaveStore
	handler       http.Handler
	httpServer    listener
	metricsServer listener
	metricsStop   func(context.Context) error
}

// New constructs a server with a generated league seeded from config.
func New(cfg config.Config, logger *slog.Logger) *Server {
	seed := cfg.SimSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	state, sched := league.Build(seed, time.Now().Year(), cfg.Season.RegularSeasonWeeks)
	return newServerWithLeague(cfg, logger, seed, state, sched)
}

func newServerWithLeague(cfg config.Config, logger *slog.Logger, seed int64, state domain.GameState, sched *schedule.SeasonSchedule) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)
	bus := events.NewBus(logger)
	rng := rand.New(rand.NewSource(seed))

	weekSvc := week.NewService(week.Config{
		RegularSeasonWeeks: cfg.Season.RegularSeasonWeeks,
		PlayoffWeeks:       cfg.Season.PlayoffWeeks,
	}, bus, rng, logger)

	gameDay := gameday.New(gameday.Config{
		Bus:    bus,
		Logger: logger,
		Factory: func(game schedule.ScheduledGame, weekNum int, st domain.GameState) (gameday.Engine, error) {
			// Each engine gets its own source: rng belongs to the week
			// service, which draws under a different lock. Deriving from the
			// week keeps the same seed replaying the same game.
			eng, err := sim.New(sim.Config{
				Game:   game,
				Week:   weekNum,
				State:  st,
				Bus:    bus,
				Rand:   rand.New(rand.NewSource(seed + int64(weekNum))),
				Logger: logger,
			})
			if err != nil {
				return nil, err
			}
			return eng, nil
		},
		Delays: map[gameday.Speed]time.Duration{
			gameday.SpeedSlow:   time.Duration(cfg.Pacing.Slow),
			gameday.SpeedNormal: time.Duration(cfg.Pacing.Normal),
			gameday.SpeedFast:   time.Duration(cfg.Pacing.Fast),
		},
		WeatherSeed: seed,
	})

	memory := store.NewMemoryStore()
	memory.SetState(state)

	var checkpointer flow.Checkpointer
	saves, err := store.OpenSaveStore(cfg.SaveDBPath)
	if err != nil {
		logger.Warn("save store unavailable, continuing without checkpoints", "path", cfg.SaveDBPath, "error", err)
		saves = nil
	} else {
		checkpointer = saves
	}

	var manager *flow.Manager
	manager = flow.NewManager(flow.Config{
		WeekService:  weekSvc,
		GameDay:      gameDay,
		Logger:       logger,
		Metrics:      recorder,
		Checkpointer: checkpointer,
		Callbacks: flow.Callbacks{
			OnStateChange: func(st flow.State) {
				memory.SetState(manager.GameState())
			},
			OnWeekStart: func(weekNum int) {
				logger.Info("week started", slog.Int(logging.FieldWeek, weekNum))
			},
		},
	})

	userTeamID := cfg.UserTeamID
	if userTeamID == "" {
		userTeamID = league.DefaultUserTeamID
	}
	manager.Initialize(state, sched, userTeamID, cfg.StartWeek, domain.PhaseRegularSeason)

	handler := httpserver.NewHandler(manager, bus, saves, logger)
	streamHandler := httpserver.NewStreamHandler(bus, logger)
	router := httpserver.NewRouter(handler, streamHandler)
	wrapped := httpserver.LoggingMiddleware(logger, recorder, router)

	// No WriteTimeout: /events/stream and continuous simulation hold
	// connections open past any sane bound.
	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     wrapped,
		ReadTimeout: readTimeout,
		IdleTimeout: idleTimeout,
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		bus:           bus,
		manager:       manager,
		memory:        memory,
		saves:         saves,
		handler:       wrapped,
		httpServer:    stdServer{srv: srv},
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, listener, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logger.Warn("metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv listener
	if handler != nil && recCfg.Enabled {
		metricsSrv = stdServer{
			srv: &http.Server{
				Addr:    ":" + cfg.Metrics.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

// Run starts the HTTP and metrics servers, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	s.logger.Info("shutdown signal received")
	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}
	if s.saves != nil {
		if err := s.saves.Close(); err != nil {
			s.logger.Warn("save store close failed", "error", err)
		}
	}

	s.logger.Info("shutdown complete")
}

func launchServer(name string, srv listener, logger *slog.Logger, onError func(error)) {
	go func() {
		logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn(name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Manager exposes the flow manager (useful for tests).
func (s *Server) Manager() *flow.Manager {
	return s.manager
}
