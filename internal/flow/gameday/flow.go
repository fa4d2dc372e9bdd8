// Package gameday wraps the simulation engine in a single-game state
// machine: pre-game presentation, prediction tracking, pacing control, and
// the post-game wrap-up.
package gameday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gridironsim/franchise-flow/internal/domain"
	"github.com/gridironsim/franchise-flow/internal/domain/schedule"
	"github.com/gridironsim/franchise-flow/internal/events"
	"github.com/gridironsim/franchise-flow/internal/sim"
)

// ErrNotUserGame indicates a caller bug: the scheduled game handed to
// InitializeGameDay does not involve the user's team.
var ErrNotUserGame = errors.New("gameday: scheduled game does not involve user team")

// Engine is the slice of the simulation engine the flow depends on.
type Engine interface {
	NextPlay() *sim.PlayResult
	Complete() bool
	Result() *domain.GameResult
	Live() sim.LiveGame
	AtHalftime() bool
}

// EngineFactory builds an engine for the user's game from the two rosters.
type EngineFactory func(game schedule.ScheduledGame, week int, state domain.GameState) (Engine, error)

// Config wires the flow's collaborators.
type Config struct {
	Bus         *events.Bus
	Logger      *slog.Logger
	Factory     EngineFactory
	Delays      map[Speed]time.Duration
	WeatherSeed int64
}

// Flow is the game day state machine. All state access is serialized by an
// internal mutex; Pause/Resume/Stop use flags so they can interrupt a
// RunContinuous loop from another goroutine.
type Flow struct {
	bus     *events.Bus
	logger  *slog.Logger
	factory EngineFactory
	delays  map[Speed]time.Duration
	weather *weatherModel

	mu         sync.Mutex
	phase      Phase
	game       schedule.ScheduledGame
	week       int
	state      domain.GameState
	userTeamID string
	engine     Engine
	pre        *PreGameInfo
	halftime   *HalftimeInfo
	post       *PostGameInfo
	prediction Prediction
	speed      Speed
	plays      int

	paused  atomic.Bool
	stopped atomic.Bool
}

// New constructs an idle Flow.
func New(cfg Config) *Flow {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	delays := cfg.Delays
	if delays == nil {
		delays = DefaultDelays()
	}
	return &Flow{
		bus:     cfg.Bus,
		logger:  logger,
		factory: cfg.Factory,
		delays:  delays,
		weather: newWeatherModel(cfg.WeatherSeed),
		phase:   PhaseIdle,
		speed:   SpeedNormal,
	}
}

// InitializeGameDay computes the pre-game presentation and moves idle →
// pre_game. The game must involve the user's team.
func (f *Flow) InitializeGameDay(game schedule.ScheduledGame, state domain.GameState, userTeamID string, weekNum int) (*PreGameInfo, error) {
	if !game.Involves(userTeamID) {
		return nil, fmt.Errorf("%w: game %s, team %s", ErrNotUserGame, game.ID, userTeamID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.resetLocked()
	f.game = game
	f.week = weekNum
	f.state = state.Clone()
	f.userTeamID = userTeamID

	opponentID := game.OpponentOf(userTeamID)
	info := &PreGameInfo{
		GameID:     game.ID,
		Week:       weekNum,
		OpponentID: opponentID,
		IsHome:     game.HomeTeamID == userTeamID,
		Weather:    f.weather.forecast(weekNum, game.HomeTeamID),
	}
	if opp, ok := state.Teams[opponentID]; ok {
		info.OpponentName = opp.City + " " + opp.Name
		info.OpponentRecord = opp.Record.String()
	}
	if user, ok := state.Teams[userTeamID]; ok {
		info.UserRecord = user.Record.String()
		if opp, ok := state.Teams[opponentID]; ok {
			info.Stakes = stakesLine(weekNum, user.Division, opp.Division, user.Conference, opp.Conference)
		}
	}
	info.UserInjuries = injuryReport(state, userTeamID)
	info.OppInjuries = injuryReport(state, opponentID)

	f.pre = info
	f.phase = PhasePreGame
	f.logger.Info("game day initialized", "game_id", game.ID, "week", weekNum, "opponent", opponentID)
	return info, nil
}

// SetPrediction stores the user's call. Ignored once the game is over.
func (f *Flow) SetPrediction(p Prediction) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase == PhasePostGame || f.phase == PhaseSaving {
		return
	}
	f.prediction = p
}

// StartGame transitions pre_game → coin_toss and initializes the engine from
// the two rosters.
func (f *Flow) StartGame() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != PhasePreGame {
		return fmt.Errorf("gameday: cannot start game from phase %q", f.phase)
	}
	engine, err := f.factory(f.game, f.week, f.state)
	if err != nil {
		return fmt.Errorf("gameday: init engine: %w", err)
	}
	f.engine = engine
	f.phase = PhaseCoinToss
	f.paused.Store(false)
	f.stopped.Store(false)

	if f.bus != nil {
		f.bus.Emit(events.GameStart{
			GameID:     f.game.ID,
			Week:       f.week,
			HomeTeamID: f.game.HomeTeamID,
			AwayTeamID: f.game.AwayTeamID,
		})
	}
	return nil
}

// SetSpeed adjusts continuous-simulation pacing.
func (f *Flow) SetSpeed(s Speed) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.delays[s]; ok {
		f.speed = s
	}
}

// Pause suspends continuous simulation between plays. Idempotent.
func (f *Flow) Pause() { f.paused.Store(true) }

// Resume lifts a pause. Idempotent.
func (f *Flow) Resume() { f.paused.Store(false) }

// Stop forces a continuous run to exit before its next play. Used mainly in
// teardown.
func (f *Flow) Stop() { f.stopped.Store(true) }

// RunNextPlay resolves exactly one play. Returns nil when no game is in
// progress or the game is already complete.
func (f *Flow) RunNextPlay() *sim.PlayResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stepLocked()
}

// RunContinuous resolves plays until completion, pause, stop, or context
// cancellation, sleeping the configured per-speed delay between plays. A
// result is only produced on natural completion.
func (f *Flow) RunContinuous(ctx context.Context) *domain.GameResult {
	for {
		if f.paused.Load() || f.stopped.Load() || ctx.Err() != nil {
			return nil
		}

		f.mu.Lock()
		play := f.stepLocked()
		done := f.phase == PhasePostGame
		result := f.resultLocked()
		delay := f.delays[f.speed]
		f.mu.Unlock()

		if done {
			return result
		}
		if play == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
	}
}

// SkipToEnd resolves all remaining plays with no delay and returns the final
// result. Returns nil when no game is in progress.
func (f *Flow) SkipToEnd() *domain.GameResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.engine == nil {
		return nil
	}
	for f.phase != PhasePostGame {
		if f.stepLocked() == nil && f.phase != PhasePostGame {
			return nil
		}
	}
	return f.resultLocked()
}

// GameResult returns the final result once the game has reached post_game.
func (f *Flow) GameResult() *domain.GameResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resultLocked()
}

// MarkSaving transitions post_game → saving while results are persisted.
func (f *Flow) MarkSaving() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase == PhasePostGame {
		f.phase = PhaseSaving
	}
}

// State returns the current read-only projection.
func (f *Flow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := FlowState{
		Phase:      f.phase,
		Speed:      f.speed,
		Paused:     f.paused.Load(),
		Prediction: f.prediction,
		PlaysRun:   f.plays,
	}
	if f.pre != nil {
		pre := *f.pre
		st.PreGame = &pre
	}
	if f.engine != nil {
		live := f.engine.Live()
		st.Live = &live
	}
	if f.halftime != nil {
		ht := *f.halftime
		st.Halftime = &ht
	}
	if f.post != nil {
		post := *f.post
		st.PostGame = &post
	}
	if f.phase != PhaseIdle && f.phase != PhasePreGame {
		// Away receives the opening kickoff; home defers to the second half.
		st.KickoffTeam = f.game.HomeTeamID
		st.ReceivesTeam = f.game.AwayTeamID
	}
	return st
}

// Reset discards all per-game state and returns to idle.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

func (f *Flow) resetLocked() {
	f.phase = PhaseIdle
	f.game = schedule.ScheduledGame{}
	f.week = 0
	f.state = domain.GameState{}
	f.userTeamID = ""
	f.engine = nil
	f.pre = nil
	f.halftime = nil
	f.post = nil
	f.prediction = PredictNone
	f.speed = SpeedNormal
	f.plays = 0
	f.paused.Store(false)
	f.stopped.Store(false)
}

// stepLocked resolves one play and applies phase transitions. Callers hold
// the mutex.
func (f *Flow) stepLocked() *sim.PlayResult {
	if f.engine == nil || f.phase == PhasePostGame || f.phase == PhaseSaving {
		return nil
	}
	if f.phase == PhaseCoinToss || f.phase == PhaseHalftime {
		f.phase = PhaseSimulating
	}
	if f.phase != PhaseSimulating {
		return nil
	}

	play := f.engine.NextPlay()
	if play == nil {
		f.finishLocked()
		return nil
	}
	f.plays++

	switch {
	case f.engine.Complete():
		f.finishLocked()
	case f.engine.AtHalftime() && f.halftime == nil:
		live := f.engine.Live()
		userLeading := live.Score.Home > live.Score.Away
		if f.game.AwayTeamID == f.userTeamID {
			userLeading = live.Score.Away > live.Score.Home
		}
		f.halftime = &HalftimeInfo{Score: live.Score, UserLeading: userLeading}
		f.phase = PhaseHalftime
	}
	return play
}

func (f *Flow) finishLocked() {
	result := f.engine.Result()
	if result == nil {
		return
	}
	f.phase = PhasePostGame

	userWon := result.WinnerID == f.userTeamID
	post := &PostGameInfo{
		Result:     *result,
		UserWon:    userWon,
		Prediction: f.prediction,
	}
	if f.prediction != PredictNone {
		correct := (f.prediction == PredictWin && userWon) ||
			(f.prediction == PredictLoss && result.LoserID == f.userTeamID)
		post.PredictionCorrect = &correct
	}
	f.post = post

	f.logger.Info("game complete",
		"game_id", f.game.ID,
		"score", fmt.Sprintf("%d-%d", result.Score.Home, result.Score.Away),
		"plays", f.plays,
	)
}

func (f *Flow) resultLocked() *domain.GameResult {
	if f.phase != PhasePostGame && f.phase != PhaseSaving {
		return nil
	}
	if f.post == nil {
		return nil
	}
	r := f.post.Result
	return &r
}

func stakesLine(weekNum int, userDiv, oppDiv, userConf, oppConf string) string {
	switch {
	case userConf == oppConf && userDiv == oppDiv:
		if weekNum >= 10 {
			return "Division matchup with playoff implications"
		}
		return "Division matchup"
	case userConf == oppConf:
		return "Conference matchup"
	default:
		return "Interconference matchup"
	}
}

func injuryReport(state domain.GameState, teamID string) []InjuryReportEntry {
	var report []InjuryReportEntry
	for _, p := range state.Players {
		if p.TeamID != teamID || p.Injury.Healthy() {
			continue
		}
		report = append(report, InjuryReportEntry{
			PlayerID: p.ID,
			Name:     p.Name,
			Position: string(p.Position),
			Severity: string(p.Injury.Severity),
		})
	}
	sort.Slice(report, func(i, j int) bool { return report[i].PlayerID < report[j].PlayerID })
	return report
}
