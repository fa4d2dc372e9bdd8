// Package flow exposes the top-level façade composing the game day flow and
// the week progression service into one state machine consumed by the
// presentation layer.
package flow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gridironsim/franchise-flow/internal/domain"
	"github.com/gridironsim/franchise-flow/internal/domain/schedule"
	"github.com/gridironsim/franchise-flow/internal/flow/gameday"
	"github.com/gridironsim/franchise-flow/internal/flow/week"
	"github.com/gridironsim/franchise-flow/internal/sim"
)

// Precondition failure messages surfaced on State.Error.
const (
	errNoSchedule  = "No schedule loaded"
	errNoGameState = "No game state loaded"
	errNoUserGame  = "No game scheduled this week"
)

// Metrics is the slice of the metrics recorder the manager reports to.
type Metrics interface {
	RecordPlay()
	RecordGameComplete()
	RecordOtherGames(count int)
	RecordWeekAdvance(seasonPhase string)
}

// Checkpointer persists a franchise snapshot after the user's game is
// recorded. Failures are logged, never surfaced to the user mid-flow.
type Checkpointer interface {
	Checkpoint(weekNum int, state domain.GameState) error
}

// Callbacks is the notification contract exposed to the UI. OnStateChange
// fires after every mutation with the full new snapshot; the named callbacks
// fire at most once per corresponding transition.
type Callbacks struct {
	OnStateChange  func(State)
	OnWeekStart    func(weekNum int)
	OnGameStart    func(gameday.PreGameInfo)
	OnPlayComplete func(sim.PlayResult)
	OnGameComplete func(domain.GameResult)
	OnWeekComplete func(week.Summary)
}

// Config wires the manager's collaborators. Construct and inject; there is
// deliberately no package-level instance.
type Config struct {
	WeekService  *week.Service
	GameDay      *gameday.Flow
	Logger       *slog.Logger
	Metrics      Metrics
	Checkpointer Checkpointer
	Callbacks    Callbacks
}

// Manager owns the single mutable flow state. All mutation happens under its
// lock; readers receive complete, consistent snapshots.
type Manager struct {
	weekSvc      *week.Service
	gameDay      *gameday.Flow
	logger       *slog.Logger
	metrics      Metrics
	checkpointer Checkpointer
	callbacks    Callbacks

	mu          sync.Mutex
	weekFlow    week.FlowState
	isLoading   bool
	errMsg      string
	gameState   domain.GameState
	sched       *schedule.SeasonSchedule
	userTeamID  string
	currentWeek int
	seasonPhase domain.SeasonPhase
	initialized bool
}

// NewManager constructs a Manager.
func NewManager(cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		weekSvc:      cfg.WeekService,
		gameDay:      cfg.GameDay,
		logger:       logger,
		metrics:      cfg.Metrics,
		checkpointer: cfg.Checkpointer,
		callbacks:    cfg.Callbacks,
	}
}

// Initialize loads the franchise references and derives the first week flow.
func (m *Manager) Initialize(state domain.GameState, sched *schedule.SeasonSchedule, userTeamID string, currentWeek int, phase domain.SeasonPhase) {
	m.mu.Lock()
	m.gameState = state.Clone()
	m.sched = sched
	m.userTeamID = userTeamID
	m.currentWeek = currentWeek
	m.seasonPhase = phase
	m.initialized = true
	m.errMsg = ""
	m.weekFlow = m.weekSvc.CreateFlowState(currentWeek, phase, userTeamID, sched)
	m.gameDay.Reset()
	weekNum := m.currentWeek
	st := m.snapshotLocked()
	m.mu.Unlock()

	m.fireWeekStart(weekNum)
	m.notify(st)
}

// StartWeek re-derives the week flow for the given week, discarding any
// stale game day state.
func (m *Manager) StartWeek(weekNum int, phase domain.SeasonPhase) {
	m.mu.Lock()
	if m.sched == nil {
		m.errMsg = errNoSchedule
		st := m.snapshotLocked()
		m.mu.Unlock()
		m.notify(st)
		return
	}
	m.startWeekLocked(weekNum, phase)
	st := m.snapshotLocked()
	m.mu.Unlock()

	m.fireWeekStart(weekNum)
	m.notify(st)
}

func (m *Manager) startWeekLocked(weekNum int, phase domain.SeasonPhase) {
	m.currentWeek = weekNum
	m.seasonPhase = phase
	m.weekFlow = m.weekSvc.CreateFlowState(weekNum, phase, m.userTeamID, m.sched)
	m.gameDay.Reset()
	m.errMsg = ""
}

// ViewPreGame initializes the game day flow for the user's scheduled game
// and moves the week to pre_game.
func (m *Manager) ViewPreGame() *gameday.PreGameInfo {
	m.mu.Lock()
	if m.weekFlow.UserGame == nil {
		m.errMsg = errNoUserGame
		st := m.snapshotLocked()
		m.mu.Unlock()
		m.notify(st)
		return nil
	}
	game := *m.weekFlow.UserGame
	state := m.gameState
	userTeamID := m.userTeamID
	weekNum := m.currentWeek
	m.mu.Unlock()

	info, err := m.gameDay.InitializeGameDay(game, state, userTeamID, weekNum)

	m.mu.Lock()
	if err != nil {
		m.errMsg = err.Error()
	} else {
		m.weekFlow.Phase = week.PhasePreGame
	}
	st := m.snapshotLocked()
	m.mu.Unlock()

	if err == nil && info != nil && m.callbacks.OnGameStart != nil {
		m.callbacks.OnGameStart(*info)
	}
	m.notify(st)
	return info
}

// SetPrediction stores the user's call.
func (m *Manager) SetPrediction(p gameday.Prediction) {
	m.gameDay.SetPrediction(p)
	m.notifyCurrent()
}

// StartGameSimulation kicks off the game and moves the week to game_day.
func (m *Manager) StartGameSimulation() {
	err := m.gameDay.StartGame()

	m.mu.Lock()
	if err != nil {
		m.errMsg = err.Error()
	} else {
		m.weekFlow.Phase = week.PhaseGameDay
	}
	st := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(st)
}

// SetSimulationSpeed adjusts pacing.
func (m *Manager) SetSimulationSpeed(s gameday.Speed) {
	m.gameDay.SetSpeed(s)
	m.notifyCurrent()
}

// PauseSimulation suspends continuous simulation. Idempotent.
func (m *Manager) PauseSimulation() {
	m.gameDay.Pause()
	m.notifyCurrent()
}

// ResumeSimulation lifts a pause. Idempotent.
func (m *Manager) ResumeSimulation() {
	m.gameDay.Resume()
	m.notifyCurrent()
}

// RunNextPlay resolves one play, recording the game when it completes.
func (m *Manager) RunNextPlay() *sim.PlayResult {
	play := m.gameDay.RunNextPlay()
	if play != nil {
		if m.metrics != nil {
			m.metrics.RecordPlay()
		}
		if m.callbacks.OnPlayComplete != nil {
			m.callbacks.OnPlayComplete(*play)
		}
	}
	m.completeIfDone()
	m.notifyCurrent()
	return play
}

// RunContinuousSimulation resolves plays at the configured pace until the
// game completes or the run is interrupted. Only natural completion records
// the game.
func (m *Manager) RunContinuousSimulation(ctx context.Context) *domain.GameResult {
	result := m.gameDay.RunContinuous(ctx)
	if result != nil {
		m.completeIfDone()
	}
	m.notifyCurrent()
	return result
}

// SkipToEnd resolves all remaining plays with no delay.
func (m *Manager) SkipToEnd() *domain.GameResult {
	m.setLoading(true)
	result := m.gameDay.SkipToEnd()
	if result != nil {
		m.completeIfDone()
	}
	m.setLoading(false)
	return result
}

// completeIfDone folds a finished game into franchise state exactly once.
func (m *Manager) completeIfDone() {
	result := m.gameDay.GameResult()
	if result == nil {
		return
	}

	m.mu.Lock()
	if m.weekFlow.UserGameCompleted {
		m.mu.Unlock()
		return
	}
	outcome := m.weekSvc.RecordUserGameResult(m.weekFlow, *result, m.gameState, m.userTeamID)
	m.weekFlow = outcome.Flow
	m.gameState = outcome.State
	if m.sched != nil {
		m.sched.MarkCompleted(result.GameID, result.Score.Home, result.Score.Away)
	}
	weekNum := m.currentWeek
	state := m.gameState
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.RecordGameComplete()
	}
	if m.checkpointer != nil {
		m.gameDay.MarkSaving()
		if err := m.checkpointer.Checkpoint(weekNum, state); err != nil {
			m.logger.Error("checkpoint failed", "week", weekNum, "error", err)
		}
	}
	if m.callbacks.OnGameComplete != nil {
		m.callbacks.OnGameComplete(*result)
	}
}

// MarkGameResultViewed flips the result gate and moves on to the league
// slate. Bye weeks never reach this: they have no user game to view.
func (m *Manager) MarkGameResultViewed() {
	m.mu.Lock()
	m.weekFlow.Gates.GameResultViewed = true
	m.weekFlow.Phase = week.PhaseOtherGames
	st := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(st)
}

// SimulateOtherGames resolves the rest of the league's games for the week.
func (m *Manager) SimulateOtherGames() []week.SimulatedGame {
	m.mu.Lock()
	if !m.initialized {
		m.errMsg = errNoGameState
		st := m.snapshotLocked()
		m.mu.Unlock()
		m.notify(st)
		return nil
	}
	m.isLoading = true
	outcome := m.weekSvc.SimulateOtherGames(m.weekFlow, m.gameState, m.userTeamID)
	m.weekFlow = outcome.Flow
	m.gameState = outcome.State
	if m.sched != nil {
		for _, r := range outcome.Results {
			m.sched.MarkCompleted(r.Game.ID, r.Result.Score.Home, r.Result.Score.Away)
		}
	}
	m.isLoading = false
	st := m.snapshotLocked()
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.RecordOtherGames(len(outcome.Results))
	}
	m.notify(st)
	return outcome.Results
}

// ViewWeekSummary derives the display aggregate and moves the week to
// week_summary.
func (m *Manager) ViewWeekSummary() *week.Summary {
	m.mu.Lock()
	if !m.initialized {
		m.errMsg = errNoGameState
		st := m.snapshotLocked()
		m.mu.Unlock()
		m.notify(st)
		return nil
	}
	summary := m.weekSvc.GenerateSummary(m.weekFlow, m.gameState, m.userTeamID)
	m.weekFlow.Phase = week.PhaseWeekSummary
	st := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(st)
	return &summary
}

// MarkWeekSummaryViewed flips the summary gate; the week is now ready to
// advance.
func (m *Manager) MarkWeekSummaryViewed() {
	m.mu.Lock()
	m.weekFlow.Gates.WeekSummaryViewed = true
	m.weekFlow.Phase = week.PhaseReadyToAdvance
	st := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(st)
}

// CanAdvanceWeek reports whether the week boundary can be crossed, and the
// first unmet gate when it cannot.
func (m *Manager) CanAdvanceWeek() (bool, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.weekSvc.CanAdvance(m.weekFlow)
}

// AdvanceWeek is the single enforcement point for week boundaries. It
// re-checks the gates, advances the calendar, and starts the next week.
func (m *Manager) AdvanceWeek() *week.AdvanceResult {
	m.mu.Lock()
	ok, reason := m.weekSvc.CanAdvance(m.weekFlow)
	if !ok {
		m.errMsg = reason
		st := m.snapshotLocked()
		m.mu.Unlock()
		m.notify(st)
		return nil
	}

	finished := m.weekSvc.GenerateSummary(m.weekFlow, m.gameState, m.userTeamID)
	result, updated := m.weekSvc.AdvanceWeek(m.currentWeek, m.seasonPhase, m.gameState)
	m.gameState = updated
	m.startWeekLocked(result.NewWeek, result.SeasonPhase)
	st := m.snapshotLocked()
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.RecordWeekAdvance(string(result.SeasonPhase))
	}
	if m.callbacks.OnWeekComplete != nil {
		m.callbacks.OnWeekComplete(finished)
	}
	m.fireWeekStart(result.NewWeek)
	m.notify(st)
	return &result
}

// Dispatch maps a tagged action onto the corresponding method. Unknown
// actions are logged and ignored.
func (m *Manager) Dispatch(ctx context.Context, action Action) {
	switch a := action.(type) {
	case ViewPreGame:
		m.ViewPreGame()
	case SetPrediction:
		m.SetPrediction(a.Prediction)
	case StartGame:
		m.StartGameSimulation()
	case SetSpeed:
		m.SetSimulationSpeed(a.Speed)
	case Pause:
		m.PauseSimulation()
	case Resume:
		m.ResumeSimulation()
	case RunNextPlay:
		m.RunNextPlay()
	case RunContinuous:
		m.RunContinuousSimulation(ctx)
	case SkipToEnd:
		m.SkipToEnd()
	case MarkGameResultViewed:
		m.MarkGameResultViewed()
	case SimulateOtherGames:
		m.SimulateOtherGames()
	case ViewWeekSummary:
		m.ViewWeekSummary()
	case MarkWeekSummaryViewed:
		m.MarkWeekSummaryViewed()
	case AdvanceWeek:
		m.AdvanceWeek()
	case ClearError:
		m.ClearError()
	default:
		m.logger.Warn("unknown action ignored", "action", fmt.Sprintf("%T", action))
	}
}

// ClearError clears the surfaced error string.
func (m *Manager) ClearError() {
	m.mu.Lock()
	m.errMsg = ""
	st := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(st)
}

// Reset discards everything and returns to the zero state.
func (m *Manager) Reset() {
	m.gameDay.Reset()
	m.mu.Lock()
	m.weekFlow = week.FlowState{}
	m.isLoading = false
	m.errMsg = ""
	m.gameState = domain.GameState{}
	m.sched = nil
	m.userTeamID = ""
	m.currentWeek = 0
	m.seasonPhase = ""
	m.initialized = false
	st := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(st)
}

// State returns the current full snapshot.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// GameState returns a copy of the franchise aggregate the manager currently
// holds; callers own the copy.
func (m *Manager) GameState() domain.GameState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gameState.Clone()
}

func (m *Manager) snapshotLocked() State {
	st := State{
		WeekFlow:  m.weekFlow.Clone(),
		IsLoading: m.isLoading,
		Error:     m.errMsg,
	}
	if gd := m.gameDay.State(); gd.Phase != gameday.PhaseIdle {
		st.GameDay = &gd
	}
	return st
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.isLoading = v
	st := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(st)
}

func (m *Manager) notify(st State) {
	if m.callbacks.OnStateChange != nil {
		m.callbacks.OnStateChange(st)
	}
}

func (m *Manager) notifyCurrent() {
	m.mu.Lock()
	st := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(st)
}

func (m *Manager) fireWeekStart(weekNum int) {
	if m.callbacks.OnWeekStart != nil {
		m.callbacks.OnWeekStart(weekNum)
	}
}
