// Package week implements the week-level engine: deriving each week's slate,
// folding completed results into franchise state, simulating the rest of the
// league, and advancing the calendar.
package week

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/gridironsim/franchise-flow/internal/domain"
	"github.com/gridironsim/franchise-flow/internal/domain/players"
	"github.com/gridironsim/franchise-flow/internal/domain/schedule"
	"github.com/gridironsim/franchise-flow/internal/events"
)

// Advancement gate reasons, reported one at a time in check order.
const (
	ReasonPlayGame      = "Play your game"
	ReasonViewResult    = "View game result"
	ReasonSimulateGames = "Simulate remaining games"
	ReasonViewSummary   = "View week summary"
)

// Other-game score model: flat baseline with bounded uniform noise.
const (
	baseScore     = 21
	scoreNoiseLow = -7
	scoreNoiseHi  = 12
)

// Playoff implication thresholds.
const (
	implicationsFromWeek = 10
	destinyFromWeek      = 14
	destinyWins          = 10
)

const maxHeadlines = 5

// Config carries the season length constants.
type Config struct {
	RegularSeasonWeeks int
	PlayoffWeeks       int
}

// DefaultConfig matches an 18-week regular season with 4 playoff rounds.
func DefaultConfig() Config {
	return Config{RegularSeasonWeeks: 18, PlayoffWeeks: 4}
}

// Service is the week progression engine. Every method takes current state
// and returns new values; the only held references are configuration, the
// event bus, the random source and the logger.
type Service struct {
	cfg    Config
	bus    *events.Bus
	rng    *rand.Rand
	logger *slog.Logger
}

// NewService constructs a Service. Nil bus disables event emission; nil rng
// falls back to a fixed-seed source (useful for tests).
func NewService(cfg Config, bus *events.Bus, rng *rand.Rand, logger *slog.Logger) *Service {
	if cfg.RegularSeasonWeeks <= 0 {
		cfg = DefaultConfig()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cfg: cfg, bus: bus, rng: rng, logger: logger}
}

// CreateFlowState derives a fresh week flow from the immutable schedule:
// phase week_start, both gates false, zero completions.
func (s *Service) CreateFlowState(weekNum int, phase domain.SeasonPhase, userTeamID string, sched *schedule.SeasonSchedule) FlowState {
	state := FlowState{
		Phase:       PhaseWeekStart,
		Week:        weekNum,
		SeasonPhase: phase,
	}
	if sched == nil {
		state.IsUserOnBye = true
		return state
	}

	if g, ok := sched.UserGame(weekNum, userTeamID); ok {
		game := g
		state.UserGame = &game
	} else {
		state.IsUserOnBye = true
	}
	state.OtherGames = sched.OtherGames(weekNum, userTeamID)
	return state
}

// RecordUserGameResult applies the user's completed game to both teams'
// records and maps injuries onto players, then moves the week to post_game.
// OtherGames are untouched.
func (s *Service) RecordUserGameResult(flow FlowState, result domain.GameResult, state domain.GameState, userTeamID string) RecordOutcome {
	updated := state.Clone()
	applyResultToRecords(&updated, result)
	applyInjuries(&updated, result.Injuries)

	next := flow.Clone()
	next.Phase = PhasePostGame
	next.UserGameCompleted = true
	r := result
	next.UserGameResult = &r
	if next.UserGame != nil {
		next.UserGame.Completed = true
		next.UserGame.HomeScore = result.Score.Home
		next.UserGame.AwayScore = result.Score.Away
	}

	s.logger.Info("user game recorded",
		"week", flow.Week,
		"game_id", result.GameID,
		"home", result.HomeTeamID,
		"away", result.AwayTeamID,
		"score", fmt.Sprintf("%d-%d", result.Score.Home, result.Score.Away),
	)
	if s.bus != nil {
		s.bus.Emit(events.GameEnd{GameID: result.GameID, Week: flow.Week, Result: result})
	}
	return RecordOutcome{Flow: next, State: updated}
}

// SimulateOtherGames resolves every incomplete non-user game for the week
// with the bounded random score model, updates records, recomputes standings,
// derives playoff implications and headlines, and moves the week to
// week_summary.
func (s *Service) SimulateOtherGames(flow FlowState, state domain.GameState, userTeamID string) OtherGamesOutcome {
	updated := state.Clone()
	next := flow.Clone()

	var results []SimulatedGame
	for i, g := range next.OtherGames {
		if g.Completed {
			continue
		}
		home := s.rollScore()
		away := s.rollScore()

		result := domain.GameResult{
			ID:         uuid.NewString(),
			GameID:     g.ID,
			HomeTeamID: g.HomeTeamID,
			AwayTeamID: g.AwayTeamID,
			Score:      domain.Score{Home: home, Away: away},
		}
		switch {
		case home > away:
			result.WinnerID, result.LoserID = g.HomeTeamID, g.AwayTeamID
		case away > home:
			result.WinnerID, result.LoserID = g.AwayTeamID, g.HomeTeamID
		default:
			result.Tie = true
		}
		applyResultToRecords(&updated, result)

		next.OtherGames[i].Completed = true
		next.OtherGames[i].HomeScore = home
		next.OtherGames[i].AwayScore = away
		results = append(results, SimulatedGame{Game: next.OtherGames[i], Result: result})
	}

	next.OtherGamesCompleted = len(next.OtherGames)
	next.Phase = PhaseWeekSummary

	standings := ComputeStandings(updated)
	implications := playoffImplications(flow.Week, standings)
	headlines := buildHeadlines(results)

	s.logger.Info("other games simulated", "week", flow.Week, "count", len(results))
	if s.bus != nil {
		s.bus.Emit(events.OtherGamesComplete{Week: flow.Week, GamesSimulated: len(results)})
	}

	return OtherGamesOutcome{
		Flow:         next,
		State:        updated,
		Results:      results,
		Standings:    standings,
		Implications: implications,
		Headlines:    headlines,
	}
}

func (s *Service) rollScore() int {
	score := baseScore + scoreNoiseLow + s.rng.Intn(scoreNoiseHi-scoreNoiseLow+1)
	if score < 0 {
		score = 0
	}
	return score
}

// AdvanceWeek recovers injuries, resets fatigue, bumps the week counter and
// crosses season phase boundaries where due.
func (s *Service) AdvanceWeek(currentWeek int, phase domain.SeasonPhase, state domain.GameState) (AdvanceResult, domain.GameState) {
	updated := state.Clone()

	var recovered []string
	for id, p := range updated.Players {
		if p.Injury.WeeksRemaining > 0 {
			p.Injury.WeeksRemaining--
			if p.Injury.WeeksRemaining == 0 {
				p.Injury.Severity = players.SeverityNone
				p.Injury.Type = ""
				recovered = append(recovered, id)
			}
		}
		p.Fatigue = 0
		updated.Players[id] = p
	}
	sort.Strings(recovered)

	result := AdvanceResult{
		NewWeek:          currentWeek + 1,
		SeasonPhase:      phase,
		RecoveredPlayers: recovered,
	}
	switch {
	case phase == domain.PhaseRegularSeason && currentWeek >= s.cfg.RegularSeasonWeeks:
		result.SeasonPhase = domain.PhasePlayoffs
		result.PlayoffsStart = true
	case phase == domain.PhasePlayoffs && currentWeek >= s.cfg.RegularSeasonWeeks+s.cfg.PlayoffWeeks:
		result.SeasonPhase = domain.PhaseOffseason
		result.SeasonEnded = true
	}

	s.logger.Info("week advanced",
		"from", currentWeek,
		"to", result.NewWeek,
		"season_phase", string(result.SeasonPhase),
		"recovered", len(recovered),
	)
	if s.bus != nil {
		s.bus.Emit(events.WeekStart{Week: result.NewWeek, SeasonPhase: result.SeasonPhase})
		if result.SeasonPhase != phase {
			s.bus.Emit(events.SeasonPhaseChange{From: phase, To: result.SeasonPhase})
		}
	}
	return result, updated
}

// GenerateSummary derives the display aggregate for the current week. Pure:
// no mutation, no events.
func (s *Service) GenerateSummary(flow FlowState, state domain.GameState, userTeamID string) Summary {
	summary := Summary{
		Week:        flow.Week,
		SeasonPhase: flow.SeasonPhase,
		UserResult:  userResultLine(flow, userTeamID),
		Standings:   ComputeStandings(state),
	}
	summary.Implications = playoffImplications(flow.Week, summary.Standings)

	if flow.UserGame != nil && flow.UserGame.Completed {
		summary.Games = append(summary.Games, lineFor(*flow.UserGame))
	}
	for _, g := range flow.OtherGames {
		if g.Completed {
			summary.Games = append(summary.Games, lineFor(g))
		}
	}

	for _, p := range state.Players {
		if p.Injury.Healthy() {
			continue
		}
		summary.Injuries = append(summary.Injuries, InjuryUpdate{
			PlayerID:       p.ID,
			Name:           p.Name,
			TeamID:         p.TeamID,
			Severity:       string(p.Injury.Severity),
			WeeksRemaining: p.Injury.WeeksRemaining,
		})
	}
	sort.Slice(summary.Injuries, func(i, j int) bool {
		return summary.Injuries[i].PlayerID < summary.Injuries[j].PlayerID
	})
	return summary
}

// CanAdvance checks the ordered gating conditions and reports the first unmet
// one. Bye weeks skip the user-game gates entirely.
func (s *Service) CanAdvance(flow FlowState) (bool, string) {
	if !flow.IsUserOnBye {
		if !flow.UserGameCompleted {
			return false, ReasonPlayGame
		}
		if !flow.Gates.GameResultViewed {
			return false, ReasonViewResult
		}
	}
	if flow.OtherGamesCompleted < len(flow.OtherGames) {
		return false, ReasonSimulateGames
	}
	if !flow.Gates.WeekSummaryViewed {
		return false, ReasonViewSummary
	}
	return true, ""
}

// applyResultToRecords increments exactly one of wins/losses/ties for each
// side, complementarily except for ties.
func applyResultToRecords(state *domain.GameState, result domain.GameResult) {
	home, homeOK := state.Teams[result.HomeTeamID]
	away, awayOK := state.Teams[result.AwayTeamID]
	if !homeOK || !awayOK {
		return
	}
	switch {
	case result.Tie:
		home.Record = home.Record.AddTie()
		away.Record = away.Record.AddTie()
	case result.WinnerID == home.ID:
		home.Record = home.Record.AddWin()
		away.Record = away.Record.AddLoss()
	default:
		home.Record = home.Record.AddLoss()
		away.Record = away.Record.AddWin()
	}
	state.Teams[home.ID] = home
	state.Teams[away.ID] = away
}

func applyInjuries(state *domain.GameState, injuries []domain.Injury) {
	for _, inj := range injuries {
		p, ok := state.Players[inj.PlayerID]
		if !ok {
			continue
		}
		p.Injury = players.InjuryStatus{
			Severity:       players.SeverityForWeeksOut(inj.WeeksOut),
			Type:           inj.InjuryType,
			WeeksRemaining: inj.WeeksOut,
		}
		state.Players[inj.PlayerID] = p
	}
}

func userResultLine(flow FlowState, userTeamID string) string {
	if flow.IsUserOnBye {
		return "Bye week"
	}
	if flow.UserGameResult == nil {
		return "Game not played"
	}
	r := flow.UserGameResult
	us, them := r.Score.Home, r.Score.Away
	if r.AwayTeamID == userTeamID {
		us, them = them, us
	}
	switch {
	case r.Tie:
		return fmt.Sprintf("T %d-%d", us, them)
	case r.WinnerID == userTeamID:
		return fmt.Sprintf("W %d-%d", us, them)
	default:
		return fmt.Sprintf("L %d-%d", us, them)
	}
}

func lineFor(g schedule.ScheduledGame) GameLine {
	return GameLine{
		HomeTeamID: g.HomeTeamID,
		AwayTeamID: g.AwayTeamID,
		HomeScore:  g.HomeScore,
		AwayScore:  g.AwayScore,
	}
}

func buildHeadlines(results []SimulatedGame) []string {
	var headlines []string
	add := func(h string) {
		if len(headlines) < maxHeadlines {
			headlines = append(headlines, h)
		}
	}
	for _, r := range results {
		score := r.Result.Score
		matchup := fmt.Sprintf("%s %d, %s %d", r.Game.HomeTeamID, score.Home, r.Game.AwayTeamID, score.Away)
		if score.Total() >= 70 {
			add("Shootout: " + matchup)
		}
		if score.Home == 0 || score.Away == 0 {
			add("Shutout: " + matchup)
		}
		if margin := score.Margin(); margin >= -3 && margin <= 3 {
			add("Thriller: " + matchup)
		}
	}
	return headlines
}
