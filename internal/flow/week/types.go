package week

import (
	"github.com/gridironsim/franchise-flow/internal/domain"
	"github.com/gridironsim/franchise-flow/internal/domain/schedule"
	"github.com/gridironsim/franchise-flow/internal/domain/teams"
)

// Phase tracks where the user is inside one league week.
type Phase string

const (
	PhaseWeekStart      Phase = "week_start"
	PhasePreGame        Phase = "pre_game"
	PhaseGameDay        Phase = "game_day"
	PhasePostGame       Phase = "post_game"
	PhaseOtherGames     Phase = "other_games"
	PhaseWeekSummary    Phase = "week_summary"
	PhaseReadyToAdvance Phase = "ready_to_advance"
)

// Gates are the acknowledgment flags the user must flip by viewing UI
// before the week can advance.
type Gates struct {
	GameResultViewed  bool `json:"gameResultViewed"`
	WeekSummaryViewed bool `json:"weekSummaryViewed"`
}

// FlowState represents progress through one league week. A fresh instance is
// derived from the schedule at every week boundary; instances are replaced,
// never mutated across weeks.
type FlowState struct {
	Phase               Phase                    `json:"phase"`
	Week                int                      `json:"week"`
	SeasonPhase         domain.SeasonPhase       `json:"seasonPhase"`
	IsUserOnBye         bool                     `json:"isUserOnBye"`
	UserGame            *schedule.ScheduledGame  `json:"userGame,omitempty"`
	UserGameCompleted   bool                     `json:"userGameCompleted"`
	UserGameResult      *domain.GameResult       `json:"userGameResult,omitempty"`
	OtherGames          []schedule.ScheduledGame `json:"otherGames"`
	OtherGamesCompleted int                      `json:"otherGamesCompleted"`
	Gates               Gates                    `json:"gates"`
}

// Clone returns a copy safe to mutate; slices and pointers are duplicated.
func (s FlowState) Clone() FlowState {
	out := s
	if s.UserGame != nil {
		g := *s.UserGame
		out.UserGame = &g
	}
	if s.UserGameResult != nil {
		r := *s.UserGameResult
		out.UserGameResult = &r
	}
	out.OtherGames = make([]schedule.ScheduledGame, len(s.OtherGames))
	copy(out.OtherGames, s.OtherGames)
	return out
}

// RecordOutcome is the pair returned when the user's completed game is folded
// into franchise state.
type RecordOutcome struct {
	Flow  FlowState
	State domain.GameState
}

// SimulatedGame is one non-user game resolved by the league simulation.
type SimulatedGame struct {
	Game   schedule.ScheduledGame `json:"game"`
	Result domain.GameResult      `json:"result"`
}

// PlayoffImplication annotates a team's playoff position late in the season.
type PlayoffImplication struct {
	TeamID          string `json:"teamId"`
	Note            string `json:"note"`
	ControlsDestiny bool   `json:"controlsDestiny"`
}

// OtherGamesOutcome bundles everything SimulateOtherGames produces.
type OtherGamesOutcome struct {
	Flow         FlowState
	State        domain.GameState
	Results      []SimulatedGame
	Standings    []teams.Standing
	Implications []PlayoffImplication
	Headlines    []string
}

// AdvanceResult describes the calendar moving one week forward.
type AdvanceResult struct {
	NewWeek          int                `json:"newWeek"`
	SeasonPhase      domain.SeasonPhase `json:"seasonPhase"`
	PlayoffsStart    bool               `json:"playoffsStart"`
	SeasonEnded      bool               `json:"seasonEnded"`
	RecoveredPlayers []string           `json:"recoveredPlayers"`
}

// InjuryUpdate is a display line for the week summary.
type InjuryUpdate struct {
	PlayerID       string `json:"playerId"`
	Name           string `json:"name"`
	TeamID         string `json:"teamId"`
	Severity       string `json:"severity"`
	WeeksRemaining int    `json:"weeksRemaining"`
}

// GameLine is a single completed game rendered for the summary.
type GameLine struct {
	HomeTeamID string `json:"homeTeamId"`
	AwayTeamID string `json:"awayTeamId"`
	HomeScore  int    `json:"homeScore"`
	AwayScore  int    `json:"awayScore"`
}

// Summary is the display-only aggregate for a finished week.
type Summary struct {
	Week         int                  `json:"week"`
	SeasonPhase  domain.SeasonPhase   `json:"seasonPhase"`
	UserResult   string               `json:"userResult"`
	Games        []GameLine           `json:"games"`
	Standings    []teams.Standing     `json:"standings"`
	Implications []PlayoffImplication `json:"implications"`
	Injuries     []InjuryUpdate       `json:"injuries"`
}
