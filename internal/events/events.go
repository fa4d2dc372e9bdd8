// Package events provides the typed publish/subscribe channel carrying
// discrete simulation events between the flow services and any independent
// listeners (play-by-play feeds, notification streams).
package events

import "github.com/gridironsim/franchise-flow/internal/domain"

// Type discriminates the closed set of event categories.
type Type string

const (
	TypePlayCompleted      Type = "play_completed"
	TypeScoreChange        Type = "score_change"
	TypeQuarterEnd         Type = "quarter_end"
	TypeGameStart          Type = "game_start"
	TypeHalftime           Type = "halftime"
	TypeGameEnd            Type = "game_end"
	TypeInjury             Type = "injury"
	TypeWeekStart          Type = "week_start"
	TypeOtherGamesComplete Type = "other_games_complete"
	TypeSeasonPhaseChange  Type = "season_phase_change"
)

// Event is the closed union of simulation events. Payload shape is fixed by
// the concrete type; EventType returns the matching tag.
type Event interface {
	EventType() Type
}

// PlayCompleted is emitted after every resolved play.
type PlayCompleted struct {
	GameID      string `json:"gameId"`
	Quarter     int    `json:"quarter"`
	Clock       int    `json:"clock"`
	OffenseID   string `json:"offenseId"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

func (PlayCompleted) EventType() Type { return TypePlayCompleted }

// ScoreChange is emitted whenever either side scores.
type ScoreChange struct {
	GameID        string       `json:"gameId"`
	Score         domain.Score `json:"score"`
	ScoringTeamID string       `json:"scoringTeamId"`
	Points        int          `json:"points"`
}

func (ScoreChange) EventType() Type { return TypeScoreChange }

// QuarterEnd is emitted at each quarter boundary.
type QuarterEnd struct {
	GameID  string       `json:"gameId"`
	Quarter int          `json:"quarter"`
	Score   domain.Score `json:"score"`
}

func (QuarterEnd) EventType() Type { return TypeQuarterEnd }

// GameStart marks the kickoff of the user's game.
type GameStart struct {
	GameID     string `json:"gameId"`
	Week       int    `json:"week"`
	HomeTeamID string `json:"homeTeamId"`
	AwayTeamID string `json:"awayTeamId"`
}

func (GameStart) EventType() Type { return TypeGameStart }

// Halftime marks the end of the second quarter of the user's game.
type Halftime struct {
	GameID string       `json:"gameId"`
	Score  domain.Score `json:"score"`
}

func (Halftime) EventType() Type { return TypeHalftime }

// GameEnd carries the final result of a completed game.
type GameEnd struct {
	GameID string            `json:"gameId"`
	Week   int               `json:"week"`
	Result domain.GameResult `json:"result"`
}

func (GameEnd) EventType() Type { return TypeGameEnd }

// Injury reports a player hurt during simulation.
type Injury struct {
	GameID     string `json:"gameId"`
	PlayerID   string `json:"playerId"`
	InjuryType string `json:"injuryType"`
	WeeksOut   int    `json:"weeksOut"`
}

func (Injury) EventType() Type { return TypeInjury }

// WeekStart marks the calendar advancing into a new week.
type WeekStart struct {
	Week        int                `json:"week"`
	SeasonPhase domain.SeasonPhase `json:"seasonPhase"`
}

func (WeekStart) EventType() Type { return TypeWeekStart }

// OtherGamesComplete reports the remainder of the league slate finishing.
type OtherGamesComplete struct {
	Week           int `json:"week"`
	GamesSimulated int `json:"gamesSimulated"`
}

func (OtherGamesComplete) EventType() Type { return TypeOtherGamesComplete }

// SeasonPhaseChange marks a season phase boundary being crossed.
type SeasonPhaseChange struct {
	From domain.SeasonPhase `json:"from"`
	To   domain.SeasonPhase `json:"to"`
}

func (SeasonPhaseChange) EventType() Type { return TypeSeasonPhaseChange }
