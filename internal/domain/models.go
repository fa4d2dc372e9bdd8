package domain

import (
	"github.com/gridironsim/franchise-flow/internal/domain/players"
	"github.com/gridironsim/franchise-flow/internal/domain/teams"
)

// SeasonPhase mirrors the shared contract for calendar phases.
type SeasonPhase string

const (
	PhasePreseason     SeasonPhase = "preseason"
	PhaseRegularSeason SeasonPhase = "regularSeason"
	PhasePlayoffs      SeasonPhase = "playoffs"
	PhaseOffseason     SeasonPhase = "offseason"
)

// Score captures home and away points.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Margin returns home points minus away points.
func (s Score) Margin() int {
	return s.Home - s.Away
}

// Total returns the combined points.
func (s Score) Total() int {
	return s.Home + s.Away
}

// StatLine is the per-player stat delta produced by one game.
type StatLine struct {
	PassYards     int `json:"passYards,omitempty"`
	PassTDs       int `json:"passTds,omitempty"`
	RushYards     int `json:"rushYards,omitempty"`
	RushTDs       int `json:"rushTds,omitempty"`
	RecYards      int `json:"recYards,omitempty"`
	RecTDs        int `json:"recTds,omitempty"`
	Interceptions int `json:"interceptions,omitempty"`
	Tackles       int `json:"tackles,omitempty"`
	Sacks         int `json:"sacks,omitempty"`
}

// Injury reports a player hurt during a game and the projected absence.
type Injury struct {
	PlayerID   string `json:"playerId"`
	InjuryType string `json:"injuryType"`
	WeeksOut   int    `json:"weeksOut"`
}

// GameResult is the immutable output of a completed game. Produced once by
// the simulation engine, consumed exactly once by the week progression
// service, then retained for display.
type GameResult struct {
	ID          string              `json:"id"`
	GameID      string              `json:"gameId"`
	HomeTeamID  string              `json:"homeTeamId"`
	AwayTeamID  string              `json:"awayTeamId"`
	Score       Score               `json:"score"`
	WinnerID    string              `json:"winnerId,omitempty"`
	LoserID     string              `json:"loserId,omitempty"`
	Tie         bool                `json:"tie"`
	PlayerStats map[string]StatLine `json:"playerStats,omitempty"`
	Injuries    []Injury            `json:"injuries,omitempty"`
}

// GameState is the externally owned franchise aggregate the flow layer
// transforms. Methods on the flow services never mutate a GameState they are
// handed; they return fresh copies.
type GameState struct {
	Teams   map[string]teams.Team     `json:"teams"`
	Players map[string]players.Player `json:"players"`
}

// Clone returns a deep copy safe to mutate independently.
func (gs GameState) Clone() GameState {
	out := GameState{
		Teams:   make(map[string]teams.Team, len(gs.Teams)),
		Players: make(map[string]players.Player, len(gs.Players)),
	}
	for id, t := range gs.Teams {
		out.Teams[id] = t
	}
	for id, p := range gs.Players {
		out.Players[id] = p
	}
	return out
}

// Roster returns the ids of players on the given team, in no particular order.
func (gs GameState) Roster(teamID string) []string {
	var ids []string
	for id, p := range gs.Players {
		if p.TeamID == teamID {
			ids = append(ids, id)
		}
	}
	return ids
}
