// Package testutil provides shared fixtures for tests.
package testutil

import (
	"strconv"

	"github.com/gridironsim/franchise-flow/internal/domain"
	"github.com/gridironsim/franchise-flow/internal/domain/players"
	"github.com/gridironsim/franchise-flow/internal/domain/schedule"
	"github.com/gridironsim/franchise-flow/internal/domain/teams"
)

// UserTeamID is the franchise controlled by the user in fixtures.
const UserTeamID = "hawks"

// TeamIDs lists every franchise in the fixture league, user first.
var TeamIDs = []string{"hawks", "bears", "lions", "sharks"}

// SampleState returns a four-team league with small rosters. Teams hawks and
// bears share a division; lions and sharks share the other.
func SampleState() domain.GameState {
	state := domain.GameState{
		Teams:   make(map[string]teams.Team, 4),
		Players: make(map[string]players.Player),
	}

	meta := []struct {
		id, city, name, abbr, division string
	}{
		{"hawks", "Harborview", "Hawks", "HAW", "East"},
		{"bears", "Blackridge", "Bears", "BLK", "East"},
		{"lions", "Lakemont", "Lions", "LAK", "West"},
		{"sharks", "Saltmarsh", "Sharks", "SAL", "West"},
	}

	for _, m := range meta {
		state.Teams[m.id] = teams.Team{
			ID:           m.id,
			Name:         m.name,
			City:         m.city,
			Abbreviation: m.abbr,
			Conference:   "Coastal",
			Division:     m.division,
		}
		for i, pos := range []players.Position{
			players.Quarterback,
			players.RunningBack,
			players.WideReceiver,
			players.WideReceiver,
			players.TightEnd,
			players.Kicker,
		} {
			p := SamplePlayer(m.id, pos, i+1)
			state.Players[p.ID] = p
		}
	}
	return state
}

// SamplePlayer builds a roster player with a deterministic id.
func SamplePlayer(teamID string, pos players.Position, n int) players.Player {
	return players.Player{
		ID:       teamID + "-" + string(pos) + "-" + strconv.Itoa(n),
		Name:     "Player " + strconv.Itoa(n),
		TeamID:   teamID,
		Position: pos,
		Overall:  70 + n,
	}
}

// SampleSchedule builds a schedule where every team plays each week. Week
// byeWeek (when > 0) drops the user game, leaving the user on bye.
func SampleSchedule(weeks, byeWeek int) *schedule.SeasonSchedule {
	sched := &schedule.SeasonSchedule{
		Year:  2026,
		Weeks: make(map[int][]schedule.ScheduledGame, weeks),
	}
	for w := 1; w <= weeks; w++ {
		var games []schedule.ScheduledGame
		if w != byeWeek {
			games = append(games, schedule.ScheduledGame{
				ID:         "g-user-" + strconv.Itoa(w),
				Week:       w,
				HomeTeamID: "hawks",
				AwayTeamID: "bears",
			})
		}
		games = append(games, schedule.ScheduledGame{
			ID:         "g-other-" + strconv.Itoa(w),
			Week:       w,
			HomeTeamID: "lions",
			AwayTeamID: "sharks",
		})
		sched.Weeks[w] = games
	}
	return sched
}

// SampleResult builds a completed user game result with the given score.
func SampleResult(gameID string, home, away int) domain.GameResult {
	r := domain.GameResult{
		ID:         "res-" + gameID,
		GameID:     gameID,
		HomeTeamID: "hawks",
		AwayTeamID: "bears",
		Score:      domain.Score{Home: home, Away: away},
	}
	switch {
	case home > away:
		r.WinnerID, r.LoserID = r.HomeTeamID, r.AwayTeamID
	case away > home:
		r.WinnerID, r.LoserID = r.AwayTeamID, r.HomeTeamID
	default:
		r.Tie = true
	}
	return r
}

