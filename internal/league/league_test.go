package league

import (
	"reflect"
	"testing"
)

func TestBuildDeterministic(t *testing.T) {
	stateA, schedA := Build(7, 2026, 18)
	stateB, schedB := Build(7, 2026, 18)

	if !reflect.DeepEqual(stateA, stateB) {
		t.Fatalf("same seed produced different states")
	}
	if !reflect.DeepEqual(schedA, schedB) {
		t.Fatalf("same seed produced different schedules")
	}
}

func TestBuildLeagueShape(t *testing.T) {
	state, _ := Build(1, 2026, 18)

	if len(state.Teams) != 8 {
		t.Fatalf("expected 8 teams, got %d", len(state.Teams))
	}
	if _, ok := state.Teams[DefaultUserTeamID]; !ok {
		t.Fatalf("default user team missing")
	}
	if len(state.Players) != 8*len(rosterTemplate) {
		t.Fatalf("expected %d players, got %d", 8*len(rosterTemplate), len(state.Players))
	}

	for id := range state.Teams {
		roster := state.Roster(id)
		if len(roster) != len(rosterTemplate) {
			t.Fatalf("team %s has %d players", id, len(roster))
		}
	}
	for _, p := range state.Players {
		if p.Overall < 62 || p.Overall > 91 {
			t.Fatalf("player %s overall %d out of range", p.ID, p.Overall)
		}
	}
}

func TestScheduleNoDoubleBooking(t *testing.T) {
	_, sched := Build(1, 2026, 18)

	for week := 1; week <= 18; week++ {
		seen := map[string]bool{}
		for _, g := range sched.GamesForWeek(week) {
			if g.HomeTeamID == g.AwayTeamID {
				t.Fatalf("week %d: team plays itself in %s", week, g.ID)
			}
			if seen[g.HomeTeamID] || seen[g.AwayTeamID] {
				t.Fatalf("week %d: team double-booked in %s", week, g.ID)
			}
			seen[g.HomeTeamID] = true
			seen[g.AwayTeamID] = true
		}
	}
}

func TestScheduleByes(t *testing.T) {
	state, sched := Build(1, 2026, 18)

	byes := map[string]int{}
	for week := 1; week <= 18; week++ {
		games := sched.GamesForWeek(week)
		inByeWindow := week >= byeWindowStart && week < byeWindowStart+4
		if inByeWindow && len(games) != 3 {
			t.Fatalf("week %d should drop one matchup, has %d games", week, len(games))
		}
		if !inByeWindow && len(games) != 4 {
			t.Fatalf("week %d should have 4 games, has %d", week, len(games))
		}
		for id := range state.Teams {
			if sched.IsBye(week, id) {
				byes[id]++
				if !inByeWindow {
					t.Fatalf("team %s has a bye outside the window at week %d", id, week)
				}
			}
		}
	}

	for id := range state.Teams {
		if byes[id] != 1 {
			t.Fatalf("team %s has %d byes", id, byes[id])
		}
	}
}

func TestScheduleVenuesAlternate(t *testing.T) {
	_, sched := Build(1, 2026, 18)

	// Rounds repeat every 7 weeks; a full-slate week and its repeat 7 weeks
	// later carry the same pairings with home and away swapped.
	first := sched.GamesForWeek(2)
	second := sched.GamesForWeek(9)
	if len(first) != len(second) {
		t.Fatalf("expected matching slates, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].HomeTeamID != second[i].AwayTeamID || first[i].AwayTeamID != second[i].HomeTeamID {
			t.Fatalf("expected swapped venue: %+v vs %+v", first[i], second[i])
		}
	}
}
