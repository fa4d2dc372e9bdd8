package testutil

import "testing"

func TestSampleStateShape(t *testing.T) {
	state := SampleState()

	if len(state.Teams) != 4 {
		t.Fatalf("expected 4 teams, got %d", len(state.Teams))
	}
	for _, id := range TeamIDs {
		if _, ok := state.Teams[id]; !ok {
			t.Fatalf("missing team %s", id)
		}
		if got := len(state.Roster(id)); got != 6 {
			t.Fatalf("team %s has %d players", id, got)
		}
	}
}

func TestSampleScheduleBye(t *testing.T) {
	sched := SampleSchedule(3, 2)

	if sched.IsBye(1, UserTeamID) {
		t.Fatalf("week 1 should have a user game")
	}
	if !sched.IsBye(2, UserTeamID) {
		t.Fatalf("week 2 should be the user bye")
	}
	if len(sched.GamesForWeek(2)) != 1 {
		t.Fatalf("bye week should still carry the other game")
	}
}

func TestSampleResultOutcomes(t *testing.T) {
	win := SampleResult("g1", 28, 21)
	if win.WinnerID != UserTeamID || win.Tie {
		t.Fatalf("unexpected win result: %+v", win)
	}
	loss := SampleResult("g1", 14, 20)
	if loss.WinnerID != "bears" {
		t.Fatalf("unexpected loss result: %+v", loss)
	}
	tie := SampleResult("g1", 10, 10)
	if !tie.Tie || tie.WinnerID != "" {
		t.Fatalf("unexpected tie result: %+v", tie)
	}
}
