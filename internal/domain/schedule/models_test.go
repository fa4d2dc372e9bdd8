package schedule

import "testing"

func testSchedule() *SeasonSchedule {
	return &SeasonSchedule{
		Year: 2026,
		Weeks: map[int][]ScheduledGame{
			1: {
				{ID: "g1", Week: 1, HomeTeamID: "hawks", AwayTeamID: "bears"},
				{ID: "g2", Week: 1, HomeTeamID: "lions", AwayTeamID: "sharks"},
			},
			2: {
				{ID: "g3", Week: 2, HomeTeamID: "lions", AwayTeamID: "bears"},
			},
		},
	}
}

func TestInvolvesAndOpponent(t *testing.T) {
	g := ScheduledGame{HomeTeamID: "hawks", AwayTeamID: "bears"}
	if !g.Involves("hawks") || !g.Involves("bears") || g.Involves("lions") {
		t.Fatalf("unexpected involvement")
	}
	if g.OpponentOf("hawks") != "bears" || g.OpponentOf("bears") != "hawks" {
		t.Fatalf("unexpected opponents")
	}
	if g.OpponentOf("lions") != "" {
		t.Fatalf("expected empty opponent for non-participant")
	}
}

func TestUserGame(t *testing.T) {
	s := testSchedule()
	g, ok := s.UserGame(1, "hawks")
	if !ok || g.ID != "g1" {
		t.Fatalf("expected g1, got %+v ok=%v", g, ok)
	}
	if _, ok := s.UserGame(2, "hawks"); ok {
		t.Fatalf("hawks should not have a week 2 game")
	}
}

func TestOtherGames(t *testing.T) {
	s := testSchedule()
	others := s.OtherGames(1, "hawks")
	if len(others) != 1 || others[0].ID != "g2" {
		t.Fatalf("unexpected other games: %+v", others)
	}
}

func TestIsBye(t *testing.T) {
	s := testSchedule()
	if s.IsBye(1, "hawks") {
		t.Fatalf("hawks play in week 1")
	}
	if !s.IsBye(2, "hawks") {
		t.Fatalf("hawks rest in week 2")
	}
}

func TestMarkCompleted(t *testing.T) {
	s := testSchedule()
	s.MarkCompleted("g2", 24, 17)

	g := s.Weeks[1][1]
	if !g.Completed || g.HomeScore != 24 || g.AwayScore != 17 {
		t.Fatalf("unexpected game after completion: %+v", g)
	}
	if s.Weeks[1][0].Completed {
		t.Fatalf("g1 should be untouched")
	}

	// Unknown ids are a no-op.
	s.MarkCompleted("nope", 1, 2)
}

func TestNilScheduleSafe(t *testing.T) {
	var s *SeasonSchedule
	if got := s.GamesForWeek(1); got != nil {
		t.Fatalf("expected nil games, got %+v", got)
	}
	if !s.IsBye(1, "hawks") {
		t.Fatalf("nil schedule should read as a bye")
	}
	s.MarkCompleted("g1", 1, 2)
}
