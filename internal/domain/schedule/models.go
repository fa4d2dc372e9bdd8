package schedule

// ScheduledGame is a single entry in the season schedule. Home/away ids are
// fixed at schedule creation; scores are filled in once the game completes.
type ScheduledGame struct {
	ID         string `json:"id"`
	Week       int    `json:"week"`
	HomeTeamID string `json:"homeTeamId"`
	AwayTeamID string `json:"awayTeamId"`
	Completed  bool   `json:"completed"`
	HomeScore  int    `json:"homeScore"`
	AwayScore  int    `json:"awayScore"`
}

// Involves reports whether the team plays in this game.
func (g ScheduledGame) Involves(teamID string) bool {
	return g.HomeTeamID == teamID || g.AwayTeamID == teamID
}

// OpponentOf returns the other team's id, or "" if teamID is not playing.
func (g ScheduledGame) OpponentOf(teamID string) string {
	switch teamID {
	case g.HomeTeamID:
		return g.AwayTeamID
	case g.AwayTeamID:
		return g.HomeTeamID
	default:
		return ""
	}
}

// SeasonSchedule holds the full slate for one season, keyed by week.
// The flow layer treats it as read-only input, except for marking results.
type SeasonSchedule struct {
	Year  int                     `json:"year"`
	Weeks map[int][]ScheduledGame `json:"weeks"`
}

// GamesForWeek returns the ordered games scheduled for the week.
func (s *SeasonSchedule) GamesForWeek(week int) []ScheduledGame {
	if s == nil || s.Weeks == nil {
		return nil
	}
	return s.Weeks[week]
}

// UserGame returns the team's game for the week, if it has one.
func (s *SeasonSchedule) UserGame(week int, teamID string) (ScheduledGame, bool) {
	for _, g := range s.GamesForWeek(week) {
		if g.Involves(teamID) {
			return g, true
		}
	}
	return ScheduledGame{}, false
}

// OtherGames returns the week's games that do not involve the team,
// preserving schedule order.
func (s *SeasonSchedule) OtherGames(week int, teamID string) []ScheduledGame {
	games := s.GamesForWeek(week)
	others := make([]ScheduledGame, 0, len(games))
	for _, g := range games {
		if !g.Involves(teamID) {
			others = append(others, g)
		}
	}
	return others
}

// IsBye reports whether the team has no game scheduled for the week.
func (s *SeasonSchedule) IsBye(week int, teamID string) bool {
	_, ok := s.UserGame(week, teamID)
	return !ok
}

// MarkCompleted records a final score into the schedule entry for gameID.
// Unknown ids are ignored.
func (s *SeasonSchedule) MarkCompleted(gameID string, homeScore, awayScore int) {
	if s == nil {
		return
	}
	for week, games := range s.Weeks {
		for i, g := range games {
			if g.ID == gameID {
				games[i].Completed = true
				games[i].HomeScore = homeScore
				games[i].AwayScore = awayScore
				s.Weeks[week] = games
				return
			}
		}
	}
}
