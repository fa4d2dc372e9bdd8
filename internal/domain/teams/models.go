package teams

import "fmt"

// Team represents a franchise in the league.
// Kept in its own package to keep domain models modular and reusable across fixtures/stores.
type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	City         string `json:"city"`
	Abbreviation string `json:"abbreviation"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
	Record       Record `json:"record"`
}

// Record tracks a team's season results.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// Games returns the number of games reflected in the record.
func (r Record) Games() int {
	return r.Wins + r.Losses + r.Ties
}

// WinPct returns the winning percentage with ties counted as half a win.
// An empty record maps to 0.
func (r Record) WinPct() float64 {
	games := r.Games()
	if games == 0 {
		return 0
	}
	return (float64(r.Wins) + 0.5*float64(r.Ties)) / float64(games)
}

// String formats the record as W-L, or W-L-T when ties exist.
func (r Record) String() string {
	if r.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Ties)
	}
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// AddWin returns a copy of the record with one more win.
func (r Record) AddWin() Record {
	r.Wins++
	return r
}

// AddLoss returns a copy of the record with one more loss.
func (r Record) AddLoss() Record {
	r.Losses++
	return r
}

// AddTie returns a copy of the record with one more tie.
func (r Record) AddTie() Record {
	r.Ties++
	return r
}

// Standing is a team's computed position within its conference and division.
type Standing struct {
	TeamID         string `json:"teamId"`
	Name           string `json:"name"`
	Conference     string `json:"conference"`
	Division       string `json:"division"`
	Record         Record `json:"record"`
	DivisionRank   int    `json:"divisionRank"`
	ConferenceRank int    `json:"conferenceRank"`
}
