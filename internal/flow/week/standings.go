package week

import (
	"fmt"
	"sort"

	"github.com/gridironsim/franchise-flow/internal/domain"
	"github.com/gridironsim/franchise-flow/internal/domain/teams"
)

// ComputeStandings ranks every team inside its conference and division by
// winning percentage, breaking ties on wins and then name for a stable order.
func ComputeStandings(state domain.GameState) []teams.Standing {
	standings := make([]teams.Standing, 0, len(state.Teams))
	for _, t := range state.Teams {
		standings = append(standings, teams.Standing{
			TeamID:     t.ID,
			Name:       t.Name,
			Conference: t.Conference,
			Division:   t.Division,
			Record:     t.Record,
		})
	}

	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Record.WinPct() != b.Record.WinPct() {
			return a.Record.WinPct() > b.Record.WinPct()
		}
		if a.Record.Wins != b.Record.Wins {
			return a.Record.Wins > b.Record.Wins
		}
		return a.Name < b.Name
	})

	divRank := make(map[string]int)
	confRank := make(map[string]int)
	for i := range standings {
		s := &standings[i]
		divKey := s.Conference + "/" + s.Division
		divRank[divKey]++
		confRank[s.Conference]++
		s.DivisionRank = divRank[divKey]
		s.ConferenceRank = confRank[s.Conference]
	}
	return standings
}

// playoffImplications annotates the race from week 10 onward. A division
// leader with enough wins and an uncontested top spot controls its destiny
// from week 14.
func playoffImplications(weekNum int, standings []teams.Standing) []PlayoffImplication {
	if weekNum < implicationsFromWeek {
		return nil
	}

	var out []PlayoffImplication
	for _, s := range standings {
		if s.DivisionRank != 1 {
			continue
		}
		imp := PlayoffImplication{
			TeamID: s.TeamID,
			Note:   fmt.Sprintf("%s leads the %s %s at %s", s.Name, s.Conference, s.Division, s.Record),
		}
		if weekNum >= destinyFromWeek && s.Record.Wins >= destinyWins && cleanLead(s, standings) {
			imp.ControlsDestiny = true
			imp.Note = fmt.Sprintf("%s controls its playoff destiny at %s", s.Name, s.Record)
		}
		out = append(out, imp)
	}
	return out
}

// cleanLead reports whether the leader is not tied on winning percentage with
// anyone else in its division.
func cleanLead(leader teams.Standing, standings []teams.Standing) bool {
	for _, s := range standings {
		if s.TeamID == leader.TeamID || s.Conference != leader.Conference || s.Division != leader.Division {
			continue
		}
		if s.Record.WinPct() == leader.Record.WinPct() {
			return false
		}
	}
	return true
}
