// Package league builds a deterministic fictional league useful for local
// play and bootstrapping.
package league

import (
	"fmt"
	"math/rand"

	"github.com/gridironsim/franchise-flow/internal/domain"
	"github.com/gridironsim/franchise-flow/internal/domain/players"
	"github.com/gridironsim/franchise-flow/internal/domain/schedule"
	"github.com/gridironsim/franchise-flow/internal/domain/teams"
)

// DefaultUserTeamID is the franchise assigned to the user when none is
// configured.
const DefaultUserTeamID = "ironhaven"

// byeWindowStart is the first week in which byes are scheduled. Two teams
// rest per week in the window so every team rests exactly once.
const byeWindowStart = 5

type franchise struct {
	id         string
	city       string
	name       string
	abbr       string
	conference string
	division   string
}

var franchises = []franchise{
	{"ironhaven", "Ironhaven", "Forge", "IRO", "Atlantic", "East"},
	{"gullport", "Gullport", "Mariners", "GUL", "Atlantic", "East"},
	{"redmesa", "Red Mesa", "Scorpions", "RDM", "Atlantic", "West"},
	{"cascadia", "Cascadia", "Thunder", "CAS", "Atlantic", "West"},
	{"brookfield", "Brookfield", "Stags", "BRK", "Pacific", "East"},
	{"veilcity", "Veil City", "Phantoms", "VEI", "Pacific", "East"},
	{"solano", "Solano", "Condors", "SOL", "Pacific", "West"},
	{"northgate", "Northgate", "Wolves", "NOR", "Pacific", "West"},
}

var rosterTemplate = []players.Position{
	players.Quarterback,
	players.RunningBack, players.RunningBack,
	players.WideReceiver, players.WideReceiver, players.WideReceiver,
	players.TightEnd,
	players.OffensiveLine, players.OffensiveLine,
	players.DefensiveLine,
	players.Linebacker,
	players.Cornerback,
	players.Safety,
	players.Kicker,
}

var firstNames = []string{
	"Marcus", "Deon", "Tyler", "Jalen", "Cole", "Andre", "Victor", "Reggie",
	"Shane", "Malik", "Jordan", "Elias", "Trent", "Darius", "Wes", "Kai",
}

var lastNames = []string{
	"Hargrove", "Whitfield", "Okafor", "Braddock", "Sterling", "Vance",
	"Calloway", "Mercer", "Ashford", "Delacroix", "Kincaid", "Rourke",
	"Thorne", "Bellamy", "Crane", "Maddox",
}

// Build generates a full franchise state and season schedule from a seed.
// The same seed always yields the same league.
func Build(seed int64, year, regularSeasonWeeks int) (domain.GameState, *schedule.SeasonSchedule) {
	rng := rand.New(rand.NewSource(seed))

	state := domain.GameState{
		Teams:   make(map[string]teams.Team, len(franchises)),
		Players: make(map[string]players.Player),
	}

	for _, f := range franchises {
		state.Teams[f.id] = teams.Team{
			ID:           f.id,
			Name:         f.name,
			City:         f.city,
			Abbreviation: f.abbr,
			Conference:   f.conference,
			Division:     f.division,
		}
		buildRoster(rng, f.id, state.Players)
	}

	return state, buildSchedule(year, regularSeasonWeeks)
}

func buildRoster(rng *rand.Rand, teamID string, out map[string]players.Player) {
	for i, pos := range rosterTemplate {
		id := fmt.Sprintf("%s-%s-%d", teamID, pos, i+1)
		out[id] = players.Player{
			ID:       id,
			Name:     fmt.Sprintf("%s %s", firstNames[rng.Intn(len(firstNames))], lastNames[rng.Intn(len(lastNames))]),
			TeamID:   teamID,
			Position: pos,
			Overall:  62 + rng.Intn(30),
		}
	}
}

// buildSchedule pairs the eight franchises with the circle method and cycles
// the rounds across the season. During the bye window two designated teams
// rest each week; their scheduled opponents play each other instead, so every
// franchise gets exactly one bye.
func buildSchedule(year, weeks int) *schedule.SeasonSchedule {
	ids := make([]string, len(franchises))
	for i, f := range franchises {
		ids[i] = f.id
	}

	rounds := roundRobin(ids)
	sched := &schedule.SeasonSchedule{
		Year:  year,
		Weeks: make(map[int][]schedule.ScheduledGame, weeks),
	}

	byeSpan := len(ids) / 2
	for week := 1; week <= weeks; week++ {
		pairs := rounds[(week-1)%len(rounds)]
		flip := ((week-1)/len(rounds))%2 == 1

		resting := map[string]bool{}
		if week >= byeWindowStart && week < byeWindowStart+byeSpan {
			k := week - byeWindowStart
			resting[ids[2*k]] = true
			resting[ids[2*k+1]] = true
		}

		var games []schedule.ScheduledGame
		var displaced []string
		for _, p := range pairs {
			if resting[p[0]] || resting[p[1]] {
				if !resting[p[0]] {
					displaced = append(displaced, p[0])
				}
				if !resting[p[1]] {
					displaced = append(displaced, p[1])
				}
				continue
			}
			games = append(games, newGame(year, week, p[0], p[1], flip))
		}
		if len(displaced) == 2 {
			games = append(games, newGame(year, week, displaced[0], displaced[1], flip))
		}
		sched.Weeks[week] = games
	}
	return sched
}

func newGame(year, week int, home, away string, flip bool) schedule.ScheduledGame {
	// Alternate venues on repeat meetings.
	if flip {
		home, away = away, home
	}
	return schedule.ScheduledGame{
		ID:         fmt.Sprintf("%d-w%02d-%s-at-%s", year, week, away, home),
		Week:       week,
		HomeTeamID: home,
		AwayTeamID: away,
	}
}

// roundRobin returns len(ids)-1 rounds of pairings using the circle method.
func roundRobin(ids []string) [][][2]string {
	n := len(ids)
	rounds := make([][][2]string, 0, n-1)
	rot := make([]string, n-1)
	copy(rot, ids[1:])

	for r := 0; r < n-1; r++ {
		pairs := make([][2]string, 0, n/2)
		pairs = append(pairs, [2]string{ids[0], rot[0]})
		for i := 1; i < n/2; i++ {
			pairs = append(pairs, [2]string{rot[i], rot[n-1-i]})
		}
		rounds = append(rounds, pairs)
		// Rotate.
		last := rot[len(rot)-1]
		copy(rot[1:], rot[:len(rot)-1])
		rot[0] = last
	}
	return rounds
}
