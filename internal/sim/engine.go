// Package sim drives a single football game play by play. The engine is
// deliberately lightweight: it produces plausible drives, scores, stat lines
// and injuries, bounded by a hard play cap, and reports everything through
// the event bus as it goes.
package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/gridironsim/franchise-flow/internal/domain"
	"github.com/gridironsim/franchise-flow/internal/domain/players"
	"github.com/gridironsim/franchise-flow/internal/domain/schedule"
	"github.com/gridironsim/franchise-flow/internal/events"
)

const (
	quarterSeconds = 900
	regQuarters    = 4
	// maxPlays is the safety limit bounding any single game.
	maxPlays = 240
	// recentPlayCap bounds the live-display play feed.
	recentPlayCap = 8

	injuryChance = 0.008
)

var injuryTypes = []string{"hamstring", "ankle", "knee", "shoulder", "concussion"}

// ErrNoRoster is returned when a side has no available players to simulate with.
var ErrNoRoster = errors.New("sim: team has no available players")

// Config carries everything the engine needs for one game.
type Config struct {
	Game   schedule.ScheduledGame
	Week   int
	State  domain.GameState
	Bus    *events.Bus
	Rand   *rand.Rand
	Logger *slog.Logger
}

type side struct {
	id       string
	strength float64
	roster   []players.Player
}

// Engine simulates one game. It is not safe for concurrent use; the game day
// flow serializes access.
type Engine struct {
	game   schedule.ScheduledGame
	week   int
	bus    *events.Bus
	rng    *rand.Rand
	logger *slog.Logger

	home side
	away side

	quarter    int
	clock      int
	score      domain.Score
	possession string
	down       int
	toGo       int
	yardLine   int // offense's distance from their own goal line, 0-100
	plays      int

	recent   []string
	stats    map[string]domain.StatLine
	injuries []domain.Injury
	hurt     map[string]bool

	complete bool
	result   *domain.GameResult
}

// New prepares an engine for the scheduled game using both teams' rosters.
func New(cfg Config) (*Engine, error) {
	home, err := buildSide(cfg.State, cfg.Game.HomeTeamID)
	if err != nil {
		return nil, err
	}
	away, err := buildSide(cfg.State, cfg.Game.AwayTeamID)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(int64(cfg.Week)))
	}

	e := &Engine{
		game:       cfg.Game,
		week:       cfg.Week,
		bus:        cfg.Bus,
		rng:        rng,
		logger:     logger,
		home:       home,
		away:       away,
		quarter:    1,
		clock:      quarterSeconds,
		possession: cfg.Game.AwayTeamID, // home receives the second-half kickoff
		down:       1,
		toGo:       10,
		yardLine:   25,
		stats:      make(map[string]domain.StatLine),
		hurt:       make(map[string]bool),
	}
	return e, nil
}

func buildSide(state domain.GameState, teamID string) (side, error) {
	s := side{id: teamID}
	var total, n float64
	for _, p := range state.Players {
		if p.TeamID != teamID || !p.Available() {
			continue
		}
		s.roster = append(s.roster, p)
		total += float64(p.Overall)
		n++
	}
	if len(s.roster) == 0 {
		return side{}, fmt.Errorf("%w: %s", ErrNoRoster, teamID)
	}
	// Map iteration order must not leak into play selection; a fixed roster
	// order keeps the same seed producing the same game.
	sort.Slice(s.roster, func(i, j int) bool { return s.roster[i].ID < s.roster[j].ID })
	s.strength = total / n
	return s, nil
}

// Complete reports whether the game has finished.
func (e *Engine) Complete() bool {
	return e.complete
}

// Result returns the final result, or nil until the game completes.
func (e *Engine) Result() *domain.GameResult {
	return e.result
}

// AtHalftime reports the boundary between the second and third quarters.
func (e *Engine) AtHalftime() bool {
	return !e.complete && e.quarter == 3 && e.clock == quarterSeconds
}

// Live returns the current display projection.
func (e *Engine) Live() LiveGame {
	recent := make([]string, len(e.recent))
	copy(recent, e.recent)
	return LiveGame{
		GameID:      e.game.ID,
		Quarter:     e.quarter,
		Clock:       clockDisplay(e.clock),
		Score:       e.score,
		Possession:  e.possession,
		Down:        e.down,
		ToGo:        e.toGo,
		YardLine:    e.yardLine,
		RecentPlays: recent,
		Complete:    e.complete,
	}
}

// NextPlay resolves exactly one play and returns it, or nil once the game is
// complete.
func (e *Engine) NextPlay() *PlayResult {
	if e.complete {
		return nil
	}

	e.plays++
	play := e.resolvePlay()
	e.record(play)

	if e.plays >= maxPlays {
		e.logger.Warn("play cap reached, forcing final", "game_id", e.game.ID, "plays", e.plays)
		e.finalize()
	} else if e.clock <= 0 {
		e.endQuarter()
	}
	return play
}

func (e *Engine) resolvePlay() *PlayResult {
	off, def := e.offense(), e.defense()
	play := &PlayResult{
		Number:    e.plays,
		Quarter:   e.quarter,
		Clock:     e.clock,
		OffenseID: off.id,
	}

	// Edge in talent shifts outcomes a few percent either way.
	edge := (off.strength - def.strength) / 200

	leading := e.offenseLead() > 0
	switch {
	case e.quarter >= regQuarters && e.clock < 120 && leading:
		e.resolveKneel(play)
	case e.down == 4:
		e.resolveFourthDown(play, edge)
	default:
		if e.rng.Float64() < 0.45 {
			e.resolveRun(play, off, def, edge)
		} else {
			e.resolvePass(play, off, def, edge)
		}
	}

	e.maybeInjure(play, off)
	return play
}

func (e *Engine) resolveKneel(play *PlayResult) {
	play.Type = PlayKneel
	play.Yards = -1
	play.Description = fmt.Sprintf("%s kneels to run out the clock", play.OffenseID)
	e.consume(40)
	e.advance(play.Yards)
}

func (e *Engine) resolveFourthDown(play *PlayResult, edge float64) {
	switch {
	case e.yardLine >= 65: // field goal range
		play.Type = PlayFieldGoal
		dist := 100 - e.yardLine + 17
		if e.rng.Float64() < 0.95-float64(dist-20)*0.012+edge {
			play.Points = 3
			play.Description = fmt.Sprintf("%d-yard field goal is good", dist)
			e.addPoints(play.OffenseID, 3)
		} else {
			play.Description = fmt.Sprintf("%d-yard field goal is no good", dist)
		}
		e.consume(6)
		e.changePossession(25) // spot simplification after kicks
	default:
		play.Type = PlayPunt
		play.Description = "punt downed"
		e.consume(8)
		e.changePossession(clamp(100-e.yardLine-40, 5, 40))
	}
}

func (e *Engine) resolveRun(play *PlayResult, off, def side, edge float64) {
	play.Type = PlayRun
	rusher := off.pick(e.rng, players.RunningBack, players.Quarterback)
	yards := int(e.rng.NormFloat64()*3.5 + 4.2 + edge*10)
	if yards < -4 {
		yards = -4
	}
	play.Yards = yards
	play.Description = fmt.Sprintf("%s runs for %d", rusher.Name, yards)

	if e.rng.Float64() < 0.012 {
		play.Turnover = true
		play.Description = fmt.Sprintf("%s fumbles, recovered by %s", rusher.Name, def.id)
	}

	line := e.stats[rusher.ID]
	line.RushYards += yards
	e.stats[rusher.ID] = line

	e.consume(28 + e.rng.Intn(12))
	e.finishDownPlay(play, rusher.ID)
}

func (e *Engine) resolvePass(play *PlayResult, off, def side, edge float64) {
	play.Type = PlayPass
	qb := off.pick(e.rng, players.Quarterback)
	target := off.pick(e.rng, players.WideReceiver, players.TightEnd, players.RunningBack)

	roll := e.rng.Float64()
	switch {
	case roll < 0.03-edge/2: // interception
		play.Turnover = true
		play.Description = fmt.Sprintf("%s intercepted by %s", qb.Name, def.id)
		line := e.stats[qb.ID]
		line.Interceptions++
		e.stats[qb.ID] = line
		e.consume(10)
	case roll < 0.40-edge*2: // incomplete
		play.Description = fmt.Sprintf("%s incomplete to %s", qb.Name, target.Name)
		e.consume(8)
	default:
		yards := 4 + e.rng.Intn(14) + int(edge*20)
		if e.rng.Float64() < 0.08 { // deep shot
			yards += 15 + e.rng.Intn(30)
		}
		play.Yards = yards
		play.Description = fmt.Sprintf("%s complete to %s for %d", qb.Name, target.Name, yards)

		qline := e.stats[qb.ID]
		qline.PassYards += yards
		e.stats[qb.ID] = qline
		tline := e.stats[target.ID]
		tline.RecYards += yards
		e.stats[target.ID] = tline

		e.consume(24 + e.rng.Intn(16))
	}
	e.finishDownPlay(play, target.ID)
}

// finishDownPlay applies yardage, downs, touchdowns and turnovers after a
// run or pass has been described.
func (e *Engine) finishDownPlay(play *PlayResult, scorerID string) {
	if play.Turnover {
		e.changePossession(100 - e.yardLine)
		return
	}
	e.advance(play.Yards)

	if e.yardLine >= 100 {
		play.Points = 7 // touchdown plus automatic extra point
		play.Description += " — touchdown"
		line := e.stats[scorerID]
		if play.Type == PlayRun {
			line.RushTDs++
		} else {
			line.RecTDs++
		}
		e.stats[scorerID] = line
		e.addPoints(play.OffenseID, 7)
		e.changePossession(25)
		return
	}

	if play.Yards >= e.toGo {
		e.down = 1
		e.toGo = 10
		return
	}
	e.toGo -= play.Yards
	e.down++
	if e.down > 4 {
		e.changePossession(100 - e.yardLine)
	}
}

func (e *Engine) maybeInjure(play *PlayResult, off side) {
	if e.rng.Float64() >= injuryChance {
		return
	}
	p := off.roster[e.rng.Intn(len(off.roster))]
	if e.hurt[p.ID] {
		return
	}
	e.hurt[p.ID] = true

	injury := domain.Injury{
		PlayerID:   p.ID,
		InjuryType: injuryTypes[e.rng.Intn(len(injuryTypes))],
		WeeksOut:   1 + e.rng.Intn(6),
	}
	e.injuries = append(e.injuries, injury)
	play.InjuredID = p.ID
	play.Description += fmt.Sprintf(" (%s injured)", p.Name)

	if e.bus != nil {
		e.bus.Emit(events.Injury{
			GameID:     e.game.ID,
			PlayerID:   injury.PlayerID,
			InjuryType: injury.InjuryType,
			WeeksOut:   injury.WeeksOut,
		})
	}
}

func (e *Engine) record(play *PlayResult) {
	e.recent = append(e.recent, play.Description)
	if len(e.recent) > recentPlayCap {
		e.recent = e.recent[len(e.recent)-recentPlayCap:]
	}
	if e.bus != nil {
		e.bus.Emit(events.PlayCompleted{
			GameID:      e.game.ID,
			Quarter:     play.Quarter,
			Clock:       play.Clock,
			OffenseID:   play.OffenseID,
			Description: play.Description,
			Points:      play.Points,
		})
	}
}

func (e *Engine) addPoints(teamID string, points int) {
	if teamID == e.home.id {
		e.score.Home += points
	} else {
		e.score.Away += points
	}
	if e.bus != nil {
		e.bus.Emit(events.ScoreChange{
			GameID:        e.game.ID,
			Score:         e.score,
			ScoringTeamID: teamID,
			Points:        points,
		})
	}
}

func (e *Engine) endQuarter() {
	if e.bus != nil {
		e.bus.Emit(events.QuarterEnd{GameID: e.game.ID, Quarter: e.quarter, Score: e.score})
	}

	switch {
	case e.quarter < regQuarters:
		if e.quarter == 2 && e.bus != nil {
			e.bus.Emit(events.Halftime{GameID: e.game.ID, Score: e.score})
		}
		e.quarter++
		e.clock = quarterSeconds
		if e.quarter == 3 {
			// Home receives the second-half kickoff.
			e.possession = e.home.id
			e.down, e.toGo, e.yardLine = 1, 10, 25
		}
	case e.quarter == regQuarters && e.score.Home == e.score.Away:
		// Single overtime period; a tie stands if it ends level.
		e.quarter++
		e.clock = quarterSeconds
	default:
		e.finalize()
	}
}

func (e *Engine) finalize() {
	e.complete = true
	result := &domain.GameResult{
		ID:          uuid.NewString(),
		GameID:      e.game.ID,
		HomeTeamID:  e.home.id,
		AwayTeamID:  e.away.id,
		Score:       e.score,
		PlayerStats: e.stats,
		Injuries:    e.injuries,
	}
	switch {
	case e.score.Home > e.score.Away:
		result.WinnerID, result.LoserID = e.home.id, e.away.id
	case e.score.Away > e.score.Home:
		result.WinnerID, result.LoserID = e.away.id, e.home.id
	default:
		result.Tie = true
	}
	e.result = result
}

func (e *Engine) offense() side {
	if e.possession == e.home.id {
		return e.home
	}
	return e.away
}

func (e *Engine) defense() side {
	if e.possession == e.home.id {
		return e.away
	}
	return e.home
}

// offenseLead returns the offense's score margin.
func (e *Engine) offenseLead() int {
	if e.possession == e.home.id {
		return e.score.Home - e.score.Away
	}
	return e.score.Away - e.score.Home
}

func (e *Engine) advance(yards int) {
	e.yardLine += yards
	if e.yardLine < 1 {
		e.yardLine = 1
	}
}

func (e *Engine) consume(seconds int) {
	e.clock -= seconds
}

func (e *Engine) changePossession(newYardLine int) {
	e.possession = e.defense().id
	e.down, e.toGo = 1, 10
	e.yardLine = newYardLine
	if e.yardLine < 1 {
		e.yardLine = 1
	}
	if e.yardLine > 99 {
		e.yardLine = 99
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// pick returns a roster player at one of the preferred positions, falling
// back to any available player when the roster has none.
func (s side) pick(rng *rand.Rand, prefs ...players.Position) players.Player {
	var candidates []players.Player
	for _, pos := range prefs {
		for _, p := range s.roster {
			if p.Position == pos {
				candidates = append(candidates, p)
			}
		}
		if len(candidates) > 0 {
			break
		}
	}
	if len(candidates) == 0 {
		candidates = s.roster
	}
	return candidates[rng.Intn(len(candidates))]
}
