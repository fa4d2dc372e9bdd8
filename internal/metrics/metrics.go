package metrics

import (
	"sync"
	"time"
)

// Recorder captures lightweight, in-memory metrics about the simulation and
// the HTTP surface. It is intentionally simple so it can be swapped for a
// real backend later; when OTel instruments are configured it mirrors every
// observation there. A nil Recorder is safe to call.
type Recorder struct {
	mu   sync.Mutex
	otel *otelInstruments

	playsResolved   int
	gamesCompleted  int
	leagueGames     int
	weeksAdvanced   int
	lastSeasonPhase string
}

// NewRecorder returns a Recorder without telemetry export.
func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{otel: otel}
}

// RecordPlay counts one resolved play in the user's game.
func (r *Recorder) RecordPlay() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.playsResolved++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordPlay()
	}
}

// RecordGameComplete counts the user's game finishing.
func (r *Recorder) RecordGameComplete() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.gamesCompleted++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordGameComplete()
	}
}

// RecordOtherGames counts league games resolved by the week simulation.
func (r *Recorder) RecordOtherGames(count int) {
	if r == nil || count <= 0 {
		return
	}
	r.mu.Lock()
	r.leagueGames += count
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordOtherGames(count)
	}
}

// RecordWeekAdvance counts a week boundary crossing and remembers the phase
// entered.
func (r *Recorder) RecordWeekAdvance(seasonPhase string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.weeksAdvanced++
	r.lastSeasonPhase = seasonPhase
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordWeekAdvance(seasonPhase)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// PlaysResolved returns the total plays counted.
func (r *Recorder) PlaysResolved() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playsResolved
}

// GamesCompleted returns the total user games counted.
func (r *Recorder) GamesCompleted() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gamesCompleted
}

// LeagueGamesSimulated returns the total non-user games counted.
func (r *Recorder) LeagueGamesSimulated() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leagueGames
}

// WeeksAdvanced returns the total week boundaries counted.
func (r *Recorder) WeeksAdvanced() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.weeksAdvanced
}

// LastSeasonPhase returns the phase recorded by the latest advancement.
func (r *Recorder) LastSeasonPhase() string {
	if r == nil {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastSeasonPhase
}
