package sim

import (
	"fmt"

	"github.com/gridironsim/franchise-flow/internal/domain"
)

// PlayType categorizes a resolved play.
type PlayType string

const (
	PlayRun       PlayType = "run"
	PlayPass      PlayType = "pass"
	PlayPunt      PlayType = "punt"
	PlayFieldGoal PlayType = "field_goal"
	PlayKneel     PlayType = "kneel"
)

// PlayResult is the outcome of a single resolved play.
type PlayResult struct {
	Number      int      `json:"number"`
	Quarter     int      `json:"quarter"`
	Clock       int      `json:"clock"`
	OffenseID   string   `json:"offenseId"`
	Type        PlayType `json:"type"`
	Yards       int      `json:"yards"`
	Points      int      `json:"points"`
	Turnover    bool     `json:"turnover"`
	InjuredID   string   `json:"injuredId,omitempty"`
	Description string   `json:"description"`
}

// LiveGame is the UI-facing projection of in-progress game state.
type LiveGame struct {
	GameID      string       `json:"gameId"`
	Quarter     int          `json:"quarter"`
	Clock       string       `json:"clock"`
	Score       domain.Score `json:"score"`
	Possession  string       `json:"possession"`
	Down        int          `json:"down"`
	ToGo        int          `json:"toGo"`
	YardLine    int          `json:"yardLine"`
	RecentPlays []string     `json:"recentPlays"`
	Complete    bool         `json:"complete"`
}

// clockDisplay renders seconds remaining in a quarter as M:SS.
func clockDisplay(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
