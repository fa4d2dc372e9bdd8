package gameday

import (
	"time"

	"github.com/gridironsim/franchise-flow/internal/domain"
	"github.com/gridironsim/franchise-flow/internal/sim"
)

// Phase tracks the single-game state machine.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhasePreGame    Phase = "pre_game"
	PhaseCoinToss   Phase = "coin_toss"
	PhaseSimulating Phase = "simulating"
	PhaseHalftime   Phase = "halftime"
	PhasePostGame   Phase = "post_game"
	PhaseSaving     Phase = "saving"
)

// Prediction is the user's pre-game call on their own result.
type Prediction string

const (
	PredictWin  Prediction = "win"
	PredictLoss Prediction = "loss"
	PredictNone Prediction = ""
)

// Speed selects the pacing of continuous simulation.
type Speed string

const (
	SpeedSlow   Speed = "slow"
	SpeedNormal Speed = "normal"
	SpeedFast   Speed = "fast"
)

// DefaultDelays is the inter-play pacing per speed.
func DefaultDelays() map[Speed]time.Duration {
	return map[Speed]time.Duration{
		SpeedSlow:   1200 * time.Millisecond,
		SpeedNormal: 600 * time.Millisecond,
		SpeedFast:   150 * time.Millisecond,
	}
}

// InjuryReportEntry is one designated player on a pre-game report.
type InjuryReportEntry struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Severity string `json:"severity"`
}

// Weather describes conditions at kickoff.
type Weather struct {
	TempC     int    `json:"tempC"`
	WindKPH   int    `json:"windKph"`
	Condition string `json:"condition"`
}

// PreGameInfo is everything shown before kickoff.
type PreGameInfo struct {
	GameID         string              `json:"gameId"`
	Week           int                 `json:"week"`
	OpponentID     string              `json:"opponentId"`
	OpponentName   string              `json:"opponentName"`
	IsHome         bool                `json:"isHome"`
	UserRecord     string              `json:"userRecord"`
	OpponentRecord string              `json:"opponentRecord"`
	Stakes         string              `json:"stakes"`
	Weather        Weather             `json:"weather"`
	UserInjuries   []InjuryReportEntry `json:"userInjuries"`
	OppInjuries    []InjuryReportEntry `json:"oppInjuries"`
}

// HalftimeInfo is the break-in-play snapshot.
type HalftimeInfo struct {
	Score       domain.Score `json:"score"`
	UserLeading bool         `json:"userLeading"`
}

// PostGameInfo wraps the final result with the prediction outcome.
type PostGameInfo struct {
	Result            domain.GameResult `json:"result"`
	UserWon           bool              `json:"userWon"`
	Prediction        Prediction        `json:"prediction"`
	PredictionCorrect *bool             `json:"predictionCorrect,omitempty"`
}

// FlowState is the read-only projection of game day progress handed to the
// manager and the UI.
type FlowState struct {
	Phase        Phase         `json:"phase"`
	PreGame      *PreGameInfo  `json:"preGame,omitempty"`
	Live         *sim.LiveGame `json:"live,omitempty"`
	Speed        Speed         `json:"speed"`
	Paused       bool          `json:"paused"`
	Prediction   Prediction    `json:"prediction,omitempty"`
	Halftime     *HalftimeInfo `json:"halftime,omitempty"`
	PostGame     *PostGameInfo `json:"postGame,omitempty"`
	PlaysRun     int           `json:"playsRun"`
	KickoffTeam  string        `json:"kickoffTeam,omitempty"`
	ReceivesTeam string        `json:"receivesTeam,omitempty"`
}
