package flow

import "github.com/gridironsim/franchise-flow/internal/flow/gameday"

// Action is the closed union of user intents the Manager can dispatch.
// Each variant maps 1:1 onto a Manager method; Dispatch is a convenience
// entry point for transport layers, not a second API.
type Action interface {
	isAction()
}

// ViewPreGame opens the pre-game screen for the user's scheduled game.
type ViewPreGame struct{}

// SetPrediction records the user's win/loss call before kickoff.
type SetPrediction struct {
	Prediction gameday.Prediction `json:"prediction"`
}

// StartGame kicks off the user's game.
type StartGame struct{}

// SetSpeed adjusts continuous-simulation pacing.
type SetSpeed struct {
	Speed gameday.Speed `json:"speed"`
}

// Pause suspends continuous simulation between plays.
type Pause struct{}

// Resume lifts a pause.
type Resume struct{}

// RunNextPlay resolves exactly one play.
type RunNextPlay struct{}

// RunContinuous resolves plays at the configured pace until done or paused.
type RunContinuous struct{}

// SkipToEnd resolves all remaining plays immediately.
type SkipToEnd struct{}

// MarkGameResultViewed acknowledges the user's game result.
type MarkGameResultViewed struct{}

// SimulateOtherGames resolves the rest of the league's slate for the week.
type SimulateOtherGames struct{}

// ViewWeekSummary opens the week summary.
type ViewWeekSummary struct{}

// MarkWeekSummaryViewed acknowledges the week summary.
type MarkWeekSummaryViewed struct{}

// AdvanceWeek crosses the week boundary once every gate is satisfied.
type AdvanceWeek struct{}

// ClearError clears the surfaced error string.
type ClearError struct{}

func (ViewPreGame) isAction()           {}
func (SetPrediction) isAction()         {}
func (StartGame) isAction()             {}
func (SetSpeed) isAction()              {}
func (Pause) isAction()                 {}
func (Resume) isAction()                {}
func (RunNextPlay) isAction()           {}
func (RunContinuous) isAction()         {}
func (SkipToEnd) isAction()             {}
func (MarkGameResultViewed) isAction()  {}
func (SimulateOtherGames) isAction()    {}
func (ViewWeekSummary) isAction()       {}
func (MarkWeekSummaryViewed) isAction() {}
func (AdvanceWeek) isAction()           {}
func (ClearError) isAction()            {}
