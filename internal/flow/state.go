package flow

import (
	"github.com/gridironsim/franchise-flow/internal/flow/gameday"
	"github.com/gridironsim/franchise-flow/internal/flow/week"
)

// State is the root aggregate owned by the Manager. It is replaced wholesale
// on every transition, never partially mutated, so receivers can detect
// change by comparing references to what they last saw.
type State struct {
	WeekFlow  week.FlowState     `json:"weekFlow"`
	GameDay   *gameday.FlowState `json:"gameDay,omitempty"`
	IsLoading bool               `json:"isLoading"`
	Error     string             `json:"error,omitempty"`
}
