package players

// Position is a player's roster position.
type Position string

const (
	Quarterback   Position = "QB"
	RunningBack   Position = "RB"
	WideReceiver  Position = "WR"
	TightEnd      Position = "TE"
	OffensiveLine Position = "OL"
	DefensiveLine Position = "DL"
	Linebacker    Position = "LB"
	Cornerback    Position = "CB"
	Safety        Position = "S"
	Kicker        Position = "K"
)

// InjurySeverity mirrors the shared contract for injury designations.
type InjurySeverity string

const (
	SeverityNone         InjurySeverity = "none"
	SeverityQuestionable InjurySeverity = "questionable"
	SeverityOut          InjurySeverity = "out"
	SeverityIR           InjurySeverity = "ir"
)

// SeverityForWeeksOut maps a projected absence to a designation:
// more than four weeks lands on injured reserve, more than one week is out,
// anything shorter is questionable.
func SeverityForWeeksOut(weeks int) InjurySeverity {
	switch {
	case weeks > 4:
		return SeverityIR
	case weeks > 1:
		return SeverityOut
	default:
		return SeverityQuestionable
	}
}

// InjuryStatus describes a player's current injury, if any.
type InjuryStatus struct {
	Severity       InjurySeverity `json:"severity"`
	Type           string         `json:"type,omitempty"`
	WeeksRemaining int            `json:"weeksRemaining"`
}

// Healthy reports whether the player carries no injury designation.
func (s InjuryStatus) Healthy() bool {
	return s.Severity == SeverityNone || s.Severity == ""
}

// Player represents a rostered player.
type Player struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	TeamID   string       `json:"teamId"`
	Position Position     `json:"position"`
	Overall  int          `json:"overall"`
	Fatigue  int          `json:"fatigue"`
	Injury   InjuryStatus `json:"injury"`
}

// Available reports whether the player can dress for a game.
// Questionable players play; out and IR players do not.
func (p Player) Available() bool {
	switch p.Injury.Severity {
	case SeverityOut, SeverityIR:
		return false
	default:
		return true
	}
}
