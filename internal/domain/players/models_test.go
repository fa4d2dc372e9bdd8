package players

import "testing"

func TestSeverityForWeeksOut(t *testing.T) {
	cases := []struct {
		weeks int
		want  InjurySeverity
	}{
		{1, SeverityQuestionable},
		{2, SeverityOut},
		{4, SeverityOut},
		{5, SeverityIR},
		{10, SeverityIR},
	}
	for _, c := range cases {
		if got := SeverityForWeeksOut(c.weeks); got != c.want {
			t.Fatalf("%d weeks: expected %s, got %s", c.weeks, c.want, got)
		}
	}
}

func TestInjuryStatusHealthy(t *testing.T) {
	if !(InjuryStatus{}).Healthy() {
		t.Fatalf("zero status should be healthy")
	}
	if !(InjuryStatus{Severity: SeverityNone}).Healthy() {
		t.Fatalf("explicit none should be healthy")
	}
	if (InjuryStatus{Severity: SeverityOut, WeeksRemaining: 2}).Healthy() {
		t.Fatalf("out should not be healthy")
	}
}

func TestPlayerAvailable(t *testing.T) {
	cases := []struct {
		severity InjurySeverity
		want     bool
	}{
		{SeverityNone, true},
		{SeverityQuestionable, true},
		{SeverityOut, false},
		{SeverityIR, false},
	}
	for _, c := range cases {
		p := Player{Injury: InjuryStatus{Severity: c.severity}}
		if got := p.Available(); got != c.want {
			t.Fatalf("%s: expected %v, got %v", c.severity, c.want, got)
		}
	}
}
