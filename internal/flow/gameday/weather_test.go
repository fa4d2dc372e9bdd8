package gameday

import "testing"

func TestForecastIsDeterministicPerSeed(t *testing.T) {
	a := newWeatherModel(7)
	b := newWeatherModel(7)

	for week := 1; week <= 18; week++ {
		wa := a.forecast(week, "hawks")
		wb := b.forecast(week, "hawks")
		if wa != wb {
			t.Fatalf("week %d: forecasts diverged: %+v vs %+v", week, wa, wb)
		}
	}
}

func TestForecastVariesByStadium(t *testing.T) {
	m := newWeatherModel(7)

	varies := false
	for week := 1; week <= 18; week++ {
		if m.forecast(week, "hawks") != m.forecast(week, "sharks") {
			varies = true
			break
		}
	}
	if !varies {
		t.Fatalf("expected different stadiums to see different weather at least once")
	}
}

func TestForecastTrendsColder(t *testing.T) {
	m := newWeatherModel(3)

	// The seasonal drop outweighs the noise amplitude across a full season.
	early := m.forecast(1, "hawks")
	late := m.forecast(18, "hawks")
	if late.TempC > early.TempC+12 {
		t.Fatalf("expected late-season cooling, got week 1 %d week 18 %d", early.TempC, late.TempC)
	}
}

func TestForecastConditionIsKnown(t *testing.T) {
	m := newWeatherModel(11)

	known := map[string]bool{"clear": true, "rain": true, "snow": true, "windy": true}
	for week := 1; week <= 22; week++ {
		for _, team := range []string{"hawks", "bears", "lions", "sharks"} {
			w := m.forecast(week, team)
			if !known[w.Condition] {
				t.Fatalf("unknown condition %q", w.Condition)
			}
		}
	}
}
