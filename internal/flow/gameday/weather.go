package gameday

import (
	"hash/fnv"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// weatherModel derives kickoff conditions from smooth noise so the same
// (week, stadium) pair always produces the same forecast.
type weatherModel struct {
	temp   opensimplex.Noise
	wind   opensimplex.Noise
	precip opensimplex.Noise
}

func newWeatherModel(seed int64) *weatherModel {
	return &weatherModel{
		temp:   opensimplex.NewNormalized(seed),
		wind:   opensimplex.NewNormalized(seed + 1),
		precip: opensimplex.NewNormalized(seed + 2),
	}
}

// forecast samples conditions for a home stadium in a given week. Later weeks
// trend colder, standing in for the calendar marching into winter.
func (m *weatherModel) forecast(week int, homeTeamID string) Weather {
	x := float64(week) * 0.35
	y := float64(stadiumCoord(homeTeamID)%1000) * 0.017

	seasonalDrop := float64(week) * 1.1
	temp := int(m.temp.Eval2(x, y)*30 + 5 - seasonalDrop)
	wind := int(m.wind.Eval2(x, y) * 40)
	precip := m.precip.Eval2(x, y)

	condition := "clear"
	switch {
	case precip > 0.62 && temp <= 0:
		condition = "snow"
	case precip > 0.62:
		condition = "rain"
	case wind >= 28:
		condition = "windy"
	}

	return Weather{TempC: temp, WindKPH: wind, Condition: condition}
}

func stadiumCoord(teamID string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(teamID))
	return h.Sum32()
}
