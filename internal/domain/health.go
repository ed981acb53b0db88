package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// HealthGroup is a population with specific weather sensitivities.
type HealthGroup string

const (
	HealthRespiratory HealthGroup = "respiratory"
	HealthCardiac     HealthGroup = "cardiac"
)

// ErrUnknownHealthGroup is returned for a group name outside the supported set.
var ErrUnknownHealthGroup = errors.New("unknown health group")

// ParseHealthGroup accepts the group name case-sensitively.
func ParseHealthGroup(s string) (HealthGroup, error) {
	switch g := HealthGroup(s); g {
	case HealthRespiratory, HealthCardiac:
		return g, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownHealthGroup, s)
	}
}

// HealthAdvice is guidance for one group on one date.
type HealthAdvice struct {
	Group              HealthGroup  `json:"group"`
	Date               CalendarDate `json:"date"`
	TemperatureC       float64      `json:"temperature_c"`
	HumidityPercent    float64      `json:"humidity_percent"`
	AQI                int          `json:"aqi"`
	TemperatureChangeC float64      `json:"temperature_change_c"`
	Summary            string       `json:"summary"`
	Recommendation     string       `json:"recommendation"`
	RiskStatus         Status       `json:"risk_status"`
}

// Advise derives reproducible advice for a group. Inputs are drawn from the
// group's salted stream in the order temperature, humidity, AQI, change.
func Advise(group HealthGroup, date CalendarDate) HealthAdvice {
	salt := SaltHealthCardiac
	if group == HealthRespiratory {
		salt = SaltHealthRespiratory
	}
	s := NewStream(date, salt)

	advice := HealthAdvice{
		Group:              group,
		Date:               date,
		TemperatureC:       roundTo(s.Float64()*25, 1),
		HumidityPercent:    roundTo(s.Float64()*70+20, 0),
		AQI:                aqiMin + s.Intn(aqiMax-aqiMin+1),
		TemperatureChangeC: roundTo((s.Float64()-0.5)*10, 1),
	}

	if group == HealthRespiratory {
		adviseRespiratory(&advice)
	} else {
		adviseCardiac(&advice)
	}
	return advice
}

func adviseRespiratory(a *HealthAdvice) {
	var category, rec string
	switch {
	case a.AQI <= 50:
		category, a.RiskStatus, rec = "Good", StatusNormal, "Normal activities are fine."
	case a.AQI <= 100:
		category, a.RiskStatus, rec = "Moderate", StatusNormal, "Monitor symptoms if sensitive."
	case a.AQI <= 150:
		category, a.RiskStatus, rec = "USG", StatusElevated, "Limit prolonged outdoor exertion."
	case a.AQI <= 200:
		category, a.RiskStatus, rec = "Unhealthy", StatusElevated, "Wear a mask outdoors if needed."
	default:
		category, a.RiskStatus, rec = "Very Unhealthy", StatusSevere, "Avoid outdoor activities; use air purifier."
	}
	if a.HumidityPercent >= 70 {
		rec += " Keep inhalers handy; consider dehumidifier."
	}
	a.Summary = fmt.Sprintf("AQI %d (%s), Humidity %s%%", a.AQI, category, formatNumber(a.HumidityPercent))
	a.Recommendation = rec
}

func adviseCardiac(a *HealthAdvice) {
	heatRisk := a.TemperatureC >= 30
	coldRisk := a.TemperatureC <= 5
	changeRisk := math.Abs(a.TemperatureChangeC) >= 4

	a.RiskStatus = StatusNormal
	if heatRisk || coldRisk || changeRisk {
		a.RiskStatus = StatusElevated
	}

	switch {
	case heatRisk:
		a.Recommendation = "Hydrate, avoid midday exertion, rest in cool areas."
	case coldRisk:
		a.Recommendation = "Dress warmly, limit exposure, warm up gradually."
	case changeRisk:
		a.Recommendation = "Sudden temperature shift: adjust activity; monitor symptoms."
	default:
		a.Recommendation = "Conditions stable; maintain usual care plan."
	}
	a.Summary = fmt.Sprintf("Temp %sC (Δ %sC), Humidity %s%%",
		formatNumber(a.TemperatureC), formatNumber(a.TemperatureChangeC), formatNumber(a.HumidityPercent))
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // no negative zero in summaries
	}
	return r
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
