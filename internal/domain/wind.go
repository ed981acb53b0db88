package domain

import (
	"math"
	"time"
)

// Annual wind curve: windiest in late January, calmest in midsummer.
const (
	windMeanKmH      = 16.0
	windAmplitudeKmH = 8.0
	windPeakDay      = 25

	windMaxAverageKmH = 80.0
	windMaxGustKmH    = 120.0
)

// Wind thresholds in km/h.
const (
	WindSevereAverageKmH   = 50.0
	WindSevereGustKmH      = 70.0
	WindElevatedAverageKmH = 30.0
	windGustyKmH           = 45.0
)

// WindSimulator predicts average wind speed and gusts.
type WindSimulator struct{}

func (WindSimulator) Domain() Domain { return DomainWind }

// Predict computes the clamped daily average, derives the gust from it and
// classifies on the average (with the gust refining the breezy bucket).
func (WindSimulator) Predict(date CalendarDate) Prediction {
	average := clamp(WindBaseline(date)+windVariation(date), 0, windMaxAverageKmH)
	gust := windGust(date, average)
	condition, recommendation := ClassifyWind(average, gust)

	return Prediction{
		Domain:         DomainWind,
		Date:           date,
		Value:          average,
		Unit:           "km/h",
		Condition:      condition,
		Confidence:     confidence(NewStream(date, SaltWindConfidence).Float64(), 0.55, 0.4),
		Description:    "Average wind speed with expected gusts",
		Recommendation: recommendation,
		Status:         WindStatus(average, gust),
		Secondary: &Measurement{
			Name:  "gust",
			Value: gust,
			Unit:  "km/h",
		},
	}
}

// WindBaseline is the seasonal average wind speed before daily noise.
func WindBaseline(date CalendarDate) float64 {
	return seasonalCurve(date, windMeanKmH, windAmplitudeKmH, windPeakDay)
}

// windVariation draws [-6, +6) km/h with a small Tuesday–Thursday bump.
func windVariation(date CalendarDate) float64 {
	v := NewStream(date, SaltWindVariation).Uniform(-6, 6)
	switch date.Weekday() {
	case time.Tuesday, time.Wednesday, time.Thursday:
		v += 0.8
	}
	return v
}

// windGust scales the average by 1.10–1.35, with a 35% chance of an extra
// 0.20–0.45 in shoulder months. The result is never less than
// max(average+4, average*1.12) and never more than 120 km/h.
func windGust(date CalendarDate, average float64) float64 {
	s := NewStream(date, SaltWindGust)
	factor := 1.10 + 0.25*s.Float64()

	if isShoulderMonth(date.Month()) && s.Float64() < 0.35 {
		factor += 0.2 + 0.25*s.Float64()
	}

	gust := math.Max(average*factor, MinGust(average))
	return clamp(gust, 0, windMaxGustKmH)
}

// MinGust is the floor applied to every gust.
func MinGust(average float64) float64 {
	return math.Max(average+4, average*1.12)
}

func isShoulderMonth(m time.Month) bool {
	switch m {
	case time.March, time.April, time.October, time.November:
		return true
	default:
		return false
	}
}

// WindStatus: severe for damaging averages or gusts, elevated for strong averages.
func WindStatus(average, gust float64) Status {
	switch {
	case average >= WindSevereAverageKmH || gust >= WindSevereGustKmH:
		return StatusSevere
	case average >= WindElevatedAverageKmH:
		return StatusElevated
	default:
		return StatusNormal
	}
}

// ClassifyWind returns the condition label and recommendation for a day's winds.
func ClassifyWind(average, gust float64) (condition, recommendation string) {
	switch {
	case average < 5:
		return "Calm", "Calm, perfect for walking."
	case average < 15:
		return "Light breeze", "Light breeze. Great day for outdoor activities."
	case average < 30:
		if gust > windGustyKmH {
			return "Breezy with gusts", "Breezy with gusts. Secure loose items."
		}
		return "Moderate breeze", "Moderate breeze. Enjoy, but be mindful of gusts."
	case average < 50:
		return "Strong winds", "Strong winds. Limit outdoor activities and use caution."
	case average < 70:
		return "Very strong winds", "Very strong winds. Avoid exposed areas and secure belongings."
	default:
		return "Damaging winds", "Damaging winds possible. Avoid outdoor activities and follow local guidance."
	}
}
