package domain

import "time"

// Annual temperature curve, Northern Hemisphere shaped with a mid-July peak.
const (
	heatMeanC      = 15.0
	heatAmplitudeC = 15.0
	heatPeakDay    = 196

	heatMinC = -25.0
	heatMaxC = 45.0
)

// Heat thresholds in °C.
const (
	HeatSevereC   = 38.0
	HeatElevatedC = 32.0
	HeatColdC     = 0.0
)

// HeatSimulator predicts daily temperature.
type HeatSimulator struct{}

func (HeatSimulator) Domain() Domain { return DomainHeat }

// Predict computes baseline + daily variation + seasonal anomaly, clamped to
// [-25, 45] °C. Draws come from three separately salted streams.
func (HeatSimulator) Predict(date CalendarDate) Prediction {
	tempC := clamp(HeatBaseline(date)+heatVariation(date)+heatAnomaly(date), heatMinC, heatMaxC)
	condition, recommendation := ClassifyHeat(tempC)

	return Prediction{
		Domain:         DomainHeat,
		Date:           date,
		Value:          tempC,
		Unit:           "°C",
		Condition:      condition,
		Confidence:     confidence(NewStream(date, SaltHeatConfidence).Float64(), 0.6, 0.35),
		Description:    "Seasonal temperature estimate with daily variation",
		Recommendation: recommendation,
		Status:         HeatStatus(tempC),
		Secondary: &Measurement{
			Name:  "temperature_f",
			Value: CelsiusToFahrenheit(tempC),
			Unit:  "°F",
		},
	}
}

// HeatBaseline is the seasonal temperature before any noise. It is exactly
// 30 °C on day 196 of a non-leap year.
func HeatBaseline(date CalendarDate) float64 {
	return seasonalCurve(date, heatMeanC, heatAmplitudeC, heatPeakDay)
}

// heatVariation draws [-4, +4) °C, plus a half degree on weekends.
func heatVariation(date CalendarDate) float64 {
	v := NewStream(date, SaltHeatVariation).Uniform(-4, 4)
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		v += 0.5
	}
	return v
}

// heatAnomaly injects summer heatwaves (15%, +2..+6 °C) and winter cold snaps
// (12%, -2..-6 °C).
func heatAnomaly(date CalendarDate) float64 {
	s := NewStream(date, SaltHeatAnomaly)
	switch date.Month() {
	case time.June, time.July, time.August:
		if s.Float64() < 0.15 {
			return s.Uniform(2, 6)
		}
	case time.December, time.January, time.February:
		if s.Float64() < 0.12 {
			return -s.Uniform(2, 6)
		}
	}
	return 0
}

// CelsiusToFahrenheit converts with C*9/5+32.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// HeatStatus: severe at 38 °C and above, elevated at 32 °C and above or at or
// below freezing.
func HeatStatus(tempC float64) Status {
	switch {
	case tempC >= HeatSevereC:
		return StatusSevere
	case tempC >= HeatElevatedC || tempC <= HeatColdC:
		return StatusElevated
	default:
		return StatusNormal
	}
}

// ClassifyHeat returns the condition label and recommendation for a temperature.
func ClassifyHeat(tempC float64) (condition, recommendation string) {
	switch {
	case tempC < 0:
		return "Frigid", "Frigid. Bundle up and limit time outside."
	case tempC < 10:
		return "Chilly", "Chilly. Layer up if heading out."
	case tempC < 20:
		return "Mild", "Mild. A light jacket should do."
	case tempC < 27:
		return "Warm", "Warm and pleasant. Great for a walk, use light sunscreen."
	case tempC < 32:
		return "Hot", "Hot. Stay hydrated and apply sunscreen."
	case tempC < 38:
		return "Very Hot", "Very hot. Limit strenuous activity and seek shade midday."
	default:
		return "Extreme Heat", "Extreme heat. Avoid midday sun, hydrate frequently, and check on others."
	}
}
