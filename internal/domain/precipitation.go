package domain

// Intensity tiers drawn for precipitation.
const (
	IntensityNone = iota
	IntensityLight
	IntensityModerate
)

// Precipitation thresholds.
const (
	PrecipElevatedProbability = 0.7
	precipShowerProbability   = 0.3
)

// PrecipitationSimulator predicts rain probability and intensity.
type PrecipitationSimulator struct{}

func (PrecipitationSimulator) Domain() Domain { return DomainPrecipitation }

// Predict draws probability, intensity and confidence, in that order, from one
// salted stream.
func (PrecipitationSimulator) Predict(date CalendarDate) Prediction {
	s := NewStream(date, SaltPrecipitation)
	probability := clamp(round2(s.Float64()), 0, 1)
	intensity := s.Intn(3)
	conf := confidence(s.Float64(), 0.6, 0.4)

	status := PrecipitationStatus(probability, intensity)
	recommendation := "Carry on. Optional umbrella if out for long."
	if status >= StatusElevated {
		recommendation = "Keep an umbrella or raincoat handy; watch for slick roads."
	}

	return Prediction{
		Domain:         DomainPrecipitation,
		Date:           date,
		Value:          probability,
		Unit:           "probability",
		Condition:      ClassifyPrecipitation(probability, intensity),
		Confidence:     conf,
		Description:    "Rain probability and intensity estimate",
		Recommendation: recommendation,
		Status:         status,
		Secondary: &Measurement{
			Name:  "intensity",
			Value: float64(intensity),
			Unit:  "tier",
		},
	}
}

// ClassifyPrecipitation names the expected rain.
func ClassifyPrecipitation(probability float64, intensity int) string {
	switch intensity {
	case IntensityNone:
		if probability < precipShowerProbability {
			return "No Rain"
		}
		return "Isolated Showers"
	case IntensityLight:
		return "Light Rain"
	default:
		return "Moderate Rain"
	}
}

// PrecipitationStatus is elevated for likely rain or moderate intensity.
func PrecipitationStatus(probability float64, intensity int) Status {
	if probability >= PrecipElevatedProbability || intensity >= IntensityModerate {
		return StatusElevated
	}
	return StatusNormal
}
