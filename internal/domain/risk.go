package domain

// Risk weights. Heat counts once: extreme heat supersedes very hot.
const (
	weightExtremeHeat = 3
	weightVeryHot     = 2
	weightCold        = 2
	weightHighWinds   = 2
	weightWet         = 1
	weightPoorAir     = 2

	highRiskScore = 6
	mixedScore    = 3

	wetProbability = 0.5
	poorAirAQI     = 100
)

// RiskFlags are the boolean hazards derived from one date's predictions.
type RiskFlags struct {
	ExtremeHeat bool `json:"extreme_heat"`
	VeryHot     bool `json:"very_hot"`
	Cold        bool `json:"cold"`
	HighWinds   bool `json:"high_winds"`
	Wet         bool `json:"wet"`
	PoorAir     bool `json:"poor_air"`
}

// Score is the weighted sum of the flags.
func (f RiskFlags) Score() int {
	score := 0
	switch {
	case f.ExtremeHeat:
		score += weightExtremeHeat
	case f.VeryHot:
		score += weightVeryHot
	}
	if f.Cold {
		score += weightCold
	}
	if f.HighWinds {
		score += weightHighWinds
	}
	if f.Wet {
		score += weightWet
	}
	if f.PoorAir {
		score += weightPoorAir
	}
	return score
}

// EvaluateFlags derives the hazards from the four domain predictions.
func EvaluateFlags(heat, wind, precip, air Prediction) RiskFlags {
	return RiskFlags{
		ExtremeHeat: heat.Value >= HeatSevereC,
		VeryHot:     heat.Value >= HeatElevatedC,
		Cold:        heat.Value <= HeatColdC,
		HighWinds:   wind.Value >= WindSevereAverageKmH || wind.SecondaryValue() >= WindSevereGustKmH,
		Wet:         precip.Status >= StatusElevated && precip.Value >= wetProbability,
		PoorAir:     air.Status >= StatusElevated && air.Value >= poorAirAQI,
	}
}

// Outcome is the overall risk level of a date.
type Outcome string

const (
	OutcomeHighRisk  Outcome = "high_risk"
	OutcomeMixed     Outcome = "mixed"
	OutcomeFavorable Outcome = "favorable"
)

// OutcomeForScore maps a composite score to an outcome and its narrative.
func OutcomeForScore(score int) (Outcome, string) {
	switch {
	case score >= highRiskScore:
		return OutcomeHighRisk, "High risk conditions. Consider staying indoors and monitor local advisories."
	case score >= mixedScore:
		return OutcomeMixed, "Mixed conditions. Plan cautiously: hydrate, secure items, and consider a mask."
	default:
		return OutcomeFavorable, "Favorable conditions. Enjoy the day with standard sun protection."
	}
}

// Forecast is a one-word headline for the day.
type Forecast string

const (
	ForecastClear        Forecast = "clear"
	ForecastRainLikely   Forecast = "rain_likely"
	ForecastHeatAdvisory Forecast = "heat_advisory"
	ForecastHazeLikely   Forecast = "haze_likely"
	ForecastMixed        Forecast = "mixed"
)

// Headline picks the single named hazard of the day, Clear when there is none
// and Mixed when several hazards (or an unnamed one) apply.
func (f RiskFlags) Headline() Forecast {
	var hazards []Forecast
	if f.ExtremeHeat || f.VeryHot {
		hazards = append(hazards, ForecastHeatAdvisory)
	}
	if f.Wet {
		hazards = append(hazards, ForecastRainLikely)
	}
	if f.PoorAir {
		hazards = append(hazards, ForecastHazeLikely)
	}
	if f.Cold || f.HighWinds {
		hazards = append(hazards, ForecastMixed)
	}

	switch len(hazards) {
	case 0:
		return ForecastClear
	case 1:
		return hazards[0]
	default:
		return ForecastMixed
	}
}

// CompositeAssessment combines the four predictions for one date. It is always
// recomputed from its parts.
type CompositeAssessment struct {
	Date                CalendarDate `json:"date"`
	Heat                Prediction   `json:"heat"`
	Wind                Prediction   `json:"wind"`
	Precipitation       Prediction   `json:"precipitation"`
	AirQuality          Prediction   `json:"air_quality"`
	Flags               RiskFlags    `json:"flags"`
	Score               int          `json:"score"`
	Outcome             Outcome      `json:"outcome"`
	Forecast            Forecast     `json:"forecast"`
	FinalRecommendation string       `json:"final_recommendation"`
}

// Assess reduces one date's predictions to a composite assessment.
func Assess(date CalendarDate, heat, wind, precip, air Prediction) CompositeAssessment {
	flags := EvaluateFlags(heat, wind, precip, air)
	score := flags.Score()
	outcome, narrative := OutcomeForScore(score)

	return CompositeAssessment{
		Date:                date,
		Heat:                heat,
		Wind:                wind,
		Precipitation:       precip,
		AirQuality:          air,
		Flags:               flags,
		Score:               score,
		Outcome:             outcome,
		Forecast:            flags.Headline(),
		FinalRecommendation: narrative,
	}
}
