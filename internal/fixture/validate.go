package fixture

import (
	"context"
	"fmt"
	"math"

	"github.com/couchcryptid/weather-guardians/internal/domain"
	"github.com/couchcryptid/weather-guardians/internal/forecast"
	"github.com/google/go-cmp/cmp"
)

// Phase is one named group of checks and the problems it found.
type Phase struct {
	Name   string
	Errors []string
}

func (p *Phase) errorf(format string, args ...any) {
	p.Errors = append(p.Errors, fmt.Sprintf(format, args...))
}

// Passed reports whether the phase found no problems.
func (p *Phase) Passed() bool { return len(p.Errors) == 0 }

// Validate runs every check against a loaded fixture. Drift is measured
// against a.
func Validate(ctx context.Context, a forecast.Assessor, assessments []domain.CompositeAssessment) []*Phase {
	return []*Phase{
		validateDrift(ctx, a, assessments),
		validateRanges(assessments),
		validateClassification(assessments),
		validateDates(assessments),
	}
}

// validateDrift recomputes each assessment and reports any difference.
func validateDrift(ctx context.Context, a forecast.Assessor, assessments []domain.CompositeAssessment) *Phase {
	p := &Phase{Name: "Determinism (fixture drift)"}
	opt := cmp.AllowUnexported(domain.CalendarDate{})
	for _, want := range assessments {
		if want.Date.IsZero() {
			p.errorf("entry without date")
			continue
		}
		got, err := a.Composite(ctx, want.Date)
		if err != nil {
			p.errorf("%s: %v", want.Date, err)
			continue
		}
		if diff := cmp.Diff(want, got, opt); diff != "" {
			p.errorf("%s drifted (-fixture +recomputed):\n%s", want.Date, diff)
		}
	}
	return p
}

func validateRanges(assessments []domain.CompositeAssessment) *Phase {
	p := &Phase{Name: "Value ranges"}
	check := func(date domain.CalendarDate, name string, v, lo, hi float64) {
		if math.IsNaN(v) || v < lo || v > hi {
			p.errorf("%s: %s %v outside [%v, %v]", date, name, v, lo, hi)
		}
	}
	for _, a := range assessments {
		check(a.Date, "temperature", a.Heat.Value, -25, 45)
		check(a.Date, "wind average", a.Wind.Value, 0, 80)
		check(a.Date, "wind gust", a.Wind.SecondaryValue(), a.Wind.Value, 120)
		check(a.Date, "precipitation probability", a.Precipitation.Value, 0, 1)
		check(a.Date, "intensity", a.Precipitation.SecondaryValue(), 0, 2)
		check(a.Date, "aqi", a.AirQuality.Value, 25, 200)
		for _, pr := range []domain.Prediction{a.Heat, a.Wind, a.Precipitation, a.AirQuality} {
			check(a.Date, string(pr.Domain)+" confidence", pr.Confidence, 0, 1)
		}
	}
	return p
}

func validateClassification(assessments []domain.CompositeAssessment) *Phase {
	p := &Phase{Name: "Classification consistency"}
	for _, a := range assessments {
		if got, want := a.Heat.Status, domain.HeatStatus(a.Heat.Value); got != want {
			p.errorf("%s: heat status %s, want %s", a.Date, got, want)
		}
		if got, want := a.Wind.Status, domain.WindStatus(a.Wind.Value, a.Wind.SecondaryValue()); got != want {
			p.errorf("%s: wind status %s, want %s", a.Date, got, want)
		}
		intensity := int(a.Precipitation.SecondaryValue())
		if got, want := a.Precipitation.Status, domain.PrecipitationStatus(a.Precipitation.Value, intensity); got != want {
			p.errorf("%s: precipitation status %s, want %s", a.Date, got, want)
		}
		if got, want := a.AirQuality.Status, domain.ClassifyAirQuality(int(a.AirQuality.Value)).Status; got != want {
			p.errorf("%s: air quality status %s, want %s", a.Date, got, want)
		}

		flags := domain.EvaluateFlags(a.Heat, a.Wind, a.Precipitation, a.AirQuality)
		if flags != a.Flags {
			p.errorf("%s: flags %+v, want %+v", a.Date, a.Flags, flags)
		}
		if a.Score != flags.Score() {
			p.errorf("%s: score %d, want %d", a.Date, a.Score, flags.Score())
		}
		if outcome, _ := domain.OutcomeForScore(a.Score); a.Outcome != outcome {
			p.errorf("%s: outcome %s, want %s", a.Date, a.Outcome, outcome)
		}
	}
	return p
}

func validateDates(assessments []domain.CompositeAssessment) *Phase {
	p := &Phase{Name: "Date alignment"}
	seen := make(map[domain.CalendarDate]bool, len(assessments))
	for _, a := range assessments {
		if seen[a.Date] {
			p.errorf("%s: duplicate entry", a.Date)
		}
		seen[a.Date] = true
		for _, pr := range []domain.Prediction{a.Heat, a.Wind, a.Precipitation, a.AirQuality} {
			if pr.Date != a.Date {
				p.errorf("%s: %s prediction dated %s", a.Date, pr.Domain, pr.Date)
			}
		}
	}
	return p
}
