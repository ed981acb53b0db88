package domain

import (
	"errors"
	"fmt"
	"math"
)

// Domain names one environmental category.
type Domain string

const (
	DomainHeat          Domain = "heat"
	DomainWind          Domain = "wind"
	DomainPrecipitation Domain = "precipitation"
	DomainAirQuality    Domain = "airquality"
)

// Domains lists every domain in aggregation order.
func Domains() []Domain {
	return []Domain{DomainHeat, DomainWind, DomainPrecipitation, DomainAirQuality}
}

// Simulators returns one simulator per domain, in Domains order.
func Simulators() []Simulator {
	return []Simulator{HeatSimulator{}, WindSimulator{}, PrecipitationSimulator{}, AirQualitySimulator{}}
}

// ErrUnknownDomain is returned for a domain name outside the supported set.
var ErrUnknownDomain = errors.New("unknown domain")

// ParseDomain accepts the domain name case-sensitively.
func ParseDomain(s string) (Domain, error) {
	switch d := Domain(s); d {
	case DomainHeat, DomainWind, DomainPrecipitation, DomainAirQuality:
		return d, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownDomain, s)
	}
}

// Status is an ordered alert level. Comparisons such as status >= StatusElevated
// are meaningful.
type Status int

const (
	StatusNormal Status = iota
	StatusElevated
	StatusSevere
)

func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusElevated:
		return "elevated"
	case StatusSevere:
		return "severe"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	if s < StatusNormal || s > StatusSevere {
		return nil, fmt.Errorf("marshal status: unknown value %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "normal":
		*s = StatusNormal
	case "elevated":
		*s = StatusElevated
	case "severe":
		*s = StatusSevere
	default:
		return fmt.Errorf("unmarshal status: unknown value %q", b)
	}
	return nil
}

// Measurement is an auxiliary reading attached to a prediction, such as the
// Fahrenheit temperature or the gust speed.
type Measurement struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Prediction is one domain's output for one date. It is built fresh on every
// call and never mutated afterwards.
type Prediction struct {
	Domain         Domain       `json:"domain"`
	Date           CalendarDate `json:"date"`
	Value          float64      `json:"value"`
	Unit           string       `json:"unit"`
	Condition      string       `json:"condition"`
	Confidence     float64      `json:"confidence"`
	Description    string       `json:"description"`
	Recommendation string       `json:"recommendation"`
	Status         Status       `json:"status"`
	Secondary      *Measurement `json:"secondary,omitempty"`
}

// SecondaryValue returns the auxiliary reading, or 0 when there is none.
func (p Prediction) SecondaryValue() float64 {
	if p.Secondary == nil {
		return 0
	}
	return p.Secondary.Value
}

// Simulator produces a prediction for a date. Implementations share no
// algorithm, only this capability.
type Simulator interface {
	Domain() Domain
	Predict(date CalendarDate) Prediction
}

// seasonalCurve is mean + amplitude*cos(2π(dayOfYear-peakDay)/daysInYear).
func seasonalCurve(d CalendarDate, mean, amplitude float64, peakDay int) float64 {
	radians := 2 * math.Pi * float64(d.DayOfYear()-peakDay) / float64(d.DaysInYear())
	return mean + amplitude*math.Cos(radians)
}

// clamp bounds v to [lo, hi]. NaN collapses to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// confidence maps a uniform draw onto base + span*u, rounded and bounded to [0, 1].
func confidence(u, base, span float64) float64 {
	return clamp(round2(base+span*u), 0, 1)
}
