// Package fixture produces and checks golden files of composite assessments.
// A fixture pins the exact output of the simulators for a date range, so any
// change to the random stream or the seasonal model shows up as drift.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/weather-guardians/internal/domain"
	"github.com/couchcryptid/weather-guardians/internal/forecast"
)

// MaxDays bounds the size of a generated fixture.
const MaxDays = 3660

// Generate assesses every date from from to to, inclusive, through a.
func Generate(ctx context.Context, a forecast.Assessor, from, to domain.CalendarDate) ([]domain.CompositeAssessment, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("range end %s is before start %s", to, from)
	}
	var out []domain.CompositeAssessment
	for d := from; !to.Before(d); d = d.AddDays(1) {
		if len(out) == MaxDays {
			return nil, fmt.Errorf("range %s..%s exceeds %d days", from, to, MaxDays)
		}
		x, err := a.Composite(ctx, d)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

// Write encodes assessments as indented JSON.
func Write(w io.Writer, assessments []domain.CompositeAssessment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(assessments); err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	return nil
}

// WriteFile writes a fixture to path.
func WriteFile(path string, assessments []domain.CompositeAssessment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create fixture: %w", err)
	}
	if err := Write(f, assessments); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a fixture.
func Read(r io.Reader) ([]domain.CompositeAssessment, error) {
	var out []domain.CompositeAssessment
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return out, nil
}

// ReadFile loads a fixture from path.
func ReadFile(path string) ([]domain.CompositeAssessment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()
	return Read(f)
}
