package fixture

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/weather-guardians/internal/domain"
	"github.com/couchcryptid/weather-guardians/internal/forecast"
	"github.com/couchcryptid/weather-guardians/internal/observability"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssessor() *forecast.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return forecast.NewService(time.UTC, logger, observability.NewMetricsForTesting())
}

// generate builds a fixture through the forecast service.
func generate(t *testing.T, from, to domain.CalendarDate) []domain.CompositeAssessment {
	t.Helper()
	entries, err := Generate(context.Background(), newAssessor(), from, to)
	require.NoError(t, err)
	return entries
}

func validate(entries []domain.CompositeAssessment) []*Phase {
	return Validate(context.Background(), newAssessor(), entries)
}

func TestGenerate_InclusiveRange(t *testing.T) {
	got := generate(t, domain.MustDate(2024, 2, 27), domain.MustDate(2024, 3, 1))
	require.Len(t, got, 4)
	assert.Equal(t, domain.MustDate(2024, 2, 29), got[2].Date)
	assert.Equal(t, domain.MustDate(2024, 3, 1), got[3].Date)
}

func TestGenerate_InvalidRanges(t *testing.T) {
	ctx := context.Background()
	_, err := Generate(ctx, newAssessor(), domain.MustDate(2024, 3, 1), domain.MustDate(2024, 2, 1))
	require.Error(t, err)

	_, err = Generate(ctx, newAssessor(), domain.MustDate(2000, 1, 1), domain.MustDate(2020, 1, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestWriteRead_RoundTripPassesValidation(t *testing.T) {
	entries := generate(t, domain.MustDate(2023, 1, 1), domain.MustDate(2023, 12, 31))

	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, WriteFile(path, entries))

	loaded, err := ReadFile(path)
	require.NoError(t, err)
	if diff := cmp.Diff(entries, loaded, cmp.AllowUnexported(domain.CalendarDate{})); diff != "" {
		t.Fatalf("fixture round trip mismatch (-want +got):\n%s", diff)
	}

	for _, p := range validate(loaded) {
		assert.True(t, p.Passed(), "%s: %v", p.Name, p.Errors)
	}
}

func TestValidate_DetectsDrift(t *testing.T) {
	entries := generate(t, domain.MustDate(2024, 7, 14), domain.MustDate(2024, 7, 16))
	entries[1].Heat.Value += 1e-12

	phases := validate(entries)
	assert.False(t, phases[0].Passed())
	assert.Len(t, phases[0].Errors, 1)
	assert.Contains(t, phases[0].Errors[0], "2024-07-15")
}

func TestValidate_DetectsInconsistentClassification(t *testing.T) {
	entries := generate(t, domain.MustDate(2023, 1, 11), domain.MustDate(2023, 1, 11))
	entries[0].Score = 9
	entries[0].Outcome = domain.OutcomeFavorable

	phases := validate(entries)
	classification := phases[2]
	assert.False(t, classification.Passed())
	assert.Len(t, classification.Errors, 2)
}

func TestValidate_DetectsOutOfRangeAndDuplicates(t *testing.T) {
	entries := generate(t, domain.MustDate(2024, 1, 1), domain.MustDate(2024, 1, 1))
	entries = append(entries, entries[0])
	entries[1].AirQuality.Value = 250

	phases := validate(entries)
	assert.False(t, phases[1].Passed(), "ranges")
	assert.False(t, phases[3].Passed(), "dates")
}

func TestRead_Malformed(t *testing.T) {
	_, err := Read(bytes.NewBufferString(`[{"date":"2023-02-30"}]`))
	require.Error(t, err)

	_, err = Read(bytes.NewBufferString(`{`))
	require.Error(t, err)
}

func TestGenerate_MatchesServiceComposite(t *testing.T) {
	svc := newAssessor()
	date := domain.MustDate(2023, 7, 22)
	entries := generate(t, date, date)

	want, err := svc.Composite(context.Background(), date)
	require.NoError(t, err)
	if diff := cmp.Diff(want, entries[0], cmp.AllowUnexported(domain.CalendarDate{})); diff != "" {
		t.Fatalf("fixture diverges from service (-service +fixture):\n%s", diff)
	}
}

type failingAssessor struct{ err error }

func (f failingAssessor) Composite(context.Context, domain.CalendarDate) (domain.CompositeAssessment, error) {
	return domain.CompositeAssessment{}, f.err
}

func TestGenerate_PropagatesAssessorError(t *testing.T) {
	boom := errors.New("boom")
	date := domain.MustDate(2024, 1, 1)
	_, err := Generate(context.Background(), failingAssessor{err: boom}, date, date)
	assert.ErrorIs(t, err, boom)
}

func TestValidate_ReportsAssessorError(t *testing.T) {
	entries := generate(t, domain.MustDate(2024, 1, 1), domain.MustDate(2024, 1, 1))
	phases := Validate(context.Background(), failingAssessor{err: errors.New("boom")}, entries)
	require.False(t, phases[0].Passed())
	assert.Contains(t, phases[0].Errors[0], "boom")
}
