// Command genfixture writes a golden JSON fixture of composite assessments for
// an inclusive date range. cmd/validate re-checks the file later to catch any
// change in simulator output.
//
// Usage:
//
//	go run ./cmd/genfixture -from 2024-01-01 -to 2024-12-31 -out data/fixtures/assessments_2024.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/weather-guardians/internal/domain"
	"github.com/couchcryptid/weather-guardians/internal/fixture"
	"github.com/couchcryptid/weather-guardians/internal/forecast"
	"github.com/couchcryptid/weather-guardians/internal/observability"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	fromFlag := flag.String("from", "", "first date (YYYY-MM-DD)")
	toFlag := flag.String("to", "", "last date, inclusive (YYYY-MM-DD)")
	out := flag.String("out", "", "output path for the JSON fixture")
	flag.Parse()

	if *fromFlag == "" || *toFlag == "" || *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -from, -to, -out")
	}

	from, err := domain.ParseDate(*fromFlag)
	if err != nil {
		return fmt.Errorf("-from: %w", err)
	}
	to, err := domain.ParseDate(*toFlag)
	if err != nil {
		return fmt.Errorf("-to: %w", err)
	}

	assessments, err := fixture.Generate(context.Background(), newAssessor(), from, to)
	if err != nil {
		return err
	}
	if err := fixture.WriteFile(*out, assessments); err != nil {
		return err
	}
	log.Printf("wrote %d assessments to %s", len(assessments), *out)

	printStats(assessments)
	return nil
}

func printStats(assessments []domain.CompositeAssessment) {
	outcomes := map[domain.Outcome]int{}
	forecasts := map[domain.Forecast]int{}
	for _, a := range assessments {
		outcomes[a.Outcome]++
		forecasts[a.Forecast]++
	}
	for _, o := range []domain.Outcome{domain.OutcomeFavorable, domain.OutcomeMixed, domain.OutcomeHighRisk} {
		log.Printf("  outcome %-10s %d", o, outcomes[o])
	}
	for f, n := range forecasts {
		log.Printf("  forecast %-14s %d", f, n)
	}
}

// newAssessor builds the same forecast service the guardian process runs, so
// fixtures pin its output.
func newAssessor() *forecast.Service {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return forecast.NewService(time.UTC, logger, observability.NewMetrics())
}
