// Command validate re-computes every assessment in a golden fixture and checks
// that the output is bit-identical, in range, and consistently classified.
// It exits non-zero on any failure.
//
// Usage:
//
//	go run ./cmd/validate -fixture data/fixtures/assessments_2024.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/weather-guardians/internal/fixture"
	"github.com/couchcryptid/weather-guardians/internal/forecast"
	"github.com/couchcryptid/weather-guardians/internal/observability"
)

func main() {
	path := flag.String("fixture", "", "path to a fixture written by genfixture")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*path))
}

func run(path string) int {
	fmt.Println("=== Assessment Fixture Validation ===")
	fmt.Println()

	assessments, err := fixture.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	phases := fixture.Validate(context.Background(), newAssessor(), assessments)

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.Passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.Errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.Name, status)
	}

	fmt.Println()
	fmt.Printf("Assessments: %d\n", len(assessments))

	for _, p := range phases {
		if p.Passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.Name)
		for i, e := range p.Errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// newAssessor builds the same forecast service the guardian process runs, so
// fixtures pin its output.
func newAssessor() *forecast.Service {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return forecast.NewService(time.UTC, logger, observability.NewMetrics())
}
