// Package forecast serves predictions, composite assessments and health advice
// for calendar dates, recording metrics and trace spans along the way.
package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-guardians/internal/domain"
	"github.com/couchcryptid/weather-guardians/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/couchcryptid/weather-guardians/internal/forecast"

// Assessor produces the composite risk assessment for a date.
type Assessor interface {
	Composite(ctx context.Context, date domain.CalendarDate) (domain.CompositeAssessment, error)
}

// Service runs the four simulators and the risk aggregator.
type Service struct {
	simulators map[domain.Domain]domain.Simulator
	location   *time.Location
	logger     *slog.Logger
	metrics    *observability.Metrics
	tracer     trace.Tracer
}

// NewService creates a Service whose "today" is resolved in loc (nil means UTC).
func NewService(loc *time.Location, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if loc == nil {
		loc = time.UTC
	}
	sims := make(map[domain.Domain]domain.Simulator, len(domain.Domains()))
	for _, sim := range domain.Simulators() {
		sims[sim.Domain()] = sim
	}
	return &Service{
		simulators: sims,
		location:   loc,
		logger:     logger,
		metrics:    metrics,
		tracer:     otel.Tracer(tracerName),
	}
}

// Today is the current calendar day in the service's time zone.
func (s *Service) Today() domain.CalendarDate {
	return domain.Today(s.location)
}

// Stream exposes the seeded random stream for a date and purpose.
func (s *Service) Stream(date domain.CalendarDate, salt domain.Salt) *domain.Stream {
	return domain.NewStream(date, salt)
}

// Predict runs a single domain's simulator.
func (s *Service) Predict(ctx context.Context, d domain.Domain, date domain.CalendarDate) (domain.Prediction, error) {
	sim, ok := s.simulators[d]
	if !ok {
		return domain.Prediction{}, fmt.Errorf("%w %q", domain.ErrUnknownDomain, d)
	}

	_, span := s.tracer.Start(ctx, "forecast.predict", trace.WithAttributes(
		attribute.String("domain", string(d)),
		attribute.String("date", date.String()),
	))
	defer span.End()

	p := sim.Predict(date)
	span.SetAttributes(attribute.String("status", p.Status.String()))
	s.metrics.Predictions.WithLabelValues(string(d), p.Status.String()).Inc()
	s.logger.Debug("prediction computed",
		"domain", d,
		"date", date,
		"value", p.Value,
		"status", p.Status,
	)
	return p, nil
}

func (s *Service) Heat(ctx context.Context, date domain.CalendarDate) (domain.Prediction, error) {
	return s.Predict(ctx, domain.DomainHeat, date)
}

func (s *Service) Wind(ctx context.Context, date domain.CalendarDate) (domain.Prediction, error) {
	return s.Predict(ctx, domain.DomainWind, date)
}

func (s *Service) Precipitation(ctx context.Context, date domain.CalendarDate) (domain.Prediction, error) {
	return s.Predict(ctx, domain.DomainPrecipitation, date)
}

func (s *Service) AirQuality(ctx context.Context, date domain.CalendarDate) (domain.Prediction, error) {
	return s.Predict(ctx, domain.DomainAirQuality, date)
}

// Composite runs the four simulators concurrently and aggregates them once all
// have finished. A cancelled context aborts the assessment.
func (s *Service) Composite(ctx context.Context, date domain.CalendarDate) (domain.CompositeAssessment, error) {
	ctx, span := s.tracer.Start(ctx, "forecast.composite", trace.WithAttributes(
		attribute.String("date", date.String()),
	))
	defer span.End()

	domains := domain.Domains()
	results := make([]domain.Prediction, len(domains))

	g, gctx := errgroup.WithContext(ctx)
	for i, d := range domains {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := s.Predict(gctx, d, date)
			if err != nil {
				return err
			}
			results[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return domain.CompositeAssessment{}, fmt.Errorf("assess %s: %w", date, err)
	}

	a := domain.Assess(date, results[0], results[1], results[2], results[3])
	span.SetAttributes(
		attribute.Int("score", a.Score),
		attribute.String("outcome", string(a.Outcome)),
	)
	s.metrics.Assessments.WithLabelValues(string(a.Outcome)).Inc()
	s.logger.Debug("assessment computed",
		"date", date,
		"score", a.Score,
		"outcome", a.Outcome,
		"forecast", a.Forecast,
	)
	return a, nil
}

// Advice produces health guidance for a population group.
func (s *Service) Advice(ctx context.Context, group domain.HealthGroup, date domain.CalendarDate) (domain.HealthAdvice, error) {
	_, span := s.tracer.Start(ctx, "forecast.advice", trace.WithAttributes(
		attribute.String("group", string(group)),
		attribute.String("date", date.String()),
	))
	defer span.End()

	if _, err := domain.ParseHealthGroup(string(group)); err != nil {
		return domain.HealthAdvice{}, err
	}
	return domain.Advise(group, date), nil
}
