package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/weather-guardians/internal/domain"
	"github.com/couchcryptid/weather-guardians/internal/observability"
)

// BatchExtractor reads up to batchSize assessment requests from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer turns a raw request into a computed assessment.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.AssessmentEvent, error)
}

// BatchLoader writes multiple assessments to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.AssessmentEvent) error
}

// ErrNotReady is reported until the first assessment reaches the sink.
var ErrNotReady = errors.New("pipeline has not published an assessment yet")

// rejection decides what happens to a request the transformer refused.
type rejection int

const (
	// rejectShutdown leaves the request uncommitted for the next consumer.
	rejectShutdown rejection = iota
	// rejectInvalid marks a request that can never be assessed.
	rejectInvalid
	// rejectFailed marks a well-formed request whose assessment errored.
	rejectFailed
)

func (r rejection) String() string {
	switch r {
	case rejectInvalid:
		return "invalid"
	case rejectFailed:
		return "failed"
	default:
		return "shutdown"
	}
}

// classifyRejection inspects a transform error. Only an ended pipeline context
// counts as shutdown; a context error raised inside a live pipeline is a
// failed assessment.
func classifyRejection(ctx context.Context, err error) rejection {
	switch {
	case ctx.Err() != nil:
		return rejectShutdown
	case errors.Is(err, domain.ErrMalformedRequest), errors.Is(err, domain.ErrInvalidDate):
		return rejectInvalid
	default:
		return rejectFailed
	}
}

// Pipeline consumes assessment requests, computes them and publishes the
// results, committing each request once its outcome is settled.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	published   atomic.Int64
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns ErrNotReady until at least one assessment has been
// published.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.Published() == 0 {
		return ErrNotReady
	}
	return nil
}

// Published is the number of assessments written to the sink so far.
func (p *Pipeline) Published() int64 {
	return p.published.Load()
}

// Run executes the batch loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	backoff := initialBackoff
	for ctx.Err() == nil {
		if !p.cycle(ctx, &backoff) {
			break
		}
	}
	p.logger.Info("pipeline stopping", "reason", context.Cause(ctx), "published", p.Published())
	return nil
}

// cycle extracts one batch, assesses it and publishes the results. Returns
// false once the pipeline should stop.
func (p *Pipeline) cycle(ctx context.Context, backoff *time.Duration) bool {
	start := time.Now()

	requests, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	switch {
	case ctx.Err() != nil:
		return false
	case err != nil:
		p.logger.Error("extract batch failed", "error", err)
		return p.wait(ctx, backoff)
	case len(requests) == 0:
		return true
	}

	p.metrics.MessagesConsumed.Add(float64(len(requests)))
	p.metrics.BatchSize.Observe(float64(len(requests)))
	*backoff = initialBackoff

	assessed, accepted, ok := p.assess(ctx, requests)
	if !ok {
		return false
	}
	if len(assessed) == 0 {
		return true
	}

	if err := p.loader.LoadBatch(ctx, assessed); err != nil {
		p.logger.Error("publish assessments failed", "error", err, "batch_size", len(assessed))
		return p.wait(ctx, backoff)
	}
	p.metrics.MessagesProduced.Add(float64(len(assessed)))
	p.published.Add(int64(len(assessed)))
	for _, raw := range accepted {
		p.commit(ctx, raw)
	}

	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	return true
}

// assess transforms every request in the batch. Rejected requests are
// committed immediately unless the pipeline is shutting down, in which case
// ok is false and nothing further is committed.
func (p *Pipeline) assess(ctx context.Context, requests []domain.RawEvent) (assessed []domain.AssessmentEvent, accepted []domain.RawEvent, ok bool) {
	assessed = make([]domain.AssessmentEvent, 0, len(requests))
	accepted = make([]domain.RawEvent, 0, len(requests))

	for _, raw := range requests {
		event, err := p.transformer.Transform(ctx, raw)
		if err == nil {
			assessed = append(assessed, event)
			accepted = append(accepted, raw)
			continue
		}

		reason := classifyRejection(ctx, err)
		if reason == rejectShutdown {
			return nil, nil, false
		}
		p.reject(ctx, raw, reason, err)
	}
	return assessed, accepted, true
}

// reject records and commits a request that will not produce an assessment.
func (p *Pipeline) reject(ctx context.Context, raw domain.RawEvent, reason rejection, err error) {
	attrs := []any{
		"error", err,
		"reason", reason.String(),
		"topic", raw.Topic,
		"partition", raw.Partition,
		"offset", raw.Offset,
	}
	if reason == rejectFailed {
		p.logger.Error("assessment failed, skipping request", attrs...)
	} else {
		p.logger.Warn("invalid assessment request, skipping", attrs...)
	}
	p.metrics.TransformErrors.WithLabelValues(reason.String()).Inc()
	p.commit(ctx, raw)
}

// wait sleeps for the current backoff and doubles it. Returns false if the
// context ended first.
func (p *Pipeline) wait(ctx context.Context, backoff *time.Duration) bool {
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

func (p *Pipeline) commit(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

// Retry delays after extract or publish failures: 200ms doubling up to 5s.
const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

func nextBackoff(current, limit time.Duration) time.Duration {
	next := current * 2
	if next > limit {
		return limit
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
