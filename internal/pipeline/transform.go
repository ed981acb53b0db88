package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/weather-guardians/internal/domain"
	"github.com/couchcryptid/weather-guardians/internal/forecast"
	"github.com/google/uuid"
)

// AssessmentTransformer implements Transformer by running the composite risk
// assessment for each requested date.
type AssessmentTransformer struct {
	assessor forecast.Assessor
	logger   *slog.Logger
}

// NewTransformer creates an AssessmentTransformer backed by assessor.
func NewTransformer(assessor forecast.Assessor, logger *slog.Logger) *AssessmentTransformer {
	return &AssessmentTransformer{
		assessor: assessor,
		logger:   logger,
	}
}

// Transform decodes the request and computes its assessment. Requests without
// an id are assigned a random one.
func (t *AssessmentTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.AssessmentEvent, error) {
	req, err := domain.ParseAssessmentRequest(raw)
	if err != nil {
		return domain.AssessmentEvent{}, err
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	a, err := t.assessor.Composite(ctx, req.Date)
	if err != nil {
		return domain.AssessmentEvent{}, err
	}

	t.logger.Debug("assessment request processed", "request_id", req.ID, "date", req.Date, "outcome", a.Outcome)
	return domain.NewAssessmentEvent(req.ID, a), nil
}
