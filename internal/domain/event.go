package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrMalformedRequest is returned when a raw message is not a valid assessment request.
var ErrMalformedRequest = errors.New("malformed assessment request")

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// AssessmentRequest asks for the composite assessment of one date.
type AssessmentRequest struct {
	ID   string
	Date CalendarDate
}

// AssessmentEvent is a computed assessment ready for the sink topic.
type AssessmentEvent struct {
	CompositeAssessment
	RequestID   string    `json:"request_id"`
	ProcessedAt time.Time `json:"processed_at"`
}

type requestPayload struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

// ParseAssessmentRequest decodes a {"date":"YYYY-MM-DD"} message. The optional
// "id" field is carried through to the output event.
func ParseAssessmentRequest(raw RawEvent) (AssessmentRequest, error) {
	var p requestPayload
	if err := json.Unmarshal(raw.Value, &p); err != nil {
		return AssessmentRequest{}, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	if p.Date == "" {
		return AssessmentRequest{}, fmt.Errorf("%w: missing date", ErrMalformedRequest)
	}
	date, err := ParseDate(p.Date)
	if err != nil {
		return AssessmentRequest{}, err
	}
	return AssessmentRequest{ID: p.ID, Date: date}, nil
}

// NewAssessmentEvent stamps an assessment with its request ID and the current time.
func NewAssessmentEvent(requestID string, a CompositeAssessment) AssessmentEvent {
	return AssessmentEvent{
		CompositeAssessment: a,
		RequestID:           requestID,
		ProcessedAt:         clock.Now().UTC(),
	}
}
