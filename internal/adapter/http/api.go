package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/couchcryptid/weather-guardians/internal/domain"
)

// composite is the pseudo-domain that returns the full risk assessment.
const composite = "composite"

// Forecaster is the read side of the forecast service.
type Forecaster interface {
	Today() domain.CalendarDate
	Predict(ctx context.Context, d domain.Domain, date domain.CalendarDate) (domain.Prediction, error)
	Composite(ctx context.Context, date domain.CalendarDate) (domain.CompositeAssessment, error)
	Advice(ctx context.Context, group domain.HealthGroup, date domain.CalendarDate) (domain.HealthAdvice, error)
}

// dateResolver extracts the requested calendar date from a request.
type dateResolver func(api Forecaster, r *http.Request) (domain.CalendarDate, error)

func todayDate(api Forecaster, _ *http.Request) (domain.CalendarDate, error) {
	return api.Today(), nil
}

func pathDate(_ Forecaster, r *http.Request) (domain.CalendarDate, error) {
	return domain.ParseDate(r.PathValue("date"))
}

func partsDate(_ Forecaster, r *http.Request) (domain.CalendarDate, error) {
	var parts [3]int
	for i, name := range []string{"year", "month", "day"} {
		n, err := strconv.Atoi(r.PathValue(name))
		if err != nil {
			return domain.CalendarDate{}, fmt.Errorf("%w: %s %q", domain.ErrInvalidDate, name, r.PathValue(name))
		}
		parts[i] = n
	}
	return domain.NewDate(parts[0], parts[1], parts[2])
}

func (s *Server) handlePrediction(resolve dateResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := resolve(s.api, r)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		name := r.PathValue("domain")
		if name == composite {
			a, err := s.api.Composite(r.Context(), date)
			if err != nil {
				s.fail(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, a)
			return
		}

		d, err := domain.ParseDomain(name)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		p, err := s.api.Predict(r.Context(), d, date)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func (s *Server) handleAdvice(resolve dateResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		group, err := domain.ParseHealthGroup(r.PathValue("group"))
		if err != nil {
			s.fail(w, r, err)
			return
		}
		date, err := resolve(s.api, r)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		advice, err := s.api.Advice(r.Context(), group, date)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, advice)
	}
}

// fail maps domain errors onto HTTP statuses.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDate), errors.Is(err, domain.ErrUnknownHealthGroup):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, domain.ErrUnknownDomain):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, err)
	default:
		s.logger.Error("api request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}
