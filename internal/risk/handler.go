package risk

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/canopy/pkg/handlers"
	"github.com/JaimeStill/canopy/pkg/routes"
)

// MaxObservations bounds a single forecast request.
const MaxObservations = 16

// ForecastRequest carries a series of observations to score.
type ForecastRequest struct {
	Observations []Observation `json:"observations"`
}

// ForecastResult holds one assessment per observation, in request order.
type ForecastResult struct {
	Assessments []Assessment `json:"assessments"`
	Highest     Level        `json:"highest"`
}

// Handler provides HTTP endpoints for risk assessment.
type Handler struct {
	assessor *Assessor
	logger   *slog.Logger
}

func NewHandler(assessor *Assessor, logger *slog.Logger) *Handler {
	return &Handler{
		assessor: assessor,
		logger:   logger.With("handler", "risk"),
	}
}

// Routes returns the route group definition for risk endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/risk",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/assessment", Handler: h.Assessment, OpenAPI: spec.Assessment},
			{Method: "POST", Pattern: "/forecast", Handler: h.Forecast, OpenAPI: spec.Forecast},
		},
	}
}

// Assessment scores a single observation.
func (h *Handler) Assessment(w http.ResponseWriter, r *http.Request) {
	var obs Observation
	if err := json.NewDecoder(r.Body).Decode(&obs); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	c, err := obs.Conditions()
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.assessor.AssessConditions(r.Context(), c))
}

// Forecast scores a series of observations concurrently.
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	var req ForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if len(req.Observations) == 0 {
		err := fmt.Errorf("%w: at least one observation required", ErrInvalidConditions)
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if len(req.Observations) > MaxObservations {
		err := fmt.Errorf("%w: %d exceeds limit of %d", ErrTooManyObservations, len(req.Observations), MaxObservations)
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	conditions := make([]Conditions, len(req.Observations))
	var errs []error
	for i, obs := range req.Observations {
		c, err := obs.Conditions()
		if err != nil {
			errs = append(errs, fmt.Errorf("observation %d: %w", i, err))
			continue
		}
		conditions[i] = c
	}
	if err := errors.Join(errs...); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	results := make([]Assessment, len(conditions))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(4)

	for i, c := range conditions {
		g.Go(func() error {
			results[i] = h.assessor.AssessConditions(ctx, c)
			return nil
		})
	}
	g.Wait()

	handlers.RespondJSON(w, http.StatusOK, ForecastResult{
		Assessments: results,
		Highest:     Highest(results),
	})
}

// Highest returns the most severe level among assessments, or Low when empty.
func Highest(assessments []Assessment) Level {
	highest := Low
	for _, a := range assessments {
		if rank(a.RiskLevel) > rank(highest) {
			highest = a.RiskLevel
		}
	}
	return highest
}

func rank(l Level) int {
	switch l {
	case High:
		return 2
	case Medium:
		return 1
	default:
		return 0
	}
}
