package risk

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidConditions   = errors.New("invalid weather parameters")
	ErrTooManyObservations = errors.New("too many observations")
)

// Risk model failure classes. The Assessor resolves each of them to the heuristic.
var (
	ErrModelLaunch   = errors.New("risk model launch failed")
	ErrModelRuntime  = errors.New("risk model runtime failure")
	ErrModelResponse = errors.New("invalid risk model response")
)

// MapHTTPStatus maps risk errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidConditions) || errors.Is(err, ErrTooManyObservations) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
