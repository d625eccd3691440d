package reports

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound      = errors.New("report not found")
	ErrDuplicate     = errors.New("report already exists")
	ErrInvalidReport = errors.New("invalid report data")
	ErrInvalidID     = errors.New("invalid report id")
)

// MapHTTPStatus maps report errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidReport) || errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
