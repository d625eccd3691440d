package diseases

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound      = errors.New("disease not found")
	ErrInvalidRecord = errors.New("invalid disease record")
	ErrNoDefault     = errors.New("registry requires a healthy record")
)

// MapHTTPStatus maps disease domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
