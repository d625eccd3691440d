package detection

import (
	"errors"
	"net/http"
)

// Invalid-input errors. These are the only errors Dispatcher.Classify returns.
var (
	ErrUnsupportedPlant = errors.New("unsupported plant type")
	ErrEmptyImage       = errors.New("image is empty")
)

// Backend failure classes. The dispatcher resolves each of them to a fallback outcome.
var (
	ErrNotConfigured   = errors.New("classifier not configured")
	ErrLaunch          = errors.New("classifier launch failed")
	ErrRuntime         = errors.New("classifier runtime failure")
	ErrMalformedOutput = errors.New("malformed classifier output")
)

// Category names the failure class of a backend error for logging.
func Category(err error) string {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return "configuration"
	case errors.Is(err, ErrLaunch):
		return "launch"
	case errors.Is(err, ErrRuntime):
		return "runtime"
	case errors.Is(err, ErrMalformedOutput):
		return "malformed_output"
	}
	return "unknown"
}

// MapHTTPStatus maps detection errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnsupportedPlant) || errors.Is(err, ErrEmptyImage) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
