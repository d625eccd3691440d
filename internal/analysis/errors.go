package analysis

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/canopy/internal/detection"
	"github.com/JaimeStill/canopy/pkg/storage"
)

var (
	ErrInvalidImage    = errors.New("only image files are allowed")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrNoImages        = errors.New("no image files provided")
	ErrTooManyImages   = errors.New("too many image files")
	ErrInvalidKey      = errors.New("invalid image key")
	ErrArchiveDisabled = errors.New("image archive not configured")
)

// MapHTTPStatus maps analysis errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidImage),
		errors.Is(err, ErrNoImages),
		errors.Is(err, ErrTooManyImages),
		errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, ErrArchiveDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, detection.ErrUnsupportedPlant), errors.Is(err, detection.ErrEmptyImage):
		return detection.MapHTTPStatus(err)
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrEmptyKey),
		errors.Is(err, storage.ErrInvalidKey):
		return storage.MapHTTPStatus(err)
	}
	return http.StatusInternalServerError
}
