package analysis

import (
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".heic": "image/heic",
}

// ValidateImage accepts data declared as image/*, named with a known image
// extension, or sniffed as an image. It returns the resolved content type.
func ValidateImage(filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrInvalidImage)
	}

	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if strings.HasPrefix(contentType, "image/") {
		return contentType, nil
	}

	sniffed := http.DetectContentType(data)
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed, nil
	}

	if ct, ok := imageTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct, nil
	}

	return "", fmt.Errorf("%w: %s", ErrInvalidImage, filename)
}

func contentTypeForKey(key string) string {
	if ct, ok := imageTypes[strings.ToLower(filepath.Ext(key))]; ok {
		return ct
	}
	return "application/octet-stream"
}

const keyPrefix = "analyses/"

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("%s%s/%s", keyPrefix, id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "/" || name == "" {
		name = "image"
	}
	return url.PathEscape(name)
}
