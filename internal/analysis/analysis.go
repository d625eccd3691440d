// Package analysis turns uploaded leaf images into disease analyses. It runs
// the detection dispatcher, assembles the result against the disease
// registry and archives the original image to blob storage.
package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/internal/detection"
)

// Image describes the uploaded image of an analysis. Key is empty when the
// image was not archived.
type Image struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
	Key         string `json:"key,omitempty"`
}

// Analysis is the response record for one analyzed image.
type Analysis struct {
	ID        uuid.UUID           `json:"id"`
	PlantType detection.PlantType `json:"plantType"`
	Image     Image               `json:"image"`
	Result    Result              `json:"result"`
	CreatedAt time.Time           `json:"createdAt"`
}

// Command carries one image to analyze.
type Command struct {
	Data        []byte
	Filename    string
	ContentType string
	PlantType   detection.PlantType
}

// BatchResult reports the outcome of a single file within a batch analysis.
// On success, Analysis is populated and Error is empty.
type BatchResult struct {
	Analysis *Analysis `json:"analysis,omitempty"`
	Filename string    `json:"filename"`
	Error    string    `json:"error,omitempty"`
}
