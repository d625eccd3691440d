// Package detection dispatches plant images to per-plant classifier programs
// and degrades to clearly flagged synthetic outcomes when a classifier is
// absent, fails, or returns output that does not match the expected schema.
package detection

import (
	"context"
	"time"
)

// Default model tags reported for genuine classifier output.
const (
	TagTomatoModel = "tomato_keras"
	TagCornModel   = "corn_vgg16"
	// TagUnconfigured marks fallback outcomes for plants with no classifier binding.
	TagUnconfigured = "none"
)

// Candidate is a secondary prediction reported by a classifier.
type Candidate struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Outcome is the result of classifying one image. It is built once per
// request and never modified afterwards.
type Outcome struct {
	DiseaseLabel string      `json:"diseaseLabel"`
	Confidence   float64     `json:"confidence"`
	ProcessedAt  time.Time   `json:"processedAt"`
	ModelUsed    string      `json:"modelUsed"`
	IsFallback   bool        `json:"isFallback"`
	RawLabel     *string     `json:"rawLabel"`
	Top3         []Candidate `json:"top3"`
}

// Backend produces an Outcome for an image. Implementations return an error
// when they cannot produce a trustworthy result and log the failure details
// themselves.
type Backend interface {
	Name() string
	Classify(ctx context.Context, image []byte, plant PlantType) (Outcome, error)
}
