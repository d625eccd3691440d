package analysis

import (
	"context"
	"io"

	"github.com/JaimeStill/canopy/internal/detection"
)

// Classifier produces a detection outcome for an image.
type Classifier interface {
	Classify(ctx context.Context, image []byte, plant detection.PlantType) (detection.Outcome, error)
}

// System defines the public contract for image analysis.
type System interface {
	Handler(maxUploadSize int64, maxBatchSize int) *Handler

	Analyze(ctx context.Context, cmd Command) (*Analysis, error)
	AnalyzeBatch(ctx context.Context, cmds []Command) []BatchResult
	Image(ctx context.Context, key string) (io.ReadCloser, error)
}
