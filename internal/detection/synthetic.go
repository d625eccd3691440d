package detection

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// SyntheticBackend draws a placeholder outcome uniformly from the plant's
// label set. Every outcome it produces is flagged as a fallback.
type SyntheticBackend struct {
	tag string
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSyntheticBackend creates a synthetic backend reporting tag as its model.
// A nil src draws from the global generator.
func NewSyntheticBackend(tag string, src rand.Source) *SyntheticBackend {
	s := &SyntheticBackend{tag: tag}
	if src != nil {
		s.rng = rand.New(src)
	}
	return s
}

func (s *SyntheticBackend) Name() string {
	return s.tag
}

func (s *SyntheticBackend) Classify(ctx context.Context, image []byte, plant PlantType) (Outcome, error) {
	if !plant.Valid() {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnsupportedPlant, plant)
	}
	return s.Generate(plant), nil
}

// Generate returns a fallback outcome for a supported plant type.
func (s *SyntheticBackend) Generate(plant PlantType) Outcome {
	labels := fallbackLabels[plant]
	band := fallbackBands[plant]

	idx, jitter := s.draw(len(labels))

	return Outcome{
		DiseaseLabel: labels[idx],
		Confidence:   band.min + jitter*(band.max-band.min),
		ProcessedAt:  time.Now().UTC(),
		ModelUsed:    s.tag,
		IsFallback:   true,
	}
}

func (s *SyntheticBackend) draw(n int) (int, float64) {
	if s.rng == nil {
		return rand.IntN(n), rand.Float64()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n), s.rng.Float64()
}
