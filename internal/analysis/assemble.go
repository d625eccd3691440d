package analysis

import (
	"github.com/JaimeStill/canopy/internal/detection"
	"github.com/JaimeStill/canopy/internal/diseases"
)

// MaxRecommendations caps each recommendation list.
const MaxRecommendations = 3

// Recommendations are the leading treatment and prevention steps of the
// resolved disease record.
type Recommendations struct {
	Immediate []string `json:"immediate"`
	LongTerm  []string `json:"longTerm"`
}

// Result joins a detection outcome with its disease record. CanonicalID is
// the canonicalized classifier label and differs from DiseaseID when the
// label is absent from the registry.
type Result struct {
	Detection       detection.Outcome `json:"detection"`
	CanonicalID     string            `json:"canonicalId"`
	DiseaseID       string            `json:"diseaseId"`
	Disease         diseases.Record   `json:"disease"`
	Recommendations Recommendations   `json:"recommendations"`
}

// Assemble canonicalizes the outcome label, resolves it against registry
// (healthy on miss) and derives recommendations. It has no side effects.
func Assemble(outcome detection.Outcome, registry *diseases.Registry) Result {
	id, rec := registry.Resolve(outcome.DiseaseLabel)

	return Result{
		Detection:   outcome,
		CanonicalID: id,
		DiseaseID:   rec.ID,
		Disease:     rec,
		Recommendations: Recommendations{
			Immediate: leading(rec.Treatment, MaxRecommendations),
			LongTerm:  leading(rec.Prevention, MaxRecommendations),
		},
	}
}

func leading(s []string, n int) []string {
	out := make([]string, min(len(s), n))
	copy(out, s)
	return out
}
