package detection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/JaimeStill/canopy/pkg/formatting"
)

// DefaultConfidence substitutes for a missing or non-numeric confidence value.
const DefaultConfidence = 0.7

const maxCandidates = 3

// response is the record a classifier prints on standard output.
// Fields stay raw so each one can be type-checked individually.
type response struct {
	PredictedClass json.RawMessage `json:"predicted_class"`
	Confidence     json.RawMessage `json:"confidence"`
	Top3           json.RawMessage `json:"top3"`
	Error          json.RawMessage `json:"error"`
	Message        json.RawMessage `json:"message"`
}

type rawCandidate struct {
	Label *string  `json:"label"`
	Prob  *float64 `json:"prob"`
	Score *float64 `json:"score"`
}

type prediction struct {
	label      string
	confidence float64
	top3       []Candidate
}

// decodeResponse parses and validates classifier stdout.
// Every violation is reported as ErrMalformedOutput.
func decodeResponse(stdout []byte) (prediction, error) {
	resp, err := formatting.Parse[response](string(stdout))
	if err != nil {
		return prediction{}, fmt.Errorf("%w: %w", ErrMalformedOutput, err)
	}

	if truthy(resp.Error) {
		return prediction{}, fmt.Errorf(
			"%w: classifier reported error %s %s",
			ErrMalformedOutput, resp.Error, resp.Message,
		)
	}

	label, err := decodeLabel(resp.PredictedClass)
	if err != nil {
		return prediction{}, err
	}

	confidence, err := decodeConfidence(resp.Confidence)
	if err != nil {
		return prediction{}, err
	}

	top3, err := decodeCandidates(resp.Top3)
	if err != nil {
		return prediction{}, err
	}

	return prediction{
		label:      label,
		confidence: confidence,
		top3:       top3,
	}, nil
}

func decodeLabel(raw json.RawMessage) (string, error) {
	if isAbsent(raw) {
		return "", fmt.Errorf("%w: predicted_class missing", ErrMalformedOutput)
	}

	var label string
	if err := json.Unmarshal(raw, &label); err != nil {
		return "", fmt.Errorf("%w: predicted_class is not a string", ErrMalformedOutput)
	}
	if strings.TrimSpace(label) == "" {
		return "", fmt.Errorf("%w: predicted_class is empty", ErrMalformedOutput)
	}

	return label, nil
}

// decodeConfidence accepts a number or a numeric string. Missing and
// non-numeric values become DefaultConfidence; numbers outside [0,1] are rejected.
func decodeConfidence(raw json.RawMessage) (float64, error) {
	if isAbsent(raw) {
		return DefaultConfidence, nil
	}

	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return DefaultConfidence, nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return DefaultConfidence, nil
		}
		value = parsed
	}

	if !inUnitRange(value) {
		return 0, fmt.Errorf("%w: confidence %v outside [0,1]", ErrMalformedOutput, value)
	}

	return value, nil
}

func decodeCandidates(raw json.RawMessage) ([]Candidate, error) {
	if isAbsent(raw) {
		return nil, nil
	}

	var entries []rawCandidate
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: top3 is not a list of candidates", ErrMalformedOutput)
	}

	out := make([]Candidate, 0, min(len(entries), maxCandidates))
	for i, e := range entries {
		if i == maxCandidates {
			break
		}
		if e.Label == nil || strings.TrimSpace(*e.Label) == "" {
			return nil, fmt.Errorf("%w: top3[%d] missing label", ErrMalformedOutput, i)
		}

		score := e.Prob
		if score == nil {
			score = e.Score
		}
		if score == nil || !inUnitRange(*score) {
			return nil, fmt.Errorf("%w: top3[%d] score missing or outside [0,1]", ErrMalformedOutput, i)
		}

		out = append(out, Candidate{Label: *e.Label, Score: *score})
	}

	return out, nil
}

func inUnitRange(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// truthy reports whether raw holds a value other than null, false, 0 or "".
func truthy(raw json.RawMessage) bool {
	if isAbsent(raw) {
		return false
	}
	switch string(raw) {
	case "false", "0", `""`:
		return false
	}
	return true
}
