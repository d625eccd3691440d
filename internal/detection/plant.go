package detection

import (
	"fmt"
	"strings"
)

// PlantType selects the classifier binding and fallback label set.
type PlantType string

const (
	Tomato PlantType = "tomato"
	Corn   PlantType = "corn"
)

// PlantTypes lists every supported plant type.
var PlantTypes = []PlantType{Tomato, Corn}

var fallbackLabels = map[PlantType][]string{
	Tomato: {
		"healthy",
		"early_blight",
		"late_blight",
		"bacterial_spot",
		"mosaic_virus",
		"yellow_virus",
		"leaf_mold",
		"septoria_leaf_spot",
	},
	Corn: {
		"corn_healthy",
		"corn_common_rust",
		"corn_gray_leaf_spot",
		"corn_northern_leaf_blight",
	},
}

type confidenceBand struct {
	min, max float64
}

var fallbackBands = map[PlantType]confidenceBand{
	Tomato: {min: 0.6, max: 0.6},
	Corn:   {min: 0.75, max: 0.95},
}

// ParsePlantType parses a plant type selector. An empty value selects tomato.
func ParsePlantType(s string) (PlantType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Tomato, nil
	}
	p := PlantType(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPlant, s)
	}
	return p, nil
}

// Valid reports whether p is a supported plant type.
func (p PlantType) Valid() bool {
	_, ok := fallbackLabels[p]
	return ok
}

// Labels returns a copy of the plant's fallback label set.
func (p PlantType) Labels() []string {
	labels := fallbackLabels[p]
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// FallbackTag is the model tag reported when a configured classifier fails.
func (p PlantType) FallbackTag() string {
	return string(p) + "_fallback"
}

func (p PlantType) defaultModelTag() string {
	switch p {
	case Tomato:
		return TagTomatoModel
	case Corn:
		return TagCornModel
	}
	return string(p) + "_model"
}
