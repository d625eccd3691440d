// Package risk scores how favorable weather conditions are for plant disease
// outbreaks. An external risk model is consulted when configured; a fixed
// rule table answers whenever the model is absent or its response is invalid.
package risk

import (
	"context"
	"fmt"
	"math"
)

// Level summarizes outbreak risk.
type Level string

const (
	Low    Level = "Low"
	Medium Level = "Medium"
	High   Level = "High"
)

// Valid reports whether l is a known risk level.
func (l Level) Valid() bool {
	switch l {
	case Low, Medium, High:
		return true
	}
	return false
}

// Source tags which path produced an Assessment.
type Source string

const (
	SourceModel     Source = "model"
	SourceHeuristic Source = "heuristic"
)

// Valid reports whether s is a known source tag.
func (s Source) Valid() bool {
	return s == SourceModel || s == SourceHeuristic
}

// Input bounds accepted from clients.
const (
	MinTemperature = -50.0
	MaxTemperature = 60.0
	MinHumidity    = 0.0
	MaxHumidity    = 100.0
)

// Extras are the optional weather observations forwarded to the risk model.
type Extras struct {
	Rain       float64 `json:"rain"`
	WindSpeed  float64 `json:"windSpeed"`
	Cloudiness float64 `json:"cloudiness"`
}

// Conditions is a complete weather observation.
type Conditions struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Extras
}

// Observation is a client supplied weather observation. Temperature and
// Humidity are pointers so an absent field is distinguishable from zero.
type Observation struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	Extras
}

// Conditions checks that both required readings are present and within the
// accepted client bounds.
func (o Observation) Conditions() (Conditions, error) {
	if o.Temperature == nil {
		return Conditions{}, fmt.Errorf("%w: temperature is required", ErrInvalidConditions)
	}
	if o.Humidity == nil {
		return Conditions{}, fmt.Errorf("%w: humidity is required", ErrInvalidConditions)
	}

	c := Conditions{
		Temperature: *o.Temperature,
		Humidity:    *o.Humidity,
		Extras:      o.Extras,
	}
	if err := c.Validate(); err != nil {
		return Conditions{}, err
	}
	return c, nil
}

// Validate checks Conditions against the accepted client bounds.
func (c Conditions) Validate() error {
	if math.IsNaN(c.Temperature) || c.Temperature < MinTemperature || c.Temperature > MaxTemperature {
		return fmt.Errorf(
			"%w: temperature must be between %g and %g degrees Celsius",
			ErrInvalidConditions, MinTemperature, MaxTemperature,
		)
	}
	if math.IsNaN(c.Humidity) || c.Humidity < MinHumidity || c.Humidity > MaxHumidity {
		return fmt.Errorf(
			"%w: humidity must be between %g and %g percent",
			ErrInvalidConditions, MinHumidity, MaxHumidity,
		)
	}
	return nil
}

// Assessment is a risk verdict for one observation. Temperature and
// Humidity echo the inputs.
type Assessment struct {
	RiskLevel   Level    `json:"riskLevel"`
	Temperature float64  `json:"temperature"`
	Humidity    float64  `json:"humidity"`
	Description string   `json:"description"`
	Source      Source   `json:"source"`
	Probability *float64 `json:"probability,omitempty"`
}

// Backend produces an Assessment for a set of conditions. Implementations
// log their own failure details.
type Backend interface {
	Name() string
	Assess(ctx context.Context, c Conditions) (Assessment, error)
}

var modelDescriptions = map[Level]string{
	High:   "Weather conditions are highly favorable for disease development.",
	Medium: "Moderate conditions may support some disease development. Monitor plants closely.",
	Low:    "Conditions are not favorable for disease development.",
}

var heuristicDescriptions = map[Level]string{
	High:   "High humidity and moderate temperatures create ideal conditions for fungal diseases like blight.",
	Medium: modelDescriptions[Medium],
	Low:    modelDescriptions[Low],
}
