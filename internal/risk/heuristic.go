package risk

import "context"

// Heuristic is the deterministic rule table:
//
//	High   humidity > 70 and 15 <= temperature <= 30
//	Medium 50 <= humidity <= 70, or 10 <= temperature < 15, or 30 < temperature <= 35
//	Low    otherwise
type Heuristic struct{}

func (Heuristic) Name() string {
	return string(SourceHeuristic)
}

func (h Heuristic) Assess(_ context.Context, c Conditions) (Assessment, error) {
	return h.Evaluate(c.Temperature, c.Humidity), nil
}

// Evaluate applies the rule table.
func (Heuristic) Evaluate(temperature, humidity float64) Assessment {
	level := Low

	switch {
	case humidity > 70 && temperature >= 15 && temperature <= 30:
		level = High
	case (humidity >= 50 && humidity <= 70) ||
		(temperature >= 10 && temperature < 15) ||
		(temperature > 30 && temperature <= 35):
		level = Medium
	}

	return Assessment{
		RiskLevel:   level,
		Temperature: temperature,
		Humidity:    humidity,
		Description: heuristicDescriptions[level],
		Source:      SourceHeuristic,
	}
}
