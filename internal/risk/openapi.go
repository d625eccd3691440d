package risk

import "github.com/JaimeStill/canopy/pkg/openapi"

var spec = struct {
	Assessment *openapi.Operation
	Forecast   *openapi.Operation
}{
	Assessment: &openapi.Operation{
		Summary:     "Assess disease risk",
		Description: "Scores one weather observation. The risk model answers when configured; the rule table answers otherwise.",
		Tags:        []string{"risk"},
		RequestBody: openapi.RequestBodyJSON("Conditions", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Risk assessment", "Assessment"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Forecast: &openapi.Operation{
		Summary:     "Assess a forecast",
		Description: "Scores up to 16 observations and reports the highest level.",
		Tags:        []string{"risk"},
		RequestBody: openapi.RequestBodyJSON("ForecastRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("One assessment per observation, in request order", "ForecastResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
}

func levelSchema() *openapi.Schema {
	return &openapi.Schema{Type: "string", Enum: []any{Low, Medium, High}}
}

// Schemas returns the component schemas of risk requests and responses.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Conditions": {
			Type:     "object",
			Required: []string{"temperature", "humidity"},
			Properties: map[string]*openapi.Schema{
				"temperature": {
					Type: "number", Description: "Degrees Celsius",
					Minimum: openapi.Float(MinTemperature), Maximum: openapi.Float(MaxTemperature),
				},
				"humidity": {
					Type: "number", Description: "Relative humidity percent",
					Minimum: openapi.Float(MinHumidity), Maximum: openapi.Float(MaxHumidity),
				},
				"rain":       {Type: "number", Default: 0},
				"windSpeed":  {Type: "number", Default: 0},
				"cloudiness": {Type: "number", Default: 0},
			},
		},
		"Assessment": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"riskLevel":   levelSchema(),
				"temperature": {Type: "number"},
				"humidity":    {Type: "number"},
				"description": {Type: "string"},
				"source":      {Type: "string", Enum: []any{SourceModel, SourceHeuristic}},
				"probability": {Type: "number", Description: "Present when reported by the model"},
			},
		},
		"ForecastRequest": {
			Type:     "object",
			Required: []string{"observations"},
			Properties: map[string]*openapi.Schema{
				"observations": openapi.ArrayOf("Conditions"),
			},
		},
		"ForecastResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"assessments": openapi.ArrayOf("Assessment"),
				"highest":     levelSchema(),
			},
		},
	}
}
