package analysis

import (
	"github.com/JaimeStill/canopy/internal/detection"
	"github.com/JaimeStill/canopy/pkg/openapi"
)

var plantTypeSchema = &openapi.Schema{
	Type:    "string",
	Enum:    []any{detection.Tomato, detection.Corn},
	Default: detection.Tomato,
}

var spec = struct {
	Analyze *openapi.Operation
	Batch   *openapi.Operation
	Image   *openapi.Operation
}{
	Analyze: &openapi.Operation{
		Summary:     "Analyze image",
		Description: "Classifies one leaf image and resolves the detected disease. Classifier failures produce a flagged fallback result.",
		Tags:        []string{"analysis"},
		RequestBody: openapi.RequestBodyMultipart(&openapi.Schema{
			Type:     "object",
			Required: []string{"image"},
			Properties: map[string]*openapi.Schema{
				"image":     {Type: "string", Format: "binary"},
				"plantType": plantTypeSchema,
			},
		}),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Analysis", "Analysis"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("PayloadTooLarge"),
		},
	},
	Batch: &openapi.Operation{
		Summary:     "Analyze images",
		Description: "Classifies up to max_batch_size images. Each file reports its own analysis or error.",
		Tags:        []string{"analysis"},
		RequestBody: openapi.RequestBodyMultipart(&openapi.Schema{
			Type:     "object",
			Required: []string{"images"},
			Properties: map[string]*openapi.Schema{
				"images":    {Type: "array", Items: &openapi.Schema{Type: "string", Format: "binary"}},
				"plantType": plantTypeSchema,
			},
		}),
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Per-file results",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: openapi.ArrayOf("BatchResult")},
				},
			},
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("PayloadTooLarge"),
		},
	},
	Image: &openapi.Operation{
		Summary: "Download archived image",
		Tags:    []string{"analysis"},
		Parameters: []*openapi.Parameter{
			openapi.PathParam("key", "", "Blob key below analyses/"),
		},
		Responses: map[int]*openapi.Response{
			200: {Description: "Image bytes"},
			404: openapi.ResponseRef("NotFound"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
}

// Schemas returns the component schemas of analysis responses.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Candidate": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"label": {Type: "string"},
				"score": {Type: "number"},
			},
		},
		"Outcome": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"diseaseLabel": {Type: "string"},
				"confidence":   {Type: "number", Minimum: openapi.Float(0), Maximum: openapi.Float(1)},
				"processedAt":  {Type: "string", Format: "date-time"},
				"modelUsed":    {Type: "string", Example: detection.TagTomatoModel},
				"isFallback":   {Type: "boolean"},
				"rawLabel":     {Type: "string", Description: "Null for fallback outcomes"},
				"top3":         openapi.ArrayOf("Candidate"),
			},
		},
		"Recommendations": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"immediate": {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"longTerm":  {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
		"Result": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"detection":       openapi.SchemaRef("Outcome"),
				"canonicalId":     {Type: "string", Description: "Canonicalized classifier label"},
				"diseaseId":       {Type: "string"},
				"disease":         openapi.SchemaRef("Disease"),
				"recommendations": openapi.SchemaRef("Recommendations"),
			},
		},
		"Analysis": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":        {Type: "string", Format: "uuid"},
				"plantType": plantTypeSchema,
				"image": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"filename":    {Type: "string"},
						"contentType": {Type: "string"},
						"sizeBytes":   {Type: "integer"},
						"key":         {Type: "string", Description: "Absent when the image was not archived"},
					},
				},
				"result":    openapi.SchemaRef("Result"),
				"createdAt": {Type: "string", Format: "date-time"},
			},
		},
		"BatchResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"filename": {Type: "string"},
				"analysis": openapi.SchemaRef("Analysis"),
				"error":    {Type: "string"},
			},
		},
	}
}
