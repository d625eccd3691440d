package diseases

import "github.com/JaimeStill/canopy/pkg/openapi"

var spec = struct {
	List *openapi.Operation
	Find *openapi.Operation
}{
	List: &openapi.Operation{
		Summary:     "List diseases",
		Description: "Returns a summary of every disease in the knowledge base.",
		Tags:        []string{"diseases"},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Disease summaries", "DiseaseList"),
		},
	},
	Find: &openapi.Operation{
		Summary: "Get disease",
		Tags:    []string{"diseases"},
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "", "Canonical disease ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Disease record", "Disease"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func stringList(desc string) *openapi.Schema {
	return &openapi.Schema{Type: "array", Description: desc, Items: &openapi.Schema{Type: "string"}}
}

// Schemas returns the component schemas of disease responses.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Disease": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":             {Type: "string", Example: "late_blight"},
				"name":           {Type: "string", Example: "Late Blight"},
				"scientificName": {Type: "string", Description: "Null for healthy records"},
				"description":    {Type: "string"},
				"symptoms":       stringList("Observable symptoms"),
				"causes":         stringList("Conditions that cause the disease"),
				"treatment":      stringList("Ordered treatment steps"),
				"prevention":     stringList("Ordered prevention steps"),
			},
		},
		"DiseaseSummary": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":             {Type: "string"},
				"name":           {Type: "string"},
				"scientificName": {Type: "string"},
				"description":    {Type: "string"},
			},
		},
		"DiseaseList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"diseases": openapi.ArrayOf("DiseaseSummary"),
				"total":    {Type: "integer"},
			},
		},
	}
}
