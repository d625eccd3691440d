package reports

import "github.com/JaimeStill/canopy/pkg/openapi"

var (
	idParam     = openapi.PathParam("id", "uuid", "Report ID")
	filterQuery = []*openapi.Parameter{
		openapi.QueryParam("page", "integer", "Page number", false),
		openapi.QueryParam("page_size", "integer", "Results per page", false),
		openapi.QueryParam("search", "string", "Matches disease name, disease ID or notes", false),
		openapi.QueryParam("sort", "string", "Sort fields, e.g. -CreatedAt", false),
		openapi.QueryParam("plant_type", "string", "Exact plant type", false),
		openapi.QueryParam("disease_id", "string", "Exact disease ID", false),
		openapi.QueryParam("disease_name", "string", "Disease name contains", false),
		openapi.QueryParam("risk_level", "string", "Exact risk level", false),
		openapi.QueryParam("is_fallback", "boolean", "Fallback outcomes only", false),
		openapi.QueryParam("type", "string", "Report type", false),
	}
)

var spec = struct {
	List     *openapi.Operation
	Generate *openapi.Operation
	Search   *openapi.Operation
	Stats    *openapi.Operation
	Find     *openapi.Operation
	Download *openapi.Operation
	Delete   *openapi.Operation
}{
	List: &openapi.Operation{
		Summary:    "List reports",
		Tags:       []string{"reports"},
		Parameters: filterQuery,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of reports", "ReportPage"),
		},
	},
	Generate: &openapi.Operation{
		Summary:     "Generate report",
		Description: "Builds a plain-text summary from an analysis with optional risk and weather, then stores the report.",
		Tags:        []string{"reports"},
		RequestBody: openapi.RequestBodyJSON("GenerateReport", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Stored report", "Report"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search reports",
		Tags:        []string{"reports"},
		RequestBody: openapi.RequestBodyJSON("ReportSearch", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of reports", "ReportPage"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Stats: &openapi.Operation{
		Summary: "Report statistics",
		Tags:    []string{"reports"},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Aggregate statistics", "ReportStats"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get report",
		Tags:       []string{"reports"},
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Report", "Report"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Download: &openapi.Operation{
		Summary:    "Download report summary",
		Tags:       []string{"reports"},
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Plain-text attachment",
				Content: map[string]*openapi.MediaType{
					"text/plain": {Schema: &openapi.Schema{Type: "string"}},
				},
			},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete report",
		Description: "Removes the report and its archived image.",
		Tags:        []string{"reports"},
		Parameters:  []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			204: {Description: "Report deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas returns the component schemas of report requests and responses.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Report": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"plantType":   {Type: "string"},
				"diseaseId":   {Type: "string"},
				"diseaseName": {Type: "string"},
				"confidence":  {Type: "number"},
				"isFallback":  {Type: "boolean"},
				"modelUsed":   {Type: "string"},
				"riskLevel":   {Type: "string"},
				"temperature": {Type: "number"},
				"humidity":    {Type: "number"},
				"imageKey":    {Type: "string"},
				"analysis":    openapi.SchemaRef("Analysis"),
				"risk":        openapi.SchemaRef("Assessment"),
				"weather":     openapi.SchemaRef("Weather"),
				"userNotes":   {Type: "string"},
				"summary":     {Type: "string"},
				"type":        {Type: "string", Example: TypeDiseaseAnalysis},
				"status":      {Type: "string", Example: StatusCompleted},
				"createdAt":   {Type: "string", Format: "date-time"},
			},
		},
		"Weather": {
			Type:     "object",
			Required: []string{"temperature", "humidity"},
			Properties: map[string]*openapi.Schema{
				"temperature": {Type: "number"},
				"feelsLike":   {Type: "number"},
				"humidity":    {Type: "number"},
				"description": {Type: "string"},
				"location": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"name":    {Type: "string"},
						"country": {Type: "string"},
					},
				},
			},
		},
		"GenerateReport": {
			Type:     "object",
			Required: []string{"analysis"},
			Properties: map[string]*openapi.Schema{
				"analysis":  openapi.SchemaRef("Analysis"),
				"risk":      openapi.SchemaRef("Assessment"),
				"weather":   openapi.SchemaRef("Weather"),
				"userNotes": {Type: "string"},
			},
		},
		"ReportSearch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":         {Type: "integer"},
				"page_size":    {Type: "integer"},
				"search":       {Type: "string"},
				"sort":         {Type: "string"},
				"plant_type":   {Type: "string"},
				"disease_id":   {Type: "string"},
				"disease_name": {Type: "string"},
				"risk_level":   {Type: "string"},
				"is_fallback":  {Type: "boolean"},
				"type":         {Type: "string"},
			},
		},
		"ReportPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOf("Report"),
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"ReportStats": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"totalReports":        {Type: "integer"},
				"recentReports":       {Type: "integer", Description: "Reports created in the last 7 days"},
				"diseaseDistribution": {Type: "object"},
				"riskDistribution":    {Type: "object"},
				"generatedAt":         {Type: "string", Format: "date-time"},
			},
		},
	}
}
