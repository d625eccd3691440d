package reports

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/canopy/pkg/query"
	"github.com/JaimeStill/canopy/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "reports", "r").
	Project("id", "ID").
	Project("plant_type", "PlantType").
	Project("disease_id", "DiseaseID").
	Project("disease_name", "DiseaseName").
	Project("confidence", "Confidence").
	Project("is_fallback", "IsFallback").
	Project("model_used", "ModelUsed").
	Project("risk_level", "RiskLevel").
	Project("temperature", "Temperature").
	Project("humidity", "Humidity").
	Project("image_key", "ImageKey").
	Project("analysis", "Analysis").
	Project("risk", "Risk").
	Project("weather", "Weather").
	Project("user_notes", "UserNotes").
	Project("summary", "Summary").
	Project("type", "Type").
	Project("status", "Status").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for report queries.
// Nil fields are ignored. DiseaseName uses case-insensitive contains
// matching; every other field matches exactly.
type Filters struct {
	PlantType   *string `json:"plant_type,omitempty"`
	DiseaseID   *string `json:"disease_id,omitempty"`
	DiseaseName *string `json:"disease_name,omitempty"`
	RiskLevel   *string `json:"risk_level,omitempty"`
	IsFallback  *bool   `json:"is_fallback,omitempty"`
	Type        *string `json:"type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("PlantType", f.PlantType).
		WhereEquals("DiseaseID", f.DiseaseID).
		WhereContains("DiseaseName", f.DiseaseName).
		WhereEquals("RiskLevel", f.RiskLevel).
		WhereEquals("IsFallback", f.IsFallback).
		WhereEquals("Type", f.Type)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("plant_type"); v != "" {
		f.PlantType = &v
	}

	if v := values.Get("disease_id"); v != "" {
		f.DiseaseID = &v
	}

	if v := values.Get("disease_name"); v != "" {
		f.DiseaseName = &v
	}

	if v := values.Get("risk_level"); v != "" {
		f.RiskLevel = &v
	}

	if v := values.Get("is_fallback"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.IsFallback = &b
		}
	}

	if v := values.Get("type"); v != "" {
		f.Type = &v
	}

	return f
}

func scanReport(s repository.Scanner) (Report, error) {
	var (
		r                       Report
		analysis, risk, weather []byte
	)

	err := s.Scan(
		&r.ID,
		&r.PlantType,
		&r.DiseaseID,
		&r.DiseaseName,
		&r.Confidence,
		&r.IsFallback,
		&r.ModelUsed,
		&r.RiskLevel,
		&r.Temperature,
		&r.Humidity,
		&r.ImageKey,
		&analysis,
		&risk,
		&weather,
		&r.UserNotes,
		&r.Summary,
		&r.Type,
		&r.Status,
		&r.CreatedAt,
	)
	if err != nil {
		return r, err
	}

	r.Analysis = rawOrNull(analysis)
	r.Risk = rawOrNull(risk)
	r.Weather = rawOrNull(weather)
	return r, nil
}

func rawOrNull(b []byte) []byte {
	if len(b) == 0 {
		return []byte("null")
	}
	return b
}
