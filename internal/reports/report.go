// Package reports persists analysis reports. A report freezes an analysis,
// an optional risk assessment and optional weather observations together
// with a generated plain-text summary.
package reports

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/internal/analysis"
	"github.com/JaimeStill/canopy/internal/risk"
)

// Report kinds and states.
const (
	TypeDiseaseAnalysis = "disease_analysis"
	StatusCompleted     = "completed"
)

// Report is a persisted analysis report. RiskLevel, Temperature, Humidity
// and ImageKey are denormalized from the embedded documents for filtering.
type Report struct {
	ID          uuid.UUID       `json:"id"`
	PlantType   string          `json:"plantType"`
	DiseaseID   string          `json:"diseaseId"`
	DiseaseName string          `json:"diseaseName"`
	Confidence  float64         `json:"confidence"`
	IsFallback  bool            `json:"isFallback"`
	ModelUsed   string          `json:"modelUsed"`
	RiskLevel   *string         `json:"riskLevel"`
	Temperature *float64        `json:"temperature"`
	Humidity    *float64        `json:"humidity"`
	ImageKey    *string         `json:"imageKey"`
	Analysis    json.RawMessage `json:"analysis"`
	Risk        json.RawMessage `json:"risk"`
	Weather     json.RawMessage `json:"weather"`
	UserNotes   string          `json:"userNotes"`
	Summary     string          `json:"summary"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Location names where weather was observed.
type Location struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Weather carries the observations supplied by the weather collaborator.
type Weather struct {
	Temperature float64   `json:"temperature"`
	FeelsLike   *float64  `json:"feelsLike,omitempty"`
	Humidity    float64   `json:"humidity"`
	Description string    `json:"description,omitempty"`
	Location    *Location `json:"location,omitempty"`
}

// GenerateCommand carries the inputs of a new report.
type GenerateCommand struct {
	Analysis  analysis.Analysis `json:"analysis"`
	Risk      *risk.Assessment  `json:"risk,omitempty"`
	Weather   *Weather          `json:"weather,omitempty"`
	UserNotes string            `json:"userNotes,omitempty"`
}

// Validate checks that the command carries a resolved analysis whose
// values fit the report columns.
func (c GenerateCommand) Validate() error {
	result := c.Analysis.Result
	if result.DiseaseID == "" || result.Disease.Name == "" {
		return fmt.Errorf("%w: analysis result is required", ErrInvalidReport)
	}
	if !c.Analysis.PlantType.Valid() {
		return fmt.Errorf("%w: unsupported plant type %q", ErrInvalidReport, c.Analysis.PlantType)
	}
	if conf := result.Detection.Confidence; math.IsNaN(conf) || conf < 0 || conf > 1 {
		return fmt.Errorf("%w: confidence %g outside [0, 1]", ErrInvalidReport, conf)
	}
	if c.Risk != nil && !c.Risk.RiskLevel.Valid() {
		return fmt.Errorf("%w: unknown risk level %q", ErrInvalidReport, c.Risk.RiskLevel)
	}
	return nil
}

// Stats summarizes stored reports.
type Stats struct {
	TotalReports        int            `json:"totalReports"`
	RecentReports       int            `json:"recentReports"`
	DiseaseDistribution map[string]int `json:"diseaseDistribution"`
	RiskDistribution    map[string]int `json:"riskDistribution"`
	GeneratedAt         time.Time      `json:"generatedAt"`
}
