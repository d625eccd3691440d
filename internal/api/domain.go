package api

import (
	"github.com/JaimeStill/canopy/internal/analysis"
	"github.com/JaimeStill/canopy/internal/detection"
	"github.com/JaimeStill/canopy/internal/diseases"
	"github.com/JaimeStill/canopy/internal/reports"
	"github.com/JaimeStill/canopy/internal/risk"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Diseases   *diseases.Registry
	Dispatcher *detection.Dispatcher
	Assessor   *risk.Assessor
	Analysis   analysis.System
	Reports    reports.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	registry := diseases.Default()

	dispatcher := detection.NewDispatcher(
		runtime.Inference.Detection(),
		runtime.Runner,
		runtime.Logger,
	)

	assessor := risk.NewAssessor(
		runtime.Inference.RiskModel(),
		runtime.Runner,
		runtime.Logger,
	)

	analysisSystem := analysis.New(
		dispatcher,
		registry,
		runtime.Storage,
		runtime.Logger,
	)

	reportsSystem := reports.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Diseases:   registry,
		Dispatcher: dispatcher,
		Assessor:   assessor,
		Analysis:   analysisSystem,
		Reports:    reportsSystem,
	}
}
