package api

import (
	"github.com/JaimeStill/canopy/internal/analysis"
	"github.com/JaimeStill/canopy/internal/config"
	"github.com/JaimeStill/canopy/internal/diseases"
	"github.com/JaimeStill/canopy/internal/reports"
	"github.com/JaimeStill/canopy/internal/risk"
	"github.com/JaimeStill/canopy/pkg/openapi"
	"github.com/JaimeStill/canopy/pkg/routes"
)

// buildSpec describes groups as an OpenAPI document served below the API base path.
func buildSpec(cfg *config.Config, groups ...routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(diseases.Schemas())
	spec.Components.AddSchemas(risk.Schemas())
	spec.Components.AddSchemas(analysis.Schemas())
	spec.Components.AddSchemas(reports.Schemas())

	routes.Describe(spec, groups...)

	return openapi.MarshalJSON(spec)
}
