package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/canopy/internal/config"
	"github.com/JaimeStill/canopy/internal/diseases"
	"github.com/JaimeStill/canopy/internal/risk"
	"github.com/JaimeStill/canopy/pkg/openapi"
	"github.com/JaimeStill/canopy/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	groups := []routes.Group{
		domain.Analysis.Handler(cfg.API.MaxUploadSizeBytes(), cfg.API.MaxBatchSize).Routes(),
		diseases.NewHandler(domain.Diseases, runtime.Logger).Routes(),
		risk.NewHandler(domain.Assessor, runtime.Logger).Routes(),
		domain.Reports.Handler().Routes(),
	}

	routes.Register(mux, groups...)

	spec, err := buildSpec(cfg, groups...)
	if err != nil {
		return fmt.Errorf("build openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	return nil
}
