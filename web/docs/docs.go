// Package docs serves a browsable reference for the canopy HTTP API. The page
// reads the OpenAPI document published by the API module.
package docs

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/JaimeStill/canopy/pkg/module"
	"github.com/JaimeStill/canopy/pkg/web"
)

//go:embed templates static
var staticFS embed.FS

const layout = "layout"

var (
	referenceView = web.ViewDef{
		Route:    "/{$}",
		Template: "reference.html",
		Title:    "Canopy API Reference",
		Bundle:   "docs",
	}
	notFoundView = web.ViewDef{
		Template: "not-found.html",
		Title:    "Not Found",
		Bundle:   "docs",
	}
)

// NewModule creates a module that serves the API reference at basePath.
// specURL locates the OpenAPI document the page renders.
func NewModule(basePath, specURL string) (*module.Module, error) {
	router, err := buildRouter(basePath, specURL)
	if err != nil {
		return nil, err
	}
	return module.New(basePath, router), nil
}

func buildRouter(basePath, specURL string) (http.Handler, error) {
	ts, err := web.NewTemplateSet(
		staticFS,
		"templates/*.html",
		"templates/views",
		basePath,
		[]web.ViewDef{referenceView, notFoundView},
	)
	if err != nil {
		return nil, fmt.Errorf("docs templates: %w", err)
	}

	router := web.NewRouter()
	router.HandleFunc("GET "+referenceView.Route, ts.PageHandler(layout, referenceView, specURL))
	for _, route := range web.PublicFileRoutes(staticFS, "static", "docs.css", "docs.js") {
		router.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
	}
	router.SetFallback(ts.ErrorHandler(layout, notFoundView, http.StatusNotFound))

	return router, nil
}
