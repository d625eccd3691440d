package diseases

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/canopy/pkg/handlers"
	"github.com/JaimeStill/canopy/pkg/routes"
)

// Handler provides read-only HTTP endpoints over a Registry.
type Handler struct {
	registry *Registry
	logger   *slog.Logger
}

func NewHandler(registry *Registry, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger.With("handler", "diseases"),
	}
}

// Routes returns the route group definition for disease endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/diseases",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: spec.List},
			{Method: "GET", Pattern: "/list", Handler: h.List, OpenAPI: spec.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: spec.Find},
		},
	}
}

// List returns summaries of every registered disease.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	diseases := h.registry.List()
	handlers.RespondJSON(w, http.StatusOK, ListResult{
		Diseases: diseases,
		Total:    len(diseases),
	})
}

// Find returns the full record for the id path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	rec, ok := h.registry.Find(id)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrNotFound, id)
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rec)
}
