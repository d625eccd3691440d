package analysis

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/JaimeStill/canopy/internal/detection"
	"github.com/JaimeStill/canopy/pkg/formatting"
	"github.com/JaimeStill/canopy/pkg/handlers"
	"github.com/JaimeStill/canopy/pkg/routes"
)

// multipart overhead allowed beyond the file payloads
const formOverhead = 1 << 20

// Handler provides HTTP endpoints for image analysis.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
	maxBatchSize  int
}

func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64, maxBatchSize int) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "analysis"),
		maxUploadSize: maxUploadSize,
		maxBatchSize:  maxBatchSize,
	}
}

// Routes returns the route group definition for analysis endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/analysis",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Analyze, OpenAPI: spec.Analyze},
			{Method: "POST", Pattern: "/batch", Handler: h.AnalyzeBatch, OpenAPI: spec.Batch},
			{Method: "GET", Pattern: "/images/{key...}", Handler: h.Image, OpenAPI: spec.Image},
		},
	}
}

// Analyze classifies a single multipart image upload.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+formOverhead)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.respondFormError(w, err)
		return
	}

	plant, err := detection.ParsePlantType(r.FormValue("plantType"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoImages)
		return
	}
	defer file.Close()

	cmd, err := h.readCommand(file, header, plant)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	a, err := h.sys.Analyze(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

// AnalyzeBatch classifies up to maxBatchSize images from the images field.
// Per-file failures are reported in the results rather than failing the request.
func (h *Handler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	limit := h.maxUploadSize*int64(h.maxBatchSize) + formOverhead
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.respondFormError(w, err)
		return
	}

	plant, err := detection.ParsePlantType(r.FormValue("plantType"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoImages)
		return
	}
	if len(headers) > h.maxBatchSize {
		err := fmt.Errorf("%w: %d exceeds limit of %d", ErrTooManyImages, len(headers), h.maxBatchSize)
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	results := make([]BatchResult, len(headers))
	var cmds []Command
	var slots []int

	for i, fh := range headers {
		results[i].Filename = fh.Filename

		cmd, err := h.openCommand(fh, plant)
		if err != nil {
			results[i].Error = err.Error()
			continue
		}
		cmds = append(cmds, cmd)
		slots = append(slots, i)
	}

	for j, res := range h.sys.AnalyzeBatch(r.Context(), cmds) {
		results[slots[j]] = res
	}

	handlers.RespondJSON(w, http.StatusOK, results)
}

// Image streams an archived analysis image.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	rc, err := h.sys.Image(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentTypeForKey(key))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn("image stream interrupted", "key", key, "error", err)
	}
}

func (h *Handler) openCommand(fh *multipart.FileHeader, plant detection.PlantType) (Command, error) {
	file, err := fh.Open()
	if err != nil {
		return Command{}, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	defer file.Close()
	return h.readCommand(file, fh, plant)
}

func (h *Handler) readCommand(file multipart.File, fh *multipart.FileHeader, plant detection.PlantType) (Command, error) {
	if fh.Size > h.maxUploadSize {
		return Command{}, fmt.Errorf(
			"%w: %s is larger than %s",
			ErrFileTooLarge, fh.Filename, formatting.FormatBytes(h.maxUploadSize, 0),
		)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}

	return Command{
		Data:        data,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		PlantType:   plant,
	}, nil
}

func (h *Handler) respondFormError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}
	handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrNoImages, err))
}
