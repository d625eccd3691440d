package analysis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/canopy/internal/detection"
	"github.com/JaimeStill/canopy/internal/diseases"
	"github.com/JaimeStill/canopy/pkg/storage"
)

const batchConcurrency = 4

type service struct {
	classifier Classifier
	registry   *diseases.Registry
	storage    storage.System
	logger     *slog.Logger
}

// New creates the analysis system. A nil store disables image archiving.
func New(
	classifier Classifier,
	registry *diseases.Registry,
	store storage.System,
	logger *slog.Logger,
) System {
	return &service{
		classifier: classifier,
		registry:   registry,
		storage:    store,
		logger:     logger.With("system", "analysis"),
	}
}

func (s *service) Handler(maxUploadSize int64, maxBatchSize int) *Handler {
	return NewHandler(s, s.logger, maxUploadSize, maxBatchSize)
}

func (s *service) Analyze(ctx context.Context, cmd Command) (*Analysis, error) {
	if !cmd.PlantType.Valid() {
		return nil, fmt.Errorf("%w: %q", detection.ErrUnsupportedPlant, cmd.PlantType)
	}

	contentType, err := ValidateImage(cmd.Filename, cmd.ContentType, cmd.Data)
	if err != nil {
		return nil, err
	}

	outcome, err := s.classifier.Classify(ctx, cmd.Data, cmd.PlantType)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		ID:        uuid.New(),
		PlantType: cmd.PlantType,
		Image: Image{
			Filename:    cmd.Filename,
			ContentType: contentType,
			SizeBytes:   int64(len(cmd.Data)),
		},
		Result:    Assemble(outcome, s.registry),
		CreatedAt: time.Now().UTC(),
	}

	a.Image.Key = s.archive(ctx, a.ID, cmd.Filename, contentType, cmd.Data)

	s.logger.Info(
		"analysis completed",
		"id", a.ID,
		"plant_type", a.PlantType,
		"disease_id", a.Result.DiseaseID,
		"model_used", outcome.ModelUsed,
		"is_fallback", outcome.IsFallback,
	)

	return a, nil
}

func (s *service) AnalyzeBatch(ctx context.Context, cmds []Command) []BatchResult {
	results := make([]BatchResult, len(cmds))

	var g errgroup.Group
	g.SetLimit(batchConcurrency)

	for i, cmd := range cmds {
		g.Go(func() error {
			results[i].Filename = cmd.Filename

			a, err := s.Analyze(ctx, cmd)
			if err != nil {
				s.logger.Warn("batch item failed", "filename", cmd.Filename, "error", err)
				results[i].Error = err.Error()
				return nil
			}

			results[i].Analysis = a
			return nil
		})
	}

	g.Wait()
	return results
}

func (s *service) Image(ctx context.Context, key string) (io.ReadCloser, error) {
	if s.storage == nil {
		return nil, ErrArchiveDisabled
	}
	if !strings.HasPrefix(key, keyPrefix) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	return s.storage.Download(ctx, key)
}

// archive stores the original image and returns its key. Failures are
// logged and yield an empty key.
func (s *service) archive(ctx context.Context, id uuid.UUID, filename, contentType string, data []byte) string {
	if s.storage == nil {
		return ""
	}

	key := buildStorageKey(id, sanitizeFilename(filename))
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), contentType); err != nil {
		s.logger.Warn("image archive failed", "id", id, "key", key, "error", err)
		return ""
	}
	return key
}
