package detection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/canopy/pkg/formatting"
	"github.com/JaimeStill/canopy/pkg/process"
	"github.com/JaimeStill/canopy/pkg/scratch"
)

const stderrLogLimit = 2048

// DefaultTimeout bounds a classifier run when no timeout is given.
const DefaultTimeout = 30 * time.Second

// Binding describes how to invoke the classifier program for one plant type.
// The program is run as: Command Args... <image-path> [ModelPath].
type Binding struct {
	Command   string
	Args      []string
	ModelPath string
	ModelTag  string
	// RequireModel treats a binding without ModelPath as not configured.
	RequireModel bool
}

// Configured reports whether the binding can launch a classifier.
func (b Binding) Configured() bool {
	if b.Command == "" {
		return false
	}
	if b.RequireModel && b.ModelPath == "" {
		return false
	}
	return true
}

// ProcessBackend runs an external classifier program once per image.
type ProcessBackend struct {
	runner     *process.Runner
	binding    Binding
	tag        string
	timeout    time.Duration
	scratchDir string
	logger     *slog.Logger
}

// NewProcessBackend creates a backend for plant. It returns ErrNotConfigured
// when the binding cannot launch a classifier. A non-positive timeout is
// replaced by DefaultTimeout.
func NewProcessBackend(
	runner *process.Runner,
	plant PlantType,
	binding Binding,
	timeout time.Duration,
	scratchDir string,
	logger *slog.Logger,
) (*ProcessBackend, error) {
	if !binding.Configured() {
		return nil, fmt.Errorf("%w: %s", ErrNotConfigured, plant)
	}

	tag := binding.ModelTag
	if tag == "" {
		tag = plant.defaultModelTag()
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &ProcessBackend{
		runner:     runner,
		binding:    binding,
		tag:        tag,
		timeout:    timeout,
		scratchDir: scratchDir,
		logger:     logger.With("backend", tag),
	}, nil
}

func (b *ProcessBackend) Name() string {
	return b.tag
}

// Timeout returns the wall-clock limit applied to each classifier run.
func (b *ProcessBackend) Timeout() time.Duration {
	return b.timeout
}

// Classify writes image to a request-scoped scratch file, runs the classifier
// against it and validates the printed record. The scratch file is removed
// before Classify returns.
func (b *ProcessBackend) Classify(ctx context.Context, image []byte, plant PlantType) (Outcome, error) {
	file, err := scratch.Write(b.scratchDir, string(plant), ".jpg", image)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrLaunch, err)
		b.logger.Warn("scratch file write failed", "plant_type", plant, "category", Category(err), "error", err)
		return Outcome{}, err
	}
	defer func() {
		if err := file.Release(); err != nil {
			b.logger.Warn("scratch file cleanup failed", "path", file.Path(), "error", err)
		}
	}()

	args := append([]string{}, b.binding.Args...)
	args = append(args, file.Path())
	if b.binding.ModelPath != "" {
		args = append(args, b.binding.ModelPath)
	}

	result, err := b.runner.Run(ctx, process.Request{
		Name:    b.binding.Command,
		Args:    args,
		Timeout: b.timeout,
	})
	if err != nil {
		return Outcome{}, b.classifyFailure(plant, result, err)
	}

	pred, err := decodeResponse(result.Stdout)
	if err != nil {
		b.logger.Warn(
			"classifier output rejected",
			"plant_type", plant,
			"stdout", formatting.Excerpt(string(result.Stdout), stderrLogLimit),
			"stderr", formatting.Excerpt(string(result.Stderr), stderrLogLimit),
			"error", err,
		)
		return Outcome{}, err
	}

	raw := pred.label
	return Outcome{
		DiseaseLabel: pred.label,
		Confidence:   pred.confidence,
		ProcessedAt:  time.Now().UTC(),
		ModelUsed:    b.tag,
		IsFallback:   false,
		RawLabel:     &raw,
		Top3:         pred.top3,
	}, nil
}

func (b *ProcessBackend) classifyFailure(plant PlantType, result *process.Result, err error) error {
	var stderr string
	var exitCode int
	if result != nil {
		stderr = formatting.Excerpt(string(result.Stderr), stderrLogLimit)
		exitCode = result.ExitCode
	}

	var wrapped error
	switch {
	case errors.Is(err, process.ErrStart), errors.Is(err, process.ErrNoCommand):
		wrapped = fmt.Errorf("%w: %w", ErrLaunch, err)
	default:
		wrapped = fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	b.logger.Warn(
		"classifier failed",
		"plant_type", plant,
		"category", Category(wrapped),
		"exit_code", exitCode,
		"stderr", stderr,
		"error", err,
	)

	return wrapped
}
