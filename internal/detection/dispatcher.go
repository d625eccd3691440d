package detection

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/JaimeStill/canopy/pkg/process"
)

// Config binds classifier programs to plant types.
type Config struct {
	Bindings   map[PlantType]Binding
	Timeout    time.Duration
	ScratchDir string
}

type route struct {
	primary  Backend
	fallback *SyntheticBackend
}

// Dispatcher selects the backend for each plant type and resolves every
// backend failure to a synthetic fallback outcome.
type Dispatcher struct {
	routes map[PlantType]route
	logger *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*dispatcherOptions)

type dispatcherOptions struct {
	backends map[PlantType]Backend
	source   rand.Source
}

// WithBackend replaces the process backend bound to plant.
func WithBackend(plant PlantType, b Backend) Option {
	return func(o *dispatcherOptions) {
		o.backends[plant] = b
	}
}

// WithRandSource seeds the synthetic fallback generator.
func WithRandSource(src rand.Source) Option {
	return func(o *dispatcherOptions) {
		o.source = src
	}
}

// NewDispatcher builds a Dispatcher covering every supported plant type.
// Plants without a configured binding are served by the synthetic backend
// tagged TagUnconfigured and never spawn a process.
func NewDispatcher(cfg Config, runner *process.Runner, logger *slog.Logger, opts ...Option) *Dispatcher {
	o := &dispatcherOptions{backends: make(map[PlantType]Backend)}
	for _, opt := range opts {
		opt(o)
	}

	logger = logger.With("system", "detection")
	d := &Dispatcher{
		routes: make(map[PlantType]route, len(PlantTypes)),
		logger: logger,
	}

	for _, plant := range PlantTypes {
		primary, ok := o.backends[plant]
		if !ok {
			pb, err := NewProcessBackend(
				runner, plant, cfg.Bindings[plant],
				cfg.Timeout, cfg.ScratchDir, logger,
			)
			if err != nil {
				logger.Info("classifier not configured, fallback only", "plant_type", plant)
			} else {
				primary = pb
			}
		}

		tag := plant.FallbackTag()
		if primary == nil {
			tag = TagUnconfigured
		}

		d.routes[plant] = route{
			primary:  primary,
			fallback: NewSyntheticBackend(tag, o.source),
		}
	}

	return d
}

// Classify returns an Outcome for image. Errors are returned only for an
// unsupported plant type or an empty image; every other failure yields an
// outcome with IsFallback set.
func (d *Dispatcher) Classify(ctx context.Context, image []byte, plant PlantType) (Outcome, error) {
	r, ok := d.routes[plant]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnsupportedPlant, plant)
	}
	if len(image) == 0 {
		return Outcome{}, ErrEmptyImage
	}

	if r.primary == nil {
		return r.fallback.Generate(plant), nil
	}

	outcome, err := r.primary.Classify(ctx, image, plant)
	if err != nil {
		d.logger.Debug(
			"using fallback outcome",
			"plant_type", plant,
			"backend", r.primary.Name(),
			"category", Category(err),
			"error", err,
		)
		return r.fallback.Generate(plant), nil
	}

	if err := validateOutcome(outcome); err != nil {
		d.logger.Warn(
			"using fallback outcome",
			"plant_type", plant,
			"backend", r.primary.Name(),
			"category", Category(err),
			"error", err,
		)
		return r.fallback.Generate(plant), nil
	}

	return outcome, nil
}

// Describe returns the name of the backend serving plant and whether it
// is a configured classifier.
func (d *Dispatcher) Describe(plant PlantType) (string, bool) {
	r, ok := d.routes[plant]
	if !ok {
		return "", false
	}
	if r.primary == nil {
		return r.fallback.Name(), false
	}
	return r.primary.Name(), true
}

func validateOutcome(o Outcome) error {
	if o.DiseaseLabel == "" {
		return fmt.Errorf("%w: empty disease label", ErrMalformedOutput)
	}
	if !inUnitRange(o.Confidence) {
		return fmt.Errorf("%w: confidence %v outside [0,1]", ErrMalformedOutput, o.Confidence)
	}
	return nil
}
