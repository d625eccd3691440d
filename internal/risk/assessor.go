package risk

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/JaimeStill/canopy/pkg/process"
)

// Config binds the risk model program.
type Config struct {
	Binding Binding
	Timeout time.Duration
}

// Assessor routes observations to the risk model and resolves every model
// failure to the heuristic rule table.
type Assessor struct {
	model     Backend
	heuristic Heuristic
	logger    *slog.Logger
}

// Option configures an Assessor.
type Option func(*Assessor)

// WithBackend replaces the model backend.
func WithBackend(b Backend) Option {
	return func(a *Assessor) {
		a.model = b
	}
}

// NewAssessor creates an Assessor. Without a configured binding every
// assessment is answered by the heuristic and no process is spawned.
func NewAssessor(cfg Config, runner *process.Runner, logger *slog.Logger, opts ...Option) *Assessor {
	logger = logger.With("system", "risk")
	a := &Assessor{logger: logger}

	if cfg.Binding.Configured() {
		a.model = NewModelBackend(runner, cfg.Binding, cfg.Timeout, logger)
	} else {
		logger.Info("risk model not configured, heuristic only")
	}

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assess scores temperature and humidity with optional extras. It never fails.
func (a *Assessor) Assess(ctx context.Context, temperature, humidity float64, extras Extras) Assessment {
	return a.AssessConditions(ctx, Conditions{
		Temperature: temperature,
		Humidity:    humidity,
		Extras:      extras,
	})
}

// AssessConditions scores a complete observation. It never fails.
func (a *Assessor) AssessConditions(ctx context.Context, c Conditions) Assessment {
	if a.model == nil {
		return a.heuristic.Evaluate(c.Temperature, c.Humidity)
	}

	result, err := a.model.Assess(ctx, c)
	if err != nil {
		a.logger.Debug(
			"using heuristic assessment",
			"backend", a.model.Name(),
			"category", category(err),
			"error", err,
		)
		return a.heuristic.Evaluate(c.Temperature, c.Humidity)
	}
	return result
}

// ModelConfigured reports whether a model backend is bound.
func (a *Assessor) ModelConfigured() bool {
	return a.model != nil
}

func category(err error) string {
	switch {
	case errors.Is(err, ErrModelLaunch):
		return "launch"
	case errors.Is(err, ErrModelRuntime):
		return "runtime"
	case errors.Is(err, ErrModelResponse):
		return "malformed_output"
	default:
		return "unknown"
	}
}
