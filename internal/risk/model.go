package risk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/JaimeStill/canopy/pkg/formatting"
	"github.com/JaimeStill/canopy/pkg/process"
)

const stderrLogLimit = 2048

// Binding describes how to invoke the risk model program.
type Binding struct {
	Command string
	Args    []string
}

// Configured reports whether the binding names a program.
func (b Binding) Configured() bool {
	return b.Command != ""
}

type modelRequest struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rain        float64 `json:"rain"`
	WindSpeed   float64 `json:"wind_speed"`
	Cloudiness  float64 `json:"cloudiness"`
}

type modelResponse struct {
	Success     json.RawMessage `json:"success"`
	RiskLevel   json.RawMessage `json:"risk_level"`
	Probability json.RawMessage `json:"probability"`
	Source      json.RawMessage `json:"source"`
	Error       json.RawMessage `json:"error"`
}

// ModelBackend runs the risk model program once per assessment, writing
// the observation as JSON to its standard input.
type ModelBackend struct {
	runner  *process.Runner
	binding Binding
	timeout time.Duration
	logger  *slog.Logger
}

// DefaultTimeout bounds a risk model run when no timeout is given.
const DefaultTimeout = 10 * time.Second

// NewModelBackend creates a ModelBackend. A non-positive timeout is replaced
// by DefaultTimeout.
func NewModelBackend(runner *process.Runner, binding Binding, timeout time.Duration, logger *slog.Logger) *ModelBackend {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ModelBackend{
		runner:  runner,
		binding: binding,
		timeout: timeout,
		logger:  logger.With("backend", string(SourceModel)),
	}
}

func (m *ModelBackend) Name() string {
	return string(SourceModel)
}

// Timeout returns the wall-clock limit applied to each model run.
func (m *ModelBackend) Timeout() time.Duration {
	return m.timeout
}

func (m *ModelBackend) Assess(ctx context.Context, c Conditions) (Assessment, error) {
	payload, err := json.Marshal(modelRequest{
		Temperature: c.Temperature,
		Humidity:    c.Humidity,
		Rain:        c.Rain,
		WindSpeed:   c.WindSpeed,
		Cloudiness:  c.Cloudiness,
	})
	if err != nil {
		return Assessment{}, fmt.Errorf("%w: encode request: %w", ErrModelLaunch, err)
	}

	result, err := m.runner.Run(ctx, process.Request{
		Name:    m.binding.Command,
		Args:    m.binding.Args,
		Stdin:   payload,
		Timeout: m.timeout,
	})
	if err != nil {
		var stderr string
		if result != nil {
			stderr = formatting.Excerpt(string(result.Stderr), stderrLogLimit)
		}
		m.logger.Warn("risk model failed", "stderr", stderr, "error", err)

		if errors.Is(err, process.ErrStart) || errors.Is(err, process.ErrNoCommand) {
			return Assessment{}, fmt.Errorf("%w: %w", ErrModelLaunch, err)
		}
		return Assessment{}, fmt.Errorf("%w: %w", ErrModelRuntime, err)
	}

	a, err := decodeAssessment(result.Stdout, c)
	if err != nil {
		m.logger.Warn(
			"risk model output rejected",
			"stdout", formatting.Excerpt(string(result.Stdout), stderrLogLimit),
			"error", err,
		)
		return Assessment{}, err
	}
	return a, nil
}

func decodeAssessment(stdout []byte, c Conditions) (Assessment, error) {
	resp, err := formatting.Parse[modelResponse](string(stdout))
	if err != nil {
		return Assessment{}, fmt.Errorf("%w: %w", ErrModelResponse, err)
	}

	var success bool
	if err := json.Unmarshal(resp.Success, &success); err != nil || !success {
		reason := "success is not true"
		var msg string
		if json.Unmarshal(resp.Error, &msg) == nil && msg != "" {
			reason = msg
		}
		return Assessment{}, fmt.Errorf("%w: %s", ErrModelResponse, reason)
	}

	level := Low
	if present(resp.RiskLevel) {
		var s string
		if err := json.Unmarshal(resp.RiskLevel, &s); err != nil || !Level(s).Valid() {
			return Assessment{}, fmt.Errorf("%w: risk_level %s", ErrModelResponse, resp.RiskLevel)
		}
		level = Level(s)
	}

	source := SourceModel
	if present(resp.Source) {
		var s string
		if err := json.Unmarshal(resp.Source, &s); err != nil || !Source(s).Valid() {
			return Assessment{}, fmt.Errorf("%w: source %s", ErrModelResponse, resp.Source)
		}
		source = Source(s)
	}

	var probability *float64
	if present(resp.Probability) {
		var p float64
		if err := json.Unmarshal(resp.Probability, &p); err != nil || math.IsNaN(p) || p < 0 || p > 1 {
			return Assessment{}, fmt.Errorf("%w: probability %s", ErrModelResponse, resp.Probability)
		}
		probability = &p
	}

	return Assessment{
		RiskLevel:   level,
		Temperature: c.Temperature,
		Humidity:    c.Humidity,
		Description: modelDescriptions[level],
		Source:      source,
		Probability: probability,
	}, nil
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
