package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/JaimeStill/canopy/internal/detection"
	"github.com/JaimeStill/canopy/internal/risk"
)

// ClassifierConfig binds one plant type to an external classifier program.
type ClassifierConfig struct {
	Command   string   `toml:"command"`
	Args      []string `toml:"args"`
	ModelPath string   `toml:"model_path"`
	ModelTag  string   `toml:"model_tag"`
}

// ClassifierEnv maps classifier fields to environment variable names.
// Args values are split on whitespace.
type ClassifierEnv struct {
	Command   string
	Args      string
	ModelPath string
	ModelTag  string
}

// RiskModelConfig binds the weather risk model program.
type RiskModelConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// InferenceConfig holds classifier and risk model bindings.
// An empty command leaves the corresponding component on its fallback path.
type InferenceConfig struct {
	Tomato      ClassifierConfig `toml:"tomato"`
	Corn        ClassifierConfig `toml:"corn"`
	Risk        RiskModelConfig  `toml:"risk"`
	Timeout     string           `toml:"timeout"`
	RiskTimeout string           `toml:"risk_timeout"`
	ScratchDir  string           `toml:"scratch_dir"`
}

var tomatoEnv = &ClassifierEnv{
	Command:   "CANOPY_TOMATO_COMMAND",
	Args:      "CANOPY_TOMATO_ARGS",
	ModelPath: "CANOPY_TOMATO_MODEL_PATH",
	ModelTag:  "CANOPY_TOMATO_MODEL_TAG",
}

var cornEnv = &ClassifierEnv{
	Command:   "CANOPY_CORN_COMMAND",
	Args:      "CANOPY_CORN_ARGS",
	ModelPath: "CANOPY_CORN_MODEL_PATH",
	ModelTag:  "CANOPY_CORN_MODEL_TAG",
}

const (
	EnvRiskCommand         = "CANOPY_RISK_COMMAND"
	EnvRiskArgs            = "CANOPY_RISK_ARGS"
	EnvInferenceTimeout    = "CANOPY_INFERENCE_TIMEOUT"
	EnvRiskTimeout         = "CANOPY_RISK_TIMEOUT"
	EnvInferenceScratchDir = "CANOPY_INFERENCE_SCRATCH_DIR"
)

// TimeoutDuration returns Timeout as a time.Duration.
func (c *InferenceConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// RiskTimeoutDuration returns RiskTimeout as a time.Duration.
func (c *InferenceConfig) RiskTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RiskTimeout)
	return d
}

// Detection converts the classifier bindings into a dispatcher config.
// The tomato classifier requires a model path to be considered configured.
func (c *InferenceConfig) Detection() detection.Config {
	return detection.Config{
		Bindings: map[detection.PlantType]detection.Binding{
			detection.Tomato: c.Tomato.binding(true),
			detection.Corn:   c.Corn.binding(false),
		},
		Timeout:    c.TimeoutDuration(),
		ScratchDir: c.ScratchDir,
	}
}

// RiskModel converts the risk model binding into an assessor config.
func (c *InferenceConfig) RiskModel() risk.Config {
	return risk.Config{
		Binding: risk.Binding{
			Command: c.Risk.Command,
			Args:    c.Risk.Args,
		},
		Timeout: c.RiskTimeoutDuration(),
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *InferenceConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *InferenceConfig) Merge(overlay *InferenceConfig) {
	c.Tomato.Merge(&overlay.Tomato)
	c.Corn.Merge(&overlay.Corn)

	if overlay.Risk.Command != "" {
		c.Risk.Command = overlay.Risk.Command
	}
	if overlay.Risk.Args != nil {
		c.Risk.Args = overlay.Risk.Args
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.RiskTimeout != "" {
		c.RiskTimeout = overlay.RiskTimeout
	}
	if overlay.ScratchDir != "" {
		c.ScratchDir = overlay.ScratchDir
	}
}

func (c *InferenceConfig) loadDefaults() {
	if c.Timeout == "" {
		c.Timeout = detection.DefaultTimeout.String()
	}
	if c.RiskTimeout == "" {
		c.RiskTimeout = risk.DefaultTimeout.String()
	}
}

func (c *InferenceConfig) loadEnv() {
	c.Tomato.loadEnv(tomatoEnv)
	c.Corn.loadEnv(cornEnv)

	if v := os.Getenv(EnvRiskCommand); v != "" {
		c.Risk.Command = v
	}
	if v := os.Getenv(EnvRiskArgs); v != "" {
		c.Risk.Args = strings.Fields(v)
	}
	if v := os.Getenv(EnvInferenceTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvRiskTimeout); v != "" {
		c.RiskTimeout = v
	}
	if v := os.Getenv(EnvInferenceScratchDir); v != "" {
		c.ScratchDir = v
	}
}

func (c *InferenceConfig) validate() error {
	if d, err := time.ParseDuration(c.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid timeout %q", c.Timeout)
	}
	if d, err := time.ParseDuration(c.RiskTimeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid risk_timeout %q", c.RiskTimeout)
	}
	if c.ScratchDir != "" {
		info, err := os.Stat(c.ScratchDir)
		if err != nil {
			return fmt.Errorf("scratch_dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("scratch_dir %s is not a directory", c.ScratchDir)
		}
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *ClassifierConfig) Merge(overlay *ClassifierConfig) {
	if overlay.Command != "" {
		c.Command = overlay.Command
	}
	if overlay.Args != nil {
		c.Args = overlay.Args
	}
	if overlay.ModelPath != "" {
		c.ModelPath = overlay.ModelPath
	}
	if overlay.ModelTag != "" {
		c.ModelTag = overlay.ModelTag
	}
}

func (c *ClassifierConfig) loadEnv(env *ClassifierEnv) {
	if v := os.Getenv(env.Command); v != "" {
		c.Command = v
	}
	if v := os.Getenv(env.Args); v != "" {
		c.Args = strings.Fields(v)
	}
	if v := os.Getenv(env.ModelPath); v != "" {
		c.ModelPath = v
	}
	if v := os.Getenv(env.ModelTag); v != "" {
		c.ModelTag = v
	}
}

func (c *ClassifierConfig) binding(requireModel bool) detection.Binding {
	return detection.Binding{
		Command:      c.Command,
		Args:         c.Args,
		ModelPath:    c.ModelPath,
		ModelTag:     c.ModelTag,
		RequireModel: requireModel,
	}
}
