package main

import (
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/canopy/internal/config"
	"github.com/JaimeStill/canopy/internal/diseases"
	"github.com/JaimeStill/canopy/internal/infrastructure"
	"github.com/JaimeStill/canopy/pkg/process"
)

type commandContext struct {
	jsonFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	registry *diseases.Registry
	runner   *process.Runner
}

func newCommandContext(jsonFlag *bool) *commandContext {
	return &commandContext{
		jsonFlag: jsonFlag,
		registry: diseases.Default(),
		runner:   process.New(),
	}
}

// ensureConfig loads the inference settings once. Database and storage
// sections are not validated.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = config.LoadInference()
	})
	return c.config, c.configErr
}

// logger writes to the command's stderr so stdout stays machine readable.
func (c *commandContext) logger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return infrastructure.NewLogger(cfg, cmd.ErrOrStderr())
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}
