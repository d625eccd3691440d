package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/canopy/internal/risk"
)

func newRiskCommand(ctx *commandContext) *cobra.Command {
	var conditions risk.Conditions

	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Assess disease risk for weather conditions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := conditions.Validate(); err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			assessor := risk.NewAssessor(cfg.Inference.RiskModel(), ctx.runner, ctx.logger(cmd, cfg))
			result := assessor.AssessConditions(cmd.Context(), conditions)

			if ctx.jsonOutput() {
				return writeJSON(cmd, result)
			}

			fields := [][2]string{
				{"Risk Level", renderLevel(result.RiskLevel, shouldColorize(cmd.OutOrStdout()))},
				{"Temperature", strconv.FormatFloat(result.Temperature, 'f', -1, 64) + " C"},
				{"Humidity", strconv.FormatFloat(result.Humidity, 'f', -1, 64) + " %"},
				{"Source", string(result.Source)},
			}
			if result.Probability != nil {
				fields = append(fields, [2]string{"Probability", strconv.FormatFloat(*result.Probability, 'f', 2, 64)})
			}
			fields = append(fields, [2]string{"Description", result.Description})

			fmt.Fprintln(cmd.OutOrStdout(), renderFields(fields))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64VarP(&conditions.Temperature, "temperature", "t", 0, "Air temperature in degrees Celsius")
	flags.Float64VarP(&conditions.Humidity, "humidity", "u", 0, "Relative humidity percent")
	flags.Float64Var(&conditions.Rain, "rain", 0, "Rainfall in millimeters")
	flags.Float64Var(&conditions.WindSpeed, "wind-speed", 0, "Wind speed in meters per second")
	flags.Float64Var(&conditions.Cloudiness, "cloudiness", 0, "Cloud cover percent")
	cmd.MarkFlagRequired("temperature")
	cmd.MarkFlagRequired("humidity")

	return cmd
}
