package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/canopy/internal/analysis"
	"github.com/JaimeStill/canopy/internal/detection"
)

type classifyResult struct {
	File string `json:"file"`
	analysis.Result
}

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var plantFlag string

	cmd := &cobra.Command{
		Use:   "classify <image>...",
		Short: "Classify plant images with the configured detection models",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plant, err := detection.ParsePlantType(plantFlag)
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger := ctx.logger(cmd, cfg)
			dispatcher := detection.NewDispatcher(cfg.Inference.Detection(), ctx.runner, logger)

			results := make([]classifyResult, 0, len(args))
			for _, path := range args {
				image, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read image: %w", err)
				}

				outcome, err := dispatcher.Classify(cmd.Context(), image, plant)
				if err != nil {
					return fmt.Errorf("%s: %w", filepath.Base(path), err)
				}

				results = append(results, classifyResult{
					File:   path,
					Result: analysis.Assemble(outcome, ctx.registry),
				})
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, results)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderClassifyResults(results))
			if len(results) == 1 {
				printRecommendations(cmd, results[0].Recommendations)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&plantFlag, "plant", "p", string(detection.Tomato), "Plant type (tomato or corn)")

	return cmd
}

func renderClassifyResults(results []classifyResult) string {
	headers := []string{"File", "Disease", "Label", "Confidence", "Model", "Fallback"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			filepath.Base(r.File),
			r.Disease.Name,
			r.Detection.DiseaseLabel,
			strconv.FormatFloat(r.Detection.Confidence*100, 'f', 1, 64) + "%",
			r.Detection.ModelUsed,
			strconv.FormatBool(r.Detection.IsFallback),
		})
	}
	return renderTable(headers, rows, aligns)
}

func printRecommendations(cmd *cobra.Command, rec analysis.Recommendations) {
	out := cmd.OutOrStdout()
	if len(rec.Immediate) > 0 {
		fmt.Fprintln(out, renderList("Immediate", rec.Immediate))
	}
	if len(rec.LongTerm) > 0 {
		fmt.Fprintln(out, renderList("Long Term", rec.LongTerm))
	}
}
