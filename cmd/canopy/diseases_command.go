package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/canopy/internal/diseases"
)

func newDiseasesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "diseases [id]",
		Short: "List known diseases or show one record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return showDisease(cmd, ctx, args[0])
			}

			list := ctx.registry.List()
			if ctx.jsonOutput() {
				return writeJSON(cmd, diseases.ListResult{Diseases: list, Total: len(list)})
			}

			rows := make([][]string, 0, len(list))
			for _, s := range list {
				rows = append(rows, []string{s.ID, s.Name, deref(s.ScientificName)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Scientific Name"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func showDisease(cmd *cobra.Command, ctx *commandContext, id string) error {
	rec, ok := ctx.registry.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", diseases.ErrNotFound, id)
	}

	if ctx.jsonOutput() {
		return writeJSON(cmd, rec)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderFields([][2]string{
		{"ID", rec.ID},
		{"Name", rec.Name},
		{"Scientific Name", deref(rec.ScientificName)},
		{"Description", rec.Description},
	}))

	sections := []struct {
		header string
		items  []string
	}{
		{"Symptoms", rec.Symptoms},
		{"Causes", rec.Causes},
		{"Treatment", rec.Treatment},
		{"Prevention", rec.Prevention},
	}
	for _, s := range sections {
		if len(s.items) > 0 {
			fmt.Fprintln(out, renderList(s.header, s.items))
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return strings.TrimSpace(*s)
}
