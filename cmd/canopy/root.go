package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var jsonFlag bool

	ctx := newCommandContext(&jsonFlag)

	rootCmd := &cobra.Command{
		Use:           "canopy",
		Short:         "Canopy plant disease operator CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Output JSON")

	rootCmd.AddCommand(newClassifyCommand(ctx))
	rootCmd.AddCommand(newRiskCommand(ctx))
	rootCmd.AddCommand(newDiseasesCommand(ctx))

	return rootCmd
}
