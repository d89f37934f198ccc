package commands

import (
	"github.com/interactive-instruments/etf-spi/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove stored test results and definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _ := cmd.Flags().GetBool("store")
			all, _ := cmd.Flags().GetBool("all")

			// Default behavior: clean test results
			opts := app.CleanOptions{Results: true}
			switch {
			case all:
				opts.Store = true
			case store:
				opts = app.CleanOptions{Store: true}
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().Bool("store", false, "Clean the object store instead of the results")
	cmd.Flags().BoolP("all", "a", false, "Clean the object store and the results")

	return cmd
}
