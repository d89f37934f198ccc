package commands

import (
	"github.com/interactive-instruments/etf-spi/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run executable test suites against a test object",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			suites, _ := cmd.Flags().GetStringArray("suite")
			object, _ := cmd.Flags().GetString("object")
			template, _ := cmd.Flags().GetString("template")
			label, _ := cmd.Flags().GetString("label")
			watch, _ := cmd.Flags().GetBool("watch")
			output, _ := cmd.Flags().GetString("output")

			if len(suites) == 0 && template == "" {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			return c.app.Run(cmd.Context(), app.RunOptions{
				Suites:   suites,
				Object:   object,
				Template: template,
				Label:    label,
				Watch:    watch,
				Output:   output,
			})
		},
	}
	cmd.Flags().StringArrayP("suite", "s", nil, "Id of an executable test suite to run (repeatable)")
	cmd.Flags().StringP("object", "o", "", "Id of the test object to test")
	cmd.Flags().StringP("template", "t", "", "Id of a test run template")
	cmd.Flags().String("label", "", "Label of the test run")
	cmd.Flags().Bool("watch", false, "Keep watching definition files after the run until interrupted")
	cmd.Flags().String("output", "auto", "Progress output: auto, tui or linear")
	return cmd
}
