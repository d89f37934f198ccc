package commands

import (
	"fmt"
	"strings"

	"github.com/interactive-instruments/etf-spi/internal/adapters/plugin"
	"github.com/interactive-instruments/etf-spi/internal/build"
	"github.com/spf13/cobra"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the engine version and the compiled-in test drivers",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if short, _ := cmd.Flags().GetBool("short"); short {
				_, _ = fmt.Fprintln(out, build.Version)
				return
			}
			_, _ = fmt.Fprintf(out, "etf version %s (commit: %s, date: %s)\n", build.Version, build.Commit, build.Date)
			_, _ = fmt.Fprintf(out, "drivers: %s\n", driverIDs())
		},
	}
	cmd.Flags().Bool("short", false, "Print only the version number")
	return cmd
}

func driverIDs() string {
	components := plugin.Registered()
	if len(components) == 0 {
		return "none"
	}
	ids := make([]string, len(components))
	for i, c := range components {
		ids[i] = c.ID
	}
	return strings.Join(ids, ", ")
}
