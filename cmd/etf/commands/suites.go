package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func (c *CLI) newSuitesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suites",
		Short: "List the executable test suites of the configured drivers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			suites, err := c.app.Suites(cmd.Context())
			if err != nil {
				return err
			}
			if len(suites) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No executable test suites found")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleDefault)
			t.AppendHeader(table.Row{"Id", "Label", "Version", "Driver", "Assertions", "Dependencies"})
			for _, s := range suites {
				t.AppendRow(table.Row{s.EID.String(), s.Label, s.Version, s.DriverID, strconv.Itoa(s.LowestLevelItemSize), dependencies(s)})
			}
			t.Render()
			return nil
		},
	}
}

func dependencies(s *domain.ExecutableTestSuite) string {
	deps := make([]string, len(s.Dependencies))
	for i, ref := range s.Dependencies {
		deps[i] = ref.ID.String()
		if ref.DriverID != "" {
			deps[i] += "@" + ref.DriverID
		}
	}
	return strings.Join(deps, ", ")
}
