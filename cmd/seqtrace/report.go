package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/seqtrace/network"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newReportCmd(a *app) *cobra.Command {
	var region string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show where the cases of each region came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore(st, &err)

			spreads, err := st.Spreads()
			if err != nil {
				return err
			}
			g, err := network.FromSpreads(spreads)
			if err != nil {
				return err
			}

			regions := g.Regions()
			if region != "" {
				regions = []string{region}
			}
			if len(regions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no spreads stored; run trace first")

				return nil
			}

			var rows [][]string
			for _, r := range regions {
				sources, err := g.Sources(r)
				if err != nil {
					return fmt.Errorf("region %q: %w", r, err)
				}
				for _, sc := range sources {
					rows = append(rows, []string{r, sc.Source, strconv.Itoa(sc.Count)})
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(rows))

			return nil
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "only show sources of this region")

	return cmd
}

func renderTable(rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("REGION", "SOURCE", "CASES").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})

	return t.String()
}
