package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/seqtrace/dates"
)

func newStopDateCmd(a *app) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "stopdate DATE",
		Short: "Print the date a number of days before DATE (YYYY, YYYY-MM or YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") {
				days = a.cfg.Trace.WindowDays
			}
			stop, err := dates.StopDate(args[0], days)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), stop)

			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "days to go back (default: trace.window_days)")

	return cmd
}
