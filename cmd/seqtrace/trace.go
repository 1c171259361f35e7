package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/seqtrace/tracker"
)

func newTraceCmd(a *app) *cobra.Command {
	var metricsFile string
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Infer spreads from the ingested samples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore(st, &err)

			reg := prometheus.NewRegistry()
			tr, err := tracker.New(st,
				tracker.WithScoreModel(a.cfg.Score),
				tracker.WithWindowDays(a.cfg.Trace.WindowDays),
				tracker.WithWorkers(a.cfg.Trace.Workers),
				tracker.WithMaxExpansions(a.cfg.Trace.MaxExpansions),
				tracker.WithLogger(a.log),
				tracker.WithMetrics(tracker.NewMetrics(reg)),
			)
			if err != nil {
				return err
			}
			spreads, err := tr.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d spreads inferred\n", len(spreads))

			if metricsFile != "" {
				if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics of the run to this file")

	return cmd
}
