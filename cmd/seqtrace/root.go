package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/seqtrace/config"
	"github.com/katalvlaran/seqtrace/store"
)

// app carries state shared by every subcommand once the root pre-run has
// loaded the configuration.
type app struct {
	configPath string
	logLevel   string

	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "seqtrace",
		Short:         "Infer how a pathogen spread between locations from its genomes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "seqtrace.yaml", "path to the YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	root.AddCommand(
		newIngestCmd(a),
		newTraceCmd(a),
		newReportCmd(a),
		newCompareCmd(a),
		newStopDateCmd(a),
	)

	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.log = cfg.Log.NewLogger(cmd.ErrOrStderr())

	return nil
}

func (a *app) openStore() (*store.Store, error) {
	st, err := store.Open(store.Config{
		Path:       a.cfg.Store.Path,
		InMemory:   a.cfg.Store.InMemory,
		SyncWrites: a.cfg.Store.SyncWrites,
		Logger:     a.log.With("component", "badger"),
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return st, nil
}

// closeStore closes st and reports the close error unless err is already set.
func closeStore(st *store.Store, err *error) {
	if cerr := st.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}
