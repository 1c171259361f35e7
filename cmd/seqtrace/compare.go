package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/seqtrace/fasta"
	"github.com/katalvlaran/seqtrace/fogsaa"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		maxExpansions int
		stats         bool
	)
	cmd := &cobra.Command{
		Use:   "compare A B",
		Short: "Score the global alignment of two sequences",
		Long: `Score the global alignment of two sequences with the configured model.
An argument starting with @ names a file: a FASTA file contributes its first
record, any other file its whole trimmed content.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seqA, err := sequenceArg(args[0])
			if err != nil {
				return err
			}
			seqB, err := sequenceArg(args[1])
			if err != nil {
				return err
			}

			res, err := fogsaa.Align(seqA, seqB,
				fogsaa.WithScoreModel(a.cfg.Score),
				fogsaa.WithMaxExpansions(maxExpansions),
			)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if stats {
				fmt.Fprintf(out, "score=%d expansions=%d generated=%d leaves=%d\n",
					res.Score, res.Expansions, res.Generated, res.Leaves)

				return nil
			}
			fmt.Fprintln(out, res.Score)

			return nil
		},
	}
	cmd.Flags().IntVar(&maxExpansions, "max-expansions", 0, "abort after this many expansions (0 = no cap)")
	cmd.Flags().BoolVar(&stats, "stats", false, "print search statistics with the score")

	return cmd
}

// sequenceArg resolves a literal sequence or an @file reference.
func sequenceArg(arg string) ([]byte, error) {
	path, ok := strings.CutPrefix(arg, "@")
	if !ok {
		return []byte(arg), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(">")) {
		recs, err := fasta.ReadAll(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		return nonNil(recs[0].Seq), nil
	}

	return nonNil(bytes.ToUpper(bytes.Join(bytes.Fields(data), nil))), nil
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}

	return b
}
