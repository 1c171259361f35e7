package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/seqtrace/fasta"
	"github.com/katalvlaran/seqtrace/records"
)

func newIngestCmd(a *app) *cobra.Command {
	var fastaPath, csvPath string
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load genomes (FASTA) and sample details (CSV) into the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if fastaPath == "" && csvPath == "" {
				return errors.New("nothing to ingest: pass --fasta and/or --csv")
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore(st, &err)

			if fastaPath != "" {
				in, err := fasta.Open(fastaPath)
				if err != nil {
					return err
				}
				defer in.Close()

				n := 0
				err = fasta.ForEach(cmd.Context(), in, func(rec fasta.Record) error {
					n++

					return st.PutGenome(fasta.Accession(rec.ID), rec.Seq)
				})
				if err != nil {
					return fmt.Errorf("ingest %s: %w", fastaPath, err)
				}
				a.log.Info("genomes ingested", "file", fastaPath, "count", n)
			}

			if csvPath != "" {
				fh, err := os.Open(csvPath)
				if err != nil {
					return err
				}
				defer fh.Close()

				details, err := records.ReadDetails(fh)
				if err != nil {
					return fmt.Errorf("ingest %s: %w", csvPath, err)
				}
				for _, d := range details {
					if err := st.PutDetail(d); err != nil {
						return err
					}
				}
				a.log.Info("details ingested", "file", csvPath, "count", len(details))
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&fastaPath, "fasta", "", "FASTA file of genomes (.gz accepted, - for stdin)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file of id,location,date rows")

	return cmd
}
