// Package seqtrace infers how a pathogen spread between locations from its
// sequenced genomes and the place and date each sample was collected.
//
// 🚀 What is seqtrace?
//
//	Every sample is linked to the most similar genome collected somewhere in
//	the preceding weeks. Each link is a spread from the source sample's
//	location to the target's; summed per region they show where that
//	region's cases came from.
//
// ✨ Building blocks:
//
//	fogsaa/   - optimal global alignment scores via best-first branch-and-bound
//	dates/    - partial date parsing (YYYY, YYYY-MM, YYYY-MM-DD) and lookback windows
//	fasta/    - streaming FASTA reader, gzip aware
//	records/  - CSV sample metadata (accession, location, date)
//	store/    - BadgerDB persistence of genomes, details and spreads
//	tracker/  - concurrent spread inference with Prometheus metrics
//	core/     - thread-safe directed, weighted multigraph
//	network/  - per-region aggregation of spreads over core
//	config/   - YAML configuration with validation
//	cmd/seqtrace - CLI: ingest, trace, report, compare, stopdate
//
// Quick start:
//
//	seqtrace ingest --fasta genomes.fasta.gz --csv details.csv
//	seqtrace trace
//	seqtrace report --region Italy
//
//	go install github.com/katalvlaran/seqtrace/cmd/seqtrace@latest
package seqtrace
