// Package fogsaa scores global pairwise alignments of symbol sequences with a
// FOGSAA-style best-first branch-and-bound search.
//
// 🚀 What is FOGSAA?
//
//	Instead of filling the whole n×m dynamic-programming matrix, FOGSAA walks
//	an implicit tree of partial alignments. Each node knows the cost of the
//	path so far and cheap optimistic/pessimistic estimates of what the rest
//	of the alignment can cost. The most promising node is always expanded
//	next, and branches that cannot beat the best complete alignment found so
//	far are never touched. For closely related sequences (e.g. genomes of one
//	lineage) only a thin band around the diagonal is ever generated.
//
// ✨ Key features:
//   - generic over any comparable symbol type ([]byte, []rune, []string …)
//   - affine gaps: opening a gap costs more than extending one
//   - admissible bounds by default, so the returned score is optimal
//   - pluggable frontier ordering and bound estimator for experiments
//   - optional expansion cap for callers that need bounded latency
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/seqtrace/fogsaa"
//
//	score, err := fogsaa.CompareStrings("ACCAGTATGG", "ACGATGG")
//
//	// custom model and a cap on work
//	res, err := fogsaa.Align(a, b,
//	  fogsaa.WithScoreModel(fogsaa.ScoreModel{Match: -1, Mismatch: 1, GapOpen: 3, GapExtension: 1}),
//	  fogsaa.WithMaxExpansions(1_000_000),
//	)
//
// Concurrency:
//
//	Every call allocates its own tree and frontier and touches no shared
//	state, so independent comparisons may run on as many goroutines as
//	needed. A single comparison is strictly sequential.
//
// Note: the affine gap state does not distinguish a gap in the first sequence
// from a gap in the second; switching gap direction is priced as an extension.
package fogsaa
