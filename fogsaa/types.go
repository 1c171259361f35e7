// Package fogsaa defines the scoring model, search options and sentinel
// errors for the FOGSAA-style pairwise alignment engine.
//
// Costs are minimized internally: a match is a negative cost (a reward),
// mismatches and gaps are positive costs. The public score is the negated
// optimal cost, so a larger score means more similar sequences.
//
// Errors (sentinel):
//
//	– ErrNilSequence       if either input slice is nil.
//	– ErrInvalidScoreModel if the model has negative gap costs or rewards a mismatch over a match.
//	– ErrSearchLimit       if the search exceeded the configured expansion cap.
package fogsaa

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the alignment engine.
var (
	// ErrNilSequence indicates that a nil sequence was passed to the engine.
	// Empty (non-nil) sequences are valid input.
	ErrNilSequence = errors.New("fogsaa: sequence is nil")

	// ErrInvalidScoreModel indicates that a ScoreModel cannot produce sound bounds.
	ErrInvalidScoreModel = errors.New("fogsaa: invalid score model")

	// ErrSearchLimit indicates that the search was stopped by WithMaxExpansions
	// before it could prove a result. Callers treat it as "no result".
	ErrSearchLimit = errors.New("fogsaa: expansion limit reached")
)

// ScoreModel holds the four costs used to score an alignment.
//
// Match is normally negative (a reward); Mismatch, GapOpen and GapExtension
// are positive costs. A ScoreModel is a plain value and safe to share.
type ScoreModel struct {
	Match        int `yaml:"match"`
	Mismatch     int `yaml:"mismatch"`
	GapOpen      int `yaml:"gap_open"`
	GapExtension int `yaml:"gap_extension"`
}

// DefaultScoreModel returns the model used when none is supplied:
// match = -5, mismatch = +2, gap open = +10, gap extension = +2.
func DefaultScoreModel() ScoreModel {
	return ScoreModel{
		Match:        -5,
		Mismatch:     2,
		GapOpen:      10,
		GapExtension: 2,
	}
}

// Validate reports whether m can be used by the engine.
// Gap costs must be non-negative and a mismatch may not cost less than a match.
func (m ScoreModel) Validate() error {
	if m.GapOpen < 0 || m.GapExtension < 0 {
		return fmt.Errorf("%w: gap costs must be non-negative (open=%d, extension=%d)",
			ErrInvalidScoreModel, m.GapOpen, m.GapExtension)
	}
	if m.Mismatch < m.Match {
		return fmt.Errorf("%w: mismatch (%d) is cheaper than match (%d)",
			ErrInvalidScoreModel, m.Mismatch, m.Match)
	}

	return nil
}

// pairCost is the cheapest and the dearest cost of one diagonal step.
func (m ScoreModel) pairCost() (lo, hi int) {
	if m.Match < m.Mismatch {
		return m.Match, m.Mismatch
	}

	return m.Mismatch, m.Match
}

// minGap is the cheapest cost any single gap character can incur.
func (m ScoreModel) minGap() int {
	if m.GapExtension < m.GapOpen {
		return m.GapExtension
	}

	return m.GapOpen
}

// Operation tags how an alignment node was reached from its parent.
type Operation uint8

const (
	// Root is the synthetic start state before any character is consumed.
	Root Operation = iota

	// Match consumes one equal character from each sequence.
	Match

	// Mismatch consumes one character from each sequence, characters differ.
	Mismatch

	// GapInFirst consumes a character of the second sequence only.
	GapInFirst

	// GapInSecond consumes a character of the first sequence only.
	GapInSecond
)

// IsGap reports whether the operation consumed a character from one sequence only.
// Both gap directions share one affine state.
func (op Operation) IsGap() bool {
	return op == GapInFirst || op == GapInSecond
}

// String implements fmt.Stringer.
func (op Operation) String() string {
	switch op {
	case Root:
		return "root"
	case Match:
		return "match"
	case Mismatch:
		return "mismatch"
	case GapInFirst:
		return "gap-in-first"
	case GapInSecond:
		return "gap-in-second"
	default:
		return fmt.Sprintf("operation(%d)", uint8(op))
	}
}

// BoundKind selects how the best-case completion cost of a node is estimated.
//
//   - BoundAffine       - admissible relaxation aware of the affine gap state (default).
//     Guarantees the optimal score.
//   - BoundPerSymbolGap - charges every excess character GapOpen+GapExtension, as in
//     the FOGSAA paper. Prunes harder, may miss the optimum when gaps are cheap to extend.
type BoundKind int

const (
	// BoundAffine is the admissible lower bound.
	BoundAffine BoundKind = iota

	// BoundPerSymbolGap is the per-character gap charge heuristic.
	BoundPerSymbolGap
)

// Less orders two nodes in the frontier; it reports whether x is more promising than y.
type Less func(x, y *Node) bool

// ByLowerBound orders nodes by ascending optimistic total cost.
// Ties keep no particular order.
func ByLowerBound(x, y *Node) bool {
	return x.LowerBound() < y.LowerBound()
}

// Options configures a single comparison.
//
// Model         – score model; must pass ScoreModel.Validate.
// Bound         – best-case estimator (BoundAffine by default).
// Ordering      – frontier comparator (ByLowerBound by default).
// MaxExpansions – cap on nodes removed from the frontier; 0 means unlimited.
type Options struct {
	Model         ScoreModel
	Bound         BoundKind
	Ordering      Less
	MaxExpansions int
}

// Option represents a functional option for configuring a comparison.
type Option func(*Options)

// WithScoreModel sets the score model.
func WithScoreModel(m ScoreModel) Option {
	return func(o *Options) {
		o.Model = m
	}
}

// WithBound selects the best-case estimator.
func WithBound(kind BoundKind) Option {
	return func(o *Options) {
		o.Bound = kind
	}
}

// WithOrdering replaces the frontier comparator. A nil comparator keeps the default.
// Optimality is only guaranteed with ByLowerBound.
func WithOrdering(less Less) Option {
	return func(o *Options) {
		if less != nil {
			o.Ordering = less
		}
	}
}

// WithMaxExpansions caps the number of nodes taken from the frontier.
// Non-positive values disable the cap.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		o.MaxExpansions = n
	}
}

// DefaultOptions returns the options used when no Option is given.
func DefaultOptions() Options {
	return Options{
		Model:    DefaultScoreModel(),
		Bound:    BoundAffine,
		Ordering: ByLowerBound,
	}
}
