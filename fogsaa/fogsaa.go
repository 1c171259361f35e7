package fogsaa

import "fmt"

// FOGSAA: Fast Optimal Global Sequence Alignment Algorithm
//
// Description:
//
//	Scores the global alignment of two sequences with a best-first
//	branch-and-bound search over partial alignments. Every node carries an
//	optimistic (lower) and pessimistic (upper) estimate of the total cost of
//	any alignment through it; subtrees whose optimistic estimate is worse than
//	the best complete alignment found so far are never visited.
//
// Algorithm Outline:
//  1. Build the root (no characters consumed) and push its children.
//  2. best = max(n,m)·(GapOpen+GapExtension) + min(n,m)·Mismatch + 1,
//     which is worse than any complete alignment.
//  3. While the frontier minimum has LowerBound ≤ best:
//     a. pop the minimum as current;
//     b. while current has children: push them, pop the new minimum as current;
//     c. current is a complete alignment; best = min(best, current.PresentCost).
//  4. Return -best.
//
// Step 3b follows the currently cheapest branch down to a leaf before the
// frontier is re-audited. Every pop still takes the global minimum, so the
// returned score is optimal whenever the lower bound is admissible (BoundAffine).
//
// Complexity:
//
//	Time   = O(K log K) for K generated nodes; exponential in the worst case,
//	         close to O((n+m) log(n+m)) for similar sequences.
//	Memory = O(K) node arena.

// Result is the outcome of one comparison.
//
// Score      – similarity, higher is more similar (-Cost).
// Cost       – cost of the best complete alignment.
// Expansions – nodes removed from the frontier.
// Generated  – nodes created in the arena, root included.
// Leaves     – complete alignments reached.
type Result struct {
	Score      int
	Cost       int
	Expansions int
	Generated  int
	Leaves     int
}

// CompareSequences returns the similarity score of a and b.
// The score is symmetric in its arguments.
//
// Empty sequences are valid: aligning against an empty sequence is a single
// gap run, and two empty sequences score 0. Nil slices fail with ErrNilSequence.
//
// Example:
//
//	score, err := CompareSequences([]byte("ACGT"), []byte("ACGT")) // 20
func CompareSequences[T comparable](a, b []T, opts ...Option) (int, error) {
	res, err := Align(a, b, opts...)
	if err != nil {
		return 0, err
	}

	return res.Score, nil
}

// CompareStrings compares two strings byte by byte.
func CompareStrings(a, b string, opts ...Option) (int, error) {
	res, err := align([]byte(a), []byte(b), opts)
	if err != nil {
		return 0, err
	}

	return res.Score, nil
}

// Align runs the search and returns the score together with search statistics.
//
// Preconditions and validation (in order):
//  1. a and b must be non-nil (ErrNilSequence).
//  2. the score model must be valid (ErrInvalidScoreModel).
//
// With WithMaxExpansions the search may stop early with ErrSearchLimit; the
// returned Result then holds the statistics gathered so far.
func Align[T comparable](a, b []T, opts ...Option) (Result, error) {
	if a == nil || b == nil {
		return Result{}, ErrNilSequence
	}

	return align(a, b, opts)
}

func align[T comparable](a, b []T, opts []Option) (Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Model.Validate(); err != nil {
		return Result{}, err
	}

	s := &search[T]{
		tree: NewTree(a, b, cfg.Model, cfg.Bound),
		opts: cfg,
	}
	res, err := s.run(sentinel(len(a), len(b), cfg.Model))
	res.Generated = s.tree.Len()

	return res, err
}

// sentinel is strictly worse than the cost of any complete alignment of
// sequences with lengths n and m: it exceeds the root's upper bound.
func sentinel(n, m int, model ScoreModel) int {
	shorter, longer := minMax(n, m)
	_, pairHi := model.pairCost()

	return longer*(model.GapOpen+model.GapExtension) + shorter*pairHi + 1
}

// search holds the mutable state of one comparison.
type search[T comparable] struct {
	tree       *Tree[T]
	opts       Options
	expansions int
	leaves     int
}

// run executes the best-first loop. best is the initial sentinel cost.
func (s *search[T]) run(best int) (Result, error) {
	t := s.tree
	children := t.Expand(t.Root())
	if len(children) == 0 {
		// Both sequences are empty: the root is the only complete alignment.
		return Result{Leaves: 1}, nil
	}

	frontier := NewFrontier(t.Node, s.opts.Ordering)
	for _, c := range children {
		frontier.Push(c)
	}

	for frontier.Len() > 0 && t.Node(frontier.Peek()).LowerBound() <= best {
		current, err := s.pop(frontier)
		if err != nil {
			return s.result(best), err
		}

		// Greedy descent to a leaf.
		for kids := t.Expand(current); len(kids) > 0; kids = t.Expand(current) {
			for _, c := range kids {
				frontier.Push(c)
			}
			if current, err = s.pop(frontier); err != nil {
				return s.result(best), err
			}
		}

		s.leaves++
		if cost := t.Node(current).PresentCost; cost < best {
			best = cost
		}
	}

	return s.result(best), nil
}

// pop removes the frontier minimum and enforces the expansion cap.
func (s *search[T]) pop(f *Frontier) (NodeID, error) {
	s.expansions++
	if s.opts.MaxExpansions > 0 && s.expansions > s.opts.MaxExpansions {
		return 0, fmt.Errorf("%w: more than %d expansions", ErrSearchLimit, s.opts.MaxExpansions)
	}

	return f.Pop(), nil
}

func (s *search[T]) result(best int) Result {
	return Result{
		Score:      -best,
		Cost:       best,
		Expansions: s.expansions,
		Leaves:     s.leaves,
	}
}
