package fogsaa_test

import (
	"fmt"

	"github.com/katalvlaran/seqtrace/fogsaa"
)

// ////////////////////////////////////////////////////////////////////////////
// ExampleCompareStrings
// ////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Two short genome fragments differing by a deletion and a substitution.
//	  a = ACCAGTATGG
//	  b = ACGATGG
//
// Model: default (match -5, mismatch +2, gap open +10, gap extension +2).
// Higher scores mean closer sequences.
func ExampleCompareStrings() {
	score, err := fogsaa.CompareStrings("ACCAGTATGG", "ACGATGG")
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println("score:", score)
	// Output:
	// score: 14
}

// ExampleAlign shows search statistics for identical inputs: the engine walks
// straight down the diagonal.
func ExampleAlign() {
	res, err := fogsaa.Align([]byte("ACGT"), []byte("ACGT"))
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("score=%d expansions=%d leaves=%d\n", res.Score, res.Expansions, res.Leaves)
	// Output:
	// score=20 expansions=4 leaves=1
}

// ExampleWithScoreModel compares words as token sequences under a custom model.
func ExampleWithScoreModel() {
	model := fogsaa.ScoreModel{Match: -1, Mismatch: 1, GapOpen: 3, GapExtension: 1}
	a := []string{"the", "quick", "brown", "fox"}
	b := []string{"the", "brown", "fox"}

	score, err := fogsaa.CompareSequences(a, b, fogsaa.WithScoreModel(model))
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println("score:", score)
	// Output:
	// score: 0
}
