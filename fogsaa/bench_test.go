package fogsaa_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/seqtrace/fogsaa"
)

// mutate copies s and applies k point substitutions and one deletion.
func mutate(rng *rand.Rand, s []byte, k int) []byte {
	out := append([]byte(nil), s...)
	for i := 0; i < k; i++ {
		out[rng.Intn(len(out))] = "ACGT"[rng.Intn(4)]
	}
	mid := len(out) / 2

	return append(out[:mid], out[mid+1:]...)
}

// benchmarkAlign aligns a random sequence of length n against a lightly mutated copy.
func benchmarkAlign(b *testing.B, n int) {
	rng := rand.New(rand.NewSource(3))
	a := []byte(randomDNA(rng, n))
	c := mutate(rng, a, n/10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fogsaa.CompareSequences(a, c); err != nil {
			b.Fatalf("CompareSequences failed: %v", err)
		}
	}
}

// BenchmarkAlign_Identical100 measures the best case: a straight diagonal.
func BenchmarkAlign_Identical100(b *testing.B) {
	rng := rand.New(rand.NewSource(5))
	a := []byte(randomDNA(rng, 100))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fogsaa.CompareSequences(a, a); err != nil {
			b.Fatalf("CompareSequences failed: %v", err)
		}
	}
}

// BenchmarkAlign_Similar20 aligns 20-mers with ~10% divergence.
func BenchmarkAlign_Similar20(b *testing.B) { benchmarkAlign(b, 20) }

// BenchmarkAlign_Similar40 aligns 40-mers with ~10% divergence.
func BenchmarkAlign_Similar40(b *testing.B) { benchmarkAlign(b, 40) }
