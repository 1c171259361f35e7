// Package network aggregates inferred spreads into a directed, weighted graph
// of locations.
//
// Vertices are locations; the aggregate edge From→To sums the strength and the
// number of spreads whose source sample was collected at From and whose target
// sample was collected at To. Self-loops (spread within one location) are kept.
//
// Every spread is stored as its own weighted edge of a directed multigraph
// (core.Graph); the per-pair and per-region views aggregate those edges on
// read. The underlying graph is thread-safe, so a Graph can be filled from
// several goroutines while it is queried.
//
// Errors:
//
//	ErrEmptyLocation - a spread endpoint has an empty location.
//	ErrUnknownRegion - the queried region received no spreads.
package network

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/seqtrace/core"
	"github.com/katalvlaran/seqtrace/store"
)

// Sentinel errors for network operations.
var (
	// ErrEmptyLocation indicates a spread with an empty source or target location.
	ErrEmptyLocation = errors.New("network: location is empty")

	// ErrUnknownRegion indicates no spread ends in the requested region.
	ErrUnknownRegion = errors.New("network: region has no incoming spreads")
)

// Edge is the aggregate of all spreads between two locations.
type Edge struct {
	From     string
	To       string
	Strength float64
	Count    int
}

// SourceCount is one row of the per-region view: how many cases in a region
// trace back to Source.
type SourceCount struct {
	Source   string
	Count    int
	Strength float64
}

// Graph is the in-memory transmission network.
type Graph struct {
	g *core.Graph
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{g: core.NewGraph(
		core.WithDirected(true),
		core.WithWeighted(),
		core.WithMultiEdges(),
		core.WithLoops(),
	)}
}

// FromSpreads builds a Graph from stored spreads.
func FromSpreads(spreads []store.Spread) (*Graph, error) {
	g := NewGraph()
	for _, sp := range spreads {
		if err := g.AddSpread(sp.SourceLocation, sp.TargetLocation, sp.Strength); err != nil {
			return nil, fmt.Errorf("spread %s -> %s: %w", sp.SourceID, sp.TargetID, err)
		}
	}

	return g, nil
}

// AddSpread records one spread of the given strength from → to.
// Complexity: O(1)
func (g *Graph) AddSpread(from, to string, strength float64) error {
	if from == "" || to == "" {
		return ErrEmptyLocation
	}
	if _, err := g.g.AddEdge(from, to, strength); err != nil {
		return fmt.Errorf("network: add spread %s -> %s: %w", from, to, err)
	}

	return nil
}

// Locations returns every location seen as source or target, sorted.
func (g *Graph) Locations() []string {
	return g.g.Vertices()
}

// Regions returns every location that received at least one spread, sorted.
func (g *Graph) Regions() []string {
	seen := make(map[string]struct{})
	for _, e := range g.g.Edges() {
		seen[e.To] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Strings(out)

	return out
}

// Sources lists where the cases of region came from, most cases first and
// then by source name.
func (g *Graph) Sources(region string) ([]SourceCount, error) {
	in, err := g.g.InEdges(region)
	if err != nil || len(in) == 0 {
		return nil, ErrUnknownRegion
	}

	bySource := make(map[string]*SourceCount)
	for _, e := range in {
		sc, ok := bySource[e.From]
		if !ok {
			sc = &SourceCount{Source: e.From}
			bySource[e.From] = sc
		}
		sc.Count++
		sc.Strength += e.Weight
	}
	out := make([]SourceCount, 0, len(bySource))
	for _, sc := range bySource {
		out = append(out, *sc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Source < out[j].Source
	})

	return out, nil
}

// Edges returns one aggregate per location pair, sorted by From, then To.
func (g *Graph) Edges() []Edge {
	type pair struct{ from, to string }
	byPair := make(map[pair]*Edge)
	for _, e := range g.g.Edges() {
		k := pair{e.From, e.To}
		agg, ok := byPair[k]
		if !ok {
			agg = &Edge{From: e.From, To: e.To}
			byPair[k] = agg
		}
		agg.Strength += e.Weight
		agg.Count++
	}

	out := make([]Edge, 0, len(byPair))
	for _, e := range byPair {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}

		return out[i].To < out[j].To
	})

	return out
}
