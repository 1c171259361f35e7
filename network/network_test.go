package network_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/seqtrace/network"
	"github.com/katalvlaran/seqtrace/store"
)

func TestGraph_SourcesAggregate(t *testing.T) {
	g := network.NewGraph()
	require.NoError(t, g.AddSpread("China", "Italy", 1))
	require.NoError(t, g.AddSpread("China", "Italy", 1))
	require.NoError(t, g.AddSpread("Germany", "Italy", 1))
	require.NoError(t, g.AddSpread("Austria", "Italy", 0.5))
	require.NoError(t, g.AddSpread("Italy", "Italy", 1))
	require.NoError(t, g.AddSpread("China", "USA", 1))

	assert.Equal(t, []string{"Italy", "USA"}, g.Regions())
	assert.Equal(t, []string{"Austria", "China", "Germany", "Italy", "USA"}, g.Locations())

	got, err := g.Sources("Italy")
	require.NoError(t, err)
	assert.Equal(t, []network.SourceCount{
		{Source: "China", Count: 2, Strength: 2},
		{Source: "Austria", Count: 1, Strength: 0.5},
		{Source: "Germany", Count: 1, Strength: 1},
		{Source: "Italy", Count: 1, Strength: 1},
	}, got)

	_, err = g.Sources("Mars")
	assert.ErrorIs(t, err, network.ErrUnknownRegion)
	_, err = g.Sources("China")
	assert.ErrorIs(t, err, network.ErrUnknownRegion, "a pure source is not a region")

	edges := g.Edges()
	require.Len(t, edges, 5)
	assert.Equal(t, network.Edge{From: "Austria", To: "Italy", Strength: 0.5, Count: 1}, edges[0])
}

func TestGraph_EmptyLocation(t *testing.T) {
	g := network.NewGraph()
	assert.ErrorIs(t, g.AddSpread("", "Italy", 1), network.ErrEmptyLocation)
	assert.ErrorIs(t, g.AddSpread("Italy", "", 1), network.ErrEmptyLocation)
	assert.Empty(t, g.Regions())
}

// TestGraph_ConcurrentAdd checks that parallel writers lose no spreads.
func TestGraph_ConcurrentAdd(t *testing.T) {
	g := network.NewGraph()
	const num = 200
	var wg sync.WaitGroup
	wg.Add(num)
	for i := 0; i < num; i++ {
		go func(id int) {
			defer wg.Done()
			assert.NoError(t, g.AddSpread(fmt.Sprintf("S%d", id%4), "Hub", 1))
			_ = g.Regions()
		}(i)
	}
	wg.Wait()

	got, err := g.Sources("Hub")
	require.NoError(t, err)
	require.Len(t, got, 4)
	total := 0
	for _, sc := range got {
		total += sc.Count
	}
	assert.Equal(t, num, total)
}

func TestFromSpreads(t *testing.T) {
	g, err := network.FromSpreads([]store.Spread{
		{SourceID: "a", TargetID: "b", SourceLocation: "China", TargetLocation: "Italy", Strength: 1},
		{SourceID: "b", TargetID: "c", SourceLocation: "Italy", TargetLocation: "Italy", Strength: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Italy"}, g.Regions())

	_, err = network.FromSpreads([]store.Spread{{SourceID: "a", TargetID: "b", TargetLocation: "Italy"}})
	assert.ErrorIs(t, err, network.ErrEmptyLocation)
}
