package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/seqtrace/records"
	"github.com/katalvlaran/seqtrace/store"
)

// StoreSuite runs every test against a fresh in-memory store.
type StoreSuite struct {
	suite.Suite
	s *store.Store
}

func (ss *StoreSuite) SetupTest() {
	s, err := store.Open(store.InMemoryConfig())
	ss.Require().NoError(err)
	ss.s = s
}

func (ss *StoreSuite) TearDownTest() {
	ss.Require().NoError(ss.s.Close())
}

func (ss *StoreSuite) TestGenomeRoundTrip() {
	ss.Require().NoError(ss.s.PutGenome("MN908947", []byte("ACGT")))

	got, err := ss.s.Genome("MN908947")
	ss.Require().NoError(err)
	ss.Equal("ACGT", string(got))

	_, err = ss.s.Genome("missing")
	ss.ErrorIs(err, store.ErrNotFound)

	ss.ErrorIs(ss.s.PutGenome("", []byte("A")), store.ErrEmptyID)
}

func (ss *StoreSuite) TestDetailsKeepIngestionOrder() {
	in := []records.Detail{
		{ID: "C", Location: "Italy", Date: "2020-02-20"},
		{ID: "A", Location: "China", Date: "2019-12"},
		{ID: "B", Location: "USA", Date: "2020-01-25"},
	}
	for _, d := range in {
		ss.Require().NoError(ss.s.PutDetail(d))
	}
	// Updating a known id keeps its row.
	ss.Require().NoError(ss.s.PutDetail(records.Detail{ID: "C", Location: "Italy: Lombardy", Date: "2020-02-20"}))

	rows, err := ss.s.Details()
	ss.Require().NoError(err)
	ss.Require().Len(rows, 3)
	ss.Equal([]string{"C", "A", "B"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})
	ss.Equal("Italy: Lombardy", rows[0].Location)
	ss.Less(rows[0].Row, rows[1].Row)
	ss.Less(rows[1].Row, rows[2].Row)
}

func (ss *StoreSuite) TestSpreads() {
	spreads := []store.Spread{
		{SourceID: "A", TargetID: "C", SourceLocation: "China", TargetLocation: "Italy", Strength: 1, Score: 40},
		{SourceID: "A", TargetID: "B", SourceLocation: "China", TargetLocation: "USA", Strength: 1, Score: 35},
	}
	ss.Require().NoError(ss.s.PutSpreads(spreads))
	ss.NotEmpty(spreads[0].ID, "ids are assigned in place")

	got, err := ss.s.Spreads()
	ss.Require().NoError(err)
	ss.Require().Len(got, 2)
	ss.Equal("B", got[0].TargetID)
	ss.Equal("C", got[1].TargetID)
	ss.Equal(40, got[1].Score)

	ss.Require().NoError(ss.s.ClearSpreads())
	got, err = ss.s.Spreads()
	ss.Require().NoError(err)
	ss.Empty(got)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

// TestOpen_Persistent reopens an on-disk store and checks data and row order survive.
func TestOpen_Persistent(t *testing.T) {
	dir := t.TempDir()

	s, err := store.Open(store.Config{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	require.NoError(t, s.PutGenome("A", []byte("ACGT")))
	require.NoError(t, s.PutDetail(records.Detail{ID: "A", Location: "X", Date: "2020"}))
	require.NoError(t, s.Close())

	s, err = store.Open(store.Config{Path: dir})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.PutDetail(records.Detail{ID: "B", Location: "Y", Date: "2020"}))
	rows, err := s.Details()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].ID)
	assert.Equal(t, "B", rows[1].ID)

	g, err := s.Genome("A")
	require.NoError(t, err)
	assert.Equal(t, "ACGT", string(g))
}

func TestOpen_NoPath(t *testing.T) {
	_, err := store.Open(store.Config{})
	assert.ErrorIs(t, err, store.ErrNoPath)
}
