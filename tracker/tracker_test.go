package tracker_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/seqtrace/fogsaa"
	"github.com/katalvlaran/seqtrace/records"
	"github.com/katalvlaran/seqtrace/store"
	"github.com/katalvlaran/seqtrace/tracker"
)

type sampleRow struct {
	id, location, date, genome string
}

// openStore fills an in-memory store; rows with an empty genome get no sequence.
func openStore(t *testing.T, rows []sampleRow) *store.Store {
	t.Helper()
	st, err := store.Open(store.InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, st.Close()) })

	for _, r := range rows {
		require.NoError(t, st.PutDetail(records.Detail{ID: r.id, Location: r.location, Date: r.date}))
		if r.genome != "" {
			require.NoError(t, st.PutGenome(r.id, []byte(r.genome)))
		}
	}

	return st
}

var outbreak = []sampleRow{
	{"A", "China", "2020-01-01", "ACGTACGT"},
	{"B", "Italy", "2020-01-20", "ACGTACGA"},
	{"E", "Germany", "", "ACGTACGT"},
	{"F", "France", "2020-13", "ACGTACGT"},
	{"G", "Spain", "2020-01-26", ""},
	{"C", "Italy", "2020-01-25", "ACGTACGA"},
	{"D", "USA", "2020-05-01", "ACGT"},
	{"H", "Italy", "2020-01", "ACGTACGT"},
}

func TestRun_InfersClosestEarlierSource(t *testing.T) {
	st := openStore(t, outbreak)
	m := tracker.NewMetrics(prometheus.NewRegistry())
	tr, err := tracker.New(st, tracker.WithWorkers(2), tracker.WithMetrics(m))
	require.NoError(t, err)

	got, err := tr.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "A", got[0].SourceID)
	assert.Equal(t, "B", got[0].TargetID)
	assert.Equal(t, "China", got[0].SourceLocation)
	assert.Equal(t, "Italy", got[0].TargetLocation)
	assert.Equal(t, 33, got[0].Score, "seven matches and one mismatch")
	assert.Equal(t, 1.0, got[0].Strength)

	assert.Equal(t, "B", got[1].SourceID, "identical genome beats the older relative")
	assert.Equal(t, "C", got[1].TargetID)
	assert.Equal(t, 40, got[1].Score)

	stored, err := st.Spreads()
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.NotEmpty(t, stored[0].ID)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Comparisons.WithLabelValues("ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Comparisons.WithLabelValues("limit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Spreads))
}

func TestRun_ReplacesPreviousSpreads(t *testing.T) {
	st := openStore(t, outbreak)
	tr, err := tracker.New(st)
	require.NoError(t, err)

	_, err = tr.Run(context.Background())
	require.NoError(t, err)
	_, err = tr.Run(context.Background())
	require.NoError(t, err)

	stored, err := st.Spreads()
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestRun_TieGoesToEarliestCandidate(t *testing.T) {
	st := openStore(t, []sampleRow{
		{"X", "Peru", "2020-01-01", "ACGT"},
		{"Y", "Chile", "2020-01-02", "ACGT"},
		{"Z", "Chile", "2020-01-03", "ACGT"},
	})
	tr, err := tracker.New(st, tracker.WithWorkers(4))
	require.NoError(t, err)

	got, err := tr.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, [2]string{"X", "Y"}, [2]string{got[0].SourceID, got[0].TargetID})
	assert.Equal(t, [2]string{"X", "Z"}, [2]string{got[1].SourceID, got[1].TargetID})
}

func TestRun_WindowBounds(t *testing.T) {
	st := openStore(t, []sampleRow{
		{"old", "Peru", "2020-01-01", "ACGT"},
		{"twin", "Peru", "2020-02-10", "ACGT"},
		{"same", "Chile", "2020-02-10", "ACGT"},
	})
	tr, err := tracker.New(st, tracker.WithWindowDays(40))
	require.NoError(t, err)

	// 2020-02-10 minus 40 days is 2020-01-01, which is excluded, as is the same day.
	got, err := tr.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	tr, err = tracker.New(st, tracker.WithWindowDays(41))
	require.NoError(t, err)
	got, err = tr.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "old", got[0].SourceID)
	assert.Equal(t, "old", got[1].SourceID)
}

// TestRun_UnsortedIngestion feeds a target before its source: candidates are
// chosen by collection date, not by ingestion position.
func TestRun_UnsortedIngestion(t *testing.T) {
	st := openStore(t, []sampleRow{
		{"B", "Italy", "2020-01-20", "ACGTACGA"},
		{"C", "Italy", "2020-01-25", "ACGTACGA"},
		{"A", "China", "2020-01-01", "ACGTACGT"},
		{"A2", "Iran", "2020-01-01", "ACGTACGT"},
	})
	tr, err := tracker.New(st)
	require.NoError(t, err)

	got, err := tr.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, [2]string{"A", "B"}, [2]string{got[0].SourceID, got[0].TargetID},
		"tie between A and A2 goes to the earlier ingested row")
	assert.Equal(t, "China", got[0].SourceLocation)
	assert.Equal(t, [2]string{"B", "C"}, [2]string{got[1].SourceID, got[1].TargetID})
}

func TestRun_SearchLimitIsNotFatal(t *testing.T) {
	st := openStore(t, []sampleRow{
		{"A", "China", "2020-01-01", "ACGTACGT"},
		{"B", "Italy", "2020-01-10", "ACGTACGA"},
	})
	m := tracker.NewMetrics(nil)
	tr, err := tracker.New(st, tracker.WithMaxExpansions(1), tracker.WithMetrics(m))
	require.NoError(t, err)

	got, err := tr.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Comparisons.WithLabelValues("limit")))
}

func TestRun_Canceled(t *testing.T) {
	st := openStore(t, outbreak)
	tr, err := tracker.New(st)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tr.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_Validation(t *testing.T) {
	st := openStore(t, nil)

	_, err := tracker.New(st, tracker.WithWindowDays(0))
	assert.ErrorIs(t, err, tracker.ErrInvalidWindow)

	_, err = tracker.New(st, tracker.WithScoreModel(fogsaa.ScoreModel{Match: 1, Mismatch: 0}))
	assert.ErrorIs(t, err, fogsaa.ErrInvalidScoreModel)

	tr, err := tracker.New(st)
	require.NoError(t, err)
	got, err := tr.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got, "empty store yields no spreads")
}
