// Package tracker infers spreads: for every sample it finds the most similar
// earlier sample collected inside a lookback window and records an edge from
// that sample's location to its own.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/seqtrace/dates"
	"github.com/katalvlaran/seqtrace/fogsaa"
	"github.com/katalvlaran/seqtrace/store"
)

// DefaultWindowDays is the default lookback window.
const DefaultWindowDays = 40

// ErrInvalidWindow is returned by New for a non-positive window.
var ErrInvalidWindow = errors.New("tracker: window must be at least one day")

// Options configures a Tracker.
type Options struct {
	Model         fogsaa.ScoreModel
	WindowDays    int
	Workers       int
	MaxExpansions int
	Logger        *slog.Logger
	Metrics       *Metrics
}

// Option mutates Options.
type Option func(*Options)

// WithScoreModel sets the alignment cost model.
func WithScoreModel(m fogsaa.ScoreModel) Option {
	return func(o *Options) { o.Model = m }
}

// WithWindowDays sets how many days back a source may have been collected.
func WithWindowDays(days int) Option {
	return func(o *Options) { o.WindowDays = days }
}

// WithWorkers bounds the number of concurrent comparisons; n < 1 keeps the default.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Workers = n
		}
	}
}

// WithMaxExpansions caps the work of each comparison; 0 means no cap.
func WithMaxExpansions(n int) Option {
	return func(o *Options) { o.MaxExpansions = n }
}

// WithLogger sets the logger; nil keeps the default (discard).
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// Tracker runs spread inference over a store.
type Tracker struct {
	st   *store.Store
	opts Options
}

// New creates a Tracker over st.
func New(st *store.Store, opts ...Option) (*Tracker, error) {
	o := Options{
		Model:      fogsaa.DefaultScoreModel(),
		WindowDays: DefaultWindowDays,
		Workers:    runtime.NumCPU(),
		Logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.WindowDays < 1 {
		return nil, ErrInvalidWindow
	}
	if err := o.Model.Validate(); err != nil {
		return nil, err
	}

	return &Tracker{st: st, opts: o}, nil
}

// sample is a record eligible as a spread source.
type sample struct {
	id       string
	location string
	date     string // canonical
	genome   []byte
}

// Run infers one spread per sample and returns them in ingestion order. The
// spreads replace any spreads stored by a previous run.
//
// The candidates of a sample are all other samples collected strictly inside
// its lookback window, regardless of where they sit in the ingestion order;
// among equal scores the earliest ingested candidate wins.
//
// A record is skipped (with a log line) when its date is missing or malformed
// or its genome is not stored. A record without any candidate in its window
// produces no spread. Comparisons that hit the expansion cap are logged and
// excluded; any other comparison error aborts the run.
func (t *Tracker) Run(ctx context.Context) ([]store.Spread, error) {
	rows, err := t.st.Details()
	if err != nil {
		return nil, err
	}
	log := t.opts.Logger
	log.Info("trace started", "records", len(rows), "window_days", t.opts.WindowDays, "workers", t.opts.Workers)

	samples := make([]sample, 0, len(rows))
	for _, row := range rows {
		cur, ok, err := t.load(row)
		if err != nil {
			return nil, err
		}
		if ok {
			samples = append(samples, cur)
		}
	}

	var spreads []store.Spread
	for _, cur := range samples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stop, err := dates.StopDate(cur.date, t.opts.WindowDays)
		if err != nil {
			return nil, err
		}
		var candidates []sample
		for _, s := range samples {
			if stop < s.date && s.date < cur.date {
				candidates = append(candidates, s)
			}
		}
		if len(candidates) == 0 {
			log.Debug("no candidates in window", "id", cur.id, "date", cur.date, "stop", stop)
			continue
		}

		best, score, err := t.closest(ctx, cur, candidates)
		if err != nil {
			return nil, err
		}
		if best < 0 {
			continue
		}
		src := candidates[best]
		log.Debug("spread", "source", src.id, "target", cur.id, "score", score)
		spreads = append(spreads, store.Spread{
			SourceID:       src.id,
			TargetID:       cur.id,
			SourceLocation: src.location,
			TargetLocation: cur.location,
			Strength:       1,
			Score:          score,
		})
	}

	if err := t.st.ClearSpreads(); err != nil {
		return nil, err
	}
	if len(spreads) > 0 {
		if err := t.st.PutSpreads(spreads); err != nil {
			return nil, err
		}
	}
	if m := t.opts.Metrics; m != nil {
		m.Spreads.Add(float64(len(spreads)))
	}
	log.Info("trace finished", "samples", len(samples), "spreads", len(spreads))

	return spreads, nil
}

// load resolves the date and genome of row. ok is false when the row must be skipped.
func (t *Tracker) load(row store.Row) (sample, bool, error) {
	log := t.opts.Logger
	if row.Date == "" {
		log.Warn("skipping record without date", "id", row.ID)

		return sample{}, false, nil
	}
	date, err := dates.Canonical(row.Date)
	if err != nil {
		log.Warn("skipping record with malformed date", "id", row.ID, "error", err)

		return sample{}, false, nil
	}
	genome, err := t.st.Genome(row.ID)
	if errors.Is(err, store.ErrNotFound) {
		log.Warn("skipping record without genome", "id", row.ID)

		return sample{}, false, nil
	}
	if err != nil {
		return sample{}, false, err
	}

	return sample{id: row.ID, location: row.Location, date: date, genome: genome}, true, nil
}

// closest compares cur against every candidate concurrently and returns the
// index of the highest score, the earliest candidate winning ties. The index
// is -1 when every comparison hit the expansion cap.
func (t *Tracker) closest(ctx context.Context, cur sample, candidates []sample) (int, int, error) {
	scores := make([]int, len(candidates))
	done := make([]bool, len(candidates))
	opts := []fogsaa.Option{
		fogsaa.WithScoreModel(t.opts.Model),
		fogsaa.WithMaxExpansions(t.opts.MaxExpansions),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.opts.Workers)
	for i := range candidates {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			score, err := fogsaa.CompareSequences(cur.genome, candidates[i].genome, opts...)
			t.observe(start, err)
			switch {
			case errors.Is(err, fogsaa.ErrSearchLimit):
				t.opts.Logger.Warn("comparison abandoned", "target", cur.id, "source", candidates[i].id, "error", err)

				return nil
			case err != nil:
				return fmt.Errorf("tracker: compare %s with %s: %w", cur.id, candidates[i].id, err)
			}
			scores[i], done[i] = score, true

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return -1, 0, err
	}

	best := -1
	for i := range candidates {
		if done[i] && (best < 0 || scores[i] > scores[best]) {
			best = i
		}
	}
	if best < 0 {
		return -1, 0, nil
	}

	return best, scores[best], nil
}

func (t *Tracker) observe(start time.Time, err error) {
	m := t.opts.Metrics
	if m == nil {
		return
	}
	m.Duration.Observe(time.Since(start).Seconds())
	switch {
	case err == nil:
		m.Comparisons.WithLabelValues(resultOK).Inc()
	case errors.Is(err, fogsaa.ErrSearchLimit):
		m.Comparisons.WithLabelValues(resultLimit).Inc()
	default:
		m.Comparisons.WithLabelValues(resultError).Inc()
	}
}
