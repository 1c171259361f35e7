// Package store persists genomes, sample metadata and inferred spreads in an
// embedded BadgerDB.
//
// Key layout:
//
//	genome/<id>        raw sequence bytes
//	detail/<row>       JSON records.Detail, row is a zero-padded ingestion counter
//	detail-id/<id>     row of the detail for id (big-endian uint64)
//	spread/<uuid>      JSON Spread
//
// Rows preserve ingestion order, which the tracker walks record by record.
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/katalvlaran/seqtrace/records"
)

// Sentinel errors returned by the store.
var (
	// ErrNotFound indicates the requested key does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrEmptyID indicates a record without an identifier.
	ErrEmptyID = errors.New("store: empty id")

	// ErrNoPath indicates a persistent store was requested without a directory.
	ErrNoPath = errors.New("store: path is required unless InMemory is set")
)

const (
	genomePrefix   = "genome/"
	detailPrefix   = "detail/"
	detailIDPrefix = "detail-id/"
	spreadPrefix   = "spread/"
	rowSequenceKey = "meta/detail-row"
)

// Config configures a Store.
//
// Path       – directory for database files; created if missing. Ignored when InMemory.
// InMemory   – keep everything in RAM (tests, one-shot runs).
// SyncWrites – fsync every write.
// Logger     – receives BadgerDB's internal log; nil silences it.
type Config struct {
	Path       string
	InMemory   bool
	SyncWrites bool
	Logger     *slog.Logger
}

// InMemoryConfig returns a configuration for a throwaway in-memory store.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// Spread is an inferred transmission edge: SourceID is the closest earlier
// relative of TargetID within the lookback window.
type Spread struct {
	ID             string  `json:"id"`
	SourceID       string  `json:"source_id"`
	TargetID       string  `json:"target_id"`
	SourceLocation string  `json:"source_location"`
	TargetLocation string  `json:"target_location"`
	Strength       float64 `json:"strength"`
	Score          int     `json:"score"`
}

// Row is a stored detail together with its ingestion position.
type Row struct {
	Row uint64
	records.Detail
}

// Store wraps a BadgerDB handle. It is safe for concurrent use.
type Store struct {
	db   *badger.DB
	rows *badger.Sequence
}

// Open opens (or creates) a store.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, ErrNoPath
		}
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("store: create %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open badger: %w", err)
	}
	rows, err := db.GetSequence([]byte(rowSequenceKey), 64)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("store: row sequence: %w", err)
	}

	return &Store{db: db, rows: rows}, nil
}

// Close releases the row sequence and closes the database.
func (s *Store) Close() error {
	err := s.rows.Release()
	if cerr := s.db.Close(); cerr != nil && err == nil {
		err = cerr
	}

	return err
}

// PutGenome stores (or replaces) the sequence of id.
func (s *Store) PutGenome(id string, seq []byte) error {
	if id == "" {
		return ErrEmptyID
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(genomePrefix+id), seq)
	})
}

// Genome returns the stored sequence of id, or ErrNotFound.
func (s *Store) Genome(id string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(genomePrefix + id))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)

		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: genome %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: genome %q: %w", id, err)
	}
	if out == nil {
		out = []byte{}
	}

	return out, nil
}

// PutDetail stores metadata for d.ID. A new id is appended after every
// existing row; a known id is updated in place and keeps its row.
func (s *Store) PutDetail(d records.Detail) error {
	if d.ID == "" {
		return ErrEmptyID
	}
	val, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("store: encode detail %q: %w", d.ID, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		idKey := []byte(detailIDPrefix + d.ID)
		var row uint64
		item, err := txn.Get(idKey)
		switch {
		case err == nil:
			raw, verr := item.ValueCopy(nil)
			if verr != nil {
				return verr
			}
			row = binary.BigEndian.Uint64(raw)
		case errors.Is(err, badger.ErrKeyNotFound):
			if row, err = s.rows.Next(); err != nil {
				return err
			}
			var buf [8]byte
			binary.BigEndian.PutUint64(buf[:], row)
			if err := txn.Set(idKey, buf[:]); err != nil {
				return err
			}
		default:
			return err
		}

		return txn.Set(detailKey(row), val)
	})
}

// Details returns every stored detail in ingestion order.
func (s *Store) Details() ([]Row, error) {
	var out []Row
	err := s.scan(detailPrefix, func(key, val []byte) error {
		var d records.Detail
		if err := json.Unmarshal(val, &d); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		var row uint64
		if _, err := fmt.Sscanf(string(key[len(detailPrefix):]), "%d", &row); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		out = append(out, Row{Row: row, Detail: d})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: details: %w", err)
	}

	return out, nil
}

// PutSpreads stores spreads in one batch, assigning an ID to any spread without one.
func (s *Store) PutSpreads(spreads []Spread) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for i := range spreads {
		if spreads[i].ID == "" {
			spreads[i].ID = uuid.NewString()
		}
		val, err := json.Marshal(spreads[i])
		if err != nil {
			return fmt.Errorf("store: encode spread: %w", err)
		}
		if err := wb.Set([]byte(spreadPrefix+spreads[i].ID), val); err != nil {
			return fmt.Errorf("store: write spread: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("store: flush spreads: %w", err)
	}

	return nil
}

// Spreads returns every stored spread ordered by target, then source.
func (s *Store) Spreads() ([]Spread, error) {
	var out []Spread
	err := s.scan(spreadPrefix, func(key, val []byte) error {
		var sp Spread
		if err := json.Unmarshal(val, &sp); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		out = append(out, sp)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: spreads: %w", err)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TargetID != out[j].TargetID {
			return out[i].TargetID < out[j].TargetID
		}

		return out[i].SourceID < out[j].SourceID
	})

	return out, nil
}

// ClearSpreads deletes all stored spreads.
func (s *Store) ClearSpreads() error {
	if err := s.db.DropPrefix([]byte(spreadPrefix)); err != nil {
		return fmt.Errorf("store: clear spreads: %w", err)
	}

	return nil
}

// scan calls fn with a copy of every key/value under prefix, in key order.
func (s *Store) scan(prefix string, fn func(key, val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(item.KeyCopy(nil), val); err != nil {
				return err
			}
		}

		return nil
	})
}

func detailKey(row uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", detailPrefix, row))
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
