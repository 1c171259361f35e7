// Package fasta reads nucleotide records from FASTA files, plain or gzipped.
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoHeader is returned when sequence data appears before the first '>' line.
var ErrNoHeader = errors.New("fasta: sequence data before first header")

// Record is one FASTA entry. ID is the first whitespace-delimited token of the
// header; Seq is upper-cased with all whitespace removed.
type Record struct {
	ID  string
	Seq []byte
}

// Accession drops the version suffix of an identifier: "MN908947.3" -> "MN908947".
func Accession(id string) string {
	if i := strings.IndexByte(id, '.'); i >= 0 {
		return id[:i]
	}

	return id
}

// Reader parses records from an underlying stream one at a time.
type Reader struct {
	sc      *bufio.Scanner
	pending string // header line read ahead of the current record
	line    int
	done    bool
}

// NewReader wraps r. Lines up to 64 MiB are accepted, so single-line genomes work.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)

	return &Reader{sc: sc}
}

// Next returns the next record, or io.EOF when the input is exhausted.
func (r *Reader) Next() (Record, error) {
	if r.done {
		return Record{}, io.EOF
	}

	header := r.pending
	r.pending = ""
	for header == "" {
		if !r.sc.Scan() {
			r.done = true
			if err := r.sc.Err(); err != nil {
				return Record{}, fmt.Errorf("fasta: line %d: %w", r.line, err)
			}

			return Record{}, io.EOF
		}
		r.line++
		text := strings.TrimSpace(r.sc.Text())
		switch {
		case text == "" || text[0] == ';':
			continue
		case text[0] != '>':
			return Record{}, fmt.Errorf("%w (line %d)", ErrNoHeader, r.line)
		}
		header = text
	}

	rec := Record{ID: headerID(header)}
	var seq bytes.Buffer
	for r.sc.Scan() {
		r.line++
		text := bytes.TrimSpace(r.sc.Bytes())
		if len(text) > 0 && text[0] == ';' {
			continue
		}
		if len(text) > 0 && text[0] == '>' {
			r.pending = string(text)

			break
		}
		for _, c := range text {
			if c == ' ' || c == '\t' || c == '\r' {
				continue
			}
			if 'a' <= c && c <= 'z' {
				c -= 'a' - 'A'
			}
			seq.WriteByte(c)
		}
	}
	if err := r.sc.Err(); err != nil {
		return Record{}, fmt.Errorf("fasta: line %d: %w", r.line, err)
	}
	if r.pending == "" {
		r.done = true
	}
	rec.Seq = seq.Bytes()

	return rec, nil
}

// ForEach calls fn for every record in r until EOF, an error from fn, or
// cancellation of ctx.
func ForEach(ctx context.Context, r io.Reader, fn func(Record) error) error {
	fr := NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := fr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}

// ReadAll parses every record in r.
func ReadAll(r io.Reader) ([]Record, error) {
	var out []Record
	err := ForEach(context.Background(), r, func(rec Record) error {
		out = append(out, rec)

		return nil
	})

	return out, err
}

// Open opens path for reading, decompressing gzip input detected by magic
// number or a .gz suffix. "-" reads standard input.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fasta: open %s: %w", path, err)
	}

	var sig [2]byte
	n, _ := io.ReadFull(fh, sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()

		return nil, fmt.Errorf("fasta: rewind %s: %w", path, err)
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()

			return nil, fmt.Errorf("fasta: gzip %s: %w", path, err)
		}

		return &gzipFile{Reader: gr, file: fh}, nil
	}

	return fh, nil
}

// gzipFile closes both the gzip stream and the file beneath it.
type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	err := g.Reader.Close()
	if cerr := g.file.Close(); cerr != nil && err == nil {
		err = cerr
	}

	return err
}

func headerID(header string) string {
	fields := strings.Fields(strings.TrimPrefix(header, ">"))
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}
