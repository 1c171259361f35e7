// Package records reads sample metadata (accession, location, collection date)
// from CSV files.
package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrShortRow is returned for a row with fewer than three columns.
var ErrShortRow = errors.New("records: row needs id, location and date")

// Detail is the metadata of one sequenced sample.
// Date is kept as written (YYYY, YYYY-MM or YYYY-MM-DD) and may be empty.
type Detail struct {
	ID       string `json:"id"`
	Location string `json:"location"`
	Date     string `json:"date"`
}

// ReadDetails parses rows of "id,location,date". Extra columns are ignored,
// cells are trimmed, and a first row whose first cell is "id" or "accession"
// is treated as a header.
func ReadDetails(r io.Reader) ([]Detail, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var out []Detail
	for first := true; ; first = false {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("records: %w", err)
		}
		if first && isHeader(row) {
			continue
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		if len(row) < 3 {
			line, _ := cr.FieldPos(0)

			return nil, fmt.Errorf("%w: line %d has %d columns", ErrShortRow, line, len(row))
		}
		out = append(out, Detail{
			ID:       strings.TrimSpace(row[0]),
			Location: strings.TrimSpace(row[1]),
			Date:     strings.TrimSpace(row[2]),
		})
	}
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(row[0])) {
	case "id", "accession":
		return true
	}

	return false
}
