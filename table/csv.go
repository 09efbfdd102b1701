// SPDX-License-Identifier: MIT

package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// missingTokens are the cell spellings read as a missing value (NaN).
var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
}

// ReadCSV parses a header row followed by one row per subject. The first
// column holds the subject identifier; the remaining columns must be numeric
// or one of the missing-value tokens.
//
// Errors:
//   - ErrInvalidInput for an empty file, a ragged row or a non-numeric cell
//     (the message names the line and the column).
//   - ErrDuplicateIndex for a repeated subject identifier.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0 // enforce the header width on every row
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("table: empty csv: %w", ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("table: csv header: %v: %w", err, ErrInvalidInput)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("table: csv header needs an index and at least one column: %w", ErrInvalidInput)
	}
	columns := header[1:]

	var (
		index  []string
		values []float64
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("table: csv line %d: %v: %w", line, err, ErrInvalidInput)
		}
		index = append(index, strings.TrimSpace(rec[0]))
		for j, cell := range rec[1:] {
			v, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("table: csv line %d column %q: %v: %w", line, columns[j], err, ErrInvalidInput)
			}
			values = append(values, v)
		}
	}

	return New(index, columns, values)
}

func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if _, missing := missingTokens[cell]; missing {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", cell)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", cell)
	}
	return v, nil
}

// indexHeader is the first header cell written by WriteCSV.
const indexHeader = "subject"

// WriteCSV writes t in the layout ReadCSV accepts; missing cells are written as NA.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{indexHeader}, t.columns...)); err != nil {
		return err
	}
	rec := make([]string, len(t.columns)+1)
	for i, id := range t.index {
		row, err := t.data.Row(i)
		if err != nil {
			return err
		}
		rec[0] = id
		for j, v := range row {
			if math.IsNaN(v) {
				rec[j+1] = "NA"
				continue
			}
			rec[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
