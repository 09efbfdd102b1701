// SPDX-License-Identifier: MIT

package table

import (
	"fmt"
	"math"
	"path"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/latentfa/matrix"
)

// Table is an immutable subject × variable grid.
//   - index holds subject identifiers (unique, row order).
//   - columns holds variable names (unique, column order).
//   - data is rows×cols and may contain NaN for missing cells.
type Table struct {
	index   []string
	columns []string
	data    *matrix.Dense
}

// New builds a Table from row-major values. NaN is accepted as "missing";
// ±Inf is not.
//
// Errors:
//   - ErrInvalidInput for an empty index or column list, a length mismatch, ±Inf
//     or duplicate column names.
//   - ErrDuplicateIndex for a repeated subject identifier.
func New(index, columns []string, values []float64) (*Table, error) {
	if len(index) == 0 || len(columns) == 0 {
		return nil, fmt.Errorf("table: %d rows, %d columns: %w", len(index), len(columns), ErrInvalidInput)
	}
	if err := checkUnique(index, ErrDuplicateIndex); err != nil {
		return nil, err
	}
	if err := checkUnique(columns, ErrInvalidInput); err != nil {
		return nil, err
	}
	if len(values) != len(index)*len(columns) {
		return nil, fmt.Errorf("table: %d values for %dx%d: %w", len(values), len(index), len(columns), ErrInvalidInput)
	}
	for i, v := range values {
		if math.IsInf(v, 0) {
			return nil, fmt.Errorf("table: subject %q column %q is infinite: %w",
				index[i/len(columns)], columns[i%len(columns)], ErrInvalidInput)
		}
	}
	d, err := matrix.NewDenseFrom(len(index), len(columns), values, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, fmt.Errorf("table: %v: %w", err, ErrInvalidInput)
	}

	return &Table{
		index:   append([]string(nil), index...),
		columns: append([]string(nil), columns...),
		data:    d,
	}, nil
}

func checkUnique(names []string, sentinel error) error {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			return fmt.Errorf("table: %q: %w", n, sentinel)
		}
		seen[n] = struct{}{}
	}

	return nil
}

// Len returns the number of subjects.
func (t *Table) Len() int { return len(t.index) }

// Width returns the number of variables.
func (t *Table) Width() int { return len(t.columns) }

// Index returns a copy of the subject identifiers in row order.
func (t *Table) Index() []string { return append([]string(nil), t.index...) }

// Columns returns a copy of the variable names in column order.
func (t *Table) Columns() []string { return append([]string(nil), t.columns...) }

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]float64, error) {
	j := t.columnIndex(name)
	if j < 0 {
		return nil, fmt.Errorf("table: %q: %w", name, ErrUnknownColumn)
	}
	return t.data.Col(j)
}

// Dense returns the values as a new gonum matrix (the observation matrix).
func (t *Table) Dense() *mat.Dense {
	return mat.NewDense(t.data.Rows(), t.data.Cols(), t.data.RawCopy())
}

// HasMissing reports whether any cell is NaN.
func (t *Table) HasMissing() bool {
	return matrix.ValidateFinite(t.data) != nil
}

func (t *Table) columnIndex(name string) int {
	for j, c := range t.columns {
		if c == name {
			return j
		}
	}
	return -1
}

func (t *Table) allRows() []int { return seq(len(t.index)) }

// Select keeps the named columns in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("table: empty selection: %w", ErrUnknownColumn)
	}
	cols := make([]int, len(names))
	for k, n := range names {
		j := t.columnIndex(n)
		if j < 0 {
			return nil, fmt.Errorf("table: %q: %w", n, ErrUnknownColumn)
		}
		cols[k] = j
	}
	if err := checkUnique(names, ErrInvalidInput); err != nil {
		return nil, err
	}
	return t.induce(t.allRows(), cols)
}

// SelectGlob keeps every column whose name matches pattern (path.Match syntax),
// in table order. "*_survey*" keeps every survey item.
//
// Matching is a glob, not a substring search: '*' never crosses a '/', so
// "*_survey*" skips a name such as "a_survey.x/y". Add a pattern for those
// names, e.g. "*_survey*/*", when a source uses slashes in column names.
func (t *Table) SelectGlob(pattern string) (*Table, error) {
	var cols []int
	for j, c := range t.columns {
		ok, err := path.Match(pattern, c)
		if err != nil {
			return nil, fmt.Errorf("table: pattern %q: %v: %w", pattern, err, ErrInvalidInput)
		}
		if ok {
			cols = append(cols, j)
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table: no column matches %q: %w", pattern, ErrUnknownColumn)
	}
	return t.induce(t.allRows(), cols)
}

// Composite returns a single-column table named name holding each subject's
// mean over the non-missing cells of t. A subject with no answers gets NaN.
func (t *Table) Composite(name string) (*Table, error) {
	means, err := matrix.RowNanMeans(t.data)
	if err != nil {
		return nil, fmt.Errorf("table: composite %q: %w: %w", name, err, ErrInvalidInput)
	}
	return New(t.index, []string{name}, means)
}

// Standardize z-scores every column (population standard deviation).
// A constant column or a missing cell fails with ErrInvalidInput naming the column.
func (t *Table) Standardize() (*Table, error) {
	Z, _, _, err := matrix.StandardizeColumns(t.data, matrix.PopulationDdof)
	if err != nil {
		return nil, fmt.Errorf("table: standardize: %s: %w: %w", t.culprit(), err, ErrInvalidInput)
	}
	zd, ok := Z.(*matrix.Dense)
	if !ok {
		return nil, fmt.Errorf("table: standardize: unexpected matrix type %T: %w", Z, ErrInvalidInput)
	}
	return &Table{index: t.Index(), columns: t.Columns(), data: zd}, nil
}

// culprit names the first column that cannot be standardized, for error messages.
func (t *Table) culprit() string {
	for j, name := range t.columns {
		col, _ := t.data.Col(j)
		single, err := matrix.NewDenseFrom(len(col), 1, col, matrix.WithNoValidateNaNInf())
		if err != nil {
			continue
		}
		if _, _, _, err := matrix.StandardizeColumns(single, matrix.PopulationDdof); err != nil {
			return fmt.Sprintf("column %q", name)
		}
	}
	return "table"
}

func (t *Table) completeRows() map[string]bool {
	out := make(map[string]bool, len(t.index))
	for i, id := range t.index {
		row, _ := t.data.Row(i)
		complete := true
		for _, v := range row {
			if math.IsNaN(v) {
				complete = false
				break
			}
		}
		out[id] = complete
	}
	return out
}

// Align keeps the subjects that are complete (no missing cell) in both a and
// b, in a's row order, and returns both tables reindexed identically.
// An empty intersection fails with ErrInvalidInput.
func Align(a, b *Table) (*Table, *Table, error) {
	completeB := b.completeRows()
	rowB := make(map[string]int, len(b.index))
	for i, id := range b.index {
		rowB[id] = i
	}
	completeA := a.completeRows()

	var rowsA, rowsB []int
	for i, id := range a.index {
		if completeA[id] && completeB[id] {
			rowsA = append(rowsA, i)
			rowsB = append(rowsB, rowB[id])
		}
	}
	if len(rowsA) == 0 {
		return nil, nil, fmt.Errorf("table: align: no complete subject in common: %w", ErrInvalidInput)
	}

	ta, err := a.induce(rowsA, seq(a.Width()))
	if err != nil {
		return nil, nil, err
	}
	tb, err := b.induce(rowsB, seq(b.Width()))
	if err != nil {
		return nil, nil, err
	}
	return ta, tb, nil
}

// ConfirmAligned fails with ErrMisaligned unless a and b list the same
// subjects in the same order.
func ConfirmAligned(a, b *Table) error {
	if len(a.index) != len(b.index) {
		return fmt.Errorf("table: %d vs %d subjects: %w", len(a.index), len(b.index), ErrMisaligned)
	}
	for i := range a.index {
		if a.index[i] != b.index[i] {
			return fmt.Errorf("table: row %d: %q vs %q: %w", i, a.index[i], b.index[i], ErrMisaligned)
		}
	}
	return nil
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func (t *Table) induce(rows, cols []int) (*Table, error) {
	d, err := t.data.Induced(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("table: %v: %w", err, ErrInvalidInput)
	}
	index := make([]string, len(rows))
	for k, i := range rows {
		index[k] = t.index[i]
	}
	columns := make([]string, len(cols))
	for k, j := range cols {
		columns[k] = t.columns[j]
	}
	return &Table{index: index, columns: columns, data: d}, nil
}
