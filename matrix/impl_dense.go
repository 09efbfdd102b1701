// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Operation tags used in Dense error messages.
const (
	tagAt     = "At"
	tagSet    = "Set"
	tagFrom   = "From"
	tagInduce = "Induced"
	tagRow    = "Row"
	tagCol    = "Col"
)

func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major float64 grid: cell (i, j) lives at data[i*c+j].
// Tables of survey answers are held in a Dense built with
// WithNoValidateNaNInf so that NaN can stand for a missing answer.
type Dense struct {
	r, c           int
	data           []float64
	validateNaNInf bool
}

var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense returns a rows×cols zero matrix.
// Non-positive sizes fail with ErrInvalidDimensions.
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols), validateNaNInf: o.validateNaNInf}, nil
}

// NewDenseFrom copies row-major values into a new rows×cols matrix.
//
// Errors:
//   - ErrInvalidDimensions for a non-positive size.
//   - ErrBadShape when len(values) != rows*cols.
//   - ErrNaNInf, with the cell position, when the finite-only policy is on.
func NewDenseFrom(rows, cols int, values []float64, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	if len(values) != rows*cols {
		return nil, fmt.Errorf("Dense.%s: %d values for %dx%d: %w", tagFrom, len(values), rows, cols, ErrBadShape)
	}
	if m.validateNaNInf {
		for idx, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, denseErrorf(tagFrom, idx/cols, idx%cols, ErrNaNInf)
			}
		}
	}
	copy(m.data, values)
	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// ValidatesNaNInf reports whether Set rejects non-finite values.
func (m *Dense) ValidatesNaNInf() bool { return m.validateNaNInf }

func (m *Dense) offset(row, col int) (int, bool) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, false
	}
	return row*m.c + col, true
}

// At returns cell (row, col); out-of-range positions fail with ErrOutOfRange.
func (m *Dense) At(row, col int) (float64, error) {
	off, ok := m.offset(row, col)
	if !ok {
		return 0, denseErrorf(tagAt, row, col, ErrOutOfRange)
	}
	return m.data[off], nil
}

// Set writes v at (row, col). It fails with ErrOutOfRange, or with ErrNaNInf
// for a non-finite v under the finite-only policy.
func (m *Dense) Set(row, col int, v float64) error {
	off, ok := m.offset(row, col)
	if !ok {
		return denseErrorf(tagSet, row, col, ErrOutOfRange)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(tagSet, row, col, ErrNaNInf)
	}
	m.data[off] = v
	return nil
}

// Clone returns an independent copy with the same policy.
func (m *Dense) Clone() Matrix {
	return &Dense{r: m.r, c: m.c, data: m.RawCopy(), validateNaNInf: m.validateNaNInf}
}

// Row returns a copy of row i.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(tagRow, i, 0, ErrOutOfRange)
	}
	return append([]float64(nil), m.data[i*m.c:(i+1)*m.c]...), nil
}

// Col returns a copy of column j.
func (m *Dense) Col(j int) ([]float64, error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf(tagCol, 0, j, ErrOutOfRange)
	}
	out := make([]float64, m.r)
	for i := range out {
		out[i] = m.data[i*m.c+j]
	}
	return out, nil
}

// RawCopy returns a copy of the row-major buffer.
func (m *Dense) RawCopy() []float64 {
	return append([]float64(nil), m.data...)
}

// String prints one bracketed row per line, e.g. "[1, 2]\n[3, 4]\n".
func (m *Dense) String() string {
	var b strings.Builder
	cells := make([]string, m.c)
	for i := 0; i < m.r; i++ {
		for j := range cells {
			cells[j] = fmt.Sprintf("%g", m.data[i*m.c+j])
		}
		b.WriteString("[" + strings.Join(cells, ", ") + "]\n")
	}
	return b.String()
}

// Induced copies the rows and columns listed in rowsIdx and colsIdx, in that
// order, into a new matrix with the same policy.
//
// MAIN DESCRIPTION:
//   - Row filtering (subject alignment) and column selection of tables both
//     reduce to this call.
//   - Duplicated indices are copied twice; an empty list gives a zero-area
//     result, which is legal here and nowhere else.
//
// Errors:
//   - ErrOutOfRange naming the first bad index.
//
// Complexity:
//   - Time O(len(rowsIdx)·len(colsIdx)).
func (m *Dense) Induced(rowsIdx, colsIdx []int) (*Dense, error) {
	for _, cj := range colsIdx {
		if cj < 0 || cj >= m.c {
			return nil, fmt.Errorf("Dense.%s: col index %d: %w", tagInduce, cj, ErrOutOfRange)
		}
	}
	nr, nc := len(rowsIdx), len(colsIdx)
	out := &Dense{r: nr, c: nc, data: make([]float64, nr*nc), validateNaNInf: m.validateNaNInf}
	for i, ri := range rowsIdx {
		if ri < 0 || ri >= m.r {
			return nil, fmt.Errorf("Dense.%s: row index %d: %w", tagInduce, ri, ErrOutOfRange)
		}
		src := m.data[ri*m.c:]
		dst := out.data[i*nc:]
		for j, cj := range colsIdx {
			dst[j] = src[cj]
		}
	}
	return out, nil
}
