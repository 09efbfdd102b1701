// SPDX-License-Identifier: MIT

package matrix

// Matrix is a mutable r×c grid of float64 values addressed by (row, col).
// Out-of-range access returns ErrOutOfRange instead of panicking.
type Matrix interface {
	Rows() int
	Cols() int
	At(i, j int) (float64, error)
	Set(i, j int, v float64) error
	// Clone returns an independent deep copy.
	Clone() Matrix
}

// Ddof selects the divisor used by standard deviations: N - Ddof.
// PopulationDdof (0) is the convention used by StandardizeColumns callers in
// this module; SampleDdof (1) is provided for diagnostics.
const (
	PopulationDdof = 0
	SampleDdof     = 1
)
