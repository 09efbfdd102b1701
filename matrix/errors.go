// SPDX-License-Identifier: MIT

package matrix

import "errors"

// Sentinel errors. Kernels wrap them with the failing operation and, where
// known, the cell; callers match with errors.Is. When several problems apply
// the first reported is, in order: nil operand, shape or index, non-finite
// value, zero variance.
var (
	// ErrBadShape: a backing buffer does not fit the requested shape.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange: a row or column index is outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch: operands have incompatible sizes.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf: a NaN or ±Inf reached code that needs finite values.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix: a nil matrix or vector was passed.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrInvalidDimensions: a constructor got a non-positive size.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrZeroVariance: a column's standard deviation is not above epsilon.
	ErrZeroVariance = errors.New("matrix: zero-variance column")

	// ErrTooFewRows: a statistic needs more observations than it got.
	ErrTooFewRows = errors.New("matrix: not enough rows")
)
