// SPDX-License-Identifier: MIT
// Package matrix - public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for the column statistics.
//   - Avoid any logic duplication: each facade delegates to the canonical implementation.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

import "fmt"

// matrixErrorf wraps an error with an operation tag, preserving the sentinel via %w.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// CenterColumns returns a column-centered copy of X and the column means.
// Zero-size input is a no-op returning X itself.
// Complexity: O(r*c).
func CenterColumns(X Matrix) (Matrix, []float64, error) {
	return centerColumns(X)
}

// ColumnStds returns per-column standard deviations with divisor Rows()-ddof.
// Use PopulationDdof for the convention shared with StandardizeColumns.
// Complexity: O(r*c).
func ColumnStds(X Matrix, ddof int) ([]float64, error) {
	return columnStds(X, ddof)
}

// StandardizeColumns returns the standard scores of X together with the means
// and deviations that produced them.
//
// Errors:
//   - ErrNaNInf if X holds a non-finite value (missing cells must be dropped first).
//   - ErrZeroVariance if a column's deviation does not exceed the epsilon
//     (WithEpsilon; DefaultEpsilon otherwise).
//
// Complexity: O(r*c).
func StandardizeColumns(X Matrix, ddof int, opts ...Option) (Matrix, []float64, []float64, error) {
	return standardizeColumns(X, ddof, opts...)
}

// RowNanMeans returns the mean of each row over its non-NaN cells.
// Complexity: O(r*c).
func RowNanMeans(X Matrix) ([]float64, error) {
	return rowNanMeans(X)
}

// AllClose reports whether a and b agree element-wise within atol + rtol*|b|.
// Complexity: O(r*c).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}
