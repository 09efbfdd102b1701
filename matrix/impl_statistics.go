// SPDX-License-Identifier: MIT

// Column statistics for survey preprocessing: centering, standard deviations,
// z-scores, and the NaN-skipping row mean behind composite scores.
// ddof=PopulationDdof matches the factor model's S = XᵀX/N.

package matrix

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opCenterColumns      = "CenterColumns"
	opColumnStds         = "ColumnStds"
	opStandardizeColumns = "StandardizeColumns"
	opRowNanMeans        = "RowNanMeans"
)

// columnMeans accumulates Σ_i X[i,j] / r deterministically; r must be > 0.
// Non-finite entries propagate (callers decide whether to reject them first).
func columnMeans(X Matrix) ([]float64, error) {
	r, c := X.Rows(), X.Cols()
	means := make([]float64, c)
	var i, j int

	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				means[j] += d.data[base+j]
			}
		}
	} else {
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				v, err := X.At(i, j)
				if err != nil {
					return nil, err
				}
				means[j] += v
			}
		}
	}

	invR := 1.0 / float64(r)
	for j = 0; j < c; j++ {
		means[j] *= invR
	}

	return means, nil
}

// centerColumns returns a copy of X with each column's mean subtracted, and
// the means. A zero-area X comes back unchanged with zero means.
func centerColumns(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	r, c := X.Rows(), X.Cols()
	if r == 0 || c == 0 {
		return X, make([]float64, c), nil
	}

	means, err := columnMeans(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	Xc, err := ewBroadcastSubCols(X, means)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	return Xc, means, nil
}

// columnStdsWithMeans returns sqrt(Σ_i (X[i,j]-μ_j)² / (r-ddof)) per column.
// Two-pass formula (means first) for numerical stability.
func columnStdsWithMeans(X Matrix, means []float64, ddof int) ([]float64, error) {
	r, c := X.Rows(), X.Cols()
	stds := make([]float64, c)
	var i, j int
	var dv float64

	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				dv = d.data[base+j] - means[j]
				stds[j] += dv * dv
			}
		}
	} else {
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				v, err := X.At(i, j)
				if err != nil {
					return nil, err
				}
				dv = v - means[j]
				stds[j] += dv * dv
			}
		}
	}

	den := float64(r - ddof)
	for j = 0; j < c; j++ {
		stds[j] = math.Sqrt(stds[j] / den)
	}

	return stds, nil
}

// checkStatsInput enforces the common preconditions of the deviation kernels:
// non-nil, finite, ddof ∈ {0,1}, and at least ddof+1 rows.
func checkStatsInput(op string, X Matrix, ddof int) error {
	if err := ValidateNotNil(X); err != nil {
		return matrixErrorf(op, err)
	}
	if ddof != PopulationDdof && ddof != SampleDdof {
		return fmt.Errorf("%s: ddof=%d: %w", op, ddof, ErrBadShape)
	}
	if err := ValidateMinRows(X, ddof+1); err != nil {
		return matrixErrorf(op, err)
	}
	if err := ValidateFinite(X); err != nil {
		return matrixErrorf(op, err)
	}

	return nil
}

// columnStds computes per-column standard deviations with divisor r-ddof.
//
// Errors:
//   - ErrNilMatrix, ErrBadShape (ddof outside {0,1}), ErrTooFewRows, ErrNaNInf.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func columnStds(X Matrix, ddof int) ([]float64, error) {
	if err := checkStatsInput(opColumnStds, X, ddof); err != nil {
		return nil, err
	}
	means, err := columnMeans(X)
	if err != nil {
		return nil, matrixErrorf(opColumnStds, err)
	}
	stds, err := columnStdsWithMeans(X, means, ddof)
	if err != nil {
		return nil, matrixErrorf(opColumnStds, err)
	}

	return stds, nil
}

// standardizeColumns converts every column to standard scores z = (x-μ)/σ.
// MAIN DESCRIPTION:
//   - Validate, compute means and deviations in two passes, then compose the two
//     broadcast kernels (subtract means, scale by 1/σ).
//
// Errors (in priority order):
//   - ErrNilMatrix, ErrBadShape (ddof), ErrTooFewRows, ErrNaNInf (with coordinates),
//     ErrZeroVariance (σ ≤ eps; the message names the column index).
//
// Determinism:
//   - Fixed loop order; the result for an already standardized input equals the
//     input up to rounding.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func standardizeColumns(X Matrix, ddof int, opts ...Option) (Matrix, []float64, []float64, error) {
	if err := checkStatsInput(opStandardizeColumns, X, ddof); err != nil {
		return nil, nil, nil, err
	}
	o := gatherOptions(opts...)

	means, err := columnMeans(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opStandardizeColumns, err)
	}
	stds, err := columnStdsWithMeans(X, means, ddof)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opStandardizeColumns, err)
	}

	inv := make([]float64, len(stds))
	for j, s := range stds {
		if !(s > o.eps) {
			return nil, nil, nil, fmt.Errorf("%s: column %d (std=%g): %w", opStandardizeColumns, j, s, ErrZeroVariance)
		}
		inv[j] = 1.0 / s
	}

	Xc, err := ewBroadcastSubCols(X, means)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opStandardizeColumns, err)
	}
	Z, err := ewScaleCols(Xc, inv)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opStandardizeColumns, err)
	}

	return Z, means, stds, nil
}

// rowNanMeans averages each row over its non-NaN entries.
// A row with no finite entry yields NaN. ±Inf is rejected (it is never a
// missing-value marker).
// Complexity: O(r*c) time, O(r) space.
func rowNanMeans(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opRowNanMeans, err)
	}
	r, c := X.Rows(), X.Cols()
	out := make([]float64, r)

	var sum float64
	var n int
	for i := 0; i < r; i++ {
		sum, n = 0, 0
		for j := 0; j < c; j++ {
			v, err := X.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opRowNanMeans, err)
			}
			if math.IsNaN(v) {
				continue // missing
			}
			if math.IsInf(v, 0) {
				return nil, fmt.Errorf("%s: (%d,%d): %w", opRowNanMeans, i, j, ErrNaNInf)
			}
			sum += v
			n++
		}
		if n == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(n)
	}

	return out, nil
}
