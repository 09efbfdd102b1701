// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

func nonFinite(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

// ValidateNotNil rejects a nil Matrix, including a typed nil *Dense.
func ValidateNotNil(m Matrix) error {
	if d, ok := m.(*Dense); m == nil || (ok && d == nil) {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	return nil
}

// ValidateSameShape fails with ErrDimensionMismatch unless a and b have the
// same size. Both must be non-nil.
func ValidateSameShape(a, b Matrix) error {
	switch {
	case a.Rows() != b.Rows():
		return fmt.Errorf("ValidateSameShape: rows %d vs %d: %w", a.Rows(), b.Rows(), ErrDimensionMismatch)
	case a.Cols() != b.Cols():
		return fmt.Errorf("ValidateSameShape: cols %d vs %d: %w", a.Cols(), b.Cols(), ErrDimensionMismatch)
	}
	return nil
}

// ValidateVecLen checks that x is non-nil and has exactly n entries.
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return fmt.Errorf("ValidateVecLen: have %d, need %d: %w", len(x), n, ErrDimensionMismatch)
	}
	return nil
}

// ValidateFinite fails on the first NaN or ±Inf, naming its cell.
func ValidateFinite(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateFinite", err)
	}
	if d, ok := m.(*Dense); ok {
		for idx, v := range d.data {
			if nonFinite(v) {
				return fmt.Errorf("ValidateFinite: (%d,%d): %w", idx/d.c, idx%d.c, ErrNaNInf)
			}
		}
		return nil
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return validatorErrorf("ValidateFinite", err)
			}
			if nonFinite(v) {
				return fmt.Errorf("ValidateFinite: (%d,%d): %w", i, j, ErrNaNInf)
			}
		}
	}
	return nil
}

// ValidateMinRows fails with ErrTooFewRows when m has fewer than n rows.
func ValidateMinRows(m Matrix, n int) error {
	if m.Rows() < n {
		return fmt.Errorf("ValidateMinRows: have %d, need %d: %w", m.Rows(), n, ErrTooFewRows)
	}
	return nil
}
