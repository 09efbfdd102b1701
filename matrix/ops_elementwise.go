// SPDX-License-Identifier: MIT

package matrix

import "math"

// newLike allocates an r×c kernel output. Zero-area shapes are legal here:
// centering a 0×c matrix is a valid no-op.
func newLike(r, c int) *Dense {
	return &Dense{r: r, c: c, data: make([]float64, r*c), validateNaNInf: DefaultValidateNaNInf}
}

// ewCols applies out[i,j] = op(X[i,j], v[j]) row by row.
func ewCols(tag string, X Matrix, v []float64, op func(x, y float64) float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	r, c := X.Rows(), X.Cols()
	if err := ValidateVecLen(v, c); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	out := newLike(r, c)

	if d, ok := X.(*Dense); ok {
		for idx, x := range d.data {
			out.data[idx] = op(x, v[idx%c])
		}
		return out, nil
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			x, err := X.At(i, j)
			if err != nil {
				return nil, matrixErrorf(tag, err)
			}
			out.data[i*c+j] = op(x, v[j])
		}
	}
	return out, nil
}

// ewBroadcastSubCols returns X[i,j] − colMeans[j].
func ewBroadcastSubCols(X Matrix, colMeans []float64) (*Dense, error) {
	return ewCols("broadcastSubCols", X, colMeans, func(x, m float64) float64 { return x - m })
}

// ewScaleCols returns X[i,j] · scale[j].
func ewScaleCols(X Matrix, scale []float64) (*Dense, error) {
	return ewCols("scaleCols", X, scale, func(x, s float64) float64 { return x * s })
}

// ewAllClose reports whether |a−b| ≤ atol + rtol·|b| holds for every cell.
// Tolerances are taken by absolute value and must be finite; NaN is never
// close to anything, equal infinities are.
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	const tag = "AllClose"
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(tag, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for _, m := range []Matrix{a, b} {
		if err := ValidateNotNil(m); err != nil {
			return false, matrixErrorf(tag, err)
		}
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(tag, err)
	}

	near := func(x, y float64) bool {
		return x == y || math.Abs(x-y) <= atol+rtol*math.Abs(y)
	}
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			x, err := a.At(i, j)
			if err != nil {
				return false, matrixErrorf(tag, err)
			}
			y, err := b.At(i, j)
			if err != nil {
				return false, matrixErrorf(tag, err)
			}
			if !near(x, y) {
				return false, nil
			}
		}
	}
	return true, nil
}
