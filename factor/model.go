// SPDX-License-Identifier: MIT

package factor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Model is a fitted factor model. It is immutable after Fit returns.
type Model struct {
	// K is the number of latent factors.
	K int

	// Loadings is k×P; row r holds the loadings of factor r.
	Loadings *mat.Dense

	// Scores is N×k; row i holds the posterior mean factor scores of subject i
	// under exactly Loadings and NoiseVariance.
	Scores *mat.Dense

	// NoiseVariance is the diagonal of Ψ (length P).
	NoiseVariance []float64

	// Mean is the per-variable mean subtracted before fitting (length P).
	Mean []float64

	// LogLikelihood is the exact total Gaussian log-likelihood of the training
	// rows under (Mean, Loadings, NoiseVariance).
	LogLikelihood float64

	// Iterations is the number of likelihood evaluations performed.
	Iterations int

	// Converged is false when Fit stopped at the iteration cap.
	Converged bool

	// N is the number of training rows.
	N int
}

// Variables returns P.
func (m *Model) Variables() int { return len(m.Mean) }

// MeanLogLikelihood returns LogLikelihood divided by the number of training rows.
func (m *Model) MeanLogLikelihood() float64 {
	return m.LogLikelihood / float64(m.N)
}

// Covariance returns the implied covariance Σ = ΛᵀΛ + Ψ.
func (m *Model) Covariance() *mat.SymDense {
	p := len(m.NoiseVariance)
	sigma := mat.NewSymDense(p, nil)
	sigma.SymOuterK(1, m.Loadings.T())
	for j, psi := range m.NoiseVariance {
		sigma.SetSym(j, j, sigma.At(j, j)+psi)
	}
	return sigma
}

// Transform returns the posterior mean factor scores of the rows of X (N'×P).
func (m *Model) Transform(X mat.Matrix) (*mat.Dense, error) {
	xc, err := m.centerNew(X)
	if err != nil {
		return nil, err
	}
	return posteriorMeans(xc, m.Loadings, m.NoiseVariance)
}

// AverageLogLikelihood returns the mean Gaussian log-likelihood of the rows of
// X under the model. For the training rows it equals MeanLogLikelihood.
func (m *Model) AverageLogLikelihood(X mat.Matrix) (float64, error) {
	xc, err := m.centerNew(X)
	if err != nil {
		return 0, err
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(m.Covariance()); !ok {
		return 0, fmt.Errorf("factor: covariance is not positive definite: %w", ErrNumericalInstability)
	}

	rows, p := xc.Dims()
	logDet := chol.LogDet()
	base := float64(p)*math.Log(2*math.Pi) + logDet

	row := mat.NewVecDense(p, nil)
	sol := mat.NewVecDense(p, nil)
	var total float64
	for i := 0; i < rows; i++ {
		row.CopyVec(xc.RowView(i))
		if err := chol.SolveVecTo(sol, row); err != nil {
			return 0, fmt.Errorf("factor: %v: %w", err, ErrNumericalInstability)
		}
		total += -0.5 * (base + mat.Dot(row, sol))
	}
	return total / float64(rows), nil
}

func (m *Model) centerNew(X mat.Matrix) (*mat.Dense, error) {
	if X == nil {
		return nil, fmt.Errorf("factor: nil matrix: %w", ErrInvalidInput)
	}
	r, c := X.Dims()
	if c != len(m.Mean) || r == 0 {
		return nil, fmt.Errorf("factor: got %dx%d, model has %d variables: %w", r, c, len(m.Mean), ErrInvalidInput)
	}
	if err := checkFinite(X); err != nil {
		return nil, err
	}
	xc := mat.DenseCopyOf(X)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			xc.Set(i, j, xc.At(i, j)-m.Mean[j])
		}
	}
	return xc, nil
}

// posteriorMeans computes Xc·(ΛΨ⁻¹)ᵀ·(I + ΛΨ⁻¹Λᵀ)⁻¹ with a Cholesky solve.
func posteriorMeans(xc *mat.Dense, loadings *mat.Dense, psi []float64) (*mat.Dense, error) {
	k, p := loadings.Dims()
	n, _ := xc.Dims()

	wpsi := mat.NewDense(k, p, nil)
	for r := 0; r < k; r++ {
		for j := 0; j < p; j++ {
			wpsi.Set(r, j, loadings.At(r, j)/psi[j])
		}
	}

	// M = I + (ΛΨ⁻¹)Λᵀ is symmetric positive definite.
	var prod mat.Dense
	prod.Mul(wpsi, loadings.T())
	M := mat.NewSymDense(k, nil)
	for a := 0; a < k; a++ {
		for b := a; b < k; b++ {
			v := 0.5 * (prod.At(a, b) + prod.At(b, a))
			if a == b {
				v++
			}
			M.SetSym(a, b, v)
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(M); !ok {
		return nil, fmt.Errorf("factor: posterior precision is not positive definite: %w", ErrNumericalInstability)
	}

	var rhs mat.Dense
	rhs.Mul(wpsi, xc.T()) // k×N
	sol := mat.NewDense(k, n, nil)
	if err := chol.SolveTo(sol, &rhs); err != nil {
		return nil, fmt.Errorf("factor: %v: %w", err, ErrNumericalInstability)
	}
	return mat.DenseCopyOf(sol.T()), nil
}

func checkFinite(X mat.Matrix) error {
	r, c := X.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("factor: non-finite value at (%d,%d): %w", i, j, ErrInvalidInput)
			}
		}
	}
	return nil
}
