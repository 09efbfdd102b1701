// SPDX-License-Identifier: MIT

package factor

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Fit estimates a k-factor model from the N×P observation matrix X.
//
// MAIN DESCRIPTION:
//   - Center the columns, form S = XcᵀXc/N and start from Ψ = I.
//   - Each iteration whitens S by Ψ, takes the k largest eigenpairs (s_r, v_r) of
//     C = Ψ^{-1/2} S Ψ^{-1/2}, sets Λ_r = sqrt(max(s_r−1, 0))·v_r∘sqrt(Ψ) and
//     evaluates the exact log-likelihood of (Λ, Ψ):
//     LL = −N/2·(P·ln 2π + Σ ln Ψ_j + Σ_{s_r>1}(ln s_r + 1) + Σ_{others} λ).
//   - Stop once the gain falls below the tolerance, or at the iteration cap;
//     otherwise update Ψ_j = S_jj − Σ_r Λ_rj² and repeat.
//   - Score every row with the posterior mean under the final (Λ, Ψ).
//
// Errors:
//   - ErrInvalidInput: nil or non-finite X, fewer than 2 rows, k outside [1, P].
//   - ErrNumericalInstability: decomposition failure, or a noise variance that
//     becomes ≤ 0 or non-finite (unless WithNoiseFloor is set).
//
// Determinism:
//   - No randomness; identical inputs yield identical models.
//
// Complexity:
//   - Time O(N·P² + iters·P³), Space O(N·P + P²).
func Fit(X mat.Matrix, k int, opts ...Option) (*Model, error) {
	o := gatherOptions(opts...)

	if X == nil {
		return nil, fmt.Errorf("factor: nil matrix: %w", ErrInvalidInput)
	}
	n, p := X.Dims()
	if n < 2 {
		return nil, fmt.Errorf("factor: %d rows, need at least 2: %w", n, ErrInvalidInput)
	}
	if k < 1 || k > p {
		return nil, fmt.Errorf("factor: k=%d outside [1, %d]: %w", k, p, ErrInvalidInput)
	}
	if err := checkFinite(X); err != nil {
		return nil, err
	}

	xc, mean := centerColumns(X)
	S := mat.NewSymDense(p, nil)
	S.SymOuterK(1/float64(n), xc.T())

	variance := make([]float64, p)
	psi := make([]float64, p)
	for j := 0; j < p; j++ {
		variance[j] = S.At(j, j)
		psi[j] = 1
	}

	var (
		loadings  = mat.NewDense(k, p, nil)
		ll        float64
		prevLL    = math.Inf(-1)
		iter      int
		converged bool
		step      = newWhitenedStep(p, k, n)
	)
	for iter = 1; iter <= o.maxIter; iter++ {
		var err error
		ll, err = step.run(S, psi, loadings)
		if err != nil {
			return nil, fmt.Errorf("factor: iteration %d: %w", iter, err)
		}
		if ll-prevLL < o.tol {
			converged = true
			break
		}
		if iter == o.maxIter {
			break // keep (Λ, Ψ, LL) consistent: no trailing Ψ update
		}
		prevLL = ll

		if err := updateNoise(psi, variance, loadings, o.noiseFloor); err != nil {
			return nil, fmt.Errorf("factor: iteration %d: %w", iter, err)
		}
	}

	scores, err := posteriorMeans(xc, loadings, psi)
	if err != nil {
		return nil, err
	}

	return &Model{
		K:             k,
		Loadings:      loadings,
		Scores:        scores,
		NoiseVariance: psi,
		Mean:          mean,
		LogLikelihood: ll,
		Iterations:    iter,
		Converged:     converged,
		N:             n,
	}, nil
}

func centerColumns(X mat.Matrix) (*mat.Dense, []float64) {
	xc := mat.DenseCopyOf(X)
	n, p := xc.Dims()
	mean := make([]float64, p)
	for j := 0; j < p; j++ {
		var s float64
		for i := 0; i < n; i++ {
			s += xc.At(i, j)
		}
		mean[j] = s / float64(n)
		for i := 0; i < n; i++ {
			xc.Set(i, j, xc.At(i, j)-mean[j])
		}
	}
	return xc, mean
}

// whitenedStep holds the buffers reused across EM iterations.
type whitenedStep struct {
	p, k  int
	n     float64
	c     *mat.SymDense
	eig   mat.EigenSym
	vecs  mat.Dense
	order []int
	sqrt  []float64
}

func newWhitenedStep(p, k, n int) *whitenedStep {
	return &whitenedStep{
		p:     p,
		k:     k,
		n:     float64(n),
		c:     mat.NewSymDense(p, nil),
		order: make([]int, p),
		sqrt:  make([]float64, p),
	}
}

// run writes the loadings for the current Ψ into loadings and returns the
// exact log-likelihood of (loadings, Ψ).
func (w *whitenedStep) run(S *mat.SymDense, psi []float64, loadings *mat.Dense) (float64, error) {
	p, k := w.p, w.k
	var sumLogPsi float64
	for j := 0; j < p; j++ {
		w.sqrt[j] = math.Sqrt(psi[j])
		sumLogPsi += math.Log(psi[j])
	}
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			w.c.SetSym(i, j, S.At(i, j)/(w.sqrt[i]*w.sqrt[j]))
		}
	}

	if ok := w.eig.Factorize(w.c, true); !ok {
		return 0, fmt.Errorf("eigendecomposition failed: %w", ErrNumericalInstability)
	}
	values := w.eig.Values(nil)
	w.eig.VectorsTo(&w.vecs)

	for i := range w.order {
		w.order[i] = i
	}
	sort.SliceStable(w.order, func(a, b int) bool { return values[w.order[a]] > values[w.order[b]] })

	// Per-eigenvalue likelihood terms: ln s + 1 for retained s > 1, s otherwise.
	var spectral float64
	for rank, idx := range w.order {
		s := values[idx]
		if rank < k && s > 1 {
			spectral += math.Log(s) + 1
		} else {
			spectral += s
		}
	}

	for r := 0; r < k; r++ {
		idx := w.order[r]
		scale := math.Sqrt(math.Max(values[idx]-1, 0))
		for j := 0; j < p; j++ {
			loadings.Set(r, j, scale*w.vecs.At(j, idx)*w.sqrt[j])
		}
	}

	ll := -0.5 * w.n * (float64(p)*math.Log(2*math.Pi) + sumLogPsi + spectral)
	if math.IsNaN(ll) || math.IsInf(ll, 0) {
		return 0, fmt.Errorf("log-likelihood is not finite: %w", ErrNumericalInstability)
	}
	return ll, nil
}

// updateNoise sets Ψ_j = var_j − Σ_r Λ_rj², clamped to floor when floor > 0.
func updateNoise(psi, variance []float64, loadings *mat.Dense, floor float64) error {
	k, p := loadings.Dims()
	for j := 0; j < p; j++ {
		v := variance[j]
		for r := 0; r < k; r++ {
			l := loadings.At(r, j)
			v -= l * l
		}
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			return fmt.Errorf("noise variance %d is %g: %w", j, v, ErrNumericalInstability)
		case floor > 0 && v < floor:
			v = floor
		case v <= 0:
			return fmt.Errorf("noise variance %d is %g: %w", j, v, ErrNumericalInstability)
		}
		psi[j] = v
	}
	return nil
}
