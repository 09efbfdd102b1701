package selection_test

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/latentfa/factor"
	"github.com/katalvlaran/latentfa/selection"
)

var twoBlocks = [][]float64{
	{0.9, 0.85, 0.8, 0, 0, 0},
	{0, 0, 0, 0.9, 0.85, 0.8},
}

// standardizedSample draws n rows of x = Lᵀf + noise·e and z-scores the columns.
func standardizedSample(n int, loadings [][]float64, noise float64, seed int64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	k, p := len(loadings), len(loadings[0])
	X := mat.NewDense(n, p, nil)
	f := make([]float64, k)
	for i := 0; i < n; i++ {
		for r := range f {
			f[r] = rng.NormFloat64()
		}
		for j := 0; j < p; j++ {
			v := noise * rng.NormFloat64()
			for r := 0; r < k; r++ {
				v += loadings[r][j] * f[r]
			}
			X.Set(i, j, v)
		}
	}
	for j := 0; j < p; j++ {
		var mean, ss float64
		for i := 0; i < n; i++ {
			mean += X.At(i, j)
		}
		mean /= float64(n)
		for i := 0; i < n; i++ {
			d := X.At(i, j) - mean
			ss += d * d
		}
		sd := math.Sqrt(ss / float64(n))
		for i := 0; i < n; i++ {
			X.Set(i, j, (X.At(i, j)-mean)/sd)
		}
	}
	return X
}

// fixedCriterion returns a fitter whose models have SimplifiedAIC equal to aic[k-1].
func fixedCriterion(aic []float64, n, p int) selection.FitFunc {
	return func(_ mat.Matrix, k int, _ ...factor.Option) (*factor.Model, error) {
		// 2k − 2·LL/N = aic  ⇒  LL = N·(2k − aic)/2
		return &factor.Model{
			K:             k,
			N:             n,
			Mean:          make([]float64, p),
			LogLikelihood: float64(n) * (2*float64(k) - aic[k-1]) / 2,
			Converged:     true,
			Iterations:    1,
		}, nil
	}
}

func TestSelect_TieBreaksToSmallerK(t *testing.T) {
	aic := []float64{10, 4, 6, 7, 4, 9}
	X := mat.NewDense(10, 6, nil)

	for _, workers := range []int{1, 3, 6} {
		res, err := selection.Select(context.Background(), X, 6,
			selection.WithFitter(fixedCriterion(aic, 10, 6)),
			selection.WithWorkers(workers))
		require.NoError(t, err)
		assert.Equal(t, 2, res.K, "workers=%d", workers)
		assert.Equal(t, 2, res.Model.K)
		require.Len(t, res.Candidates, 6)
		for i, c := range res.Candidates {
			assert.Equal(t, i+1, c.K)
			assert.InDelta(t, aic[i], c.Criterion, 1e-12)
		}
	}
}

func TestSelect_RecoversTwoFactors(t *testing.T) {
	X := standardizedSample(50, twoBlocks, 0.3, 2024)

	res, err := selection.Select(context.Background(), X, 6)
	require.NoError(t, err)
	assert.Equal(t, 2, res.K)
	assert.Equal(t, selection.SimplifiedAIC, res.Criterion)
	require.Len(t, res.Candidates, 6)

	r, c := res.Model.Scores.Dims()
	assert.Equal(t, 50, r)
	assert.Equal(t, 2, c)
}

// recoveries counts the seeds 1..seeds for which the sweep over a 50×6
// two-factor sample picks k=2.
func recoveries(t *testing.T, noise float64, seeds int) int {
	t.Helper()
	hits := 0
	for seed := int64(1); seed <= int64(seeds); seed++ {
		res, err := selection.Select(context.Background(), standardizedSample(50, twoBlocks, noise, seed), 6)
		require.NoError(t, err, "noise=%g seed=%d", noise, seed)
		if res.K == 2 {
			hits++
		}
	}
	return hits
}

func TestSelect_RecoveryImprovesAsNoiseShrinks(t *testing.T) {
	const seeds = 30
	noisy := recoveries(t, 0.5, seeds)
	clean := recoveries(t, 0.3, seeds)
	cleanest := recoveries(t, 0.1, seeds)

	assert.Equal(t, seeds, clean)
	assert.Equal(t, seeds, cleanest)
	assert.LessOrEqual(t, noisy, clean)
}

func TestSelect_DeterministicAcrossWorkers(t *testing.T) {
	X := standardizedSample(60, twoBlocks, 0.5, 77)

	seq, err := selection.Select(context.Background(), X, 0)
	require.NoError(t, err)
	par, err := selection.Select(context.Background(), X, 0, selection.WithWorkers(4))
	require.NoError(t, err)

	assert.Equal(t, seq.K, par.K)
	assert.Equal(t, seq.Candidates, par.Candidates)
	assert.True(t, mat.Equal(seq.Model.Loadings, par.Model.Loadings))
}

func TestSelect_MaxKDefaultsToP(t *testing.T) {
	X := standardizedSample(40, twoBlocks, 0.5, 5)
	res, err := selection.Select(context.Background(), X, -1)
	require.NoError(t, err)
	assert.Len(t, res.Candidates, 6)
}

func TestSelect_InvalidInput(t *testing.T) {
	X := standardizedSample(20, twoBlocks, 0.5, 1)

	_, err := selection.Select(context.Background(), X, 7)
	assert.ErrorIs(t, err, selection.ErrInvalidInput)
	_, err = selection.Select(context.Background(), nil, 1)
	assert.ErrorIs(t, err, selection.ErrInvalidInput)
}

func TestSelect_PropagatesFitError(t *testing.T) {
	boom := errors.New("boom")
	fit := func(X mat.Matrix, k int, opts ...factor.Option) (*factor.Model, error) {
		if k == 3 {
			return nil, boom
		}
		return factor.Fit(X, k, opts...)
	}
	X := standardizedSample(30, twoBlocks, 0.5, 3)

	res, err := selection.Select(context.Background(), X, 4, selection.WithFitter(fit))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "k=3")
}

func TestSelect_WrapsFactorErrors(t *testing.T) {
	X := standardizedSample(30, twoBlocks, 0.5, 3)
	for i := 0; i < 30; i++ {
		X.Set(i, 0, 1) // constant column: singular covariance
	}
	_, err := selection.Select(context.Background(), X, 2)
	assert.ErrorIs(t, err, factor.ErrNumericalInstability)
}

func TestSelect_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	X := standardizedSample(30, twoBlocks, 0.5, 3)

	_, err := selection.Select(ctx, X, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSelect_ObserverSeesEveryCandidate(t *testing.T) {
	X := standardizedSample(40, twoBlocks, 0.5, 8)
	var (
		mu   sync.Mutex
		seen = map[int]bool{}
	)
	_, err := selection.Select(context.Background(), X, 4,
		selection.WithWorkers(2),
		selection.WithFitOptions(factor.WithMaxIter(500)),
		selection.WithObserver(func(c selection.Candidate) {
			mu.Lock()
			seen[c.K] = true
			mu.Unlock()
		}))
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true, 4: true}, seen)
}

func TestCriterion_Formulas(t *testing.T) {
	m := &factor.Model{K: 2, N: 100, Mean: make([]float64, 6), LogLikelihood: -500}

	// params = 2·6 + 6 − 1 = 17
	assert.Equal(t, 17, selection.FreeParameters(2, 6))
	assert.InDelta(t, 4+10.0, selection.SimplifiedAIC.Score(m), 1e-12)
	assert.InDelta(t, 34+1000.0, selection.ParameterAIC.Score(m), 1e-12)
	assert.InDelta(t, math.Log(100)*17+1000, selection.BIC.Score(m), 1e-9)
}

func TestParseCriterion(t *testing.T) {
	for _, c := range []selection.Criterion{selection.SimplifiedAIC, selection.ParameterAIC, selection.BIC} {
		got, err := selection.ParseCriterion(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	got, err := selection.ParseCriterion(" BIC ")
	require.NoError(t, err)
	assert.Equal(t, selection.BIC, got)

	_, err = selection.ParseCriterion("cv")
	assert.ErrorIs(t, err, selection.ErrInvalidInput)
	assert.Equal(t, "Criterion(9)", selection.Criterion(9).String())
}

func TestOptions_Panic(t *testing.T) {
	assert.Panics(t, func() { selection.WithWorkers(0) })
	assert.Panics(t, func() { selection.WithFitter(nil) })
	assert.Panics(t, func() { selection.WithCriterion(selection.Criterion(42)) })
}
