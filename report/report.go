// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/latentfa/factor"
)

// DefaultTopN is the number of loadings reported per dimension when topN ≤ 0.
const DefaultTopN = 3

// ErrDimensionMismatch signals inconsistent model, names and covariate sizes.
var ErrDimensionMismatch = errors.New("report: dimension mismatch")

// Loading is one variable's weight on a dimension.
type Loading struct {
	Variable string  `json:"variable" yaml:"variable"`
	Weight   float64 `json:"weight" yaml:"weight"`
}

// Entry describes one latent dimension.
type Entry struct {
	// Dimension is the zero-based factor index.
	Dimension int `json:"dimension" yaml:"dimension"`
	// Correlation is Pearson's r between the scores and the covariate; NaN when undefined.
	Correlation float64 `json:"correlation" yaml:"correlation"`
	// PValue is the two-sided p-value of Correlation.
	PValue float64 `json:"p_value" yaml:"p_value"`
	// AdjustedPValue is min(1, PValue·K).
	AdjustedPValue float64 `json:"adjusted_p_value" yaml:"adjusted_p_value"`
	// Loadings are the top variables by |weight|, descending; ties keep column order.
	Loadings []Loading `json:"loadings" yaml:"loadings"`
}

// Build produces one Entry per dimension of m.
//
// names labels the P loading columns; covariate must have one value per
// scored subject. topN ≤ 0 means DefaultTopN; at most P loadings are listed.
func Build(m *factor.Model, names []string, covariate []float64, topN int) ([]Entry, error) {
	if m == nil || m.Loadings == nil || m.Scores == nil {
		return nil, fmt.Errorf("report: nil model: %w", ErrDimensionMismatch)
	}
	kL, p := m.Loadings.Dims()
	n, kS := m.Scores.Dims()
	if kL != m.K || kS != m.K {
		return nil, fmt.Errorf("report: model has K=%d, loadings %d rows, scores %d columns: %w", m.K, kL, kS, ErrDimensionMismatch)
	}
	if len(names) != p {
		return nil, fmt.Errorf("report: %d names for %d variables: %w", len(names), p, ErrDimensionMismatch)
	}
	if len(covariate) != n {
		return nil, fmt.Errorf("report: covariate has %d values for %d subjects: %w", len(covariate), n, ErrDimensionMismatch)
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	if topN > p {
		topN = p
	}

	entries := make([]Entry, m.K)
	scores := make([]float64, n)
	for r := 0; r < m.K; r++ {
		mat.Col(scores, r, m.Scores)
		corr, pv := Pearson(scores, covariate)
		entries[r] = Entry{
			Dimension:      r,
			Correlation:    corr,
			PValue:         pv,
			AdjustedPValue: Bonferroni(pv, m.K),
			Loadings:       topLoadings(mat.Row(nil, r, m.Loadings), names, topN),
		}
	}
	return entries, nil
}

// Pearson returns Pearson's r for x and y and its two-sided p-value from
// Student's t distribution with len(x)−2 degrees of freedom.
// Fewer than 3 pairs or an undefined r (a constant input) give (NaN, 1);
// |r| = 1 gives p = 0.
func Pearson(x, y []float64) (float64, float64) {
	n := len(x)
	if n < 3 || len(y) != n {
		return math.NaN(), 1
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return math.NaN(), 1
	}
	r = math.Max(-1, math.Min(1, r))
	if math.Abs(r) == 1 {
		return r, 0
	}

	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(math.Abs(t))
	return r, math.Min(1, math.Max(0, p))
}

// Bonferroni returns min(1, p·k).
func Bonferroni(p float64, k int) float64 {
	return math.Min(1, p*float64(k))
}

func topLoadings(weights []float64, names []string, topN int) []Loading {
	order := make([]int, len(weights))
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool {
		return math.Abs(weights[order[a]]) > math.Abs(weights[order[b]])
	})
	out := make([]Loading, topN)
	for i := 0; i < topN; i++ {
		j := order[i]
		out[i] = Loading{Variable: names[j], Weight: weights[j]}
	}
	return out
}
