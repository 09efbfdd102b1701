// SPDX-License-Identifier: MIT

// Package synth draws deterministic samples from a Gaussian factor model.
//
// It backs the end-to-end tests and the "simulate" command: a survey table
// generated from a known loading pattern, plus mental-health scales whose
// composite is linked to chosen factors.
package synth

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/latentfa/table"
)

// DefaultSeed replaces a zero seed.
const DefaultSeed int64 = 20240917

// SurveyPrefix names generated survey columns: SurveyPrefix + "v<j>".
const SurveyPrefix = "synthetic_survey."

// ErrInvalidInput is returned for empty or ragged loading patterns and
// non-positive sizes.
var ErrInvalidInput = errors.New("synth: invalid input")

// Sample is one draw: the observed survey table and the latent factor values
// that produced it.
type Sample struct {
	Survey *table.Table
	// Factors is n×k, row i holds subject i's latent values.
	Factors *mat.Dense
}

// Subjects returns the identifiers used for n generated rows.
func Subjects(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("sub-%04d", i+1)
	}
	return ids
}

// Draw samples n subjects from x = Lᵀf + noiseStd·e with f and e standard
// normal. loadings is k rows of P weights.
func Draw(n int, loadings [][]float64, noiseStd float64, seed int64) (*Sample, error) {
	if n < 1 {
		return nil, fmt.Errorf("synth: n=%d: %w", n, ErrInvalidInput)
	}
	if noiseStd < 0 {
		return nil, fmt.Errorf("synth: noise std %g: %w", noiseStd, ErrInvalidInput)
	}
	k := len(loadings)
	if k == 0 || len(loadings[0]) == 0 {
		return nil, fmt.Errorf("synth: empty loadings: %w", ErrInvalidInput)
	}
	p := len(loadings[0])
	for r, row := range loadings {
		if len(row) != p {
			return nil, fmt.Errorf("synth: loadings row %d has %d values, want %d: %w", r, len(row), p, ErrInvalidInput)
		}
	}

	rng := newRand(seed)
	factors := mat.NewDense(n, k, nil)
	values := make([]float64, n*p)
	f := make([]float64, k)
	for i := 0; i < n; i++ {
		for r := range f {
			f[r] = rng.NormFloat64()
			factors.Set(i, r, f[r])
		}
		for j := 0; j < p; j++ {
			v := noiseStd * rng.NormFloat64()
			for r := 0; r < k; r++ {
				v += loadings[r][j] * f[r]
			}
			values[i*p+j] = v
		}
	}

	columns := make([]string, p)
	for j := range columns {
		columns[j] = fmt.Sprintf("%sv%d", SurveyPrefix, j)
	}
	survey, err := table.New(Subjects(n), columns, values)
	if err != nil {
		return nil, err
	}
	return &Sample{Survey: survey, Factors: factors}, nil
}

// Generate is Draw without the latent values.
func Generate(n int, loadings [][]float64, noiseStd float64, seed int64) (*table.Table, error) {
	s, err := Draw(n, loadings, noiseStd, seed)
	if err != nil {
		return nil, err
	}
	return s.Survey, nil
}

// Covariate returns weights·f_i + noiseStd·e_i for every subject of s.
func Covariate(s *Sample, weights []float64, noiseStd float64, seed int64) ([]float64, error) {
	if s == nil || s.Factors == nil {
		return nil, fmt.Errorf("synth: nil sample: %w", ErrInvalidInput)
	}
	n, k := s.Factors.Dims()
	if len(weights) != k {
		return nil, fmt.Errorf("synth: %d weights for %d factors: %w", len(weights), k, ErrInvalidInput)
	}
	rng := newRand(seed)
	out := make([]float64, n)
	for i := range out {
		v := noiseStd * rng.NormFloat64()
		for r, w := range weights {
			v += w * s.Factors.At(i, r)
		}
		out[i] = v
	}
	return out, nil
}

// Health builds a subject-indexed table with one column per name, each an
// independent noisy copy of the covariate defined by weights. Averaging the
// columns recovers a composite linked to the same factors.
func Health(s *Sample, columns []string, weights []float64, noiseStd float64, seed int64) (*table.Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("synth: no health columns: %w", ErrInvalidInput)
	}
	if seed == 0 {
		seed = DefaultSeed
	}
	per := make([][]float64, len(columns))
	for c := range columns {
		v, err := Covariate(s, weights, noiseStd, seed+int64(c)+1)
		if err != nil {
			return nil, err
		}
		per[c] = v
	}
	n := len(per[0])
	values := make([]float64, 0, n*len(columns))
	for i := 0; i < n; i++ {
		for c := range columns {
			values = append(values, per[c][i])
		}
	}
	return table.New(s.Survey.Index(), columns, values)
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}
