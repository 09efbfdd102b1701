// SPDX-License-Identifier: MIT

package selection

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/latentfa/factor"
)

// Candidate summarises one fitted dimensionality.
type Candidate struct {
	K                 int     `json:"k" yaml:"k"`
	Criterion         float64 `json:"criterion" yaml:"criterion"`
	LogLikelihood     float64 `json:"log_likelihood" yaml:"log_likelihood"`
	MeanLogLikelihood float64 `json:"mean_log_likelihood" yaml:"mean_log_likelihood"`
	Converged         bool    `json:"converged" yaml:"converged"`
	Iterations        int     `json:"iterations" yaml:"iterations"`
}

// Result is the outcome of a sweep.
type Result struct {
	// K is the smallest k attaining the minimum criterion.
	K int
	// Model is the fit for K, taken from the sweep (no refit).
	Model *factor.Model
	// Criterion is the criterion that was minimised.
	Criterion Criterion
	// Candidates holds every k in ascending order.
	Candidates []Candidate
}

// Select fits k = 1..maxK factor models to X and returns the one minimising
// the criterion, the smallest k on ties.
//
// maxK ≤ 0 means P. Any failing fit aborts the sweep with an error naming k;
// no partial result is returned. With several workers the error reported is
// the first to occur, which need not be the smallest failing k.
func Select(ctx context.Context, X mat.Matrix, maxK int, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	if X == nil {
		return nil, fmt.Errorf("selection: nil matrix: %w", ErrInvalidInput)
	}
	_, p := X.Dims()
	if maxK <= 0 {
		maxK = p
	}
	if maxK > p {
		return nil, fmt.Errorf("selection: max k %d exceeds %d variables: %w", maxK, p, ErrInvalidInput)
	}

	models := make([]*factor.Model, maxK)
	candidates := make([]Candidate, maxK)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for k := 1; k <= maxK; k++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := o.fit(X, k, o.fitOpts...)
			if err != nil {
				return fmt.Errorf("selection: k=%d: %w", k, err)
			}
			c := Candidate{
				K:                 k,
				Criterion:         o.criterion.Score(m),
				LogLikelihood:     m.LogLikelihood,
				MeanLogLikelihood: m.MeanLogLikelihood(),
				Converged:         m.Converged,
				Iterations:        m.Iterations,
			}
			models[k-1], candidates[k-1] = m, c
			if o.observer != nil {
				o.observer(c)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	best := 0
	for i := 1; i < maxK; i++ {
		if candidates[i].Criterion < candidates[best].Criterion {
			best = i
		}
	}

	return &Result{
		K:          best + 1,
		Model:      models[best],
		Criterion:  o.criterion,
		Candidates: candidates,
	}, nil
}
