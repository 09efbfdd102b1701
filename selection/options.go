// SPDX-License-Identifier: MIT

package selection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/latentfa/factor"
)

// FitFunc fits a k-factor model; factor.Fit is the default.
type FitFunc func(X mat.Matrix, k int, opts ...factor.Option) (*factor.Model, error)

// Observer is called once per finished candidate. With more than one worker it
// may be called concurrently and out of k order.
type Observer func(Candidate)

// Option configures Select. Constructors panic on nonsensical values.
type Option func(*options)

type options struct {
	criterion Criterion
	workers   int
	fitOpts   []factor.Option
	fit       FitFunc
	observer  Observer
}

// WithCriterion selects the criterion to minimise (default SimplifiedAIC).
func WithCriterion(c Criterion) Option {
	if _, ok := criterionNames[c]; !ok {
		panic("selection: WithCriterion: unknown criterion")
	}
	return func(o *options) { o.criterion = c }
}

// WithWorkers bounds the number of candidates fitted concurrently (default 1).
func WithWorkers(n int) Option {
	if n < 1 {
		panic("selection: WithWorkers: n must be >= 1")
	}
	return func(o *options) { o.workers = n }
}

// WithFitOptions forwards options to every factor fit.
func WithFitOptions(opts ...factor.Option) Option {
	return func(o *options) { o.fitOpts = append(o.fitOpts, opts...) }
}

// WithFitter replaces factor.Fit.
func WithFitter(fit FitFunc) Option {
	if fit == nil {
		panic("selection: WithFitter: nil fit function")
	}
	return func(o *options) { o.fit = fit }
}

// WithObserver registers a callback for finished candidates.
func WithObserver(fn Observer) Option {
	return func(o *options) { o.observer = fn }
}

func gatherOptions(opts ...Option) options {
	o := options{criterion: SimplifiedAIC, workers: 1, fit: factor.Fit}
	for _, set := range opts {
		if set != nil {
			set(&o)
		}
	}
	return o
}
