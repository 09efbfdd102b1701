// SPDX-License-Identifier: MIT

package factor

import "math"

const (
	// DefaultTolerance is the minimum log-likelihood gain that keeps EM iterating.
	DefaultTolerance = 1e-2

	// DefaultMaxIter caps the number of EM iterations.
	DefaultMaxIter = 1000
)

const (
	panicToleranceInvalid  = "factor: WithTolerance: tol must be finite and >= 0"
	panicMaxIterInvalid    = "factor: WithMaxIter: n must be >= 1"
	panicNoiseFloorInvalid = "factor: WithNoiseFloor: floor must be finite and > 0"
)

// Option configures Fit. Constructors panic on nonsensical values.
type Option func(*options)

type options struct {
	tol        float64
	maxIter    int
	noiseFloor float64 // 0: a non-positive noise variance is an error
}

// WithTolerance sets the convergence threshold on the log-likelihood gain.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}
	return func(o *options) { o.tol = tol }
}

// WithMaxIter caps the number of EM iterations.
func WithMaxIter(n int) Option {
	if n < 1 {
		panic(panicMaxIterInvalid)
	}
	return func(o *options) { o.maxIter = n }
}

// WithNoiseFloor clamps noise variances to floor instead of failing with
// ErrNumericalInstability when an update drives them to zero or below
// (Heywood cases).
func WithNoiseFloor(floor float64) Option {
	if math.IsNaN(floor) || math.IsInf(floor, 0) || floor <= 0 {
		panic(panicNoiseFloorInvalid)
	}
	return func(o *options) { o.noiseFloor = floor }
}

func gatherOptions(opts ...Option) options {
	o := options{tol: DefaultTolerance, maxIter: DefaultMaxIter}
	for _, set := range opts {
		if set != nil {
			set(&o)
		}
	}
	return o
}
