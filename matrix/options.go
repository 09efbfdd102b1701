// SPDX-License-Identifier: MIT

package matrix

import "math"

const (
	// DefaultEpsilon is the standard deviation at or below which a column
	// counts as constant.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf makes new matrices reject NaN and ±Inf.
	DefaultValidateNaNInf = true
)

const panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"

// Option adjusts the numeric policy of a constructor or kernel.
type Option func(*Options)

// Options is the resolved policy. Build it with NewMatrixOptions.
type Options struct {
	eps            float64
	validateNaNInf bool
}

// Epsilon returns the zero-variance threshold.
func (o Options) Epsilon() float64 { return o.eps }

// ValidateNaNInf reports whether non-finite values are rejected.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// WithEpsilon sets the zero-variance threshold. It panics when eps is
// negative or not finite.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}
	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf turns the finite-only policy on.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf lets NaN and ±Inf in. Raw survey tables use it so that
// NaN can mark a missing answer; the statistics kernels still check their
// inputs themselves.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// NewMatrixOptions applies opts in order over the defaults. Nil options are
// skipped and the last setter of a field wins.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

func gatherOptions(opts ...Option) Options {
	o := Options{eps: DefaultEpsilon, validateNaNInf: DefaultValidateNaNInf}
	for _, set := range opts {
		if set != nil {
			set(&o)
		}
	}
	return o
}
