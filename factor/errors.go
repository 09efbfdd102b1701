// SPDX-License-Identifier: MIT

package factor

import "errors"

var (
	// ErrInvalidInput signals an unusable observation matrix or factor count:
	// nil, non-finite, fewer than two rows, or k outside [1, P].
	ErrInvalidInput = errors.New("factor: invalid input")

	// ErrNumericalInstability signals a failed decomposition or a noise variance
	// that became non-positive or non-finite during fitting.
	ErrNumericalInstability = errors.New("factor: numerical instability")
)
