// SPDX-License-Identifier: MIT

package table

import "errors"

var (
	// ErrInvalidInput covers malformed files, non-numeric cells, ragged rows and
	// columns that cannot be standardized (constant or non-finite).
	ErrInvalidInput = errors.New("table: invalid input")

	// ErrUnknownColumn is returned when a selection names a column the table lacks
	// or a pattern matches nothing.
	ErrUnknownColumn = errors.New("table: unknown column")

	// ErrDuplicateIndex is returned when a subject identifier appears twice.
	ErrDuplicateIndex = errors.New("table: duplicate subject")

	// ErrMisaligned signals two tables whose subject indexes differ.
	ErrMisaligned = errors.New("table: subject indexes are not aligned")
)
