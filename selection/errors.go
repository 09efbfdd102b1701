// SPDX-License-Identifier: MIT

package selection

import "errors"

// ErrInvalidInput signals a nil matrix, maxK above P or an unknown criterion.
var ErrInvalidInput = errors.New("selection: invalid input")
