// SPDX-License-Identifier: MIT

package selection

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/latentfa/factor"
)

// Criterion scores a fitted model; lower is better.
type Criterion int

const (
	// SimplifiedAIC is 2k − 2·MeanLogLikelihood.
	SimplifiedAIC Criterion = iota
	// ParameterAIC is 2·params − 2·LogLikelihood.
	ParameterAIC
	// BIC is ln(N)·params − 2·LogLikelihood.
	BIC
)

var criterionNames = map[Criterion]string{
	SimplifiedAIC: "aic",
	ParameterAIC:  "aic-params",
	BIC:           "bic",
}

// String returns the configuration name of c.
func (c Criterion) String() string {
	if s, ok := criterionNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Criterion(%d)", int(c))
}

// ParseCriterion maps a configuration name ("aic", "aic-params", "bic") to a Criterion.
func ParseCriterion(s string) (Criterion, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for c, name := range criterionNames {
		if name == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("selection: unknown criterion %q: %w", s, ErrInvalidInput)
}

// FreeParameters returns the number of free parameters of a k-factor model on
// P variables: loadings and noise variances minus the rotational freedom.
func FreeParameters(k, p int) int {
	return k*p + p - k*(k-1)/2
}

// Score evaluates c for m.
func (c Criterion) Score(m *factor.Model) float64 {
	switch c {
	case ParameterAIC:
		return 2*float64(FreeParameters(m.K, m.Variables())) - 2*m.LogLikelihood
	case BIC:
		return math.Log(float64(m.N))*float64(FreeParameters(m.K, m.Variables())) - 2*m.LogLikelihood
	default:
		return 2*float64(m.K) - 2*m.MeanLogLikelihood()
	}
}
