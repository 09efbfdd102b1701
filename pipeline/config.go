// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"fmt"
	"path"

	"github.com/katalvlaran/latentfa/factor"
	"github.com/katalvlaran/latentfa/report"
	"github.com/katalvlaran/latentfa/selection"
)

// Defaults applied by Config.withDefaults.
const (
	DefaultSurveyPattern = "*_survey*"
	DefaultComposite     = "mental_health"
)

// DefaultHealthColumns are the mental-health scales averaged into the composite.
var DefaultHealthColumns = []string{
	"Nervous", "Hopeless", "RestlessFidgety", "Depressed", "EverythingIsEffort", "Worthless",
}

// ErrInvalidConfig is returned by Run for an unusable Config.
var ErrInvalidConfig = errors.New("pipeline: invalid config")

// Config carries every setting of a run. Zero values select the defaults.
type Config struct {
	// Health and Behavioral are sources handed to the Loader.
	Health     string
	Behavioral string

	// HealthColumns are averaged into the composite named CompositeName.
	HealthColumns []string
	CompositeName string
	// SurveyPattern picks the behavioral columns (path.Match syntax, so '*'
	// does not match '/').
	SurveyPattern string

	// MaxK bounds the sweep; 0 means the number of survey variables.
	MaxK      int
	Criterion selection.Criterion
	// Workers is the number of candidate fits run concurrently (0 means 1).
	Workers int

	// Tolerance and MaxIter override the factor defaults when positive.
	Tolerance float64
	MaxIter   int
	// NoiseFloor, when positive, clamps noise variances instead of failing.
	NoiseFloor float64

	// TopN is the number of loadings reported per dimension (0 means report.DefaultTopN).
	TopN int
}

func (c Config) withDefaults() Config {
	if len(c.HealthColumns) == 0 {
		c.HealthColumns = append([]string(nil), DefaultHealthColumns...)
	}
	if c.CompositeName == "" {
		c.CompositeName = DefaultComposite
	}
	if c.SurveyPattern == "" {
		c.SurveyPattern = DefaultSurveyPattern
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.TopN <= 0 {
		c.TopN = report.DefaultTopN
	}
	return c
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Health == "":
		return fmt.Errorf("%w: health source is empty", ErrInvalidConfig)
	case c.Behavioral == "":
		return fmt.Errorf("%w: behavioral source is empty", ErrInvalidConfig)
	case c.MaxK < 0:
		return fmt.Errorf("%w: max k %d is negative", ErrInvalidConfig, c.MaxK)
	case c.Tolerance < 0:
		return fmt.Errorf("%w: tolerance %g is negative", ErrInvalidConfig, c.Tolerance)
	case c.MaxIter < 0:
		return fmt.Errorf("%w: max iter %d is negative", ErrInvalidConfig, c.MaxIter)
	case c.NoiseFloor < 0:
		return fmt.Errorf("%w: noise floor %g is negative", ErrInvalidConfig, c.NoiseFloor)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d is negative", ErrInvalidConfig, c.Workers)
	case c.TopN < 0:
		return fmt.Errorf("%w: top n %d is negative", ErrInvalidConfig, c.TopN)
	}
	if _, err := selection.ParseCriterion(c.Criterion.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := path.Match(c.SurveyPattern, ""); err != nil {
		return fmt.Errorf("%w: survey pattern %q: %v", ErrInvalidConfig, c.SurveyPattern, err)
	}
	return nil
}

func (c Config) fitOptions() []factor.Option {
	var opts []factor.Option
	if c.Tolerance > 0 {
		opts = append(opts, factor.WithTolerance(c.Tolerance))
	}
	if c.MaxIter > 0 {
		opts = append(opts, factor.WithMaxIter(c.MaxIter))
	}
	if c.NoiseFloor > 0 {
		opts = append(opts, factor.WithNoiseFloor(c.NoiseFloor))
	}
	return opts
}
