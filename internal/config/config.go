// SPDX-License-Identifier: MIT

// Package config loads latentfa settings from a YAML file, LATENTFA_*
// environment variables and command-line flags, fills defaults and
// validates the result.
//
// Precedence, highest first: changed flags, environment, file, defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/latentfa/internal/logging"
	"github.com/katalvlaran/latentfa/pipeline"
	"github.com/katalvlaran/latentfa/render"
	"github.com/katalvlaran/latentfa/selection"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the complete set of settings for one run.
type Config struct {
	Data   DataConfig     `mapstructure:"data" yaml:"data"`
	Model  ModelConfig    `mapstructure:"model" yaml:"model"`
	Report ReportConfig   `mapstructure:"report" yaml:"report"`
	Log    logging.Config `mapstructure:"log" yaml:"log"`
}

// DataConfig names the inputs and how columns are picked from them.
type DataConfig struct {
	// Health and Behavioral are file paths or http(s) URLs of CSV tables
	// whose first column is the subject identifier.
	Health     string `mapstructure:"health" yaml:"health"`
	Behavioral string `mapstructure:"behavioral" yaml:"behavioral"`

	HealthColumns []string `mapstructure:"health_columns" yaml:"health_columns"`
	SurveyPattern string   `mapstructure:"survey_pattern" yaml:"survey_pattern"`
	Composite     string   `mapstructure:"composite" yaml:"composite"`
}

// ModelConfig controls the dimensionality sweep and every factor fit.
type ModelConfig struct {
	MaxK       int     `mapstructure:"max_k" yaml:"max_k"`
	Criterion  string  `mapstructure:"criterion" yaml:"criterion"`
	Tolerance  float64 `mapstructure:"tolerance" yaml:"tolerance"`
	MaxIter    int     `mapstructure:"max_iter" yaml:"max_iter"`
	NoiseFloor float64 `mapstructure:"noise_floor" yaml:"noise_floor"`
	Workers    int     `mapstructure:"workers" yaml:"workers"`
}

// ReportConfig controls the output.
type ReportConfig struct {
	TopN   int    `mapstructure:"top_n" yaml:"top_n"`
	Format string `mapstructure:"format" yaml:"format"`
	// Plot, when set, is the image path for the criterion-versus-k plot.
	Plot string `mapstructure:"plot" yaml:"plot"`
}

// Validate checks cfg after defaults have been applied.
func (c *Config) Validate() error {
	if c.Data.Health == "" {
		return fmt.Errorf("%w: data.health is required", ErrInvalid)
	}
	if c.Data.Behavioral == "" {
		return fmt.Errorf("%w: data.behavioral is required", ErrInvalid)
	}
	if c.Model.MaxK < 0 {
		return fmt.Errorf("%w: model.max_k must be >= 0, got %d", ErrInvalid, c.Model.MaxK)
	}
	if _, err := selection.ParseCriterion(c.Model.Criterion); err != nil {
		return fmt.Errorf("%w: model.criterion: %v", ErrInvalid, err)
	}
	if c.Model.Tolerance < 0 {
		return fmt.Errorf("%w: model.tolerance must be >= 0, got %g", ErrInvalid, c.Model.Tolerance)
	}
	if c.Model.MaxIter < 1 {
		return fmt.Errorf("%w: model.max_iter must be >= 1, got %d", ErrInvalid, c.Model.MaxIter)
	}
	if c.Model.NoiseFloor < 0 {
		return fmt.Errorf("%w: model.noise_floor must be >= 0, got %g", ErrInvalid, c.Model.NoiseFloor)
	}
	if c.Model.Workers < 1 {
		return fmt.Errorf("%w: model.workers must be >= 1, got %d", ErrInvalid, c.Model.Workers)
	}
	if c.Report.TopN < 1 {
		return fmt.Errorf("%w: report.top_n must be >= 1, got %d", ErrInvalid, c.Report.TopN)
	}
	if _, err := render.ParseFormat(c.Report.Format); err != nil {
		return fmt.Errorf("%w: report.format: %v", ErrInvalid, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

// Pipeline converts cfg into the pipeline's explicit configuration.
func (c *Config) Pipeline() (pipeline.Config, error) {
	crit, err := selection.ParseCriterion(c.Model.Criterion)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return pipeline.Config{
		Health:        c.Data.Health,
		Behavioral:    c.Data.Behavioral,
		HealthColumns: append([]string(nil), c.Data.HealthColumns...),
		CompositeName: c.Data.Composite,
		SurveyPattern: c.Data.SurveyPattern,
		MaxK:          c.Model.MaxK,
		Criterion:     crit,
		Workers:       c.Model.Workers,
		Tolerance:     c.Model.Tolerance,
		MaxIter:       c.Model.MaxIter,
		NoiseFloor:    c.Model.NoiseFloor,
		TopN:          c.Report.TopN,
	}, nil
}

// Format returns the parsed report format.
func (c *Config) Format() render.Format {
	f, err := render.ParseFormat(c.Report.Format)
	if err != nil {
		return render.FormatText
	}
	return f
}
