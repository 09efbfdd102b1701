// SPDX-License-Identifier: MIT

package config

import (
	"github.com/katalvlaran/latentfa/factor"
	"github.com/katalvlaran/latentfa/internal/logging"
	"github.com/katalvlaran/latentfa/pipeline"
	"github.com/katalvlaran/latentfa/render"
	"github.com/katalvlaran/latentfa/report"
)

// Defaults for unset fields.
const (
	DefaultCriterion = "aic"
	DefaultWorkers   = 1
	DefaultFormat    = string(render.FormatText)
	DefaultLogLevel  = logging.LevelInfo
	DefaultLogFormat = logging.FormatConsole
)

// ApplyDefaults fills every zero-valued field of cfg. Explicit values win.
// MaxK and NoiseFloor keep zero, which means "all variables" and "no clamp".
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if len(cfg.Data.HealthColumns) == 0 {
		cfg.Data.HealthColumns = append([]string(nil), pipeline.DefaultHealthColumns...)
	}
	if cfg.Data.SurveyPattern == "" {
		cfg.Data.SurveyPattern = pipeline.DefaultSurveyPattern
	}
	if cfg.Data.Composite == "" {
		cfg.Data.Composite = pipeline.DefaultComposite
	}

	if cfg.Model.Criterion == "" {
		cfg.Model.Criterion = DefaultCriterion
	}
	if cfg.Model.Tolerance == 0 {
		cfg.Model.Tolerance = factor.DefaultTolerance
	}
	if cfg.Model.MaxIter == 0 {
		cfg.Model.MaxIter = factor.DefaultMaxIter
	}
	if cfg.Model.Workers == 0 {
		cfg.Model.Workers = DefaultWorkers
	}

	if cfg.Report.TopN == 0 {
		cfg.Report.TopN = report.DefaultTopN
	}
	if cfg.Report.Format == "" {
		cfg.Report.Format = DefaultFormat
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
