// SPDX-License-Identifier: MIT

// Package pipeline runs the whole analysis: load both datasets, build the
// mental-health composite, keep the survey columns, align and standardize,
// sweep the factor dimensionality and report each dimension against the
// composite.
//
// Every setting arrives through Config; nothing is read from globals.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/latentfa/internal/logging"
	"github.com/katalvlaran/latentfa/report"
	"github.com/katalvlaran/latentfa/selection"
	"github.com/katalvlaran/latentfa/table"
)

// Result is the outcome of Run.
type Result struct {
	// Subjects and Variables are the dimensions of the analysed survey matrix.
	Subjects  int
	Variables []string
	Selection *selection.Result
	Entries   []report.Entry
}

// Run executes the analysis described by cfg, reading sources through loader.
// A nil log discards messages.
func Run(ctx context.Context, cfg Config, loader table.Loader, log logging.Logger) (*Result, error) {
	log = logging.OrNop(log).Named("pipeline")
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if loader == nil {
		return nil, fmt.Errorf("%w: nil loader", ErrInvalidConfig)
	}
	start := time.Now()

	composite, err := loadComposite(ctx, cfg, loader)
	if err != nil {
		return nil, err
	}
	survey, err := loadSurvey(ctx, cfg, loader)
	if err != nil {
		return nil, err
	}
	log.Debug("inputs loaded",
		logging.Int("health_subjects", composite.Len()),
		logging.Int("behavioral_subjects", survey.Len()),
		logging.Int("survey_variables", survey.Width()),
		logging.Strings("variables", survey.Columns()))

	health, survey, err := table.Align(composite, survey)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	if health, err = health.Standardize(); err != nil {
		return nil, fmt.Errorf("pipeline: health: %w", err)
	}
	if survey, err = survey.Standardize(); err != nil {
		return nil, fmt.Errorf("pipeline: survey: %w", err)
	}
	if err := table.ConfirmAligned(health, survey); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	log.Info("subjects aligned", logging.Int("subjects", survey.Len()), logging.Int("variables", survey.Width()))

	observe := func(c selection.Candidate) {
		log.Debug("candidate fitted",
			logging.Int("k", c.K),
			logging.Float64(cfg.Criterion.String(), c.Criterion),
			logging.Float64("log_likelihood", c.LogLikelihood),
			logging.Bool("converged", c.Converged),
			logging.Int("iterations", c.Iterations))
	}
	res, err := selection.Select(ctx, survey.Dense(), cfg.MaxK,
		selection.WithCriterion(cfg.Criterion),
		selection.WithWorkers(cfg.Workers),
		selection.WithFitOptions(cfg.fitOptions()...),
		selection.WithObserver(observe))
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	log.Info("dimensionality selected", logging.Int("k", res.K), logging.String("criterion", cfg.Criterion.String()))
	for _, c := range res.Candidates {
		if !c.Converged {
			log.Warn("fit stopped at iteration cap", logging.Int("k", c.K), logging.Int("iterations", c.Iterations))
		}
	}

	covariate, err := health.Column(cfg.CompositeName)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	variables := survey.Columns()
	entries, err := report.Build(res.Model, variables, covariate, cfg.TopN)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	log.Debug("report built", logging.Int("dimensions", len(entries)), logging.Duration("elapsed", time.Since(start)))

	return &Result{
		Subjects:  survey.Len(),
		Variables: variables,
		Selection: res,
		Entries:   entries,
	}, nil
}

func loadComposite(ctx context.Context, cfg Config, loader table.Loader) (*table.Table, error) {
	raw, err := loader.Load(ctx, cfg.Health)
	if err != nil {
		return nil, fmt.Errorf("pipeline: load health %s: %w", cfg.Health, err)
	}
	scales, err := raw.Select(cfg.HealthColumns...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: health: %w", err)
	}
	composite, err := scales.Composite(cfg.CompositeName)
	if err != nil {
		return nil, fmt.Errorf("pipeline: health: %w", err)
	}
	return composite, nil
}

func loadSurvey(ctx context.Context, cfg Config, loader table.Loader) (*table.Table, error) {
	raw, err := loader.Load(ctx, cfg.Behavioral)
	if err != nil {
		return nil, fmt.Errorf("pipeline: load behavioral %s: %w", cfg.Behavioral, err)
	}
	survey, err := raw.SelectGlob(cfg.SurveyPattern)
	if err != nil {
		return nil, fmt.Errorf("pipeline: behavioral: %w", err)
	}
	return survey, nil
}
