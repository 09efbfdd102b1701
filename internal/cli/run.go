// SPDX-License-Identifier: MIT

package cli

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/latentfa/internal/config"
	"github.com/katalvlaran/latentfa/internal/logging"
	"github.com/katalvlaran/latentfa/pipeline"
	"github.com/katalvlaran/latentfa/render"
	"github.com/katalvlaran/latentfa/table"
)

// fetchTimeout bounds a single http(s) source download.
const fetchTimeout = 2 * time.Minute

func newRunCmd() *cobra.Command {
	var configPath string

	c := &cobra.Command{
		Use:   "run",
		Short: "Run the analysis on a health and a behavioral dataset",
		Example: `  latentfa run --health data/health.csv --behavioral data/meaningful_variables_clean.csv
  latentfa run --config latentfa.yaml --format json --plot aic.png
  LATENTFA_MODEL_WORKERS=4 latentfa run --config latentfa.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			log, err := logging.NewLogger(cfg.Log)
			if err != nil {
				return err
			}
			pc, err := cfg.Pipeline()
			if err != nil {
				return err
			}

			loader := table.SourceLoader{Client: &http.Client{Timeout: fetchTimeout}}
			res, err := pipeline.Run(cmd.Context(), pc, loader, log)
			if err != nil {
				log.Error("run failed", logging.Err(err))
				return err
			}

			summary := render.NewSummary(res.Subjects, len(res.Variables), res.Selection, res.Entries)
			if err := render.WriteSummary(cmd.OutOrStdout(), cfg.Format(), summary); err != nil {
				return err
			}
			if cfg.Report.Plot != "" {
				if err := render.PlotCriterion(res.Selection.Candidates, cfg.Model.Criterion, cfg.Report.Plot); err != nil {
					return err
				}
				log.Info("plot written", logging.String("path", cfg.Report.Plot))
			}
			return nil
		},
	}

	f := c.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	f.String("health", "", "health CSV (path or http(s) URL)")
	f.String("behavioral", "", "behavioral CSV (path or http(s) URL)")
	f.Int("max-k", 0, "largest number of factors to try (0: number of survey variables)")
	f.String("criterion", config.DefaultCriterion, "selection criterion: aic|aic-params|bic")
	f.Float64("tolerance", 0, "log-likelihood convergence tolerance (0: default)")
	f.Int("max-iter", 0, "iteration cap per fit (0: default)")
	f.Float64("noise-floor", 0, "clamp noise variances to this floor instead of failing (0: off)")
	f.Int("workers", 0, "candidate fits run concurrently (0: 1)")
	f.Int("top-n", 0, "loadings listed per dimension (0: default)")
	f.String("format", config.DefaultFormat, "output format: text|json|yaml")
	f.String("plot", "", "write the criterion-versus-k plot to this image file")
	f.String("log-level", "", "debug|info|warn|error")
	f.String("log-format", "", "console|json")
	return c
}
