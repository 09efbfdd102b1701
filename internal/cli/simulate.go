// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/latentfa/internal/logging"
	"github.com/katalvlaran/latentfa/pipeline"
	"github.com/katalvlaran/latentfa/synth"
	"github.com/katalvlaran/latentfa/table"
)

// simulatedLoadings is the pattern behind "simulate": two survey factors of
// different strength over eight items.
var simulatedLoadings = [][]float64{
	{0.85, 0.8, 0.8, 0.75, 0, 0, 0, 0},
	{0, 0, 0, 0, 0.6, 0.6, 0.55, 0.5},
}

// simulatedHealthWeights links the mental-health scales to the second factor.
var simulatedHealthWeights = []float64{0, 1}

func newSimulateCmd() *cobra.Command {
	var (
		subjects int
		out      string
		seed     int64
		noise    float64
	)

	c := &cobra.Command{
		Use:   "simulate",
		Short: "Write a synthetic health/behavioral dataset pair with known structure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logging.NewLogger(logging.Config{Format: logging.FormatConsole})
			if err != nil {
				return err
			}
			s, err := synth.Draw(subjects, simulatedLoadings, noise, seed)
			if err != nil {
				return err
			}
			health, err := synth.Health(s, pipeline.DefaultHealthColumns, simulatedHealthWeights, noise, seed)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("simulate: %w", err)
			}
			files := []struct {
				name string
				t    *table.Table
			}{{"health.csv", health}, {"behavioral.csv", s.Survey}}
			for _, f := range files {
				path := filepath.Join(out, f.name)
				if err := writeTable(path, f.t); err != nil {
					return err
				}
				log.Info("table written", logging.String("path", path),
					logging.Int("subjects", f.t.Len()), logging.Int("columns", f.t.Width()))
			}
			return nil
		},
	}

	c.Flags().IntVarP(&subjects, "subjects", "n", 500, "number of subjects")
	c.Flags().StringVarP(&out, "out", "o", "data", "output directory")
	c.Flags().Int64Var(&seed, "seed", 0, "random seed (0: fixed default)")
	c.Flags().Float64Var(&noise, "noise", 0.5, "noise standard deviation")
	return c
}

func writeTable(path string, t *table.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("simulate: close %s: %w", path, cerr)
		}
	}()
	if err := t.WriteCSV(f); err != nil {
		return fmt.Errorf("simulate: write %s: %w", path, err)
	}
	return nil
}
