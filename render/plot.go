// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/latentfa/selection"
)

// Plot dimensions.
const (
	plotWidth  = 5 * vg.Inch
	plotHeight = 3.5 * vg.Inch
)

// ErrNothingToPlot is returned when no candidate has a finite criterion.
var ErrNothingToPlot = errors.New("render: no finite criterion to plot")

// PlotCriterion draws the criterion against k and saves it to path; the file
// extension picks the image format (.png, .svg, .pdf, ...).
func PlotCriterion(candidates []selection.Candidate, criterion, path string) error {
	pts := make(plotter.XYs, 0, len(candidates))
	best := -1
	for _, c := range candidates {
		if math.IsNaN(c.Criterion) || math.IsInf(c.Criterion, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(c.K), Y: c.Criterion})
		if best < 0 || c.Criterion < pts[best].Y {
			best = len(pts) - 1
		}
	}
	if len(pts) == 0 {
		return ErrNothingToPlot
	}

	p := plot.New()
	p.Title.Text = "Dimensionality selection"
	p.X.Label.Text = "number of factors (k)"
	p.Y.Label.Text = criterion
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("render: plot: %w", err)
	}
	p.Add(line, points)

	chosen, err := plotter.NewScatter(plotter.XYs{pts[best]})
	if err != nil {
		return fmt.Errorf("render: plot: %w", err)
	}
	chosen.GlyphStyle.Radius = vg.Points(5)
	p.Add(chosen)
	p.Legend.Add("chosen k", chosen)

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}
