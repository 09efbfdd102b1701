package render_test

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/latentfa/render"
	"github.com/katalvlaran/latentfa/report"
	"github.com/katalvlaran/latentfa/selection"
)

var entries = []report.Entry{
	{
		Dimension:      0,
		Correlation:    0.4567,
		PValue:         0.01,
		AdjustedPValue: 0.02,
		Loadings: []report.Loading{
			{Variable: "grit_survey.q1", Weight: -0.8123},
			{Variable: "grit_survey.q2", Weight: 0.5},
		},
	},
	{
		Dimension:      1,
		Correlation:    math.NaN(),
		PValue:         1,
		AdjustedPValue: 1,
		Loadings:       []report.Loading{{Variable: "bis_survey.q3", Weight: 0.25}},
	},
}

var result = &selection.Result{
	K:         2,
	Criterion: selection.SimplifiedAIC,
	Candidates: []selection.Candidate{
		{K: 1, Criterion: 20.5, LogLikelihood: -400, MeanLogLikelihood: -9.25, Converged: true, Iterations: 12},
		{K: 2, Criterion: 18.25, LogLikelihood: -350, MeanLogLikelihood: -7.125, Converged: true, Iterations: 30},
	},
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Write(&buf, render.FormatText, entries))

	want := "Component 0\n" +
		"r = 0.457, Bonferroni p = 0.020\n" +
		"grit_survey.q1 (-0.812)\n" +
		"grit_survey.q2 (0.500)\n" +
		"\n" +
		"Component 1\n" +
		"r = NaN, Bonferroni p = 1.000\n" +
		"bis_survey.q3 (0.250)\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestWrite_JSONEncodesNaNAsNull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Write(&buf, render.FormatJSON, entries))

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 0.4567, got[0]["correlation"])
	assert.Nil(t, got[1]["correlation"])
	assert.Equal(t, 1.0, got[1]["adjusted_p_value"])
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Write(&buf, render.FormatYAML, entries[:1]))

	var got []report.Entry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, entries[0].Loadings, got[0].Loadings)
	assert.Equal(t, 0.02, got[0].AdjustedPValue)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := render.Write(&bytes.Buffer{}, render.Format("csv"), entries)
	assert.ErrorIs(t, err, render.ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	cases := map[string]render.Format{
		"":     render.FormatText,
		"TEXT": render.FormatText,
		"json": render.FormatJSON,
		"yml":  render.FormatYAML,
		"yaml": render.FormatYAML,
	}
	for in, want := range cases {
		got, err := render.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := render.ParseFormat("xml")
	assert.ErrorIs(t, err, render.ErrUnknownFormat)
}

func TestWriteSelectionText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.WriteSelectionText(&buf, result))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "aic")
	assert.True(t, strings.HasPrefix(lines[1], "1 "))
	assert.Contains(t, lines[2], "18.2500")
	assert.Equal(t, "best dimensionality by aic: 2", lines[3])
}

func TestWriteSummary(t *testing.T) {
	s := render.NewSummary(50, 6, result, entries)

	var text bytes.Buffer
	require.NoError(t, render.WriteSummary(&text, render.FormatText, s))
	assert.Contains(t, text.String(), "best dimensionality by aic: 2\n\nComponent 0\n")

	var js bytes.Buffer
	require.NoError(t, render.WriteSummary(&js, render.FormatJSON, s))
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(js.Bytes(), &doc))
	assert.Equal(t, 2.0, doc["k"])
	assert.Equal(t, "aic", doc["criterion"])
	assert.Len(t, doc["entries"], 2)
	assert.Len(t, doc["candidates"], 2)

	var ym bytes.Buffer
	require.NoError(t, render.WriteSummary(&ym, render.FormatYAML, s))
	assert.Contains(t, ym.String(), "subjects: 50")
}

func TestPlotCriterion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "criterion.png")
	require.NoError(t, render.PlotCriterion(result.Candidates, "aic", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte("\x89PNG"), data[:4])

	err = render.PlotCriterion([]selection.Candidate{{K: 1, Criterion: math.NaN()}}, "aic", path)
	assert.ErrorIs(t, err, render.ErrNothingToPlot)
}
