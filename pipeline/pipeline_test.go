package pipeline_test

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/latentfa/internal/logging"
	"github.com/katalvlaran/latentfa/pipeline"
	"github.com/katalvlaran/latentfa/selection"
	"github.com/katalvlaran/latentfa/synth"
	"github.com/katalvlaran/latentfa/table"
)

// twoBlocks has blocks of clearly different strength so the unrotated
// solution lines each dimension up with one block.
var twoBlocks = [][]float64{
	{0.9, 0.9, 0.85, 0, 0, 0},
	{0, 0, 0, 0.6, 0.55, 0.5},
}

// fixture builds a behavioral table (six survey columns plus one task column,
// with a few missing cells) and a health table whose scales follow factor 1.
func fixture(t *testing.T, n int) table.MapLoader {
	t.Helper()
	s, err := synth.Draw(n, twoBlocks, 0.5, 42)
	require.NoError(t, err)

	columns := append(s.Survey.Columns(), "stroop.rt")
	values := make([]float64, 0, n*len(columns))
	for i := 0; i < n; i++ {
		for j := 0; j < s.Survey.Width(); j++ {
			v := s.Survey.Dense().At(i, j)
			if i%50 == 7 && j == 2 {
				v = math.NaN()
			}
			values = append(values, v)
		}
		values = append(values, float64(i%13))
	}
	behavioral, err := table.New(s.Survey.Index(), columns, values)
	require.NoError(t, err)

	health, err := synth.Health(s, pipeline.DefaultHealthColumns, []float64{0, 1}, 0.6, 9)
	require.NoError(t, err)

	return table.MapLoader{"health.csv": health, "behavioral.csv": behavioral}
}

func baseConfig() pipeline.Config {
	return pipeline.Config{Health: "health.csv", Behavioral: "behavioral.csv"}
}

func TestRun_RecoversTwoFactorsLinkedToComposite(t *testing.T) {
	loader := fixture(t, 300)

	res, err := pipeline.Run(context.Background(), baseConfig(), loader, nil)
	require.NoError(t, err)

	assert.Equal(t, 294, res.Subjects)
	assert.Len(t, res.Variables, 6)
	assert.NotContains(t, res.Variables, "stroop.rt")
	assert.Equal(t, 2, res.Selection.K)
	assert.Len(t, res.Selection.Candidates, 6)
	require.Len(t, res.Entries, 2)

	// Exactly one dimension tracks the composite.
	strong := 0
	for _, e := range res.Entries {
		assert.Len(t, e.Loadings, 3)
		if math.Abs(e.Correlation) > 0.5 {
			strong++
			assert.Less(t, e.AdjustedPValue, 1e-6)
			for _, l := range e.Loadings {
				assert.Contains(t, []string{"synthetic_survey.v3", "synthetic_survey.v4", "synthetic_survey.v5"}, l.Variable)
			}
		}
	}
	assert.Equal(t, 1, strong)
}

func TestRun_WorkersDoNotChangeResult(t *testing.T) {
	loader := fixture(t, 200)
	cfg := baseConfig()
	cfg.MaxK = 4

	seq, err := pipeline.Run(context.Background(), cfg, loader, nil)
	require.NoError(t, err)
	cfg.Workers = 4
	par, err := pipeline.Run(context.Background(), cfg, loader, nil)
	require.NoError(t, err)

	assert.Equal(t, seq.Selection.Candidates, par.Selection.Candidates)
	assert.Equal(t, seq.Entries, par.Entries)
}

func TestRun_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logging.NewLoggerFromCore(core)

	cfg := baseConfig()
	cfg.MaxK = 3
	cfg.Criterion = selection.BIC
	_, err := pipeline.Run(context.Background(), cfg, fixture(t, 120), log)
	require.NoError(t, err)

	assert.Equal(t, 3, logs.FilterMessage("candidate fitted").Len())
	selected := logs.FilterMessage("dimensionality selected").All()
	require.Len(t, selected, 1)
	assert.Equal(t, "bic", selected[0].ContextMap()["criterion"])
	assert.Equal(t, "pipeline", selected[0].LoggerName)

	loaded := logs.FilterMessage("inputs loaded").All()
	require.Len(t, loaded, 1)
	vars := loaded[0].ContextMap()["variables"]
	assert.Len(t, vars, 6)
	assert.Contains(t, vars, "synthetic_survey.v0")
	assert.NotContains(t, vars, "stroop.rt")
}

func TestRun_Errors(t *testing.T) {
	loader := fixture(t, 60)
	ctx := context.Background()

	t.Run("missing source", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Health = "nope.csv"
		_, err := pipeline.Run(ctx, cfg, loader, nil)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("unknown health column", func(t *testing.T) {
		cfg := baseConfig()
		cfg.HealthColumns = []string{"Nervous", "Sleepy"}
		_, err := pipeline.Run(ctx, cfg, loader, nil)
		assert.ErrorIs(t, err, table.ErrUnknownColumn)
	})
	t.Run("no survey columns", func(t *testing.T) {
		cfg := baseConfig()
		cfg.SurveyPattern = "*_questionnaire*"
		_, err := pipeline.Run(ctx, cfg, loader, nil)
		assert.ErrorIs(t, err, table.ErrUnknownColumn)
	})
	t.Run("max k too large", func(t *testing.T) {
		cfg := baseConfig()
		cfg.MaxK = 7
		_, err := pipeline.Run(ctx, cfg, loader, nil)
		assert.ErrorIs(t, err, selection.ErrInvalidInput)
	})
	t.Run("invalid config", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Behavioral = ""
		_, err := pipeline.Run(ctx, cfg, loader, nil)
		assert.ErrorIs(t, err, pipeline.ErrInvalidConfig)

		cfg = baseConfig()
		cfg.SurveyPattern = "[oops"
		_, err = pipeline.Run(ctx, cfg, loader, nil)
		assert.ErrorIs(t, err, pipeline.ErrInvalidConfig)

		_, err = pipeline.Run(ctx, baseConfig(), nil, nil)
		assert.ErrorIs(t, err, pipeline.ErrInvalidConfig)
	})
	t.Run("canceled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := pipeline.Run(cctx, baseConfig(), loader, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestConfig_Validate(t *testing.T) {
	cfg := baseConfig()
	require.NoError(t, cfg.Validate())

	cfg.TopN = -1
	assert.ErrorIs(t, cfg.Validate(), pipeline.ErrInvalidConfig)

	cfg = baseConfig()
	cfg.Criterion = selection.Criterion(9)
	assert.ErrorIs(t, cfg.Validate(), pipeline.ErrInvalidConfig)
}
