package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"", FormatJSON, FormatConsole, "JSON"} {
		l, err := NewLogger(Config{Level: LevelDebug, Format: format, OutputPaths: []string{"stderr"}})
		require.NoError(t, err, format)
		assert.NotNil(t, l)
	}
}

func TestNewLogger_Rejects(t *testing.T) {
	_, err := NewLogger(Config{Level: "verbose"})
	assert.Error(t, err)

	_, err = NewLogger(Config{Format: "xml"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"info":  zapcore.InfoLevel,
		"DEBUG": zapcore.DebugLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestLogger_FieldsAndChildren(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoggerFromCore(core).Named("pipeline").With(String("run", "r1"))

	l.Debug("fit",
		Int("k", 2),
		Float64("aic", 12.5),
		Bool("converged", true),
		Strings("cols", []string{"a", "b"}),
		Duration("took", time.Second),
		Err(errors.New("boom")),
		Any("extra", struct{}{}),
	)
	l.Info("done")
	l.Warn("slow")
	l.Error("failed", Err(nil))

	require.Equal(t, 4, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, "pipeline", first.LoggerName)
	ctx := first.ContextMap()
	assert.Equal(t, "r1", ctx["run"])
	assert.Equal(t, int64(2), ctx["k"])
	assert.Equal(t, 12.5, ctx["aic"])
	assert.Equal(t, true, ctx["converged"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "<nil>", logs.All()[3].ContextMap()["error"])
}

func TestNopLogger(t *testing.T) {
	l := OrNop(nil)
	assert.NotPanics(t, func() {
		l.Debug("x")
		l.Info("x")
		l.Warn("x")
		l.Error("x")
		l.With(Int("a", 1)).Named("n").Info("y")
	})
	n := NewNopLogger()
	assert.Equal(t, n, OrNop(n))
}
