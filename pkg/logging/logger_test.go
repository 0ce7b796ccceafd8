package logging_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/funcsync/pkg/logging"
)

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}

func TestNewLoggerFromConfig(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	t.Run("writes JSON to a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "debug",
			Format: "json",
			Output: path,
			Fields: map[string]any{"run": "nightly", "streams": 8},
		})
		logger.Info().Msg("stream cleaned")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "stream cleaned")
		assert.Contains(t, string(content), `"run":"nightly"`)
		assert.Contains(t, string(content), `"streams":8`)
	})

	t.Run("level filtering", func(t *testing.T) {
		tests := []struct {
			level     string
			logDebug  bool
			logWarn   bool
		}{
			{"debug", true, true},
			{"info", false, true},
			{"warn", false, true},
			{"error", false, false},
			{"bogus", false, true},
		}
		for _, tt := range tests {
			t.Run(tt.level, func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "level.log")
				logger := logging.NewLoggerFromConfig(&logging.Config{Level: tt.level, Format: "json", Output: path})
				logger.Debug().Msg("debug-line")
				logger.Warn().Msg("warn-line")

				content, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, tt.logDebug, bytes.Contains(content, []byte("debug-line")))
				assert.Equal(t, tt.logWarn, bytes.Contains(content, []byte("warn-line")))
			})
		}
	})

	t.Run("nil config falls back to defaults", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(nil)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})
}

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		logging.SetDefault(original)
		zerolog.SetGlobalLevel(originalLevel)
	})

	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logging.SetDefault(zerolog.New(&buf).Level(zerolog.DebugLevel))

	logging.Debug().Msg("debug")
	logging.Info().Msg("info")
	logging.Warn().Msg("warn")
	logging.Error().Msg("error")
	logging.Err(errors.New("boom")).Msg("failed")

	out := buf.String()
	for _, want := range []string{"debug", "info", "warn", "error", "boom"} {
		assert.Contains(t, out, want)
	}
}

func TestContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithStream(ctx, "a/O0")
	ctx = logging.WithOperation(ctx, "select")
	ctx = logging.WithFile(ctx, "function_logs_a_O0.jsonl")
	ctx = logging.WithField(ctx, "retained", 3)

	logging.FromContext(ctx).Info().Msg("selected")

	assert.True(t, tl.ContainsAll(
		`"stream":"a/O0"`,
		`"operation":"select"`,
		`"file":"function_logs_a_O0.jsonl"`,
		`"retained":3`,
	), tl.Output())
	assert.Equal(t, 1, tl.Count())
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Same(t, logging.Default(), logging.FromContext(nil))

	ctx := logging.WithLogger(context.Background(), nil)
	assert.Same(t, logging.Default(), logging.FromContext(ctx))
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)
	tl.Info().Str("stream", "l/O3").Msg("first")
	tl.Warn().Msg("second")

	assert.Equal(t, 2, tl.Count())
	tl.AssertContains(t, "l/O3")
	assert.False(t, tl.Contains("third"))

	tl.Clear()
	assert.Empty(t, tl.Lines())
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)
	logging.Info().Msg("captured")
	tl.AssertContains(t, "captured")
}
