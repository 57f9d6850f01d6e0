package logging_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/jokeraudit/pkg/logging"
)

func TestContextFields(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithDocument(ctx, "JOKERS.md")
	ctx = logging.WithSource(ctx, "core/src/joker.rs")
	ctx = logging.WithConstruct(ctx, "make_jokers!")
	ctx = logging.WithOperation(ctx, "audit")
	ctx = logging.WithError(ctx, errors.New("boom"))
	ctx = logging.WithFields(ctx, map[string]any{"rows": 150, "strict": true})

	logging.FromContext(ctx).Info().Msg("audit finished")

	for _, want := range []string{
		`"document":"JOKERS.md"`,
		`"source":"core/src/joker.rs"`,
		`"construct":"make_jokers!"`,
		`"operation":"audit"`,
		`"error":"boom"`,
		`"rows":150`,
		`"strict":true`,
		"audit finished",
	} {
		tl.AssertContains(t, want)
	}
	assert.Equal(t, 1, tl.Count())
}

func TestFromContext_Default(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	assert.Same(t, logging.Default(), logging.Ctx(context.Background()))

	ctx := logging.WithLogger(context.Background(), nil)
	assert.Same(t, logging.Default(), logging.FromContext(ctx))
}

func TestRequestID(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithRequestID(ctx, "req-42")

	assert.Equal(t, "req-42", logging.RequestID(ctx))
	assert.Empty(t, logging.RequestID(context.Background()))

	logging.FromContext(ctx).Info().Msg("handled")
	tl.AssertContains(t, `"request_id":"req-42"`)
}

func TestNewLoggerFromConfig(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	path := filepath.Join(t.TempDir(), "audit.log")
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:  "warn",
		Format: "json",
		Output: path,
		Fields: map[string]any{"component": "extract"},
	})
	logger.Info().Msg("hidden")
	logger.Warn().Msg("visible")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
	assert.Contains(t, string(data), `"component":"extract"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}

func TestCaptureLoggingForTest(t *testing.T) {
	before := *logging.Default()

	t.Run("capture", func(t *testing.T) {
		tl := logging.CaptureLoggingForTest(t)
		logging.Info().Str("name", "8 Ball").Msg("missing")
		tl.AssertContains(t, `"name":"8 Ball"`)
		tl.AssertNotContains(t, "Blueprint")
	})

	t.Run("disable", func(t *testing.T) {
		logging.DisableLoggingForTest(t)
		logging.Info().Msg("dropped")
	})

	assert.Equal(t, before, *logging.Default())
}

func TestNewNopLogger(t *testing.T) {
	logger := logging.NewNopLogger()
	require.NotNil(t, logger)
	logger.Error().Msg("nothing")
}
