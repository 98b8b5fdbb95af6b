package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureJSON(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(Config{Level: level, Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":    zerolog.DebugLevel,
		"INFO":     zerolog.InfoLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"disabled": zerolog.Disabled,
		"bogus":    zerolog.InfoLevel,
		"":         zerolog.InfoLevel,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestInit(t *testing.T) {
	t.Run("writes structured json", func(t *testing.T) {
		buf := captureJSON(t, "info")

		Info().Str("file", "railway.csv").Int("rows", 3).Msg("Loaded transactions")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, "Loaded transactions", entry["message"])
		assert.Equal(t, "railway.csv", entry["file"])
		assert.EqualValues(t, 3, entry["rows"])
		assert.NotEmpty(t, entry["time"])
	})

	t.Run("filters below level", func(t *testing.T) {
		buf := captureJSON(t, "warn")

		Info().Msg("hidden")
		Debug().Msg("hidden")
		Warn().Msg("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("component logger", func(t *testing.T) {
		buf := captureJSON(t, "info")

		l := With("store")
		l.Info().Msg("ready")

		assert.Contains(t, buf.String(), `"component":"store"`)
	})
}

func TestContextLogger(t *testing.T) {
	buf := captureJSON(t, "info")

	ctx := ContextWithRequestID(context.Background(), "req-123")
	Ctx(ctx).Info().Msg("handled")

	assert.Equal(t, "req-123", RequestIDFromContext(ctx))
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
}

func TestCtxWithoutLogger(t *testing.T) {
	assert.NotNil(t, Ctx(context.Background()))
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestNewRequestID(t *testing.T) {
	a, b := NewRequestID(), NewRequestID()

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
