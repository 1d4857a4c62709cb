package logs

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("fans out to both sinks", func(t *testing.T) {
		var text, json bytes.Buffer
		logger := New(Options{Text: &text, JSON: &json})

		logger.Info("loaded", "ops", 3)

		assert.Contains(t, text.String(), "msg=loaded ops=3")
		assert.Contains(t, json.String(), `"msg":"loaded","ops":3`)
	})

	t.Run("filters below the level", func(t *testing.T) {
		var text bytes.Buffer
		logger := New(Options{Text: &text, Level: slog.LevelWarn})

		logger.Info("quiet")
		logger.Warn("loud")

		assert.NotContains(t, text.String(), "quiet")
		assert.Contains(t, text.String(), "loud")
	})

	t.Run("follows a level var", func(t *testing.T) {
		var text bytes.Buffer
		level := new(slog.LevelVar)
		logger := New(Options{Text: &text, Level: level})

		logger.Debug("before")
		level.Set(slog.LevelDebug)
		logger.Debug("after")

		assert.NotContains(t, text.String(), "before")
		assert.Contains(t, text.String(), "after")
	})
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
