package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/opdoc/internal"
)

func TestLoad(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		cfg, err := Load("testdata/base.cue")
		require.NoError(t, err)

		assert.Equal(t, Player{Major: 1, Minor: 0}, cfg.Player)
		assert.Equal(t, Surface{Width: 300, Height: 200, Density: 1}, cfg.Surface)
		assert.Equal(t, 1, cfg.Frames)
		assert.Equal(t, internal.ThemeDark, cfg.ThemeID())
		assert.Equal(t, slog.LevelDebug, cfg.Level())
		assert.False(t, cfg.UpdateVariablesBeforeLayout)
	})

	t.Run("later files override earlier ones", func(t *testing.T) {
		cfg, err := Load("testdata/base.cue", "testdata/override.cue")
		require.NoError(t, err)

		assert.Equal(t, float64(300), cfg.Surface.Width)
		assert.Equal(t, float64(600), cfg.Surface.Height)
		assert.Equal(t, 3, cfg.Frames)
		assert.Equal(t, "size(source) < 1024", cfg.ShaderPolicy)
		assert.Equal(t, "dark", cfg.Theme)
		assert.True(t, cfg.UpdateVariablesBeforeLayout)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		_, err := Load("testdata/unknown.cue")
		assert.Error(t, err)
	})

	t.Run("rejects values outside the schema", func(t *testing.T) {
		_, err := Load("testdata/invalid.cue")
		assert.Error(t, err)
	})

	t.Run("requires a file", func(t *testing.T) {
		cfg, err := Load()
		assert.ErrorIs(t, err, ErrNoFiles)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("reports missing files", func(t *testing.T) {
		_, err := Load("testdata/missing.cue")
		assert.Error(t, err)
	})
}

func TestThemeID(t *testing.T) {
	assert.Equal(t, internal.ThemeLight, Config{Theme: "light"}.ThemeID())
	assert.Equal(t, internal.ThemeUnspecified, Default().ThemeID())
}
