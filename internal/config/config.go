package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/AnatoleLucet/opdoc/internal"
	"github.com/AnatoleLucet/opdoc/internal/logs"
)

const schema = `
player?: {
	major?: int & >=0
	minor?: int & >=0
}
surface?: {
	width?:   number & >0
	height?:  number & >0
	density?: number & >0
}
theme?:                          "unspecified" | "dark" | "light"
frames?:                         int & >=1
log_level?:                      "debug" | "info" | "warn" | "error"
shader_policy?:                  string
update_variables_before_layout?: bool
`

var ErrNoFiles = errors.New("no config files")

type Player struct {
	Major int
	Minor int
}

type Surface struct {
	Width   float64
	Height  float64
	Density float64
}

// Config drives a player: the version it claims, the surface it paints
// into and how documents are run.
type Config struct {
	Player   Player
	Surface  Surface
	Theme    string
	Frames   int
	LogLevel string

	// CEL expression deciding which shaders may run, empty allows all.
	ShaderPolicy string

	UpdateVariablesBeforeLayout bool
}

func Default() Config {
	return Config{
		Player:   Player{Major: internal.MajorVersion, Minor: internal.MinorVersion},
		Surface:  Surface{Width: 400, Height: 400, Density: 1},
		Theme:    "unspecified",
		Frames:   1,
		LogLevel: "info",
	}
}

// Load reads CUE files on top of Default. Every file is validated against
// the schema on its own, and fields set by later files win.
func Load(paths ...string) (Config, error) {
	cfg := Default()
	if len(paths) == 0 {
		return cfg, ErrNoFiles
	}

	ctx := cuecontext.New()
	s := ctx.CompileString("close({" + schema + "})")
	if err := s.Err(); err != nil {
		return cfg, fmt.Errorf("compile schema: %w", err)
	}

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}

		value := ctx.CompileBytes(content, cue.Filename(path))
		if err := value.Err(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
		if err := s.Unify(value).Validate(cue.Concrete(true)); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}

		if err := cfg.merge(value); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}

	return cfg, nil
}

func (c *Config) merge(v cue.Value) error {
	fields := []struct {
		path   string
		target any
	}{
		{"player.major", &c.Player.Major},
		{"player.minor", &c.Player.Minor},
		{"surface.width", &c.Surface.Width},
		{"surface.height", &c.Surface.Height},
		{"surface.density", &c.Surface.Density},
		{"theme", &c.Theme},
		{"frames", &c.Frames},
		{"log_level", &c.LogLevel},
		{"shader_policy", &c.ShaderPolicy},
		{"update_variables_before_layout", &c.UpdateVariablesBeforeLayout},
	}

	for _, f := range fields {
		value := v.LookupPath(cue.ParsePath(f.path))
		if !value.Exists() {
			continue
		}
		if err := value.Decode(f.target); err != nil {
			return fmt.Errorf("%s: %w", f.path, err)
		}
	}
	return nil
}

// ThemeID maps the configured theme to the document theme constants.
func (c Config) ThemeID() int {
	switch c.Theme {
	case "dark":
		return internal.ThemeDark
	case "light":
		return internal.ThemeLight
	default:
		return internal.ThemeUnspecified
	}
}

func (c Config) Level() slog.Level {
	level, err := logs.ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}
