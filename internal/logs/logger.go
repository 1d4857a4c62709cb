package logs

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options selects the sinks of a logger. Text is required; JSON is an
// optional second sink receiving the same records.
type Options struct {
	Text  io.Writer
	JSON  io.Writer
	Level slog.Leveler
}

// New builds a logger fanning records out to every configured sink.
func New(opts Options) *slog.Logger {
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	handlers := []slog.Handler{
		slog.NewTextHandler(opts.Text, handlerOpts),
	}
	if opts.JSON != nil {
		handlers = append(handlers, slog.NewJSONHandler(opts.JSON, handlerOpts))
	}

	return slog.New(slogmulti.Fanout(handlers...))
}

// ParseLevel maps debug, info, warn and error to slog levels. The empty
// string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
