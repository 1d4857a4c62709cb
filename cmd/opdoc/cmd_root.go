package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/opdoc"
	"github.com/AnatoleLucet/opdoc/internal/config"
	"github.com/AnatoleLucet/opdoc/internal/logs"
)

const appName = "opdoc"

// app holds what every subcommand shares once flags are parsed.
type app struct {
	configFiles []string
	logLevel    string
	logJSON     bool

	width, height float64

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   appName,
		Short: "Inspect and run operation documents",
		Long: "Inspect and run operation documents written as YAML listings.\n\n" +
			"The player (surface, theme, frames, shader policy) is configured with CUE files.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringArrayVarP(&a.configFiles, "config", "c", nil,
		"player config CUE file (repeatable, later files win)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"log level: debug, info, warn or error (overrides the config)")
	root.PersistentFlags().BoolVar(&a.logJSON, "log-json", false,
		"also write logs as JSON to stderr")

	root.AddCommand(
		a.inspectCmd(),
		a.paintCmd(),
		a.clickCmd(),
		a.patchCmd(),
		a.shadersCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	a.cfg = config.Default()
	if len(a.configFiles) > 0 {
		cfg, err := config.Load(a.configFiles...)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	if a.width > 0 {
		a.cfg.Surface.Width = a.width
	}
	if a.height > 0 {
		a.cfg.Surface.Height = a.height
	}

	level := a.cfg.Level()
	if a.logLevel != "" {
		l, err := logs.ParseLevel(a.logLevel)
		if err != nil {
			return err
		}
		level = l
	}

	opts := logs.Options{Text: cmd.ErrOrStderr(), Level: level}
	if a.logJSON {
		opts.JSON = cmd.ErrOrStderr()
	}
	a.logger = logs.New(opts).With("app", appName)
	return nil
}

// open loads a listing and checks the configured player can show it.
func (a *app) open(path string) (*opdoc.Document, error) {
	doc, err := opdoc.LoadFile(path,
		opdoc.WithLogger(a.logger),
		opdoc.WithUpdateVariablesBeforeLayout(a.cfg.UpdateVariablesBeforeLayout),
	)
	if err != nil {
		return nil, err
	}

	if !doc.CanBeDisplayed(a.cfg.Player.Major, a.cfg.Player.Minor, 0) {
		return nil, fmt.Errorf("%s: document version %s cannot be displayed by player %d.%d",
			path, doc.Version(), a.cfg.Player.Major, a.cfg.Player.Minor)
	}
	return doc, nil
}

// start initializes doc against a recorder sized like the configured surface.
func (a *app) start(doc *opdoc.Document) (*opdoc.Context, *opdoc.Recorder) {
	rec := opdoc.NewRecorder()
	s := a.cfg.Surface
	ctx := opdoc.NewContext(rec, float32(s.Width), float32(s.Height), float32(s.Density))
	doc.InitializeContext(ctx)
	return ctx, rec
}

// frame paints once and returns the commands of that frame only.
func (a *app) frame(doc *opdoc.Document, ctx *opdoc.Context, rec *opdoc.Recorder) ([]string, error) {
	rec.Reset()
	if err := doc.Paint(ctx, a.cfg.ThemeID()); err != nil {
		return nil, err
	}
	return rec.Commands, nil
}

func printLines(w io.Writer, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))
}

func repaintString(delay int) string {
	switch delay {
	case opdoc.NoRepaint:
		return "none"
	case opdoc.RepaintNow:
		return "now"
	default:
		return fmt.Sprintf("%dms", delay)
	}
}

// surfaceFlags lets a subcommand override the configured surface size.
func (a *app) surfaceFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&a.width, "width", 0, "surface width (overrides the config)")
	cmd.Flags().Float64Var(&a.height, "height", 0, "surface height (overrides the config)")
}
