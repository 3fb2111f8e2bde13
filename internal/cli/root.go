// Package cli implements the richedit command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/richedit/internal/config"
	"github.com/dshills/richedit/internal/font"
	"github.com/dshills/richedit/internal/logging"
	"github.com/dshills/richedit/internal/markup"
	"github.com/dshills/richedit/internal/toggle"
)

// Option configures the root command.
type Option func(*app)

// WithEnviron replaces os.Environ as the configuration environment.
func WithEnviron(environ func() []string) Option {
	return func(a *app) {
		a.environ = environ
	}
}

// WithScreen replaces the terminal used by preview.
func WithScreen(newScreen func() (tcell.Screen, error)) Option {
	return func(a *app) {
		if newScreen != nil {
			a.newScreen = newScreen
		}
	}
}

// app holds the state shared by subcommands once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	logFile    string

	environ   func() []string
	newScreen func() (tcell.Screen, error)

	cfg      *config.Config
	logger   *slog.Logger
	closer   io.Closer
	resolver *font.Resolver
	display  *font.DisplayContext
}

// NewRootCommand builds the richedit command.
func NewRootCommand(version string, opts ...Option) *cobra.Command {
	a := &app{newScreen: tcell.NewScreen}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "richedit",
		Short: "Style-toggle engine for attributed text",
		Long:  "Convert markdown to attributed text, toggle character styles over ranges and export the platform form",
		Example: `
# Show the runs of a markdown document
richedit render notes.md

# Export platform JSON
richedit export notes.md > notes.json

# Make the first five characters bold
richedit toggle --axis bold --range 0:5 notes.json

# Run a Lua edit script
richedit script notes.md shout.lua
  `,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a TOML or YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Write logs to this file instead of stderr")

	root.AddCommand(
		newRenderCmd(a),
		newExportCmd(a),
		newToggleCmd(a),
		newScriptCmd(a),
		newPreviewCmd(a),
		newWatchCmd(a),
	)
	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, version string, args []string, stdout, stderr io.Writer, opts ...Option) int {
	root := NewRootCommand(version, opts...)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) setup(cmd *cobra.Command) error {
	opts := []config.Option{config.WithFile(a.configPath)}
	if a.environ != nil {
		opts = append(opts, config.WithEnviron(a.environ))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	lc := cfg.Logging()
	if a.logLevel != "" {
		switch a.logLevel {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", a.logLevel)
		}
		lc.Level = a.logLevel
	}
	if a.logFile != "" {
		lc.File = a.logFile
	}
	logger, closer, err := logging.New(lc, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.closer = closer
	a.resolver = cfg.Resolver(font.WithLogger(logger))
	a.display = cfg.Display()
	logger.Debug("configured", "command", cmd.Name(), "sizeCategory", a.display.Category.String())
	return nil
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

func (a *app) parser() *markup.Parser {
	mc := a.cfg.Markup()
	return markup.NewParser(
		markup.WithHeaders(a.cfg.Headers()),
		markup.WithResolver(a.resolver),
		markup.WithDisplayContext(a.display),
		markup.WithCodeFont(mc.CodeFont),
		markup.WithLinkColor(mc.LinkColor),
		markup.WithLogger(a.logger),
	)
}

func (a *app) engine() *toggle.Engine {
	return toggle.New(
		toggle.WithResolver(a.resolver),
		toggle.WithDisplayContext(a.display),
		toggle.WithScriptMetrics(a.cfg.ScriptMetrics()),
		toggle.WithLogger(a.logger),
	)
}
