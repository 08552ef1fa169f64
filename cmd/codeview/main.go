package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/codeview/codeview"
	"github.com/arjunmahishi/codeview/config"
	"github.com/arjunmahishi/codeview/logging"
	"github.com/arjunmahishi/codeview/output"
)

func main() {
	app := &cli.Command{
		Name:  "codeview",
		Usage: "render code snippets into annotated views",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a YAML config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides config)",
			},
		},
		Commands: []*cli.Command{
			renderCommand(),
			symbolsCommand(),
			diagnosticsCommand(),
			themesCommand(),
			languagesCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		output.WriteError(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration, applies flag overrides and builds the renderer.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, *codeview.Renderer, *config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, nil, nil, err
	}

	if level := cmd.String("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if cmd.IsSet("theme") {
		cfg.Render.Theme = cmd.String("theme")
		cfg.Render.ThemeFile = ""
	}
	if cmd.IsSet("theme-file") {
		cfg.Render.ThemeFile = cmd.String("theme-file")
	}
	if cmd.IsSet("declarations") {
		cfg.Analysis.DeclarationsFile = cmd.String("declarations")
	}

	logger := newLogger(cfg)
	ctx = logging.WithLogger(ctx, logger)

	r, err := codeview.NewFromConfig(cfg, logger)
	if err != nil {
		return ctx, nil, nil, err
	}
	return ctx, r, cfg, nil
}

func newLogger(cfg *config.Config) *log.Logger {
	return logging.NewWithOptions(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
}

func writeJSON(cmd *cli.Command, v any) error {
	return output.New(output.Config{Compact: cmd.Bool("compact")}).Write(v)
}
