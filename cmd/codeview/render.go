package main

import (
	"context"
	"errors"
	"runtime"

	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/codeview/codeview"
	"github.com/arjunmahishi/codeview/ranges"
)

// sourceFlags select one snippet. Shared by render, symbols and diagnostics.
func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "file to render",
		},
		&cli.StringFlag{
			Name:  "value",
			Usage: "literal source text to render",
		},
		&cli.StringFlag{
			Name:    "lang",
			Aliases: []string{"l"},
			Usage:   "language tag (detected from the file when empty)",
		},
		&cli.StringFlag{
			Name:  "filename",
			Usage: "name to register the snippet under",
		},
		&cli.StringFlag{
			Name:  "declarations",
			Usage: "YAML/JSON declaration catalog for missing imports",
		},
		&cli.BoolFlag{
			Name:  "compact",
			Usage: "minimize output",
		},
	}
}

func renderCommand() *cli.Command {
	flags := append(sourceFlags(),
		&cli.StringFlag{
			Name:  "highlight",
			Usage: "lines to highlight, e.g. 3,5-8",
		},
		&cli.StringFlag{
			Name:  "row",
			Usage: "single range to mark active in the gutter, e.g. 2-4",
		},
		&cli.BoolFlag{
			Name:  "no-errors",
			Usage: "do not open hover cards for symbols with diagnostics",
		},
		&cli.BoolFlag{
			Name:  "show-filename",
			Usage: "include a filename header",
		},
		&cli.StringFlag{
			Name:  "theme",
			Usage: "chroma style name",
		},
		&cli.StringFlag{
			Name:  "theme-file",
			Usage: "YAML/JSON theme file with a colors map",
		},
		&cli.StringFlag{
			Name:  "path",
			Usage: "render every supported file under a directory",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Value:   runtime.NumCPU(),
			Usage:   "number of parallel workers",
		},
	)

	return &cli.Command{
		Name:  "render",
		Usage: "render a snippet or a directory into annotated views",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, r, cfg, err := setup(ctx, cmd)
			if err != nil {
				return err
			}

			if path := cmd.String("path"); path != "" {
				if cmd.IsSet("file") || cmd.IsSet("value") {
					return errors.New("use --path or a single snippet, not both")
				}
				jobs := cfg.Batch.Jobs
				if cmd.IsSet("jobs") || jobs == 0 {
					jobs = cmd.Int("jobs")
				}
				results, err := r.RenderFiles(ctx, codeview.FilesOptions{
					Path:      path,
					Highlight: cmd.String("highlight"),
					Jobs:      jobs,
					MaxBytes:  cfg.Batch.MaxBytes,
				})
				if err != nil {
					return err
				}
				return writeJSON(cmd, results)
			}

			req := requestFromFlags(cmd)
			req.Highlight = cmd.String("highlight")
			req.ShowFilename = cmd.Bool("show-filename")
			if row, ok := ranges.Row(cmd.String("row")); ok {
				req.Row = &row
			}
			if cmd.Bool("no-errors") {
				show := false
				req.ShowErrors = &show
			}

			res, err := r.Render(ctx, req)
			if err != nil {
				return err
			}
			return writeJSON(cmd, res)
		},
	}
}

func requestFromFlags(cmd *cli.Command) codeview.Request {
	return codeview.Request{
		Source:   cmd.String("file"),
		Value:    cmd.String("value"),
		Language: cmd.String("lang"),
		Filename: cmd.String("filename"),
	}
}
