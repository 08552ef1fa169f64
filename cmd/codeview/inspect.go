package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/theme"
)

func symbolsCommand() *cli.Command {
	return &cli.Command{
		Name:  "symbols",
		Usage: "list identifier bounds of a snippet",
		Flags: sourceFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, r, _, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			bounds, err := r.Symbols(ctx, requestFromFlags(cmd))
			if err != nil {
				return err
			}
			return writeJSON(cmd, bounds)
		},
	}
}

func diagnosticsCommand() *cli.Command {
	return &cli.Command{
		Name:  "diagnostics",
		Usage: "list analyzer diagnostics of a snippet",
		Flags: sourceFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, r, _, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			diags, err := r.Diagnostics(ctx, requestFromFlags(cmd))
			if err != nil {
				return err
			}
			return writeJSON(cmd, diags)
		},
	}
}

func themesCommand() *cli.Command {
	return &cli.Command{
		Name:  "themes",
		Usage: "list built-in theme names",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "compact", Usage: "minimize output"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return writeJSON(cmd, theme.Names())
		},
	}
}

func languagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "languages",
		Usage: "list analyzable languages",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "compact", Usage: "minimize output"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			type entry struct {
				Name       string   `json:"name"`
				Extensions []string `json:"extensions"`
				Markup     bool     `json:"markup"`
			}
			var out []entry
			for _, name := range lang.List() {
				l := lang.Get(name)
				out = append(out, entry{
					Name:       l.Name(),
					Extensions: l.Extensions(),
					Markup:     l.SupportsMarkup(),
				})
			}
			return writeJSON(cmd, out)
		},
	}
}
