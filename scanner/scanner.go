// Package scanner discovers source files to render.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultIgnoreDirs returns dependency and build output directories that
// never hold files worth rendering. Hidden directories are always skipped.
func DefaultIgnoreDirs() map[string]struct{} {
	return map[string]struct{}{
		"node_modules": {},
		"vendor":       {},
		"dist":         {},
		"build":        {},
		"out":          {},
		"coverage":     {},
		"__pycache__":  {},
	}
}

// FileJob is one file to render.
type FileJob struct {
	// AbsPath is used to read the file.
	AbsPath string

	// DisplayPath is the slash-separated path relative to the root. It is
	// also the name the file is registered under.
	DisplayPath string
}

// Config holds scanner configuration.
type Config struct {
	// Root is a directory to walk or a single file. Defaults to ".".
	Root string

	// Supported reports whether a file name can be rendered.
	// If nil, every file is collected.
	Supported func(name string) bool

	// IgnoreDirs are directory names to skip.
	// If nil, DefaultIgnoreDirs is used.
	IgnoreDirs map[string]struct{}

	// MaxBytes skips files larger than this size. 0 means no limit.
	MaxBytes int64
}

// Result is what a walk found.
type Result struct {
	// Files are the files to render, sorted by display path.
	Files []FileJob

	// Oversized are display paths skipped for exceeding MaxBytes.
	Oversized []string
}

// Collect walks cfg.Root. A root that is a file yields that file alone,
// regardless of Supported and MaxBytes, so callers can render one named file.
// The walk stops with ctx.Err() when ctx is canceled.
func Collect(ctx context.Context, cfg Config) (Result, error) {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.IgnoreDirs == nil {
		cfg.IgnoreDirs = DefaultIgnoreDirs()
	}

	absRoot, err := filepath.Abs(cfg.Root)
	if err != nil {
		return Result{}, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return Result{}, err
	}
	if !info.IsDir() {
		return Result{Files: []FileJob{{AbsPath: absRoot, DisplayPath: filepath.Base(absRoot)}}}, nil
	}

	var res Result
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != absRoot && skipDir(d.Name(), cfg.IgnoreDirs) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if cfg.Supported != nil && !cfg.Supported(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			rel = path
		}
		display := filepath.ToSlash(rel)

		if cfg.MaxBytes > 0 {
			fi, err := d.Info()
			if err != nil {
				return nil
			}
			if fi.Size() > cfg.MaxBytes {
				res.Oversized = append(res.Oversized, display)
				return nil
			}
		}

		res.Files = append(res.Files, FileJob{AbsPath: path, DisplayPath: display})
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	sort.Slice(res.Files, func(i, j int) bool {
		return res.Files[i].DisplayPath < res.Files[j].DisplayPath
	})
	sort.Strings(res.Oversized)
	return res, nil
}

func skipDir(name string, ignore map[string]struct{}) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ok := ignore[name]
	return ok
}
