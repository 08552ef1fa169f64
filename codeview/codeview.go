// Package codeview renders source snippets into annotated views: highlighted
// tokens, line numbers, highlight bands, diagnostic underlines and symbol
// hover regions.
package codeview

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/arjunmahishi/codeview/analysis"
	"github.com/arjunmahishi/codeview/config"
	"github.com/arjunmahishi/codeview/geometry"
	"github.com/arjunmahishi/codeview/highlight"
	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/logging"
	"github.com/arjunmahishi/codeview/overlay"
	"github.com/arjunmahishi/codeview/symbols"
	"github.com/arjunmahishi/codeview/theme"
	"github.com/arjunmahishi/codeview/types"
	"github.com/arjunmahishi/codeview/view"
)

var (
	// ErrNoSource is returned when a request has neither a value nor a source.
	ErrNoSource = errors.New("one of value or source is required")

	// ErrAmbiguousSource is returned when a request has both.
	ErrAmbiguousSource = errors.New("use value or source, not both")
)

// snippetSeq numbers generated filenames.
var snippetSeq atomic.Int64

// Renderer renders snippets against one shared analyzer project.
type Renderer struct {
	opts           Options
	ownHighlighter bool
}

// New creates a Renderer.
func New(opts Options) (*Renderer, error) {
	if opts.Project == nil {
		opts.Project = analysis.NewProject(analysis.ProjectOptions{})
	}
	if opts.Declarations == nil {
		opts.Declarations = analysis.FileDeclarations("")
	}
	if opts.Theme == nil {
		th, err := theme.FromStyle("github")
		if err != nil {
			return nil, err
		}
		opts.Theme = th
	}
	if err := opts.Theme.Validate(); err != nil {
		return nil, err
	}

	r := &Renderer{}
	if opts.Highlighter == nil {
		opts.Highlighter = highlight.New(opts.Theme)
		r.ownHighlighter = true
	}
	if opts.LineHeight <= 0 {
		opts.LineHeight = types.LineHeight
	}
	if opts.TabSize <= 0 {
		opts.TabSize = view.DefaultTabSize
	}
	if opts.Format == (analysis.FormatOptions{}) {
		opts.Format = analysis.DefaultFormatOptions()
	}
	r.opts = opts
	return r, nil
}

// NewFromConfig creates a Renderer from loaded configuration.
func NewFromConfig(cfg *config.Config, logger *log.Logger) (*Renderer, error) {
	var (
		th  *theme.Theme
		err error
	)
	if cfg.Render.ThemeFile != "" {
		th, err = theme.Load(cfg.Render.ThemeFile)
	} else {
		th, err = theme.FromStyle(cfg.Render.Theme)
	}
	if err != nil {
		return nil, err
	}

	return New(Options{
		Project:      analysis.NewProject(analysis.ProjectOptions{TabWidth: cfg.Analysis.TabWidth}),
		Declarations: analysis.FileDeclarations(cfg.Analysis.DeclarationsFile),
		Theme:        th,
		LineHeight:   cfg.Render.LineHeight,
		TabSize:      cfg.Render.TabSize,
		ShowErrors:   cfg.Render.ShowErrors,
		LineNumbers:  cfg.Render.LineNumbers,
		Format: analysis.FormatOptions{
			Disabled:               !cfg.Analysis.Format,
			IndentSize:             cfg.Analysis.IndentSize,
			ConvertTabsToSpaces:    true,
			TrimTrailingWhitespace: true,
		},
		Logger: logger,
	})
}

// Project returns the shared document table.
func (r *Renderer) Project() *analysis.Project {
	return r.opts.Project
}

// Theme returns the default theme.
func (r *Renderer) Theme() *theme.Theme {
	return r.opts.Theme
}

// Analysis is the semantic part of a render: what the analyzer saw and the
// geometry derived from it.
type Analysis struct {
	Filename    string               `json:"filename"`
	Language    string               `json:"language"`
	Analyzed    bool                 `json:"analyzed"`
	Mode        string               `json:"mode"`
	Text        string               `json:"text"`
	Imports     []string             `json:"imports,omitempty"`
	Symbols     []types.SymbolBound  `json:"symbols"`
	Diagnostics []types.Diagnostic   `json:"diagnostics"`
	Decorations []overlay.Decoration `json:"decorations,omitempty"`

	mode geometry.Mode
	doc  *analysis.Document
}

// Result is one rendered snippet.
type Result struct {
	Filename    string             `json:"filename"`
	Language    string             `json:"language"`
	Analyzed    bool               `json:"analyzed"`
	Imports     []string           `json:"imports,omitempty"`
	Diagnostics []types.Diagnostic `json:"diagnostics"`
	View        *view.View         `json:"view"`
}

// Render runs the full flow: analysis when the language supports it, then
// highlighting, then assembly.
func (r *Renderer) Render(ctx context.Context, req Request) (*Result, error) {
	th := req.Theme
	if th == nil {
		th = r.opts.Theme
	}
	if err := th.Validate(); err != nil {
		return nil, err
	}

	a, err := r.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	highlighter := r.opts.Highlighter
	if req.Theme != nil && r.ownHighlighter {
		highlighter = highlight.New(req.Theme)
	}

	var annotated highlight.Annotated
	if a.doc != nil {
		annotated = a.doc
	}
	tokens, err := highlighter.Highlight(a.Text, a.Language, annotated, geometry.IsMarkupOnly(a.mode))
	if err != nil {
		return nil, fmt.Errorf("highlight %s: %w", a.Filename, err)
	}

	showErrors := r.opts.ShowErrors
	if req.ShowErrors != nil {
		showErrors = *req.ShowErrors
	}

	v, err := view.Assemble(view.Input{
		Filename:     a.Filename,
		ShowFilename: req.ShowFilename,
		Language:     a.Language,
		Tokens:       tokens,
		Theme:        th,
		Highlight:    req.Highlight,
		Row:          req.Row,
		LineNumbers:  r.opts.LineNumbers,
		Symbols:      a.Symbols,
		Diagnostics:  a.Diagnostics,
		Decorations:  a.Decorations,
		ShowErrors:   showErrors,
		Mode:         a.mode,
		LineHeight:   r.opts.LineHeight,
		TabSize:      r.opts.TabSize,
	})
	if err != nil {
		return nil, err
	}

	r.logger(ctx).Debug("rendered snippet",
		logging.FieldFilename, a.Filename,
		logging.FieldLines, len(tokens),
		logging.FieldSymbols, len(a.Symbols),
		logging.FieldDiagnostics, len(a.Diagnostics),
	)

	return &Result{
		Filename:    a.Filename,
		Language:    a.Language,
		Analyzed:    a.Analyzed,
		Imports:     a.Imports,
		Diagnostics: a.Diagnostics,
		View:        v,
	}, nil
}

// Analyze registers the snippet and computes symbol bounds and diagnostics.
// Languages the analyzer does not support yield an Analysis with Analyzed
// false and no symbols or diagnostics.
func (r *Renderer) Analyze(ctx context.Context, req Request) (*Analysis, error) {
	text, err := readSource(req)
	if err != nil {
		return nil, err
	}

	name := req.Filename
	if name == "" {
		name = req.Source
	}
	tag := resolveLanguage(req.Language, name, text)
	if name == "" {
		name = fmt.Sprintf("snippet-%d%s", snippetSeq.Add(1), lang.Extension(tag))
	}

	logger := r.logger(ctx).With(logging.FieldFilename, name, logging.FieldLanguage, tag)

	a := &Analysis{
		Filename:    name,
		Language:    tag,
		Text:        text,
		Symbols:     []types.SymbolBound{},
		Diagnostics: []types.Diagnostic{},
		mode:        geometry.FullSource{},
	}

	language := lang.Get(tag)
	if language == nil {
		logger.Debug("language not analyzable, highlighting only")
		a.Mode = a.mode.String()
		return a, nil
	}

	diagnosed, imports, err := r.pipeline(ctx, analyzerKey(name, language), text)
	if err != nil {
		return nil, err
	}

	doc := diagnosed.Document()
	a.Analyzed = true
	a.mode = diagnosed.Mode()
	a.Mode = a.mode.String()
	a.Text = doc.RenderedText()
	a.Imports = imports
	a.doc = doc
	a.Symbols = symbols.Extract(doc, symbols.Options{Mode: a.mode, LineHeight: r.opts.LineHeight})
	a.Diagnostics = append(a.Diagnostics, diagnosed.Diagnostics()...)
	a.Decorations = overlay.Decorations(doc, a.Diagnostics, a.mode, r.opts.LineHeight)

	logger.Debug("analyzed snippet",
		logging.FieldMode, a.Mode,
		logging.FieldImports, len(imports),
		logging.FieldSymbols, len(a.Symbols),
		logging.FieldDiagnostics, len(a.Diagnostics),
	)
	return a, nil
}

// Symbols returns the symbol bounds of a snippet.
func (r *Renderer) Symbols(ctx context.Context, req Request) ([]types.SymbolBound, error) {
	a, err := r.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	return a.Symbols, nil
}

// Diagnostics returns the diagnostics of a snippet.
func (r *Renderer) Diagnostics(ctx context.Context, req Request) ([]types.Diagnostic, error) {
	a, err := r.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	return a.Diagnostics, nil
}

// pipeline runs the analyzer stages in order. Diagnostics and positions are
// read only from the final stage.
func (r *Renderer) pipeline(ctx context.Context, filename, text string) (analysis.Diagnosed, []string, error) {
	parsed, err := analysis.Parse(ctx, r.opts.Project, filename, text)
	if err != nil {
		return analysis.Diagnosed{}, nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	catalog, err := r.opts.Declarations.Load(ctx)
	if err != nil {
		return analysis.Diagnosed{}, nil, fmt.Errorf("load declarations: %w", err)
	}

	resolved, err := parsed.ResolveImports(ctx, catalog)
	if err != nil {
		return analysis.Diagnosed{}, nil, err
	}

	formatted, err := resolved.Format(ctx, r.opts.Format)
	if err != nil {
		return analysis.Diagnosed{}, nil, err
	}

	return formatted.Diagnose(), resolved.AddedImports(), nil
}

func (r *Renderer) logger(ctx context.Context) *log.Logger {
	if r.opts.Logger != nil {
		return r.opts.Logger
	}
	return logging.FromContext(ctx)
}

func readSource(req Request) (string, error) {
	switch {
	case req.Value != "" && req.Source != "":
		return "", ErrAmbiguousSource
	case req.Value != "":
		return normalizeNewlines(req.Value), nil
	case req.Source != "":
		data, err := os.ReadFile(req.Source)
		if err != nil {
			return "", fmt.Errorf("read source: %w", err)
		}
		return normalizeNewlines(string(data)), nil
	default:
		return "", ErrNoSource
	}
}

func resolveLanguage(tag, filename, text string) string {
	if tag != "" {
		if l := lang.Get(tag); l != nil {
			return l.Name()
		}
		return strings.ToLower(strings.TrimSpace(tag))
	}
	return lang.Detect(filename, []byte(text))
}

// analyzerKey is the filename the analyzer sees. The analyzer picks the
// grammar from the extension, so a name whose extension names a different
// language gets the language's own extension appended.
func analyzerKey(name string, language lang.Language) string {
	if lang.ByExtension(filepath.Ext(name)) == language {
		return name
	}
	return name + language.Extensions()[0]
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
