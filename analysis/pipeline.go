package analysis

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arjunmahishi/codeview/geometry"
	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/types"
)

// A snippet moves through four stages, each produced only by the previous
// one: Parsed -> ImportsResolved -> Formatted -> Diagnosed. Diagnostics and
// symbol positions are only reachable from Diagnosed, after every text
// rewrite has happened.

// Parsed is a registered snippet whose imports are not resolved yet.
type Parsed struct {
	project *Project
	doc     *Document
	markup  string
}

// ImportsResolved is a snippet after missing imports were added.
type ImportsResolved struct {
	project *Project
	doc     *Document
	markup  string
	imports []string
}

// Formatted is a snippet after reformatting.
type Formatted struct {
	doc *Document
}

// Diagnosed is the final snapshot; its text, positions, and diagnostics all
// come from the same registration.
type Diagnosed struct {
	doc *Document
}

// Parse registers text under filename, overwriting any previous document.
// Markup-only snippets are wrapped behind a blank separator line so that
// synthetic imports can be inserted above them.
func Parse(ctx context.Context, project *Project, filename, text string) (Parsed, error) {
	language := lang.ByExtension(filepath.Ext(filename))
	if language == nil {
		return Parsed{}, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filename)
	}
	text = normalizeNewlines(text)

	markup, err := isMarkupSnippet(ctx, language, text)
	if err != nil {
		return Parsed{}, err
	}

	if !markup {
		doc, err := project.Register(ctx, filename, text, RegisterOptions{Overwrite: true})
		if err != nil {
			return Parsed{}, err
		}
		return Parsed{project: project, doc: doc}, nil
	}

	doc, err := project.Register(ctx, filename, markupText(nil, text), RegisterOptions{
		Overwrite: true,
		Mode:      geometry.MarkupOnly{},
	})
	if err != nil {
		return Parsed{}, err
	}
	return Parsed{project: project, doc: doc, markup: text}, nil
}

// MarkupOnly reports whether the snippet was detected as bare markup.
func (p Parsed) MarkupOnly() bool {
	return geometry.IsMarkupOnly(p.doc.mode)
}

// ResolveImports adds an import for every unresolved component the catalog
// knows about. Components the catalog does not know stay unresolved and are
// reported as diagnostics.
func (p Parsed) ResolveImports(ctx context.Context, catalog *Catalog) (ImportsResolved, error) {
	lines := importLines(p.doc.unresolved(), catalog)
	if len(lines) == 0 {
		return ImportsResolved{project: p.project, doc: p.doc, markup: p.markup}, nil
	}

	var (
		text string
		mode geometry.Mode
	)
	if p.MarkupOnly() {
		text = markupText(lines, p.markup)
		mode = geometry.MarkupOnly{ImportLineCount: len(lines)}
	} else {
		text = strings.Join(lines, "\n") + "\n" + p.doc.text
		mode = geometry.FullSource{}
	}

	doc, err := p.project.Register(ctx, p.doc.filename, text, RegisterOptions{Overwrite: true, Mode: mode})
	if err != nil {
		return ImportsResolved{}, fmt.Errorf("resolve imports: %w", err)
	}
	return ImportsResolved{project: p.project, doc: doc, markup: p.markup, imports: lines}, nil
}

// AddedImports returns the import lines that were inserted.
func (r ImportsResolved) AddedImports() []string {
	return r.imports
}

// Format reformats the snippet. In markup-only mode only the markup is
// reformatted; the synthetic import lines are left alone.
func (r ImportsResolved) Format(ctx context.Context, opts FormatOptions) (Formatted, error) {
	var text string
	if geometry.IsMarkupOnly(r.doc.mode) {
		text = markupText(r.imports, formatText(r.doc.language, r.markup, opts))
	} else {
		text = formatText(r.doc.language, r.doc.text, opts)
	}

	if text == r.doc.text {
		return Formatted{doc: r.doc}, nil
	}

	doc, err := r.project.Register(ctx, r.doc.filename, text, RegisterOptions{Overwrite: true, Mode: r.doc.mode})
	if err != nil {
		return Formatted{}, fmt.Errorf("format: %w", err)
	}
	return Formatted{doc: doc}, nil
}

// Diagnose finalizes the snapshot.
func (f Formatted) Diagnose() Diagnosed {
	return Diagnosed{doc: f.doc}
}

// Document returns the final document.
func (d Diagnosed) Document() *Document {
	return d.doc
}

// Mode returns the document mode.
func (d Diagnosed) Mode() geometry.Mode {
	return d.doc.mode
}

// Diagnostics returns the diagnostics of the final text.
func (d Diagnosed) Diagnostics() []types.Diagnostic {
	return d.doc.diagnostics
}

// markupText lays out imports, one blank separator line, then the markup.
// The separator is present even without imports, so the markup always starts
// on line len(imports)+2.
func markupText(imports []string, markup string) string {
	var sb strings.Builder
	for _, line := range imports {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	sb.WriteString(markup)
	return sb.String()
}

// importLines builds one named import per module, sorted by module.
func importLines(unresolved []types.Node, catalog *Catalog) []string {
	byModule := make(map[string][]string)
	for _, n := range unresolved {
		module, ok := catalog.Lookup(n.Text)
		if !ok {
			continue
		}
		byModule[module] = append(byModule[module], n.Text)
	}

	modules := make([]string, 0, len(byModule))
	for m := range byModule {
		modules = append(modules, m)
	}
	sort.Strings(modules)

	lines := make([]string, 0, len(modules))
	for _, m := range modules {
		names := byModule[m]
		sort.Strings(names)
		lines = append(lines, fmt.Sprintf("import { %s } from %q;", strings.Join(names, ", "), m))
	}
	return lines
}
