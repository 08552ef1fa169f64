// Package analysis is the semantic model behind annotated snippets: a
// registry of analyzed documents and the staged pipeline that prepares a
// snippet for rendering.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/arjunmahishi/codeview/geometry"
	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/parser"
)

// DefaultTabWidth is the tab stop used for display columns.
const DefaultTabWidth = 4

var (
	// ErrDocumentExists is returned when registering a taken filename
	// without overwrite.
	ErrDocumentExists = errors.New("document already registered")

	// ErrUnsupportedLanguage is returned for filenames no language claims.
	ErrUnsupportedLanguage = errors.New("language not supported by the analyzer")
)

// queries holds the compiled queries of one language.
type queries struct {
	language    lang.Language
	identifiers *parser.Query
	modules     *parser.Query
}

// Project is the process-wide document table keyed by filename. Create one
// at startup and pass it to every render.
type Project struct {
	tabWidth int

	mu        sync.RWMutex
	documents map[string]*Document

	queryMu sync.Mutex
	queries map[string]*queries
}

// ProjectOptions configures NewProject.
type ProjectOptions struct {
	// TabWidth is the tab stop used for display columns.
	// If 0, DefaultTabWidth is used.
	TabWidth int
}

// NewProject creates an empty project.
func NewProject(opts ProjectOptions) *Project {
	if opts.TabWidth <= 0 {
		opts.TabWidth = DefaultTabWidth
	}
	return &Project{
		tabWidth:  opts.TabWidth,
		documents: make(map[string]*Document),
		queries:   make(map[string]*queries),
	}
}

// RegisterOptions configures Register.
type RegisterOptions struct {
	// Overwrite replaces an existing document with the same filename.
	Overwrite bool

	// Mode describes how the text maps onto the rendered snippet.
	// If nil, geometry.FullSource is used.
	Mode geometry.Mode
}

// Register analyzes text and stores it under filename. The language is taken
// from the filename extension. With Overwrite, the last write wins.
func (p *Project) Register(ctx context.Context, filename, text string, opts RegisterOptions) (*Document, error) {
	language := lang.ByExtension(filepath.Ext(filename))
	if language == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filename)
	}
	if opts.Mode == nil {
		opts.Mode = geometry.FullSource{}
	}

	if !opts.Overwrite {
		if _, ok := p.Get(filename); ok {
			return nil, fmt.Errorf("%w: %s", ErrDocumentExists, filename)
		}
	}

	q, err := p.queriesFor(language)
	if err != nil {
		return nil, err
	}

	doc, err := analyze(ctx, q, filename, normalizeNewlines(text), opts.Mode, p.tabWidth)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.documents[filename]; ok && !opts.Overwrite {
		return nil, fmt.Errorf("%w: %s", ErrDocumentExists, filename)
	}
	p.documents[filename] = doc
	return doc, nil
}

// Get returns the current document for filename.
func (p *Project) Get(filename string) (*Document, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	doc, ok := p.documents[filename]
	return doc, ok
}

// Remove drops a document from the table.
func (p *Project) Remove(filename string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.documents, filename)
}

// Filenames lists registered filenames, sorted.
func (p *Project) Filenames() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.documents))
	for name := range p.documents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered documents.
func (p *Project) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.documents)
}

// Supports reports whether the analyzer can register filename.
func (p *Project) Supports(filename string) bool {
	return lang.ByExtension(filepath.Ext(filename)) != nil
}

func (p *Project) queriesFor(language lang.Language) (*queries, error) {
	p.queryMu.Lock()
	defer p.queryMu.Unlock()

	if q, ok := p.queries[language.Name()]; ok {
		return q, nil
	}

	identifiers, err := parser.NewQuery(language.IdentifiersQuery(), language)
	if err != nil {
		return nil, fmt.Errorf("%s identifiers: %w", language.Name(), err)
	}
	modules, err := parser.NewQuery(language.ModulesQuery(), language)
	if err != nil {
		return nil, fmt.Errorf("%s modules: %w", language.Name(), err)
	}

	q := &queries{language: language, identifiers: identifiers, modules: modules}
	p.queries[language.Name()] = q
	return q, nil
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
