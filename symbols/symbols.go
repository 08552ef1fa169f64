// Package symbols computes hover targets for identifiers and import specifiers.
package symbols

import (
	"github.com/mattn/go-runewidth"

	"github.com/arjunmahishi/codeview/geometry"
	"github.com/arjunmahishi/codeview/types"
)

// Model is the part of an analyzed document the extractor reads.
type Model interface {
	geometry.LineResolver
	ModuleSpecifiers() []types.Node
	Identifiers() []types.Node
}

// Parent kinds that mark documentation comment content.
var defaultDocKinds = []string{"comment", "jsdoc", "jsdoc_tag", "JSDoc", "JSDocTag"}

// Parent kinds of identifiers introduced by import declarations.
var defaultImportKinds = []string{"import_clause", "import_specifier", "namespace_import", "import_spec"}

// Options configures Extract.
type Options struct {
	Mode       geometry.Mode
	LineHeight float64

	// DocCommentKinds overrides the parent kinds treated as doc comments.
	DocCommentKinds []string

	// ImportClauseKinds overrides the parent kinds dropped in markup-only mode.
	ImportClauseKinds []string
}

// Extract returns one SymbolBound per annotatable node of doc: module
// specifiers first, then identifiers, in document order.
func Extract(doc Model, opts Options) []types.SymbolBound {
	if doc == nil {
		return nil
	}
	if opts.Mode == nil {
		opts.Mode = geometry.FullSource{}
	}
	markupOnly := geometry.IsMarkupOnly(opts.Mode)

	docKinds := kindSet(opts.DocCommentKinds, defaultDocKinds)
	importKinds := kindSet(opts.ImportClauseKinds, defaultImportKinds)

	var nodes []types.Node
	if !markupOnly {
		nodes = append(nodes, doc.ModuleSpecifiers()...)
	}
	nodes = append(nodes, doc.Identifiers()...)

	mapper := geometry.NewMapper(doc, opts.Mode, opts.LineHeight)
	bounds := make([]types.SymbolBound, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := docKinds[n.ParentKind]; ok {
			continue
		}
		if markupOnly {
			if _, ok := importKinds[n.ParentKind]; ok {
				continue
			}
		}
		bounds = append(bounds, types.SymbolBound{
			Start:    n.Start,
			End:      n.End,
			Text:     n.Text,
			PixelBox: mapper.Box(n.Start, runewidth.StringWidth(n.Text)),
		})
	}
	return bounds
}

func kindSet(override, fallback []string) map[string]struct{} {
	kinds := override
	if kinds == nil {
		kinds = fallback
	}
	set := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return set
}
