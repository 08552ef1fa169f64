package analysis

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/codeview/geometry"
	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/parser"
	"github.com/arjunmahishi/codeview/types"
)

// Document is an analyzed snapshot of one file. It is immutable; any text
// change produces a new Document through Project.Register.
type Document struct {
	filename string
	language lang.Language
	text     string
	mode     geometry.Mode
	lines    lineIndex

	modules     []types.Node
	identifiers []types.Node
	components  []types.Node
	declared    map[string]struct{}
	diagnostics []types.Diagnostic
}

// Filename returns the virtual filename the document is registered under.
func (d *Document) Filename() string { return d.filename }

// Language returns the document language.
func (d *Document) Language() lang.Language { return d.language }

// Text returns the full analyzed text.
func (d *Document) Text() string { return d.text }

// Mode returns how the analyzed text maps onto the rendered text.
func (d *Document) Mode() geometry.Mode { return d.mode }

// ModuleSpecifiers returns the module specifier of every import declaration.
func (d *Document) ModuleSpecifiers() []types.Node { return d.modules }

// Identifiers returns every identifier node in document order.
func (d *Document) Identifiers() []types.Node { return d.identifiers }

// Diagnostics returns syntax and name-resolution diagnostics, sorted by offset.
func (d *Document) Diagnostics() []types.Diagnostic { return d.diagnostics }

// LineColumn converts an offset into a 1-based line and display column.
func (d *Document) LineColumn(offset int) (int, int) {
	return d.lines.LineColumn(offset)
}

// Offset converts a 1-based line and display column back into an offset.
// Columns inside a wide rune or a tab resolve to the rune's offset; columns
// past the end of the line resolve to the line end.
func (d *Document) Offset(line, column int) int {
	return d.lines.offset(line, column)
}

// LineCount returns the number of lines in the analyzed text.
func (d *Document) LineCount() int {
	return d.lines.count()
}

// RenderedStart is the offset where the rendered portion of the text begins.
// It is zero in full-source mode and skips the synthetic import lines and the
// separator line in markup-only mode.
func (d *Document) RenderedStart() int {
	return d.lines.lineStart(d.mode.YOffset())
}

// RenderedText returns the part of the text the reader sees.
func (d *Document) RenderedText() string {
	return d.text[d.RenderedStart():]
}

// unresolved returns the component names used in markup that are neither
// declared nor imported, in order of first use.
func (d *Document) unresolved() []types.Node {
	var out []types.Node
	seen := make(map[string]struct{})
	for _, c := range d.components {
		if _, ok := d.declared[c.Text]; ok {
			continue
		}
		if _, ok := seen[c.Text]; ok {
			continue
		}
		seen[c.Text] = struct{}{}
		out = append(out, c)
	}
	return out
}

// analyze parses text and collects everything a Document exposes.
func analyze(ctx context.Context, q *queries, filename, text string, mode geometry.Mode, tabWidth int) (*Document, error) {
	source := []byte(text)
	tree, err := parser.New(q.language).Parse(ctx, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	root := tree.RootNode()

	doc := &Document{
		filename:    filename,
		language:    q.language,
		text:        text,
		mode:        mode,
		lines:       newLineIndex(text, tabWidth),
		modules:     q.modules.Nodes(root, source),
		identifiers: q.identifiers.Nodes(root, source),
		declared:    make(map[string]struct{}),
	}

	if q.language.SupportsMarkup() {
		doc.components = collectComponents(root, source)
		collectDeclared(root, source, doc.declared)
	}

	doc.diagnostics = append(syntaxDiagnostics(root, source), nameDiagnostics(doc)...)
	sortDiagnostics(doc.diagnostics)
	return doc, nil
}

// collectComponents returns the tag-name nodes of JSX elements that refer to
// components: capitalized names, or the root object of member tags.
func collectComponents(root *sitter.Node, source []byte) []types.Node {
	var out []types.Node
	walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "jsx_opening_element", "jsx_self_closing_element":
			name := n.ChildByFieldName("name")
			for name != nil && name.Type() == "member_expression" {
				name = name.ChildByFieldName("object")
			}
			if name != nil && name.Type() == "identifier" && isComponentName(name.Content(source)) {
				out = append(out, parser.Convert(name, source))
			}
		}
		return true
	})
	return out
}

func isComponentName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// declarationKinds are nodes whose "name" field introduces a binding.
var declarationKinds = map[string]struct{}{
	"variable_declarator":            {},
	"function_declaration":           {},
	"generator_function_declaration": {},
	"class_declaration":              {},
	"abstract_class_declaration":     {},
	"type_alias_declaration":         {},
	"interface_declaration":          {},
	"enum_declaration":               {},
}

func collectDeclared(root *sitter.Node, source []byte, into map[string]struct{}) {
	walk(root, func(n *sitter.Node) bool {
		kind := n.Type()
		if _, ok := declarationKinds[kind]; ok {
			if name := n.ChildByFieldName("name"); name != nil {
				into[name.Content(source)] = struct{}{}
			}
			return true
		}
		switch kind {
		case "import_specifier":
			local := n.ChildByFieldName("alias")
			if local == nil {
				local = n.ChildByFieldName("name")
			}
			if local != nil {
				into[local.Content(source)] = struct{}{}
			}
		case "import_clause", "namespace_import":
			for i := 0; i < int(n.NamedChildCount()); i++ {
				if c := n.NamedChild(i); c.Type() == "identifier" {
					into[c.Content(source)] = struct{}{}
				}
			}
		}
		return true
	})
}

// isMarkupSnippet reports whether text is nothing but JSX expressions: no
// imports, no declarations, no other statements.
func isMarkupSnippet(ctx context.Context, language lang.Language, text string) (bool, error) {
	if !language.SupportsMarkup() || !strings.HasPrefix(strings.TrimSpace(text), "<") {
		return false, nil
	}

	source := []byte(text)
	tree, err := parser.New(language).Parse(ctx, source)
	if err != nil {
		return false, fmt.Errorf("detect markup: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	statements := 0
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Type() == "comment" {
			continue
		}
		if stmt.Type() != "expression_statement" || stmt.NamedChildCount() == 0 {
			return false, nil
		}
		switch stmt.NamedChild(0).Type() {
		case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
			statements++
		default:
			return false, nil
		}
	}
	return statements > 0, nil
}

// walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the current node.
func walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), fn)
	}
}
