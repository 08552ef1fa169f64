// Package parser provides tree-sitter parsing and query execution.
package parser

import (
	"context"
	"fmt"
	"sort"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/types"
)

// Parser wraps a tree-sitter parser for a specific language.
// A Parser is not safe for concurrent use.
type Parser struct {
	parser *sitter.Parser
	lang   lang.Language
}

// New creates a new Parser for the given language.
func New(language lang.Language) *Parser {
	p := sitter.NewParser()
	p.SetLanguage(language.TreeSitterLang())
	return &Parser{
		parser: p,
		lang:   language,
	}
}

// Parse parses source code and returns the syntax tree.
func (p *Parser) Parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.lang.Name(), err)
	}
	return tree, nil
}

// Query represents a compiled tree-sitter query.
type Query struct {
	query *sitter.Query
}

// NewQuery compiles a tree-sitter query string.
func NewQuery(queryStr string, language lang.Language) (*Query, error) {
	q, err := sitter.NewQuery([]byte(queryStr), language.TreeSitterLang())
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	return &Query{query: q}, nil
}

// Nodes runs the query under root and returns every captured node once, in
// document order. Nodes the parser inserted during error recovery have no
// text and are skipped.
func (q *Query) Nodes(root *sitter.Node, source []byte) []types.Node {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(q.query, root)

	type key struct{ start, end int }
	seen := make(map[key]struct{})

	var nodes []types.Node
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			if capture.Node.IsMissing() || capture.Node.StartByte() == capture.Node.EndByte() {
				continue
			}
			n := Convert(capture.Node, source)
			k := key{n.Start, n.End}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			nodes = append(nodes, n)
		}
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Start < nodes[j].Start
	})
	return nodes
}

// Convert copies a tree-sitter node into a types.Node. The result stays
// valid after the tree is closed.
func Convert(node *sitter.Node, source []byte) types.Node {
	n := types.Node{
		Kind:  node.Type(),
		Start: Offset(node.StartByte()),
		End:   Offset(node.EndByte()),
		Text:  node.Content(source),
	}
	if parent := node.Parent(); parent != nil {
		n.ParentKind = parent.Type()
	}
	return n
}

// Offset converts a tree-sitter byte offset to int.
func Offset(v uint32) int {
	n, err := safecast.Conv[int](v)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return n
}
