package analysis

import (
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/codeview/parser"
	"github.com/arjunmahishi/codeview/types"
)

// syntaxDiagnostics reports ERROR and MISSING nodes. Descendants of an ERROR
// node are not reported separately.
func syntaxDiagnostics(root *sitter.Node, source []byte) []types.Diagnostic {
	if !root.HasError() {
		return nil
	}

	var out []types.Diagnostic
	walk(root, func(n *sitter.Node) bool {
		switch {
		case n.IsMissing():
			out = append(out, types.Diagnostic{
				Start:   parser.Offset(n.StartByte()),
				Length:  0,
				Message: fmt.Sprintf("'%s' expected.", n.Type()),
			})
			return false
		case n.IsError():
			start := parser.Offset(n.StartByte())
			out = append(out, types.Diagnostic{
				Start:   start,
				Length:  parser.Offset(n.EndByte()) - start,
				Message: "Unexpected token.",
			})
			return false
		}
		return n.HasError()
	})
	return out
}

// nameDiagnostics reports component names that nothing declares or imports.
func nameDiagnostics(doc *Document) []types.Diagnostic {
	var out []types.Diagnostic
	unresolved := make(map[string]struct{})
	for _, c := range doc.unresolved() {
		unresolved[c.Text] = struct{}{}
	}
	for _, c := range doc.components {
		if _, ok := unresolved[c.Text]; !ok {
			continue
		}
		out = append(out, types.Diagnostic{
			Start:   c.Start,
			Length:  c.End - c.Start,
			Message: fmt.Sprintf("Cannot find name '%s'.", c.Text),
		})
	}
	return out
}

func sortDiagnostics(diags []types.Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Start < diags[j].Start
	})
}
