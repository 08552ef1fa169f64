package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmahishi/codeview/lang"
)

func parseNodes(t *testing.T, tag, src, query string) []string {
	t.Helper()
	language := lang.Get(tag)
	require.NotNil(t, language)

	tree, err := New(language).Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	defer tree.Close()

	q, err := NewQuery(query, language)
	require.NoError(t, err)

	var texts []string
	for _, n := range q.Nodes(tree.RootNode(), []byte(src)) {
		texts = append(texts, n.Text)
	}
	return texts
}

func TestIdentifiersQuery(t *testing.T) {
	got := parseNodes(t, "ts", "const a = 1", lang.Get("ts").IdentifiersQuery())
	require.Equal(t, []string{"a"}, got)

	got = parseNodes(t, "go", "package main\n\nfunc main() { x := 1; println(x) }\n", lang.Get("go").IdentifiersQuery())
	require.Equal(t, []string{"main", "main", "x", "println", "x"}, got)
}

func TestModulesQuery(t *testing.T) {
	src := "import { A } from \"a\";\nimport b from 'b';\nexport { c } from \"c\";\n"
	got := parseNodes(t, "tsx", src, lang.Get("tsx").ModulesQuery())
	require.Equal(t, []string{`"a"`, `'b'`, `"c"`}, got)

	goSrc := "package p\n\nimport (\n\t\"fmt\"\n\tstr \"strings\"\n)\n"
	got = parseNodes(t, "go", goSrc, lang.Get("go").ModulesQuery())
	require.Equal(t, []string{`"fmt"`, `"strings"`}, got)
}

func TestConvertParentKind(t *testing.T) {
	language := lang.Get("ts")
	src := []byte("import { A } from \"a\";")
	tree, err := New(language).Parse(context.Background(), src)
	require.NoError(t, err)
	defer tree.Close()

	q, err := NewQuery(language.IdentifiersQuery(), language)
	require.NoError(t, err)

	nodes := q.Nodes(tree.RootNode(), src)
	require.Len(t, nodes, 1)
	require.Equal(t, "identifier", nodes[0].Kind)
	require.Equal(t, "import_specifier", nodes[0].ParentKind)
	require.Equal(t, 9, nodes[0].Start)
	require.Equal(t, 10, nodes[0].End)
}

func TestNewQueryInvalid(t *testing.T) {
	_, err := NewQuery("(not_a_node_type) @x", lang.Get("go"))
	require.Error(t, err)
}

func TestNodesSkipsInsertedNodes(t *testing.T) {
	language := lang.Get("go")
	src := []byte("package main\n\nfunc main() {\n\tx :=\n}\n")
	tree, err := New(language).Parse(context.Background(), src)
	require.NoError(t, err)
	defer tree.Close()
	require.True(t, tree.RootNode().HasError())

	q, err := NewQuery(language.IdentifiersQuery(), language)
	require.NoError(t, err)

	nodes := q.Nodes(tree.RootNode(), src)
	require.NotEmpty(t, nodes)
	for _, n := range nodes {
		require.Less(t, n.Start, n.End, "node %+v", n)
		require.NotEmpty(t, n.Text)
		require.Equal(t, string(src[n.Start:n.End]), n.Text)
	}
}
