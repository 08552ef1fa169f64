package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/arjunmahishi/codeview/theme"
	"github.com/arjunmahishi/codeview/types"
)

func testTheme() *theme.Theme {
	return &theme.Theme{Colors: map[string]string{theme.EditorForeground: "#24292E"}}
}

func TestLine(t *testing.T) {
	tokens := []types.Token{
		{Content: "const", Color: "#D73A49", FontStyle: types.FontStyle{Bold: true}},
		{Content: " ", Color: "#D73A49"},
		{Content: "a", Color: "#24292e"},
		{Content: " = ", Color: "#D73A49"},
		{Content: "1", Color: "#005CC5", HasError: true},
	}

	want := []Segment{
		{Kind: Styled, Text: "const", Color: "#D73A49", FontStyle: types.FontStyle{Bold: true}},
		{Kind: Plain, Text: " "},
		{Kind: Plain, Text: "a"},
		{Kind: Styled, Text: " = ", Color: "#D73A49"},
		{Kind: Styled, Text: "1", Color: "#005CC5", Error: true},
	}
	if diff := cmp.Diff(want, Line(tokens, testTheme())); diff != "" {
		t.Errorf("Line() mismatch (-want +got):\n%s", diff)
	}
}

func TestStream(t *testing.T) {
	lines := [][]types.Token{
		{{Content: "a", Color: "#24292E"}},
		nil,
		{{Content: "b", Color: "#ff0000"}},
	}

	got := Stream(lines, testTheme())
	require.Equal(t, []Segment{
		{Kind: Plain, Text: "a"},
		{Kind: Break},
		{Kind: Break},
		{Kind: Styled, Text: "b", Color: "#ff0000"},
	}, got)
	require.Equal(t, "a\n\nb", Text(got))

	require.Empty(t, Stream(nil, testTheme()))
	require.NotEqual(t, Break, Stream(lines[:1], testTheme())[0].Kind)
}

func TestStreamWithoutTheme(t *testing.T) {
	got := Stream([][]types.Token{{{Content: "x", Color: "#111111"}, {Content: "\t"}}}, nil)
	require.Len(t, got, 2)
	require.Equal(t, Styled, got[0].Kind)
	require.Equal(t, Plain, got[1].Kind)
}
