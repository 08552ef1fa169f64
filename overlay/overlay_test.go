package overlay

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/arjunmahishi/codeview/geometry"
	"github.com/arjunmahishi/codeview/types"
)

type textSource string

func (s textSource) Text() string { return string(s) }

func (s textSource) LineColumn(offset int) (int, int) {
	before := string(s)[:offset]
	return strings.Count(before, "\n") + 1, offset - strings.LastIndex(before, "\n")
}

func TestCovering(t *testing.T) {
	diags := []types.Diagnostic{{Start: 10, Length: 10, Message: "bad"}}

	require.Len(t, Covering(diags, 15), 1)
	require.Empty(t, Covering(diags, 25))
	require.Len(t, Covering(diags, 10), 1, "start is inclusive")
	require.Len(t, Covering(diags, 20), 1, "end is inclusive")
	require.Empty(t, Covering(diags, 9))
	require.Empty(t, Covering(nil, 0))
}

func TestAttach(t *testing.T) {
	diags := []types.Diagnostic{
		{Start: 10, Length: 10, Message: "first"},
		{Start: 12, Length: 2, Message: "second"},
	}
	bounds := []types.SymbolBound{{Start: 12}, {Start: 15}, {Start: 25}}

	got := Attach(bounds, diags, true)
	require.Len(t, got, 3)
	require.Len(t, got[0].Diagnostics, 2)
	require.True(t, got[0].AutoOpen)
	require.Len(t, got[1].Diagnostics, 1)
	require.Equal(t, "first", got[1].Diagnostics[0].Message)
	require.Empty(t, got[2].Diagnostics)
	require.False(t, got[2].AutoOpen)

	hidden := Attach(bounds, diags, false)
	require.Len(t, hidden[0].Diagnostics, 2)
	require.False(t, hidden[0].AutoOpen)
}

func TestDecorations(t *testing.T) {
	src := textSource("let x = 1\nfoo(bar,\n  baz)")
	diags := []types.Diagnostic{
		{Start: 4, Length: 1, Message: "x"},
		{Start: 10, Length: 16, Message: "multi-line"},
		{Start: 9, Length: 0, Message: "empty"},
	}

	got := Decorations(src, diags, geometry.FullSource{}, 20)
	strip := Underline{Offset: 17, Height: UnderlineHeight}
	want := []Decoration{
		{Diagnostic: diags[0], PixelBox: types.PixelBox{Top: 0, Left: 4, Width: 1, Height: 20}, Underline: strip},
		{Diagnostic: diags[1], PixelBox: types.PixelBox{Top: 20, Left: 0, Width: 8, Height: 20}, Underline: strip},
		{Diagnostic: diags[2], PixelBox: types.PixelBox{Top: 0, Left: 9, Width: 1, Height: 20}, Underline: strip},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decorations mismatch (-want +got):\n%s", diff)
	}
}

func TestDecorationsMarkupOnly(t *testing.T) {
	src := textSource("import { A } from \"a\";\n\n<A b={c} />")
	start := strings.Index(string(src), "c")
	got := Decorations(src, []types.Diagnostic{{Start: start, Length: 1}}, geometry.MarkupOnly{ImportLineCount: 1}, 20)
	require.Len(t, got, 1)
	require.Equal(t, float64(0), got[0].Top)
	require.Equal(t, float64(6), got[0].Left)
}

// A decoration's box is the mapper's box for the diagnostic start; only the
// underline strip moves inside it.
func TestDecorationsShareSymbolGeometry(t *testing.T) {
	src := textSource("const a = ;
let b = c")
	diags := []types.Diagnostic{
		{Start: 10, Length: 1, Message: "Unexpected token."},
		{Start: 20, Length: 1, Message: "c"},
	}

	mapper := geometry.NewMapper(src, geometry.FullSource{}, 24)
	got := Decorations(src, diags, geometry.FullSource{}, 24)
	require.Len(t, got, 2)
	for i, d := range diags {
		require.Equal(t, mapper.Box(d.Start, 1), got[i].PixelBox)
		require.Equal(t, Underline{Offset: 21, Height: UnderlineHeight}, got[i].Underline)
	}
	require.Equal(t, float64(0), got[0].Top)
	require.Equal(t, float64(24), got[1].Top)
}

func TestDecorationsClampsOutOfRange(t *testing.T) {
	src := textSource("ab")
	got := Decorations(src, []types.Diagnostic{{Start: 1, Length: 50}}, nil, 20)
	require.Len(t, got, 1)
	require.Equal(t, float64(1), got[0].Width)
	require.Nil(t, Decorations(src, nil, nil, 20))
}
