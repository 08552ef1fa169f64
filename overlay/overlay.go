// Package overlay positions compiler diagnostics and associates them with
// symbol hover targets.
package overlay

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/arjunmahishi/codeview/geometry"
	"github.com/arjunmahishi/codeview/types"
)

// UnderlineHeight is the height of a diagnostic strip in layout units.
const UnderlineHeight = 3

// Source is the part of an analyzed document the builder reads.
type Source interface {
	geometry.LineResolver
	Text() string
}

// Underline places the visible strip inside a decoration's line box.
type Underline struct {
	// Offset is the distance from the top of the box to the strip.
	Offset float64 `json:"offset"`
	Height float64 `json:"height"`
}

// Decoration marks one diagnostic. The embedded box is the line box of the
// diagnostic's start offset, exactly as geometry.Mapper.Box computes it; its
// width is the span's cell width, at least one cell so that zero-length
// diagnostics stay visible. Underline says where the strip sits in the box.
type Decoration struct {
	Diagnostic types.Diagnostic `json:"diagnostic"`
	types.PixelBox
	Underline Underline `json:"underline"`
}

// Decorations places one underline per diagnostic. Multi-line diagnostics
// are drawn on their start line only, up to the end of that line.
func Decorations(src Source, diags []types.Diagnostic, mode geometry.Mode, lineHeight float64) []Decoration {
	if src == nil || len(diags) == 0 {
		return nil
	}

	mapper := geometry.NewMapper(src, mode, lineHeight)
	strip := Underline{
		Offset: mapper.LineHeight() - UnderlineHeight,
		Height: UnderlineHeight,
	}
	text := src.Text()
	out := make([]Decoration, 0, len(diags))
	for _, d := range diags {
		out = append(out, Decoration{
			Diagnostic: d,
			PixelBox:   mapper.Box(d.Start, spanWidth(text, d.Start, d.Length)),
			Underline:  strip,
		})
	}
	return out
}

// spanWidth measures the first line of text[start:start+length] in cells.
// Zero-length diagnostics still get one cell so they stay visible.
func spanWidth(text string, start, length int) int {
	if start < 0 {
		start = 0
	}
	if start > len(text) {
		start = len(text)
	}
	end := start + length
	if end > len(text) {
		end = len(text)
	}
	if end < start {
		end = start
	}

	span := text[start:end]
	if i := strings.IndexByte(span, '\n'); i >= 0 {
		span = span[:i]
	}
	w := runewidth.StringWidth(span)
	if w < 1 {
		w = 1
	}
	return w
}

// Covering returns the diagnostics whose span contains offset. Both ends
// are inclusive: start <= offset <= start+length.
func Covering(diags []types.Diagnostic, offset int) []types.Diagnostic {
	var out []types.Diagnostic
	for _, d := range diags {
		if d.Start <= offset && offset <= d.End() {
			out = append(out, d)
		}
	}
	return out
}

// SymbolDiagnostics pairs a symbol with the diagnostics covering it.
type SymbolDiagnostics struct {
	Symbol      types.SymbolBound  `json:"symbol"`
	Diagnostics []types.Diagnostic `json:"diagnostics,omitempty"`
	AutoOpen    bool               `json:"autoOpen"`
}

// Attach computes the covering subset for every bound. AutoOpen is set when
// the subset is non-empty and showErrors is true.
func Attach(bounds []types.SymbolBound, diags []types.Diagnostic, showErrors bool) []SymbolDiagnostics {
	out := make([]SymbolDiagnostics, 0, len(bounds))
	for _, b := range bounds {
		covering := Covering(diags, b.Start)
		out = append(out, SymbolDiagnostics{
			Symbol:      b,
			Diagnostics: covering,
			AutoOpen:    showErrors && len(covering) > 0,
		})
	}
	return out
}
