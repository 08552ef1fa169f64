// Package view assembles tokens, symbols, diagnostics and line ranges into
// one layered model for the presentation layer.
package view

import (
	"fmt"
	"sort"

	"github.com/arjunmahishi/codeview/geometry"
	"github.com/arjunmahishi/codeview/overlay"
	"github.com/arjunmahishi/codeview/ranges"
	"github.com/arjunmahishi/codeview/render"
	"github.com/arjunmahishi/codeview/theme"
	"github.com/arjunmahishi/codeview/types"
)

// OverlayKind identifies what an overlay shows.
type OverlayKind string

const (
	HighlightRange OverlayKind = "highlight-range"
	Diagnostic     OverlayKind = "diagnostic"
	SymbolHover    OverlayKind = "symbol-hover"
)

// Stacking layers, back to front. Token text is drawn at LayerText; symbol
// hover regions sit above it so they stay reachable.
const (
	LayerBands       = 0
	LayerDiagnostics = 1
	LayerText        = 2
	LayerSymbols     = 3
)

// DefaultTabSize is the tab width handed to the presentation layer.
const DefaultTabSize = 4

// Header is the optional filename row above the code.
type Header struct {
	Filename string `json:"filename"`
	Color    string `json:"color"`
	Border   string `json:"border,omitempty"`
}

// GutterRow is one line number.
type GutterRow struct {
	Number int     `json:"number"`
	Active bool    `json:"active"`
	Color  string  `json:"color"`
	Top    float64 `json:"top"`
}

// Symbol is the payload of a symbol-hover overlay: the analyzed text range
// it inspects and the diagnostics that cover it.
type Symbol struct {
	Start       int                `json:"start"`
	End         int                `json:"end"`
	Text        string             `json:"text"`
	Diagnostics []types.Diagnostic `json:"diagnostics,omitempty"`
	AutoOpen    bool               `json:"autoOpen"`
}

// Overlay is an absolutely positioned box. All overlays share the origin of
// the content box.
type Overlay struct {
	Kind  OverlayKind    `json:"kind"`
	Layer int            `json:"layer"`
	Box   types.PixelBox `json:"box"`

	Range      *types.HighlightRange `json:"range,omitempty"`
	Diagnostic *types.Diagnostic     `json:"diagnostic,omitempty"`
	Underline  *overlay.Underline    `json:"underline,omitempty"`
	Symbol     *Symbol               `json:"symbol,omitempty"`
}

// View is the composed model of one snippet.
type View struct {
	Header     *Header     `json:"header,omitempty"`
	Language   string      `json:"language"`
	Mode       string      `json:"mode"`
	Background string      `json:"background,omitempty"`
	Foreground string      `json:"foreground"`
	LineHeight float64     `json:"lineHeight"`
	TabSize    int         `json:"tabSize"`
	TextLayer  int         `json:"textLayer"`
	Gutter     []GutterRow `json:"gutter,omitempty"`
	Overlays   []Overlay   `json:"overlays"`

	// Lines is the number of rendered lines.
	Lines int `json:"lines"`

	// Segments is the token stream with a Break between lines.
	Segments []render.Segment `json:"segments"`
}

// Input is everything Assemble composes.
type Input struct {
	Filename     string
	ShowFilename bool
	Language     string

	// Tokens is the highlighter output, one slice per rendered line.
	Tokens [][]types.Token

	// Theme must define every theme.Required key.
	Theme *theme.Theme

	// Highlight is a range string such as "3,5-8".
	Highlight string

	// Row is an externally supplied active-row interval, 1-based inclusive.
	Row *types.HighlightRange

	// LineNumbers enables the gutter.
	LineNumbers bool

	Symbols     []types.SymbolBound
	Diagnostics []types.Diagnostic
	Decorations []overlay.Decoration
	ShowErrors  bool

	Mode       geometry.Mode
	LineHeight float64
	TabSize    int
}

// Assemble composes the view. A theme without a required color is the only
// error.
func Assemble(in Input) (*View, error) {
	if in.Theme == nil {
		return nil, fmt.Errorf("%w: %s", theme.ErrMissingColor, theme.EditorForeground)
	}
	if err := in.Theme.Validate(); err != nil {
		return nil, err
	}
	if in.LineHeight <= 0 {
		in.LineHeight = types.LineHeight
	}
	if in.TabSize <= 0 {
		in.TabSize = DefaultTabSize
	}
	if in.Mode == nil {
		in.Mode = geometry.FullSource{}
	}

	set := ranges.Parse(in.Highlight)
	v := &View{
		Language:   in.Language,
		Mode:       in.Mode.String(),
		Background: in.Theme.Background(),
		Foreground: in.Theme.Foreground(),
		LineHeight: in.LineHeight,
		TabSize:    in.TabSize,
		TextLayer:  LayerText,
		Overlays:   []Overlay{},
		Lines:      len(in.Tokens),
		Segments:   render.Stream(in.Tokens, in.Theme),
	}

	if in.ShowFilename && in.Filename != "" {
		v.Header = &Header{
			Filename: in.Filename,
			Color:    in.Theme.Foreground(),
			Border:   in.Theme.Border(),
		}
	}

	if in.LineNumbers {
		v.Gutter = gutter(len(in.Tokens), set, in.Row, in.Theme, in.LineHeight)
	}

	v.Overlays = append(v.Overlays, bands(set, in.LineHeight)...)
	v.Overlays = append(v.Overlays, diagnostics(in.Decorations)...)
	v.Overlays = append(v.Overlays, symbols(in.Symbols, in.Diagnostics, in.ShowErrors)...)
	sort.SliceStable(v.Overlays, func(i, j int) bool {
		return v.Overlays[i].Layer < v.Overlays[j].Layer
	})
	return v, nil
}

func gutter(n int, set ranges.Set, row *types.HighlightRange, th *theme.Theme, lineHeight float64) []GutterRow {
	rows := make([]GutterRow, n)
	for i := range rows {
		number := i + 1
		active := set.Contains(i) || (row != nil && row.Start <= number && number <= row.End)
		rows[i] = GutterRow{
			Number: number,
			Active: active,
			Color:  th.LineNumber(active),
			Top:    float64(i) * lineHeight,
		}
	}
	return rows
}

func bands(set ranges.Set, lineHeight float64) []Overlay {
	var out []Overlay
	for _, r := range set.Ranges() {
		out = append(out, Overlay{
			Kind:  HighlightRange,
			Layer: LayerBands,
			Box:   geometry.Band(r, lineHeight),
			Range: &r,
		})
	}
	return out
}

func diagnostics(decorations []overlay.Decoration) []Overlay {
	out := make([]Overlay, 0, len(decorations))
	for _, d := range decorations {
		out = append(out, Overlay{
			Kind:       Diagnostic,
			Layer:      LayerDiagnostics,
			Box:        d.PixelBox,
			Diagnostic: &d.Diagnostic,
			Underline:  &d.Underline,
		})
	}
	return out
}

func symbols(bounds []types.SymbolBound, diags []types.Diagnostic, showErrors bool) []Overlay {
	attached := overlay.Attach(bounds, diags, showErrors)
	out := make([]Overlay, 0, len(attached))
	for _, a := range attached {
		out = append(out, Overlay{
			Kind:  SymbolHover,
			Layer: LayerSymbols,
			Box:   a.Symbol.PixelBox,
			Symbol: &Symbol{
				Start:       a.Symbol.Start,
				End:         a.Symbol.End,
				Text:        a.Symbol.Text,
				Diagnostics: a.Diagnostics,
				AutoOpen:    a.AutoOpen,
			},
		})
	}
	return out
}
