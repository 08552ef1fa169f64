// Package types defines shared data types for codeview.
package types

// LineHeight is the default height of one rendered line in layout units.
const LineHeight = 20

// Position represents a 1-based line and column in a source file.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// PixelBox is a rectangle in layout space. Vertical units are line-height
// units, horizontal units are monospace character cells.
type PixelBox struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FontStyle carries the non-color styling of a token.
type FontStyle struct {
	Bold      bool `json:"bold,omitempty"`
	Italic    bool `json:"italic,omitempty"`
	Underline bool `json:"underline,omitempty"`
}

// IsZero reports whether no font styling is set.
func (f FontStyle) IsZero() bool {
	return !f.Bold && !f.Italic && !f.Underline
}

// Token is one highlighted run of text on a single line.
type Token struct {
	Content   string    `json:"content"`
	Color     string    `json:"color"`
	FontStyle FontStyle `json:"fontStyle"`
	HasError  bool      `json:"hasError,omitempty"`
}

// Node is a syntax node reported by the analyzer. Offsets are byte offsets
// into the analyzed text; End is exclusive.
type Node struct {
	Kind       string `json:"kind"`
	ParentKind string `json:"parentKind"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Text       string `json:"text"`
}

// Diagnostic is a compiler-reported issue covering [Start, Start+Length).
type Diagnostic struct {
	Start   int    `json:"start"`
	Length  int    `json:"length"`
	Message string `json:"message"`
}

// End returns the exclusive end offset of the diagnostic span.
func (d Diagnostic) End() int {
	return d.Start + d.Length
}

// SymbolBound is the hover target for one identifier or import specifier.
type SymbolBound struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
	PixelBox
}

// HighlightRange is an inclusive line interval.
type HighlightRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}
