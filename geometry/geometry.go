// Package geometry converts analyzer offsets into layout boxes.
package geometry

import (
	"fmt"

	"github.com/arjunmahishi/codeview/types"
)

// Mode says how the analyzed text relates to the rendered text.
type Mode interface {
	// YOffset is the analyzed line number that renders at top == 0.
	YOffset() int
	String() string
}

// FullSource renders the analyzed text as-is.
type FullSource struct{}

func (FullSource) YOffset() int   { return 1 }
func (FullSource) String() string { return "full-source" }

// MarkupOnly renders only the markup that follows ImportLineCount
// synthetic import lines and one blank separator line.
type MarkupOnly struct {
	ImportLineCount int
}

func (m MarkupOnly) YOffset() int { return m.ImportLineCount + 2 }
func (m MarkupOnly) String() string {
	return fmt.Sprintf("markup-only(imports=%d)", m.ImportLineCount)
}

// IsMarkupOnly reports whether mode is a MarkupOnly variant.
func IsMarkupOnly(mode Mode) bool {
	_, ok := mode.(MarkupOnly)
	return ok
}

// LineResolver converts an absolute offset into a 1-based line and column.
type LineResolver interface {
	LineColumn(offset int) (line, column int)
}

// Mapper turns offsets into boxes for one document.
type Mapper struct {
	resolver   LineResolver
	yOffset    int
	lineHeight float64
}

// NewMapper creates a Mapper. A non-positive lineHeight uses types.LineHeight.
func NewMapper(resolver LineResolver, mode Mode, lineHeight float64) *Mapper {
	if lineHeight <= 0 {
		lineHeight = types.LineHeight
	}
	if mode == nil {
		mode = FullSource{}
	}
	return &Mapper{
		resolver:   resolver,
		yOffset:    mode.YOffset(),
		lineHeight: lineHeight,
	}
}

// Position returns the 1-based line and column of offset.
func (m *Mapper) Position(offset int) types.Position {
	line, col := m.resolver.LineColumn(offset)
	return types.Position{Line: line, Column: col}
}

// Box returns the box for a span starting at offset and covering width
// character cells.
func (m *Mapper) Box(offset, width int) types.PixelBox {
	pos := m.Position(offset)
	return types.PixelBox{
		Top:    float64(pos.Line-m.yOffset) * m.lineHeight,
		Left:   float64(pos.Column - 1),
		Width:  float64(width),
		Height: m.lineHeight,
	}
}

// LineHeight returns the line height the mapper was built with.
func (m *Mapper) LineHeight() float64 {
	return m.lineHeight
}

// Band returns the background band covering zero-based lines start..end.
func Band(r types.HighlightRange, lineHeight float64) types.PixelBox {
	return types.PixelBox{
		Top:    float64(r.Start) * lineHeight,
		Height: float64(r.End-r.Start+1) * lineHeight,
	}
}
