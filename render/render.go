// Package render lays out highlighted tokens as a stream of text segments.
package render

import (
	"strings"
	"unicode"

	"github.com/arjunmahishi/codeview/types"
)

// Kind tells the presentation layer how to draw a segment.
type Kind string

const (
	// Plain is unstyled text.
	Plain Kind = "plain"

	// Styled is text wrapped in a color and font style.
	Styled Kind = "styled"

	// Break ends a line.
	Break Kind = "break"
)

// Segment is one drawable piece of the token stream.
type Segment struct {
	Kind      Kind            `json:"kind"`
	Text      string          `json:"text,omitempty"`
	Color     string          `json:"color,omitempty"`
	FontStyle types.FontStyle `json:"fontStyle,omitempty"`
	Error     bool            `json:"error,omitempty"`
}

// Foreground decides whether a color is the editor's default text color.
type Foreground interface {
	IsForeground(color string) bool
}

// Line renders the tokens of one line. Tokens in the default foreground color
// and whitespace-only tokens become plain text; everything else is styled,
// with Error set for tokens under a diagnostic.
func Line(tokens []types.Token, fg Foreground) []Segment {
	out := make([]Segment, 0, len(tokens))
	for _, tok := range tokens {
		if isPlain(tok, fg) {
			out = append(out, Segment{Kind: Plain, Text: tok.Content})
			continue
		}
		out = append(out, Segment{
			Kind:      Styled,
			Text:      tok.Content,
			Color:     tok.Color,
			FontStyle: tok.FontStyle,
			Error:     tok.HasError,
		})
	}
	return out
}

// Stream renders all lines into one segment sequence, joined by Break
// segments. There is no break after the last line.
func Stream(lines [][]types.Token, fg Foreground) []Segment {
	var out []Segment
	for i, l := range lines {
		if i > 0 {
			out = append(out, Segment{Kind: Break})
		}
		out = append(out, Line(l, fg)...)
	}
	return out
}

// Text reassembles the plain text of a segment stream.
func Text(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		if s.Kind == Break {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func isPlain(tok types.Token, fg Foreground) bool {
	if fg != nil && fg.IsForeground(tok.Color) {
		return true
	}
	return strings.TrimFunc(tok.Content, unicode.IsSpace) == ""
}
