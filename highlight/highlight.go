// Package highlight turns source text into per-line styled tokens.
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/theme"
	"github.com/arjunmahishi/codeview/types"
)

// Highlighter produces the token grid for a snippet.
type Highlighter interface {
	// Highlight tokenizes text. When doc is non-nil, tokens that overlap one
	// of its diagnostics are marked HasError. In markup-only mode text is the
	// rendered part of doc's analyzed text.
	Highlight(text, language string, doc Annotated, markupOnly bool) ([][]types.Token, error)
}

// Annotated is the part of an analyzed document the highlighter reads.
type Annotated interface {
	Diagnostics() []types.Diagnostic
	RenderedStart() int
}

// Chroma highlights with chroma lexers and a chroma style.
type Chroma struct {
	Style *chroma.Style
}

// New returns a Chroma highlighter coloring tokens for th. Tokens the style
// leaves uncolored get th's editor.foreground.
func New(th *theme.Theme) *Chroma {
	return &Chroma{Style: th.Style()}
}

var _ Highlighter = (*Chroma)(nil)

// Highlight implements Highlighter.
func (c *Chroma) Highlight(text, language string, doc Annotated, markupOnly bool) ([][]types.Token, error) {
	style := c.Style
	if style == nil {
		style = styles.Fallback
	}

	it, err := Lexer(language).Tokenise(nil, text)
	if err != nil {
		return nil, fmt.Errorf("tokenise %s: %w", language, err)
	}

	var (
		diags []types.Diagnostic
		base  int
	)
	if doc != nil {
		diags = doc.Diagnostics()
		if markupOnly {
			base = doc.RenderedStart()
		}
	}

	fg := Foreground(style)
	lines := make([][]types.Token, 1, strings.Count(text, "\n")+1)
	offset := base
	for _, tok := range it.Tokens() {
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
				offset++
			}
			if part == "" {
				continue
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], token(style, fg, tok.Type, part, offset, diags))
			offset += len(part)
		}
	}

	// Lexers may append a newline; keep exactly one line per source line and
	// drop the empty line after a final newline.
	want := strings.Count(text, "\n") + 1
	if strings.HasSuffix(text, "\n") && want > 1 {
		want--
	}
	if len(lines) > want {
		lines = lines[:want]
	}
	return lines, nil
}

// Lexer returns the chroma lexer for a language tag or alias, falling back
// to plain text.
func Lexer(language string) chroma.Lexer {
	name := language
	if l := lang.Get(language); l != nil {
		name = l.LexerName()
	}
	lexer := lexers.Get(name)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// Foreground is the default text color of a style, black when the style
// leaves it unset.
func Foreground(style *chroma.Style) string {
	if bg := style.Get(chroma.Background); bg.Colour.IsSet() {
		return bg.Colour.String()
	}
	return "#000000"
}

func token(style *chroma.Style, fg string, tt chroma.TokenType, content string, offset int, diags []types.Diagnostic) types.Token {
	entry := style.Get(tt)
	t := types.Token{
		Content: content,
		Color:   fg,
		FontStyle: types.FontStyle{
			Bold:      entry.Bold == chroma.Yes,
			Italic:    entry.Italic == chroma.Yes,
			Underline: entry.Underline == chroma.Yes,
		},
		HasError: overlaps(offset, offset+len(content), diags),
	}
	if entry.Colour.IsSet() {
		t.Color = entry.Colour.String()
	}
	return t
}

// overlaps reports whether [start, end) intersects a diagnostic span. A
// zero-length diagnostic marks the token it sits in.
func overlaps(start, end int, diags []types.Diagnostic) bool {
	for _, d := range diags {
		dEnd := d.End()
		if d.Length == 0 {
			dEnd = d.Start + 1
		}
		if start < dEnd && d.Start < end {
			return true
		}
	}
	return false
}
