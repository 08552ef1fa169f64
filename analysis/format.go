package analysis

import (
	"go/format"
	"strings"

	"github.com/arjunmahishi/codeview/lang"
)

// FormatOptions controls reformatting.
type FormatOptions struct {
	// Disabled skips formatting entirely.
	Disabled bool

	// IndentSize is the number of spaces a leading tab becomes.
	IndentSize int

	// ConvertTabsToSpaces replaces leading tabs with IndentSize spaces.
	ConvertTabsToSpaces bool

	// TrimTrailingWhitespace strips spaces and tabs at line ends.
	TrimTrailingWhitespace bool
}

// DefaultFormatOptions returns the formatting used when none is configured.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		IndentSize:             2,
		ConvertTabsToSpaces:    true,
		TrimTrailingWhitespace: true,
	}
}

// formatText reformats text. Go source goes through gofmt, falling back to
// whitespace cleanup when it does not parse; other languages only get
// whitespace cleanup.
func formatText(language lang.Language, text string, opts FormatOptions) string {
	if opts.Disabled {
		return text
	}
	if language != nil && language.Name() == "go" {
		if out, err := format.Source([]byte(text)); err == nil {
			return string(out)
		}
		opts.ConvertTabsToSpaces = false
	}
	return normalizeWhitespace(text, opts)
}

func normalizeWhitespace(text string, opts FormatOptions) string {
	indent := opts.IndentSize
	if indent <= 0 {
		indent = 2
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if opts.ConvertTabsToSpaces {
			body := strings.TrimLeft(line, "\t")
			tabs := len(line) - len(body)
			if tabs > 0 {
				line = strings.Repeat(" ", tabs*indent) + body
			}
		}
		if opts.TrimTrailingWhitespace {
			line = strings.TrimRight(line, " \t")
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
