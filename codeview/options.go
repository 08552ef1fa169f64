package codeview

import (
	"github.com/charmbracelet/log"

	"github.com/arjunmahishi/codeview/analysis"
	"github.com/arjunmahishi/codeview/highlight"
	"github.com/arjunmahishi/codeview/theme"
	"github.com/arjunmahishi/codeview/types"
)

// Options configures New.
type Options struct {
	// Project is the shared document table.
	// If nil, a new project is created.
	Project *analysis.Project

	// Declarations resolves missing imports.
	// If nil, no imports are added.
	Declarations *analysis.DeclarationLoader

	// Highlighter produces tokens.
	// If nil, chroma is used with Theme's token style, and request themes
	// get their own.
	Highlighter highlight.Highlighter

	// Theme is used when a request does not carry one.
	// If nil, the theme derived from the "github" chroma style is used.
	Theme *theme.Theme

	// LineHeight is the height of one line in layout units.
	// If 0, types.LineHeight is used.
	LineHeight float64

	// TabSize is handed to the presentation layer.
	// If 0, view.DefaultTabSize is used.
	TabSize int

	// ShowErrors is the default for requests that leave it unset.
	ShowErrors bool

	// LineNumbers enables the gutter.
	LineNumbers bool

	// Format controls reformatting of analyzed snippets.
	Format analysis.FormatOptions

	// Logger receives debug output. If nil, the logger from the request
	// context is used.
	Logger *log.Logger
}

// Request describes one snippet to render. Exactly one of Value and Source
// must be set.
type Request struct {
	// Value is the literal snippet text.
	Value string

	// Source is a path to read the snippet from.
	Source string

	// Filename is the virtual filename the snippet is registered under.
	// If empty, Source is used, or a unique name is generated.
	Filename string

	// Language is a language tag or alias. If empty, it is detected from
	// the filename and content.
	Language string

	// Highlight is a range string such as "3,5-8".
	Highlight string

	// Row marks an active row interval, 1-based inclusive.
	Row *types.HighlightRange

	// ShowErrors overrides Options.ShowErrors when set.
	ShowErrors *bool

	// ShowFilename adds the filename header.
	ShowFilename bool

	// Theme overrides Options.Theme when set.
	Theme *theme.Theme
}

// FilesOptions configures RenderFiles.
type FilesOptions struct {
	// Path is the root directory to scan for files.
	// If empty, current directory is used.
	Path string

	// Highlight is applied to every file.
	Highlight string

	// Jobs is the number of parallel workers.
	// If 0, defaults to number of CPUs.
	Jobs int

	// MaxBytes skips files larger than this size.
	// If 0, no size limit is enforced.
	MaxBytes int64
}
