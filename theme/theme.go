// Package theme maps semantic color roles to colors.
package theme

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"gopkg.in/yaml.v3"
)

// Color role keys.
const (
	EditorForeground           = "editor.foreground"
	EditorBackground           = "editor.background"
	LineNumberForeground       = "editorLineNumber.foreground"
	LineNumberActiveForeground = "editorLineNumber.activeForeground"
	ContrastBorder             = "contrastBorder"
)

// Required lists the keys a theme must define.
var Required = []string{EditorForeground}

// ErrMissingColor is returned when a required color key is absent.
var ErrMissingColor = errors.New("theme is missing a required color")

// DefaultBase is the chroma style used for token colors when a theme names
// none.
const DefaultBase = "github"

// Theme is a named set of color roles.
type Theme struct {
	Name string `json:"name" yaml:"name"`

	// Base names the chroma style that colors tokens.
	Base string `json:"base,omitempty" yaml:"base"`

	Colors map[string]string `json:"colors" yaml:"colors"`
}

// Validate reports the first missing required key.
func (t *Theme) Validate() error {
	for _, key := range Required {
		if t.Colors[key] == "" {
			return fmt.Errorf("%w: %s", ErrMissingColor, key)
		}
	}
	return nil
}

// Color returns the color for key, or "" when unset.
func (t *Theme) Color(key string) string {
	if t == nil {
		return ""
	}
	return t.Colors[key]
}

// Foreground returns editor.foreground.
func (t *Theme) Foreground() string {
	return t.Color(EditorForeground)
}

// Background returns editor.background.
func (t *Theme) Background() string {
	return t.Color(EditorBackground)
}

// LineNumber returns the gutter color for a row, falling back to the
// editor foreground when the theme does not set line number colors.
func (t *Theme) LineNumber(active bool) string {
	key := LineNumberForeground
	if active {
		key = LineNumberActiveForeground
	}
	if c := t.Color(key); c != "" {
		return c
	}
	return t.Foreground()
}

// Border returns contrastBorder, or "" when unset.
func (t *Theme) Border() string {
	return t.Color(ContrastBorder)
}

// IsForeground reports whether color equals editor.foreground, ignoring case.
func (t *Theme) IsForeground(color string) bool {
	fg := t.Foreground()
	return fg != "" && strings.EqualFold(fg, color)
}

// FromStyle derives a theme from a chroma style.
func FromStyle(name string) (*Theme, error) {
	style, ok := styles.Registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown style %q", name)
	}
	return fromChroma(style), nil
}

func fromChroma(style *chroma.Style) *Theme {
	t := &Theme{Name: style.Name, Base: style.Name, Colors: make(map[string]string)}

	bg := style.Get(chroma.Background)
	if bg.Colour.IsSet() {
		t.Colors[EditorForeground] = bg.Colour.String()
	} else {
		t.Colors[EditorForeground] = "#000000"
	}
	if bg.Background.IsSet() {
		t.Colors[EditorBackground] = bg.Background.String()
	}

	if ln := style.Get(chroma.LineNumbers); ln.Colour.IsSet() {
		t.Colors[LineNumberForeground] = ln.Colour.String()
	}
	t.Colors[LineNumberActiveForeground] = t.Colors[EditorForeground]

	if hl := style.Get(chroma.LineHighlight); hl.Background.IsSet() {
		t.Colors[ContrastBorder] = hl.Background.String()
	}
	return t
}

// Load reads a theme file. The file is YAML or JSON with a "colors" map,
// the same shape editor color themes use.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}

	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", path, err)
	}
	if t.Colors == nil {
		t.Colors = make(map[string]string)
	}
	if t.Name == "" {
		t.Name = path
	}
	if t.Base == "" {
		t.Base = DefaultBase
	}
	return &t, nil
}

// Names lists the built-in style names usable with FromStyle.
func Names() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Style returns the chroma style that colors tokens for t: the Base style
// with its default text color set to editor.foreground, so that unstyled
// tokens come out in the foreground color. An unknown Base uses chroma's
// fallback style.
func (t *Theme) Style() *chroma.Style {
	if t == nil {
		return styles.Fallback
	}
	base := styles.Get(t.Base)
	fg := chroma.ParseColour(t.Foreground())
	if !fg.IsSet() {
		return base
	}

	entry := base.Get(chroma.Background)
	entry.Colour = fg
	style, err := base.Builder().AddEntry(chroma.Background, entry).Build()
	if err != nil {
		return base
	}
	return style
}
