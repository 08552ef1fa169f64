// Package lang holds the languages codeview can analyze.
package lang

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-enry/go-enry/v2"
	sitter "github.com/smacker/go-tree-sitter"
)

// Language defines the interface for an analyzable language.
type Language interface {
	// Name returns the canonical language tag (e.g., "go", "tsx").
	Name() string

	// Aliases returns extra tags that resolve to this language (e.g., "ts").
	Aliases() []string

	// Extensions returns file extensions for this language (e.g., [".go"]).
	Extensions() []string

	// TreeSitterLang returns the tree-sitter language grammar.
	TreeSitterLang() *sitter.Language

	// IdentifiersQuery captures every identifier node as @ident.
	IdentifiersQuery() string

	// ModulesQuery captures the module specifier of every import declaration.
	ModulesQuery() string

	// LexerName is the highlighter lexer used for this language.
	LexerName() string

	// SupportsMarkup reports whether snippets may be bare markup expressions.
	SupportsMarkup() bool
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Language)
	aliases  = make(map[string]string)
)

// Register adds a language to the registry.
// This is typically called from init() functions in language implementation files.
func Register(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	registry[lang.Name()] = lang
	for _, a := range lang.Aliases() {
		aliases[a] = lang.Name()
	}
}

// Get returns a language by tag or alias, or nil if not found.
func Get(name string) Language {
	mu.RLock()
	defer mu.RUnlock()
	name = strings.ToLower(strings.TrimSpace(name))
	if l, ok := registry[name]; ok {
		return l
	}
	if canonical, ok := aliases[name]; ok {
		return registry[canonical]
	}
	return nil
}

// List returns all registered language names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByExtension finds a language by file extension.
func ByExtension(ext string) Language {
	mu.RLock()
	defer mu.RUnlock()
	ext = strings.ToLower(ext)
	for _, lang := range registry {
		for _, e := range lang.Extensions() {
			if e == ext {
				return lang
			}
		}
	}
	return nil
}

// Detect guesses a language tag for a file. Registered extensions win;
// otherwise go-enry classifies by name and content. The result may name a
// language that is not registered, which is still usable for highlighting.
func Detect(filename string, content []byte) string {
	if l := ByExtension(filepath.Ext(filename)); l != nil {
		return l.Name()
	}
	detected := enry.GetLanguage(filepath.Base(filename), content)
	if detected == "" {
		return "text"
	}
	tag := strings.ToLower(detected)
	if l := Get(tag); l != nil {
		return l.Name()
	}
	return tag
}

// Extension returns the preferred file extension for a language tag, used
// when a virtual filename has to be generated.
func Extension(tag string) string {
	if l := Get(tag); l != nil && len(l.Extensions()) > 0 {
		return l.Extensions()[0]
	}
	if tag == "" {
		return ".txt"
	}
	return "." + strings.ToLower(tag)
}
