package lang

import (
	_ "embed"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

//go:embed queries/go/identifiers.scm
var goIdentifiersQuery string

//go:embed queries/go/modules.scm
var goModulesQuery string

//go:embed queries/typescript/identifiers.scm
var tsIdentifiersQuery string

//go:embed queries/typescript/modules.scm
var tsModulesQuery string

//go:embed queries/javascript/identifiers.scm
var jsIdentifiersQuery string

//go:embed queries/javascript/modules.scm
var jsModulesQuery string

func init() {
	Register(&Go{})
	Register(&TypeScript{})
	Register(&TSX{})
	Register(&JavaScript{})
}

// Go implements the Language interface for Go source code.
type Go struct{}

func (g *Go) Name() string                     { return "go" }
func (g *Go) Aliases() []string                { return []string{"golang"} }
func (g *Go) Extensions() []string             { return []string{".go"} }
func (g *Go) TreeSitterLang() *sitter.Language { return golang.GetLanguage() }
func (g *Go) IdentifiersQuery() string         { return goIdentifiersQuery }
func (g *Go) ModulesQuery() string             { return goModulesQuery }
func (g *Go) LexerName() string                { return "go" }
func (g *Go) SupportsMarkup() bool             { return false }

// TypeScript implements the Language interface for .ts files.
type TypeScript struct{}

func (t *TypeScript) Name() string                     { return "typescript" }
func (t *TypeScript) Aliases() []string                { return []string{"ts", "mts", "cts"} }
func (t *TypeScript) Extensions() []string             { return []string{".ts", ".mts", ".cts"} }
func (t *TypeScript) TreeSitterLang() *sitter.Language { return typescript.GetLanguage() }
func (t *TypeScript) IdentifiersQuery() string         { return tsIdentifiersQuery }
func (t *TypeScript) ModulesQuery() string             { return tsModulesQuery }
func (t *TypeScript) LexerName() string                { return "typescript" }
func (t *TypeScript) SupportsMarkup() bool             { return false }

// TSX is TypeScript with JSX markup.
type TSX struct{}

func (t *TSX) Name() string                     { return "tsx" }
func (t *TSX) Aliases() []string                { return nil }
func (t *TSX) Extensions() []string             { return []string{".tsx"} }
func (t *TSX) TreeSitterLang() *sitter.Language { return tsx.GetLanguage() }
func (t *TSX) IdentifiersQuery() string         { return tsIdentifiersQuery }
func (t *TSX) ModulesQuery() string             { return tsModulesQuery }
func (t *TSX) LexerName() string                { return "tsx" }
func (t *TSX) SupportsMarkup() bool             { return true }

// JavaScript covers .js and .jsx; the grammar parses JSX.
type JavaScript struct{}

func (j *JavaScript) Name() string                     { return "javascript" }
func (j *JavaScript) Aliases() []string                { return []string{"js", "jsx", "mjs", "cjs"} }
func (j *JavaScript) Extensions() []string             { return []string{".js", ".jsx", ".mjs", ".cjs"} }
func (j *JavaScript) TreeSitterLang() *sitter.Language { return javascript.GetLanguage() }
func (j *JavaScript) IdentifiersQuery() string         { return jsIdentifiersQuery }
func (j *JavaScript) ModulesQuery() string             { return jsModulesQuery }
func (j *JavaScript) LexerName() string                { return "javascript" }
func (j *JavaScript) SupportsMarkup() bool             { return true }
