package codeview

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunmahishi/codeview/config"
	"github.com/arjunmahishi/codeview/logging"
	"github.com/arjunmahishi/codeview/render"
	"github.com/arjunmahishi/codeview/theme"
	"github.com/arjunmahishi/codeview/types"
	"github.com/arjunmahishi/codeview/view"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(Options{Logger: logging.Discard()})
	require.NoError(t, err)
	return r
}

func TestRenderSourceValidation(t *testing.T) {
	r := newRenderer(t)
	ctx := context.Background()

	_, err := r.Render(ctx, Request{})
	require.ErrorIs(t, err, ErrNoSource)

	_, err = r.Render(ctx, Request{Value: "x", Source: "x.ts"})
	require.ErrorIs(t, err, ErrAmbiguousSource)

	_, err = r.Render(ctx, Request{Source: filepath.Join(t.TempDir(), "missing.ts")})
	require.ErrorContains(t, err, "read source")
}

func TestRenderThemeValidation(t *testing.T) {
	r := newRenderer(t)

	_, err := r.Render(context.Background(), Request{
		Value: "let a = 1",
		Theme: &theme.Theme{Colors: map[string]string{theme.EditorBackground: "#fff"}},
	})
	require.ErrorIs(t, err, theme.ErrMissingColor)

	_, err = New(Options{Theme: &theme.Theme{}})
	require.ErrorIs(t, err, theme.ErrMissingColor)
}

func TestRenderFileTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "night.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colors:\n  editor.foreground: \"#112233\"\n"), 0644))
	th, err := theme.Load(path)
	require.NoError(t, err)

	r := newRenderer(t)
	res, err := r.Render(context.Background(), Request{Value: "let a = 1", Language: "ts", Theme: th})
	require.NoError(t, err)
	require.Equal(t, "#112233", res.View.Foreground)

	found := false
	for _, seg := range res.View.Segments {
		if strings.TrimSpace(seg.Text) == "a" {
			found = true
			require.Equal(t, render.Plain, seg.Kind)
		}
	}
	require.True(t, found)
}

func TestRenderEndToEnd(t *testing.T) {
	r := newRenderer(t)

	res, err := r.Render(context.Background(), Request{
		Value:     "const a = 1",
		Language:  "ts",
		Highlight: "1",
	})
	require.NoError(t, err)
	require.True(t, res.Analyzed)
	require.Equal(t, "typescript", res.Language)
	require.True(t, strings.HasPrefix(res.Filename, "snippet-"))
	require.True(t, strings.HasSuffix(res.Filename, ".ts"))

	v := res.View
	require.Equal(t, 1, v.Lines)

	var bands, hovers []view.Overlay
	for _, o := range v.Overlays {
		switch o.Kind {
		case view.HighlightRange:
			bands = append(bands, o)
		case view.SymbolHover:
			hovers = append(hovers, o)
		}
	}
	require.Len(t, bands, 1)
	require.Equal(t, types.PixelBox{Top: 0, Height: 20}, bands[0].Box)
	require.Len(t, hovers, 1)
	require.Equal(t, "a", hovers[0].Symbol.Text)
}

func TestRenderGeneratesUniqueFilenames(t *testing.T) {
	r := newRenderer(t)
	seen := make(map[string]bool)
	for range 5 {
		res, err := r.Render(context.Background(), Request{Value: "let x = 1", Language: "typescript"})
		require.NoError(t, err)
		require.False(t, seen[res.Filename], res.Filename)
		seen[res.Filename] = true
	}
	require.Equal(t, 5, r.Project().Len())
}

func TestRenderFromSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\r\n\r\nfunc main() {}\r\n"), 0644))

	r := newRenderer(t)
	res, err := r.Render(context.Background(), Request{Source: path, ShowFilename: true})
	require.NoError(t, err)
	require.Equal(t, "go", res.Language)
	require.Equal(t, path, res.Filename)
	require.NotNil(t, res.View.Header)
	require.Equal(t, path, res.View.Header.Filename)
	require.Equal(t, 3, res.View.Lines)
}

func TestRenderFilenameLanguageMismatch(t *testing.T) {
	r := newRenderer(t)
	res, err := r.Render(context.Background(), Request{
		Value:    "<A />",
		Filename: "Example",
		Language: "tsx",
	})
	require.NoError(t, err)
	require.Equal(t, "Example", res.Filename)
	require.Equal(t, "markup-only(imports=0)", res.View.Mode)

	_, ok := r.Project().Get("Example.tsx")
	require.True(t, ok)
}

func TestAnalyzeHighlightOnly(t *testing.T) {
	r := newRenderer(t)
	a, err := r.Analyze(context.Background(), Request{Value: "print(1)", Language: "Python"})
	require.NoError(t, err)
	require.False(t, a.Analyzed)
	require.Equal(t, "python", a.Language)
	require.Empty(t, a.Symbols)
	require.Empty(t, a.Diagnostics)
	require.Zero(t, r.Project().Len())
}

func TestAnalyzeIdempotent(t *testing.T) {
	r := newRenderer(t)
	req := Request{Value: "<div>\n  <Missing />\n</div>", Filename: "same.tsx"}

	first, err := r.Analyze(context.Background(), req)
	require.NoError(t, err)
	second, err := r.Analyze(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, first.Symbols, second.Symbols)
	require.Equal(t, first.Diagnostics, second.Diagnostics)
	require.Len(t, first.Diagnostics, 1)
}

func TestSymbolsAndDiagnostics(t *testing.T) {
	r := newRenderer(t)
	ctx := context.Background()

	bounds, err := r.Symbols(ctx, Request{Value: "let a = b", Language: "js"})
	require.NoError(t, err)
	require.Len(t, bounds, 2)
	require.Equal(t, "a", bounds[0].Text)
	require.Equal(t, "b", bounds[1].Text)

	diags, err := r.Diagnostics(ctx, Request{Value: "<X />", Language: "jsx"})
	require.NoError(t, err)
	require.Equal(t, []types.Diagnostic{{Start: 2, Length: 1, Message: "Cannot find name 'X'."}}, diags)
}

func TestConcurrentRendersSameFilename(t *testing.T) {
	r := newRenderer(t)
	texts := []string{"let a = 1", "let bb = 2", "let ccc = 3"}

	var wg sync.WaitGroup
	for i := range 12 {
		wg.Add(1)
		go func(text string) {
			defer wg.Done()
			res, err := r.Render(context.Background(), Request{Value: text, Filename: "shared.ts"})
			assert.NoError(t, err)
			// Each render reads its own snapshot even though the table entry
			// is overwritten concurrently.
			assert.Equal(t, text, render.Text(res.View.Segments))
		}(texts[i%len(texts)])
	}
	wg.Wait()

	require.Equal(t, 1, r.Project().Len())
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Theme = "monokai"
	cfg.Render.LineHeight = 24

	r, err := NewFromConfig(cfg, logging.Discard())
	require.NoError(t, err)
	require.Equal(t, "monokai", r.Theme().Name)

	res, err := r.Render(context.Background(), Request{Value: "let a = 1\nlet b = 2", Language: "ts", Highlight: "2"})
	require.NoError(t, err)
	require.Equal(t, float64(24), res.View.LineHeight)
	require.Len(t, res.View.Gutter, 2)
	require.True(t, res.View.Gutter[1].Active)

	cfg.Render.Theme = "does-not-exist"
	_, err = NewFromConfig(cfg, nil)
	require.Error(t, err)
}
