package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, float64(20), cfg.Render.LineHeight)
	require.Equal(t, "github", cfg.Render.Theme)
	require.True(t, cfg.Render.ShowErrors)
	require.Equal(t, 4, cfg.Analysis.TabWidth)
	require.Equal(t, 2, cfg.Analysis.IndentSize)
	require.True(t, cfg.Analysis.Format)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, Default(), cfg)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CODEVIEW_THEME", "monokai")
	t.Setenv("CODEVIEW_SHOW_ERRORS", "false")
	t.Setenv("CODEVIEW_JOBS", "3")
	t.Setenv("CODEVIEW_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "monokai", cfg.Render.Theme)
	require.False(t, cfg.Render.ShowErrors)
	require.Equal(t, 3, cfg.Batch.Jobs)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "codeview.yaml")
	configContent := `
render:
  line_height: 24
  theme: dracula
analysis:
  declarations_file: decls.yaml
  indent_size: 4
log:
  level: warn
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	require.Equal(t, float64(24), cfg.Render.LineHeight)
	require.Equal(t, "dracula", cfg.Render.Theme)
	require.Equal(t, "decls.yaml", cfg.Analysis.DeclarationsFile)
	require.Equal(t, 4, cfg.Analysis.IndentSize)
	require.Equal(t, "warn", cfg.Log.Level)

	// Untouched keys keep their defaults.
	require.Equal(t, 4, cfg.Analysis.TabWidth)
	require.True(t, cfg.Render.ShowErrors)
}

func TestEnvOverridesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "codeview.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("render:\n  theme: dracula\n"), 0644))
	t.Setenv("CODEVIEW_THEME", "vim")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.Equal(t, "vim", cfg.Render.Theme)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorContains(t, err, "loading config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero line height", func(c *Config) { c.Render.LineHeight = 0 }, "line_height"},
		{"no theme", func(c *Config) { c.Render.Theme = "" }, "theme"},
		{"theme file only", func(c *Config) { c.Render.Theme = ""; c.Render.ThemeFile = "t.json" }, ""},
		{"bad tab width", func(c *Config) { c.Analysis.TabWidth = 0 }, "tab_width"},
		{"negative jobs", func(c *Config) { c.Batch.Jobs = -1 }, "jobs"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
