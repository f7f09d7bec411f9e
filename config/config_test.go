package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
indent_width = 2
max_line_width = 100
max_blank_lines = 1
comment_column = 40
`)

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 2, cfg.IndentWidth)
	assert.Equal(t, 100, cfg.MaxLineWidth)
	assert.Equal(t, 1, cfg.MaxBlankLines)
	assert.Equal(t, 40, cfg.CommentColumn)
	assert.Equal(t, 0, cfg.MaxTrustedLine)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "indent_width = 8\n")

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 8, cfg.IndentWidth)
	assert.Equal(t, -1, cfg.MaxBlankLines)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "indnet_width = 2\n")

	_, err := Load(path)
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown key"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.Error(t, err)
}

func TestDiscoverFindsNearest(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "indent_width = 2\n")

	nested := filepath.Join(root, "src", "lib")
	assert.NoError(t, os.MkdirAll(nested, 0o755))
	writeConfig(t, filepath.Join(root, "src"), "indent_width = 3\n")

	cfg, err := Discover(nested)
	assert.NoError(t, err)
	assert.Equal(t, 3, cfg.IndentWidth)
}

func TestDiscoverWalksAncestors(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "max_line_width = 80\n")

	nested := filepath.Join(root, "a", "b", "c")
	assert.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Discover(nested)
	assert.NoError(t, err)
	assert.Equal(t, 80, cfg.MaxLineWidth)
}

func TestDiscoverDefaultsWhenAbsent(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	assert.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
