// Package config loads formatter settings from .fantomas.toml files.
//
// Settings are discovered per formatted file: the directory of the file and
// its ancestors are searched for the nearest .fantomas.toml, so a project
// can pin its style at the repository root while subtrees override it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file searched for in each directory.
const FileName = ".fantomas.toml"

// Config holds formatter settings. The zero value of each field means
// "use the built-in default".
type Config struct {
	// IndentWidth is the number of spaces per indentation level.
	IndentWidth int `toml:"indent_width"`

	// MaxLineWidth is the soft line width limit.
	MaxLineWidth int `toml:"max_line_width"`

	// MaxBlankLines caps consecutive blank lines. Negative means unset.
	MaxBlankLines int `toml:"max_blank_lines"`

	// CommentColumn aligns trailing comments at a fixed column when set.
	CommentColumn int `toml:"comment_column"`

	// MaxTrustedLine is the trusted line length threshold for comment and
	// blank-line recovery.
	MaxTrustedLine int `toml:"max_trusted_line"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{MaxBlankLines: -1}
}

// Load reads and decodes a configuration file.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// Discover searches dir and its ancestors for the nearest configuration
// file. It returns the defaults when none exists.
func Discover(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	for {
		candidate := filepath.Join(abs, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return Default(), nil
		}
		abs = parent
	}
}
