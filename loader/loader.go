// Package loader reads source files and runs the parsing front end,
// producing everything the formatter needs for one file: the source
// bookkeeping wrapper, the syntax tree, and the raw token stream with
// trivia tokens retained.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kontomondo/fantomas/parser"
	"github.com/kontomondo/fantomas/syntax"
	"github.com/kontomondo/fantomas/telemetry"
)

// File is the fully loaded front-end result for one source file.
type File struct {
	// Source wraps the raw content with line-offset bookkeeping.
	Source *syntax.Source

	// Tree is the trivia-free syntax tree.
	Tree *syntax.File

	// Tokens is the raw token stream, including the newline, comment, and
	// directive tokens the parser itself ignores.
	Tokens []syntax.Token
}

// Loader runs the parsing front end over files or byte buffers.
type Loader struct {
	// MaxTrustedLine overrides the trusted line length threshold used for
	// trivia recovery. Zero keeps the default.
	MaxTrustedLine int
}

// Option configures a Loader.
type Option func(*Loader)

// WithMaxTrustedLine overrides the trusted line length threshold.
func WithMaxTrustedLine(n int) Option {
	return func(l *Loader) {
		l.MaxTrustedLine = n
	}
}

// New creates a Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and parses the file at path.
func (l *Loader) Load(ctx context.Context, path string) (*File, error) {
	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("Load %s", filepath.Base(path)))
	defer timer.End()

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return l.loadBytes(ctx, path, content)
}

// LoadBytes parses content already held in memory, using filename for
// positions and error messages.
func (l *Loader) LoadBytes(ctx context.Context, filename string, content []byte) (*File, error) {
	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("Load %s", filepath.Base(filename)))
	defer timer.End()

	return l.loadBytes(ctx, filename, content)
}

func (l *Loader) loadBytes(ctx context.Context, filename string, content []byte) (*File, error) {
	tree, tokens, err := parser.ParseBytesWithFilename(ctx, filename, content)
	if err != nil {
		return nil, err
	}

	srcOpts := []syntax.SourceOption{syntax.WithFilename(filename)}
	if l.MaxTrustedLine > 0 {
		srcOpts = append(srcOpts, syntax.WithMaxTrustedLine(l.MaxTrustedLine))
	}

	return &File{
		Source: syntax.NewSource(content, srcOpts...),
		Tree:   tree,
		Tokens: tokens,
	}, nil
}
