package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/kontomondo/fantomas/loader"
	"github.com/kontomondo/fantomas/parser"
	"github.com/kontomondo/fantomas/syntax"
	"github.com/kontomondo/fantomas/trivia"
)

// DoctorCmd provides doctor utilities for debugging source files.
type DoctorCmd struct {
	Lex    LexCmd    `cmd:"" help:"Show lexical tokens from a source file."`
	Parse  ParseCmd  `cmd:"" help:"Dump the syntax tree of a source file."`
	Trivia TriviaCmd `cmd:"" help:"Show how trivia attaches to the syntax tree."`
}

// LexCmd shows lexical tokens from a source file.
type LexCmd struct {
	File FileOrStdin `help:"Input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the lex command.
func (cmd *LexCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	content, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	lexer := parser.NewLexer(content, cmd.File.Filename)
	tokens := lexer.ScanAll()

	// Display tokens in the format: KIND line:col "content"
	for _, token := range tokens {
		if token.Kind == syntax.EOF {
			continue
		}
		_, _ = fmt.Fprintf(ctx.Stdout, "%-14s %d:%d    %q\n",
			token.Kind.String(),
			token.Line,
			token.Column,
			token.String(content))
	}

	return nil
}

// ParseCmd dumps the syntax tree of a source file.
type ParseCmd struct {
	File FileOrStdin `help:"Input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the parse command.
func (cmd *ParseCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	content, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	svc := loader.NewService()
	file, err := svc.LoadBytes(context.Background(), cmd.File.GetAbsoluteFilename(), content)
	if err != nil {
		renderer := NewErrorRenderer(content)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		return NewCommandError(1)
	}

	repr.Println(file.Tree)
	return nil
}

// TriviaCmd shows how recovered trivia attaches to the syntax tree.
type TriviaCmd struct {
	File FileOrStdin `help:"Input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the trivia command.
func (cmd *TriviaCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	content, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	svc := loader.NewService()
	file, err := svc.LoadBytes(context.Background(), cmd.File.GetAbsoluteFilename(), content)
	if err != nil {
		renderer := NewErrorRenderer(content)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		return NewCommandError(1)
	}

	idx, dropped := trivia.Build(file.Source, file.Tokens, file.Tree)

	for pos, node := range idx.Nodes() {
		before := idx.Peek(trivia.Key{Node: pos, Slot: trivia.SlotBefore})
		itself := idx.Peek(trivia.Key{Node: pos, Slot: trivia.SlotItself})
		after := idx.Peek(trivia.Key{Node: pos, Slot: trivia.SlotAfter})
		if len(before) == 0 && len(itself) == 0 && len(after) == 0 {
			continue
		}

		_, _ = fmt.Fprintf(ctx.Stdout, "%s\n", node.Describe())
		for _, c := range before {
			_, _ = fmt.Fprintf(ctx.Stdout, "  before: %s\n", repr.String(c))
		}
		for _, c := range itself {
			_, _ = fmt.Fprintf(ctx.Stdout, "  itself: %s\n", repr.String(c))
		}
		for _, c := range after {
			_, _ = fmt.Fprintf(ctx.Stdout, "  after:  %s\n", repr.String(c))
		}
	}

	for _, d := range dropped {
		printError(ctx.Stderr, fmt.Sprintf("dropped %s at %s", d.Item, d.Pos))
	}
	if len(dropped) > 0 {
		return NewCommandError(1)
	}
	return nil
}
