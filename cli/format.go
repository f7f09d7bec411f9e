package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/kontomondo/fantomas"
	"github.com/kontomondo/fantomas/config"
	"github.com/kontomondo/fantomas/errors"
	"github.com/kontomondo/fantomas/output"
	"github.com/kontomondo/fantomas/printer"
	"github.com/kontomondo/fantomas/telemetry"
)

type FormatCmd struct {
	File          FileOrStdin `help:"Input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Write         bool        `help:"Write the result back to the file instead of stdout." short:"w"`
	Check         bool        `help:"Exit non-zero and show a diff when the file is not formatted."`
	Force         bool        `help:"Skip the confirmation prompt when writing in place."`
	IndentWidth   int         `help:"Spaces per indentation level (config or built-in default if 0)." default:"0"`
	MaxLineWidth  int         `help:"Soft line width limit (config or built-in default if 0)." default:"0"`
	CommentColumn int         `help:"Column to align trailing comments at (no alignment if 0)." default:"0"`
}

func (cmd *FormatCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
		}()
	}

	content, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	opts, err := cmd.buildOptions(globals)
	if err != nil {
		return err
	}

	result, err := fantomas.Format(runCtx, content, opts...)
	if err != nil {
		renderer := NewErrorRenderer(content)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, "parse error")
		return NewCommandError(1)
	}

	if len(result.Diagnostics) > 0 {
		tf := errors.NewTextFormatter(errors.WithSource(content))
		_, _ = fmt.Fprintln(ctx.Stderr, tf.FormatDiagnostics(result.Diagnostics))
	}

	if cmd.Check {
		return cmd.runCheck(ctx, content, result.Output)
	}
	if cmd.Write {
		return cmd.runWrite(ctx, content, result.Output)
	}

	_, err = ctx.Stdout.Write(result.Output)
	return err
}

// buildOptions resolves configuration for the input file and layers the
// command-line flag overrides on top.
func (cmd *FormatCmd) buildOptions(globals *Globals) ([]fantomas.Option, error) {
	var cfg *config.Config
	var err error
	if globals.Config != "" {
		cfg, err = config.Load(globals.Config)
	} else {
		cfg, err = config.Discover(cmd.File.ConfigDir())
	}
	if err != nil {
		return nil, err
	}

	if cmd.IndentWidth > 0 {
		cfg.IndentWidth = cmd.IndentWidth
	}
	if cmd.MaxLineWidth > 0 {
		cfg.MaxLineWidth = cmd.MaxLineWidth
	}
	if cmd.CommentColumn > 0 {
		cfg.CommentColumn = cmd.CommentColumn
	}

	var popts []printer.Option
	if cfg.IndentWidth > 0 {
		popts = append(popts, printer.WithIndentWidth(cfg.IndentWidth))
	}
	if cfg.MaxLineWidth > 0 {
		popts = append(popts, printer.WithMaxLineWidth(cfg.MaxLineWidth))
	}
	if cfg.MaxBlankLines >= 0 {
		popts = append(popts, printer.WithMaxBlankLines(cfg.MaxBlankLines))
	}
	if cfg.CommentColumn > 0 {
		popts = append(popts, printer.WithCommentColumn(cfg.CommentColumn))
	}

	opts := []fantomas.Option{
		fantomas.WithFilename(cmd.File.GetAbsoluteFilename()),
		fantomas.WithPrinterOptions(popts...),
	}
	if cfg.MaxTrustedLine > 0 {
		opts = append(opts, fantomas.WithMaxTrustedLine(cfg.MaxTrustedLine))
	}
	return opts, nil
}

// runCheck diffs the input against the formatted output, failing when they
// differ.
func (cmd *FormatCmd) runCheck(ctx *kong.Context, content, formatted []byte) error {
	if bytes.Equal(content, formatted) {
		printSuccess(ctx.Stdout, fmt.Sprintf("%s is formatted", pathStyle.Render(cmd.File.Filename)))
		return nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(content)),
		B:        difflib.SplitLines(string(formatted)),
		FromFile: cmd.File.Filename,
		ToFile:   cmd.File.Filename + " (formatted)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(ctx.Stdout, text)

	printError(ctx.Stderr, fmt.Sprintf("%s is not formatted", cmd.File.Filename))
	return NewCommandError(1)
}

// runWrite writes the formatted output back to the input file, prompting
// first on interactive terminals unless --force is given.
func (cmd *FormatCmd) runWrite(ctx *kong.Context, content, formatted []byte) error {
	if cmd.File.IsStdin() {
		return fmt.Errorf("cannot write in place when reading from stdin")
	}
	if bytes.Equal(content, formatted) {
		printInfof(ctx.Stdout, "%s already formatted", pathStyle.Render(cmd.File.Filename))
		return nil
	}

	if !cmd.Force && isTerminal() {
		ok, err := promptYesNo(fmt.Sprintf("Write changes to %s?", cmd.File.Filename))
		if err != nil {
			return err
		}
		if !ok {
			printInfof(ctx.Stdout, "skipped %s", pathStyle.Render(cmd.File.Filename))
			return nil
		}
	}

	info, err := os.Stat(cmd.File.Filename)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cmd.File.Filename, formatted, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", cmd.File.Filename, err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("formatted %s", pathStyle.Render(cmd.File.Filename)))
	return nil
}
