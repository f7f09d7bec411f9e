package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/alecthomas/kong"

	"github.com/kontomondo/fantomas"
	"github.com/kontomondo/fantomas/errors"
	"github.com/kontomondo/fantomas/output"
	"github.com/kontomondo/fantomas/telemetry"
)

type CheckCmd struct {
	File FileOrStdin `help:"Input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run parses the file, reports any trivia the formatter would drop, and
// verifies that formatting is idempotent (formatting the output changes
// nothing).
func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	var checkTimer telemetry.Timer
	var once sync.Once

	reportTelemetry := func() {
		once.Do(func() {
			if collector != nil {
				checkTimer.End()
				_, _ = fmt.Fprintln(ctx.Stderr)
				collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
			}
		})
	}

	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		checkTimer = collector.Start(fmt.Sprintf("check %s", filepath.Base(cmd.File.Filename)))
		defer reportTelemetry()
	}

	content, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	filename := cmd.File.GetAbsoluteFilename()

	result, err := fantomas.Format(runCtx, content, fantomas.WithFilename(filename))
	if err != nil {
		renderer := NewErrorRenderer(content)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, "parse error")
		reportTelemetry()
		return NewCommandError(1)
	}

	failed := false
	if len(result.Diagnostics) > 0 {
		tf := errors.NewTextFormatter(errors.WithSource(content))
		_, _ = fmt.Fprintln(ctx.Stderr, tf.FormatDiagnostics(result.Diagnostics))
		printError(ctx.Stderr, fmt.Sprintf("%d trivia item(s) would be dropped", len(result.Diagnostics)))
		failed = true
	}

	// Formatting the formatted output must be a fixed point.
	second, err := fantomas.Format(runCtx, result.Output, fantomas.WithFilename(filename))
	if err != nil {
		printError(ctx.Stderr, fmt.Sprintf("formatted output no longer parses: %v", err))
		reportTelemetry()
		return NewCommandError(1)
	}
	if !bytes.Equal(result.Output, second.Output) {
		printError(ctx.Stderr, "formatting is not idempotent for this file")
		failed = true
	}

	if failed {
		reportTelemetry()
		return NewCommandError(1)
	}

	printSuccess(ctx.Stdout, "Check passed")
	return nil
}
