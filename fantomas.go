// Package fantomas formats F#-style source files while preserving every
// comment, blank line, compiler directive, and verbatim literal spelling.
//
// Formatting runs as a fixed pipeline: the parser produces a trivia-free
// syntax tree plus the raw token stream, the trivia package classifies the
// non-semantic tokens and attaches each item to exactly one tree anchor,
// and the printer re-emits canonical text while consuming the attached
// trivia. Items that cannot be re-attached are reported as diagnostics
// instead of aborting the format.
package fantomas

import (
	"bytes"
	"context"

	"github.com/kontomondo/fantomas/parser"
	"github.com/kontomondo/fantomas/printer"
	"github.com/kontomondo/fantomas/syntax"
	"github.com/kontomondo/fantomas/telemetry"
	"github.com/kontomondo/fantomas/trivia"
)

// Result is the outcome of formatting one source file.
type Result struct {
	// Output is the formatted source text.
	Output []byte

	// Diagnostics lists trivia items that could not be re-attached to the
	// tree and were dropped. An empty slice is the common case.
	Diagnostics []trivia.Diagnostic
}

// Options bundles the tunables of a single Format call.
type Options struct {
	// Filename is used in positions and error messages.
	Filename string

	// MaxTrustedLine overrides the trusted line length threshold for
	// trivia recovery. Zero keeps the default.
	MaxTrustedLine int

	// Printer options are passed through to the printing stage.
	Printer []printer.Option
}

// Option is a functional option for Format.
type Option func(*Options)

// WithFilename sets the filename used in positions and errors.
func WithFilename(name string) Option {
	return func(o *Options) {
		o.Filename = name
	}
}

// WithMaxTrustedLine overrides the trusted line length threshold.
func WithMaxTrustedLine(n int) Option {
	return func(o *Options) {
		o.MaxTrustedLine = n
	}
}

// WithPrinterOptions appends options for the printing stage.
func WithPrinterOptions(opts ...printer.Option) Option {
	return func(o *Options) {
		o.Printer = append(o.Printer, opts...)
	}
}

// Format parses content and prints it back in canonical layout. Timing for
// each stage is reported through the telemetry collector carried by ctx,
// if any.
func Format(ctx context.Context, content []byte, opts ...Option) (*Result, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	collector := telemetry.FromContext(ctx)

	parseTimer := collector.Start("Parse")
	file, rawTokens, err := parser.ParseBytesWithFilename(ctx, options.Filename, content)
	parseTimer.End()
	if err != nil {
		return nil, err
	}

	srcOpts := []syntax.SourceOption{syntax.WithFilename(options.Filename)}
	if options.MaxTrustedLine > 0 {
		srcOpts = append(srcOpts, syntax.WithMaxTrustedLine(options.MaxTrustedLine))
	}
	src := syntax.NewSource(content, srcOpts...)

	attachTimer := collector.Start("Attach trivia")
	idx, diags := trivia.Build(src, rawTokens, file)
	attachTimer.End()

	printTimer := collector.Start("Print")
	var buf bytes.Buffer
	p := printer.New(options.Printer...)
	err = p.Print(file, src, idx, &buf)
	printTimer.End()
	if err != nil {
		return nil, err
	}

	return &Result{Output: buf.Bytes(), Diagnostics: diags}, nil
}
