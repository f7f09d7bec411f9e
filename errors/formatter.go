// Package errors provides error formatting infrastructure for the
// formatter's parse errors and trivia diagnostics. It separates
// presentation from domain logic so the same errors can be rendered as
// plain text for the CLI or as structured JSON for tooling.
//
// The package defines a Formatter interface and provides two
// implementations:
//   - TextFormatter: renders errors with source context for terminals
//   - JSONFormatter: renders errors as structured JSON
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kontomondo/fantomas/syntax"
	"github.com/kontomondo/fantomas/trivia"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// positioned is implemented by errors that know where in the source they
// occurred. parser.ParseError satisfies it.
type positioned interface {
	GetPosition() syntax.Position
	Error() string
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	sourceContent []byte // optional, enables source context
}

// TextFormatterOption configures a TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source content used to show context around error
// positions.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sourceContent = source
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error, with source context when available.
func (tf *TextFormatter) Format(err error) string {
	if e, ok := err.(positioned); ok {
		if tf.sourceContent != nil {
			return tf.formatWithSourceContext(e.GetPosition(), e.Error())
		}
		return fmt.Sprintf("%s: %s", e.GetPosition(), e.Error())
	}
	return err.Error()
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, err := range errs {
		buf.WriteString(tf.Format(err))
		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}
	return buf.String()
}

// FormatDiagnostics renders dropped-trivia diagnostics, one per line with
// source context when available.
func (tf *TextFormatter) FormatDiagnostics(diags []trivia.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, d := range diags {
		if tf.sourceContent != nil {
			buf.WriteString(tf.formatWithSourceContext(d.Pos, d.Message))
		} else {
			fmt.Fprintf(&buf, "%s: %s", d.Pos, d.Message)
		}
		if i < len(diags)-1 {
			buf.WriteString("\n\n")
		}
	}
	return buf.String()
}

// formatWithSourceContext shows the error message followed by the source
// lines around the error position, with a caret under the error column.
func (tf *TextFormatter) formatWithSourceContext(pos syntax.Position, message string) string {
	var buf bytes.Buffer

	buf.WriteString(message)
	buf.WriteString("\n\n")

	sourceLines := strings.Split(string(tf.sourceContent), "\n")

	// Show two lines before and one line after the error line.
	startLine := pos.Line - 3
	endLine := pos.Line + 1

	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(sourceLines) {
		endLine = len(sourceLines) - 1
	}

	for i := startLine; i <= endLine; i++ {
		if i >= len(sourceLines) {
			break
		}
		buf.WriteString("   ")
		buf.WriteString(sourceLines[i])
		buf.WriteByte('\n')

		// pos.Line is 1-based, i is 0-based.
		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			for j := 0; j < pos.Column-1; j++ {
				buf.WriteByte(' ')
			}
			buf.WriteString("^\n")
		}
	}

	return buf.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string        `json:"type"`
	Message  string        `json:"message"`
	Position *PositionJSON `json:"position,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	jsonErrors := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		jsonErrors = append(jsonErrors, jf.toJSON(err))
	}
	data, _ := json.MarshalIndent(jsonErrors, "", "  ")
	return string(data)
}

// FormatDiagnostics formats dropped-trivia diagnostics as a JSON array.
func (jf *JSONFormatter) FormatDiagnostics(diags []trivia.Diagnostic) string {
	jsonErrors := make([]ErrorJSON, 0, len(diags))
	for _, d := range diags {
		jsonErrors = append(jsonErrors, ErrorJSON{
			Type:    "trivia.Diagnostic",
			Message: d.Message,
			Position: &PositionJSON{
				Filename: d.Pos.Filename,
				Line:     d.Pos.Line,
				Column:   d.Pos.Column,
			},
		})
	}
	data, _ := json.MarshalIndent(jsonErrors, "", "  ")
	return string(data)
}

// toJSON converts an error to ErrorJSON.
func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}

	if e, ok := err.(interface{ GetPosition() syntax.Position }); ok {
		pos := e.GetPosition()
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
		}
	}

	return errJSON
}
