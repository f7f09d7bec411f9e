package parser

import (
	"fmt"

	"github.com/kontomondo/fantomas/syntax"
)

// ParseError represents a syntax error during parsing.
type ParseError struct {
	Pos        syntax.Position
	Message    string
	Underlying error
}

func (e *ParseError) Error() string {
	location := fmt.Sprintf("%s:%d", e.Pos.Filename, e.Pos.Line)
	if e.Pos.Filename == "" {
		location = fmt.Sprintf("line %d", e.Pos.Line)
	}

	return fmt.Sprintf("%s: %s", location, e.Message)
}

func (e *ParseError) GetPosition() syntax.Position {
	return e.Pos
}

func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// errorAt builds a ParseError at the given token.
func (p *Parser) errorAt(tok syntax.Token, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Pos: syntax.Position{
			Filename: p.filename,
			Offset:   tok.Start,
			Line:     tok.Line,
			Column:   tok.Column,
		},
		Message: fmt.Sprintf(format, args...),
	}
}
