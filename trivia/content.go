// Package trivia recovers non-semantic lexical content (comments, blank
// lines, compiler directives, verbatim literal spellings) from the raw
// token stream, and attaches each recovered item to exactly one node of the
// trivia-free syntax tree. The printer queries the resulting index while
// emitting formatted output so that every comment and directive round-trips
// exactly once.
//
// The pipeline runs in four sequential passes over immutable inputs:
//
//	tokens + source  -> Classifier -> []Trivia  (typed items, source order)
//	syntax tree      -> node index -> []*Node   (anchor candidates, DFS order)
//	both sequences   -> Matcher    -> populated []*Node plus dropped items
//	populated nodes  -> Index      -> consume-once query surface
package trivia

import (
	"fmt"

	"github.com/kontomondo/fantomas/syntax"
)

// Comment is the tagged union of comment shapes. The distinction matters to
// the printer: a comment sharing a line with code stays glued to that line,
// while a standalone comment keeps its own line.
type Comment interface {
	commentNode()
	// Text returns the comment text exactly as written, including markers.
	Text() string
}

// LineCommentAfterSourceCode is a //... comment sharing a line with
// preceding code.
type LineCommentAfterSourceCode struct {
	Content string
}

func (c LineCommentAfterSourceCode) commentNode() {}
func (c LineCommentAfterSourceCode) Text() string { return c.Content }

// LineCommentOnSingleLine is a //... comment alone on its line.
type LineCommentOnSingleLine struct {
	Content string
}

func (c LineCommentOnSingleLine) commentNode() {}
func (c LineCommentOnSingleLine) Text() string { return c.Content }

// BlockComment is a (* ... *) comment. NewlineBefore/NewlineAfter record
// whether blank-line boundaries surround it in the source; the matcher uses
// NewlineBefore to treat the comment as a deliberate paragraph break.
type BlockComment struct {
	Content       string
	NewlineBefore bool
	NewlineAfter  bool
}

func (c BlockComment) commentNode() {}
func (c BlockComment) Text() string { return c.Content }

// Content is the tagged union of every non-tree-structural lexical fact the
// formatter must preserve verbatim.
type Content interface {
	contentNode()
}

// Keyword retains a keyword token the printer needs as an anchor point
// (with, then, else).
type Keyword struct {
	Kind string // token kind name
	Text string
}

func (Keyword) contentNode() {}

// Number is a numeric literal spelling that must round-trip exactly
// (underscore separators, base prefixes, type suffixes).
type Number struct {
	Text string
}

func (Number) contentNode() {}

// StringContent is a string literal spelling, notably multi-line
// triple-quoted and verbatim strings whose interior must never be
// re-indented.
type StringContent struct {
	Text string
}

func (StringContent) contentNode() {}

// CharContent is a character literal spelling.
type CharContent struct {
	Text string
}

func (CharContent) contentNode() {}

// IdentOperatorAsWord is an operator referenced by its word form
// (op_Addition).
type IdentOperatorAsWord struct {
	Text string
}

func (IdentOperatorAsWord) contentNode() {}

// IdentBetweenTicks is a double-backtick identifier whose raw spelling,
// spaces included, must be preserved.
type IdentBetweenTicks struct {
	Text string
}

func (IdentBetweenTicks) contentNode() {}

// CommentContent wraps a Comment as attachable content.
type CommentContent struct {
	Comment Comment
}

func (CommentContent) contentNode() {}

// Newline marks a blank line in the source.
type Newline struct{}

func (Newline) contentNode() {}

// Directive is a conditional-compilation or compiler directive line
// (#if, #else, #endif, #nowarn), captured verbatim.
type Directive struct {
	Text string
}

func (Directive) contentNode() {}

// Trivia pairs one Content with the source range it occupies. Immutable:
// constructed once during classification, then only read.
type Trivia struct {
	Content Content
	Rng     syntax.Range
}

// String renders a short description for diagnostics and test failures.
func (t Trivia) String() string {
	switch c := t.Content.(type) {
	case CommentContent:
		return fmt.Sprintf("comment[%d:%d] %q", t.Rng.Start, t.Rng.End, c.Comment.Text())
	case Directive:
		return fmt.Sprintf("directive[%d:%d] %q", t.Rng.Start, t.Rng.End, c.Text)
	case Newline:
		return fmt.Sprintf("newline[%d:%d]", t.Rng.Start, t.Rng.End)
	case Keyword:
		return fmt.Sprintf("keyword[%d:%d] %s", t.Rng.Start, t.Rng.End, c.Text)
	default:
		return fmt.Sprintf("trivia[%d:%d]", t.Rng.Start, t.Rng.End)
	}
}
