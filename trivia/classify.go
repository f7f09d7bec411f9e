package trivia

import (
	"strings"

	"github.com/kontomondo/fantomas/syntax"
)

// Classifier walks the raw token stream and groups tokens into typed
// trivia items. All source lookups go through syntax.Source and degrade to
// "no content" on infeasible ranges: trivia recovery is best-effort and
// must never abort formatting of an otherwise-valid file.
type Classifier struct {
	src *syntax.Source
}

// NewClassifier creates a classifier over the given source.
func NewClassifier(src *syntax.Source) *Classifier {
	return &Classifier{src: src}
}

// Classify produces the ordered trivia sequence for the token stream.
//
// Rules:
//   - A line comment is classified by the code content on its line: code
//     before the comment makes it LineCommentAfterSourceCode, otherwise
//     LineCommentOnSingleLine.
//   - Block comments record whether blank-line boundaries precede/follow
//     them, which later decides paragraph separation.
//   - Consecutive literal tokens forming one multi-line literal are
//     coalesced into a single item spanning the full literal range.
//   - Hash directives are captured verbatim.
//   - A newline terminating a blank line becomes a Newline marker; ordinary
//     line terminators after code are not trivia.
//   - Keyword tokens the printer anchors on (with, then, else, elif) are
//     retained as Keyword items.
func (c *Classifier) Classify(tokens []syntax.Token) []Trivia {
	var out []Trivia

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch tok.Kind {
		case syntax.NEWLINE:
			// A newline on a line of its own (no code, no comment) marks a
			// blank line worth preserving.
			if c.src.IsBlankLine(tok.Line) {
				out = append(out, Trivia{Content: Newline{}, Rng: tok.Range()})
			}

		case syntax.LINE_COMMENT:
			text := c.src.TextAt(tok.Range())
			if text == "" {
				continue // untrusted line, skip recovery for this item
			}
			var comment Comment
			if c.src.CodeBefore(tok.Start) {
				comment = LineCommentAfterSourceCode{Content: text}
			} else {
				comment = LineCommentOnSingleLine{Content: text}
			}
			out = append(out, Trivia{Content: CommentContent{Comment: comment}, Rng: tok.Range()})

		case syntax.BLOCK_COMMENT:
			text := c.src.TextAt(tok.Range())
			if text == "" {
				continue
			}
			comment := BlockComment{
				Content:       text,
				NewlineBefore: c.blankBefore(tok),
				NewlineAfter:  c.blankAfter(tok),
			}
			out = append(out, Trivia{Content: CommentContent{Comment: comment}, Rng: tok.Range()})

		case syntax.HASH_DIRECTIVE:
			text := c.src.TextAt(tok.Range())
			if text == "" {
				continue
			}
			out = append(out, Trivia{Content: Directive{Text: text}, Rng: tok.Range()})

		case syntax.STRING, syntax.CHAR:
			run := c.coalesceLiteral(tokens, i)
			rng := syntax.Range{Start: tok.Start, End: tokens[run].End}
			text := c.src.TextAt(rng)
			if text == "" {
				i = run
				continue
			}
			if tok.Kind == syntax.CHAR {
				out = append(out, Trivia{Content: CharContent{Text: text}, Rng: rng})
			} else {
				out = append(out, Trivia{Content: StringContent{Text: text}, Rng: rng})
			}
			i = run

		case syntax.NUMBER:
			text := c.src.TextAt(tok.Range())
			if text == "" {
				continue
			}
			out = append(out, Trivia{Content: Number{Text: text}, Rng: tok.Range()})

		case syntax.TICKED_IDENT:
			text := c.src.TextAt(tok.Range())
			if text == "" {
				continue
			}
			out = append(out, Trivia{Content: IdentBetweenTicks{Text: text}, Rng: tok.Range()})

		case syntax.IDENT:
			// Operators referenced by word form keep their spelling.
			text := c.src.TextAt(tok.Range())
			if strings.HasPrefix(text, "op_") {
				out = append(out, Trivia{Content: IdentOperatorAsWord{Text: text}, Rng: tok.Range()})
			}

		case syntax.WITH, syntax.THEN, syntax.ELSE, syntax.ELIF:
			text := c.src.TextAt(tok.Range())
			if text == "" {
				continue
			}
			out = append(out, Trivia{Content: Keyword{Kind: tok.Kind.String(), Text: text}, Rng: tok.Range()})
		}
	}

	return out
}

// coalesceLiteral returns the index of the last token belonging to the same
// literal as tokens[i]. An external tokenizer may split one multi-line
// string over several raw tokens separated only by newlines; those must
// become a single trivia item spanning the full literal range.
func (c *Classifier) coalesceLiteral(tokens []syntax.Token, i int) int {
	last := i
	for j := i + 1; j < len(tokens); j++ {
		switch tokens[j].Kind {
		case syntax.NEWLINE:
			continue
		case tokens[i].Kind:
			// Adjacent modulo newlines: no code between the pieces.
			if c.onlyNewlinesBetween(tokens[last].End, tokens[j].Start) {
				last = j
				continue
			}
			return last
		default:
			return last
		}
	}
	return last
}

// onlyNewlinesBetween reports whether the span between two offsets holds
// nothing but whitespace.
func (c *Classifier) onlyNewlinesBetween(start, end int) bool {
	if start > end {
		return false
	}
	text := c.src.TextAt(syntax.Range{Start: start, End: end})
	return strings.TrimSpace(text) == ""
}

// blankBefore reports whether a blank line (or start of file) immediately
// precedes the token's line, with no code earlier on the token's own line.
func (c *Classifier) blankBefore(tok syntax.Token) bool {
	if c.src.CodeBefore(tok.Start) {
		return false
	}
	if tok.Line <= 1 {
		return true
	}
	return c.src.IsBlankLine(tok.Line - 1)
}

// blankAfter reports whether a blank line (or end of file) immediately
// follows the token's last line.
func (c *Classifier) blankAfter(tok syntax.Token) bool {
	endLine := c.src.LineOf(tok.End)
	if endLine == 0 {
		return false
	}
	// Anything after the comment on its closing line counts as content.
	rest := strings.TrimSpace(c.src.Line(endLine))
	if !strings.HasSuffix(rest, "*)") {
		return false
	}
	if endLine >= c.src.LineCount() {
		return true
	}
	return c.src.IsBlankLine(endLine + 1)
}
