package parser

// Lexer implements a zero-copy lexer for F#-style source files.
//
// The zero-copy approach:
// - Tokens store byte offsets, not string values
// - No intermediate token format conversions
// - String interning for repeated values
// - Pre-allocated token buffer
//
// Unlike a compiler front end, the lexer RETAINS everything the formatter
// must round-trip: newlines, line and block comments, and hash directives
// are emitted as tokens instead of being skipped. The trivia classifier
// consumes them downstream.

import (
	"bytes"

	"github.com/kontomondo/fantomas/syntax"
)

// Lexer tokenizes source code.
type Lexer struct {
	source   []byte         // Source buffer (potentially mmap'd)
	filename string         // Filename for error reporting
	pos      int            // Current byte position
	line     int            // Current line (1-indexed)
	column   int            // Current column (1-indexed)
	tokens   []syntax.Token // Token buffer (pre-allocated)
	interner *Interner      // String interning pool
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source []byte, filename string) *Lexer {
	// Estimate token count: empirically ~1 token per 6 bytes once newlines
	// and comments are retained. Pre-allocation eliminates most slice growth.
	estimatedTokens := len(source)/6 + 500

	internerCap := len(source) / 40
	if internerCap < 1000 {
		internerCap = 1000
	}

	return &Lexer{
		source:   source,
		filename: filename,
		line:     1,
		column:   1,
		tokens:   make([]syntax.Token, 0, estimatedTokens),
		interner: NewInterner(internerCap),
	}
}

// Interner returns the string interner, useful for the parser.
func (l *Lexer) Interner() *Interner {
	return l.interner
}

// ScanAll lexes the entire source file and returns all tokens.
// This is a single-pass scanner with no backtracking.
func (l *Lexer) ScanAll() []syntax.Token {
	for l.pos < len(l.source) {
		l.skipInlineWhitespace()

		if l.pos >= len(l.source) {
			break
		}

		tok := l.scanToken()
		l.tokens = append(l.tokens, tok)
	}

	// Add EOF token
	l.tokens = append(l.tokens, syntax.Token{
		Kind:   syntax.EOF,
		Start:  l.pos,
		End:    l.pos,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens
}

// scanToken scans the next token from the current position.
func (l *Lexer) scanToken() syntax.Token {
	start := l.pos
	startLine := l.line
	startCol := l.column

	ch := l.advance()

	switch {
	case ch == '\n':
		return syntax.Token{Kind: syntax.NEWLINE, Start: start, End: l.pos, Line: startLine, Column: startCol}

	// Hash directives: a '#' in the first column starts a directive line
	// (#if, #else, #endif, #nowarn, ...). Captured verbatim to end of line
	// since directives must round-trip byte for byte.
	case ch == '#' && startCol == 1:
		return l.scanToEndOfLine(syntax.HASH_DIRECTIVE, start, startLine, startCol)

	// Line comments: //...
	case ch == '/' && l.peek() == '/':
		return l.scanToEndOfLine(syntax.LINE_COMMENT, start, startLine, startCol)

	// Block comments: (* ... *), nestable and possibly multi-line.
	case ch == '(' && l.peek() == '*':
		return l.scanBlockComment(start, startLine, startCol)

	// Strings: "...", """...""" (triple-quoted, multi-line)
	case ch == '"':
		if l.peek() == '"' && l.peekAt(1) == '"' {
			l.advance()
			l.advance()
			return l.scanTripleString(start, startLine, startCol)
		}
		return l.scanString(start, startLine, startCol)

	// Verbatim strings: @"..."
	case ch == '@' && l.peek() == '"':
		l.advance()
		return l.scanVerbatimString(start, startLine, startCol)

	// Double-backtick identifiers: ``an identifier with spaces``
	case ch == '`' && l.peek() == '`':
		l.advance()
		return l.scanTickedIdent(start, startLine, startCol)

	// Character literals: 'a', '\n'
	case ch == '\'':
		return l.scanChar(start, startLine, startCol)

	// Numbers
	case ch >= '0' && ch <= '9':
		return l.scanNumber(start, startLine, startCol)

	// Identifiers and keywords
	case ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' || ch >= 0x80:
		return l.scanIdentOrKeyword(start, startLine, startCol)

	// Single-character symbols
	case ch == '(':
		return syntax.Token{Kind: syntax.LPAREN, Start: start, End: l.pos, Line: startLine, Column: startCol}
	case ch == ')':
		return syntax.Token{Kind: syntax.RPAREN, Start: start, End: l.pos, Line: startLine, Column: startCol}
	case ch == '[':
		return syntax.Token{Kind: syntax.LBRACKET, Start: start, End: l.pos, Line: startLine, Column: startCol}
	case ch == ']':
		return syntax.Token{Kind: syntax.RBRACKET, Start: start, End: l.pos, Line: startLine, Column: startCol}
	case ch == ',':
		return syntax.Token{Kind: syntax.COMMA, Start: start, End: l.pos, Line: startLine, Column: startCol}

	// Operators (including =, ->, |)
	case isOperatorChar(ch):
		return l.scanOperator(start, startLine, startCol)

	default:
		return syntax.Token{Kind: syntax.ILLEGAL, Start: start, End: l.pos, Line: startLine, Column: startCol}
	}
}

// scanToEndOfLine consumes up to (excluding) the next newline.
func (l *Lexer) scanToEndOfLine(kind syntax.TokenKind, start, line, col int) syntax.Token {
	for l.pos < len(l.source) && l.source[l.pos] != '\n' {
		l.advance()
	}
	return syntax.Token{Kind: kind, Start: start, End: l.pos, Line: line, Column: col}
}

// scanBlockComment scans a (* ... *) comment, honoring nesting.
func (l *Lexer) scanBlockComment(start, line, col int) syntax.Token {
	l.advance() // consume '*'
	depth := 1

	for l.pos < len(l.source) && depth > 0 {
		ch := l.advance()
		switch {
		case ch == '(' && l.peek() == '*':
			l.advance()
			depth++
		case ch == '*' && l.peek() == ')':
			l.advance()
			depth--
		}
	}

	return syntax.Token{Kind: syntax.BLOCK_COMMENT, Start: start, End: l.pos, Line: line, Column: col}
}

// scanString scans a quoted string: "..." with backslash escapes.
func (l *Lexer) scanString(start, line, col int) syntax.Token {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch == '"' {
			l.advance() // consume closing quote
			break
		}
		if ch == '\\' && l.pos+1 < len(l.source) {
			l.advance() // skip backslash
			l.advance() // skip escaped char
		} else {
			l.advance()
		}
	}
	return syntax.Token{Kind: syntax.STRING, Start: start, End: l.pos, Line: line, Column: col}
}

// scanTripleString scans a triple-quoted string: """...""".
// These may span multiple lines and contain unescaped quotes.
func (l *Lexer) scanTripleString(start, line, col int) syntax.Token {
	for l.pos < len(l.source) {
		if l.source[l.pos] == '"' && l.peekAt(1) == '"' && l.peekAt(2) == '"' {
			l.advance()
			l.advance()
			l.advance()
			break
		}
		l.advance()
	}
	return syntax.Token{Kind: syntax.STRING, Start: start, End: l.pos, Line: line, Column: col}
}

// scanVerbatimString scans @"..." where "" is the only escape.
func (l *Lexer) scanVerbatimString(start, line, col int) syntax.Token {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch == '"' {
			if l.peekAt(1) == '"' {
				l.advance()
				l.advance()
				continue
			}
			l.advance()
			break
		}
		l.advance()
	}
	return syntax.Token{Kind: syntax.STRING, Start: start, End: l.pos, Line: line, Column: col}
}

// scanTickedIdent scans ``identifier with spaces``.
func (l *Lexer) scanTickedIdent(start, line, col int) syntax.Token {
	for l.pos < len(l.source) {
		if l.source[l.pos] == '`' && l.peekAt(1) == '`' {
			l.advance()
			l.advance()
			break
		}
		if l.source[l.pos] == '\n' {
			// Ticked identifiers do not span lines.
			break
		}
		l.advance()
	}
	return syntax.Token{Kind: syntax.TICKED_IDENT, Start: start, End: l.pos, Line: line, Column: col}
}

// scanChar scans a character literal: 'a' or '\n'.
func (l *Lexer) scanChar(start, line, col int) syntax.Token {
	if l.pos < len(l.source) && l.source[l.pos] == '\\' {
		l.advance() // backslash
		if l.pos < len(l.source) {
			l.advance() // escaped char
		}
	} else if l.pos < len(l.source) {
		l.advance() // the char itself
	}
	if l.pos < len(l.source) && l.source[l.pos] == '\'' {
		l.advance() // closing quote
		return syntax.Token{Kind: syntax.CHAR, Start: start, End: l.pos, Line: line, Column: col}
	}
	// Unterminated char literal; mark the quote itself illegal rather than
	// swallowing the rest of the line.
	return syntax.Token{Kind: syntax.ILLEGAL, Start: start, End: l.pos, Line: line, Column: col}
}

// scanNumber scans a number: integers, decimals, hex, and literal suffixes
// (1L, 3.14f, 0xFF, 100_000).
func (l *Lexer) scanNumber(start, line, col int) syntax.Token {
	// Hex/octal/binary prefix
	if l.source[start] == '0' && l.pos < len(l.source) &&
		(l.source[l.pos] == 'x' || l.source[l.pos] == 'X' ||
			l.source[l.pos] == 'o' || l.source[l.pos] == 'O' ||
			l.source[l.pos] == 'b' || l.source[l.pos] == 'B') {
		l.advance()
	}

	for l.pos < len(l.source) && isNumberChar(l.source[l.pos]) {
		// A '.' only continues the number when followed by a digit, so that
		// ranges and member access lex correctly.
		if l.source[l.pos] == '.' {
			if l.pos+1 >= len(l.source) || l.source[l.pos+1] < '0' || l.source[l.pos+1] > '9' {
				break
			}
		}
		l.advance()
	}

	return syntax.Token{Kind: syntax.NUMBER, Start: start, End: l.pos, Line: line, Column: col}
}

// scanIdentOrKeyword scans an identifier, resolving keywords.
func (l *Lexer) scanIdentOrKeyword(start, line, col int) syntax.Token {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		isLetter := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
		isDigit := ch >= '0' && ch <= '9'
		isUTF8 := ch >= 0x80
		if !isLetter && !isDigit && !isUTF8 && ch != '_' && ch != '\'' && ch != '.' {
			break
		}
		// '.' continues a qualified path (List.map) only when followed by a
		// letter; a trailing dot belongs to the next token.
		if ch == '.' {
			next := l.peekAt(1)
			if !(next >= 'a' && next <= 'z' || next >= 'A' && next <= 'Z' || next == '_') {
				break
			}
		}
		l.advance()
	}

	word := l.source[start:l.pos]
	return syntax.Token{Kind: keywordKind(word), Start: start, End: l.pos, Line: line, Column: col}
}

// scanOperator scans a run of operator characters.
func (l *Lexer) scanOperator(start, line, col int) syntax.Token {
	for l.pos < len(l.source) && isOperatorChar(l.source[l.pos]) {
		l.advance()
	}

	op := l.source[start:l.pos]
	kind := syntax.OPERATOR
	switch {
	case len(op) == 1 && op[0] == '=':
		kind = syntax.EQUALS
	case len(op) == 1 && op[0] == '|':
		kind = syntax.BAR
	case len(op) == 2 && op[0] == '-' && op[1] == '>':
		kind = syntax.ARROW
	}

	return syntax.Token{Kind: kind, Start: start, End: l.pos, Line: line, Column: col}
}

// keywordKind returns the token kind for a keyword, or IDENT otherwise.
func keywordKind(word []byte) syntax.TokenKind {
	// Use byte comparison to avoid allocating strings.
	switch {
	case bytes.Equal(word, []byte("let")):
		return syntax.LET
	case bytes.Equal(word, []byte("rec")):
		return syntax.REC
	case bytes.Equal(word, []byte("and")):
		return syntax.AND
	case bytes.Equal(word, []byte("in")):
		return syntax.IN
	case bytes.Equal(word, []byte("module")):
		return syntax.MODULE
	case bytes.Equal(word, []byte("namespace")):
		return syntax.NAMESPACE
	case bytes.Equal(word, []byte("open")):
		return syntax.OPEN
	case bytes.Equal(word, []byte("type")):
		return syntax.TYPE
	case bytes.Equal(word, []byte("of")):
		return syntax.OF
	case bytes.Equal(word, []byte("match")):
		return syntax.MATCH
	case bytes.Equal(word, []byte("with")):
		return syntax.WITH
	case bytes.Equal(word, []byte("if")):
		return syntax.IF
	case bytes.Equal(word, []byte("then")):
		return syntax.THEN
	case bytes.Equal(word, []byte("elif")):
		return syntax.ELIF
	case bytes.Equal(word, []byte("else")):
		return syntax.ELSE
	case bytes.Equal(word, []byte("fun")):
		return syntax.FUN
	case bytes.Equal(word, []byte("do")):
		return syntax.DO
	default:
		return syntax.IDENT
	}
}

func isOperatorChar(ch byte) bool {
	switch ch {
	case '!', '%', '&', '*', '+', '-', '.', '/', '<', '=', '>', '?', '@', '^', '|', '~', ':':
		return true
	}
	return false
}

func isNumberChar(ch byte) bool {
	return ch >= '0' && ch <= '9' ||
		ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F' ||
		ch == '.' || ch == '_' ||
		ch == 'x' || ch == 'X' || ch == 'o' || ch == 'O' ||
		ch == 'L' || ch == 'l' || ch == 'u' || ch == 'U' ||
		ch == 'y' || ch == 's' || ch == 'm' || ch == 'M'
}

// skipInlineWhitespace skips spaces, tabs, and carriage returns, but never
// newlines: those are emitted as tokens because blank-line structure is
// significant to the formatter.
func (l *Lexer) skipInlineWhitespace() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch != ' ' && ch != '\t' && ch != '\r' {
			break
		}
		l.column++
		l.pos++
	}
}

// Helper methods

func (l *Lexer) peek() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.source) {
		return 0
	}
	return l.source[l.pos+offset]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}
