package syntax

// TokenKind represents the raw classification of a token assigned by the
// lexer.
type TokenKind uint8

const (
	// Special tokens
	EOF TokenKind = iota
	ILLEGAL

	// Layout and trivia-bearing tokens. The lexer retains these instead of
	// discarding them; the trivia classifier turns them into typed trivia.
	NEWLINE       // \n (one token per line break)
	LINE_COMMENT  // //...
	BLOCK_COMMENT // (* ... *), possibly spanning lines
	HASH_DIRECTIVE // #if / #else / #endif line, captured verbatim

	// Keywords
	LET       // let
	REC       // rec
	AND       // and
	IN        // in
	MODULE    // module
	NAMESPACE // namespace
	OPEN      // open
	TYPE      // type
	OF        // of
	MATCH     // match
	WITH      // with
	IF        // if
	THEN      // then
	ELIF      // elif
	ELSE      // else
	FUN       // fun
	DO        // do

	// Literals
	NUMBER // 123, 3.14, 0xFF
	STRING // "...", @"...", """..."""
	CHAR   // 'a'
	IDENT  // identifiers
	TICKED_IDENT // ``identifier with spaces``
	OPERATOR     // +, -, |>, >>, ...

	// Symbols
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	COMMA    // ,
	EQUALS   // =
	ARROW    // ->
	BAR      // |
)

var tokenKindNames = map[TokenKind]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	NEWLINE:        "NEWLINE",
	LINE_COMMENT:   "LINE_COMMENT",
	BLOCK_COMMENT:  "BLOCK_COMMENT",
	HASH_DIRECTIVE: "HASH_DIRECTIVE",

	LET:       "let",
	REC:       "rec",
	AND:       "and",
	IN:        "in",
	MODULE:    "module",
	NAMESPACE: "namespace",
	OPEN:      "open",
	TYPE:      "type",
	OF:        "of",
	MATCH:     "match",
	WITH:      "with",
	IF:        "if",
	THEN:      "then",
	ELIF:      "elif",
	ELSE:      "else",
	FUN:       "fun",
	DO:        "do",

	NUMBER:       "NUMBER",
	STRING:       "STRING",
	CHAR:         "CHAR",
	IDENT:        "IDENT",
	TICKED_IDENT: "TICKED_IDENT",
	OPERATOR:     "OPERATOR",

	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",
	COMMA:    ",",
	EQUALS:   "=",
	ARROW:    "->",
	BAR:      "|",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsKeyword reports whether the kind is a reserved word.
func (k TokenKind) IsKeyword() bool {
	return k >= LET && k <= DO
}

// Token represents a lexical token with zero-copy semantics.
// Instead of storing the token text as a string (which would allocate),
// we store byte offsets into the original source buffer.
type Token struct {
	Kind   TokenKind
	Start  int // Byte offset into source buffer
	End    int // End offset (exclusive)
	Line   int // Line number (1-indexed)
	Column int // Column number (1-indexed)
}

// Range returns the byte range the token occupies.
func (t Token) Range() Range {
	return Range{Start: t.Start, End: t.End}
}

// String materializes the token text from the source buffer.
// This allocation only happens when the token text is actually needed,
// not during lexing (zero-copy).
func (t Token) String(source []byte) string {
	if t.Start >= len(source) || t.End > len(source) || t.Start > t.End {
		return ""
	}
	return string(source[t.Start:t.End])
}

// Bytes returns a zero-copy view of the token text.
// No allocation occurs - this is a slice into the source buffer.
func (t Token) Bytes(source []byte) []byte {
	if t.Start >= len(source) || t.End > len(source) || t.Start > t.End {
		return nil
	}
	return source[t.Start:t.End]
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// IsZero reports whether the token is the zero value (no token).
func (t Token) IsZero() bool {
	return t.Kind == EOF && t.Start == 0 && t.End == 0 && t.Line == 0
}
