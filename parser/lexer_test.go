package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/kontomondo/fantomas/syntax"
)

// kindsOf scans source and returns the token kinds, excluding EOF.
func kindsOf(t *testing.T, source string) []syntax.TokenKind {
	t.Helper()

	tokens := NewLexer([]byte(source), "test.fsx").ScanAll()
	kinds := make([]syntax.TokenKind, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == syntax.EOF {
			continue
		}
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func TestLexSimpleBinding(t *testing.T) {
	kinds := kindsOf(t, "let a = 7\n")

	assert.Equal(t, []syntax.TokenKind{
		syntax.LET, syntax.IDENT, syntax.EQUALS, syntax.NUMBER, syntax.NEWLINE,
	}, kinds)
}

func TestLexRetainsTrivia(t *testing.T) {
	source := "// a comment\n\nlet a = 1 // trailing\n"
	kinds := kindsOf(t, source)

	assert.Equal(t, []syntax.TokenKind{
		syntax.LINE_COMMENT, syntax.NEWLINE,
		syntax.NEWLINE,
		syntax.LET, syntax.IDENT, syntax.EQUALS, syntax.NUMBER, syntax.LINE_COMMENT, syntax.NEWLINE,
	}, kinds)
}

func TestLexNestedBlockComment(t *testing.T) {
	source := "(* outer (* inner *) still outer *)\n"
	tokens := NewLexer([]byte(source), "test.fsx").ScanAll()

	assert.Equal(t, syntax.BLOCK_COMMENT, tokens[0].Kind)
	assert.Equal(t, "(* outer (* inner *) still outer *)", tokens[0].String([]byte(source)))
}

func TestLexHashDirectiveOnlyAtColumnOne(t *testing.T) {
	source := "#if DEBUG\nlet a = 1\n#endif\n"
	kinds := kindsOf(t, source)

	assert.Equal(t, []syntax.TokenKind{
		syntax.HASH_DIRECTIVE, syntax.NEWLINE,
		syntax.LET, syntax.IDENT, syntax.EQUALS, syntax.NUMBER, syntax.NEWLINE,
		syntax.HASH_DIRECTIVE, syntax.NEWLINE,
	}, kinds)
}

func TestLexTripleQuotedString(t *testing.T) {
	source := "let s = \"\"\"line one\nline two\"\"\"\n"
	tokens := NewLexer([]byte(source), "test.fsx").ScanAll()

	var str syntax.Token
	for _, tok := range tokens {
		if tok.Kind == syntax.STRING {
			str = tok
		}
	}
	assert.Equal(t, "\"\"\"line one\nline two\"\"\"", str.String([]byte(source)))
}

func TestLexVerbatimString(t *testing.T) {
	source := `let p = @"C:\temp\file"` + "\n"
	tokens := NewLexer([]byte(source), "test.fsx").ScanAll()

	var str syntax.Token
	for _, tok := range tokens {
		if tok.Kind == syntax.STRING {
			str = tok
		}
	}
	assert.Equal(t, `@"C:\temp\file"`, str.String([]byte(source)))
}

func TestLexTickedIdent(t *testing.T) {
	source := "let ``my value`` = 1\n"
	tokens := NewLexer([]byte(source), "test.fsx").ScanAll()

	assert.Equal(t, syntax.TICKED_IDENT, tokens[1].Kind)
	assert.Equal(t, "``my value``", tokens[1].String([]byte(source)))
}

func TestLexNumberSpellings(t *testing.T) {
	for _, spelling := range []string{"42", "3.14", "0xFF", "100_000", "1L", "3.0f"} {
		source := "let n = " + spelling + "\n"
		tokens := NewLexer([]byte(source), "test.fsx").ScanAll()

		found := false
		for _, tok := range tokens {
			if tok.Kind == syntax.NUMBER {
				assert.Equal(t, spelling, tok.String([]byte(source)))
				found = true
			}
		}
		assert.True(t, found, "no NUMBER token for %q", spelling)
	}
}

func TestLexQualifiedIdent(t *testing.T) {
	source := "List.map f xs\n"
	tokens := NewLexer([]byte(source), "test.fsx").ScanAll()

	assert.Equal(t, syntax.IDENT, tokens[0].Kind)
	assert.Equal(t, "List.map", tokens[0].String([]byte(source)))
}

func TestLexOperators(t *testing.T) {
	source := "a |> b -> c = d | e\n"
	kinds := kindsOf(t, source)

	assert.Equal(t, []syntax.TokenKind{
		syntax.IDENT, syntax.OPERATOR, syntax.IDENT, syntax.ARROW,
		syntax.IDENT, syntax.EQUALS, syntax.IDENT, syntax.BAR, syntax.IDENT,
		syntax.NEWLINE,
	}, kinds)
}

func TestLexCharLiteral(t *testing.T) {
	source := "let c = 'a'\nlet nl = '\\n'\n"
	tokens := NewLexer([]byte(source), "test.fsx").ScanAll()

	var chars []string
	for _, tok := range tokens {
		if tok.Kind == syntax.CHAR {
			chars = append(chars, tok.String([]byte(source)))
		}
	}
	assert.Equal(t, []string{"'a'", `'\n'`}, chars)
}

func TestLexPositions(t *testing.T) {
	source := "let a = 1\nlet b = 2\n"
	tokens := NewLexer([]byte(source), "test.fsx").ScanAll()

	// Second "let" starts line 2, column 1.
	var second syntax.Token
	count := 0
	for _, tok := range tokens {
		if tok.Kind == syntax.LET {
			count++
			if count == 2 {
				second = tok
			}
		}
	}
	assert.Equal(t, 2, second.Line)
	assert.Equal(t, 1, second.Column)
	assert.Equal(t, 10, second.Start)
}
