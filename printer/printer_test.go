package printer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/kontomondo/fantomas/parser"
	"github.com/kontomondo/fantomas/syntax"
	"github.com/kontomondo/fantomas/trivia"
)

func format(t *testing.T, source string, opts ...Option) (string, *trivia.Index) {
	t.Helper()

	file, tokens, err := parser.ParseBytes(context.Background(), []byte(source))
	assert.NoError(t, err)

	src := syntax.NewSource([]byte(source))
	idx, dropped := trivia.Build(src, tokens, file)
	assert.Equal(t, 0, len(dropped))

	var buf bytes.Buffer
	err = New(opts...).Print(file, src, idx, &buf)
	assert.NoError(t, err)
	return buf.String(), idx
}

func TestPrintCanonicalFileUnchanged(t *testing.T) {
	source := strings.Join([]string{
		"module Sample",
		"",
		"// leading",
		"let a = 7  // trailing",
		"",
		"let add x y =",
		"    if x then",
		"        y",
		"    else",
		"        x",
		"",
	}, "\n")

	got, _ := format(t, source)
	assert.Equal(t, source, got)
}

func TestPrintNormalizesSpacing(t *testing.T) {
	source := "let a   =    7\n"
	got, _ := format(t, source)
	assert.Equal(t, "let a = 7\n", got)
}

func TestPrintIdempotent(t *testing.T) {
	source := strings.Join([]string{
		"module Sample",
		"let a   =   7 // note",
		"",
		"   ",
		"",
		"let f x =",
		"  if x then 1",
		"  else 2",
		"",
	}, "\n")

	once, _ := format(t, source)
	twice, _ := format(t, once)
	assert.Equal(t, once, twice)
}

func TestPrintConsumesAllTrivia(t *testing.T) {
	source := strings.Join([]string{
		"module Sample",
		"",
		"// standalone",
		"let a = 0xFF // trailing",
		"",
		"(* block *)",
		"let greeting = \"hello\"",
		"",
		"type Shape =",
		"    | Circle of float",
		"    | Rect of float * float",
		"",
		"do printfn greeting",
		"",
	}, "\n")

	_, idx := format(t, source)
	assert.Equal(t, 0, idx.Unconsumed())
}

func TestPrintCapsBlankLines(t *testing.T) {
	source := "let a = 1\n\n\n\n\nlet b = 2\n"
	got, _ := format(t, source)
	assert.Equal(t, "let a = 1\n\n\nlet b = 2\n", got)
}

func TestPrintNeverOpensWithBlankLines(t *testing.T) {
	source := "\n\nlet a = 1\n"
	got, _ := format(t, source)
	assert.Equal(t, "let a = 1\n", got)
}

func TestPrintTrailingCommentSpacing(t *testing.T) {
	got, _ := format(t, "let a = 7 // c\n")
	assert.Equal(t, "let a = 7  // c\n", got)
}

func TestPrintCommentColumn(t *testing.T) {
	got, _ := format(t, "let a = 7 // c\n", WithCommentColumn(25))
	want := "let a = 7" + strings.Repeat(" ", 15) + "// c\n"
	assert.Equal(t, want, got)
}

func TestPrintDirectivesStayAtColumnOne(t *testing.T) {
	source := "#if DEBUG\nlet dbg = 1\n#endif\n"
	got, _ := format(t, source)
	assert.Equal(t, source, got)
}

func TestPrintLiteralSpellingsVerbatim(t *testing.T) {
	source := strings.Join([]string{
		"let mask = 0xFF_FFu",
		"let path = @\"C:\\temp\"",
		"let nl = '\\n'",
		"",
	}, "\n")

	got, _ := format(t, source)
	assert.Equal(t, source, got)
}

func TestPrintTripleQuotedInteriorNotReindented(t *testing.T) {
	source := "let s =\n    \"\"\"multi\nline\"\"\"\n"
	got, _ := format(t, source)
	assert.Equal(t, source, got)
}

func TestPrintTickedIdentKeepsSpelling(t *testing.T) {
	source := "let x = ``my value``\n"
	got, _ := format(t, source)
	assert.Equal(t, source, got)
}

func TestPrintUnionTypeWithCaseComment(t *testing.T) {
	source := strings.Join([]string{
		"type Shape =",
		"    // round",
		"    | Circle of float",
		"    | Rect of float * float",
		"",
	}, "\n")

	got, _ := format(t, source)
	assert.Equal(t, source, got)
}

func TestPrintElifChainStaysFlat(t *testing.T) {
	source := strings.Join([]string{
		"let f n =",
		"    if a then",
		"        1",
		"    elif b then",
		"        2",
		"    else",
		"        3",
		"",
	}, "\n")

	got, _ := format(t, source)
	assert.Equal(t, source, got)
}

func TestPrintMatchClauses(t *testing.T) {
	source := strings.Join([]string{
		"let describe shape =",
		"    match shape with",
		"    // degenerate first",
		"    | Circle -> 1",
		"    | Rect -> 2",
		"",
	}, "\n")

	got, _ := format(t, source)
	assert.Equal(t, source, got)
}

func TestPrintIndentWidthOption(t *testing.T) {
	source := "let f x =\n    if x then\n        1\n    else\n        2\n"
	want := "let f x =\n  if x then\n    1\n  else\n    2\n"

	got, _ := format(t, source, WithIndentWidth(2))
	assert.Equal(t, want, got)
}

func TestPrintParagraphBlockCommentKeepsItsPlace(t *testing.T) {
	source := strings.Join([]string{
		"let a = 1",
		"",
		"(* second part *)",
		"let b = 2",
		"",
	}, "\n")

	got, _ := format(t, source)
	assert.Equal(t, source, got)
}

func TestPrintTrailingCommentAfterLastDecl(t *testing.T) {
	source := "let a = 1\n// the end\n"
	got, _ := format(t, source)

	assert.True(t, strings.Contains(got, "// the end"))
	assert.True(t, strings.HasSuffix(got, "\n"))
}

func TestPrintCommentInsideBodyStaysInPlace(t *testing.T) {
	source := strings.Join([]string{
		"let f x =",
		"    // note",
		"    42",
		"",
	}, "\n")

	got, _ := format(t, source)
	assert.Equal(t, source, got)
}

func TestPrintCommentInsideIfBranchStaysInPlace(t *testing.T) {
	source := strings.Join([]string{
		"let f n =",
		"    if n then",
		"        // low",
		"        a",
		"    else",
		"        b",
		"",
	}, "\n")

	got, _ := format(t, source)
	assert.Equal(t, source, got)
}

func TestPrintDirectiveGuardingBodyStaysWithIt(t *testing.T) {
	source := strings.Join([]string{
		"let f x =",
		"#if DEBUG",
		"    1",
		"#endif",
		"",
	}, "\n")

	got, _ := format(t, source)
	assert.Equal(t, source, got)
}

func TestPrintTickedBindingNameRoundTrips(t *testing.T) {
	source := "let ``my value`` = 1\n"
	got, _ := format(t, source)
	assert.Equal(t, source, got)
}

func TestPrintOperatorWordBindingNameRoundTrips(t *testing.T) {
	source := "let op_Addition a b = a\n"
	got, _ := format(t, source)
	assert.Equal(t, source, got)
}

func TestPrintTickedParamRoundTrips(t *testing.T) {
	source := "let f ``the arg`` = 1\n"
	got, _ := format(t, source)
	assert.Equal(t, source, got)
}
