package parser

import (
	"context"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/kontomondo/fantomas/syntax"
)

func TestParseModuleAndOpen(t *testing.T) {
	source := "module Example\nopen System.Text\n"
	file, _ := MustParseBytes(context.Background(), []byte(source))

	assert.Equal(t, 2, len(file.Decls))

	mod, ok := file.Decls[0].(*syntax.ModuleDecl)
	assert.True(t, ok)
	assert.Equal(t, "Example", mod.Name)

	open, ok := file.Decls[1].(*syntax.OpenDecl)
	assert.True(t, ok)
	assert.Equal(t, "System.Text", open.Path)
}

func TestParseLetBinding(t *testing.T) {
	source := "let add a b = a + b\n"
	file, _ := MustParseBytes(context.Background(), []byte(source))

	binding, ok := file.Decls[0].(*syntax.LetBinding)
	assert.True(t, ok)
	assert.Equal(t, "add", binding.Name)
	assert.Equal(t, 2, len(binding.Params))
	assert.True(t, binding.RecTok.IsZero())

	app, ok := binding.Body.(*syntax.AppExpr)
	assert.True(t, ok)
	assert.Equal(t, 3, len(app.Items))
}

func TestParseLetRec(t *testing.T) {
	source := "let rec fib n =\n    if n < 2 then n else fib (n - 1)\n"
	file, _ := MustParseBytes(context.Background(), []byte(source))

	binding, ok := file.Decls[0].(*syntax.LetBinding)
	assert.True(t, ok)
	assert.False(t, binding.RecTok.IsZero())
	assert.Equal(t, "fib", binding.Name)

	_, ok = binding.Body.(*syntax.IfExpr)
	assert.True(t, ok)
}

func TestParseOperatorDefinition(t *testing.T) {
	source := "let (+.) a b = a + b\n"
	file, _ := MustParseBytes(context.Background(), []byte(source))

	binding, ok := file.Decls[0].(*syntax.LetBinding)
	assert.True(t, ok)
	assert.Equal(t, "+.", binding.Name)
}

func TestParseUnionType(t *testing.T) {
	source := "type Shape =\n    | Circle of float\n    | Rect of float * float\n    | Point\n"
	file, _ := MustParseBytes(context.Background(), []byte(source))

	defn, ok := file.Decls[0].(*syntax.TypeDefn)
	assert.True(t, ok)
	assert.Equal(t, "Shape", defn.Name)
	assert.Equal(t, 3, len(defn.Cases))

	assert.Equal(t, "Circle", defn.Cases[0].Name)
	assert.Equal(t, 1, len(defn.Cases[0].Fields))
	assert.Equal(t, "Rect", defn.Cases[1].Name)
	assert.Equal(t, 3, len(defn.Cases[1].Fields)) // float * float
	assert.Equal(t, "Point", defn.Cases[2].Name)
	assert.True(t, defn.Cases[2].OfTok.IsZero())
}

func TestParseElifChain(t *testing.T) {
	source := "let f n =\n    if n < 0 then a\n    elif n = 0 then b\n    else c\n"
	file, _ := MustParseBytes(context.Background(), []byte(source))

	binding := file.Decls[0].(*syntax.LetBinding)
	outer, ok := binding.Body.(*syntax.IfExpr)
	assert.True(t, ok)

	// The elif branch is a nested if with no else token of its own on the
	// outer node.
	assert.True(t, outer.ElseTok.IsZero())
	nested, ok := outer.Else.(*syntax.IfExpr)
	assert.True(t, ok)
	assert.False(t, nested.ElseTok.IsZero())
	assert.NotZero(t, nested.Else)
}

func TestParseMatch(t *testing.T) {
	source := "let describe n =\n    match n with\n    | 0 -> zero\n    | 1 -> one\n    | _ -> many\n"
	file, _ := MustParseBytes(context.Background(), []byte(source))

	binding := file.Decls[0].(*syntax.LetBinding)
	m, ok := binding.Body.(*syntax.MatchExpr)
	assert.True(t, ok)
	assert.Equal(t, 3, len(m.Clauses))

	first := m.Clauses[0]
	pat, ok := first.Pattern.(*syntax.ConstExpr)
	assert.True(t, ok)
	assert.Equal(t, "0", pat.Text)
}

func TestParseDoDecl(t *testing.T) {
	source := "do printfn \"hello\"\n"
	file, _ := MustParseBytes(context.Background(), []byte(source))

	d, ok := file.Decls[0].(*syntax.DoDecl)
	assert.True(t, ok)
	_, ok = d.Body.(*syntax.AppExpr)
	assert.True(t, ok)
}

func TestParseOffsideRule(t *testing.T) {
	// The second let starts at column 1, so it ends the first binding's
	// body even without a blank line.
	source := "let a =\n    1\nlet b =\n    2\n"
	file, _ := MustParseBytes(context.Background(), []byte(source))

	assert.Equal(t, 2, len(file.Decls))
}

func TestParseErrorHasPosition(t *testing.T) {
	source := "let = 3\n"
	_, _, err := ParseBytesWithFilename(context.Background(), "broken.fsx", []byte(source))
	assert.Error(t, err)

	perr, ok := err.(*ParseError)
	assert.True(t, ok)
	assert.Equal(t, "broken.fsx", perr.GetPosition().Filename)
	assert.Equal(t, 1, perr.GetPosition().Line)
}

func TestParseReturnsRawTokens(t *testing.T) {
	source := "// note\nlet a = 1\n"
	_, tokens, err := ParseBytes(context.Background(), []byte(source))
	assert.NoError(t, err)

	// The raw stream keeps the comment even though the tree drops it.
	found := false
	for _, tok := range tokens {
		if tok.Kind == syntax.LINE_COMMENT {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParseTickedIdentBinding(t *testing.T) {
	source := "let ``total count`` = 42\n"
	file, _ := MustParseBytes(context.Background(), []byte(source))

	binding := file.Decls[0].(*syntax.LetBinding)
	assert.Equal(t, "``total count``", binding.Name)

	c, ok := binding.Body.(*syntax.ConstExpr)
	assert.True(t, ok)
	assert.Equal(t, "42", c.Text)
}
