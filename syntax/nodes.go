// Package syntax declares the types used to represent source positions,
// tokens, and the syntax tree consumed by the trivia and printing layers.
//
// The tree is deliberately trivia-free: comments, blank lines, and compiler
// directives are recovered separately from the token stream and re-attached
// by the trivia package. Downstream code therefore never inspects a node's
// concrete Go type for trivia purposes; it addresses nodes only through
// their structural type-tag string (TypeName) and source range.
package syntax

// Node is the interface implemented by every syntax-tree node.
//
// TypeName returns a stable structural tag (e.g. "binding.Let",
// "expr.App") used by the trivia matcher to apply node-specific attachment
// rules without depending on concrete types. Tokens returns the significant
// keyword and symbol tokens the node owns directly (its anchor points),
// in source order.
type Node interface {
	Range() Range
	TypeName() string
	Children() []Node
	Tokens() []Token
}

// Decl is a top-level declaration in a module.
type Decl interface {
	Node
	declNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// File is the root node of a parsed source file.
type File struct {
	Rng   Range
	Decls []Decl
}

func (f *File) Range() Range     { return f.Rng }
func (f *File) TypeName() string { return "file" }
func (f *File) Tokens() []Token  { return nil }

func (f *File) Children() []Node {
	children := make([]Node, len(f.Decls))
	for i, d := range f.Decls {
		children[i] = d
	}
	return children
}

// ModuleDecl is a `module Name` declaration.
type ModuleDecl struct {
	Rng       Range
	ModuleTok Token
	Name      string
	NameTok   Token
}

func (m *ModuleDecl) Range() Range     { return m.Rng }
func (m *ModuleDecl) TypeName() string { return "decl.Module" }
func (m *ModuleDecl) Children() []Node { return nil }
func (m *ModuleDecl) Tokens() []Token  { return nonZero(m.ModuleTok) }
func (m *ModuleDecl) declNode()        {}

// OpenDecl is an `open Some.Path` declaration.
type OpenDecl struct {
	Rng     Range
	OpenTok Token
	Path    string
}

func (o *OpenDecl) Range() Range     { return o.Rng }
func (o *OpenDecl) TypeName() string { return "decl.Open" }
func (o *OpenDecl) Children() []Node { return nil }
func (o *OpenDecl) Tokens() []Token  { return nonZero(o.OpenTok) }
func (o *OpenDecl) declNode()        {}

// LetBinding is a `let [rec] name args = body` binding.
//
// Example:
//
//	let rec fib n =
//	    if n < 2 then n else fib (n - 1) + fib (n - 2)
type LetBinding struct {
	Rng       Range
	LetTok    Token
	RecTok    Token // zero when the binding is not recursive
	Name      string
	NameTok   Token
	Params    []Token // parameter identifiers, in order
	EqualsTok Token
	Body      Expr
}

func (l *LetBinding) Range() Range     { return l.Rng }
func (l *LetBinding) TypeName() string { return "binding.Let" }
func (l *LetBinding) declNode()        {}

func (l *LetBinding) Children() []Node {
	if l.Body == nil {
		return nil
	}
	return []Node{l.Body}
}

func (l *LetBinding) Tokens() []Token {
	toks := nonZero(l.LetTok, l.RecTok, l.EqualsTok)
	if verbatimIdent(l.NameTok.Kind, l.Name) {
		toks = append(toks, l.NameTok)
	}
	for _, p := range l.Params {
		if verbatimIdent(p.Kind, "") {
			toks = append(toks, p)
		}
	}
	return toks
}

// DoDecl is a top-level `do expr` declaration.
type DoDecl struct {
	Rng   Range
	DoTok Token
	Body  Expr
}

func (d *DoDecl) Range() Range     { return d.Rng }
func (d *DoDecl) TypeName() string { return "decl.Do" }
func (d *DoDecl) declNode()        {}

func (d *DoDecl) Children() []Node {
	if d.Body == nil {
		return nil
	}
	return []Node{d.Body}
}

func (d *DoDecl) Tokens() []Token { return nonZero(d.DoTok) }

// TypeDefn is a `type Name = | Case | Case of ...` union definition.
type TypeDefn struct {
	Rng       Range
	TypeTok   Token
	Name      string
	NameTok   Token
	EqualsTok Token
	Cases     []*UnionCase
}

func (t *TypeDefn) Range() Range     { return t.Rng }
func (t *TypeDefn) TypeName() string { return "type.Defn" }
func (t *TypeDefn) declNode()        {}

func (t *TypeDefn) Children() []Node {
	children := make([]Node, len(t.Cases))
	for i, c := range t.Cases {
		children[i] = c
	}
	return children
}

func (t *TypeDefn) Tokens() []Token {
	return nonZero(t.TypeTok, t.EqualsTok)
}

// UnionCase is one `| Name [of Type]` arm of a union type definition.
type UnionCase struct {
	Rng     Range
	BarTok  Token
	Name    string
	NameTok Token
	OfTok   Token   // zero when the case carries no payload
	Fields  []Token // payload type identifiers
}

func (u *UnionCase) Range() Range     { return u.Rng }
func (u *UnionCase) TypeName() string { return "type.UnionCase" }
func (u *UnionCase) Children() []Node { return nil }

func (u *UnionCase) Tokens() []Token {
	return nonZero(u.BarTok, u.OfTok)
}

// IdentExpr is a bare identifier or a double-backtick identifier.
type IdentExpr struct {
	Tok    Token
	Name   string
	Ticked bool // true for ``identifiers like this``
}

func (i *IdentExpr) Range() Range     { return i.Tok.Range() }
func (i *IdentExpr) TypeName() string { return "expr.Ident" }
func (i *IdentExpr) Children() []Node { return nil }
func (i *IdentExpr) exprNode()        {}

// Tokens exposes the identifier token as an anchor when its spelling must
// round-trip verbatim (double-backtick form, operator-as-word names).
func (i *IdentExpr) Tokens() []Token {
	if verbatimIdent(i.Tok.Kind, i.Name) {
		return []Token{i.Tok}
	}
	return nil
}

// verbatimIdent reports whether an identifier token carries a spelling that
// must round-trip verbatim and therefore needs its own token anchor:
// double-backtick identifiers and operator names referenced by word form.
func verbatimIdent(kind TokenKind, name string) bool {
	return kind == TICKED_IDENT || len(name) > 3 && name[:3] == "op_"
}

// OperatorExpr is an operator used in expression position (e.g. `+` inside
// an application sequence).
type OperatorExpr struct {
	Tok  Token
	Name string
}

func (o *OperatorExpr) Range() Range     { return o.Tok.Range() }
func (o *OperatorExpr) TypeName() string { return "expr.Operator" }
func (o *OperatorExpr) Children() []Node { return nil }
func (o *OperatorExpr) Tokens() []Token  { return nil }
func (o *OperatorExpr) exprNode()        {}

// ConstExpr is a literal constant: number, string (including verbatim and
// triple-quoted forms), or character.
type ConstExpr struct {
	Tok  Token
	Text string // literal text exactly as written, including quotes
}

func (c *ConstExpr) Range() Range     { return c.Tok.Range() }
func (c *ConstExpr) TypeName() string { return "expr.Const" }
func (c *ConstExpr) Children() []Node { return nil }
func (c *ConstExpr) exprNode()        {}

// Tokens exposes the literal token as an anchor so the trivia pipeline can
// attach its verbatim spelling (multi-line strings, suffixed numbers).
func (c *ConstExpr) Tokens() []Token { return []Token{c.Tok} }

// AppExpr is function application by juxtaposition: `f x y`. Operator
// sequences are stored flat in Items as parsed.
type AppExpr struct {
	Rng   Range
	Items []Expr
}

func (a *AppExpr) Range() Range     { return a.Rng }
func (a *AppExpr) TypeName() string { return "expr.App" }
func (a *AppExpr) Tokens() []Token  { return nil }
func (a *AppExpr) exprNode()        {}

func (a *AppExpr) Children() []Node {
	children := make([]Node, len(a.Items))
	for i, item := range a.Items {
		children[i] = item
	}
	return children
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Rng    Range
	LParen Token
	Inner  Expr
	RParen Token
}

func (p *ParenExpr) Range() Range     { return p.Rng }
func (p *ParenExpr) TypeName() string { return "expr.Paren" }
func (p *ParenExpr) exprNode()        {}

func (p *ParenExpr) Children() []Node {
	if p.Inner == nil {
		return nil
	}
	return []Node{p.Inner}
}

func (p *ParenExpr) Tokens() []Token { return nil }

// IfExpr is an `if cond then a [else b]` expression. An `elif` chain is
// represented as a nested IfExpr in Else.
type IfExpr struct {
	Rng     Range
	IfTok   Token
	Cond    Expr
	ThenTok Token
	Then    Expr
	ElseTok Token // zero when there is no else branch
	Else    Expr  // nil when there is no else branch
}

func (i *IfExpr) Range() Range     { return i.Rng }
func (i *IfExpr) TypeName() string { return "expr.IfThenElse" }
func (i *IfExpr) exprNode()        {}

func (i *IfExpr) Children() []Node {
	var children []Node
	if i.Cond != nil {
		children = append(children, i.Cond)
	}
	if i.Then != nil {
		children = append(children, i.Then)
	}
	if i.Else != nil {
		children = append(children, i.Else)
	}
	return children
}

func (i *IfExpr) Tokens() []Token {
	return nonZero(i.IfTok, i.ThenTok, i.ElseTok)
}

// MatchExpr is a `match scrutinee with | pat -> body ...` expression.
type MatchExpr struct {
	Rng       Range
	MatchTok  Token
	Scrutinee Expr
	WithTok   Token
	Clauses   []*MatchClause
}

func (m *MatchExpr) Range() Range     { return m.Rng }
func (m *MatchExpr) TypeName() string { return "expr.Match" }
func (m *MatchExpr) exprNode()        {}

func (m *MatchExpr) Children() []Node {
	var children []Node
	if m.Scrutinee != nil {
		children = append(children, m.Scrutinee)
	}
	for _, c := range m.Clauses {
		children = append(children, c)
	}
	return children
}

func (m *MatchExpr) Tokens() []Token {
	return nonZero(m.MatchTok, m.WithTok)
}

// MatchClause is one `| pattern -> body` arm of a match expression.
type MatchClause struct {
	Rng      Range
	BarTok   Token
	Pattern  Expr
	ArrowTok Token
	Body     Expr
}

func (c *MatchClause) Range() Range     { return c.Rng }
func (c *MatchClause) TypeName() string { return "match.Clause" }
func (c *MatchClause) exprNode()        {}

func (c *MatchClause) Children() []Node {
	var children []Node
	if c.Pattern != nil {
		children = append(children, c.Pattern)
	}
	if c.Body != nil {
		children = append(children, c.Body)
	}
	return children
}

func (c *MatchClause) Tokens() []Token {
	return nonZero(c.BarTok, c.ArrowTok)
}

// nonZero filters out zero tokens, preserving order.
func nonZero(toks ...Token) []Token {
	var out []Token
	for _, t := range toks {
		if !t.IsZero() {
			out = append(out, t)
		}
	}
	return out
}
