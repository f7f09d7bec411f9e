// Package parser implements the front end for F#-style source files: a
// zero-copy lexer that retains trivia-bearing tokens, and a recursive
// descent parser producing the trivia-free syntax tree consumed by the
// trivia matcher and the printer.
//
// The parser deliberately implements only the offside-rule subset the
// formatter exercises: module/open/let/type/do declarations, applications,
// if/then/elif/else, match/with, and literal constants. Trivia recovery
// never depends on the parser understanding a construct; unknown content
// surfaces as a ParseError rather than a misshapen tree.
package parser

import (
	"context"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/kontomondo/fantomas/syntax"
)

// Parser builds a syntax tree from a token stream.
type Parser struct {
	source   []byte
	filename string
	tokens   []syntax.Token // significant tokens only (trivia stripped)
	pos      int
	interner *Interner
}

// NewParser creates a parser over the raw token stream produced by the
// lexer. Trivia-bearing tokens (newlines, comments, directives) are
// filtered out up front; the trivia pipeline consumes them from the raw
// stream separately.
func NewParser(tokens []syntax.Token, source []byte, filename string, interner *Interner) *Parser {
	significant := slices.DeleteFunc(slices.Clone(tokens), func(t syntax.Token) bool {
		switch t.Kind {
		case syntax.NEWLINE, syntax.LINE_COMMENT, syntax.BLOCK_COMMENT, syntax.HASH_DIRECTIVE:
			return true
		}
		return false
	})

	if interner == nil {
		interner = NewInterner(256)
	}

	return &Parser{
		source:   source,
		filename: filename,
		tokens:   significant,
		interner: interner,
	}
}

// ParseBytes lexes and parses source, returning the tree and the raw token
// stream (which the trivia pipeline needs alongside the tree).
func ParseBytes(ctx context.Context, source []byte) (*syntax.File, []syntax.Token, error) {
	return ParseBytesWithFilename(ctx, "", source)
}

// ParseBytesWithFilename is ParseBytes with a filename for error reporting.
func ParseBytesWithFilename(ctx context.Context, filename string, source []byte) (*syntax.File, []syntax.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	lexer := NewLexer(source, filename)
	tokens := lexer.ScanAll()

	p := NewParser(tokens, source, filename, lexer.Interner())
	file, err := p.Parse()
	if err != nil {
		return nil, tokens, err
	}
	return file, tokens, nil
}

// MustParseBytes parses source and panics on error. Test helper.
func MustParseBytes(ctx context.Context, source []byte) (*syntax.File, []syntax.Token) {
	file, tokens, err := ParseBytes(ctx, source)
	if err != nil {
		panic(fmt.Sprintf("parse failed: %v", err))
	}
	return file, tokens
}

// Parse consumes the token stream and returns the file node.
func (p *Parser) Parse() (*syntax.File, error) {
	file := &syntax.File{}

	for !p.atEOF() {
		decl, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		file.Decls = append(file.Decls, decl)
	}

	if len(file.Decls) > 0 {
		file.Rng = syntax.Range{
			Start: file.Decls[0].Range().Start,
			End:   file.Decls[len(file.Decls)-1].Range().End,
		}
	}

	return file, nil
}

func (p *Parser) parseDecl() (syntax.Decl, error) {
	tok := p.peek()
	switch tok.Kind {
	case syntax.MODULE, syntax.NAMESPACE:
		return p.parseModule()
	case syntax.OPEN:
		return p.parseOpen()
	case syntax.LET:
		return p.parseLet()
	case syntax.TYPE:
		return p.parseType()
	case syntax.DO:
		return p.parseDo()
	default:
		return nil, p.errorAt(tok, "unexpected token %s at top level", tok.Kind)
	}
}

func (p *Parser) parseModule() (*syntax.ModuleDecl, error) {
	moduleTok := p.next()

	nameTok := p.peek()
	if nameTok.Kind != syntax.IDENT {
		return nil, p.errorAt(nameTok, "expected module name, got %s", nameTok.Kind)
	}
	p.next()

	return &syntax.ModuleDecl{
		Rng:       syntax.Range{Start: moduleTok.Start, End: nameTok.End},
		ModuleTok: moduleTok,
		Name:      p.interner.InternBytes(nameTok.Bytes(p.source)),
		NameTok:   nameTok,
	}, nil
}

func (p *Parser) parseOpen() (*syntax.OpenDecl, error) {
	openTok := p.next()

	pathTok := p.peek()
	if pathTok.Kind != syntax.IDENT {
		return nil, p.errorAt(pathTok, "expected module path after open, got %s", pathTok.Kind)
	}
	p.next()

	return &syntax.OpenDecl{
		Rng:     syntax.Range{Start: openTok.Start, End: pathTok.End},
		OpenTok: openTok,
		Path:    p.interner.InternBytes(pathTok.Bytes(p.source)),
	}, nil
}

func (p *Parser) parseLet() (*syntax.LetBinding, error) {
	letTok := p.next()

	binding := &syntax.LetBinding{LetTok: letTok}

	if p.peek().Kind == syntax.REC {
		binding.RecTok = p.next()
	}

	nameTok := p.peek()
	if nameTok.Kind != syntax.IDENT && nameTok.Kind != syntax.TICKED_IDENT && nameTok.Kind != syntax.LPAREN {
		return nil, p.errorAt(nameTok, "expected binding name, got %s", nameTok.Kind)
	}
	if nameTok.Kind == syntax.LPAREN {
		// Operator definition: let (+.) a b = ...
		p.next()
		opTok := p.peek()
		if opTok.Kind != syntax.OPERATOR && opTok.Kind != syntax.EQUALS && opTok.Kind != syntax.BAR {
			return nil, p.errorAt(opTok, "expected operator name, got %s", opTok.Kind)
		}
		p.next()
		if p.peek().Kind != syntax.RPAREN {
			return nil, p.errorAt(p.peek(), "expected ) after operator name")
		}
		p.next()
		binding.Name = p.interner.InternBytes(opTok.Bytes(p.source))
		binding.NameTok = opTok
	} else {
		p.next()
		binding.Name = p.interner.InternBytes(nameTok.Bytes(p.source))
		binding.NameTok = nameTok
	}

	// Parameters up to '='.
	for {
		tok := p.peek()
		if tok.Kind == syntax.IDENT || tok.Kind == syntax.TICKED_IDENT {
			binding.Params = append(binding.Params, p.next())
			continue
		}
		break
	}

	eqTok := p.peek()
	if eqTok.Kind != syntax.EQUALS {
		return nil, p.errorAt(eqTok, "expected = in let binding, got %s", eqTok.Kind)
	}
	binding.EqualsTok = p.next()

	body, err := p.parseExpr(letTok.Column)
	if err != nil {
		return nil, err
	}
	binding.Body = body

	end := eqTok.End
	if body != nil {
		end = body.Range().End
	}
	binding.Rng = syntax.Range{Start: letTok.Start, End: end}

	return binding, nil
}

func (p *Parser) parseDo() (*syntax.DoDecl, error) {
	doTok := p.next()

	body, err := p.parseExpr(doTok.Column)
	if err != nil {
		return nil, err
	}

	end := doTok.End
	if body != nil {
		end = body.Range().End
	}

	return &syntax.DoDecl{
		Rng:   syntax.Range{Start: doTok.Start, End: end},
		DoTok: doTok,
		Body:  body,
	}, nil
}

func (p *Parser) parseType() (*syntax.TypeDefn, error) {
	typeTok := p.next()

	nameTok := p.peek()
	if nameTok.Kind != syntax.IDENT {
		return nil, p.errorAt(nameTok, "expected type name, got %s", nameTok.Kind)
	}
	p.next()

	defn := &syntax.TypeDefn{
		TypeTok: typeTok,
		Name:    p.interner.InternBytes(nameTok.Bytes(p.source)),
		NameTok: nameTok,
	}

	eqTok := p.peek()
	if eqTok.Kind != syntax.EQUALS {
		return nil, p.errorAt(eqTok, "expected = in type definition, got %s", eqTok.Kind)
	}
	defn.EqualsTok = p.next()

	// Union cases: | Name [of Type [* Type]...]
	for p.peek().Kind == syntax.BAR && p.peek().Column > typeTok.Column {
		barTok := p.next()

		caseNameTok := p.peek()
		if caseNameTok.Kind != syntax.IDENT {
			return nil, p.errorAt(caseNameTok, "expected union case name, got %s", caseNameTok.Kind)
		}
		p.next()

		uc := &syntax.UnionCase{
			BarTok:  barTok,
			Name:    p.interner.InternBytes(caseNameTok.Bytes(p.source)),
			NameTok: caseNameTok,
		}

		end := caseNameTok.End
		if p.peek().Kind == syntax.OF {
			uc.OfTok = p.next()
			end = uc.OfTok.End
			for {
				tok := p.peek()
				if tok.Kind == syntax.IDENT || (tok.Kind == syntax.OPERATOR && tok.String(p.source) == "*") {
					uc.Fields = append(uc.Fields, p.next())
					end = tok.End
					continue
				}
				break
			}
		}

		uc.Rng = syntax.Range{Start: barTok.Start, End: end}
		defn.Cases = append(defn.Cases, uc)
	}

	end := defn.EqualsTok.End
	if len(defn.Cases) > 0 {
		end = defn.Cases[len(defn.Cases)-1].Rng.End
	}
	defn.Rng = syntax.Range{Start: typeTok.Start, End: end}

	return defn, nil
}

// parseExpr parses an expression as a sequence of atoms. minCol is the
// offside column: a token on a later line at or left of minCol ends the
// expression.
func (p *Parser) parseExpr(minCol int) (syntax.Expr, error) {
	var items []syntax.Expr
	startTok := p.peek()

	for {
		tok := p.peek()
		if p.stopsExpr(tok, minCol, startTok.Line) {
			break
		}

		atom, err := p.parseAtom(minCol)
		if err != nil {
			return nil, err
		}
		items = append(items, atom)
	}

	switch len(items) {
	case 0:
		return nil, p.errorAt(startTok, "expected expression, got %s", startTok.Kind)
	case 1:
		return items[0], nil
	default:
		return &syntax.AppExpr{
			Rng: syntax.Range{
				Start: items[0].Range().Start,
				End:   items[len(items)-1].Range().End,
			},
			Items: items,
		}, nil
	}
}

func (p *Parser) parseAtom(minCol int) (syntax.Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case syntax.IDENT:
		p.next()
		return &syntax.IdentExpr{Tok: tok, Name: p.interner.InternBytes(tok.Bytes(p.source))}, nil

	case syntax.TICKED_IDENT:
		p.next()
		return &syntax.IdentExpr{Tok: tok, Name: p.interner.InternBytes(tok.Bytes(p.source)), Ticked: true}, nil

	case syntax.OPERATOR:
		p.next()
		return &syntax.OperatorExpr{Tok: tok, Name: p.interner.InternBytes(tok.Bytes(p.source))}, nil

	case syntax.NUMBER, syntax.STRING, syntax.CHAR:
		p.next()
		return &syntax.ConstExpr{Tok: tok, Text: tok.String(p.source)}, nil

	case syntax.LPAREN:
		return p.parseParen(minCol)

	case syntax.IF:
		return p.parseIf(minCol)

	case syntax.MATCH:
		return p.parseMatch(minCol)

	default:
		return nil, p.errorAt(tok, "unexpected token %s in expression", tok.Kind)
	}
}

func (p *Parser) parseParen(minCol int) (syntax.Expr, error) {
	lparen := p.next()

	inner, err := p.parseExpr(minCol)
	if err != nil {
		return nil, err
	}

	rparen := p.peek()
	if rparen.Kind != syntax.RPAREN {
		return nil, p.errorAt(rparen, "expected ), got %s", rparen.Kind)
	}
	p.next()

	return &syntax.ParenExpr{
		Rng:    syntax.Range{Start: lparen.Start, End: rparen.End},
		LParen: lparen,
		Inner:  inner,
		RParen: rparen,
	}, nil
}

func (p *Parser) parseIf(minCol int) (syntax.Expr, error) {
	ifTok := p.next()

	cond, err := p.parseExpr(minCol)
	if err != nil {
		return nil, err
	}

	thenTok := p.peek()
	if thenTok.Kind != syntax.THEN {
		return nil, p.errorAt(thenTok, "expected then, got %s", thenTok.Kind)
	}
	p.next()

	thenExpr, err := p.parseExpr(minCol)
	if err != nil {
		return nil, err
	}

	expr := &syntax.IfExpr{
		IfTok:   ifTok,
		Cond:    cond,
		ThenTok: thenTok,
		Then:    thenExpr,
	}

	end := thenExpr.Range().End

	switch p.peek().Kind {
	case syntax.ELIF:
		// Desugar `elif` into a nested if in the else branch, keeping the
		// elif token as the nested if's anchor.
		elifTok := p.peek()
		p.tokens[p.pos] = syntax.Token{
			Kind: syntax.IF, Start: elifTok.Start, End: elifTok.End,
			Line: elifTok.Line, Column: elifTok.Column,
		}
		nested, err := p.parseIf(minCol)
		if err != nil {
			return nil, err
		}
		expr.ElseTok = syntax.Token{}
		expr.Else = nested
		end = nested.Range().End

	case syntax.ELSE:
		expr.ElseTok = p.next()
		elseExpr, err := p.parseExpr(minCol)
		if err != nil {
			return nil, err
		}
		expr.Else = elseExpr
		end = elseExpr.Range().End
	}

	expr.Rng = syntax.Range{Start: ifTok.Start, End: end}
	return expr, nil
}

func (p *Parser) parseMatch(minCol int) (syntax.Expr, error) {
	matchTok := p.next()

	scrutinee, err := p.parseExpr(minCol)
	if err != nil {
		return nil, err
	}

	withTok := p.peek()
	if withTok.Kind != syntax.WITH {
		return nil, p.errorAt(withTok, "expected with, got %s", withTok.Kind)
	}
	p.next()

	expr := &syntax.MatchExpr{
		MatchTok:  matchTok,
		Scrutinee: scrutinee,
		WithTok:   withTok,
	}

	end := withTok.End
	for p.peek().Kind == syntax.BAR && p.peek().Column >= matchTok.Column {
		clause, err := p.parseMatchClause(minCol)
		if err != nil {
			return nil, err
		}
		expr.Clauses = append(expr.Clauses, clause)
		end = clause.Rng.End
	}

	if len(expr.Clauses) == 0 {
		return nil, p.errorAt(p.peek(), "expected at least one match clause")
	}

	expr.Rng = syntax.Range{Start: matchTok.Start, End: end}
	return expr, nil
}

func (p *Parser) parseMatchClause(minCol int) (*syntax.MatchClause, error) {
	barTok := p.next()

	pattern, err := p.parseExpr(minCol)
	if err != nil {
		return nil, err
	}

	arrowTok := p.peek()
	if arrowTok.Kind != syntax.ARROW {
		return nil, p.errorAt(arrowTok, "expected -> in match clause, got %s", arrowTok.Kind)
	}
	p.next()

	body, err := p.parseExpr(barTok.Column)
	if err != nil {
		return nil, err
	}

	return &syntax.MatchClause{
		Rng:      syntax.Range{Start: barTok.Start, End: body.Range().End},
		BarTok:   barTok,
		Pattern:  pattern,
		ArrowTok: arrowTok,
		Body:     body,
	}, nil
}

// stopsExpr reports whether tok terminates the current expression.
func (p *Parser) stopsExpr(tok syntax.Token, minCol, startLine int) bool {
	switch tok.Kind {
	case syntax.EOF, syntax.RPAREN, syntax.RBRACKET, syntax.COMMA,
		syntax.THEN, syntax.ELSE, syntax.ELIF, syntax.WITH, syntax.IN,
		syntax.ARROW, syntax.BAR, syntax.EQUALS, syntax.OF,
		syntax.AND, syntax.FUN, syntax.DO:
		return true
	case syntax.LET, syntax.MODULE, syntax.NAMESPACE, syntax.OPEN, syntax.TYPE:
		// Declaration keywords always end an expression; nested lets are
		// outside the supported subset.
		return true
	}
	// Offside rule: content on a later line must be indented past minCol to
	// continue the expression.
	if tok.Line > startLine && tok.Column <= minCol {
		return true
	}
	return false
}

func (p *Parser) atEOF() bool {
	return p.peek().Kind == syntax.EOF
}

func (p *Parser) peek() syntax.Token {
	if p.pos >= len(p.tokens) {
		if len(p.tokens) == 0 {
			return syntax.Token{Kind: syntax.EOF}
		}
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) next() syntax.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}
