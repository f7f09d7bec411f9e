// Package printer emits formatted source text from a syntax tree, pulling
// comments, blank lines, directives, and verbatim spellings back in from
// the trivia index as it walks. Every attached trivia item is consumed
// exactly once; whatever the structural walk does not reach is flushed by a
// conservation sweep so no comment is ever lost.
package printer

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/kontomondo/fantomas/syntax"
	"github.com/kontomondo/fantomas/trivia"
)

const (
	// DefaultIndentWidth is the number of spaces per indentation level.
	DefaultIndentWidth = 4

	// DefaultMaxBlankLines caps consecutive blank lines in the output.
	DefaultMaxBlankLines = 2

	// DefaultMaxLineWidth is the soft line width above which single-line
	// constructs are broken across lines.
	DefaultMaxLineWidth = 120

	// TrailingCommentSpacing is the minimum number of spaces between code
	// and a same-line trailing comment.
	TrailingCommentSpacing = 2
)

// Printer renders a syntax tree back to source text.
type Printer struct {
	// IndentWidth is the number of spaces per indentation level.
	IndentWidth int

	// MaxBlankLines caps runs of consecutive blank lines.
	MaxBlankLines int

	// MaxLineWidth is the soft width limit used when deciding whether a
	// construct written on one source line still fits on one output line.
	MaxLineWidth int

	// CommentColumn, when non-zero, is the column trailing comments are
	// padded out to. Zero glues each comment to its line with the minimum
	// spacing.
	CommentColumn int
}

// Option is a functional option for configuring a Printer.
type Option func(*Printer)

// WithIndentWidth sets the number of spaces per indentation level.
func WithIndentWidth(width int) Option {
	return func(p *Printer) {
		if width > 0 {
			p.IndentWidth = width
		}
	}
}

// WithMaxBlankLines sets the cap on consecutive blank lines.
func WithMaxBlankLines(n int) Option {
	return func(p *Printer) {
		if n >= 0 {
			p.MaxBlankLines = n
		}
	}
}

// WithMaxLineWidth sets the soft line width limit.
func WithMaxLineWidth(width int) Option {
	return func(p *Printer) {
		if width > 0 {
			p.MaxLineWidth = width
		}
	}
}

// WithCommentColumn sets a fixed alignment column for trailing comments.
func WithCommentColumn(col int) Option {
	return func(p *Printer) {
		p.CommentColumn = col
	}
}

// New creates a Printer with the given options applied over the defaults.
func New(opts ...Option) *Printer {
	p := &Printer{
		IndentWidth:   DefaultIndentWidth,
		MaxBlankLines: DefaultMaxBlankLines,
		MaxLineWidth:  DefaultMaxLineWidth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Print writes the formatted rendering of file to w, consuming trivia from
// idx as it goes. After a successful print, idx.Unconsumed() is zero.
func (p *Printer) Print(file *syntax.File, src *syntax.Source, idx *trivia.Index, w io.Writer) error {
	e := &emitter{
		p:   p,
		src: src,
		idx: idx,
	}

	for i, decl := range file.Decls {
		e.leadingAt(decl.Range().Start, 0, i == 0)
		e.emitDecl(decl)
		e.flushRegion(decl.Range())
	}

	// Conservation sweep: anything the walk did not reach (trailing
	// comments after the last declaration, trivia matched to anchors the
	// layout never visited) still has to appear in the output.
	e.flushAll()

	_, err := io.WriteString(w, e.buf.String())
	return err
}

// emitter holds per-print mutable state. A Printer is reusable and
// stateless across calls; the emitter is not.
type emitter struct {
	p   *Printer
	src *syntax.Source
	idx *trivia.Index

	buf       strings.Builder
	declRng   syntax.Range // range of the declaration being emitted
	wroteLine bool         // at least one line emitted so far
	blankRun  int          // consecutive blank lines just emitted
}

func (e *emitter) writeLine(text string) {
	e.buf.WriteString(text)
	e.buf.WriteByte('\n')
	e.wroteLine = true
	e.blankRun = 0
}

// writeBlank emits one blank line, respecting the configured cap and never
// opening the file with blanks.
func (e *emitter) writeBlank() {
	if !e.wroteLine || e.blankRun >= e.p.MaxBlankLines {
		return
	}
	e.buf.WriteByte('\n')
	e.blankRun++
}

func (e *emitter) indentOf(level int) string {
	return strings.Repeat(" ", level*e.p.IndentWidth)
}

// leadingAt consumes and emits the Before slots of every anchor starting
// exactly at the given offset. atFileStart suppresses leading blank lines
// so output never begins with empty lines.
func (e *emitter) leadingAt(offset, indent int, atFileStart bool) {
	probe := syntax.Range{Start: offset, End: offset + 1}
	for _, pos := range e.idx.PositionsStartingIn(probe) {
		if e.idx.Node(pos).Rng.Start != offset {
			continue
		}
		e.emitContents(e.idx.ConsumeLeading(pos), indent, atFileStart)
	}
}

// emitContents renders a consumed content run: blank lines, standalone
// comments, and directives each on their own line. Verbatim spellings
// (keywords, literals) carry no layout of their own and are silently
// retired when they show up here instead of in an itself slot.
func (e *emitter) emitContents(contents []trivia.Content, indent int, suppressBlanks bool) {
	for _, c := range contents {
		switch v := c.(type) {
		case trivia.Newline:
			if !suppressBlanks {
				e.writeBlank()
			}
		case trivia.CommentContent:
			e.writeCommentLine(v.Comment, indent)
		case trivia.Directive:
			// Directives are column-sensitive; keep them at column one.
			e.writeLine(v.Text)
		}
	}
}

// writeCommentLine emits a standalone comment at the given indent. Block
// comments keep their interior lines verbatim, indenting only the first.
func (e *emitter) writeCommentLine(c trivia.Comment, indent int) {
	text := c.Text()
	lines := strings.Split(text, "\n")
	e.writeLine(e.indentOf(indent) + lines[0])
	for _, l := range lines[1:] {
		e.writeLine(l)
	}
}

// emitCodeLine writes one line of code at the given indent, gluing on any
// trailing comments attached to anchors ending on srcEndLine within the
// current declaration.
func (e *emitter) emitCodeLine(indent int, text string, srcEndLine int) {
	full := e.indentOf(indent) + text

	var comments []string
	for _, pos := range e.idx.PositionsStartingIn(e.declRng) {
		n := e.idx.Node(pos)
		if e.src.LineOf(n.Rng.End) != srcEndLine {
			continue
		}
		taken := e.idx.ConsumeMatching(trivia.Key{Node: pos, Slot: trivia.SlotAfter}, isTrailingComment)
		for _, c := range taken {
			comments = append(comments, c.(trivia.CommentContent).Comment.Text())
		}
	}

	if len(comments) > 0 {
		pad := TrailingCommentSpacing
		if e.p.CommentColumn > 0 {
			if gap := e.p.CommentColumn - 1 - runewidth.StringWidth(full); gap > pad {
				pad = gap
			}
		}
		full += strings.Repeat(" ", pad) + strings.Join(comments, " ")
	}

	e.writeLine(full)
}

func isTrailingComment(c trivia.Content) bool {
	cc, ok := c.(trivia.CommentContent)
	if !ok {
		return false
	}
	switch cc.Comment.(type) {
	case trivia.LineCommentAfterSourceCode:
		return true
	case trivia.BlockComment:
		b := cc.Comment.(trivia.BlockComment)
		return !strings.Contains(b.Content, "\n")
	}
	return false
}

// endLine returns the 1-based source line a range's last byte sits on.
func (e *emitter) endLine(r syntax.Range) int {
	if r.Len() == 0 {
		return e.src.LineOf(r.Start)
	}
	return e.src.LineOf(r.End - 1)
}

// multiLine reports whether a range spans more than one source line.
func (e *emitter) multiLine(r syntax.Range) bool {
	return e.src.LineOf(r.Start) != e.endLine(r)
}

// tokenText returns a token's spelling, preferring the verbatim itself
// content attached to its anchor when one exists.
func (e *emitter) tokenText(tok syntax.Token) string {
	if pos, ok := e.idx.TokenNodeAt(tok.Range()); ok {
		if c := e.idx.ConsumeItself(pos); c != nil {
			switch v := c.(type) {
			case trivia.Keyword:
				return v.Text
			case trivia.Number:
				return v.Text
			case trivia.StringContent:
				return v.Text
			case trivia.CharContent:
				return v.Text
			case trivia.IdentOperatorAsWord:
				return v.Text
			case trivia.IdentBetweenTicks:
				return v.Text
			}
		}
	}
	return tok.String(e.src.Content())
}

// retireKeyword consumes a keyword anchor's itself slot without using the
// result. The output spelling of a keyword never varies, so the attached
// copy only needs to be marked as handled.
func (e *emitter) retireKeyword(tok syntax.Token) {
	if tok.IsZero() {
		return
	}
	if pos, ok := e.idx.TokenNodeAt(tok.Range()); ok {
		e.idx.ConsumeItself(pos)
	}
}

func (e *emitter) emitDecl(decl syntax.Decl) {
	e.declRng = decl.Range()

	switch d := decl.(type) {
	case *syntax.ModuleDecl:
		kw := d.ModuleTok.String(e.src.Content())
		e.emitCodeLine(0, kw+" "+d.Name, e.endLine(d.Rng))
	case *syntax.OpenDecl:
		e.emitCodeLine(0, "open "+d.Path, e.endLine(d.Rng))
	case *syntax.LetBinding:
		e.emitLet(d)
	case *syntax.DoDecl:
		e.emitDo(d)
	case *syntax.TypeDefn:
		e.emitType(d)
	}
}

func (e *emitter) emitLet(d *syntax.LetBinding) {
	var head strings.Builder
	head.WriteString("let ")
	if !d.RecTok.IsZero() {
		head.WriteString("rec ")
	}
	head.WriteString(e.tokenText(d.NameTok))
	for _, param := range d.Params {
		head.WriteByte(' ')
		head.WriteString(e.tokenText(param))
	}
	head.WriteString(" =")

	if d.Body == nil {
		e.emitCodeLine(0, head.String(), e.endLine(d.Rng))
		return
	}

	bodyRng := d.Body.Range()
	sameLine := e.src.LineOf(bodyRng.Start) == e.src.LineOf(d.EqualsTok.Start)
	if sameLine && !e.multiLine(bodyRng) &&
		runewidth.StringWidth(head.String())+1+bodyRng.Len() <= e.p.MaxLineWidth {
		e.emitCodeLine(0, head.String()+" "+e.inline(d.Body), e.endLine(d.Rng))
		return
	}

	e.emitCodeLine(0, head.String(), e.src.LineOf(d.EqualsTok.Start))
	e.emitExprBlock(d.Body, 1)
}

func (e *emitter) emitDo(d *syntax.DoDecl) {
	if d.Body == nil {
		e.emitCodeLine(0, "do", e.endLine(d.Rng))
		return
	}
	bodyRng := d.Body.Range()
	if e.src.LineOf(bodyRng.Start) == e.src.LineOf(d.DoTok.Start) && !e.multiLine(bodyRng) {
		e.emitCodeLine(0, "do "+e.inline(d.Body), e.endLine(d.Rng))
		return
	}
	e.emitCodeLine(0, "do", e.src.LineOf(d.DoTok.Start))
	e.emitExprBlock(d.Body, 1)
}

func (e *emitter) emitType(d *syntax.TypeDefn) {
	head := "type " + d.Name + " ="

	if !e.multiLine(d.Rng) {
		// Single-line union: keep the cases inline.
		var parts []string
		for _, c := range d.Cases {
			parts = append(parts, e.renderCase(c))
		}
		if len(parts) > 0 {
			head += " " + strings.Join(parts, " ")
		}
		e.emitCodeLine(0, head, e.endLine(d.Rng))
		return
	}

	e.emitCodeLine(0, head, e.src.LineOf(d.EqualsTok.Start))
	for _, c := range d.Cases {
		e.leadingAt(c.Rng.Start, 1, false)
		e.emitCodeLine(1, e.renderCase(c), e.endLine(c.Rng))
	}
}

func (e *emitter) renderCase(c *syntax.UnionCase) string {
	var b strings.Builder
	b.WriteString("| ")
	b.WriteString(c.Name)
	if !c.OfTok.IsZero() {
		b.WriteString(" of ")
		for i, f := range c.Fields {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(f.String(e.src.Content()))
		}
	}
	return b.String()
}

// emitExprBlock renders an expression on its own line(s) at the given
// indent, breaking if/match constructs that span lines in the source.
// Trivia matched before the expression (a comment above a body line, a
// directive guarding it) is consumed here so it stays inside the block
// instead of falling through to the conservation sweep.
func (e *emitter) emitExprBlock(x syntax.Expr, indent int) {
	e.leadingAt(x.Range().Start, indent, false)

	switch v := x.(type) {
	case *syntax.IfExpr:
		if e.multiLine(v.Rng) {
			e.emitIf(v, indent, false)
			return
		}
	case *syntax.MatchExpr:
		if e.multiLine(v.Rng) {
			e.emitMatch(v, indent)
			return
		}
	}
	e.emitCodeLine(indent, e.inline(x), e.endLine(x.Range()))
}

// emitIf renders a multi-line if/then/else. An else branch holding a
// nested if with a zero else token is an elif chain and stays flat.
func (e *emitter) emitIf(v *syntax.IfExpr, indent int, asElif bool) {
	kw := "if"
	if asElif {
		kw = "elif"
	}
	e.retireKeyword(v.IfTok)
	e.retireKeyword(v.ThenTok)
	e.emitCodeLine(indent, kw+" "+e.inline(v.Cond)+" then", e.src.LineOf(v.ThenTok.Start))
	e.emitExprBlock(v.Then, indent+1)

	if v.Else == nil {
		return
	}
	if nested, ok := v.Else.(*syntax.IfExpr); ok && v.ElseTok.IsZero() {
		e.leadingAt(nested.Rng.Start, indent, false)
		e.emitIf(nested, indent, true)
		return
	}
	e.leadingAt(v.ElseTok.Start, indent, false)
	e.retireKeyword(v.ElseTok)
	e.emitCodeLine(indent, "else", e.src.LineOf(v.ElseTok.Start))
	e.emitExprBlock(v.Else, indent+1)
}

func (e *emitter) emitMatch(v *syntax.MatchExpr, indent int) {
	e.retireKeyword(v.MatchTok)
	e.retireKeyword(v.WithTok)
	e.emitCodeLine(indent, "match "+e.inline(v.Scrutinee)+" with", e.src.LineOf(v.WithTok.Start))

	for _, c := range v.Clauses {
		e.leadingAt(c.Rng.Start, indent, false)
		e.retireKeyword(c.BarTok)
		bodyRng := c.Body.Range()
		if e.multiLine(bodyRng) || e.src.LineOf(bodyRng.Start) != e.src.LineOf(c.ArrowTok.Start) {
			e.emitCodeLine(indent, "| "+e.inline(c.Pattern)+" ->", e.src.LineOf(c.ArrowTok.Start))
			e.emitExprBlock(c.Body, indent+1)
			continue
		}
		e.emitCodeLine(indent, "| "+e.inline(c.Pattern)+" -> "+e.inline(c.Body), e.endLine(c.Rng))
	}
}

// inline renders an expression as a single-line string, consuming verbatim
// spellings from the index along the way.
func (e *emitter) inline(x syntax.Expr) string {
	switch v := x.(type) {
	case *syntax.IdentExpr:
		if len(v.Tokens()) > 0 {
			return e.tokenText(v.Tok)
		}
		return v.Name
	case *syntax.OperatorExpr:
		return v.Name
	case *syntax.ConstExpr:
		return e.tokenText(v.Tok)
	case *syntax.AppExpr:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			parts[i] = e.inline(item)
		}
		return strings.Join(parts, " ")
	case *syntax.ParenExpr:
		if v.Inner == nil {
			return "()"
		}
		return "(" + e.inline(v.Inner) + ")"
	case *syntax.IfExpr:
		e.retireKeyword(v.IfTok)
		e.retireKeyword(v.ThenTok)
		s := "if " + e.inline(v.Cond) + " then " + e.inline(v.Then)
		if v.Else != nil {
			e.retireKeyword(v.ElseTok)
			if nested, ok := v.Else.(*syntax.IfExpr); ok && v.ElseTok.IsZero() {
				s += " elif " + strings.TrimPrefix(e.inline(nested), "if ")
			} else {
				s += " else " + e.inline(v.Else)
			}
		}
		return s
	case *syntax.MatchExpr:
		e.retireKeyword(v.MatchTok)
		e.retireKeyword(v.WithTok)
		s := "match " + e.inline(v.Scrutinee) + " with"
		for _, c := range v.Clauses {
			e.retireKeyword(c.BarTok)
			s += " | " + e.inline(c.Pattern) + " -> " + e.inline(c.Body)
		}
		return s
	case *syntax.MatchClause:
		e.retireKeyword(v.BarTok)
		return "| " + e.inline(v.Pattern) + " -> " + e.inline(v.Body)
	}
	return ""
}

// flushRegion emits any trivia still attached inside a finished region.
// Leftover comments and directives appear on their own lines after the
// region; leftover blank-line markers are dropped since the layout already
// settled.
func (e *emitter) flushRegion(r syntax.Range) {
	for _, pos := range e.idx.PositionsStartingIn(r) {
		e.flushNode(pos)
	}
}

// flushAll sweeps every anchor for unconsumed trivia so output ends with
// everything accounted for and a single trailing newline.
func (e *emitter) flushAll() {
	for pos := range e.idx.Nodes() {
		e.flushNode(pos)
	}
}

func (e *emitter) flushNode(pos int) {
	for _, slot := range []int{trivia.SlotBefore, trivia.SlotItself, trivia.SlotAfter} {
		for _, c := range e.idx.Consume(trivia.Key{Node: pos, Slot: slot}) {
			switch v := c.(type) {
			case trivia.CommentContent:
				e.writeCommentLine(v.Comment, 0)
			case trivia.Directive:
				e.writeLine(v.Text)
			}
			// Leftover blank-line markers are dropped: the layout around
			// them already settled, and re-emitting them at the flush
			// point would grow on each reformat.
		}
	}
}
