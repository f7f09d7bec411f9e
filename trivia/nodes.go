package trivia

import (
	"fmt"
	"sort"

	"github.com/kontomondo/fantomas/syntax"
)

// NodeKind distinguishes the two anchor shapes in the node range index.
type NodeKind uint8

const (
	// MainNode is a syntax-tree node identified by its structural type tag.
	MainNode NodeKind = iota
	// TokenNode is a single significant lexical token (a keyword or a
	// literal) treated as an attachment point in its own right.
	TokenNode
)

// Node is one anchor candidate in the node range index: a tree node or a
// significant token, with the trivia the matcher attached around it.
//
// The range is fixed at construction and never mutated; only the
// attachment lists change, and only during matching. Ordering within
// Before and After reflects source order.
type Node struct {
	Kind     NodeKind
	TypeName string       // structural tag for MainNode ("binding.Let", "expr.App", ...)
	Tok      syntax.Token // the token for TokenNode
	Rng      syntax.Range
	Depth    int // nesting depth, used for most-specific-anchor tie-breaks

	Before []Content // trivia attached before the node, source order
	Itself Content   // the node's own verbatim content; TokenNode only
	After  []Content // trivia attached after the node, source order
}

// Describe renders the anchor for diagnostics.
func (n *Node) Describe() string {
	if n.Kind == TokenNode {
		return fmt.Sprintf("token %s [%d:%d]", n.Tok.Kind, n.Rng.Start, n.Rng.End)
	}
	return fmt.Sprintf("%s [%d:%d]", n.TypeName, n.Rng.Start, n.Rng.End)
}

// setItself assigns the node's "itself" slot. Assigning it on a MainNode or
// assigning it twice is a contract violation in the matcher, not a
// malformed input, so it panics.
func (n *Node) setItself(content Content) {
	if n.Kind != TokenNode {
		panic(fmt.Sprintf("trivia: itself-content assigned to non-token node %s", n.Describe()))
	}
	if n.Itself != nil {
		panic(fmt.Sprintf("trivia: itself-content assigned twice to %s", n.Describe()))
	}
	n.Itself = content
}

// BuildNodeIndex walks the syntax tree exactly once, producing the ordered
// anchor sequence: one entry per structurally significant tree node plus
// one per significant token owned by those nodes. Order is depth-first,
// matching source order; the matcher's merge relies on both its input
// sequences being sorted by range start.
func BuildNodeIndex(root syntax.Node) []*Node {
	var out []*Node
	appendAnchors(root, 0, &out)
	return out
}

func appendAnchors(n syntax.Node, depth int, out *[]*Node) {
	*out = append(*out, &Node{
		Kind:     MainNode,
		TypeName: n.TypeName(),
		Rng:      n.Range(),
		Depth:    depth,
	})

	// Interleave child nodes and owned tokens by source position so the
	// emitted sequence stays sorted by range start.
	type entry struct {
		start int
		child syntax.Node
		tok   syntax.Token
		isTok bool
	}

	var entries []entry
	for _, child := range n.Children() {
		entries = append(entries, entry{start: child.Range().Start, child: child})
	}
	for _, tok := range n.Tokens() {
		entries = append(entries, entry{start: tok.Start, tok: tok, isTok: true})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].start < entries[j].start
	})

	for _, e := range entries {
		if e.isTok {
			*out = append(*out, &Node{
				Kind:  TokenNode,
				Tok:   e.tok,
				Rng:   e.tok.Range(),
				Depth: depth + 1,
			})
			continue
		}
		appendAnchors(e.child, depth+1, out)
	}
}
