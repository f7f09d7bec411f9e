package trivia

import (
	"github.com/tidwall/btree"

	"github.com/kontomondo/fantomas/syntax"
)

// Slot identifiers for Key. A key addresses one attachment slot of one
// node in the matched sequence.
const (
	SlotBefore = 0
	SlotItself = 1
	SlotAfter  = 2
)

// Key is an opaque composite key addressing a node slot cheaply: node-list
// position times sub-slot. It is a pure lookup key with equality and
// ordering, never a pointer or an arithmetic value.
type Key struct {
	Node int
	Slot int
}

// Less orders keys by node position, then slot.
func (k Key) Less(other Key) bool {
	if k.Node != other.Node {
		return k.Node < other.Node
	}
	return k.Slot < other.Slot
}

// cell is one attached content item plus its consumption flag. Flags are
// the only mutable state in the index; they are flipped by the
// single-threaded printer during emission, so no locking is needed.
type cell struct {
	content  Content
	consumed bool
}

// Index is the query surface the printer uses over the matched node
// sequence: per-node leading/itself/trailing lookups with consume-once
// semantics. A second consumption request for an already-consumed item
// returns empty, not an error - printing probes ranges speculatively
// before committing to a layout choice.
type Index struct {
	nodes   []*Node
	slots   map[Key][]*cell
	byStart *btree.Map[int, []int] // range start -> node positions, ascending
}

// NewIndex builds the index over a matched node sequence.
func NewIndex(nodes []*Node) *Index {
	ix := &Index{
		nodes:   nodes,
		slots:   make(map[Key][]*cell, len(nodes)),
		byStart: &btree.Map[int, []int]{},
	}

	for i, n := range nodes {
		if len(n.Before) > 0 {
			ix.slots[Key{Node: i, Slot: SlotBefore}] = makeCells(n.Before)
		}
		if n.Itself != nil {
			ix.slots[Key{Node: i, Slot: SlotItself}] = makeCells([]Content{n.Itself})
		}
		if len(n.After) > 0 {
			ix.slots[Key{Node: i, Slot: SlotAfter}] = makeCells(n.After)
		}

		positions, _ := ix.byStart.Get(n.Rng.Start)
		ix.byStart.Set(n.Rng.Start, append(positions, i))
	}

	return ix
}

func makeCells(contents []Content) []*cell {
	cells := make([]*cell, len(contents))
	for i, c := range contents {
		cells[i] = &cell{content: c}
	}
	return cells
}

// Nodes returns the matched node sequence in source order.
func (ix *Index) Nodes() []*Node {
	return ix.nodes
}

// Node returns the node at the given position, or nil when out of range.
func (ix *Index) Node(pos int) *Node {
	if pos < 0 || pos >= len(ix.nodes) {
		return nil
	}
	return ix.nodes[pos]
}

// MainNodeAt finds the position of the main node with the given structural
// tag and exact range.
func (ix *Index) MainNodeAt(typeName string, r syntax.Range) (int, bool) {
	positions, _ := ix.byStart.Get(r.Start)
	for _, pos := range positions {
		n := ix.nodes[pos]
		if n.Kind == MainNode && n.TypeName == typeName && n.Rng == r {
			return pos, true
		}
	}
	return 0, false
}

// TokenNodeAt finds the position of the token node with the exact range.
func (ix *Index) TokenNodeAt(r syntax.Range) (int, bool) {
	positions, _ := ix.byStart.Get(r.Start)
	for _, pos := range positions {
		n := ix.nodes[pos]
		if n.Kind == TokenNode && n.Rng == r {
			return pos, true
		}
	}
	return 0, false
}

// PositionsStartingIn returns the positions of all nodes whose range starts
// within [r.Start, r.End), in ascending start order. The printer uses this
// to sweep a finished region for trivia its structural walk did not reach.
func (ix *Index) PositionsStartingIn(r syntax.Range) []int {
	var out []int
	ix.byStart.Ascend(r.Start, func(start int, positions []int) bool {
		if start >= r.End {
			return false
		}
		out = append(out, positions...)
		return true
	})
	return out
}

// Peek returns the unconsumed content items in a slot without consuming
// them.
func (ix *Index) Peek(k Key) []Content {
	var out []Content
	for _, c := range ix.slots[k] {
		if !c.consumed {
			out = append(out, c.content)
		}
	}
	return out
}

// Consume returns the unconsumed content items in a slot and marks each of
// them consumed. Calling it again for the same slot yields nothing.
func (ix *Index) Consume(k Key) []Content {
	var out []Content
	for _, c := range ix.slots[k] {
		if !c.consumed {
			c.consumed = true
			out = append(out, c.content)
		}
	}
	return out
}

// ConsumeMatching returns and marks only the unconsumed items in a slot
// for which pred holds, leaving the rest available. The printer uses this
// to pull same-line trailing comments out of a slot while later items stay
// attached.
func (ix *Index) ConsumeMatching(k Key, pred func(Content) bool) []Content {
	var out []Content
	for _, c := range ix.slots[k] {
		if !c.consumed && pred(c.content) {
			c.consumed = true
			out = append(out, c.content)
		}
	}
	return out
}

// ConsumeLeading consumes the trivia attached before the node.
func (ix *Index) ConsumeLeading(pos int) []Content {
	return ix.Consume(Key{Node: pos, Slot: SlotBefore})
}

// ConsumeItself consumes the node's own verbatim content, or nil.
func (ix *Index) ConsumeItself(pos int) Content {
	items := ix.Consume(Key{Node: pos, Slot: SlotItself})
	if len(items) == 0 {
		return nil
	}
	return items[0]
}

// ConsumeTrailing consumes the trivia attached after the node.
func (ix *Index) ConsumeTrailing(pos int) []Content {
	return ix.Consume(Key{Node: pos, Slot: SlotAfter})
}

// Unconsumed reports how many attached items remain unconsumed across all
// nodes. Zero after a full print confirms nothing was lost.
func (ix *Index) Unconsumed() int {
	count := 0
	for _, cells := range ix.slots {
		for _, c := range cells {
			if !c.consumed {
				count++
			}
		}
	}
	return count
}
