package trivia

import (
	"github.com/kontomondo/fantomas/syntax"
)

// Diagnostic records a trivia item the matcher had to drop: an item with
// no eligible anchor node. Dropping is a documented lossy case, never a
// crash; the caller decides whether to surface it.
type Diagnostic struct {
	Pos     syntax.Position
	Message string
	Item    Trivia
}

// MatchResult is the fully populated anchor sequence plus the documented
// dropped set. Conservation holds across the two: every trivia item handed
// to the matcher is either attached to exactly one slot of exactly one
// node, or recorded in Dropped.
type MatchResult struct {
	Nodes   []*Node
	Dropped []Diagnostic
}

// Matcher merges the sorted trivia sequence into the sorted node sequence,
// assigning each trivia item to exactly one node slot (before/itself/after)
// using range-adjacency and line-number heuristics.
type Matcher struct {
	src   *syntax.Source
	nodes []*Node
}

// NewMatcher creates a matcher for one file's node index.
func NewMatcher(src *syntax.Source, nodes []*Node) *Matcher {
	return &Matcher{src: src, nodes: nodes}
}

// Match assigns every trivia item. Both inputs must be sorted by range
// start (the Collector and BuildNodeIndex guarantee this). The result is
// deterministic: identical inputs produce identical assignments.
func (m *Matcher) Match(items []Trivia) *MatchResult {
	result := &MatchResult{Nodes: m.nodes}

	for _, item := range items {
		if diag, dropped := m.attach(item); dropped {
			result.Dropped = append(result.Dropped, diag)
		}
	}

	return result
}

// attach places one item, returning a diagnostic when it had to be
// dropped.
func (m *Matcher) attach(item Trivia) (Diagnostic, bool) {
	switch content := item.Content.(type) {
	case Keyword, Number, StringContent, CharContent, IdentBetweenTicks, IdentOperatorAsWord:
		// Verbatim token spellings become the "itself" content of the token
		// anchor covering them. At most one per anchor; only token anchors
		// qualify.
		if anchor := m.tokenAnchorCovering(item.Rng); anchor != nil {
			anchor.setItself(item.Content)
			return Diagnostic{}, false
		}
		return m.drop(item, "no token anchor covers literal spelling"), true

	case CommentContent:
		switch comment := content.Comment.(type) {
		case LineCommentAfterSourceCode:
			// Always trails the nearest preceding node ending on its line.
			if anchor := m.anchorEndingOnLine(item.Rng.Start); anchor != nil {
				anchor.After = append(anchor.After, item.Content)
				return Diagnostic{}, false
			}
			// Shares a line with code yet no enclosing node qualifies: the
			// one documented unmatched-comment rule.
			return m.drop(item, "trailing comment has no attributable node on its line"), true

		case BlockComment:
			if comment.NewlineBefore {
				// A deliberate paragraph break: belongs before the following
				// node even when a closer preceding node exists.
				return m.attachBeforeNext(item)
			}
			return m.attachBetween(item)

		default:
			return m.attachBetween(item)
		}

	default:
		// Newline markers and directives sit between nodes.
		return m.attachBetween(item)
	}
}

// attachBetween resolves the "after A" / "before B" ambiguity for an item
// lying between two nodes:
//   - prefer "after A" when the item shares A's closing source line (the
//     trailing same-line case wins over paragraph placement; documented
//     tie-break policy),
//   - otherwise prefer "before B",
//   - with only one neighbor, use it; with none, drop.
func (m *Matcher) attachBetween(item Trivia) (Diagnostic, bool) {
	prev := m.anchorBefore(item.Rng.Start)
	next := m.anchorAfter(item.Rng.End)

	if prev != nil && m.sameLine(prev.Rng.End, item.Rng.Start) {
		if _, isNewline := item.Content.(Newline); !isNewline {
			prev.After = append(prev.After, item.Content)
			return Diagnostic{}, false
		}
	}
	if next != nil {
		next.Before = append(next.Before, item.Content)
		return Diagnostic{}, false
	}
	if prev != nil {
		// Synthetic trailing slot: content after the last node in the file.
		prev.After = append(prev.After, item.Content)
		return Diagnostic{}, false
	}
	return m.drop(item, "no anchor nodes in file"), true
}

// attachBeforeNext places the item before the following node, falling back
// to the synthetic trailing slot of the last node.
func (m *Matcher) attachBeforeNext(item Trivia) (Diagnostic, bool) {
	if next := m.anchorAfter(item.Rng.End); next != nil {
		next.Before = append(next.Before, item.Content)
		return Diagnostic{}, false
	}
	if prev := m.anchorBefore(item.Rng.Start); prev != nil {
		prev.After = append(prev.After, item.Content)
		return Diagnostic{}, false
	}
	return m.drop(item, "no anchor nodes in file"), true
}

func (m *Matcher) drop(item Trivia, reason string) Diagnostic {
	return Diagnostic{
		Pos:     m.src.PositionAt(item.Rng.Start),
		Message: reason,
		Item:    item,
	}
}

// tokenAnchorCovering finds the deepest token anchor whose range covers r
// and whose itself slot is still free.
func (m *Matcher) tokenAnchorCovering(r syntax.Range) *Node {
	var best *Node
	for _, n := range m.nodes {
		if n.Kind != TokenNode || n.Itself != nil {
			continue
		}
		if !n.Rng.Contains(r) {
			continue
		}
		if best == nil || n.Depth > best.Depth {
			best = n
		}
	}
	return best
}

// anchorBefore finds the node preceding the offset: greatest range end not
// past the offset, ties broken by preferring the deepest (most specific)
// node.
func (m *Matcher) anchorBefore(offset int) *Node {
	var best *Node
	for _, n := range m.nodes {
		if n.Rng.End > offset {
			continue
		}
		if best == nil || n.Rng.End > best.Rng.End ||
			(n.Rng.End == best.Rng.End && n.Depth > best.Depth) {
			best = n
		}
	}
	return best
}

// anchorAfter finds the node following the offset: least range start at or
// past the offset, ties broken by preferring the deepest node.
func (m *Matcher) anchorAfter(offset int) *Node {
	var best *Node
	for _, n := range m.nodes {
		if n.Rng.Start < offset {
			continue
		}
		if best == nil || n.Rng.Start < best.Rng.Start ||
			(n.Rng.Start == best.Rng.Start && n.Depth > best.Depth) {
			best = n
		}
	}
	return best
}

// anchorEndingOnLine finds the deepest node whose range ends on the same
// line as the offset, at or before it.
func (m *Matcher) anchorEndingOnLine(offset int) *Node {
	line := m.src.LineOf(offset)
	if line == 0 {
		return nil
	}
	var best *Node
	for _, n := range m.nodes {
		if n.Rng.End > offset || m.src.LineOf(n.Rng.End) != line {
			continue
		}
		if best == nil || n.Rng.End > best.Rng.End ||
			(n.Rng.End == best.Rng.End && n.Depth > best.Depth) {
			best = n
		}
	}
	return best
}

func (m *Matcher) sameLine(a, b int) bool {
	la, lb := m.src.LineOf(a), m.src.LineOf(b)
	return la != 0 && la == lb
}
