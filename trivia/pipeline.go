package trivia

import (
	"github.com/kontomondo/fantomas/syntax"
)

// Build runs the full trivia pipeline for one file: classify and collect
// the token stream, index the tree's anchor candidates, match the two
// sequences, and wrap the result in a queryable index. The returned
// diagnostics describe items that could not be attached (the documented
// lossy set).
func Build(src *syntax.Source, tokens []syntax.Token, root syntax.Node) (*Index, []Diagnostic) {
	items := NewCollector(src).Collect(tokens)
	nodes := BuildNodeIndex(root)
	result := NewMatcher(src, nodes).Match(items)
	return NewIndex(result.Nodes), result.Dropped
}
