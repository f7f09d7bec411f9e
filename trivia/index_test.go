package trivia

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/kontomondo/fantomas/syntax"
)

func testNodes() []*Node {
	comment := func(text string) Content {
		return CommentContent{Comment: LineCommentOnSingleLine{Content: text}}
	}
	trailing := func(text string) Content {
		return CommentContent{Comment: LineCommentAfterSourceCode{Content: text}}
	}
	return []*Node{
		{
			Kind:     MainNode,
			TypeName: "binding.Let",
			Rng:      syntax.Range{Start: 0, End: 9},
			Before:   []Content{comment("// first"), Newline{}},
			After:    []Content{trailing("// end"), comment("// below")},
		},
		{
			Kind:   TokenNode,
			Rng:    syntax.Range{Start: 8, End: 9},
			Depth:  3,
			Itself: Number{Text: "0b1010"},
		},
		{
			Kind:     MainNode,
			TypeName: "binding.Let",
			Rng:      syntax.Range{Start: 20, End: 29},
		},
	}
}

func TestIndexConsumeOnce(t *testing.T) {
	ix := NewIndex(testNodes())

	first := ix.ConsumeLeading(0)
	assert.Equal(t, 2, len(first))

	second := ix.ConsumeLeading(0)
	assert.Equal(t, 0, len(second))
}

func TestIndexPeekDoesNotConsume(t *testing.T) {
	ix := NewIndex(testNodes())

	k := Key{Node: 0, Slot: SlotBefore}
	assert.Equal(t, 2, len(ix.Peek(k)))
	assert.Equal(t, 2, len(ix.Peek(k)))
	assert.Equal(t, 2, len(ix.Consume(k)))
	assert.Equal(t, 0, len(ix.Peek(k)))
}

func TestIndexConsumeMatchingLeavesRest(t *testing.T) {
	ix := NewIndex(testNodes())

	k := Key{Node: 0, Slot: SlotAfter}
	pulled := ix.ConsumeMatching(k, func(c Content) bool {
		cc, ok := c.(CommentContent)
		if !ok {
			return false
		}
		_, trailing := cc.Comment.(LineCommentAfterSourceCode)
		return trailing
	})
	assert.Equal(t, 1, len(pulled))

	rest := ix.Consume(k)
	assert.Equal(t, 1, len(rest))
	cc, ok := rest[0].(CommentContent)
	assert.True(t, ok)
	assert.Equal(t, "// below", cc.Comment.Text())
}

func TestIndexConsumeItself(t *testing.T) {
	ix := NewIndex(testNodes())

	content := ix.ConsumeItself(1)
	num, ok := content.(Number)
	assert.True(t, ok)
	assert.Equal(t, "0b1010", num.Text)

	assert.Zero(t, ix.ConsumeItself(1))
	assert.Zero(t, ix.ConsumeItself(2)) // nothing attached
}

func TestIndexUnconsumed(t *testing.T) {
	ix := NewIndex(testNodes())

	assert.Equal(t, 5, ix.Unconsumed())
	ix.ConsumeLeading(0)
	assert.Equal(t, 3, ix.Unconsumed())
	ix.ConsumeItself(1)
	ix.ConsumeTrailing(0)
	assert.Equal(t, 0, ix.Unconsumed())
}

func TestIndexLookupByRange(t *testing.T) {
	ix := NewIndex(testNodes())

	pos, ok := ix.MainNodeAt("binding.Let", syntax.Range{Start: 20, End: 29})
	assert.True(t, ok)
	assert.Equal(t, 2, pos)

	_, ok = ix.MainNodeAt("binding.Let", syntax.Range{Start: 20, End: 30})
	assert.False(t, ok)

	pos, ok = ix.TokenNodeAt(syntax.Range{Start: 8, End: 9})
	assert.True(t, ok)
	assert.Equal(t, 1, pos)

	_, ok = ix.TokenNodeAt(syntax.Range{Start: 0, End: 9})
	assert.False(t, ok)
}

func TestIndexPositionsStartingIn(t *testing.T) {
	ix := NewIndex(testNodes())

	assert.Equal(t, []int{0, 1}, ix.PositionsStartingIn(syntax.Range{Start: 0, End: 10}))
	assert.Equal(t, []int{1, 2}, ix.PositionsStartingIn(syntax.Range{Start: 1, End: 21}))
	assert.Equal(t, 0, len(ix.PositionsStartingIn(syntax.Range{Start: 30, End: 40})))
}

func TestIndexNodeBounds(t *testing.T) {
	ix := NewIndex(testNodes())

	assert.NotZero(t, ix.Node(0))
	assert.Zero(t, ix.Node(-1))
	assert.Zero(t, ix.Node(3))
	assert.Equal(t, 3, len(ix.Nodes()))
}
