package syntax

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestSourceLineOf(t *testing.T) {
	src := NewSource([]byte("let a = 1\nlet b = 2\n"))

	assert.Equal(t, 1, src.LineOf(0))
	assert.Equal(t, 1, src.LineOf(9)) // the newline itself
	assert.Equal(t, 2, src.LineOf(10))
	assert.Equal(t, 0, src.LineOf(-1))
	assert.Equal(t, 0, src.LineOf(999))
}

func TestSourceLine(t *testing.T) {
	src := NewSource([]byte("first\nsecond\n"))

	assert.Equal(t, "first", src.Line(1))
	assert.Equal(t, "second", src.Line(2))
	assert.Equal(t, "", src.Line(0))
	assert.Equal(t, "", src.Line(99))
}

func TestSourceTrustedLineBoundary(t *testing.T) {
	// A line of exactly the threshold length is still trusted; one byte
	// more and every lookup touching it yields no content.
	exact := strings.Repeat("a", DefaultMaxTrustedLine)
	over := strings.Repeat("a", DefaultMaxTrustedLine+1)

	src := NewSource([]byte(exact + "\n" + over + "\n"))

	assert.Equal(t, exact, src.Line(1))
	assert.Equal(t, "", src.Line(2))

	assert.Equal(t, "aaa", src.TextAt(Range{Start: 0, End: 3}))
	overStart := len(exact) + 1
	assert.Equal(t, "", src.TextAt(Range{Start: overStart, End: overStart + 3}))
}

func TestSourceTextAtInfeasibleRanges(t *testing.T) {
	src := NewSource([]byte("let a = 1\n"))

	assert.Equal(t, "", src.TextAt(Range{Start: 5, End: 2}))
	assert.Equal(t, "", src.TextAt(Range{Start: -1, End: 3}))
	assert.Equal(t, "", src.TextAt(Range{Start: 0, End: 999}))
	assert.Equal(t, "let", src.TextAt(Range{Start: 0, End: 3}))
}

func TestSourceWithMaxTrustedLine(t *testing.T) {
	src := NewSource([]byte("abcdefgh\n"), WithMaxTrustedLine(4))

	assert.Equal(t, "", src.Line(1))
	assert.Equal(t, "", src.TextAt(Range{Start: 0, End: 2}))
}

func TestSourceCodeBefore(t *testing.T) {
	source := "let a = 7 // trailing\n// standalone\n    // indented standalone\n"
	src := NewSource([]byte(source))

	trailing := strings.Index(source, "// trailing")
	standalone := strings.Index(source, "// standalone")
	indented := strings.Index(source, "// indented")

	assert.True(t, src.CodeBefore(trailing))
	assert.False(t, src.CodeBefore(standalone))
	assert.False(t, src.CodeBefore(indented))
}

func TestSourceIsBlankLine(t *testing.T) {
	src := NewSource([]byte("let a = 1\n\n   \t\nlet b = 2\n"))

	assert.False(t, src.IsBlankLine(1))
	assert.True(t, src.IsBlankLine(2))
	assert.True(t, src.IsBlankLine(3))
	assert.False(t, src.IsBlankLine(4))
}

func TestSourcePositionAt(t *testing.T) {
	src := NewSource([]byte("let a = 1\nlet b = 2\n"), WithFilename("test.fsx"))

	pos := src.PositionAt(14)
	assert.Equal(t, "test.fsx", pos.Filename)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 5, pos.Column)
}
