package syntax

import "fmt"

// Position represents a location in the source file.
type Position struct {
	Filename string
	Offset   int // Byte offset
	Line     int // Line number (1-indexed)
	Column   int // Column number (1-indexed)
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Range represents a half-open byte range [Start, End) in the source file.
// Ranges are immutable once constructed; the trivia pipeline only ever
// compares and slices them.
type Range struct {
	Start int // Starting byte offset (inclusive)
	End   int // Ending byte offset (exclusive)
}

// IsZero returns true if this is an uninitialized range.
func (r Range) IsZero() bool {
	return r.Start == 0 && r.End == 0
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether other lies entirely inside r.
func (r Range) Contains(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// StrictlyBefore reports whether r ends at or before other starts.
func (r Range) StrictlyBefore(other Range) bool {
	return r.End <= other.Start
}

// Text extracts the source text for this range (zero-copy slice).
// Returns empty string if the range is invalid or zero.
func (r Range) Text(source []byte) string {
	if r.IsZero() || r.Start < 0 || r.End <= r.Start || r.End > len(source) {
		return ""
	}
	return string(source[r.Start:r.End])
}

// Compare orders ranges by start offset, then by end offset so that an
// enclosing range sorts before the ranges nested inside it.
func (r Range) Compare(other Range) int {
	switch {
	case r.Start < other.Start:
		return -1
	case r.Start > other.Start:
		return 1
	case r.End > other.End:
		return -1
	case r.End < other.End:
		return 1
	default:
		return 0
	}
}
