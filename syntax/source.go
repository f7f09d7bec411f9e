package syntax

import "bytes"

// DefaultMaxTrustedLine is the default upper bound on line lengths for
// substring recovery. A line longer than this is treated as untrustworthy
// for offset arithmetic and lookups on it yield no content instead of
// risking an out-of-bounds slice. Trivia recovery is best-effort and must
// never abort formatting of an otherwise-valid file.
const DefaultMaxTrustedLine = 512

// Source wraps the original source text with line-offset bookkeeping.
// All trivia range lookups go through Source so that failures degrade to
// "no content" rather than panics.
type Source struct {
	content     []byte
	filename    string
	lineOffsets []int // Byte offset of the start of each line (0-indexed slot, 1-indexed line)
	maxTrusted  int   // Maximum trusted line length in bytes
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithFilename sets the filename used in positions derived from this source.
func WithFilename(name string) SourceOption {
	return func(s *Source) {
		s.filename = name
	}
}

// WithMaxTrustedLine overrides the trusted line length threshold.
// Values below 1 keep the default.
func WithMaxTrustedLine(n int) SourceOption {
	return func(s *Source) {
		if n > 0 {
			s.maxTrusted = n
		}
	}
}

// NewSource builds a Source over content, indexing line start offsets in a
// single pass.
func NewSource(content []byte, opts ...SourceOption) *Source {
	s := &Source{
		content:    content,
		maxTrusted: DefaultMaxTrustedLine,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Line 1 starts at offset 0; every '\n' starts the next line.
	s.lineOffsets = append(s.lineOffsets, 0)
	for i, b := range content {
		if b == '\n' {
			s.lineOffsets = append(s.lineOffsets, i+1)
		}
	}
	return s
}

// Content returns the underlying source buffer. Callers must not mutate it.
func (s *Source) Content() []byte {
	return s.content
}

// Filename returns the name the source was loaded from, or "".
func (s *Source) Filename() string {
	return s.filename
}

// LineCount returns the number of lines in the source.
func (s *Source) LineCount() int {
	return len(s.lineOffsets)
}

// LineOf returns the 1-based line number containing the byte offset,
// or 0 if the offset is out of range.
func (s *Source) LineOf(offset int) int {
	if offset < 0 || offset > len(s.content) {
		return 0
	}
	// Binary search for the last line start <= offset.
	lo, hi := 0, len(s.lineOffsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.lineOffsets[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}

// lineRange returns the byte range of the given 1-based line, excluding the
// trailing newline. The bool is false if the line number is out of range.
func (s *Source) lineRange(line int) (Range, bool) {
	if line < 1 || line > len(s.lineOffsets) {
		return Range{}, false
	}
	start := s.lineOffsets[line-1]
	end := len(s.content)
	if line < len(s.lineOffsets) {
		end = s.lineOffsets[line] - 1 // Exclude the '\n'
	}
	if end < start {
		end = start
	}
	return Range{Start: start, End: end}, true
}

// Line returns the text of the 1-based line without its trailing newline.
// Lines longer than the trusted threshold yield "": trivia recovery over
// such lines is skipped rather than trusted.
func (s *Source) Line(line int) string {
	r, ok := s.lineRange(line)
	if !ok || r.Len() > s.maxTrusted {
		return ""
	}
	return string(s.content[r.Start:r.End])
}

// TextAt extracts the source text for a range, best-effort. It returns ""
// when the range is infeasible (start after end, out of bounds) or when the
// range touches a line longer than the trusted threshold.
func (s *Source) TextAt(r Range) string {
	if r.Start < 0 || r.End < r.Start || r.End > len(s.content) {
		return ""
	}
	startLine := s.LineOf(r.Start)
	endLine := s.LineOf(r.End)
	if startLine == 0 || endLine == 0 {
		return ""
	}
	for line := startLine; line <= endLine; line++ {
		lr, ok := s.lineRange(line)
		if !ok || lr.Len() > s.maxTrusted {
			return ""
		}
	}
	return string(s.content[r.Start:r.End])
}

// PositionAt resolves a byte offset into a full Position.
func (s *Source) PositionAt(offset int) Position {
	line := s.LineOf(offset)
	if line == 0 {
		return Position{Filename: s.filename, Offset: offset}
	}
	return Position{
		Filename: s.filename,
		Offset:   offset,
		Line:     line,
		Column:   offset - s.lineOffsets[line-1] + 1,
	}
}

// CodeBefore reports whether any non-whitespace, non-comment content
// precedes the byte offset on its own line. Used to distinguish a trailing
// comment from a comment standing alone on its line.
func (s *Source) CodeBefore(offset int) bool {
	line := s.LineOf(offset)
	if line == 0 {
		return false
	}
	lr, ok := s.lineRange(line)
	if !ok || lr.Len() > s.maxTrusted {
		return false
	}
	prefix := s.content[lr.Start:offset]
	prefix = bytes.TrimRight(prefix, " \t")
	if len(prefix) == 0 {
		return false
	}
	// A line that holds only an earlier comment does not count as code.
	trimmed := bytes.TrimLeft(prefix, " \t")
	return !bytes.HasPrefix(trimmed, []byte("//")) && !bytes.HasPrefix(trimmed, []byte("(*"))
}

// IsBlankLine reports whether the 1-based line holds only whitespace.
func (s *Source) IsBlankLine(line int) bool {
	r, ok := s.lineRange(line)
	if !ok {
		return false
	}
	return len(bytes.TrimSpace(s.content[r.Start:r.End])) == 0
}
