package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/kontomondo/fantomas/output"
)

// slowPass marks pass durations worth highlighting in styled output.
const slowPass = 100 * time.Millisecond

// formatSpanTree renders the root span and its pass tree:
//
//	Format main.fsx: 18ms
//	├─ Parse: 9ms
//	├─ Attach trivia: 3ms
//	└─ Print: 6ms
func formatSpanTree(w io.Writer, root *span, stylesInterface interface{}) {
	var styles *output.Styles
	if s, ok := stylesInterface.(*output.Styles); ok {
		styles = s
	}

	duration := root.end.Sub(root.start)

	if styles != nil {
		_, _ = fmt.Fprintf(w, "%s: %s\n", styles.Keyword(root.name), formatDuration(duration))
	} else {
		_, _ = fmt.Fprintf(w, "%s: %s\n", root.name, formatDuration(duration))
	}

	for i, child := range root.children {
		formatSpan(w, child, "", i == len(root.children)-1, styles)
	}
}

// formatSpan renders one pass span and recurses into nested spans.
func formatSpan(w io.Writer, s *span, prefix string, isLast bool, styles *output.Styles) {
	duration := s.end.Sub(s.start)

	var branch, extension string
	if isLast {
		branch = "└─ "
		extension = "   "
	} else {
		branch = "├─ "
		extension = "│  "
	}

	if styles != nil {
		treeChars := styles.Dim(prefix + branch)
		timing := styles.Timing(formatDuration(duration), duration >= slowPass)
		_, _ = fmt.Fprintf(w, "%s%s: %s\n", treeChars, s.name, timing)
	} else {
		_, _ = fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, s.name, formatDuration(duration))
	}

	childPrefix := prefix + extension
	for i, child := range s.children {
		formatSpan(w, child, childPrefix, i == len(s.children)-1, styles)
	}
}

// formatDuration formats a duration for display: milliseconds below one
// second, seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		ms := float64(d) / float64(time.Millisecond)
		return fmt.Sprintf("%.0fms", ms)
	}
	s := float64(d) / float64(time.Second)
	return fmt.Sprintf("%.2fs", s)
}
