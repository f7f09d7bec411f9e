package telemetry

import (
	"io"
	"sync"
	"time"
)

// TimingCollector records wall-clock spans for the formatting passes as a
// tree: one root span per run ("Format main.fsx"), child spans for the
// passes underneath it (parse, attach trivia, print).
type TimingCollector struct {
	root    *span
	current *span
	mu      sync.Mutex
}

// span is one timed pass, nested under the pass that was open when it
// started.
type span struct {
	name     string
	start    time.Time
	end      time.Time
	children []*span
	parent   *span
}

// NewTimingCollector creates an empty timing collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start opens a span. The first span opened becomes the root; later spans
// nest under whichever span is currently open.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &span{
		name:  name,
		start: time.Now(),
	}

	if c.root == nil {
		c.root = s
		c.current = s
	} else {
		s.parent = c.current
		c.current.children = append(c.current.children, s)
		c.current = s
	}

	return &spanTimer{
		collector: c,
		span:      s,
	}
}

// Report renders the recorded span tree to w. Rendering lives in
// format.go.
func (c *TimingCollector) Report(w io.Writer, styles interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root == nil {
		return
	}

	formatSpanTree(w, c.root, styles)
}

// spanTimer is the Timer handed out by a TimingCollector.
type spanTimer struct {
	collector *TimingCollector
	span      *span
}

// End closes the span and reopens its parent.
func (t *spanTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	t.span.end = time.Now()

	if t.span.parent != nil {
		t.collector.current = t.span.parent
	}
}

// Child opens a span nested under this one regardless of which span the
// collector currently has open.
func (t *spanTimer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	s := &span{
		name:   name,
		start:  time.Now(),
		parent: t.span,
	}

	t.span.children = append(t.span.children, s)

	return &spanTimer{
		collector: t.collector,
		span:      s,
	}
}
