package trivia

import (
	"sort"

	"github.com/kontomondo/fantomas/syntax"
)

// Collector is the aggregation boundary between classification and
// matching: it scans the token stream once and exposes the classified
// trivia as an ordered, range-sorted sequence. No matching logic lives
// here.
type Collector struct {
	classifier *Classifier
}

// NewCollector creates a collector over the given source.
func NewCollector(src *syntax.Source) *Collector {
	return &Collector{classifier: NewClassifier(src)}
}

// Collect classifies the token stream and returns the trivia sequence
// sorted by range start. The sort is stable: items with equal starts (only
// possible for zero-width markers) keep their discovery order, which keeps
// repeated runs over the same input byte-identical.
func (c *Collector) Collect(tokens []syntax.Token) []Trivia {
	items := c.classifier.Classify(tokens)

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Rng.Start < items[j].Rng.Start
	})

	return items
}
