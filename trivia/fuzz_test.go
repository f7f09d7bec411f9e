package trivia

import (
	"testing"

	"github.com/kontomondo/fantomas/parser"
	"github.com/kontomondo/fantomas/syntax"
)

func FuzzClassify(f *testing.F) {
	f.Add([]byte("let a = 7 // b\n"))
	f.Add([]byte("// meh\nlet a = 7\n"))
	f.Add([]byte("\n\n(* note *)\n\n"))
	f.Add([]byte("let s = @\"C:\\x\" + \"\"\"m\nl\"\"\"\n"))
	f.Add([]byte("#if A\n#else\n#endif\n"))
	f.Add([]byte("\xff\x00"))

	f.Fuzz(func(t *testing.T, data []byte) {
		tokens := parser.NewLexer(data, "fuzz.fsx").ScanAll()
		src := syntax.NewSource(data)

		items := NewCollector(src).Collect(tokens)

		prev := -1
		for _, item := range items {
			if item.Content == nil {
				t.Fatal("classified item with nil content")
			}
			if item.Rng.Start < 0 || item.Rng.End < item.Rng.Start || item.Rng.End > len(data) {
				t.Fatalf("item %s has range outside source of %d bytes", item, len(data))
			}
			if item.Rng.Start < prev {
				t.Fatalf("item %s out of order after start %d", item, prev)
			}
			prev = item.Rng.Start
		}
	})
}
