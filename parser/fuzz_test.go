package parser

import (
	"testing"

	"github.com/kontomondo/fantomas/syntax"
)

func FuzzScanAll(f *testing.F) {
	f.Add([]byte("let a = 7 // b\n"))
	f.Add([]byte("(* nested (* block *) comment *)\n"))
	f.Add([]byte("#if DEBUG\nlet x = \"\"\"multi\nline\"\"\"\n#endif\n"))
	f.Add([]byte("let ``weird name`` = 'x'\n"))
	f.Add([]byte("\x00\xff\xfe"))
	f.Add([]byte(""))

	f.Fuzz(func(t *testing.T, data []byte) {
		tokens := NewLexer(data, "fuzz.fsx").ScanAll()

		if len(tokens) == 0 || tokens[len(tokens)-1].Kind != syntax.EOF {
			t.Fatalf("token stream must end with EOF, got %d tokens", len(tokens))
		}

		prevStart := -1
		for _, tok := range tokens {
			if tok.Start < 0 || tok.End < tok.Start || tok.End > len(data) {
				t.Fatalf("token %s has offsets [%d:%d] outside source of %d bytes",
					tok.Kind, tok.Start, tok.End, len(data))
			}
			if tok.Start < prevStart {
				t.Fatalf("token %s at %d starts before previous token at %d",
					tok.Kind, tok.Start, prevStart)
			}
			prevStart = tok.Start
			if tok.Line < 1 || tok.Column < 1 {
				t.Fatalf("token %s has non-positive position %d:%d", tok.Kind, tok.Line, tok.Column)
			}
		}
	})
}
