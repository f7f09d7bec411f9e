// Large Source File Generator
//
// This tool generates a large F#-style source file for performance testing
// and profiling. It produces realistic declarations with comments, blank
// lines, directives, and literal spellings to stress the parser and trivia
// pipeline.
//
// Usage:
//
//	go run main.go > large.fsx
//	go run main.go 20000000 > large.fsx  # Specify target size in bytes
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
)

const defaultTargetSize = 10 * 1024 * 1024 // 10MB

var (
	names = []string{
		"parse", "render", "classify", "attach", "collect", "resolve",
		"normalize", "tokenize", "measure", "indent", "flush", "merge",
	}

	operators = []string{"+", "-", "*", "|>", ">>", "<|"}

	comments = []string{
		"// fast path for the common case",
		"// see the matching clause below",
		"(* boundary between phases *)",
		"// keep in sync with the printer",
	}

	literals = []string{
		`"hello"`, `"""multi"""`, `@"C:\temp"`, "42", "3.14", "0xFF_FFu", "'x'",
	}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if n, err := strconv.Atoi(os.Args[1]); err == nil && n > 0 {
			targetSize = n
		}
	}

	rng := rand.New(rand.NewSource(42))
	w := bufio.NewWriter(os.Stdout)
	defer func() { _ = w.Flush() }()

	written, _ := fmt.Fprintf(w, "module Generated\n\nopen System\n\n")
	total := written

	for i := 0; total < targetSize; i++ {
		decl := generateDecl(rng, i)
		n, _ := w.WriteString(decl)
		total += n
	}
}

func generateDecl(rng *rand.Rand, i int) string {
	name := fmt.Sprintf("%s%d", names[rng.Intn(len(names))], i)

	switch rng.Intn(5) {
	case 0:
		return fmt.Sprintf("%s\nlet %s x =\n    x %s %s\n\n",
			comments[rng.Intn(len(comments))],
			name,
			operators[rng.Intn(len(operators))],
			literals[rng.Intn(len(literals))])
	case 1:
		return fmt.Sprintf("let %s a b = a %s b // %s\n\n",
			name,
			operators[rng.Intn(len(operators))],
			names[rng.Intn(len(names))])
	case 2:
		return fmt.Sprintf("type State%d =\n    | Ready\n    | Busy of int\n    | Failed of string\n\n", i)
	case 3:
		return fmt.Sprintf("#if DEBUG\nlet %s = %s\n#endif\n\n",
			name,
			literals[rng.Intn(len(literals))])
	default:
		return fmt.Sprintf("let %s n =\n    match n with\n    | 0 -> %s\n    | _ -> n // fallthrough\n\n",
			name,
			literals[rng.Intn(len(literals))])
	}
}
