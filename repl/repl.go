// Package repl is a line-at-a-time read-eval-print loop over the
// rule-book DSL: each line is parsed, compiled, and printed as its own
// one-group program.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"ruleforge/grammar"
	"ruleforge/internal/ir"
)

const PROMPT = ">> "

func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			return
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		parsed, err := grammar.ParseString("<repl>", line)
		if err != nil {
			fmt.Fprintf(out, "parse error: %s\n", err)
			continue
		}

		book, err := grammar.Build(parsed)
		if err != nil {
			fmt.Fprintf(out, "build error: %s\n", err)
			continue
		}

		compiled, err := ir.Compile(book)
		if err != nil {
			fmt.Fprintf(out, "compile error: %s\n", err)
			continue
		}

		fmt.Fprint(out, ir.Print(compiled))
	}
}
