// Command redexc compiles a textual rule book into apply/visit IR and
// prints the result, or reports a diagnostic if compilation fails.
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"ruleforge/grammar"
	"ruleforge/internal/checks"
	"ruleforge/internal/ir"
	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/graph"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: redexc <file.rdx>")
		os.Exit(1)
	}

	path := os.Args[1]
	program, err := grammar.ParseFile(path)
	if err != nil {
		os.Exit(1)
	}

	book, err := grammar.Build(program)
	if err != nil {
		color.Red("%s: %s", path, err)
		os.Exit(1)
	}

	compiled, err := ir.Compile(book)
	if err != nil {
		color.Red("%s: %s", path, err)
		os.Exit(1)
	}

	fmt.Print(ir.Print(compiled))
	for _, f := range checks.SortedFindings(checks.CheckTagSizeTable()) {
		color.Yellow("warning: %s", f)
	}

	color.Green("compiled %d rule group(s) from %s (%s apply instructions)",
		len(compiled.Groups), path, humanize.Comma(int64(countInstructions(compiled))))
}

func countInstructions(program *ir.Program) int {
	total := 0
	for _, group := range program.Groups {
		graph.Walk(group.Apply, func(bb *graph.BasicBlock[apply.Instruction, apply.Term]) {
			total += len(bb.Instructions)
		})
	}
	return total
}
