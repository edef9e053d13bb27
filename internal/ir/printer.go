package ir

import (
	"fmt"
	"strings"

	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/graph"
)

// Printer renders a compiled Program in a flat, indented text form —
// useful for golden-file tests and `redexc -dump-ir` style debugging.
type Printer struct {
	out    strings.Builder
	indent int
}

func NewPrinter() *Printer { return &Printer{} }

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.out.WriteString(strings.Repeat("  ", p.indent))
	p.out.WriteString(fmt.Sprintf(format, args...))
	p.out.WriteString("\n")
}

// Print renders the whole program.
func Print(program *Program) string {
	p := NewPrinter()
	for _, group := range program.Groups {
		p.printGroup(group)
	}
	return p.out.String()
}

func (p *Printer) printGroup(group CompiledGroup) {
	p.writeLine("group %s {", group.Name)
	p.indent++
	p.writeLine("apply:")
	p.indent++
	graph.Walk(group.Apply, func(bb *graph.BasicBlock[apply.Instruction, apply.Term]) {
		p.printApplyBlock(bb)
	})
	p.indent--
	p.indent--
	p.writeLine("}")
}

func (p *Printer) printApplyBlock(bb *graph.BasicBlock[apply.Instruction, apply.Term]) {
	p.writeLine("%s:", bb.Label)
	p.indent++
	for _, inst := range bb.Instructions {
		p.writeLine("%s", inst.TermString())
	}
	p.writeLine("%s", bb.Terminator.String())
	p.indent--
}
