// Package ir is the compiler's top-level entry point: it wires lowering,
// the apply/visit builders, and the CFG pass together into one Compile
// call over a parsed rule book.
package ir

import (
	applycg "ruleforge/internal/codegen/apply"
	visitcg "ruleforge/internal/codegen/visit"
	"ruleforge/internal/cfg"
	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/graph"
	visit "ruleforge/internal/ir/visit"
	"ruleforge/internal/lower"
	"ruleforge/internal/names"
	"ruleforge/internal/surface"
)

// CompiledGroup is one rule group's finished output: its control-flow
// apply graph and its visit state machine.
type CompiledGroup struct {
	Name  string
	Apply *graph.BasicBlock[apply.Instruction, apply.Term]
	Visit *graph.BasicBlock[visit.Instruction, visit.Term]
}

// Program is the result of compiling a whole rule book.
type Program struct {
	Groups []CompiledGroup
}

// Compile lowers and compiles every rule group in book, in source order.
func Compile(book *surface.RuleBook) (*Program, error) {
	groups, err := lower.New(book).Lower()
	if err != nil {
		return nil, err
	}

	global := &applycg.GlobalContext{Constructors: names.BuildIDTable(book.NameToID)}

	program := &Program{}
	for _, group := range groups {
		block, err := applycg.BuildApply(global, group)
		if err != nil {
			return nil, err
		}

		program.Groups = append(program.Groups, CompiledGroup{
			Name:  group.Name,
			Apply: cfg.Build(block),
			Visit: visitcg.BuildVisit(group),
		})
	}

	return program, nil
}
