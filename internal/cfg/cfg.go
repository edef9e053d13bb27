// Package cfg turns a straight-line apply.Block into a labeled control
// flow graph: Metadata instructions are inlined away, and every If
// instruction becomes a Cond terminator splitting the remaining code
// into a `then` block and an `otherwise` block carrying whatever
// followed the If (spec.md §4.5).
package cfg

import (
	"fmt"

	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/graph"
)

var blockCounter uint64

// nextLabel returns a fresh, process-wide monotonic block label.
// Deliberately deterministic rather than randomly generated — see
// internal/codegen/visit's nextLabel for the same call and its
// rationale (spec.md §8 Testable Property 2).
func nextLabel() graph.Label {
	blockCounter++
	return graph.Label(fmt.Sprintf("bb_%d", blockCounter))
}

// Build converts one apply.Block into a rooted graph.BasicBlock.
func Build(block apply.Block) *graph.BasicBlock[apply.Instruction, apply.Term] {
	return build(flatten(block.Instructions))
}

func build(instructions []apply.Instruction) *graph.BasicBlock[apply.Instruction, apply.Term] {
	bb := graph.New[apply.Instruction, apply.Term](nextLabel())

	for i, inst := range instructions {
		switch inst.Kind {
		case apply.IReturn:
			bb.WithReturn(inst.Term)
			return bb

		case apply.IIf:
			then := build(flatten(inst.Then.Instructions))

			var otherwiseInstructions []apply.Instruction
			if inst.Else != nil {
				otherwiseInstructions = append(otherwiseInstructions, inst.Else.Instructions...)
			}
			otherwiseInstructions = append(otherwiseInstructions, instructions[i+1:]...)
			otherwise := build(flatten(otherwiseInstructions))

			bb.WithCond(inst.Cond, then, otherwise)
			return bb

		default:
			bb.Instructions = append(bb.Instructions, inst)
		}
	}

	return bb
}

// flatten inlines Metadata's carried sub-instructions in place and
// recursively flattens an If instruction's then/else arms, without
// otherwise reordering or dropping anything.
func flatten(instructions []apply.Instruction) []apply.Instruction {
	out := make([]apply.Instruction, 0, len(instructions))
	for _, inst := range instructions {
		switch inst.Kind {
		case apply.IMetadata:
			out = append(out, flatten(inst.MetaBlock)...)
		case apply.IIf:
			flattenedIf := inst
			flattenedIf.Then = apply.Block{
				Instructions: flatten(inst.Then.Instructions),
				Tags:         inst.Then.Tags,
				Extensions:   inst.Then.Extensions,
			}
			if inst.Else != nil {
				els := apply.Block{
					Instructions: flatten(inst.Else.Instructions),
					Tags:         inst.Else.Tags,
					Extensions:   inst.Else.Extensions,
				}
				flattenedIf.Else = &els
			}
			out = append(out, flattenedIf)
		default:
			out = append(out, inst)
		}
	}
	return out
}
