// Package visit builds the three-block state machine (entry/goup/
// otherwise) that decides whether a redex's strict arguments are already
// in weak head normal form, descending into whichever aren't (spec.md
// §4.4).
package visit

import (
	"fmt"

	"ruleforge/internal/ir/graph"
	"ruleforge/internal/ir/syntax"
	visit "ruleforge/internal/ir/visit"
)

var blockCounter uint64

// nextLabel returns a fresh, process-wide monotonic block label: labels
// are deterministic rather than random, but the counter is never reset,
// so compiling the same rule book twice yields the same label prefixes
// with different numeric suffixes. See DESIGN.md.
func nextLabel(prefix string) graph.Label {
	blockCounter++
	return graph.Label(fmt.Sprintf("%s_%d", prefix, blockCounter))
}

// BuildVisit builds the visit block for one rule group.
func BuildVisit(group syntax.RuleGroup) *graph.BasicBlock[visit.Instruction, visit.Term] {
	entry := graph.New[visit.Instruction, visit.Term](nextLabel("entry"))
	entry.WithReturn(visit.False())

	if !hasStrictParameter(group.StrictParameters) {
		return entry
	}

	entry.Instructions = append(entry.Instructions, visit.SetVLen(), visit.SetVBuf(visit.CreateVBuf()))
	for index, isStrict := range group.StrictParameters {
		if !isStrict {
			continue
		}
		entry.Instructions = append(entry.Instructions, visit.IncreaseLen(uint64(index)))
	}

	goup := graph.New[visit.Instruction, visit.Term](nextLabel("goup"))
	goup.Instructions = append(goup.Instructions, visit.SetGoup(visit.Redex()))
	for index, isStrict := range group.StrictParameters {
		if !isStrict {
			continue
		}
		goup.Instructions = append(goup.Instructions, visit.Visit(uint64(index)))
	}
	goup.Instructions = append(goup.Instructions, visit.UpdateCont(), visit.UpdateHost())
	goup.WithReturn(visit.True())

	otherwise := graph.New[visit.Instruction, visit.Term](nextLabel("otherwise"))
	otherwise.WithReturn(visit.False())

	entry.WithCond(visit.CheckVLen(), goup, otherwise)

	return entry
}

func hasStrictParameter(strict []bool) bool {
	for _, isStrict := range strict {
		if isStrict {
			return true
		}
	}
	return false
}
