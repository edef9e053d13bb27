package apply

import (
	"fmt"

	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/syntax"
)

type freeSlot struct {
	index uint64
	arity uint64
}

func createFree(rule syntax.Rule) []freeSlot {
	var slots []freeSlot
	for i, parameter := range rule.Parameters {
		if parameter.Kind == syntax.PConstructor {
			slots = append(slots, freeSlot{index: uint64(i), arity: parameter.Constructor.Arity})
		}
	}
	return slots
}

// buildFree emits a Free for every matched constructor's backing cells,
// followed by one final Free for the redex cell itself — collect-before-
// free ordering, in canonical emission order (parameters left to right,
// Current last).
func (c *Codegen) buildFree(rule syntax.Rule, group *syntax.RuleGroup) {
	for _, slot := range createFree(rule) {
		argument := apply.Ref(fmt.Sprintf("arg%d", slot.index))
		c.instr(apply.Free(apply.GetPosition(argument, 0), slot.arity))
	}

	c.instr(apply.Free(apply.GetPosition(apply.Current(), 0), uint64(len(group.StrictParameters))))
}
