package apply

import (
	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/syntax"
)

// createCollect enumerates every binding a rule's parameters introduce,
// in canonical (parameter, then flattened field) order — the set
// build_collect and build_free both walk.
func createCollect(rule syntax.Rule) []apply.Variable {
	var variables []apply.Variable
	for i, parameter := range rule.Parameters {
		index := uint64(i)
		switch parameter.Kind {
		case syntax.PErased:
			variables = append(variables, apply.Variable{Erased: true, Index: index})
		case syntax.PAtom:
			variables = append(variables, apply.Variable{Erased: false, Index: index})
		case syntax.PConstructor:
			for fieldIndex, pattern := range parameter.Constructor.FlattenPatterns {
				fi := uint64(fieldIndex)
				variables = append(variables, apply.Variable{
					Erased:     pattern.Erased,
					Index:      index,
					FieldIndex: &fi,
				})
			}
		}
	}
	return variables
}

// buildCollect emits a Collect instruction for every erased binding —
// freeing the runtime's reference-count bookkeeping for a value the rule
// never uses.
func (c *Codegen) buildCollect(collect []apply.Variable) {
	for _, v := range collect {
		if v.Erased {
			c.instr(apply.Collect(v.AsTerm()))
		}
	}
}
