package apply

import (
	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/syntax"
	"ruleforge/internal/names"
)

// buildMatch builds the guard term for one parameter slot of one rule:
// a numeric/constructor equality check, a strict-atom shape check, or
// `true` for a non-strict atom/erased slot (spec.md §4.2's per-parameter
// guard table).
func (c *Codegen) buildMatch(group *syntax.RuleGroup, i int, parameter syntax.Parameter) apply.Term {
	argument := c.getArgument(i).Value()

	switch parameter.Kind {
	case syntax.PU60:
		return apply.LogicalAnd(
			apply.Equal(apply.GetTag(argument), c.tag(apply.U60)),
			apply.Equal(apply.GetNumber(argument), apply.CreateU60(parameter.U60)),
		)
	case syntax.PF60:
		return apply.LogicalAnd(
			apply.Equal(apply.GetTag(argument), c.tag(apply.F60)),
			apply.Equal(apply.GetNumber(argument), apply.CreateF60(parameter.F60)),
		)
	case syntax.PConstructor:
		mangled := names.Mangle(parameter.Constructor.Name)
		id := c.getNameID(mangled)
		return apply.LogicalAnd(
			apply.Equal(apply.GetTag(argument), c.tag(apply.Constructor)),
			apply.Equal(apply.GetExt(argument), c.ext(id, mangled)),
		)
	case syntax.PAtom:
		if i < len(group.StrictParameters) && group.StrictParameters[i] {
			return apply.LogicalOr(
				apply.Equal(apply.GetTag(argument), c.tag(apply.Constructor)),
				apply.LogicalOr(
					apply.Equal(apply.GetTag(argument), c.tag(apply.U60)),
					apply.Equal(apply.GetTag(argument), c.tag(apply.F60)),
				),
			)
		}
		return apply.True()
	default:
		return apply.True()
	}
}

// buildConstructorPatterns lazily binds every constructor sub-field of a
// matched rule's parameters, inside the arm that already knows the guard
// held — never speculatively at the top level (spec.md §4.2). Each field
// load is memoized on the Argument so re-referencing the same field
// within the same rule never emits a second LoadArgument.
func (c *Codegen) buildConstructorPatterns(rule syntax.Rule) {
	for i, parameter := range rule.Parameters {
		if parameter.Kind != syntax.PConstructor {
			continue
		}

		argument := c.getArgument(i)
		for fieldIndex := range parameter.Constructor.FlattenPatterns {
			if argument.HasField(fieldIndex) {
				continue
			}

			field := uint64(fieldIndex)
			name := apply.Variable{Index: uint64(i), FieldIndex: &field}.Name()
			term := apply.LoadArgument(argument.Value(), field)
			argument.AddField(apply.Ref(name))
			c.instr(apply.Bind(name, term))
		}
	}
}
