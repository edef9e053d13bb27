package apply

import (
	"sort"

	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/diag"
	"ruleforge/internal/ir/syntax"
)

// BuildApply builds the full apply.Block for one lowered rule group: load
// every strict argument once, then test each rule's guard in source
// order and build its RHS on a match (spec.md §4.2/§4.3).
func BuildApply(global *GlobalContext, group syntax.RuleGroup) (apply.Block, error) {
	c := New(global)

	if len(group.Rules) == 0 {
		return apply.Block{}, diag.New(diag.CodeInvalidPattern, "rule group has no rules", diag.Position{}, nil)
	}

	for i := range group.StrictParameters {
		name := c.freshName("arg")
		c.instr(apply.Bind(name, apply.LoadArgument(apply.Current(), uint64(i))))
		c.arguments = append(c.arguments, NewArgument(apply.Ref(name)))
	}

	for _, rule := range group.Rules {
		collect := createCollect(rule)

		matchRule := apply.True()
		for i, parameter := range rule.Parameters {
			matchRule = apply.LogicalAnd(matchRule, c.buildMatch(&group, i, parameter)).Simplify()
		}

		if matchRule.IsTrue() {
			c.instr(apply.IncrementCost())
			c.variables = variablesFromCollect(collect)
			done := c.buildTerm(rule.Value)
			c.buildLink(done)
			c.buildCollect(collect)
			c.buildFree(rule, &group)
			c.instr(apply.Return(apply.True()))
		} else {
			then := c.childBlock(apply.IncrementCost())
			then.buildConstructorPatterns(rule)
			then.variables = variablesFromCollect(collect)
			done := then.buildTerm(rule.Value)
			then.buildLink(done)
			then.buildCollect(collect)
			then.buildFree(rule, &group)
			then.instr(apply.Return(apply.True()))

			c.adoptNameIndex(then)
			c.instr(apply.If(matchRule, then.instructions, nil))
		}
	}

	c.instr(apply.Return(apply.False()))

	if err := c.Err(); err != nil {
		return apply.Block{}, err
	}

	c.instructions.Tags = sortedNamedIDs(c.constantTags)
	c.instructions.Extensions = sortedNamedIDs(c.constantExtensions)

	return c.instructions, nil
}

func variablesFromCollect(collect []apply.Variable) []namedTerm {
	out := make([]namedTerm, 0, len(collect))
	for _, v := range collect {
		out = append(out, namedTerm{name: v.Name(), term: v.AsTerm()})
	}
	return out
}

func sortedNamedIDs(table map[string]apply.NameId) []apply.NamedID {
	out := make([]apply.NamedID, 0, len(table))
	for name, id := range table {
		out = append(out, apply.NamedID{Name: name, ID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
