package apply

import (
	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/syntax"
)

func (c *Codegen) buildLam(lam syntax.Lam) apply.Term {
	name := c.allocLam(lam.GlobalID)
	atom := apply.CreateAtom(apply.InitialPosition(name))

	c.variables = append(c.variables, namedTerm{name: lam.Parameter, term: atom})
	value := c.buildTerm(*lam.Value)
	c.variables = c.variables[:len(c.variables)-1]

	// A lambda with a global id already had its Erased link emitted by allocLam.
	if lam.Erased && lam.GlobalID == 0 {
		c.instr(apply.Link(apply.InitialPosition(name), apply.CreateErased()))
	}
	c.instr(apply.Link(apply.NewPosition(name, 1), value))

	return apply.CreateLam(apply.InitialPosition(name))
}
