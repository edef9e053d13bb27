package apply

import (
	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/syntax"
	"ruleforge/internal/names"
)

// buildApp builds a higher-order application whose callee is not a
// known global — the callee term itself is evaluated and agent-linked
// alongside its single argument.
func (c *Codegen) buildApp(callee syntax.Term, arguments []syntax.Term) apply.Term {
	name := c.freshName("app")
	calleeTerm := c.buildTerm(callee)
	argumentTerm := c.buildTerm(arguments[0])

	done := c.makeAgent(func(args *[]apply.Term) {
		*args = append(*args, calleeTerm, argumentTerm)
	})
	c.instr(apply.Bind(name, done))

	return apply.CreateApp(apply.InitialPosition(name))
}

// buildConstructor builds a saturated application of a known
// constructor: every argument is built first (in source order) and
// agent-linked into one freshly allocated cell.
func (c *Codegen) buildConstructor(arguments []syntax.Term, globalName string) apply.Term {
	mangled := names.Mangle(globalName)

	built := make([]apply.Term, 0, len(arguments))
	for _, a := range arguments {
		built = append(built, c.buildTerm(a))
	}

	name := c.freshName("constructor")
	value := c.makeAgent(func(args *[]apply.Term) { *args = append(*args, built...) })
	c.instr(apply.Bind(name, value))

	id := c.getNameID(mangled)
	return apply.CreateConstructor(apply.NewFunctionId(globalName, id), apply.InitialPosition(name))
}

// buildCall builds a saturated call to a known function (as opposed to
// a constructor): identical shape to buildConstructor, differing only
// in the FunctionId's tag once created.
func (c *Codegen) buildCall(arguments []syntax.Term, globalName string) apply.Term {
	mangled := names.Mangle(globalName)

	built := make([]apply.Term, 0, len(arguments))
	for _, a := range arguments {
		built = append(built, c.buildTerm(a))
	}

	name := c.freshName("call")
	value := c.makeAgent(func(args *[]apply.Term) { *args = append(*args, built...) })
	c.instr(apply.Bind(name, value))

	id := c.getNameID(mangled)
	return apply.CreateFunction(apply.NewFunctionId(globalName, id), apply.InitialPosition(name))
}
