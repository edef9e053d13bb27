package apply

import (
	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/syntax"
)

var binaryOpID = map[syntax.Op]apply.Op{
	syntax.OpAdd: apply.Add,
	syntax.OpSub: apply.Sub,
	syntax.OpMul: apply.Mul,
	syntax.OpDiv: apply.Div,
	syntax.OpMod: apply.Mod,
	syntax.OpAnd: apply.And,
	syntax.OpOr:  apply.Or,
	syntax.OpXor: apply.Xor,
	syntax.OpShl: apply.Shl,
	syntax.OpShr: apply.Shr,
	syntax.OpLtn: apply.Ltn,
	syntax.OpLte: apply.Lte,
	syntax.OpEql: apply.Eql,
	syntax.OpGte: apply.Gte,
	syntax.OpGtn: apply.Gtn,
	syntax.OpNeq: apply.Neq,
}

func (c *Codegen) buildBinary(b syntax.Binary) apply.Term {
	name := c.freshName("binary")

	lhs := c.buildTerm(*b.Lhs)
	rhs := c.buildTerm(*b.Rhs)

	c.instr(apply.Bind(name, c.alloc(2)))
	c.instr(apply.Link(apply.InitialPosition(name), lhs))
	c.instr(apply.Link(apply.NewPosition(name, 1), rhs))

	return apply.CreateBinary(lhs, binaryOpID[b.Op], rhs, apply.InitialPosition(name))
}
