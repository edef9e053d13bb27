package apply

import (
	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/syntax"
)

// withMetadata runs build against a fresh child block and wraps
// whatever instructions it emitted in a single Metadata instruction
// carrying the source IR term — so a later pretty-printer can show the
// rule-book expression each group of generated instructions came from.
// Per spec.md §4.2, only Lam/Binary/App construction is wrapped this
// way; U60/F60/Atom/Let are cheap enough not to need the annotation.
func (c *Codegen) withMetadata(source syntax.Term, build func(bb *Codegen, t syntax.Term) apply.Term) apply.Term {
	child := c.childBlock()
	result := build(child, source)
	c.adoptNameIndex(child)
	c.instr(apply.Metadata(source, nil, child.instructions.Instructions))
	return result
}
