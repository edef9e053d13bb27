// Package apply builds an apply.Block — the straight-line matcher and
// constructor for one rule group — from its lowered syntax.RuleGroup.
// It mirrors the shape of a hand-written interpreter for the rule group:
// load each strict argument once, test each rule's guard in source
// order, and on a match build and link the rule's right-hand side.
package apply

import (
	"fmt"

	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/syntax"
)

// GlobalContext is shared, read-only program-wide state: the
// constructor/function name table a rule group's codegen consults to
// resolve a callee's wire id.
type GlobalContext struct {
	Constructors map[string]uint64
}

// Codegen accumulates one apply.Block's worth of instructions plus the
// bookkeeping (variable stack, lambda-sharing table, constant tag/ext
// tables) the various build_* passes need as they walk a rule's RHS.
type Codegen struct {
	Global *GlobalContext

	nameIndex    uint64
	variables    []namedTerm
	arguments    []*Argument
	instructions apply.Block
	lambdas      map[uint64]string

	constantTags       map[string]apply.NameId
	constantExtensions map[string]apply.NameId

	// err is a pointer shared with every childBlock spawned from this
	// Codegen, so a fatal error recorded deep in a `then` arm or a
	// with_metadata capture still fails the whole BuildApply call.
	err *error
}

type namedTerm struct {
	name string
	term apply.Term
}

func New(global *GlobalContext) *Codegen {
	var err error
	return &Codegen{
		Global:             global,
		lambdas:            make(map[uint64]string),
		constantTags:       make(map[string]apply.NameId),
		constantExtensions: make(map[string]apply.NameId),
		err:                &err,
	}
}

// fail records a fatal codegen error the first time one occurs and
// returns a placeholder term so the caller can keep threading a Term
// value without special-casing every build_* call site; BuildApply
// refuses to install a rule group once this fires (spec.md §7's "favors
// early fatal failures over partial installation of broken rule
// groups").
func (c *Codegen) fail(err error) apply.Term {
	if *c.err == nil {
		*c.err = err
	}
	return apply.NotFound(syntax.Atom{Name: "<unsupported>"})
}

// Err reports the first fatal error recorded by fail, if any.
func (c *Codegen) Err() error {
	return *c.err
}

func (c *Codegen) tag(t apply.Tag) apply.Term {
	c.constantTags[t.String()] = t.ID()
	return apply.TagTerm(t)
}

func (c *Codegen) ext(id apply.NameId, name string) apply.Term {
	c.constantExtensions[name] = id
	return apply.ExtTerm(id, name)
}

func (c *Codegen) instr(inst apply.Instruction) {
	c.instructions.Push(inst)
}

func (c *Codegen) buildLink(done apply.Term) {
	c.instr(apply.Link(apply.HostPosition(), done))
}

func (c *Codegen) freshName(prefix string) string {
	name := fmt.Sprintf("%s%d", prefix, c.nameIndex)
	c.nameIndex++
	return name
}

func (c *Codegen) getNameID(name string) apply.NameId {
	id, ok := c.Global.Constructors[name]
	if !ok {
		panic(fmt.Sprintf("apply codegen: no constructor for %s", name))
	}
	return id
}

// alloc is sugar for Term.Alloc — kept as a method, rather than inlined
// at every call site, because the teacher's upstream reserved this spot
// for an allocation-reuse optimization that was ultimately left disabled.
func (c *Codegen) alloc(size uint64) apply.Term {
	return apply.AllocTerm(size)
}

func (c *Codegen) allocLam(globalID uint64) string {
	if name, ok := c.lambdas[globalID]; ok {
		return name
	}

	name := c.freshName("lam")
	c.instr(apply.Bind(name, c.alloc(2)))

	if globalID != 0 {
		// The sanitizer can't yet detect that a scope-less lambda never uses
		// its bound variable, so the Erased link is always emitted here.
		c.instr(apply.Link(apply.InitialPosition(name), apply.CreateErased()))
		c.lambdas[globalID] = name
	}

	return name
}

func (c *Codegen) makeAgent(build func(arguments *[]apply.Term)) apply.Term {
	var arguments []apply.Term
	build(&arguments)
	return apply.Agent(arguments)
}

// childBlock starts a nested Codegen sharing this one's name index,
// variable stack, lambda table, constant tables, and fatal-error box but
// with a fresh instruction list and its own copy of the loaded arguments
// (so field loads made in one arm are not seen by a sibling arm) — used
// to build the `then` arm of a guard, and the throwaway block
// with_metadata captures instructions into.
func (c *Codegen) childBlock(seed ...apply.Instruction) *Codegen {
	arguments := make([]*Argument, len(c.arguments))
	for i, a := range c.arguments {
		arguments[i] = &Argument{value: a.value, fields: append([]apply.Term(nil), a.fields...)}
	}
	child := &Codegen{
		Global:             c.Global,
		nameIndex:          c.nameIndex,
		variables:          append([]namedTerm(nil), c.variables...),
		arguments:          arguments,
		err:                c.err,
		lambdas:            c.lambdas,
		constantTags:       c.constantTags,
		constantExtensions: c.constantExtensions,
	}
	for _, inst := range seed {
		child.instr(inst)
	}
	return child
}

// adoptNameIndex folds a child block's name index back into this one, so
// fresh names stay globally unique across sibling blocks built from the
// same Codegen (mirrors with_metadata's bookkeeping).
func (c *Codegen) adoptNameIndex(child *Codegen) {
	c.nameIndex = child.nameIndex
}
