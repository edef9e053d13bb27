// Package eval is the interpreter back-end: it walks a compiled apply
// Block (via its graph.BasicBlock form) or visit Instruction list against
// a runtimeshim.RuntimeABI, without ever emitting native code (spec.md
// §4.6).
package eval

import (
	"fmt"

	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/graph"
	"ruleforge/internal/names"
	"ruleforge/internal/runtimeshim"
)

// ObjectKind discriminates Object.
type ObjectKind int

const (
	ObjU64 ObjectKind = iota
	ObjBool
)

// Object is a runtime value produced by evaluating a Term: either a raw
// heap pointer/scalar (U64) or a boolean guard result.
type Object struct {
	Kind ObjectKind
	U64  uint64
	Bool bool
}

func U64(v uint64) Object  { return Object{Kind: ObjU64, U64: v} }
func Bool(v bool) Object   { return Object{Kind: ObjBool, Bool: v} }

func (o Object) AsU64() uint64 {
	if o.Kind != ObjU64 {
		panic(fmt.Sprintf("eval: expected u64, got %+v", o))
	}
	return o.U64
}

func (o Object) AsBool() bool {
	if o.Kind != ObjBool {
		panic(fmt.Sprintf("eval: expected bool, got %+v", o))
	}
	return o.Bool
}

// Control is what an Instruction's evaluation yields to its caller: keep
// going, or unwind with a Return value up to the enclosing block.
type Control struct {
	Break bool
	Value Object
}

func Continue() Control        { return Control{} }
func Break(value Object) Control { return Control{Break: true, Value: value} }

// Context is the mutable evaluation environment: the runtime ABI handle
// and the name -> Object bindings introduced by Bind/Link instructions.
type Context struct {
	Runtime   runtimeshim.RuntimeABI
	Variables map[string]Object

	// ConstructorIDs resolves a mangled constructor/function name to its
	// wire id, the same table GlobalContext.Constructors supplies to
	// codegen.
	ConstructorIDs map[string]uint64
}

func NewContext(runtime runtimeshim.RuntimeABI, constructorIDs map[string]uint64) *Context {
	return &Context{Runtime: runtime, Variables: make(map[string]Object), ConstructorIDs: constructorIDs}
}

func (c *Context) clone() *Context {
	vars := make(map[string]Object, len(c.Variables))
	for k, v := range c.Variables {
		vars[k] = v
	}
	return &Context{Runtime: c.Runtime, Variables: vars, ConstructorIDs: c.ConstructorIDs}
}

// EvalPosition resolves a Position to an absolute heap offset.
func EvalPosition(p apply.Position, ctx *Context) uint64 {
	if p.Host {
		return ctx.Runtime.GetHost()
	}
	base, ok := ctx.Variables[p.Ref]
	if !ok {
		panic(fmt.Sprintf("eval: unknown reference %q", p.Ref))
	}
	return base.AsU64() + p.GateIndex
}

// EvalTerm evaluates an apply.Term against the runtime ABI.
func EvalTerm(t apply.Term, ctx *Context) Object {
	switch t.Kind {
	case apply.KCurrent:
		return U64(uint64(ctx.Runtime.GetTerm()))
	case apply.KTrue:
		return Bool(true)
	case apply.KFalse:
		return Bool(false)
	case apply.KTag:
		return U64(t.Tag.ID())
	case apply.KExt:
		return U64(t.ExtID)
	case apply.KRef:
		v, ok := ctx.Variables[t.Ref]
		if !ok {
			panic(fmt.Sprintf("eval: could not find variable %q", t.Ref))
		}
		return v
	case apply.KNotFound:
		panic(fmt.Sprintf("eval: atom not found: %s", t.NotFound.Name))
	case apply.KAlloc:
		return U64(ctx.Runtime.Alloc(t.Size))
	case apply.KArityOf:
		return U64(0) // reserved: arity introspection is not exercised by this backend yet
	case apply.KGetExt:
		return U64(ctx.Runtime.GetExt(EvalTerm(*t.Term, ctx).AsU64()))
	case apply.KGetNumber:
		return U64(ctx.Runtime.GetNumber(EvalTerm(*t.Term, ctx).AsU64()))
	case apply.KGetTag:
		return U64(ctx.Runtime.GetTag(EvalTerm(*t.Term, ctx).AsU64()))
	case apply.KGetPosition:
		return U64(ctx.Runtime.GetPosition(EvalTerm(*t.Term, ctx).AsU64(), t.Index))
	case apply.KLoadArgument:
		return U64(ctx.Runtime.LoadArgument(EvalTerm(*t.Term, ctx).AsU64(), t.Index))
	case apply.KEqual:
		return Bool(EvalTerm(*t.Lhs, ctx) == EvalTerm(*t.Rhs, ctx))
	case apply.KLogicalOr:
		lhs := EvalTerm(*t.Lhs, ctx)
		if lhs.AsBool() {
			return lhs
		}
		return EvalTerm(*t.Rhs, ctx)
	case apply.KLogicalAnd:
		lhs := EvalTerm(*t.Lhs, ctx)
		if !lhs.AsBool() {
			return Bool(false)
		}
		return EvalTerm(*t.Rhs, ctx)
	case apply.KAgent:
		name := fmt.Sprintf("agent_%d", len(ctx.Variables)+1)
		value := ctx.Runtime.Alloc(t.Agent.Arity)
		ctx.Variables[name] = U64(value)
		for i, argument := range t.Agent.Arguments {
			position := EvalPosition(apply.NewPosition(name, uint64(i)), ctx)
			ctx.Runtime.Link(position, EvalTerm(argument, ctx).AsU64())
		}
		return U64(value)
	case apply.KCreate:
		return evalCreate(t.Value, ctx)
	default:
		panic(fmt.Sprintf("eval: unhandled term kind %d", t.Kind))
	}
}

func evalCreate(v apply.Value, ctx *Context) Object {
	switch v.Kind {
	case apply.ValErased:
		return U64(ctx.Runtime.CreateErased())
	case apply.ValU60:
		return U64(ctx.Runtime.CreateU60(v.U60))
	case apply.ValF60:
		return U64(ctx.Runtime.CreateF60(v.F60))
	case apply.ValFunction:
		return U64(ctx.Runtime.CreateFunction(resolveID(v.Function, ctx), EvalPosition(v.Position, ctx)))
	case apply.ValConstructor:
		return U64(ctx.Runtime.CreateConstructor(resolveID(v.Function, ctx), EvalPosition(v.Position, ctx)))
	case apply.ValLam:
		return U64(ctx.Runtime.CreateLam(EvalPosition(v.Position, ctx)))
	case apply.ValAtom:
		return U64(ctx.Runtime.CreateVar(EvalPosition(v.Position, ctx)))
	case apply.ValApp:
		return U64(ctx.Runtime.CreateApp(EvalPosition(v.Position, ctx)))
	case apply.ValArgument:
		return U64(ctx.Runtime.CreateVar(EvalPosition(v.Position, ctx)))
	case apply.ValBinary:
		return U64(ctx.Runtime.CreateBinary(v.Binary.Op.ID(), EvalPosition(v.Position, ctx)))
	default:
		panic(fmt.Sprintf("eval: cannot create value %+v", v))
	}
}

func resolveID(fn apply.FunctionId, ctx *Context) uint64 {
	if fn.ID != 0 {
		return fn.ID
	}
	return ctx.ConstructorIDs[names.Mangle(fn.Name)]
}

// EvalInstruction evaluates a single apply.Instruction.
func EvalInstruction(inst apply.Instruction, ctx *Context) Control {
	switch inst.Kind {
	case apply.ICollect:
		return Continue()
	case apply.IIf:
		cond := EvalTerm(inst.Cond, ctx).AsBool()
		if cond {
			return evalBlock(inst.Then.Instructions, ctx.clone())
		}
		if inst.Else != nil {
			return evalBlock(inst.Else.Instructions, ctx.clone())
		}
		return Continue()
	case apply.IBind:
		ctx.Variables[inst.Name] = EvalTerm(inst.Value, ctx)
		return Continue()
	case apply.ILink:
		ctx.Runtime.Link(EvalPosition(inst.Position, ctx), EvalTerm(inst.Link, ctx).AsU64())
		return Continue()
	case apply.IFree:
		ctx.Runtime.Free(EvalTerm(inst.FreePosition, ctx).AsU64(), inst.Arity)
		return Continue()
	case apply.IIncrementCost:
		ctx.Runtime.IncrementCost()
		return Continue()
	case apply.ITerm:
		EvalTerm(inst.Term, ctx)
		return Continue()
	case apply.IReturn:
		return Break(EvalTerm(inst.Term, ctx))
	case apply.IMetadata:
		return evalBlock(inst.MetaBlock, ctx)
	case apply.IPrintln:
		fmt.Println(inst.Message)
		return Continue()
	default:
		panic(fmt.Sprintf("eval: unhandled instruction kind %d", inst.Kind))
	}
}

func evalBlock(instructions []apply.Instruction, ctx *Context) Control {
	for _, inst := range instructions {
		if c := EvalInstruction(inst, ctx); c.Break {
			return c
		}
	}
	return Continue()
}

// EvalBlock runs every instruction in an apply.Block, returning the first
// Return value reached, or (Object{}, false) if the block fell through
// without returning (which, for a well-formed rule group, only happens
// on the top-level Return(False) terminator being absent — a bug).
func EvalBlock(block apply.Block, ctx *Context) (Object, bool) {
	c := evalBlock(block.Instructions, ctx)
	if c.Break {
		return c.Value, true
	}
	return Object{}, false
}

// EvalGraph walks a compiled apply CFG starting at root, following Cond
// terminators until a Return is reached.
func EvalGraph(root *graph.BasicBlock[apply.Instruction, apply.Term], ctx *Context) Object {
	bb := root
	for {
		for _, inst := range bb.Instructions {
			EvalInstruction(inst, ctx)
		}
		switch bb.Terminator.Kind {
		case graph.Return:
			return EvalTerm(bb.Terminator.Value, ctx)
		case graph.Cond:
			if EvalTerm(bb.Terminator.Cond, ctx).AsBool() {
				next, _ := bb.Lookup(bb.Terminator.Then)
				bb = next
			} else {
				next, _ := bb.Lookup(bb.Terminator.Else)
				bb = next
			}
		case graph.Jump:
			next, _ := bb.Lookup(bb.Terminator.Then)
			bb = next
		default:
			return Object{}
		}
	}
}
