// Package native is the optional native back-end: it emits an LLVM
// module declaring one function per compiled rule group, instead of
// walking the apply/visit IR through the tree-walking interpreter in
// internal/eval (spec.md §4.6, "pluggable back-end"). Functions are
// declared without bodies: no apply/visit instruction is lowered to LLVM
// instructions, and no runtime ABI functions are declared or called.
package native

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/names"
)

// Module wraps an in-progress LLVM module plus the function table built
// so far, keyed by mangled rule-group name.
type Module struct {
	LLVM      *ir.Module
	Functions map[string]*ir.Func
}

// NewModule creates an empty LLVM module named after the compiled
// program.
func NewModule(name string) *Module {
	m := ir.NewModule()
	m.SourceFilename = name
	return &Module{LLVM: m, Functions: make(map[string]*ir.Func)}
}

// DeclareApplyFunction declares the apply entry point for one rule
// group: `i64 @<name>_apply(i64 %term)`. The caller links the function
// body in separately once the apply CFG has been translated to LLVM
// basic blocks (reserved; see package doc).
func (m *Module) DeclareApplyFunction(groupName string) *ir.Func {
	mangled := names.Mangle(groupName) + "_apply"
	if fn, ok := m.Functions[mangled]; ok {
		return fn
	}

	param := ir.NewParam("term", types.I64)
	fn := m.LLVM.NewFunc(mangled, types.I64, param)
	m.Functions[mangled] = fn
	return fn
}

// DeclareVisitFunction declares the visit entry point for one rule
// group: `i1 @<name>_visit(i64 %term)`.
func (m *Module) DeclareVisitFunction(groupName string) *ir.Func {
	mangled := names.Mangle(groupName) + "_visit"
	if fn, ok := m.Functions[mangled]; ok {
		return fn
	}

	param := ir.NewParam("term", types.I64)
	fn := m.LLVM.NewFunc(mangled, types.I1, param)
	m.Functions[mangled] = fn
	return fn
}

// EmitTagConstants declares one i64 global per wire tag id, so hand
// translations of guard terms can reference `@tag.Constructor` etc.
// instead of a bare integer literal.
func (m *Module) EmitTagConstants() {
	for _, tag := range apply.AllTags {
		global := m.LLVM.NewGlobalDef("tag."+tag.String(), newI64Const(tag.ID()))
		global.Immutable = true
	}
}

func newI64Const(v uint64) *constant.Int {
	return constant.NewInt(types.I64, int64(v))
}

// String renders the module's textual LLVM IR.
func (m *Module) String() string {
	return m.LLVM.String()
}
