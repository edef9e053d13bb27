package native_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ruleforge/internal/native"
)

func TestDeclareApplyFunctionIsIdempotentByMangledName(t *testing.T) {
	m := native.NewModule("test")
	fn1 := m.DeclareApplyFunction("Add")
	fn2 := m.DeclareApplyFunction("Add")
	assert.Same(t, fn1, fn2)
	assert.Len(t, m.Functions, 1)
}

func TestDeclareVisitFunctionUsesDistinctNameFromApply(t *testing.T) {
	m := native.NewModule("test")
	m.DeclareApplyFunction("Add")
	m.DeclareVisitFunction("Add")
	assert.Len(t, m.Functions, 2)
}

func TestEmitTagConstantsDeclaresTagGlobals(t *testing.T) {
	m := native.NewModule("test")
	m.EmitTagConstants()

	out := m.String()
	assert.Contains(t, out, "@tag.")
}

func TestModuleStringIncludesSourceFilename(t *testing.T) {
	m := native.NewModule("peano")
	out := m.String()
	assert.Contains(t, out, "source_filename")
	assert.Contains(t, out, "peano")
}
