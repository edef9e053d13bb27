package ir_test

import (
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruleforge/grammar"
	"ruleforge/internal/ir"
)

func compile(t *testing.T, source string) *ir.Program {
	t.Helper()
	program, err := grammar.ParseString("test.rdx", source)
	require.NoError(t, err)

	book, err := grammar.Build(program)
	require.NoError(t, err)

	compiled, err := ir.Compile(book)
	require.NoError(t, err)
	return compiled
}

func TestCompileSuccessorRule(t *testing.T) {
	compiled := compile(t, "Add(Succ(x), y) = Succ(Add(x, y))\nAdd(Zero(), y) = y\n")

	require.Len(t, compiled.Groups, 1)
	group := compiled.Groups[0]
	assert.Equal(t, "Add", group.Name)
	require.NotNil(t, group.Apply)
	require.NotNil(t, group.Visit)

	out := ir.Print(compiled)
	assert.Contains(t, out, "group Add")
}

func TestCompileMixedPatterns(t *testing.T) {
	compiled := compile(t, "IsZero(Zero()) = 1\nIsZero(Succ(_)) = 0\n")

	require.Len(t, compiled.Groups, 1)
	out := ir.Print(compiled)
	assert.True(t, strings.Contains(out, "IsZero"))
}

func TestCompileVisitFastPathForNonStrictGroup(t *testing.T) {
	compiled := compile(t, "Const(x, y) = x\n")

	require.Len(t, compiled.Groups, 1)
	group := compiled.Groups[0]
	// No strict parameters: the visit block should still be built, with
	// a default entry that never descends.
	assert.NotNil(t, group.Visit)
}

// TestCompileGroupDumpIsStable exercises the same pretty-printed dump this
// suite would log on a mismatching assertion, so a CompiledGroup's %#v
// form stays readable as the struct grows.
func TestCompileGroupDumpIsStable(t *testing.T) {
	compiled := compile(t, "Add(Succ(x), y) = Succ(Add(x, y))\nAdd(Zero(), y) = y\n")
	require.Len(t, compiled.Groups, 1)

	dump := pretty.Sprint(compiled.Groups[0])
	assert.Contains(t, dump, "Add")
	t.Logf("compiled group dump:\n%s", dump)
}
