package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruleforge/grammar"
	"ruleforge/internal/ir/syntax"
)

const addRuleBook = `
// Peano addition.
Add(Succ(x), y) = Succ(Add(x, y))
Add(Zero(), y) = y
`

func TestBuildAddRuleBook(t *testing.T) {
	program, err := grammar.ParseString("addition.rdx", addRuleBook)
	require.NoError(t, err)

	book, err := grammar.Build(program)
	require.NoError(t, err)

	group, ok := book.GroupFor("Add")
	require.True(t, ok)
	assert.Equal(t, []bool{true, false}, group.StrictParameters)
	assert.Len(t, group.Rules, 2)

	assert.True(t, book.CtrIsFun["Add"])
	assert.False(t, book.CtrIsFun["Succ"])
	assert.False(t, book.CtrIsFun["Zero"])

	_, hasSucc := book.NameToID["Succ"]
	assert.True(t, hasSucc)
	_, hasZero := book.NameToID["Zero"]
	assert.True(t, hasZero)

	firstRule := group.Rules[0]
	require.Len(t, firstRule.Parameters, 2)
	assert.Equal(t, syntax.PConstructor, firstRule.Parameters[0].Kind)
	assert.Equal(t, "Succ", firstRule.Parameters[0].Constructor.Name)
	assert.Equal(t, syntax.PAtom, firstRule.Parameters[1].Kind)
	assert.Equal(t, "y", firstRule.Parameters[1].Name)

	secondRule := group.Rules[1]
	assert.Equal(t, syntax.PConstructor, secondRule.Parameters[0].Kind)
	assert.Equal(t, "Zero", secondRule.Parameters[0].Constructor.Name)
	assert.Equal(t, uint64(0), secondRule.Parameters[0].Constructor.Arity)
}

func TestBuildNumericGuardRuleBook(t *testing.T) {
	program, err := grammar.ParseString("pred.rdx", "Pred(0) = 0\nPred(x) = x - 1\n")
	require.NoError(t, err)

	book, err := grammar.Build(program)
	require.NoError(t, err)

	group, ok := book.GroupFor("Pred")
	require.True(t, ok)
	assert.Equal(t, []bool{true}, group.StrictParameters)
	assert.Equal(t, syntax.PU60, group.Rules[0].Parameters[0].Kind)
	assert.Equal(t, uint64(0), group.Rules[0].Parameters[0].U60)
}

func TestBuildRejectsArityMismatch(t *testing.T) {
	program, err := grammar.ParseString("bad.rdx", "Foo(x) = x\nFoo(x, y) = x\n")
	require.NoError(t, err)

	_, err = grammar.Build(program)
	assert.Error(t, err)
}
