package cfg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applycg "ruleforge/internal/codegen/apply"
	"ruleforge/internal/cfg"
	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/graph"
	"ruleforge/internal/ir/syntax"
	"ruleforge/internal/lower"
	"ruleforge/internal/names"
	"ruleforge/internal/surface"
)

func addRuleGroup(t *testing.T) syntax.RuleGroup {
	t.Helper()
	book := surface.NewRuleBook()
	book.Define("Add", 0)
	book.Define("Succ", 1)
	book.Define("Zero", 2)
	book.MarkFunction("Add")

	succPattern := surface.Parameter{
		Kind: surface.PConstructor,
		Constructor: surface.Constructor{
			Name: "Succ", Arity: 1,
			FlattenPatterns: []surface.Pattern{{Name: "x"}},
		},
	}
	zeroPattern := surface.Parameter{
		Kind:        surface.PConstructor,
		Constructor: surface.Constructor{Name: "Zero", Arity: 0},
	}
	yParam := surface.Parameter{Kind: surface.PAtom, Name: "y"}

	recur := surface.App(surface.Var("Add"), []surface.Term{surface.Var("x"), surface.Var("y")})
	successorRule := surface.Rule{
		Name:       "Add",
		Parameters: []surface.Parameter{succPattern, yParam},
		Value:      surface.App(surface.Var("Succ"), []surface.Term{recur}),
	}
	baseRule := surface.Rule{
		Name:       "Add",
		Parameters: []surface.Parameter{zeroPattern, yParam},
		Value:      surface.Var("y"),
	}

	book.Groups = append(book.Groups, surface.RuleGroup{
		Name:             "Add",
		StrictParameters: []bool{true, false},
		Rules:            []surface.Rule{successorRule, baseRule},
	})

	groups, err := lower.New(book).Lower()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	return groups[0]
}

func TestBuildSplitsOnIfIntoCondTerminator(t *testing.T) {
	group := addRuleGroup(t)
	global := &applycg.GlobalContext{Constructors: map[string]uint64{
		names.Mangle("Add"):  0,
		names.Mangle("Succ"): 1,
		names.Mangle("Zero"): 2,
	}}
	block, err := applycg.BuildApply(global, group)
	require.NoError(t, err)

	root := cfg.Build(block)
	assert.Equal(t, graph.Cond, root.Terminator.Kind)

	then, ok := root.Lookup(root.Terminator.Then)
	require.True(t, ok)
	assert.NotEmpty(t, then)

	els, ok := root.Lookup(root.Terminator.Else)
	require.True(t, ok)
	assert.NotEmpty(t, els)
}

func TestBuildLabelsAreUniqueWithinOneCFG(t *testing.T) {
	group := addRuleGroup(t)
	global := &applycg.GlobalContext{Constructors: map[string]uint64{
		names.Mangle("Add"):  0,
		names.Mangle("Succ"): 1,
		names.Mangle("Zero"): 2,
	}}
	block, err := applycg.BuildApply(global, group)
	require.NoError(t, err)

	root := cfg.Build(block)

	seen := map[graph.Label]bool{}
	graph.Walk(root, func(b *graph.BasicBlock[apply.Instruction, apply.Term]) {
		assert.False(t, seen[b.Label], "label %s reused within one CFG", b.Label)
		seen[b.Label] = true
	})
	assert.NotEmpty(t, seen)
}

func TestBuildReturnOnlyBlockHasNoDeclaredSuccessors(t *testing.T) {
	leaf := apply.Block{Instructions: []apply.Instruction{
		apply.Return(apply.True()),
	}}

	root := cfg.Build(leaf)
	assert.Equal(t, graph.Return, root.Terminator.Kind)
	assert.Empty(t, root.Declared)
}
