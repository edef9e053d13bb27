package apply_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applycg "ruleforge/internal/codegen/apply"
	"ruleforge/internal/diag"
	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/syntax"
	"ruleforge/internal/lower"
	"ruleforge/internal/names"
	"ruleforge/internal/surface"
)

func addRuleBook() *surface.RuleBook {
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
	return book
}

func lowerAddGroup(t *testing.T) syntax.RuleGroup {
	t.Helper()
	groups, err := lower.New(addRuleBook()).Lower()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	return groups[0]
}

func TestBuildApplySuccessorGroup(t *testing.T) {
	group := lowerAddGroup(t)
	global := &applycg.GlobalContext{Constructors: map[string]uint64{
		names.Mangle("Add"):  0,
		names.Mangle("Succ"): 1,
		names.Mangle("Zero"): 2,
	}}

	block, err := applycg.BuildApply(global, group)
	require.NoError(t, err)
	require.NotEmpty(t, block.Instructions)

	last := block.Instructions[len(block.Instructions)-1]
	assert.Equal(t, apply.IReturn, last.Kind)
	assert.False(t, last.Term.IsTrue())
	assert.Equal(t, apply.KFalse, last.Term.Kind)

	// Two rules -> two guarded If branches (Succ has a constructor guard
	// so it is wrapped in an If; both rules in this book have a
	// constructor guard).
	ifCount := 0
	for _, inst := range block.Instructions {
		if inst.Kind == apply.IIf {
			ifCount++
		}
	}
	assert.Equal(t, 2, ifCount)
}

func TestBuildApplyRejectsEmptyRuleGroup(t *testing.T) {
	global := &applycg.GlobalContext{Constructors: map[string]uint64{}}
	_, err := applycg.BuildApply(global, syntax.RuleGroup{Name: "Empty"})
	assert.Error(t, err)
}

func TestBuildApplyRejectsDuplicateCodegen(t *testing.T) {
	group := syntax.RuleGroup{
		Name:             "Dup",
		StrictParameters: []bool{false},
		Rules: []syntax.Rule{{
			Name:       "Dup",
			Parameters: []syntax.Parameter{{Kind: syntax.PAtom, Name: "x"}},
			Value:      syntax.DuplicateTerm("x", "y", syntax.U60(0), syntax.U60(0)),
		}},
	}

	global := &applycg.GlobalContext{Constructors: map[string]uint64{}}
	_, err := applycg.BuildApply(global, group)
	require.Error(t, err)
	assert.ErrorIs(t, err, diag.ErrUnsupported)
}

func TestBuildApplyRejectsSuperCodegen(t *testing.T) {
	group := syntax.RuleGroup{
		Name:             "Sup",
		StrictParameters: []bool{false},
		Rules: []syntax.Rule{{
			Name:       "Sup",
			Parameters: []syntax.Parameter{{Kind: syntax.PAtom, Name: "x"}},
			Value:      syntax.SuperTerm(syntax.U60(0), syntax.U60(0)),
		}},
	}

	global := &applycg.GlobalContext{Constructors: map[string]uint64{}}
	_, err := applycg.BuildApply(global, group)
	require.Error(t, err)
	assert.ErrorIs(t, err, diag.ErrUnsupported)
}
