package visit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	visitcg "ruleforge/internal/codegen/visit"
	"ruleforge/internal/ir/graph"
	"ruleforge/internal/ir/syntax"
	visit "ruleforge/internal/ir/visit"
)

func TestBuildVisitNoStrictParametersReturnsFalseFastPath(t *testing.T) {
	group := syntax.RuleGroup{Name: "Const", StrictParameters: []bool{false, false}}

	entry := visitcg.BuildVisit(group)
	assert.Equal(t, graph.Return, entry.Terminator.Kind)
	assert.Equal(t, visit.TFalse, entry.Terminator.Value.Kind)
	assert.Empty(t, entry.Instructions)
}

func TestBuildVisitWithStrictParametersBranchesToGoup(t *testing.T) {
	group := syntax.RuleGroup{Name: "Add", StrictParameters: []bool{true, false}}

	entry := visitcg.BuildVisit(group)
	require.Equal(t, graph.Cond, entry.Terminator.Kind)
	assert.Equal(t, visit.TCheckVLen, entry.Terminator.Cond.Kind)

	goup, ok := entry.Lookup(entry.Terminator.Then)
	require.True(t, ok)
	assert.Equal(t, graph.Return, goup.Terminator.Kind)
	assert.Equal(t, visit.TTrue, goup.Terminator.Value.Kind)

	visitCount := 0
	for _, inst := range goup.Instructions {
		if inst.Kind == visit.IVisit {
			visitCount++
			assert.Equal(t, visit.ArgumentIndex(0), inst.Index)
		}
	}
	assert.Equal(t, 1, visitCount, "only the strict parameter at index 0 should be visited")

	otherwise, ok := entry.Lookup(entry.Terminator.Else)
	require.True(t, ok)
	assert.Equal(t, graph.Return, otherwise.Terminator.Kind)
	assert.Equal(t, visit.TFalse, otherwise.Terminator.Value.Kind)
}

func TestBuildVisitLabelsDoNotCollideAcrossCalls(t *testing.T) {
	first := visitcg.BuildVisit(syntax.RuleGroup{StrictParameters: []bool{true}})
	second := visitcg.BuildVisit(syntax.RuleGroup{StrictParameters: []bool{true}})
	assert.NotEqual(t, first.Label, second.Label)
}
