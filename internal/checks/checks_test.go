package checks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ruleforge/internal/checks"
	apply "ruleforge/internal/ir/apply"
)

func TestCheckBindBeforeUseFindsUnboundRef(t *testing.T) {
	block := apply.Block{Instructions: []apply.Instruction{
		apply.Return(apply.Ref("ghost")),
	}}

	findings := checks.CheckBindBeforeUse(block, nil)
	if assert.Len(t, findings, 1) {
		assert.Equal(t, "bind-before-use", findings[0].Checker)
		assert.Contains(t, findings[0].Message, "ghost")
	}
}

func TestCheckBindBeforeUseAcceptsPriorBind(t *testing.T) {
	block := apply.Block{Instructions: []apply.Instruction{
		apply.Bind("x", apply.CreateU60(1)),
		apply.Return(apply.Ref("x")),
	}}

	assert.Empty(t, checks.CheckBindBeforeUse(block, nil))
}

func TestCheckBindBeforeUseIsolatesIfBranchScope(t *testing.T) {
	then := apply.Block{Instructions: []apply.Instruction{
		apply.Bind("y", apply.CreateU60(2)),
		apply.Return(apply.Ref("y")),
	}}
	block := apply.Block{Instructions: []apply.Instruction{
		apply.If(apply.True(), then, nil),
		apply.Return(apply.Ref("y")),
	}}

	findings := checks.CheckBindBeforeUse(block, nil)
	if assert.Len(t, findings, 1) {
		assert.Contains(t, findings[0].Message, "y")
	}
}

func TestCheckFreeAfterUseFindsLoadArgumentAfterFree(t *testing.T) {
	arg0 := apply.Ref("arg0")
	block := apply.Block{Instructions: []apply.Instruction{
		apply.Free(apply.GetPosition(arg0, 0), 1),
		apply.Bind("x", apply.LoadArgument(arg0, 0)),
		apply.Return(apply.Ref("x")),
	}}

	findings := checks.CheckFreeAfterUse(block)
	if assert.Len(t, findings, 1) {
		assert.Equal(t, "free-after-use", findings[0].Checker)
		assert.Contains(t, findings[0].Message, "arg0")
	}
}

func TestCheckFreeAfterUseFindsLinkAfterFree(t *testing.T) {
	block := apply.Block{Instructions: []apply.Instruction{
		apply.Free(apply.GetPosition(apply.Current(), 0), 1),
		apply.Link(apply.HostPosition(), apply.CreateU60(1)),
		apply.Return(apply.True()),
	}}

	findings := checks.CheckFreeAfterUse(block)
	if assert.Len(t, findings, 1) {
		assert.Contains(t, findings[0].Message, "host")
	}
}

func TestCheckFreeAfterUseAcceptsCollectBeforeFree(t *testing.T) {
	arg0 := apply.Ref("arg0")
	block := apply.Block{Instructions: []apply.Instruction{
		apply.Collect(apply.LoadArgument(arg0, 0)),
		apply.Free(apply.GetPosition(arg0, 0), 1),
		apply.Free(apply.GetPosition(apply.Current(), 0), 1),
		apply.Return(apply.True()),
	}}

	assert.Empty(t, checks.CheckFreeAfterUse(block))
}

func TestCheckFreeAfterUseCarriesFreedCellsIntoIfBranch(t *testing.T) {
	arg0 := apply.Ref("arg0")
	then := apply.Block{Instructions: []apply.Instruction{
		apply.Bind("x", apply.LoadArgument(arg0, 0)),
		apply.Return(apply.Ref("x")),
	}}
	block := apply.Block{Instructions: []apply.Instruction{
		apply.Free(apply.GetPosition(arg0, 0), 1),
		apply.If(apply.True(), then, nil),
		apply.Return(apply.True()),
	}}

	findings := checks.CheckFreeAfterUse(block)
	if assert.Len(t, findings, 1) {
		assert.Contains(t, findings[0].Message, "arg0")
	}
}

func TestCheckTagSizeTableReportsNoDuplicateIDs(t *testing.T) {
	findings := checks.CheckTagSizeTable()
	assert.Empty(t, findings)
}

func TestCheckGuardTotalityRequiresTrailingReturn(t *testing.T) {
	assert.NotEmpty(t, checks.CheckGuardTotality(apply.Block{}))

	block := apply.Block{Instructions: []apply.Instruction{apply.IncrementCost()}}
	assert.NotEmpty(t, checks.CheckGuardTotality(block))

	block = apply.Block{Instructions: []apply.Instruction{apply.Return(apply.False())}}
	assert.Empty(t, checks.CheckGuardTotality(block))
}

func TestSortedFindingsOrdersByCheckerThenMessage(t *testing.T) {
	findings := []checks.Finding{
		{Checker: "z-checker", Message: "b"},
		{Checker: "a-checker", Message: "b"},
		{Checker: "a-checker", Message: "a"},
	}
	sorted := checks.SortedFindings(findings)
	assert.Equal(t, "a-checker", sorted[0].Checker)
	assert.Equal(t, "a", sorted[0].Message)
	assert.Equal(t, "a-checker", sorted[1].Checker)
	assert.Equal(t, "b", sorted[1].Message)
	assert.Equal(t, "z-checker", sorted[2].Checker)
}
