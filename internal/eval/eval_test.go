package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruleforge/internal/eval"
	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/graph"
	"ruleforge/internal/runtimeshim"
)

func newContext() *eval.Context {
	heap := runtimeshim.NewFakeHeap(0)
	return eval.NewContext(heap, map[string]uint64{})
}

func TestEvalTermLiteralsAndLogic(t *testing.T) {
	ctx := newContext()
	assert.Equal(t, uint64(0), eval.EvalTerm(apply.Current(), ctx).AsU64())
	assert.True(t, eval.EvalTerm(apply.True(), ctx).AsBool())
	assert.False(t, eval.EvalTerm(apply.False(), ctx).AsBool())

	and := apply.LogicalAnd(apply.True(), apply.False())
	assert.False(t, eval.EvalTerm(and, ctx).AsBool())

	or := apply.LogicalOr(apply.False(), apply.True())
	assert.True(t, eval.EvalTerm(or, ctx).AsBool())
}

func TestEvalInstructionBindThenRef(t *testing.T) {
	ctx := newContext()
	control := eval.EvalInstruction(apply.Bind("x", apply.CreateU60(5)), ctx)
	assert.False(t, control.Break)

	value := eval.EvalTerm(apply.Ref("x"), ctx)
	assert.Equal(t, ctx.Runtime.GetNumber(value.AsU64()), uint64(5))
}

func TestEvalBlockFollowsIfBranchAndReturns(t *testing.T) {
	ctx := newContext()
	then := apply.Block{Instructions: []apply.Instruction{apply.Return(apply.True())}}
	block := apply.Block{Instructions: []apply.Instruction{
		apply.If(apply.True(), then, nil),
		apply.Return(apply.False()),
	}}

	value, ok := eval.EvalBlock(block, ctx)
	require.True(t, ok)
	assert.True(t, value.AsBool())
}

func TestEvalBlockFallsThroughWhenIfConditionFalseAndNoElse(t *testing.T) {
	ctx := newContext()
	then := apply.Block{Instructions: []apply.Instruction{apply.Return(apply.True())}}
	block := apply.Block{Instructions: []apply.Instruction{
		apply.If(apply.False(), then, nil),
		apply.Return(apply.False()),
	}}

	value, ok := eval.EvalBlock(block, ctx)
	require.True(t, ok)
	assert.False(t, value.AsBool())
}

func TestEvalGraphFollowsCondTerminator(t *testing.T) {
	ctx := newContext()

	thenBlock := graph.New[apply.Instruction, apply.Term]("then")
	thenBlock.WithReturn(apply.True())
	elseBlock := graph.New[apply.Instruction, apply.Term]("else")
	elseBlock.WithReturn(apply.False())

	root := graph.New[apply.Instruction, apply.Term]("entry")
	root.WithCond(apply.True(), thenBlock, elseBlock)

	result := eval.EvalGraph(root, ctx)
	assert.True(t, result.AsBool())
}

func TestAsU64PanicsOnWrongKind(t *testing.T) {
	assert.Panics(t, func() {
		eval.Bool(true).AsU64()
	})
}
