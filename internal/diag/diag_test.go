package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruleforge/internal/diag"
)

func TestNewWrapsCauseWithStack(t *testing.T) {
	err := diag.New(diag.CodeUnboundVariable, "variable \"x\" is not bound", diag.Position{Line: 2, Column: 5}, diag.ErrUnboundVariable)

	require.Error(t, err)
	assert.Equal(t, diag.CodeUnboundVariable, err.Code)
	assert.ErrorIs(t, err, diag.ErrUnboundVariable)
	assert.Contains(t, err.Error(), "L0003")
}

func TestWithNoteAndHelpChain(t *testing.T) {
	err := diag.New(diag.CodeArityMismatch, "wrong arity", diag.Position{}, nil).
		WithNote("expected 2 arguments").
		WithHelp("check the constructor declaration")

	assert.Equal(t, []string{"expected 2 arguments"}, err.Notes)
	assert.Equal(t, "check the constructor declaration", err.HelpText)
}

func TestReporterFormatIncludesLocationAndCaret(t *testing.T) {
	source := "Add(Succ(x), y) = Succ(nope)\n"
	reporter := diag.NewReporter("test.rdx", source)

	err := diag.New(diag.CodeUnboundVariable, "variable \"nope\" is not bound", diag.Position{Line: 1, Column: 24}, diag.ErrUnboundVariable)
	out := reporter.Format(err)

	assert.Contains(t, out, "test.rdx:1:24")
	assert.Contains(t, out, "Add(Succ(x)")
	assert.Contains(t, out, "^")
}

func TestReporterFormatSkipsSourceContextOutOfRange(t *testing.T) {
	reporter := diag.NewReporter("test.rdx", "one line\n")
	err := diag.New(diag.CodeInvalidPattern, "bad", diag.Position{Line: 99, Column: 1}, nil)

	out := reporter.Format(err)
	assert.Contains(t, out, "test.rdx:99:1")
}
