package precomp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ruleforge/internal/ir/graph"
	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/precomp"
)

func TestInstallAndLookupRoundTrip(t *testing.T) {
	r := precomp.NewRegistry()
	block := graph.New[apply.Instruction, apply.Term]("entry")
	block.WithReturn(apply.False())

	r.Install(precomp.FirstUserID, precomp.Entry{Name: "Add", Apply: block})
	assert.Equal(t, 1, r.Len())

	entry, ok := r.Lookup(precomp.FirstUserID)
	assert.True(t, ok)
	assert.Equal(t, "Add", entry.Name)
}

func TestLookupMissingIDReturnsFalse(t *testing.T) {
	r := precomp.NewRegistry()
	_, ok := r.Lookup(999)
	assert.False(t, ok)
}

func TestInstallPanicsOnReservedBuiltinID(t *testing.T) {
	r := precomp.NewRegistry()
	assert.Panics(t, func() {
		r.Install(0, precomp.Entry{Name: "Dup"})
	})
}

func TestInstallPanicsOnDuplicateID(t *testing.T) {
	r := precomp.NewRegistry()
	r.Install(precomp.FirstUserID, precomp.Entry{Name: "First"})
	assert.Panics(t, func() {
		r.Install(precomp.FirstUserID, precomp.Entry{Name: "Second"})
	})
}
