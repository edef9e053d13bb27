// Package precomp is the registry of precompiled rule groups: compiled
// apply/visit code the runtime can call directly instead of falling back
// to the interpreter, keyed by constructor/function wire id (spec.md
// §6). Built-in ids below 30 are reserved for the runtime's own
// primitives and are never registered here.
package precomp

import (
	"fmt"

	"github.com/sasha-s/go-deadlock"

	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/graph"
	visit "ruleforge/internal/ir/visit"
)

// FirstUserID is the lowest wire id this registry will accept — ids
// below it are reserved for runtime built-ins (Dup, Sup, and friends).
const FirstUserID = 30

// Entry is one rule group's compiled pair: its apply CFG and its visit
// block.
type Entry struct {
	Name  string
	Apply *graph.BasicBlock[apply.Instruction, apply.Term]
	Visit *graph.BasicBlock[visit.Instruction, visit.Term]
}

// Registry maps a function/constructor wire id to its precompiled
// Entry. Installation happens once at program startup from many
// goroutines compiling different rule groups concurrently, so writes
// are guarded by a deadlock-detecting mutex — a development aid that
// turns a would-be hang into an immediate, diagnosable panic.
type Registry struct {
	mu      deadlock.Mutex
	entries map[uint64]Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[uint64]Entry)}
}

// Install registers a compiled rule group under its wire id. It is a
// programmer error to install a built-in id or to install the same id
// twice; both panic rather than silently overwrite.
func (r *Registry) Install(id uint64, entry Entry) {
	if id < FirstUserID {
		panic(fmt.Sprintf("precomp: refusing to install over reserved built-in id %d", id))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		panic(fmt.Sprintf("precomp: id %d already registered", id))
	}
	r.entries[id] = entry
}

// Lookup returns the compiled entry for id, if any.
func (r *Registry) Lookup(id uint64) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	return e, ok
}

// Len reports how many rule groups are currently registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
