package apply

import (
	"fmt"

	apply "ruleforge/internal/ir/apply"
)

// Argument is a strict parameter slot as seen during guard construction
// and RHS building: the loaded value, plus any constructor sub-fields
// that have already been loaded out of it. Field loads are memoized here
// so that a rule referencing the same constructor field twice emits a
// single LoadArgument instruction (spec.md's argument/field memoization
// rule), rather than one per reference.
type Argument struct {
	value  apply.Term
	fields []apply.Term
}

func NewArgument(value apply.Term) *Argument {
	return &Argument{value: value}
}

func (a *Argument) Value() apply.Term { return a.value }

func (a *Argument) Field(i int) apply.Term {
	if i < 0 || i >= len(a.fields) {
		panic(fmt.Sprintf("apply codegen: field %d not loaded", i))
	}
	return a.fields[i]
}

func (a *Argument) HasField(i int) bool {
	return i < len(a.fields)
}

func (a *Argument) AddField(term apply.Term) {
	a.fields = append(a.fields, term)
}

func (c *Codegen) getArgument(i int) *Argument {
	if i < 0 || i >= len(c.arguments) {
		panic(fmt.Sprintf("apply codegen: argument %d not found", i))
	}
	return c.arguments[i]
}
