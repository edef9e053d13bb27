package apply

import "fmt"

// Variable names one LHS binding site introduced by a rule's parameters:
// either a top-level parameter (FieldIndex nil) or a flattened constructor
// sub-field (FieldIndex set). Erased marks whether the binding is `*` (or a
// `*` sub-pattern), in which case the apply builder must emit a Collect for
// it before freeing the cell that held it.
type Variable struct {
	Erased     bool
	Index      uint64
	FieldIndex *uint64
}

// Name returns the builder-facing reference name: "arg{index}" or
// "arg{index}_{field}".
func (v Variable) Name() string {
	if v.FieldIndex != nil {
		return fmt.Sprintf("arg%d_%d", v.Index, *v.FieldIndex)
	}
	return fmt.Sprintf("arg%d", v.Index)
}

// AsTerm returns a Ref to this variable's bound name.
func (v Variable) AsTerm() Term {
	return Ref(v.Name())
}
