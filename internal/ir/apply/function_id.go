package apply

// FunctionId identifies a constructor or function by its wire id. Name is
// carried only for debugging/pretty-printing; equality and lookups always
// go through ID.
type FunctionId struct {
	Name string
	ID   NameId
}

// NewFunctionId builds a FunctionId with a debug name attached.
func NewFunctionId(name string, id NameId) FunctionId {
	return FunctionId{Name: name, ID: id}
}
