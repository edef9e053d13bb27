package apply

import "fmt"

// ValueKind discriminates the "create" family — the set of heap values a
// Term can instantiate.
type ValueKind int

const (
	ValErased ValueKind = iota
	ValAtom
	ValLam
	ValApp
	ValU60
	ValF60
	ValBinary
	ValFunction
	ValConstructor
	ValDp0
	ValDp1
	ValSuper
	ValArgument
)

// BinaryOperation pairs a runtime Op with its (already built) operand terms.
type BinaryOperation struct {
	Lhs *Term
	Op  Op
	Rhs *Term
}

// Value is the "create" family: the argument to Term.Create, describing
// which heap node to allocate and link.
type Value struct {
	Kind ValueKind

	Position Position  // Atom, Lam, App, Binary, Function, Constructor, Dp0, Dp1, Super, Argument
	Color    uint64     // Dp0, Dp1, Super
	U60      uint64     // U60
	F60      float64    // F60
	Binary   BinaryOperation // Binary
	Function FunctionId // Function, Constructor
}

func ErasedValue() Value                             { return Value{Kind: ValErased} }
func AtomValue(pos Position) Value                   { return Value{Kind: ValAtom, Position: pos} }
func LamValue(pos Position) Value                    { return Value{Kind: ValLam, Position: pos} }
func AppValue(pos Position) Value                    { return Value{Kind: ValApp, Position: pos} }
func U60Value(n uint64) Value                        { return Value{Kind: ValU60, U60: n} }
func F60Value(x float64) Value                       { return Value{Kind: ValF60, F60: x} }
func ArgumentValue(pos Position) Value               { return Value{Kind: ValArgument, Position: pos} }
func Dp0Value(color uint64, pos Position) Value      { return Value{Kind: ValDp0, Color: color, Position: pos} }
func Dp1Value(color uint64, pos Position) Value      { return Value{Kind: ValDp1, Color: color, Position: pos} }
func SuperValue(color uint64, pos Position) Value    { return Value{Kind: ValSuper, Color: color, Position: pos} }
func FunctionValue(fn FunctionId, pos Position) Value {
	return Value{Kind: ValFunction, Function: fn, Position: pos}
}
func ConstructorValue(fn FunctionId, pos Position) Value {
	return Value{Kind: ValConstructor, Function: fn, Position: pos}
}
func BinaryValue(lhs Term, op Op, rhs Term, pos Position) Value {
	return Value{Kind: ValBinary, Binary: BinaryOperation{Lhs: &lhs, Op: op, Rhs: &rhs}, Position: pos}
}

func (v Value) String() string {
	switch v.Kind {
	case ValErased:
		return "Erased"
	case ValAtom:
		return fmt.Sprintf("Atom(%s)", v.Position)
	case ValLam:
		return fmt.Sprintf("Lam(%s)", v.Position)
	case ValApp:
		return fmt.Sprintf("App(%s)", v.Position)
	case ValU60:
		return fmt.Sprintf("U60(%d)", v.U60)
	case ValF60:
		return fmt.Sprintf("F60(%v)", v.F60)
	case ValBinary:
		return fmt.Sprintf("Binary(%s, %s)", v.Binary.Op, v.Position)
	case ValFunction:
		return fmt.Sprintf("Function(%s, %s)", v.Function.Name, v.Position)
	case ValConstructor:
		return fmt.Sprintf("Constructor(%s, %s)", v.Function.Name, v.Position)
	case ValDp0:
		return fmt.Sprintf("Dp0(%d, %s)", v.Color, v.Position)
	case ValDp1:
		return fmt.Sprintf("Dp1(%d, %s)", v.Color, v.Position)
	case ValSuper:
		return fmt.Sprintf("Super(%d, %s)", v.Color, v.Position)
	case ValArgument:
		return fmt.Sprintf("Argument(%s)", v.Position)
	default:
		return "?"
	}
}

// Tag returns the heap tag a value of this kind would carry once created.
func (k ValueKind) Tag() Tag {
	switch k {
	case ValErased:
		return Erased
	case ValAtom:
		return AtomTag
	case ValLam:
		return Lam
	case ValApp:
		return App
	case ValU60:
		return U60
	case ValF60:
		return F60
	case ValBinary:
		return Binary
	case ValFunction:
		return Function
	case ValConstructor:
		return Constructor
	case ValDp0:
		return Dup0
	case ValDp1:
		return Dup1
	case ValSuper:
		return Super
	case ValArgument:
		return Argument
	default:
		panic("apply: unknown value kind")
	}
}
