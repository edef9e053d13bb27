// Package syntax is the typed IR term grammar produced by lowering
// (spec.md §3, "Term (IR syntax)"): a closed term language with explicit
// De Bruijn-like variable indices, used as the input to the apply and
// visit builders.
package syntax

import "fmt"

// Kind discriminates the IR syntax Term variants.
type Kind int

const (
	KU60 Kind = iota
	KF60
	KLet
	KApp
	KAtom
	KLam
	KDuplicate
	KSuper
	KBinary
)

// Op is a binary operator, shared with the apply IR's wire encoding via
// apply.Op — kept as a simple string-backed type here so this package has
// no dependency on internal/ir/apply (lowering builds the syntax IR before
// any apply-specific concern exists).
type Op string

const (
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpDiv Op = "/"
	OpMod Op = "%"
	OpAnd Op = "&"
	OpOr  Op = "|"
	OpXor Op = "^"
	OpShl Op = "<<"
	OpShr Op = ">>"
	OpLtn Op = "<"
	OpLte Op = "<="
	OpEql Op = "=="
	OpGte Op = ">="
	OpGtn Op = ">"
	OpNeq Op = "!="
)

// Atom references a lexically bound variable: its source name, its De
// Bruijn-like depth in the lowering-time variable stack (Index), and,
// when the name came from a flattened constructor sub-pattern, the slot
// it refers to within that pattern (FieldIndex).
type Atom struct {
	Name       string
	Index      uint64
	FieldIndex *uint64
}

func (a Atom) String() string {
	if a.FieldIndex != nil {
		return fmt.Sprintf("%s[%d]_%d", a.Name, a.Index, *a.FieldIndex)
	}
	return fmt.Sprintf("%s[%d]", a.Name, a.Index)
}

// Let binds value's result to name within body.
type Let struct {
	Name  string
	Value *Term
	Body  *Term
}

// App is an application. GlobalName is set when the callee resolved to a
// known constructor or function at lowering time; IsFunction then
// distinguishes which. When GlobalName is nil the callee is itself an
// arbitrary term (a bound variable, typically).
type App struct {
	IsFunction bool
	GlobalName *string
	Callee     *Term
	Arguments  []Term
}

// Lam is a lambda. GlobalID is 0 for an ordinary (non-shared) lambda and
// non-zero when multiple RHS occurrences must share one allocated cell
// (see apply codegen's lambda table).
type Lam struct {
	Erased    bool
	GlobalID  uint64
	Parameter string
	Value     *Term
}

// Duplicate destructures a superposed value into two bindings. Codegen for
// this node is reserved (spec.md §4.2/§4.3, "TODO: superpose").
type Duplicate struct {
	From  string
	To    string
	Value *Term
	Body  *Term
}

// Super builds a superposition of two terms. Codegen is reserved, as with
// Duplicate.
type Super struct {
	First  *Term
	Second *Term
}

// Binary applies a binary operator to two terms.
type Binary struct {
	Lhs *Term
	Op  Op
	Rhs *Term
}

// Term is the closed IR syntax grammar (spec.md §3).
type Term struct {
	Kind Kind

	U60 uint64  // KU60
	F60 float64 // KF60

	Let       Let       // KLet
	App       App       // KApp
	Atom      Atom      // KAtom
	Lam       Lam       // KLam
	Duplicate Duplicate // KDuplicate
	Super     Super     // KSuper
	Binary    Binary    // KBinary
}

func U60(n uint64) Term  { return Term{Kind: KU60, U60: n} }
func F60(x float64) Term { return Term{Kind: KF60, F60: x} }

func AtomTerm(name string, index uint64, fieldIndex *uint64) Term {
	return Term{Kind: KAtom, Atom: Atom{Name: name, Index: index, FieldIndex: fieldIndex}}
}

func LetTerm(name string, value, body Term) Term {
	return Term{Kind: KLet, Let: Let{Name: name, Value: &value, Body: &body}}
}

func AppTerm(isFunction bool, globalName *string, callee Term, arguments []Term) Term {
	return Term{Kind: KApp, App: App{IsFunction: isFunction, GlobalName: globalName, Callee: &callee, Arguments: arguments}}
}

func LamTerm(erased bool, globalID uint64, parameter string, value Term) Term {
	return Term{Kind: KLam, Lam: Lam{Erased: erased, GlobalID: globalID, Parameter: parameter, Value: &value}}
}

func DuplicateTerm(from, to string, value, body Term) Term {
	return Term{Kind: KDuplicate, Duplicate: Duplicate{From: from, To: to, Value: &value, Body: &body}}
}

func SuperTerm(first, second Term) Term {
	return Term{Kind: KSuper, Super: Super{First: &first, Second: &second}}
}

func BinaryTerm(lhs Term, op Op, rhs Term) Term {
	return Term{Kind: KBinary, Binary: Binary{Lhs: &lhs, Op: op, Rhs: &rhs}}
}

func (t Term) String() string {
	switch t.Kind {
	case KU60:
		return fmt.Sprintf("%d", t.U60)
	case KF60:
		return fmt.Sprintf("%v", t.F60)
	case KLet:
		return fmt.Sprintf("let %s = %s; %s", t.Let.Name, t.Let.Value, t.Let.Body)
	case KApp:
		return fmt.Sprintf("app(%v)", t.App.Arguments)
	case KAtom:
		return t.Atom.String()
	case KLam:
		return fmt.Sprintf("λ%s.%s", t.Lam.Parameter, t.Lam.Value)
	case KDuplicate:
		return fmt.Sprintf("dup %s %s = %s; %s", t.Duplicate.From, t.Duplicate.To, t.Duplicate.Value, t.Duplicate.Body)
	case KSuper:
		return fmt.Sprintf("{%s %s}", t.Super.First, t.Super.Second)
	case KBinary:
		return fmt.Sprintf("(%s %s %s)", t.Binary.Lhs, t.Binary.Op, t.Binary.Rhs)
	default:
		return "?"
	}
}

// --- Surface-facing pattern/parameter grammar shared by lowering ---

// Pattern is one inner slot of a flattened constructor pattern: either a
// bound variable name or an erased placeholder.
type Pattern struct {
	Erased bool
	Name   string // meaningful when !Erased
}

// Constructor is a parameter matching a constructor application whose
// arguments are, per spec.md §3, pre-flattened to exactly one level —
// each inner pattern is a variable or erased, never a nested constructor.
type Constructor struct {
	Name            string
	Arity           uint64
	FlattenPatterns []Pattern
}

// ParameterKind discriminates the Parameter variants.
type ParameterKind int

const (
	PErased ParameterKind = iota
	PAtom
	PU60
	PF60
	PConstructor
)

// Parameter is one LHS pattern slot of a rule.
type Parameter struct {
	Kind ParameterKind

	Name        string      // PAtom
	U60         uint64      // PU60
	F60         float64     // PF60
	Constructor Constructor // PConstructor
}

// Rule is one clause of a RuleGroup: an ordered parameter list (the LHS)
// and an RHS term.
type Rule struct {
	Name       string
	Parameters []Parameter
	Value      Term
}

// RuleGroup is the IR form of a surface rule group: a name, how many
// parameters are strict, the full strictness vector, and its
// rules in source order.
type RuleGroup struct {
	Name                string
	StrictIndex         uint64
	StrictParameters    []bool
	Rules               []Rule
}
