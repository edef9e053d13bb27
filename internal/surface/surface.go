// Package surface holds the parsed rule book exactly as received: rule
// groups, rules with LHS patterns and RHS terms referring to variables by
// name, and the name tables lowering needs to resolve them (spec.md §2
// "Surface model", §4.1 "Inputs").
package surface

import "ruleforge/internal/ir/syntax"

// Parameter and its Constructor/Pattern payload are shared, unchanged,
// between the surface and the lowered IR grammars: lowering does not
// transform a rule's LHS shape, only the variable stack it builds while
// walking it. See internal/ir/syntax for the shared definitions.
type Parameter = syntax.Parameter
type Constructor = syntax.Constructor
type Pattern = syntax.Pattern

const (
	PErased      = syntax.PErased
	PAtom        = syntax.PAtom
	PU60         = syntax.PU60
	PF60         = syntax.PF60
	PConstructor = syntax.PConstructor
)

// TermKind discriminates the surface Term grammar — the RHS as received
// from the rule book, before lowering resolves variable names to De
// Bruijn-like indices.
type TermKind int

const (
	KU60 TermKind = iota
	KF60
	KVar
	KLet
	KDup
	KLam
	KSuper
	KBinary
	KApp
)

// Term is a surface (pre-lowering) RHS expression: every variable
// reference is a bare name, resolved against the lexical stack during
// lowering.
type Term struct {
	Kind TermKind

	U60 uint64
	F60 float64
	Var string // KVar

	LetName  string // KLet
	LetValue *Term  // KLet
	LetBody  *Term  // KLet

	DupFrom  string // KDup
	DupTo    string // KDup
	DupValue *Term  // KDup
	DupBody  *Term  // KDup

	LamParameter string // KLam
	LamValue     *Term  // KLam

	SuperFirst  *Term // KSuper
	SuperSecond *Term // KSuper

	BinaryLhs *Term      // KBinary
	BinaryOp  syntax.Op  // KBinary
	BinaryRhs *Term      // KBinary

	// KApp: an application of Callee to Arguments. The callee is itself a
	// Term so that partial applications and higher-order callees parse
	// uniformly; lowering classifies Callee against the name table to
	// decide is_function/global_name.
	Callee    *Term
	Arguments []Term
}

func U60(n uint64) Term  { return Term{Kind: KU60, U60: n} }
func F60(x float64) Term { return Term{Kind: KF60, F60: x} }
func Var(name string) Term { return Term{Kind: KVar, Var: name} }

func Let(name string, value, body Term) Term {
	return Term{Kind: KLet, LetName: name, LetValue: &value, LetBody: &body}
}

func Dup(from, to string, value, body Term) Term {
	return Term{Kind: KDup, DupFrom: from, DupTo: to, DupValue: &value, DupBody: &body}
}

func Lam(parameter string, value Term) Term {
	return Term{Kind: KLam, LamParameter: parameter, LamValue: &value}
}

func Super(first, second Term) Term {
	return Term{Kind: KSuper, SuperFirst: &first, SuperSecond: &second}
}

func Binary(lhs Term, op syntax.Op, rhs Term) Term {
	return Term{Kind: KBinary, BinaryLhs: &lhs, BinaryOp: op, BinaryRhs: &rhs}
}

func App(callee Term, arguments []Term) Term {
	return Term{Kind: KApp, Callee: &callee, Arguments: arguments}
}

// Rule is one clause of a surface RuleGroup: a name (must match the
// group's), an ordered LHS parameter list, and a raw RHS term.
type Rule struct {
	Name       string
	Parameters []Parameter
	Value      Term
}

// RuleGroup is a surface rule group exactly as parsed: a name, the
// strictness vector for its parameter positions, and its rules in source
// order.
type RuleGroup struct {
	Name             string
	StrictParameters []bool
	Rules            []Rule
}

// RuleBook is the full parsed program: every rule group, plus the name
// tables lowering consumes (spec.md §4.1 "Inputs").
type RuleBook struct {
	Groups []RuleGroup

	// NameToID and IDToName together form the constructor/function name
	// table; every name appearing as a rule group's name, or as an App's
	// resolved callee, must appear here.
	NameToID map[string]uint64
	IDToName map[uint64]string

	// CtrIsFun records which names are both constructors and functions —
	// lowering consults this to classify an App's global_name/is_function
	// (spec.md §4.1 step 4).
	CtrIsFun map[string]bool
}

// NewRuleBook returns an empty RuleBook with initialized tables.
func NewRuleBook() *RuleBook {
	return &RuleBook{
		NameToID: make(map[string]uint64),
		IDToName: make(map[uint64]string),
		CtrIsFun: make(map[string]bool),
	}
}

// Define registers a constructor/function name under the given id. It is
// the caller's responsibility to keep ids dense and to mark ctr_is_fun
// entries via MarkFunction.
func (rb *RuleBook) Define(name string, id uint64) {
	rb.NameToID[name] = id
	rb.IDToName[id] = name
}

// MarkFunction records that `name` is a known function (as opposed to a
// pure constructor with no rules).
func (rb *RuleBook) MarkFunction(name string) {
	rb.CtrIsFun[name] = true
}

// GroupFor looks up a rule group by name, if any.
func (rb *RuleBook) GroupFor(name string) (RuleGroup, bool) {
	for _, g := range rb.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return RuleGroup{}, false
}
