// Package lower turns a parsed rule book (package surface) into the
// closed IR syntax grammar (package syntax) that the apply and visit
// builders consume: every surface.Term variable reference is resolved
// against a lexical stack and rewritten into a syntax.Atom carrying its
// De Bruijn-like depth, and every surface App's callee is classified
// against the rule book's name tables into a function call, a
// constructor application, or an ordinary (higher-order) application.
package lower

import (
	"fmt"

	"ruleforge/internal/diag"
	"ruleforge/internal/ir/syntax"
	"ruleforge/internal/surface"
)

// scope is the lexical stack of bound names built while walking a rule's
// parameters, Lets and Lams — in exactly the order the apply builder will
// later push onto its own runtime `variables` stack, so that the index
// recorded here addresses the same slot codegen will have pushed.
type scope struct {
	names []string
}

func (s *scope) push(name string) { s.names = append(s.names, name) }
func (s *scope) pop()             { s.names = s.names[:len(s.names)-1] }

func (s *scope) resolve(name string) (uint64, bool) {
	for i := len(s.names) - 1; i >= 0; i-- {
		if s.names[i] == name {
			return uint64(i), true
		}
	}
	return 0, false
}

// Lowerer carries the rule book's name tables and a lambda-sharing
// counter across every group it lowers, so a lambda appearing verbatim
// in two rules of the same program still gets distinct global ids only
// when it is actually a distinct syntactic lambda.
type Lowerer struct {
	book        *surface.RuleBook
	nextLambdaID uint64
}

func New(book *surface.RuleBook) *Lowerer {
	return &Lowerer{book: book, nextLambdaID: 1}
}

// Lower lowers every rule group in the book, in source order.
func (l *Lowerer) Lower() ([]syntax.RuleGroup, error) {
	groups := make([]syntax.RuleGroup, 0, len(l.book.Groups))
	for _, g := range l.book.Groups {
		lowered, err := l.lowerGroup(g)
		if err != nil {
			return nil, err
		}
		groups = append(groups, lowered)
	}
	return groups, nil
}

func (l *Lowerer) lowerGroup(g surface.RuleGroup) (syntax.RuleGroup, error) {
	if _, isFn := l.book.CtrIsFun[g.Name]; !isFn {
		if _, known := l.book.NameToID[g.Name]; !known {
			return syntax.RuleGroup{}, diag.New(diag.CodeNotConstructor,
				fmt.Sprintf("rule group %q has no entry in the name table", g.Name),
				diag.Position{}, diag.ErrNotConstructor)
		}
	}

	strictIndex := uint64(0)
	for _, strict := range g.StrictParameters {
		if strict {
			strictIndex++
		}
	}

	rules := make([]syntax.Rule, 0, len(g.Rules))
	for _, r := range g.Rules {
		lowered, err := l.lowerRule(r)
		if err != nil {
			return syntax.RuleGroup{}, err
		}
		rules = append(rules, lowered)
	}

	return syntax.RuleGroup{
		Name:             g.Name,
		StrictIndex:      strictIndex,
		StrictParameters: g.StrictParameters,
		Rules:            rules,
	}, nil
}

func (l *Lowerer) lowerRule(r surface.Rule) (syntax.Rule, error) {
	var sc scope

	for _, p := range r.Parameters {
		switch p.Kind {
		case syntax.PConstructor:
			for _, sub := range p.Constructor.FlattenPatterns {
				if sub.Erased {
					sc.push("*")
				} else {
					sc.push(sub.Name)
				}
			}
		case syntax.PErased:
			sc.push("*")
		case syntax.PU60, syntax.PF60:
			// numeric literal patterns bind no variable
		default:
			sc.push(p.Name)
		}
	}

	value, err := l.lowerTerm(r.Value, &sc)
	if err != nil {
		return syntax.Rule{}, err
	}

	return syntax.Rule{Name: r.Name, Parameters: r.Parameters, Value: value}, nil
}

func (l *Lowerer) lowerTerm(t surface.Term, sc *scope) (syntax.Term, error) {
	switch t.Kind {
	case surface.KU60:
		return syntax.U60(t.U60), nil
	case surface.KF60:
		return syntax.F60(t.F60), nil

	case surface.KVar:
		index, ok := sc.resolve(t.Var)
		if !ok {
			return syntax.Term{}, diag.New(diag.CodeUnboundVariable,
				fmt.Sprintf("variable %q is not bound in this rule", t.Var),
				diag.Position{}, diag.ErrUnboundVariable)
		}
		return syntax.AtomTerm(t.Var, index, nil), nil

	case surface.KLet:
		value, err := l.lowerTerm(*t.LetValue, sc)
		if err != nil {
			return syntax.Term{}, err
		}
		sc.push(t.LetName)
		body, err := l.lowerTerm(*t.LetBody, sc)
		sc.pop()
		if err != nil {
			return syntax.Term{}, err
		}
		return syntax.LetTerm(t.LetName, value, body), nil

	case surface.KDup:
		value, err := l.lowerTerm(*t.DupValue, sc)
		if err != nil {
			return syntax.Term{}, err
		}
		sc.push(t.DupFrom)
		sc.push(t.DupTo)
		body, err := l.lowerTerm(*t.DupBody, sc)
		sc.pop()
		sc.pop()
		if err != nil {
			return syntax.Term{}, err
		}
		return syntax.DuplicateTerm(t.DupFrom, t.DupTo, value, body), nil

	case surface.KLam:
		erased := !termUsesVar(*t.LamValue, t.LamParameter)
		globalID := uint64(0)
		if erased {
			globalID = l.nextLambdaID
			l.nextLambdaID++
		}
		sc.push(t.LamParameter)
		value, err := l.lowerTerm(*t.LamValue, sc)
		sc.pop()
		if err != nil {
			return syntax.Term{}, err
		}
		return syntax.LamTerm(erased, globalID, t.LamParameter, value), nil

	case surface.KSuper:
		first, err := l.lowerTerm(*t.SuperFirst, sc)
		if err != nil {
			return syntax.Term{}, err
		}
		second, err := l.lowerTerm(*t.SuperSecond, sc)
		if err != nil {
			return syntax.Term{}, err
		}
		return syntax.SuperTerm(first, second), nil

	case surface.KBinary:
		lhs, err := l.lowerTerm(*t.BinaryLhs, sc)
		if err != nil {
			return syntax.Term{}, err
		}
		rhs, err := l.lowerTerm(*t.BinaryRhs, sc)
		if err != nil {
			return syntax.Term{}, err
		}
		return syntax.BinaryTerm(lhs, t.BinaryOp, rhs), nil

	case surface.KApp:
		arguments := make([]syntax.Term, 0, len(t.Arguments))
		for _, a := range t.Arguments {
			lowered, err := l.lowerTerm(a, sc)
			if err != nil {
				return syntax.Term{}, err
			}
			arguments = append(arguments, lowered)
		}

		// A callee naming a known constructor or function is classified
		// by name alone; it is never itself lowered as a lexical
		// reference (doing so would wrongly demand "Succ"/"Zero" be a
		// bound variable). Only an arbitrary (higher-order) callee needs
		// its own lowered term.
		if t.Callee.Kind == surface.KVar {
			if _, known := l.book.NameToID[t.Callee.Var]; known {
				name := t.Callee.Var
				isFunction := l.book.CtrIsFun[name]
				placeholder := syntax.AtomTerm(name, 0, nil)
				return syntax.AppTerm(isFunction, &name, placeholder, arguments), nil
			}
		}

		callee, err := l.lowerTerm(*t.Callee, sc)
		if err != nil {
			return syntax.Term{}, err
		}
		return syntax.AppTerm(false, nil, callee, arguments), nil

	default:
		return syntax.Term{}, diag.New(diag.CodeInvalidPattern, "unrecognized term kind", diag.Position{}, diag.ErrInvalidPattern)
	}
}

// termUsesVar reports whether a lambda's bound name is referenced
// anywhere in its body, so lowering can mark an unused binding erased —
// mirroring the apply builder's own Link(Erased) emission for such
// lambdas (see the apply package's lambda-table caching).
func termUsesVar(t surface.Term, name string) bool {
	switch t.Kind {
	case surface.KVar:
		return t.Var == name
	case surface.KLet:
		return termUsesVar(*t.LetValue, name) || (t.LetName != name && termUsesVar(*t.LetBody, name))
	case surface.KDup:
		return termUsesVar(*t.DupValue, name) ||
			(t.DupFrom != name && t.DupTo != name && termUsesVar(*t.DupBody, name))
	case surface.KLam:
		return t.LamParameter != name && termUsesVar(*t.LamValue, name)
	case surface.KSuper:
		return termUsesVar(*t.SuperFirst, name) || termUsesVar(*t.SuperSecond, name)
	case surface.KBinary:
		return termUsesVar(*t.BinaryLhs, name) || termUsesVar(*t.BinaryRhs, name)
	case surface.KApp:
		if termUsesVar(*t.Callee, name) {
			return true
		}
		for _, a := range t.Arguments {
			if termUsesVar(a, name) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
