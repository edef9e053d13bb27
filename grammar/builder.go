package grammar

import (
	"fmt"
	"strconv"

	"ruleforge/internal/ir/syntax"
	"ruleforge/internal/surface"
)

// Build converts a parsed Program into a surface.RuleBook: it assigns
// dense wire ids to every constructor/function name it encounters, in
// first-appearance order, groups rules by name, and derives each
// group's strictness vector from its parameters across all of its
// rules — a position is strict unless every rule leaves it an
// unconstrained variable or erased placeholder.
func Build(program *Program) (*surface.RuleBook, error) {
	book := surface.NewRuleBook()
	nextID := uint64(0)
	intern := func(name string) uint64 {
		if id, ok := book.NameToID[name]; ok {
			return id
		}
		id := nextID
		nextID++
		book.Define(name, id)
		return id
	}

	groupOrder := []string{}
	rulesByName := map[string][]*RuleDecl{}
	for _, item := range program.Items {
		if item.Rule == nil {
			continue
		}
		name := item.Rule.Name
		intern(name)
		if _, seen := rulesByName[name]; !seen {
			groupOrder = append(groupOrder, name)
		}
		rulesByName[name] = append(rulesByName[name], item.Rule)
		book.MarkFunction(name)

		for _, p := range item.Rule.Parameters {
			if p.Constructor != nil {
				intern(p.Constructor.Name)
			}
		}
		internAppCallees(item.Rule.Value, intern)
	}

	for _, name := range groupOrder {
		decls := rulesByName[name]
		strict, err := deriveStrictness(decls)
		if err != nil {
			return nil, err
		}

		group := surface.RuleGroup{Name: name, StrictParameters: strict}
		for _, decl := range decls {
			params, err := buildParameters(decl.Parameters)
			if err != nil {
				return nil, err
			}
			value, err := buildExpr(decl.Value)
			if err != nil {
				return nil, err
			}
			group.Rules = append(group.Rules, surface.Rule{Name: name, Parameters: params, Value: value})
		}
		book.Groups = append(book.Groups, group)
	}

	return book, nil
}

func deriveStrictness(decls []*RuleDecl) ([]bool, error) {
	arity := len(decls[0].Parameters)
	strict := make([]bool, arity)
	for _, decl := range decls {
		if len(decl.Parameters) != arity {
			return nil, fmt.Errorf("rule group %q: rule has %d parameters, expected %d", decl.Name, len(decl.Parameters), arity)
		}
		for i, p := range decl.Parameters {
			if p.Constructor != nil || p.Int != nil || p.Float != nil {
				strict[i] = true
			}
		}
	}
	return strict, nil
}

func buildParameters(params []*ParamPattern) ([]syntax.Parameter, error) {
	out := make([]syntax.Parameter, 0, len(params))
	for _, p := range params {
		param, err := buildParameter(p)
		if err != nil {
			return nil, err
		}
		out = append(out, param)
	}
	return out, nil
}

func buildParameter(p *ParamPattern) (syntax.Parameter, error) {
	switch {
	case p.Erased:
		return syntax.Parameter{Kind: syntax.PErased}, nil
	case p.Int != nil:
		n, err := strconv.ParseUint(*p.Int, 0, 64)
		if err != nil {
			return syntax.Parameter{}, fmt.Errorf("invalid integer literal %q: %w", *p.Int, err)
		}
		return syntax.Parameter{Kind: syntax.PU60, U60: n}, nil
	case p.Float != nil:
		f, err := strconv.ParseFloat(*p.Float, 64)
		if err != nil {
			return syntax.Parameter{}, fmt.Errorf("invalid float literal %q: %w", *p.Float, err)
		}
		return syntax.Parameter{Kind: syntax.PF60, F60: f}, nil
	case p.Constructor != nil:
		fields := make([]syntax.Pattern, 0, len(p.Constructor.Fields))
		for _, f := range p.Constructor.Fields {
			if f.Erased {
				fields = append(fields, syntax.Pattern{Erased: true})
			} else {
				fields = append(fields, syntax.Pattern{Name: *f.Name})
			}
		}
		return syntax.Parameter{
			Kind: syntax.PConstructor,
			Constructor: syntax.Constructor{
				Name:            p.Constructor.Name,
				Arity:           uint64(len(fields)),
				FlattenPatterns: fields,
			},
		}, nil
	case p.Var != nil:
		return syntax.Parameter{Kind: syntax.PAtom, Name: *p.Var}, nil
	default:
		return syntax.Parameter{}, fmt.Errorf("empty parameter pattern")
	}
}

var binaryOps = map[string]syntax.Op{
	"+": syntax.OpAdd, "-": syntax.OpSub, "*": syntax.OpMul, "/": syntax.OpDiv, "%": syntax.OpMod,
	"&": syntax.OpAnd, "|": syntax.OpOr, "^": syntax.OpXor, "<<": syntax.OpShl, ">>": syntax.OpShr,
	"<": syntax.OpLtn, "<=": syntax.OpLte, "==": syntax.OpEql, ">=": syntax.OpGte, ">": syntax.OpGtn, "!=": syntax.OpNeq,
}

func buildExpr(e *Expr) (surface.Term, error) {
	switch {
	case e.Let != nil:
		value, err := buildExpr(e.Let.Value)
		if err != nil {
			return surface.Term{}, err
		}
		body, err := buildExpr(e.Let.Body)
		if err != nil {
			return surface.Term{}, err
		}
		return surface.Let(e.Let.Name, value, body), nil
	case e.Dup != nil:
		value, err := buildExpr(e.Dup.Value)
		if err != nil {
			return surface.Term{}, err
		}
		body, err := buildExpr(e.Dup.Body)
		if err != nil {
			return surface.Term{}, err
		}
		return surface.Dup(e.Dup.From, e.Dup.To, value, body), nil
	case e.Lam != nil:
		value, err := buildExpr(e.Lam.Value)
		if err != nil {
			return surface.Term{}, err
		}
		return surface.Lam(e.Lam.Parameter, value), nil
	case e.Super != nil:
		first, err := buildExpr(e.Super.First)
		if err != nil {
			return surface.Term{}, err
		}
		second, err := buildExpr(e.Super.Second)
		if err != nil {
			return surface.Term{}, err
		}
		return surface.Super(first, second), nil
	case e.Binary != nil:
		return buildBinary(e.Binary)
	default:
		return surface.Term{}, fmt.Errorf("empty expression")
	}
}

func buildBinary(b *BinaryExpr) (surface.Term, error) {
	acc, err := buildApp(b.Left)
	if err != nil {
		return surface.Term{}, err
	}
	for _, op := range b.Ops {
		rhs, err := buildApp(op.Right)
		if err != nil {
			return surface.Term{}, err
		}
		sym, ok := binaryOps[op.Operator]
		if !ok {
			return surface.Term{}, fmt.Errorf("unknown operator %q", op.Operator)
		}
		acc = surface.Binary(acc, sym, rhs)
	}
	return acc, nil
}

func buildApp(a *AppExpr) (surface.Term, error) {
	callee, err := buildAtom(a.Callee)
	if err != nil {
		return surface.Term{}, err
	}
	if a.Call == nil {
		return callee, nil
	}
	args := make([]surface.Term, 0, len(a.Call.Args))
	for _, arg := range a.Call.Args {
		t, err := buildExpr(arg)
		if err != nil {
			return surface.Term{}, err
		}
		args = append(args, t)
	}
	return surface.App(callee, args), nil
}

func buildAtom(a *AtomExpr) (surface.Term, error) {
	switch {
	case a.Float != nil:
		f, err := strconv.ParseFloat(*a.Float, 64)
		if err != nil {
			return surface.Term{}, fmt.Errorf("invalid float literal %q: %w", *a.Float, err)
		}
		return surface.F60(f), nil
	case a.Int != nil:
		n, err := strconv.ParseUint(*a.Int, 0, 64)
		if err != nil {
			return surface.Term{}, fmt.Errorf("invalid integer literal %q: %w", *a.Int, err)
		}
		return surface.U60(n), nil
	case a.Ident != nil:
		return surface.Var(*a.Ident), nil
	case a.Paren != nil:
		return buildExpr(a.Paren)
	default:
		return surface.Term{}, fmt.Errorf("empty atom")
	}
}

// internAppCallees walks an RHS expression recursively, interning every
// application callee name it finds so references to constructors never
// used as a rule group's LHS (e.g. `Zero`, `Nil`) still receive an id.
func internAppCallees(e *Expr, intern func(string) uint64) {
	if e == nil {
		return
	}
	switch {
	case e.Let != nil:
		internAppCallees(e.Let.Value, intern)
		internAppCallees(e.Let.Body, intern)
	case e.Dup != nil:
		internAppCallees(e.Dup.Value, intern)
		internAppCallees(e.Dup.Body, intern)
	case e.Lam != nil:
		internAppCallees(e.Lam.Value, intern)
	case e.Super != nil:
		internAppCallees(e.Super.First, intern)
		internAppCallees(e.Super.Second, intern)
	case e.Binary != nil:
		internAppCalleesInApp(e.Binary.Left, intern)
		for _, op := range e.Binary.Ops {
			internAppCalleesInApp(op.Right, intern)
		}
	}
}

func internAppCalleesInApp(a *AppExpr, intern func(string) uint64) {
	if a == nil {
		return
	}
	if a.Callee.Ident != nil && a.Call != nil {
		intern(*a.Callee.Ident)
	}
	if a.Callee.Paren != nil {
		internAppCallees(a.Callee.Paren, intern)
	}
	if a.Call != nil {
		for _, arg := range a.Call.Args {
			internAppCallees(arg, intern)
		}
	}
}
