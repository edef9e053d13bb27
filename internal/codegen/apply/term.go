package apply

import (
	pkgerrors "github.com/pkg/errors"

	"ruleforge/internal/diag"
	apply "ruleforge/internal/ir/apply"
	"ruleforge/internal/ir/syntax"
)

// buildTerm dispatches on the lowered RHS term's Kind and returns the
// apply-IR value it evaluates to, emitting whatever Bind/Link
// instructions building that value requires along the way.
func (c *Codegen) buildTerm(term syntax.Term) apply.Term {
	switch term.Kind {
	case syntax.KU60:
		return apply.CreateU60(term.U60)
	case syntax.KF60:
		return apply.CreateF60(term.F60)
	case syntax.KAtom:
		return c.buildAtom(term.Atom)
	case syntax.KLet:
		return c.buildLet(term.Let)
	case syntax.KLam:
		return c.withMetadata(term, func(bb *Codegen, _ syntax.Term) apply.Term {
			return bb.buildLam(term.Lam)
		})
	case syntax.KBinary:
		return c.withMetadata(term, func(bb *Codegen, _ syntax.Term) apply.Term {
			return bb.buildBinary(term.Binary)
		})
	case syntax.KApp:
		return c.withMetadata(term, func(bb *Codegen, _ syntax.Term) apply.Term {
			switch {
			case term.App.GlobalName != nil && term.App.IsFunction:
				return bb.buildCall(term.App.Arguments, *term.App.GlobalName)
			case term.App.GlobalName != nil:
				return bb.buildConstructor(term.App.Arguments, *term.App.GlobalName)
			default:
				return bb.buildApp(*term.App.Callee, term.App.Arguments)
			}
		})
	case syntax.KDuplicate, syntax.KSuper:
		// Superposition/duplication codegen is reserved: the runtime ABI
		// this backend targets has no agreed representation for them yet.
		// Recorded as a fatal codegen error rather than emitted as a
		// diagnostic-only NotFound value, so the rule group fails to
		// install instead of panicking later at evaluation time.
		return c.fail(pkgerrors.Wrap(diag.ErrUnsupported, "dup/super codegen"))
	default:
		return apply.NotFound(syntax.Atom{Name: "<unknown>"})
	}
}

func (c *Codegen) buildLet(let syntax.Let) apply.Term {
	binding := c.buildTerm(*let.Value)
	c.variables = append(c.variables, namedTerm{name: let.Name, term: binding})
	body := c.buildTerm(*let.Body)
	c.variables = c.variables[:len(c.variables)-1]
	return body
}

func (c *Codegen) buildAtom(atom syntax.Atom) apply.Term {
	if int(atom.Index) < len(c.variables) {
		return c.variables[atom.Index].term
	}
	for _, v := range c.variables {
		if v.name == atom.Name {
			return v.term
		}
	}
	return apply.NotFound(atom)
}
