package solve

import (
	"fmt"

	"github.com/mesh-intelligence/amber/pkg/ir"
)

// SubstituteType replaces every bound variable in t with the parameter at
// its index in s, rebuilding the result through the interner. On a dedup
// backend untouched subtrees re-canonicalize to their existing handles, so
// substitution shares everything it does not change.
func SubstituteType[H comparable](in ir.Interner[H], t ir.Ty[H], s ir.Subst[H]) (ir.Ty[H], error) {
	d, err := t.Data(in)
	if err != nil {
		return ir.Ty[H]{}, err
	}

	switch d.Kind {
	case ir.TypeVar:
		p, err := paramAt(in, s, d.Index)
		if err != nil {
			return ir.Ty[H]{}, err
		}
		ty, ok := p.Ty()
		if !ok {
			return ir.Ty[H]{}, fmt.Errorf("parameter %d is a lifetime, used in type position", d.Index)
		}
		return ty, nil

	case ir.TypeApply, ir.TypeAlias:
		args, err := substituteArgs(in, d.ArgsSubst(), s)
		if err != nil {
			return ir.Ty[H]{}, err
		}
		if d.Kind == ir.TypeApply {
			return ir.InternApply(in, d.Name, args...)
		}
		return ir.InternAlias(in, d.Name, args...)

	case ir.TypeRef:
		lt, err := SubstituteLifetime(in, d.RefLifetime(), s)
		if err != nil {
			return ir.Ty[H]{}, err
		}
		elem, err := SubstituteType(in, d.ElemTy(), s)
		if err != nil {
			return ir.Ty[H]{}, err
		}
		return ir.InternRef(in, lt, elem)

	default:
		return ir.Ty[H]{}, fmt.Errorf("unhandled type kind %v", d.Kind)
	}
}

// SubstituteLifetime replaces a bound lifetime variable with the parameter
// at its index in s. Static and placeholder lifetimes pass through.
func SubstituteLifetime[H comparable](in ir.Interner[H], l ir.Lifetime[H], s ir.Subst[H]) (ir.Lifetime[H], error) {
	d, err := l.Data(in)
	if err != nil {
		return ir.Lifetime[H]{}, err
	}
	if d.Kind != ir.LifetimeVar {
		return l, nil
	}
	p, err := paramAt(in, s, d.Index)
	if err != nil {
		return ir.Lifetime[H]{}, err
	}
	lt, ok := p.Lifetime()
	if !ok {
		return ir.Lifetime[H]{}, fmt.Errorf("parameter %d is a type, used in lifetime position", d.Index)
	}
	return lt, nil
}

func paramAt[H comparable](in ir.Interner[H], s ir.Subst[H], index int) (ir.Param[H], error) {
	d, err := s.Data(in)
	if err != nil {
		return ir.Param[H]{}, err
	}
	if index < 0 || index >= len(d.Params) {
		return ir.Param[H]{}, fmt.Errorf("variable index %d out of range for substitution of %d parameters", index, len(d.Params))
	}
	return d.Params[index], nil
}

// substituteArgs applies s to every parameter of args, returning builder
// arguments for the rebuilt entity.
func substituteArgs[H comparable](in ir.Interner[H], args ir.Subst[H], s ir.Subst[H]) ([]ir.Arg[H], error) {
	d, err := args.Data(in)
	if err != nil {
		return nil, err
	}
	out := make([]ir.Arg[H], len(d.Params))
	for i, p := range d.Params {
		if ty, ok := p.Ty(); ok {
			sub, err := SubstituteType(in, ty, s)
			if err != nil {
				return nil, err
			}
			out[i] = ir.TyArg(sub)
			continue
		}
		lt, _ := p.Lifetime()
		sub, err := SubstituteLifetime(in, lt, s)
		if err != nil {
			return nil, err
		}
		out[i] = ir.LifetimeArg(sub)
	}
	return out, nil
}
