// Package solve holds the resolution-side algorithms that consume the
// interner capability: structural comparison, substitution application, and
// goal classification. Nothing here names a concrete backend; swapping the
// owning backend for the arena (or the durable store) changes no line of
// this package.
package solve

import (
	"fmt"

	"github.com/mesh-intelligence/amber/pkg/ir"
)

// EqTypes reports structural equality of two types interned under in. Handle
// identity is the fast path; on dedup backends it is also the only path that
// ever returns true, since equal structures share a handle. On the owning
// backend the walk below does the real work.
func EqTypes[H comparable](in ir.Interner[H], a, b ir.Ty[H]) (bool, error) {
	if a.Equal(b) {
		return true, nil
	}
	da, err := a.Data(in)
	if err != nil {
		return false, err
	}
	db, err := b.Data(in)
	if err != nil {
		return false, err
	}
	if da.Kind != db.Kind {
		return false, nil
	}

	switch da.Kind {
	case ir.TypeVar:
		return da.Index == db.Index, nil
	case ir.TypeApply, ir.TypeAlias:
		if da.Name != db.Name {
			return false, nil
		}
		return EqSubsts(in, da.ArgsSubst(), db.ArgsSubst())
	case ir.TypeRef:
		ok, err := EqLifetimes(in, da.RefLifetime(), db.RefLifetime())
		if err != nil || !ok {
			return false, err
		}
		return EqTypes(in, da.ElemTy(), db.ElemTy())
	default:
		return false, fmt.Errorf("unhandled type kind %v", da.Kind)
	}
}

// EqLifetimes reports structural equality of two lifetimes interned under in.
func EqLifetimes[H comparable](in ir.Interner[H], a, b ir.Lifetime[H]) (bool, error) {
	if a.Equal(b) {
		return true, nil
	}
	da, err := a.Data(in)
	if err != nil {
		return false, err
	}
	db, err := b.Data(in)
	if err != nil {
		return false, err
	}
	// Lifetime shapes are leaves; shape equality is the whole story.
	return da == db, nil
}

// EqSubsts reports element-wise structural equality of two substitutions.
// Parameters of different kinds at the same position compare unequal.
func EqSubsts[H comparable](in ir.Interner[H], a, b ir.Subst[H]) (bool, error) {
	if a.Equal(b) {
		return true, nil
	}
	da, err := a.Data(in)
	if err != nil {
		return false, err
	}
	db, err := b.Data(in)
	if err != nil {
		return false, err
	}
	if len(da.Params) != len(db.Params) {
		return false, nil
	}
	for i := range da.Params {
		pa, pb := da.Params[i], db.Params[i]
		if pa.Kind != pb.Kind {
			return false, nil
		}
		var ok bool
		if ta, isTy := pa.Ty(); isTy {
			tb, _ := pb.Ty()
			ok, err = EqTypes(in, ta, tb)
		} else {
			la, _ := pa.Lifetime()
			lb, _ := pb.Lifetime()
			ok, err = EqLifetimes(in, la, lb)
		}
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// EqGoals reports structural equality of two goals interned under in.
func EqGoals[H comparable](in ir.Interner[H], a, b ir.Goal[H]) (bool, error) {
	if a.Equal(b) {
		return true, nil
	}
	da, err := a.Data(in)
	if err != nil {
		return false, err
	}
	db, err := b.Data(in)
	if err != nil {
		return false, err
	}
	if da.Kind != db.Kind {
		return false, nil
	}

	switch da.Kind {
	case ir.GoalTrait:
		if da.Trait != db.Trait {
			return false, nil
		}
		return EqSubsts(in, da.TraitArgs(), db.TraitArgs())
	case ir.GoalEq:
		aa, ab := da.EqTys()
		ba, bb := db.EqTys()
		ok, err := EqTypes(in, aa, ba)
		if err != nil || !ok {
			return false, err
		}
		return EqTypes(in, ab, bb)
	case ir.GoalAll:
		la, err := da.AllGoals().Data(in)
		if err != nil {
			return false, err
		}
		lb, err := db.AllGoals().Data(in)
		if err != nil {
			return false, err
		}
		if la.Len() != lb.Len() {
			return false, nil
		}
		for i := 0; i < la.Len(); i++ {
			ok, err := EqGoals(in, la.GoalAt(i), lb.GoalAt(i))
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case ir.GoalNot:
		return EqGoals(in, da.NotBody(), db.NotBody())
	case ir.GoalCannotProve:
		return true, nil
	default:
		return false, fmt.Errorf("unhandled goal kind %v", da.Kind)
	}
}
