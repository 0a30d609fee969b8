package solve

import (
	"fmt"

	"github.com/mesh-intelligence/amber/pkg/ir"
)

// TraitInfo answers the trait metadata queries goal classification needs.
// The program database of the embedding engine implements it.
type TraitInfo interface {
	// IsAutoTrait reports whether the named trait is an auto trait.
	IsAutoTrait(name string) bool
	// IsCoinductiveTrait reports whether the named trait was explicitly
	// declared coinductive.
	IsCoinductiveTrait(name string) bool
}

// IsCoinductive reports whether proving g may assume g itself, i.e. whether
// a cycle on g in the proof tree is a success rather than a failure.
//
// Trait goals are coinductive when the trait is auto or declared
// coinductive. A conjunction is treated as coinductive outright: All(Gc, Gi)
// is no different from a fresh coinductive goal defined as Gc, Gi, so
// cycle handling for the conjuncts falls to the conjuncts themselves.
// Negation, unification and cannot-prove goals stay inductive.
func IsCoinductive[H comparable](in ir.Interner[H], info TraitInfo, g ir.Goal[H]) (bool, error) {
	d, err := g.Data(in)
	if err != nil {
		return false, err
	}

	switch d.Kind {
	case ir.GoalTrait:
		return info.IsAutoTrait(d.Trait) || info.IsCoinductiveTrait(d.Trait), nil
	case ir.GoalAll:
		return true, nil
	case ir.GoalNot, ir.GoalEq, ir.GoalCannotProve:
		return false, nil
	default:
		return false, fmt.Errorf("unhandled goal kind %v", d.Kind)
	}
}
