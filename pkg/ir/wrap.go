package ir

// The wrapper types below are the currency consumer code holds. Each is a
// value type carrying the raw handle unexported: the only ways to obtain one
// are the Intern* builders and the accessors on resolved shapes, and the only
// way through it is Data against the interner that minted the handle.
//
// Equal compares handle identity. On dedup backends handle equality implies
// structural equality, so Equal is the O(1) equality the solver uses on its
// hot path; on the boxed backend structurally equal values may still compare
// unequal, and solve.EqTypes is the structural fallback.

// Ty references an interned type.
type Ty[H comparable] struct{ handle H }

// Data resolves the type's shape through the interner that minted it.
func (t Ty[H]) Data(in Interner[H]) (TypeShape[H], error) {
	return in.TypeData(t.handle)
}

// Equal reports handle identity.
func (t Ty[H]) Equal(o Ty[H]) bool { return t.handle == o.handle }

// Lifetime references an interned lifetime.
type Lifetime[H comparable] struct{ handle H }

// Data resolves the lifetime's shape through the interner that minted it.
func (l Lifetime[H]) Data(in Interner[H]) (LifetimeShape[H], error) {
	return in.LifetimeData(l.handle)
}

// Equal reports handle identity.
func (l Lifetime[H]) Equal(o Lifetime[H]) bool { return l.handle == o.handle }

// Goal references an interned goal.
type Goal[H comparable] struct{ handle H }

// Data resolves the goal's shape through the interner that minted it.
func (g Goal[H]) Data(in Interner[H]) (GoalShape[H], error) {
	return in.GoalData(g.handle)
}

// Equal reports handle identity.
func (g Goal[H]) Equal(o Goal[H]) bool { return g.handle == o.handle }

// Subst references an interned substitution.
type Subst[H comparable] struct{ handle H }

// Data resolves the substitution's shape through the interner that minted it.
func (s Subst[H]) Data(in Interner[H]) (SubstShape[H], error) {
	return in.SubstData(s.handle)
}

// Equal reports handle identity.
func (s Subst[H]) Equal(o Subst[H]) bool { return s.handle == o.handle }

// Goals references an interned goal list.
type Goals[H comparable] struct{ handle H }

// Data resolves the list's shape through the interner that minted it.
func (g Goals[H]) Data(in Interner[H]) (GoalsShape[H], error) {
	return in.GoalsData(g.handle)
}

// Equal reports handle identity.
func (g Goals[H]) Equal(o Goals[H]) bool { return g.handle == o.handle }
