package ir

import "fmt"

// TypeKind discriminates the variants of TypeShape.
type TypeKind uint8

const (
	// TypeVar is a bound type variable, identified by de Bruijn index.
	TypeVar TypeKind = iota + 1
	// TypeApply is a named type constructor applied to arguments.
	TypeApply
	// TypeRef is a reference type carrying a lifetime and a referent.
	TypeRef
	// TypeAlias is an unnormalized associated-type projection.
	TypeAlias
)

func (k TypeKind) String() string {
	switch k {
	case TypeVar:
		return "var"
	case TypeApply:
		return "apply"
	case TypeRef:
		return "ref"
	case TypeAlias:
		return "alias"
	default:
		return fmt.Sprintf("TypeKind(%d)", uint8(k))
	}
}

// TypeShape is the logical shape of one type entity. Recursive positions
// (Args, Lifetime, Elem) hold handles, never nested shapes, so the struct has
// a fixed size independent of nesting depth. Unused fields stay at their zero
// value; two shapes are structurally equal exactly when they compare equal
// with ==, which is what lets dedup backends key canonical maps on the shape
// itself.
type TypeShape[H comparable] struct {
	Kind     TypeKind
	Index    int    // TypeVar: de Bruijn index.
	Name     string // TypeApply, TypeAlias: constructor or projection name.
	Args     H      // TypeApply, TypeAlias: interned substitution.
	Lifetime H      // TypeRef: region of the reference.
	Elem     H      // TypeRef: referent type.
}

// ArgsSubst returns the argument substitution for apply and alias types.
func (s TypeShape[H]) ArgsSubst() Subst[H] { return Subst[H]{handle: s.Args} }

// RefLifetime returns the lifetime of a reference type.
func (s TypeShape[H]) RefLifetime() Lifetime[H] { return Lifetime[H]{handle: s.Lifetime} }

// ElemTy returns the referent of a reference type.
func (s TypeShape[H]) ElemTy() Ty[H] { return Ty[H]{handle: s.Elem} }

// LifetimeKind discriminates the variants of LifetimeShape.
type LifetimeKind uint8

const (
	// LifetimeStatic is the 'static region.
	LifetimeStatic LifetimeKind = iota + 1
	// LifetimeVar is a bound lifetime variable, identified by de Bruijn index.
	LifetimeVar
	// LifetimePlaceholder is a universally quantified placeholder region.
	LifetimePlaceholder
)

func (k LifetimeKind) String() string {
	switch k {
	case LifetimeStatic:
		return "static"
	case LifetimeVar:
		return "var"
	case LifetimePlaceholder:
		return "placeholder"
	default:
		return fmt.Sprintf("LifetimeKind(%d)", uint8(k))
	}
}

// LifetimeShape is the logical shape of one lifetime entity.
type LifetimeShape[H comparable] struct {
	Kind  LifetimeKind
	Index int // LifetimeVar, LifetimePlaceholder.
}

// GoalKind discriminates the variants of GoalShape.
type GoalKind uint8

const (
	// GoalTrait asserts that a trait is implemented for the given arguments.
	GoalTrait GoalKind = iota + 1
	// GoalEq asserts that two types unify.
	GoalEq
	// GoalAll is the conjunction of an interned goal list.
	GoalAll
	// GoalNot is the negation of a goal.
	GoalNot
	// GoalCannotProve is the goal that always flounders.
	GoalCannotProve
)

func (k GoalKind) String() string {
	switch k {
	case GoalTrait:
		return "trait"
	case GoalEq:
		return "eq"
	case GoalAll:
		return "all"
	case GoalNot:
		return "not"
	case GoalCannotProve:
		return "cannot-prove"
	default:
		return fmt.Sprintf("GoalKind(%d)", uint8(k))
	}
}

// GoalShape is the logical shape of one goal entity.
type GoalShape[H comparable] struct {
	Kind  GoalKind
	Trait string // GoalTrait: trait name.
	Args  H      // GoalTrait: interned substitution of the trait reference.
	Goals H      // GoalAll: interned goal list.
	Body  H      // GoalNot: negated goal.
	A, B  H      // GoalEq: the types compared.
}

// TraitArgs returns the argument substitution of a trait goal.
func (s GoalShape[H]) TraitArgs() Subst[H] { return Subst[H]{handle: s.Args} }

// AllGoals returns the conjunct list of an all goal.
func (s GoalShape[H]) AllGoals() Goals[H] { return Goals[H]{handle: s.Goals} }

// NotBody returns the negated goal of a not goal.
func (s GoalShape[H]) NotBody() Goal[H] { return Goal[H]{handle: s.Body} }

// EqTys returns the two types compared by an eq goal.
func (s GoalShape[H]) EqTys() (Ty[H], Ty[H]) {
	return Ty[H]{handle: s.A}, Ty[H]{handle: s.B}
}

// ParamKind discriminates type from lifetime parameters.
type ParamKind uint8

const (
	ParamTy ParamKind = iota + 1
	ParamLifetime
)

// Param is one generic argument: a type or a lifetime handle. It is a plain
// comparable pair so substitutions can be hashed and compared element-wise.
type Param[H comparable] struct {
	Kind  ParamKind
	Value H
}

// Ty returns the parameter as a type, reporting whether it is one.
func (p Param[H]) Ty() (Ty[H], bool) {
	if p.Kind != ParamTy {
		return Ty[H]{}, false
	}
	return Ty[H]{handle: p.Value}, true
}

// Lifetime returns the parameter as a lifetime, reporting whether it is one.
func (p Param[H]) Lifetime() (Lifetime[H], bool) {
	if p.Kind != ParamLifetime {
		return Lifetime[H]{}, false
	}
	return Lifetime[H]{handle: p.Value}, true
}

// SubstShape is the logical shape of a substitution: an ordered list of
// generic arguments. Unlike the fixed-arity shapes it holds a slice, so dedup
// backends key it by structural hash rather than map-key identity.
type SubstShape[H comparable] struct {
	Params []Param[H]
}

// GoalsShape is the logical shape of an interned goal list.
type GoalsShape[H comparable] struct {
	Goals []H
}

// GoalAt returns the i-th goal of the list.
func (s GoalsShape[H]) GoalAt(i int) Goal[H] { return Goal[H]{handle: s.Goals[i]} }

// Len returns the number of goals in the list.
func (s GoalsShape[H]) Len() int { return len(s.Goals) }
