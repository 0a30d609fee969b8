package ir

// Builders. Each interns the inner lists an entity needs and then the entity
// itself, returning the wrapper. Consumer code constructs every entity this
// way; it never assembles shape structs by hand.

// Arg is one generic argument passed to a builder, made with TyArg or
// LifetimeArg.
type Arg[H comparable] struct{ param Param[H] }

// TyArg wraps a type as a generic argument.
func TyArg[H comparable](t Ty[H]) Arg[H] {
	return Arg[H]{param: Param[H]{Kind: ParamTy, Value: t.handle}}
}

// LifetimeArg wraps a lifetime as a generic argument.
func LifetimeArg[H comparable](l Lifetime[H]) Arg[H] {
	return Arg[H]{param: Param[H]{Kind: ParamLifetime, Value: l.handle}}
}

// InternSubstOf interns the substitution holding the given arguments in order.
func InternSubstOf[H comparable](in Interner[H], args ...Arg[H]) (Subst[H], error) {
	params := make([]Param[H], len(args))
	for i, a := range args {
		params[i] = a.param
	}
	h, err := in.InternSubst(SubstShape[H]{Params: params})
	if err != nil {
		return Subst[H]{}, err
	}
	return Subst[H]{handle: h}, nil
}

// InternGoalsOf interns the goal list holding the given goals in order.
func InternGoalsOf[H comparable](in Interner[H], goals ...Goal[H]) (Goals[H], error) {
	hs := make([]H, len(goals))
	for i, g := range goals {
		hs[i] = g.handle
	}
	h, err := in.InternGoals(GoalsShape[H]{Goals: hs})
	if err != nil {
		return Goals[H]{}, err
	}
	return Goals[H]{handle: h}, nil
}

// InternVar interns the bound type variable with the given de Bruijn index.
func InternVar[H comparable](in Interner[H], index int) (Ty[H], error) {
	h, err := in.InternType(TypeShape[H]{Kind: TypeVar, Index: index})
	if err != nil {
		return Ty[H]{}, err
	}
	return Ty[H]{handle: h}, nil
}

// InternApply interns the application of a named constructor to arguments.
func InternApply[H comparable](in Interner[H], name string, args ...Arg[H]) (Ty[H], error) {
	subst, err := InternSubstOf(in, args...)
	if err != nil {
		return Ty[H]{}, err
	}
	h, err := in.InternType(TypeShape[H]{Kind: TypeApply, Name: name, Args: subst.handle})
	if err != nil {
		return Ty[H]{}, err
	}
	return Ty[H]{handle: h}, nil
}

// InternRef interns a reference type over the given lifetime and referent.
func InternRef[H comparable](in Interner[H], lt Lifetime[H], elem Ty[H]) (Ty[H], error) {
	h, err := in.InternType(TypeShape[H]{Kind: TypeRef, Lifetime: lt.handle, Elem: elem.handle})
	if err != nil {
		return Ty[H]{}, err
	}
	return Ty[H]{handle: h}, nil
}

// InternAlias interns an associated-type projection applied to arguments.
func InternAlias[H comparable](in Interner[H], name string, args ...Arg[H]) (Ty[H], error) {
	subst, err := InternSubstOf(in, args...)
	if err != nil {
		return Ty[H]{}, err
	}
	h, err := in.InternType(TypeShape[H]{Kind: TypeAlias, Name: name, Args: subst.handle})
	if err != nil {
		return Ty[H]{}, err
	}
	return Ty[H]{handle: h}, nil
}

// InternStatic interns the 'static lifetime.
func InternStatic[H comparable](in Interner[H]) (Lifetime[H], error) {
	h, err := in.InternLifetime(LifetimeShape[H]{Kind: LifetimeStatic})
	if err != nil {
		return Lifetime[H]{}, err
	}
	return Lifetime[H]{handle: h}, nil
}

// InternLifetimeVar interns the bound lifetime variable with the given index.
func InternLifetimeVar[H comparable](in Interner[H], index int) (Lifetime[H], error) {
	h, err := in.InternLifetime(LifetimeShape[H]{Kind: LifetimeVar, Index: index})
	if err != nil {
		return Lifetime[H]{}, err
	}
	return Lifetime[H]{handle: h}, nil
}

// InternPlaceholder interns the placeholder lifetime with the given index.
func InternPlaceholder[H comparable](in Interner[H], index int) (Lifetime[H], error) {
	h, err := in.InternLifetime(LifetimeShape[H]{Kind: LifetimePlaceholder, Index: index})
	if err != nil {
		return Lifetime[H]{}, err
	}
	return Lifetime[H]{handle: h}, nil
}

// InternTraitGoal interns the goal that trait is implemented for args.
func InternTraitGoal[H comparable](in Interner[H], trait string, args ...Arg[H]) (Goal[H], error) {
	subst, err := InternSubstOf(in, args...)
	if err != nil {
		return Goal[H]{}, err
	}
	h, err := in.InternGoal(GoalShape[H]{Kind: GoalTrait, Trait: trait, Args: subst.handle})
	if err != nil {
		return Goal[H]{}, err
	}
	return Goal[H]{handle: h}, nil
}

// InternEqGoal interns the goal that two types unify.
func InternEqGoal[H comparable](in Interner[H], a, b Ty[H]) (Goal[H], error) {
	h, err := in.InternGoal(GoalShape[H]{Kind: GoalEq, A: a.handle, B: b.handle})
	if err != nil {
		return Goal[H]{}, err
	}
	return Goal[H]{handle: h}, nil
}

// InternAllGoal interns the conjunction of the given goals.
func InternAllGoal[H comparable](in Interner[H], goals ...Goal[H]) (Goal[H], error) {
	list, err := InternGoalsOf(in, goals...)
	if err != nil {
		return Goal[H]{}, err
	}
	h, err := in.InternGoal(GoalShape[H]{Kind: GoalAll, Goals: list.handle})
	if err != nil {
		return Goal[H]{}, err
	}
	return Goal[H]{handle: h}, nil
}

// InternNotGoal interns the negation of a goal.
func InternNotGoal[H comparable](in Interner[H], g Goal[H]) (Goal[H], error) {
	h, err := in.InternGoal(GoalShape[H]{Kind: GoalNot, Body: g.handle})
	if err != nil {
		return Goal[H]{}, err
	}
	return Goal[H]{handle: h}, nil
}

// InternCannotProve interns the goal that always flounders.
func InternCannotProve[H comparable](in Interner[H]) (Goal[H], error) {
	h, err := in.InternGoal(GoalShape[H]{Kind: GoalCannotProve})
	if err != nil {
		return Goal[H]{}, err
	}
	return Goal[H]{handle: h}, nil
}

// ReleaseTy frees the slot behind a type on backends that support removal.
func ReleaseTy[H comparable](r Releaser[H], t Ty[H]) error {
	return r.ReleaseType(t.handle)
}
