// Package irtest exports the backend-independent conformance suite for
// interner implementations. Each backend's tests run Suite against a fresh
// instance, plus the extensions (stale handles, cross-instance rejection)
// that apply to it.
package irtest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/amber/pkg/ir"
)

// Suite runs the properties every interner must satisfy. dedup states
// whether the backend canonicalizes structurally equal shapes; both answers
// are valid contracts, but the suite verifies the one the backend claims.
func Suite[H comparable](t *testing.T, newInterner func() ir.Interner[H], dedup bool) {
	t.Run("round trip", func(t *testing.T) { RoundTrip(t, newInterner()) })
	t.Run("stability", func(t *testing.T) { Stability(t, newInterner()) })
	t.Run("shared subhandles", func(t *testing.T) { SharedSubhandles(t, newInterner()) })
	t.Run("dedup semantics", func(t *testing.T) { Dedup(t, newInterner(), dedup) })
	t.Run("goal round trip", func(t *testing.T) { GoalRoundTrip(t, newInterner()) })
}

// RoundTrip checks that resolve returns data structurally equal to what was
// interned, across every entity kind.
func RoundTrip[H comparable](t *testing.T, in ir.Interner[H]) {
	leaf, err := ir.InternVar(in, 3)
	require.NoError(t, err)

	static, err := ir.InternStatic(in)
	require.NoError(t, err)

	ref, err := ir.InternRef(in, static, leaf)
	require.NoError(t, err)

	vec, err := ir.InternApply(in, "Vec", ir.TyArg(ref))
	require.NoError(t, err)

	d, err := vec.Data(in)
	require.NoError(t, err)
	require.Equal(t, ir.TypeApply, d.Kind)
	require.Equal(t, "Vec", d.Name)

	args, err := d.ArgsSubst().Data(in)
	require.NoError(t, err)
	require.Len(t, args.Params, 1)

	argTy, ok := args.Params[0].Ty()
	require.True(t, ok)
	require.True(t, argTy.Equal(ref))

	rd, err := argTy.Data(in)
	require.NoError(t, err)
	require.Equal(t, ir.TypeRef, rd.Kind)

	ld, err := rd.RefLifetime().Data(in)
	require.NoError(t, err)
	require.Equal(t, ir.LifetimeStatic, ld.Kind)

	ed, err := rd.ElemTy().Data(in)
	require.NoError(t, err)
	require.Equal(t, ir.TypeVar, ed.Kind)
	require.Equal(t, 3, ed.Index)
}

// Stability checks that consecutive resolves with no intervening mutation
// return structurally equal data.
func Stability[H comparable](t *testing.T, in ir.Interner[H]) {
	ty, err := ir.InternApply(in, "Option", ir.TyArg(mustVar(t, in, 0)))
	require.NoError(t, err)

	first, err := ty.Data(in)
	require.NoError(t, err)
	second, err := ty.Data(in)
	require.NoError(t, err)
	require.Equal(t, first, second)

	args1, err := first.ArgsSubst().Data(in)
	require.NoError(t, err)
	args2, err := second.ArgsSubst().Data(in)
	require.NoError(t, err)
	require.True(t, ir.SubstEqual(args1, args2))
}

// SharedSubhandles interns a leaf, builds a pair referencing it twice, and
// checks that both the pair and the independently resolved leaf come back
// intact, confirming sub-handle sharing causes no duplication or corruption.
func SharedSubhandles[H comparable](t *testing.T, in ir.Interner[H]) {
	leaf, err := ir.InternVar(in, 42)
	require.NoError(t, err)

	pair, err := ir.InternApply(in, "Pair", ir.TyArg(leaf), ir.TyArg(leaf))
	require.NoError(t, err)

	d, err := pair.Data(in)
	require.NoError(t, err)
	require.Equal(t, ir.TypeApply, d.Kind)
	require.Equal(t, "Pair", d.Name)

	args, err := d.ArgsSubst().Data(in)
	require.NoError(t, err)
	require.Len(t, args.Params, 2)
	for _, p := range args.Params {
		ty, ok := p.Ty()
		require.True(t, ok)
		require.True(t, ty.Equal(leaf))
	}

	ld, err := leaf.Data(in)
	require.NoError(t, err)
	require.Equal(t, ir.TypeVar, ld.Kind)
	require.Equal(t, 42, ld.Index)
}

// Dedup interns structurally equal shapes built independently and checks the
// backend's claimed canonicalization: equal handles when dedup is promised,
// structurally equal resolves either way.
func Dedup[H comparable](t *testing.T, in ir.Interner[H], dedup bool) {
	build := func() ir.Ty[H] {
		t.Helper()
		inner := mustVar(t, in, 1)
		ty, err := ir.InternApply(in, "Box", ir.TyArg(inner))
		require.NoError(t, err)
		return ty
	}
	t1 := build()
	t2 := build()

	if dedup {
		require.True(t, t1.Equal(t2), "dedup backend must canonicalize equal shapes")
	}

	d1, err := t1.Data(in)
	require.NoError(t, err)
	d2, err := t2.Data(in)
	require.NoError(t, err)
	require.Equal(t, d1.Kind, d2.Kind)
	require.Equal(t, d1.Name, d2.Name)

	different, err := ir.InternApply(in, "Rc", ir.TyArg(mustVar(t, in, 1)))
	require.NoError(t, err)
	require.False(t, t1.Equal(different), "distinct shapes must never share a handle")
}

// GoalRoundTrip checks goal and goal-list interning end to end.
func GoalRoundTrip[H comparable](t *testing.T, in ir.Interner[H]) {
	a := mustVar(t, in, 0)
	b := mustVar(t, in, 1)

	eq, err := ir.InternEqGoal(in, a, b)
	require.NoError(t, err)

	trait, err := ir.InternTraitGoal(in, "Send", ir.TyArg(a))
	require.NoError(t, err)

	all, err := ir.InternAllGoal(in, eq, trait)
	require.NoError(t, err)

	d, err := all.Data(in)
	require.NoError(t, err)
	require.Equal(t, ir.GoalAll, d.Kind)

	list, err := d.AllGoals().Data(in)
	require.NoError(t, err)
	require.Equal(t, 2, list.Len())
	require.True(t, list.GoalAt(0).Equal(eq))
	require.True(t, list.GoalAt(1).Equal(trait))

	td, err := list.GoalAt(1).Data(in)
	require.NoError(t, err)
	require.Equal(t, ir.GoalTrait, td.Kind)
	require.Equal(t, "Send", td.Trait)
}

// StaleHandle checks that a released handle resolves to ErrStaleHandle and
// keeps doing so after its slot is reused for a new shape.
func StaleHandle[H comparable](t *testing.T, in ir.Interner[H], rel ir.Releaser[H]) {
	old, err := ir.InternVar(in, 7)
	require.NoError(t, err)

	require.NoError(t, ir.ReleaseTy(rel, old))

	_, err = old.Data(in)
	require.ErrorIs(t, err, ir.ErrStaleHandle)

	// Reoccupy the freed slot; the old handle must stay dead rather than
	// resolve to the new occupant.
	fresh, err := ir.InternVar(in, 8)
	require.NoError(t, err)
	require.False(t, old.Equal(fresh))

	_, err = old.Data(in)
	require.ErrorIs(t, err, ir.ErrStaleHandle)

	fd, err := fresh.Data(in)
	require.NoError(t, err)
	require.Equal(t, 8, fd.Index)
}

// CrossInstance checks that a handle minted by one instance is rejected by
// another instance of the same backend.
func CrossInstance[H comparable](t *testing.T, minter, other ir.Interner[H]) {
	ty, err := ir.InternVar(minter, 5)
	require.NoError(t, err)

	_, err = ty.Data(other)
	require.Error(t, err)
	require.True(t, errors.Is(err, ir.ErrForeignHandle) || errors.Is(err, ir.ErrStaleHandle),
		"cross-instance resolve must fail deterministically, got %v", err)

	_, err = ty.Data(minter)
	require.NoError(t, err)
}

func mustVar[H comparable](t *testing.T, in ir.Interner[H], index int) ir.Ty[H] {
	t.Helper()
	ty, err := ir.InternVar(in, index)
	require.NoError(t, err)
	return ty
}
