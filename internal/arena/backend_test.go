package arena

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/amber/pkg/ir"
	"github.com/mesh-intelligence/amber/pkg/ir/irtest"
)

func TestConformance(t *testing.T) {
	irtest.Suite(t, func() ir.Interner[Handle] { return New() }, true)
}

func TestStaleHandle(t *testing.T) {
	a := New()
	irtest.StaleHandle[Handle](t, a, a)
}

func TestCrossInstance(t *testing.T) {
	irtest.CrossInstance[Handle](t, New(), New())
}

func TestZeroHandleRejected(t *testing.T) {
	a := New()
	_, err := a.TypeData(Handle{})
	require.ErrorIs(t, err, ir.ErrForeignHandle)
}

func TestKindMismatch(t *testing.T) {
	a := New()

	h, err := a.InternType(ir.TypeShape[Handle]{Kind: ir.TypeVar, Index: 1})
	require.NoError(t, err)

	_, err = a.GoalData(h)
	require.ErrorIs(t, err, ir.ErrWrongKind)
	require.ErrorIs(t, a.ReleaseType(Handle{instance: a.id, kind: kindGoal, slot: h.slot, gen: h.gen}), ir.ErrWrongKind)
}

func TestDedupAcrossKinds(t *testing.T) {
	a := New()

	// Same canonical handle from repeated interning.
	s := ir.TypeShape[Handle]{Kind: ir.TypeApply, Name: "Unit"}
	h1, err := a.InternType(s)
	require.NoError(t, err)
	h2, err := a.InternType(s)
	require.NoError(t, err)
	require.Equal(t, h1, h2)

	// Substitutions dedup through the structural-key path.
	sub := ir.SubstShape[Handle]{Params: []ir.Param[Handle]{{Kind: ir.ParamTy, Value: h1}}}
	sh1, err := a.InternSubst(sub)
	require.NoError(t, err)
	sh2, err := a.InternSubst(sub)
	require.NoError(t, err)
	require.Equal(t, sh1, sh2)

	// Goal lists too.
	g, err := a.InternGoal(ir.GoalShape[Handle]{Kind: ir.GoalCannotProve})
	require.NoError(t, err)
	gl1, err := a.InternGoals(ir.GoalsShape[Handle]{Goals: []Handle{g, g}})
	require.NoError(t, err)
	gl2, err := a.InternGoals(ir.GoalsShape[Handle]{Goals: []Handle{g, g}})
	require.NoError(t, err)
	require.Equal(t, gl1, gl2)

	// A different list gets a different handle.
	gl3, err := a.InternGoals(ir.GoalsShape[Handle]{Goals: []Handle{g}})
	require.NoError(t, err)
	require.NotEqual(t, gl1, gl3)
}

func TestReleaseReinternMintsNewHandle(t *testing.T) {
	a := New()

	s := ir.TypeShape[Handle]{Kind: ir.TypeVar, Index: 42}
	h1, err := a.InternType(s)
	require.NoError(t, err)
	require.NoError(t, a.ReleaseType(h1))

	// After release the shape left the canonical map; interning it again
	// must mint a live handle distinct from the stale one.
	h2, err := a.InternType(s)
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)

	_, err = a.TypeData(h1)
	require.ErrorIs(t, err, ir.ErrStaleHandle)

	d, err := a.TypeData(h2)
	require.NoError(t, err)
	require.Equal(t, s, d)
}

func TestLen(t *testing.T) {
	a := New()

	ty, err := a.InternType(ir.TypeShape[Handle]{Kind: ir.TypeVar})
	require.NoError(t, err)
	_, err = a.InternLifetime(ir.LifetimeShape[Handle]{Kind: ir.LifetimeStatic})
	require.NoError(t, err)

	types, lifetimes, _, _, _ := a.Len()
	require.Equal(t, 1, types)
	require.Equal(t, 1, lifetimes)

	require.NoError(t, a.ReleaseType(ty))
	types, _, _, _, _ = a.Len()
	require.Equal(t, 0, types)
}

func TestConcurrentInternAndResolve(t *testing.T) {
	a := New()

	base, err := a.InternType(ir.TypeShape[Handle]{Kind: ir.TypeVar, Index: 0})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if _, err := a.InternType(ir.TypeShape[Handle]{Kind: ir.TypeVar, Index: i}); err != nil {
					t.Error(err)
					return
				}
				if _, err := a.TypeData(base); err != nil {
					t.Error(err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	// Every worker interned the same 200 shapes (base among them); dedup
	// must have collapsed them to exactly 200 live types.
	types, _, _, _, _ := a.Len()
	require.Equal(t, 200, types)
}
