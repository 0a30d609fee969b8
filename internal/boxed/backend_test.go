package boxed

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/amber/pkg/ir"
	"github.com/mesh-intelligence/amber/pkg/ir/irtest"
)

func TestConformance(t *testing.T) {
	irtest.Suite(t, func() ir.Interner[*Node] { return New() }, false)
}

func TestCrossInstance(t *testing.T) {
	irtest.CrossInstance[*Node](t, New(), New())
}

func TestDistinctHandlesForEqualShapes(t *testing.T) {
	b := New()

	s := ir.TypeShape[*Node]{Kind: ir.TypeVar, Index: 9}
	h1, err := b.InternType(s)
	require.NoError(t, err)
	h2, err := b.InternType(s)
	require.NoError(t, err)

	// No canonicalization: same shape, two allocations.
	require.NotSame(t, h1, h2)

	d1, err := b.TypeData(h1)
	require.NoError(t, err)
	d2, err := b.TypeData(h2)
	require.NoError(t, err)
	require.Equal(t, d1, d2)
}

func TestKindMismatch(t *testing.T) {
	b := New()

	h, err := b.InternType(ir.TypeShape[*Node]{Kind: ir.TypeVar, Index: 1})
	require.NoError(t, err)

	_, err = b.GoalData(h)
	require.ErrorIs(t, err, ir.ErrWrongKind)
	_, err = b.SubstData(h)
	require.ErrorIs(t, err, ir.ErrWrongKind)
}

func TestNilHandleRejected(t *testing.T) {
	b := New()
	_, err := b.TypeData(nil)
	require.ErrorIs(t, err, ir.ErrForeignHandle)
}

func TestSubstSliceIsCopied(t *testing.T) {
	b := New()

	ty, err := b.InternType(ir.TypeShape[*Node]{Kind: ir.TypeVar, Index: 0})
	require.NoError(t, err)

	params := []ir.Param[*Node]{{Kind: ir.ParamTy, Value: ty}}
	h, err := b.InternSubst(ir.SubstShape[*Node]{Params: params})
	require.NoError(t, err)

	// Mutating the caller's slice must not reach the interned node.
	params[0] = ir.Param[*Node]{}

	d, err := b.SubstData(h)
	require.NoError(t, err)
	require.Equal(t, ir.ParamTy, d.Params[0].Kind)
	require.Equal(t, ty, d.Params[0].Value)
}
