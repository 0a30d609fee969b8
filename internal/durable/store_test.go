package durable

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/amber/pkg/ir"
	"github.com/mesh-intelligence/amber/pkg/ir/irtest"
)

func openStore(t *testing.T, dir string) *Store {
	t.Helper()
	s, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestConformance(t *testing.T) {
	irtest.Suite(t, func() ir.Interner[Handle] {
		return openStore(t, filepath.Join(t.TempDir(), "store"))
	}, true)
}

func TestCrossStore(t *testing.T) {
	a := openStore(t, t.TempDir())
	b := openStore(t, t.TempDir())
	irtest.CrossInstance[Handle](t, a, b)
}

func TestReopenPreservesHandles(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)

	leaf, err := s.InternType(ir.TypeShape[Handle]{Kind: ir.TypeVar, Index: 42})
	require.NoError(t, err)
	row := leaf.Row()
	require.NoError(t, s.Close())

	// A reopened store carries the same identity, so a serialized row id
	// rebinds to a handle that resolves to the original shape.
	s2 := openStore(t, dir)
	h := s2.HandleForRow(row)
	d, err := s2.TypeData(h)
	require.NoError(t, err)
	require.Equal(t, ir.TypeVar, d.Kind)
	require.Equal(t, 42, d.Index)

	// Interning the same shape again dedups against the persisted row.
	again, err := s2.InternType(ir.TypeShape[Handle]{Kind: ir.TypeVar, Index: 42})
	require.NoError(t, err)
	require.Equal(t, row, again.Row())
}

func TestUnknownRowIsStale(t *testing.T) {
	s := openStore(t, t.TempDir())
	_, err := s.TypeData(s.HandleForRow(9999))
	require.ErrorIs(t, err, ir.ErrStaleHandle)
}

func TestKindMismatch(t *testing.T) {
	s := openStore(t, t.TempDir())

	h, err := s.InternLifetime(ir.LifetimeShape[Handle]{Kind: ir.LifetimeStatic})
	require.NoError(t, err)

	_, err = s.TypeData(h)
	require.ErrorIs(t, err, ir.ErrWrongKind)
}

func TestForeignSubhandleRejectedAtIntern(t *testing.T) {
	a := openStore(t, t.TempDir())
	b := openStore(t, t.TempDir())

	leaf, err := a.InternType(ir.TypeShape[Handle]{Kind: ir.TypeVar, Index: 0})
	require.NoError(t, err)

	// Shapes referencing another store's handles must be rejected before
	// anything is written.
	_, err = b.InternSubst(ir.SubstShape[Handle]{Params: []ir.Param[Handle]{{Kind: ir.ParamTy, Value: leaf}}})
	require.ErrorIs(t, err, ir.ErrForeignHandle)
}

func TestStats(t *testing.T) {
	s := openStore(t, t.TempDir())

	_, err := s.InternType(ir.TypeShape[Handle]{Kind: ir.TypeVar, Index: 1})
	require.NoError(t, err)
	_, err = s.InternType(ir.TypeShape[Handle]{Kind: ir.TypeVar, Index: 2})
	require.NoError(t, err)
	_, err = s.InternLifetime(ir.LifetimeShape[Handle]{Kind: ir.LifetimeStatic})
	require.NoError(t, err)

	st, err := s.Stats()
	require.NoError(t, err)
	require.Equal(t, 2, st.Types)
	require.Equal(t, 1, st.Lifetimes)
	require.Equal(t, 3, st.Total)
}
