package solve_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/amber/pkg/boxed"
	"github.com/mesh-intelligence/amber/pkg/ir"
	"github.com/mesh-intelligence/amber/pkg/solve"
)

// traitTable is a test TraitInfo backed by name sets.
type traitTable struct {
	auto        map[string]bool
	coinductive map[string]bool
}

func (t traitTable) IsAutoTrait(name string) bool        { return t.auto[name] }
func (t traitTable) IsCoinductiveTrait(name string) bool { return t.coinductive[name] }

func TestIsCoinductive(t *testing.T) {
	in := boxed.New()
	info := traitTable{
		auto:        map[string]bool{"Send": true},
		coinductive: map[string]bool{"Outlives": true},
	}

	ty, err := ir.InternVar(in, 0)
	require.NoError(t, err)

	goal := func(name string) ir.Goal[boxed.Handle] {
		t.Helper()
		g, err := ir.InternTraitGoal(in, name, ir.TyArg(ty))
		require.NoError(t, err)
		return g
	}

	tests := []struct {
		name string
		goal func() ir.Goal[boxed.Handle]
		want bool
	}{
		{"auto trait", func() ir.Goal[boxed.Handle] { return goal("Send") }, true},
		{"declared coinductive trait", func() ir.Goal[boxed.Handle] { return goal("Outlives") }, true},
		{"plain trait", func() ir.Goal[boxed.Handle] { return goal("Clone") }, false},
		{"conjunction", func() ir.Goal[boxed.Handle] {
			g, err := ir.InternAllGoal(in, goal("Clone"), goal("Send"))
			require.NoError(t, err)
			return g
		}, true},
		{"negation", func() ir.Goal[boxed.Handle] {
			g, err := ir.InternNotGoal(in, goal("Send"))
			require.NoError(t, err)
			return g
		}, false},
		{"unification", func() ir.Goal[boxed.Handle] {
			g, err := ir.InternEqGoal(in, ty, ty)
			require.NoError(t, err)
			return g
		}, false},
		{"cannot prove", func() ir.Goal[boxed.Handle] {
			g, err := ir.InternCannotProve(in)
			require.NoError(t, err)
			return g
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := solve.IsCoinductive(in, info, tt.goal())
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
