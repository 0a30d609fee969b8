package ir

import (
	"hash/maphash"
	"testing"
)

func TestSubstKey(t *testing.T) {
	seed := maphash.MakeSeed()

	a := SubstShape[int]{Params: []Param[int]{{Kind: ParamTy, Value: 1}, {Kind: ParamLifetime, Value: 2}}}
	b := SubstShape[int]{Params: []Param[int]{{Kind: ParamTy, Value: 1}, {Kind: ParamLifetime, Value: 2}}}

	if SubstKey(seed, a) != SubstKey(seed, b) {
		t.Fatal("equal substitutions must produce equal keys")
	}

	t.Run("kind changes key", func(t *testing.T) {
		c := SubstShape[int]{Params: []Param[int]{{Kind: ParamLifetime, Value: 1}, {Kind: ParamLifetime, Value: 2}}}
		if SubstKey(seed, a) == SubstKey(seed, c) {
			t.Fatal("parameter kind must feed the key")
		}
	})

	t.Run("order changes key", func(t *testing.T) {
		c := SubstShape[int]{Params: []Param[int]{{Kind: ParamLifetime, Value: 2}, {Kind: ParamTy, Value: 1}}}
		if SubstKey(seed, a) == SubstKey(seed, c) {
			t.Fatal("parameter order must feed the key")
		}
	})
}

func TestGoalsKey(t *testing.T) {
	seed := maphash.MakeSeed()

	a := GoalsShape[int]{Goals: []int{1, 2, 3}}
	b := GoalsShape[int]{Goals: []int{1, 2, 3}}
	if GoalsKey(seed, a) != GoalsKey(seed, b) {
		t.Fatal("equal goal lists must produce equal keys")
	}

	c := GoalsShape[int]{Goals: []int{1, 2}}
	if GoalsKey(seed, a) == GoalsKey(seed, c) {
		t.Fatal("length must feed the key")
	}
}

func TestSubstEqual(t *testing.T) {
	a := SubstShape[int]{Params: []Param[int]{{Kind: ParamTy, Value: 1}}}
	b := SubstShape[int]{Params: []Param[int]{{Kind: ParamTy, Value: 1}}}
	if !SubstEqual(a, b) {
		t.Fatal("expected equal")
	}
	if SubstEqual(a, SubstShape[int]{}) {
		t.Fatal("expected unequal lengths to differ")
	}
	if SubstEqual(a, SubstShape[int]{Params: []Param[int]{{Kind: ParamLifetime, Value: 1}}}) {
		t.Fatal("expected differing kinds to differ")
	}
}

func TestGoalsEqual(t *testing.T) {
	a := GoalsShape[int]{Goals: []int{4, 5}}
	if !GoalsEqual(a, GoalsShape[int]{Goals: []int{4, 5}}) {
		t.Fatal("expected equal")
	}
	if GoalsEqual(a, GoalsShape[int]{Goals: []int{5, 4}}) {
		t.Fatal("expected order to matter")
	}
}

func TestKindStrings(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{TypeVar.String(), "var"},
		{TypeApply.String(), "apply"},
		{TypeRef.String(), "ref"},
		{TypeAlias.String(), "alias"},
		{LifetimeStatic.String(), "static"},
		{GoalAll.String(), "all"},
		{GoalCannotProve.String(), "cannot-prove"},
		{TypeKind(99).String(), "TypeKind(99)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Fatalf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestParamAccessors(t *testing.T) {
	p := Param[int]{Kind: ParamTy, Value: 7}
	if _, ok := p.Lifetime(); ok {
		t.Fatal("type parameter must not read as lifetime")
	}
	ty, ok := p.Ty()
	if !ok {
		t.Fatal("expected type parameter")
	}
	if ty != (Ty[int]{handle: 7}) {
		t.Fatal("accessor must carry the handle through")
	}
}
