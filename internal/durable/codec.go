package durable

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/amber/pkg/ir"
)

// Shapes are stored as canonical JSON with sub-handles reduced to their row
// ids; the store tag is implied by the containing store and re-attached on
// decode. Field order is fixed by the payload structs and none of them holds
// a map, so encoding is deterministic and the payload doubles as the
// structural dedup key.

type typePayload struct {
	Kind     uint8  `json:"k"`
	Index    int    `json:"i,omitempty"`
	Name     string `json:"n,omitempty"`
	Args     int64  `json:"a,omitempty"`
	Lifetime int64  `json:"l,omitempty"`
	Elem     int64  `json:"e,omitempty"`
}

type lifetimePayload struct {
	Kind  uint8 `json:"k"`
	Index int   `json:"i,omitempty"`
}

type goalPayload struct {
	Kind  uint8  `json:"k"`
	Trait string `json:"t,omitempty"`
	Args  int64  `json:"a,omitempty"`
	Goals int64  `json:"g,omitempty"`
	Body  int64  `json:"b,omitempty"`
	A     int64  `json:"x,omitempty"`
	B     int64  `json:"y,omitempty"`
}

type paramPayload struct {
	Kind  uint8 `json:"k"`
	Value int64 `json:"v"`
}

type substPayload struct {
	Params []paramPayload `json:"p"`
}

type goalsPayload struct {
	Goals []int64 `json:"g"`
}

// row extracts the row id of a sub-handle, rejecting handles minted by a
// different store. The zero Handle encodes as row 0, which no entity ever
// occupies (sqlite rowids start at 1), so unset shape fields stay unset.
func (s *Store) row(h Handle) (int64, error) {
	if h == (Handle{}) {
		return 0, nil
	}
	if h.store != s.id {
		return 0, ir.ErrForeignHandle
	}
	return h.row, nil
}

func (s *Store) handle(row int64) Handle {
	if row == 0 {
		return Handle{}
	}
	return Handle{store: s.id, row: row}
}

func (s *Store) encodeType(sh ir.TypeShape[Handle]) (string, error) {
	args, err := s.row(sh.Args)
	if err != nil {
		return "", err
	}
	lt, err := s.row(sh.Lifetime)
	if err != nil {
		return "", err
	}
	elem, err := s.row(sh.Elem)
	if err != nil {
		return "", err
	}
	return marshal(typePayload{
		Kind:     uint8(sh.Kind),
		Index:    sh.Index,
		Name:     sh.Name,
		Args:     args,
		Lifetime: lt,
		Elem:     elem,
	})
}

func (s *Store) decodeType(payload string) (ir.TypeShape[Handle], error) {
	var p typePayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return ir.TypeShape[Handle]{}, fmt.Errorf("decode type payload: %w", err)
	}
	return ir.TypeShape[Handle]{
		Kind:     ir.TypeKind(p.Kind),
		Index:    p.Index,
		Name:     p.Name,
		Args:     s.handle(p.Args),
		Lifetime: s.handle(p.Lifetime),
		Elem:     s.handle(p.Elem),
	}, nil
}

func (s *Store) encodeLifetime(sh ir.LifetimeShape[Handle]) (string, error) {
	return marshal(lifetimePayload{Kind: uint8(sh.Kind), Index: sh.Index})
}

func (s *Store) decodeLifetime(payload string) (ir.LifetimeShape[Handle], error) {
	var p lifetimePayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return ir.LifetimeShape[Handle]{}, fmt.Errorf("decode lifetime payload: %w", err)
	}
	return ir.LifetimeShape[Handle]{Kind: ir.LifetimeKind(p.Kind), Index: p.Index}, nil
}

func (s *Store) encodeGoal(sh ir.GoalShape[Handle]) (string, error) {
	args, err := s.row(sh.Args)
	if err != nil {
		return "", err
	}
	goals, err := s.row(sh.Goals)
	if err != nil {
		return "", err
	}
	body, err := s.row(sh.Body)
	if err != nil {
		return "", err
	}
	a, err := s.row(sh.A)
	if err != nil {
		return "", err
	}
	b, err := s.row(sh.B)
	if err != nil {
		return "", err
	}
	return marshal(goalPayload{
		Kind:  uint8(sh.Kind),
		Trait: sh.Trait,
		Args:  args,
		Goals: goals,
		Body:  body,
		A:     a,
		B:     b,
	})
}

func (s *Store) decodeGoal(payload string) (ir.GoalShape[Handle], error) {
	var p goalPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return ir.GoalShape[Handle]{}, fmt.Errorf("decode goal payload: %w", err)
	}
	return ir.GoalShape[Handle]{
		Kind:  ir.GoalKind(p.Kind),
		Trait: p.Trait,
		Args:  s.handle(p.Args),
		Goals: s.handle(p.Goals),
		Body:  s.handle(p.Body),
		A:     s.handle(p.A),
		B:     s.handle(p.B),
	}, nil
}

func (s *Store) encodeSubst(sh ir.SubstShape[Handle]) (string, error) {
	params := make([]paramPayload, len(sh.Params))
	for i, p := range sh.Params {
		row, err := s.row(p.Value)
		if err != nil {
			return "", err
		}
		params[i] = paramPayload{Kind: uint8(p.Kind), Value: row}
	}
	return marshal(substPayload{Params: params})
}

func (s *Store) decodeSubst(payload string) (ir.SubstShape[Handle], error) {
	var p substPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return ir.SubstShape[Handle]{}, fmt.Errorf("decode subst payload: %w", err)
	}
	params := make([]ir.Param[Handle], len(p.Params))
	for i, pp := range p.Params {
		params[i] = ir.Param[Handle]{Kind: ir.ParamKind(pp.Kind), Value: s.handle(pp.Value)}
	}
	return ir.SubstShape[Handle]{Params: params}, nil
}

func (s *Store) encodeGoals(sh ir.GoalsShape[Handle]) (string, error) {
	rows := make([]int64, len(sh.Goals))
	for i, g := range sh.Goals {
		row, err := s.row(g)
		if err != nil {
			return "", err
		}
		rows[i] = row
	}
	return marshal(goalsPayload{Goals: rows})
}

func (s *Store) decodeGoals(payload string) (ir.GoalsShape[Handle], error) {
	var p goalsPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return ir.GoalsShape[Handle]{}, fmt.Errorf("decode goals payload: %w", err)
	}
	goals := make([]Handle, len(p.Goals))
	for i, row := range p.Goals {
		goals[i] = s.handle(row)
	}
	return ir.GoalsShape[Handle]{Goals: goals}, nil
}

func marshal(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return string(data), nil
}
