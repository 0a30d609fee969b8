// Package boxed implements the owning interner backend: every intern copies
// the shape into a fresh heap node owned by the backend instance, and the
// handle is the node pointer itself. There is no canonicalization, so
// structurally equal shapes intern to distinct handles, and no table to
// clean up: a node lives exactly as long as handles to it do.
//
// Resolve is a pointer dereference plus an ownership check. Nodes record the
// instance that allocated them, so a handle fed to the wrong backend fails
// with ir.ErrForeignHandle instead of resolving to foreign data. The backend
// has no mutable state after construction; interning and resolving are safe
// from any number of goroutines without locking.
//
// This backend is the reference implementation for correctness testing; the
// arena backend is the one meant for solver workloads.
package boxed

import (
	"sync/atomic"

	"github.com/mesh-intelligence/amber/pkg/ir"
)

// entity kinds stored in a node.
type nodeKind uint8

const (
	kindType nodeKind = iota + 1
	kindLifetime
	kindGoal
	kindSubst
	kindGoals
)

// Node is one interned entity. The pointer to it is the handle.
type Node struct {
	owner *Interner
	kind  nodeKind
	data  any
}

// instances hands out a distinct id per backend, so two Interner values are
// never mistaken for each other even if a future refactor empties the struct.
var instances atomic.Uint64

// Interner is the owning backend. The zero value is not usable; call New.
type Interner struct {
	id uint64
}

// New creates an owning backend instance.
func New() *Interner {
	return &Interner{id: instances.Add(1)}
}

var _ ir.Interner[*Node] = (*Interner)(nil)

func (b *Interner) newNode(kind nodeKind, data any) *Node {
	return &Node{owner: b, kind: kind, data: data}
}

// check validates ownership and entity kind before dereferencing.
func (b *Interner) check(h *Node, kind nodeKind) error {
	if h == nil || h.owner != b {
		return ir.ErrForeignHandle
	}
	if h.kind != kind {
		return ir.ErrWrongKind
	}
	return nil
}

// InternType copies the shape into a fresh node and returns its pointer.
func (b *Interner) InternType(s ir.TypeShape[*Node]) (*Node, error) {
	return b.newNode(kindType, s), nil
}

// TypeData dereferences a type handle.
func (b *Interner) TypeData(h *Node) (ir.TypeShape[*Node], error) {
	if err := b.check(h, kindType); err != nil {
		return ir.TypeShape[*Node]{}, err
	}
	return h.data.(ir.TypeShape[*Node]), nil
}

// InternLifetime copies the shape into a fresh node and returns its pointer.
func (b *Interner) InternLifetime(s ir.LifetimeShape[*Node]) (*Node, error) {
	return b.newNode(kindLifetime, s), nil
}

// LifetimeData dereferences a lifetime handle.
func (b *Interner) LifetimeData(h *Node) (ir.LifetimeShape[*Node], error) {
	if err := b.check(h, kindLifetime); err != nil {
		return ir.LifetimeShape[*Node]{}, err
	}
	return h.data.(ir.LifetimeShape[*Node]), nil
}

// InternGoal copies the shape into a fresh node and returns its pointer.
func (b *Interner) InternGoal(s ir.GoalShape[*Node]) (*Node, error) {
	return b.newNode(kindGoal, s), nil
}

// GoalData dereferences a goal handle.
func (b *Interner) GoalData(h *Node) (ir.GoalShape[*Node], error) {
	if err := b.check(h, kindGoal); err != nil {
		return ir.GoalShape[*Node]{}, err
	}
	return h.data.(ir.GoalShape[*Node]), nil
}

// InternSubst copies the shape into a fresh node and returns its pointer.
// The param slice is copied so later caller mutations cannot reach the node.
func (b *Interner) InternSubst(s ir.SubstShape[*Node]) (*Node, error) {
	params := make([]ir.Param[*Node], len(s.Params))
	copy(params, s.Params)
	return b.newNode(kindSubst, ir.SubstShape[*Node]{Params: params}), nil
}

// SubstData dereferences a substitution handle.
func (b *Interner) SubstData(h *Node) (ir.SubstShape[*Node], error) {
	if err := b.check(h, kindSubst); err != nil {
		return ir.SubstShape[*Node]{}, err
	}
	return h.data.(ir.SubstShape[*Node]), nil
}

// InternGoals copies the shape into a fresh node and returns its pointer.
func (b *Interner) InternGoals(s ir.GoalsShape[*Node]) (*Node, error) {
	goals := make([]*Node, len(s.Goals))
	copy(goals, s.Goals)
	return b.newNode(kindGoals, ir.GoalsShape[*Node]{Goals: goals}), nil
}

// GoalsData dereferences a goal-list handle.
func (b *Interner) GoalsData(h *Node) (ir.GoalsShape[*Node], error) {
	if err := b.check(h, kindGoals); err != nil {
		return ir.GoalsShape[*Node]{}, err
	}
	return h.data.(ir.GoalsShape[*Node]), nil
}
