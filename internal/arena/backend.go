// Package arena implements the deduplicating interner backend. Entities live
// in per-kind chunked tables addressed by generational index; structurally
// equal shapes intern to the same handle, so handle equality is structural
// equality and the solver's O(1) comparison fast path holds.
//
// Handles are (instance, kind, slot, generation). The instance tag makes
// cross-backend use fail deterministically with ir.ErrForeignHandle, and the
// generation makes use-after-release fail with ir.ErrStaleHandle rather than
// resolving to the slot's new occupant.
//
// One RWMutex per backend serializes interning and releasing; resolves take
// the read lock and may run concurrently with each other. Chunked storage is
// what makes this sound: a concurrent growth never relocates slots already
// handed out.
package arena

import (
	"hash/maphash"
	"sync"
	"sync/atomic"

	"github.com/mesh-intelligence/amber/pkg/ir"
)

// entity kinds carried in a handle.
const (
	kindType uint8 = iota + 1
	kindLifetime
	kindGoal
	kindSubst
	kindGoals
)

// Handle is a generational index into one arena instance. The zero Handle is
// never minted and resolves to an error on every backend.
type Handle struct {
	instance uint32
	kind     uint8
	slot     uint32
	gen      uint32
}

var instances atomic.Uint32

// Interner is the deduplicating arena backend. The zero value is not usable;
// call New.
type Interner struct {
	id   uint32
	seed maphash.Seed

	mu sync.RWMutex

	types     table[ir.TypeShape[Handle]]
	lifetimes table[ir.LifetimeShape[Handle]]
	goals     table[ir.GoalShape[Handle]]
	substs    table[ir.SubstShape[Handle]]
	goalLists table[ir.GoalsShape[Handle]]

	// Canonical maps. The fixed-arity shapes are comparable and key their
	// maps directly; the list shapes bucket on a structural key and verify
	// element-wise. Every sub-handle of an interned shape is itself
	// canonical (this backend dedups every kind), so map hits are exact.
	typeDedup     map[ir.TypeShape[Handle]]Handle
	lifetimeDedup map[ir.LifetimeShape[Handle]]Handle
	goalDedup     map[ir.GoalShape[Handle]]Handle
	substDedup    map[uint64][]Handle
	goalsDedup    map[uint64][]Handle
}

// New creates an arena backend instance.
func New() *Interner {
	return &Interner{
		id:            instances.Add(1),
		seed:          maphash.MakeSeed(),
		typeDedup:     make(map[ir.TypeShape[Handle]]Handle),
		lifetimeDedup: make(map[ir.LifetimeShape[Handle]]Handle),
		goalDedup:     make(map[ir.GoalShape[Handle]]Handle),
		substDedup:    make(map[uint64][]Handle),
		goalsDedup:    make(map[uint64][]Handle),
	}
}

var (
	_ ir.Interner[Handle] = (*Interner)(nil)
	_ ir.Releaser[Handle] = (*Interner)(nil)
)

// check validates instance and kind tags before touching a table.
func (a *Interner) check(h Handle, kind uint8) error {
	if h.instance != a.id {
		return ir.ErrForeignHandle
	}
	if h.kind != kind {
		return ir.ErrWrongKind
	}
	return nil
}

// InternType returns the canonical handle for the shape, minting one if the
// shape has not been seen before.
func (a *Interner) InternType(s ir.TypeShape[Handle]) (Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if h, ok := a.typeDedup[s]; ok {
		return h, nil
	}
	idx, gen, err := a.types.alloc(s)
	if err != nil {
		return Handle{}, err
	}
	h := Handle{instance: a.id, kind: kindType, slot: idx, gen: gen}
	a.typeDedup[s] = h
	return h, nil
}

// TypeData returns the shape stored under a type handle.
func (a *Interner) TypeData(h Handle) (ir.TypeShape[Handle], error) {
	if err := a.check(h, kindType); err != nil {
		return ir.TypeShape[Handle]{}, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.types.get(h.slot, h.gen)
}

// InternLifetime returns the canonical handle for the shape.
func (a *Interner) InternLifetime(s ir.LifetimeShape[Handle]) (Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if h, ok := a.lifetimeDedup[s]; ok {
		return h, nil
	}
	idx, gen, err := a.lifetimes.alloc(s)
	if err != nil {
		return Handle{}, err
	}
	h := Handle{instance: a.id, kind: kindLifetime, slot: idx, gen: gen}
	a.lifetimeDedup[s] = h
	return h, nil
}

// LifetimeData returns the shape stored under a lifetime handle.
func (a *Interner) LifetimeData(h Handle) (ir.LifetimeShape[Handle], error) {
	if err := a.check(h, kindLifetime); err != nil {
		return ir.LifetimeShape[Handle]{}, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lifetimes.get(h.slot, h.gen)
}

// InternGoal returns the canonical handle for the shape.
func (a *Interner) InternGoal(s ir.GoalShape[Handle]) (Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if h, ok := a.goalDedup[s]; ok {
		return h, nil
	}
	idx, gen, err := a.goals.alloc(s)
	if err != nil {
		return Handle{}, err
	}
	h := Handle{instance: a.id, kind: kindGoal, slot: idx, gen: gen}
	a.goalDedup[s] = h
	return h, nil
}

// GoalData returns the shape stored under a goal handle.
func (a *Interner) GoalData(h Handle) (ir.GoalShape[Handle], error) {
	if err := a.check(h, kindGoal); err != nil {
		return ir.GoalShape[Handle]{}, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.goals.get(h.slot, h.gen)
}

// InternSubst returns the canonical handle for the substitution. Lookups go
// through a structural-key bucket and verify element-wise, so hash collisions
// cannot alias distinct substitutions.
func (a *Interner) InternSubst(s ir.SubstShape[Handle]) (Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := ir.SubstKey(a.seed, s)
	for _, h := range a.substDedup[key] {
		stored, err := a.substs.get(h.slot, h.gen)
		if err != nil {
			return Handle{}, err
		}
		if ir.SubstEqual(stored, s) {
			return h, nil
		}
	}

	params := make([]ir.Param[Handle], len(s.Params))
	copy(params, s.Params)
	idx, gen, err := a.substs.alloc(ir.SubstShape[Handle]{Params: params})
	if err != nil {
		return Handle{}, err
	}
	h := Handle{instance: a.id, kind: kindSubst, slot: idx, gen: gen}
	a.substDedup[key] = append(a.substDedup[key], h)
	return h, nil
}

// SubstData returns the shape stored under a substitution handle.
func (a *Interner) SubstData(h Handle) (ir.SubstShape[Handle], error) {
	if err := a.check(h, kindSubst); err != nil {
		return ir.SubstShape[Handle]{}, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.substs.get(h.slot, h.gen)
}

// InternGoals returns the canonical handle for the goal list.
func (a *Interner) InternGoals(s ir.GoalsShape[Handle]) (Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := ir.GoalsKey(a.seed, s)
	for _, h := range a.goalsDedup[key] {
		stored, err := a.goalLists.get(h.slot, h.gen)
		if err != nil {
			return Handle{}, err
		}
		if ir.GoalsEqual(stored, s) {
			return h, nil
		}
	}

	goals := make([]Handle, len(s.Goals))
	copy(goals, s.Goals)
	idx, gen, err := a.goalLists.alloc(ir.GoalsShape[Handle]{Goals: goals})
	if err != nil {
		return Handle{}, err
	}
	h := Handle{instance: a.id, kind: kindGoals, slot: idx, gen: gen}
	a.goalsDedup[key] = append(a.goalsDedup[key], h)
	return h, nil
}

// GoalsData returns the shape stored under a goal-list handle.
func (a *Interner) GoalsData(h Handle) (ir.GoalsShape[Handle], error) {
	if err := a.check(h, kindGoals); err != nil {
		return ir.GoalsShape[Handle]{}, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.goalLists.get(h.slot, h.gen)
}

// ReleaseType frees the slot behind a type handle. The shape leaves the
// canonical map, the slot generation is bumped, and the slot is recycled;
// every outstanding handle to the released type resolves to ErrStaleHandle
// from here on, including after the slot is reused.
//
// Releasing a type that other interned shapes still reference leaves those
// references dangling; callers own that invariant, the backend only
// guarantees the dangle is detected at resolve time.
func (a *Interner) ReleaseType(h Handle) error {
	if err := a.check(h, kindType); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.types.release(h.slot, h.gen)
	if err != nil {
		return err
	}
	delete(a.typeDedup, s)
	return nil
}

// Len reports live entity counts per kind, in intern order of the kinds.
func (a *Interner) Len() (types, lifetimes, goals, substs, goalLists int) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.types.len(), a.lifetimes.len(), a.goals.len(), a.substs.len(), a.goalLists.len()
}
