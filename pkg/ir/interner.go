package ir

import "errors"

// Interner is the capability seam between shapes and their storage. A
// backend owns the handle-to-shape mapping for one instance; handles are
// meaningful only to the instance that minted them.
//
// Intern* accepts a fully formed shape whose recursive positions are handles
// previously minted by the same instance, and returns a handle for it. The
// only failure mode is resource exhaustion (table space, store I/O), which
// hosts should treat as fatal rather than retry.
//
// *Data returns the shape previously interned under the handle. It never
// mutates backend state, runs in O(1) for the in-memory backends, and must
// not be retried on ErrStaleHandle or ErrForeignHandle: both indicate a
// contract violation in the caller.
//
// Returned shapes share backing storage with the interner and must be
// treated as read-only.
type Interner[H comparable] interface {
	InternType(TypeShape[H]) (H, error)
	TypeData(H) (TypeShape[H], error)

	InternLifetime(LifetimeShape[H]) (H, error)
	LifetimeData(H) (LifetimeShape[H], error)

	InternGoal(GoalShape[H]) (H, error)
	GoalData(H) (GoalShape[H], error)

	InternSubst(SubstShape[H]) (H, error)
	SubstData(H) (SubstShape[H], error)

	InternGoals(GoalsShape[H]) (H, error)
	GoalsData(H) (GoalsShape[H], error)
}

// Releaser is the optional removal extension. Backends that support it free
// the slot behind a handle; later resolves of that handle fail with
// ErrStaleHandle even after the slot is reused for a new shape.
type Releaser[H comparable] interface {
	ReleaseType(H) error
}

// Handle resolution and interning errors shared by all backends.
var (
	// ErrStaleHandle is returned by resolve when the handle's slot was
	// released and possibly reused since the handle was minted.
	ErrStaleHandle = errors.New("stale handle: slot was released")

	// ErrForeignHandle is returned when a handle minted by one interner
	// instance is resolved against another.
	ErrForeignHandle = errors.New("handle belongs to a different interner")

	// ErrWrongKind is returned when a handle is resolved as an entity kind
	// other than the one it was interned as.
	ErrWrongKind = errors.New("handle refers to a different entity kind")

	// ErrExhausted is returned by intern when the backend cannot grow its
	// table. Hosts should treat this as fatal.
	ErrExhausted = errors.New("interner table exhausted")
)
