// Package arena provides the public API for the deduplicating arena backend,
// exposing the factory while keeping the implementation internal.
//
// Example:
//
//	in := arena.New()
//	leaf, err := ir.InternVar(in, 42)
package arena

import (
	"github.com/mesh-intelligence/amber/internal/arena"
	"github.com/mesh-intelligence/amber/pkg/ir"
)

// Handle is the arena's generational-index handle: (instance, kind, slot,
// generation).
type Handle = arena.Handle

// Interner is the concrete arena type. It satisfies both ir.Interner and
// ir.Releaser; New returns it concretely so callers can reach Release and
// Len without a type assertion.
type Interner = arena.Interner

// New creates an arena backend instance.
func New() *Interner {
	return arena.New()
}

var _ ir.Interner[Handle] = (*Interner)(nil)
