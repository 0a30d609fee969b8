// Package boxed provides the public API for the owning interner backend,
// exposing the factory while keeping the implementation internal.
//
// Example:
//
//	in := boxed.New()
//	leaf, err := ir.InternVar(in, 42)
package boxed

import (
	"github.com/mesh-intelligence/amber/internal/boxed"
	"github.com/mesh-intelligence/amber/pkg/ir"
)

// Handle is the owning backend's handle representation: the interned node
// itself. Pointer-shaped handles make this the context-light end of the
// resolve spectrum; the interner is still required at resolve sites to keep
// the capability contract uniform across backends.
type Handle = *boxed.Node

// New creates an owning backend instance.
func New() ir.Interner[Handle] {
	return boxed.New()
}
