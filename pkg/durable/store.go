// Package durable provides the public API for the persistent SQLite-backed
// interner, exposing the factory while keeping the implementation internal.
//
// Example:
//
//	store, err := durable.Open(".amber-store")
//	if err != nil { ... }
//	defer store.Close()
package durable

import (
	"github.com/mesh-intelligence/amber/internal/durable"
	"github.com/mesh-intelligence/amber/pkg/ir"
)

// Handle is the durable backend's handle: (store identity, rowid). Row ids
// are stable across runs of the same store.
type Handle = durable.Handle

// Store is the concrete persistent interner.
type Store = durable.Store

// Stats reports entity counts by kind.
type Stats = durable.Stats

// Open opens or creates the store under dir.
func Open(dir string) (*Store, error) {
	return durable.Open(dir)
}

var _ ir.Interner[Handle] = (*Store)(nil)
