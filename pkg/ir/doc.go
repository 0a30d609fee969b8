// Package ir defines the logical shapes of the engine's recursive entities
// (types, lifetimes, goals, substitutions), the opaque handle wrappers that
// reference them, and the Interner capability interface that storage backends
// implement.
//
// A shape never contains another shape by value: every recursive position is
// an opaque handle minted by an interner. This keeps shapes at a fixed,
// statically known size no matter how deep the entity tree is, and it is what
// lets one set of solver algorithms run unchanged on top of heap-boxed nodes,
// a deduplicating arena, or a persistent store.
//
// Resolve is contextful: looking up a handle's shape goes through the
// interner value that minted it. This permits compact generational indices
// and serializable ids as handle representations; the price is that consumer
// code threads an Interner through its call sites. Handles carry an instance
// tag, so resolving a handle against the wrong interner fails with
// ErrForeignHandle instead of silently returning unrelated data.
//
// Consumers hold the wrapper types (Ty, Lifetime, Goal, Subst, Goals) and
// construct entities with the Intern* builders. Shape structs expose their
// raw handle fields so that backends can store and key them; solver code
// should descend through the kind-typed accessors instead.
package ir
