// Package enrs implements a sparse-set based Entity-Component-System
// storage and query engine.
//
// Features:
// - Generation-checked entity identifiers with LIFO index recycling.
// - One sparse-set pool per component type, max 256 component types.
// - Type-erased pool registry behind a generics-first API.
// - Views: on-demand intersection/exclusion queries driven off the
//   smallest matching pool.
// - Groups: persistently maintained, contiguously ordered queries with
//   branch-free iteration over owned pools.
// - Per-pool borrow tracking (free/shared/exclusive) instead of locks;
//   conflicting borrows fail fast rather than race.
// - Fork-join parallel iteration over disjoint dense ranges.
package enrs

// MaxComponentTypes defines the maximum number of unique component types
// that can be registered in a Registry. This value is fixed at 256.
const MaxComponentTypes = 256

// ComponentID identifies a component type within one Registry. IDs are
// assigned in registration order and are only meaningful for the Registry
// that issued them.
type ComponentID uint8
