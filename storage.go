package enrs

import "reflect"

// storage is the type-erased handle the Registry and the query layers
// hold on a concrete Pool[T]. It exposes only capability-checked
// operations that do not need the payload type: membership, dense
// bookkeeping, erasure and borrow state. Downcasting back to the typed
// pool happens in poolOf, guarded by the type identity check there.
type storage interface {
	// ComponentType returns the reflect identity of the payload type.
	ComponentType() reflect.Type
	// ID returns the registry-local component id.
	ID() ComponentID
	// Fingerprint returns the registration-order-independent type
	// identity used for canonical borrow ordering.
	Fingerprint() uint64

	// Len returns the number of entities in the pool.
	Len() int
	// ContainsEntity reports whether the pool holds a value for e.
	ContainsEntity(e Entity) bool
	// EntityAt returns the entity at dense position i.
	EntityAt(i int) Entity

	// indexOf returns e's dense position, or -1. Dense positions are not
	// stable across structural mutations.
	indexOf(e Entity) int
	// swapDense exchanges two dense slots and fixes both sparse entries.
	swapDense(i, j int)
	// eraseEntity removes e if present, firing destroy signals and group
	// maintenance. Reports whether anything was removed.
	eraseEntity(e Entity) bool
	// clearAll drops every entry, firing destroy signals.
	clearAll()

	borrow() *borrowFlag
	// mutationScope is the set of pools a structural mutation of this
	// pool may reorder: the pool itself plus the owned pools of every
	// group it participates in, in canonical order.
	mutationScope() []storage

	groupOwner() *group
	setGroupOwner(g *group)
	// joinGroup registers g as a member group (owned or observed) and
	// recomputes the mutation scope.
	joinGroup(g *group)
}
