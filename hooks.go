package enrs

// Component lifecycle hooks. Callbacks are typed, fire synchronously on
// the mutating goroutine at the moment the event happens, and run in
// registration order. The engine never depends on what a hook does; they
// exist so external systems can react to storage changes without polling.
//
// Hooks must not structurally mutate the pool that is firing them: the
// mutation scope is already borrowed exclusively at that point, so an
// Emplace or Remove from inside a hook fails with ErrBorrowConflict.

// OnConstruct registers fn to be called whenever a component of type T is
// inserted, after the value is stored.
func OnConstruct[T any](r *Registry, fn func(Entity, *T)) {
	p := poolOf[T](r)
	p.constructFns = append(p.constructFns, fn)
}

// OnUpdate registers fn to be called whenever a component of type T is
// overwritten via Replace, after the new value is stored.
func OnUpdate[T any](r *Registry, fn func(Entity, *T)) {
	p := poolOf[T](r)
	p.updateFns = append(p.updateFns, fn)
}

// OnDestroy registers fn to be called whenever a component of type T is
// removed, either directly or through entity destruction, while the value
// is still readable.
func OnDestroy[T any](r *Registry, fn func(Entity, *T)) {
	p := poolOf[T](r)
	p.destroyFns = append(p.destroyFns, fn)
}
