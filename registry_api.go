package enrs

// Emplace attaches a new component of type T to e and returns a pointer
// to the stored value. It fails with ErrInvalidEntity for a stale entity,
// ErrComponentExists if e already has a T, and ErrBorrowConflict if the
// pool (or a group-owned pool it would reorder) is currently lent out.
//
// Construct hooks registered via OnConstruct fire synchronously before
// Emplace returns.
func Emplace[T any](r *Registry, e Entity, value T) (*T, error) {
	if !r.alloc.valid(e) {
		return nil, ErrInvalidEntity
	}
	p := poolOf[T](r)
	release, err := r.acquireScope(p)
	if err != nil {
		return nil, err
	}
	defer release()
	ptr, err := p.insert(e, value)
	if err != nil {
		return nil, err
	}
	r.masks[e.ID].set(p.id)
	return ptr, nil
}

// Replace overwrites e's existing component of type T and returns a
// pointer to the stored value. Unlike Emplace it requires the component
// to be present (ErrComponentMissing otherwise) and never changes dense
// order. Update hooks fire synchronously.
func Replace[T any](r *Registry, e Entity, value T) (*T, error) {
	if !r.alloc.valid(e) {
		return nil, ErrInvalidEntity
	}
	p := poolOf[T](r)
	bs := newBorrowSet([]storage{p}, nil)
	release, err := bs.acquire()
	if err != nil {
		return nil, err
	}
	defer release()
	return p.replace(e, value)
}

// Remove detaches e's component of type T and returns the removed value.
// Calling it again for the same entity yields ErrComponentMissing.
// Destroy hooks fire synchronously before the value is removed.
func Remove[T any](r *Registry, e Entity) (T, error) {
	var zero T
	if !r.alloc.valid(e) {
		return zero, ErrInvalidEntity
	}
	p := poolOf[T](r)
	release, err := r.acquireScope(p)
	if err != nil {
		return zero, err
	}
	defer release()
	value, err := p.remove(e)
	if err != nil {
		return zero, err
	}
	r.masks[e.ID].unset(p.id)
	return value, nil
}

// Get returns a pointer to e's component of type T, or nil if e is stale
// or has no T. The pointer is valid until the next structural mutation of
// the pool; mutate through it freely while holding it.
func Get[T any](r *Registry, e Entity) *T {
	if !r.alloc.valid(e) {
		return nil
	}
	return poolOf[T](r).Get(e)
}

// Has reports whether live entity e has a component of type T.
func Has[T any](r *Registry, e Entity) bool {
	if !r.alloc.valid(e) {
		return false
	}
	return poolOf[T](r).ContainsEntity(e)
}

// PoolFor returns the read-only pool handle for T, creating it on first
// use.
func PoolFor[T any](r *Registry) *Pool[T] {
	return poolOf[T](r)
}
