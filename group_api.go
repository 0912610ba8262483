package enrs

// Group iterates entities matching a persistently maintained component
// set with no per-entity probing: matching entities are kept contiguous
// in positions [0, Len) of every owned pool, in identical relative order,
// so iteration is a direct slice walk. The trade is maintenance cost on
// every structural mutation of a member pool.
//
// Group owns the pool for T (reorders it permanently); additional
// membership constraints that should not be reordered are passed as
// observed component ids. A pool can be owned by at most one group for
// the Registry's lifetime; re-requesting the same set returns a handle to
// the same underlying group state.
type Group[T any] struct {
	reg *Registry
	p   *Pool[T]
	g   *group
	idx int
}

// NewGroup declares (or fetches) the group owning T's pool, optionally
// gated by observed component types. Fails with
// ErrConflictingGroupOwnership if another group already owns T's pool.
func NewGroup[T any](r *Registry, observed ...ComponentID) (*Group[T], error) {
	p := poolOf[T](r)
	g, err := r.groupFor([]ComponentID{p.id}, observed)
	if err != nil {
		return nil, err
	}
	return &Group[T]{reg: r, p: p, g: g, idx: -1}, nil
}

// Len returns the number of entities currently in the group.
func (gr *Group[T]) Len() int { return gr.g.length }

// Contains reports whether e is currently inside the group.
func (gr *Group[T]) Contains(e Entity) bool { return gr.g.containsEntity(e) }

// Reset rewinds the iterator.
func (gr *Group[T]) Reset() { gr.idx = -1 }

// Next advances to the next group member.
func (gr *Group[T]) Next() bool {
	gr.idx++
	return gr.idx < gr.g.length
}

// Entity returns the current entity. Only valid after Next returned true.
func (gr *Group[T]) Entity() Entity { return gr.g.EntityAt(gr.idx) }

// Get returns the current entity's component, by direct dense index.
func (gr *Group[T]) Get() *T { return gr.p.At(gr.idx) }

// Each applies fn to every group member in prefix order, holding
// exclusive borrows on owned pools and shared borrows on observed pools
// for the duration of the call.
func (gr *Group[T]) Each(fn func(Entity, *T)) error {
	bs := newBorrowSet(gr.g.owned, gr.g.observed)
	release, err := bs.acquire()
	if err != nil {
		return err
	}
	defer release()
	for i := 0; i < gr.g.length; i++ {
		fn(gr.g.EntityAt(i), gr.p.At(i))
	}
	return nil
}

// Group2 is a group owning the pools of both T1 and T2.
type Group2[T1, T2 any] struct {
	reg *Registry
	p1  *Pool[T1]
	p2  *Pool[T2]
	g   *group
	idx int
}

// NewGroup2 declares (or fetches) the group owning the pools of T1 and
// T2, optionally gated by observed component types.
func NewGroup2[T1, T2 any](r *Registry, observed ...ComponentID) (*Group2[T1, T2], error) {
	p1, p2 := poolOf[T1](r), poolOf[T2](r)
	if p1.id == p2.id {
		panic("ecs: duplicate component types in Group2")
	}
	g, err := r.groupFor([]ComponentID{p1.id, p2.id}, observed)
	if err != nil {
		return nil, err
	}
	return &Group2[T1, T2]{reg: r, p1: p1, p2: p2, g: g, idx: -1}, nil
}

// Len returns the number of entities currently in the group.
func (gr *Group2[T1, T2]) Len() int { return gr.g.length }

// Contains reports whether e is currently inside the group.
func (gr *Group2[T1, T2]) Contains(e Entity) bool { return gr.g.containsEntity(e) }

// Reset rewinds the iterator.
func (gr *Group2[T1, T2]) Reset() { gr.idx = -1 }

// Next advances to the next group member.
func (gr *Group2[T1, T2]) Next() bool {
	gr.idx++
	return gr.idx < gr.g.length
}

// Entity returns the current entity.
func (gr *Group2[T1, T2]) Entity() Entity { return gr.g.EntityAt(gr.idx) }

// Get returns the current entity's components, by direct dense index in
// both owned pools; no membership probe happens.
func (gr *Group2[T1, T2]) Get() (*T1, *T2) {
	return gr.p1.At(gr.idx), gr.p2.At(gr.idx)
}

// Each applies fn to every group member in prefix order.
func (gr *Group2[T1, T2]) Each(fn func(Entity, *T1, *T2)) error {
	bs := newBorrowSet(gr.g.owned, gr.g.observed)
	release, err := bs.acquire()
	if err != nil {
		return err
	}
	defer release()
	for i := 0; i < gr.g.length; i++ {
		fn(gr.g.EntityAt(i), gr.p1.At(i), gr.p2.At(i))
	}
	return nil
}

// Group3 is a group owning the pools of T1, T2 and T3.
type Group3[T1, T2, T3 any] struct {
	reg *Registry
	p1  *Pool[T1]
	p2  *Pool[T2]
	p3  *Pool[T3]
	g   *group
	idx int
}

// NewGroup3 declares (or fetches) the group owning the pools of T1, T2
// and T3, optionally gated by observed component types.
func NewGroup3[T1, T2, T3 any](r *Registry, observed ...ComponentID) (*Group3[T1, T2, T3], error) {
	p1, p2, p3 := poolOf[T1](r), poolOf[T2](r), poolOf[T3](r)
	if p1.id == p2.id || p1.id == p3.id || p2.id == p3.id {
		panic("ecs: duplicate component types in Group3")
	}
	g, err := r.groupFor([]ComponentID{p1.id, p2.id, p3.id}, observed)
	if err != nil {
		return nil, err
	}
	return &Group3[T1, T2, T3]{reg: r, p1: p1, p2: p2, p3: p3, g: g, idx: -1}, nil
}

func (gr *Group3[T1, T2, T3]) Len() int { return gr.g.length }

func (gr *Group3[T1, T2, T3]) Contains(e Entity) bool { return gr.g.containsEntity(e) }

func (gr *Group3[T1, T2, T3]) Reset() { gr.idx = -1 }

func (gr *Group3[T1, T2, T3]) Next() bool {
	gr.idx++
	return gr.idx < gr.g.length
}

func (gr *Group3[T1, T2, T3]) Entity() Entity { return gr.g.EntityAt(gr.idx) }

func (gr *Group3[T1, T2, T3]) Get() (*T1, *T2, *T3) {
	return gr.p1.At(gr.idx), gr.p2.At(gr.idx), gr.p3.At(gr.idx)
}

func (gr *Group3[T1, T2, T3]) Each(fn func(Entity, *T1, *T2, *T3)) error {
	bs := newBorrowSet(gr.g.owned, gr.g.observed)
	release, err := bs.acquire()
	if err != nil {
		return err
	}
	defer release()
	for i := 0; i < gr.g.length; i++ {
		fn(gr.g.EntityAt(i), gr.p1.At(i), gr.p2.At(i), gr.p3.At(i))
	}
	return nil
}
