package enrs

// viewCore implements the arity-independent part of a view: driver
// selection, candidate probing and exclusion. A view holds no persistent
// state worth keeping consistent; resetting it re-selects the driver
// against current pool sizes, so the cost profile adapts as pools grow
// and shrink between queries.
type viewCore struct {
	required []storage
	excluded []storage
	drv      storage
	idx      int
	cur      Entity
}

// reset re-picks the smallest required pool as the iteration driver.
// Walking the smallest candidate set statistically rejects the fewest
// entities. The tie-break between equal-sized pools is unspecified.
func (v *viewCore) reset() {
	v.drv = v.required[0]
	for _, s := range v.required[1:] {
		if s.Len() < v.drv.Len() {
			v.drv = s
		}
	}
	v.idx = -1
}

// matches probes every non-driver required pool and every excluded pool.
func (v *viewCore) matches(e Entity) bool {
	for _, s := range v.required {
		if s != v.drv && !s.ContainsEntity(e) {
			return false
		}
	}
	for _, s := range v.excluded {
		if s.ContainsEntity(e) {
			return false
		}
	}
	return true
}

// next advances to the next matching entity in the driver's dense order.
func (v *viewCore) next() bool {
	for {
		v.idx++
		if v.idx >= v.drv.Len() {
			return false
		}
		e := v.drv.EntityAt(v.idx)
		if v.matches(e) {
			v.cur = e
			return true
		}
	}
}

// collect snapshots the matching entity set, for parallel chunking.
func (v *viewCore) collect() []Entity {
	v.reset()
	var out []Entity
	for v.next() {
		out = append(out, v.cur)
	}
	return out
}

// borrows returns the scoped acquisition for iterating this view with
// mutable access: exclusive on required pools, shared on excluded pools
// (they are only probed).
func (v *viewCore) borrows() borrowSet {
	return newBorrowSet(v.required, v.excluded)
}

func excludedPools(r *Registry, ids []ComponentID) []storage {
	var out []storage
	for _, id := range ids {
		if p := r.comps.pools[id]; p != nil {
			out = append(out, p)
		}
	}
	return out
}

// View iterates all entities that have a component of type T and none of
// the excluded component types. It is built lazily against current pool
// sizes and carries no maintained state; create one whenever needed, or
// Reset and reuse it.
//
// Example:
//
//	view := enrs.NewView[Position](reg)
//	for view.Next() {
//	    pos := view.Get()
//	    // ... process view.Entity()
//	}
type View[T any] struct {
	viewCore
	reg *Registry
	p   *Pool[T]
}

// NewView creates a view over entities holding T. Component types to
// exclude are passed by id (see RegisterComponent).
func NewView[T any](r *Registry, excludes ...ComponentID) *View[T] {
	v := &View[T]{reg: r, p: poolOf[T](r)}
	v.required = []storage{v.p}
	v.excluded = excludedPools(r, excludes)
	v.reset()
	return v
}

// Reset rewinds the iterator and re-selects the driver pool.
func (v *View[T]) Reset() { v.reset() }

// Next advances to the next matching entity. It must be called before
// Entity or Get, and returns false when iteration is complete.
func (v *View[T]) Next() bool { return v.next() }

// Entity returns the current entity. Only valid after Next returned true.
func (v *View[T]) Entity() Entity { return v.cur }

// Get returns the current entity's component.
func (v *View[T]) Get() *T { return v.p.Get(v.cur) }

// Each applies fn to every matching entity while holding the view's
// borrows: exclusive on T's pool, shared on excluded pools. Fails
// atomically with ErrBorrowConflict if any borrow cannot be granted;
// structural mutation from inside fn fails the same way.
func (v *View[T]) Each(fn func(Entity, *T)) error {
	bs := v.borrows()
	release, err := bs.acquire()
	if err != nil {
		return err
	}
	defer release()
	v.reset()
	for v.next() {
		fn(v.cur, v.p.Get(v.cur))
	}
	return nil
}

// View2 iterates all entities that have both T1 and T2 and none of the
// excluded component types, driving off whichever required pool is
// currently smallest.
type View2[T1, T2 any] struct {
	viewCore
	reg *Registry
	p1  *Pool[T1]
	p2  *Pool[T2]
}

// NewView2 creates a view over entities holding both T1 and T2.
func NewView2[T1, T2 any](r *Registry, excludes ...ComponentID) *View2[T1, T2] {
	v := &View2[T1, T2]{reg: r, p1: poolOf[T1](r), p2: poolOf[T2](r)}
	if v.p1.id == v.p2.id {
		panic("ecs: duplicate component types in View2")
	}
	v.required = []storage{v.p1, v.p2}
	v.excluded = excludedPools(r, excludes)
	v.reset()
	return v
}

// Reset rewinds the iterator and re-selects the driver pool.
func (v *View2[T1, T2]) Reset() { v.reset() }

// Next advances to the next matching entity.
func (v *View2[T1, T2]) Next() bool { return v.next() }

// Entity returns the current entity.
func (v *View2[T1, T2]) Entity() Entity { return v.cur }

// Get returns the current entity's components.
func (v *View2[T1, T2]) Get() (*T1, *T2) {
	return v.p1.Get(v.cur), v.p2.Get(v.cur)
}

// Each applies fn to every matching entity under the view's borrows.
func (v *View2[T1, T2]) Each(fn func(Entity, *T1, *T2)) error {
	bs := v.borrows()
	release, err := bs.acquire()
	if err != nil {
		return err
	}
	defer release()
	v.reset()
	for v.next() {
		fn(v.cur, v.p1.Get(v.cur), v.p2.Get(v.cur))
	}
	return nil
}

// View3 is View2 for three required component types.
type View3[T1, T2, T3 any] struct {
	viewCore
	reg *Registry
	p1  *Pool[T1]
	p2  *Pool[T2]
	p3  *Pool[T3]
}

// NewView3 creates a view over entities holding T1, T2 and T3.
func NewView3[T1, T2, T3 any](r *Registry, excludes ...ComponentID) *View3[T1, T2, T3] {
	v := &View3[T1, T2, T3]{reg: r, p1: poolOf[T1](r), p2: poolOf[T2](r), p3: poolOf[T3](r)}
	if v.p1.id == v.p2.id || v.p1.id == v.p3.id || v.p2.id == v.p3.id {
		panic("ecs: duplicate component types in View3")
	}
	v.required = []storage{v.p1, v.p2, v.p3}
	v.excluded = excludedPools(r, excludes)
	v.reset()
	return v
}

func (v *View3[T1, T2, T3]) Reset() { v.reset() }

func (v *View3[T1, T2, T3]) Next() bool { return v.next() }

func (v *View3[T1, T2, T3]) Entity() Entity { return v.cur }

func (v *View3[T1, T2, T3]) Get() (*T1, *T2, *T3) {
	return v.p1.Get(v.cur), v.p2.Get(v.cur), v.p3.Get(v.cur)
}

func (v *View3[T1, T2, T3]) Each(fn func(Entity, *T1, *T2, *T3)) error {
	bs := v.borrows()
	release, err := bs.acquire()
	if err != nil {
		return err
	}
	defer release()
	v.reset()
	for v.next() {
		fn(v.cur, v.p1.Get(v.cur), v.p2.Get(v.cur), v.p3.Get(v.cur))
	}
	return nil
}

// View4 is View2 for four required component types.
type View4[T1, T2, T3, T4 any] struct {
	viewCore
	reg *Registry
	p1  *Pool[T1]
	p2  *Pool[T2]
	p3  *Pool[T3]
	p4  *Pool[T4]
}

// NewView4 creates a view over entities holding T1, T2, T3 and T4.
func NewView4[T1, T2, T3, T4 any](r *Registry, excludes ...ComponentID) *View4[T1, T2, T3, T4] {
	v := &View4[T1, T2, T3, T4]{
		reg: r,
		p1:  poolOf[T1](r), p2: poolOf[T2](r),
		p3: poolOf[T3](r), p4: poolOf[T4](r),
	}
	ids := [4]ComponentID{v.p1.id, v.p2.id, v.p3.id, v.p4.id}
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if ids[i] == ids[j] {
				panic("ecs: duplicate component types in View4")
			}
		}
	}
	v.required = []storage{v.p1, v.p2, v.p3, v.p4}
	v.excluded = excludedPools(r, excludes)
	v.reset()
	return v
}

func (v *View4[T1, T2, T3, T4]) Reset() { v.reset() }

func (v *View4[T1, T2, T3, T4]) Next() bool { return v.next() }

func (v *View4[T1, T2, T3, T4]) Entity() Entity { return v.cur }

func (v *View4[T1, T2, T3, T4]) Get() (*T1, *T2, *T3, *T4) {
	return v.p1.Get(v.cur), v.p2.Get(v.cur), v.p3.Get(v.cur), v.p4.Get(v.cur)
}

func (v *View4[T1, T2, T3, T4]) Each(fn func(Entity, *T1, *T2, *T3, *T4)) error {
	bs := v.borrows()
	release, err := bs.acquire()
	if err != nil {
		return err
	}
	defer release()
	v.reset()
	for v.next() {
		fn(v.cur, v.p1.Get(v.cur), v.p2.Get(v.cur), v.p3.Get(v.cur), v.p4.Get(v.cur))
	}
	return nil
}
