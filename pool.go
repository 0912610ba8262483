package enrs

import "reflect"

// absent marks an empty sparse slot.
const absent = -1

// Pool is the sparse-set storage for all values of one component type
// within a Registry. A growable sparse array maps entity indices to slots
// in two parallel dense arrays, one holding entities and one holding
// payloads, so membership tests and lookups are O(1) while iteration
// walks gap-free memory.
//
// Removal is swap-remove: the removed slot is filled with the last dense
// entry and the arrays truncate. That keeps removal O(1) but makes dense
// positions unstable across mutations; callers must not cache them.
//
// Structural mutations go through the owning Registry, which validates
// entity liveness and borrow state first. The exported surface of a Pool
// is read-only.
type Pool[T any] struct {
	reg    *Registry
	typ    reflect.Type
	fp     uint64
	id     ComponentID
	sparse []int32 // entity index -> dense offset, absent if none
	dense  []Entity
	items  []T

	owner  *group   // group allowed to reorder this pool, if any
	groups []*group // every group this pool participates in
	scope  []storage

	flag borrowFlag

	constructFns []func(Entity, *T)
	updateFns    []func(Entity, *T)
	destroyFns   []func(Entity, *T)
}

// ComponentType returns the reflect identity of T.
func (p *Pool[T]) ComponentType() reflect.Type { return p.typ }

// ID returns the registry-local component id of T.
func (p *Pool[T]) ID() ComponentID { return p.id }

// Fingerprint returns the stable type identity of T.
func (p *Pool[T]) Fingerprint() uint64 { return p.fp }

// Len returns the number of entities currently in the pool.
func (p *Pool[T]) Len() int { return len(p.dense) }

// ContainsEntity reports whether the pool holds a value for e.
func (p *Pool[T]) ContainsEntity(e Entity) bool {
	return p.indexOf(e) >= 0
}

// EntityAt returns the entity at dense position i.
func (p *Pool[T]) EntityAt(i int) Entity { return p.dense[i] }

// At returns a pointer to the payload at dense position i.
func (p *Pool[T]) At(i int) *T { return &p.items[i] }

// Get returns a pointer to e's payload, or nil if the pool does not hold
// e. The pointer stays valid until the next structural mutation of the
// pool.
func (p *Pool[T]) Get(e Entity) *T {
	idx := p.indexOf(e)
	if idx < 0 {
		return nil
	}
	return &p.items[idx]
}

// Entities returns the dense entity array in current packing order. The
// slice is owned by the pool and is invalidated by any structural
// mutation; copy it for long-term use.
func (p *Pool[T]) Entities() []Entity { return p.dense }

func (p *Pool[T]) indexOf(e Entity) int {
	if int(e.ID) >= len(p.sparse) {
		return absent
	}
	idx := p.sparse[e.ID]
	if idx == absent || p.dense[idx] != e {
		return absent
	}
	return int(idx)
}

// ensureSparse grows the sparse array to cover entity index id.
func (p *Pool[T]) ensureSparse(id uint32) {
	for int(id) >= len(p.sparse) {
		n := len(p.sparse) * 2
		if n == 0 {
			n = 64
		}
		if n <= int(id) {
			n = int(id) + 1
		}
		grown := make([]int32, n)
		copy(grown, p.sparse)
		for i := len(p.sparse); i < n; i++ {
			grown[i] = absent
		}
		p.sparse = grown
	}
}

// insert appends a value for e. The caller has already validated e and
// acquired the mutation scope; the only remaining failure is a duplicate.
func (p *Pool[T]) insert(e Entity, value T) (*T, error) {
	if p.ContainsEntity(e) {
		return nil, ErrComponentExists
	}
	p.ensureSparse(e.ID)
	p.sparse[e.ID] = int32(len(p.dense))
	p.dense = append(p.dense, e)
	p.items = append(p.items, value)
	for _, fn := range p.constructFns {
		fn(e, &p.items[len(p.items)-1])
	}
	// Group maintenance may reorder the dense arrays, so the stable
	// pointer is looked up again afterwards.
	for _, g := range p.groups {
		g.entityAdded(e)
	}
	return &p.items[p.sparse[e.ID]], nil
}

// replace overwrites e's existing value without structural changes.
func (p *Pool[T]) replace(e Entity, value T) (*T, error) {
	idx := p.indexOf(e)
	if idx < 0 {
		return nil, ErrComponentMissing
	}
	p.items[idx] = value
	ptr := &p.items[idx]
	for _, fn := range p.updateFns {
		fn(e, ptr)
	}
	return ptr, nil
}

// remove swap-removes e's value and returns it.
func (p *Pool[T]) remove(e Entity) (T, error) {
	var zero T
	if p.indexOf(e) < 0 {
		return zero, ErrComponentMissing
	}
	// Groups first: e gets swapped out of every owned prefix while all
	// of its components are still present, keeping the prefix invariant
	// atomic with this mutation.
	for _, g := range p.groups {
		g.entityRemoved(e)
	}
	idx := int(p.sparse[e.ID])
	for _, fn := range p.destroyFns {
		fn(e, &p.items[idx])
	}
	value := p.items[idx]
	last := len(p.dense) - 1
	if idx != last {
		moved := p.dense[last]
		p.dense[idx] = moved
		p.items[idx] = p.items[last]
		p.sparse[moved.ID] = int32(idx)
	}
	p.dense = p.dense[:last]
	p.items = p.items[:last]
	p.sparse[e.ID] = absent
	return value, nil
}

func (p *Pool[T]) swapDense(i, j int) {
	if i == j {
		return
	}
	ei, ej := p.dense[i], p.dense[j]
	p.dense[i], p.dense[j] = ej, ei
	p.items[i], p.items[j] = p.items[j], p.items[i]
	p.sparse[ei.ID] = int32(j)
	p.sparse[ej.ID] = int32(i)
}

func (p *Pool[T]) eraseEntity(e Entity) bool {
	_, err := p.remove(e)
	return err == nil
}

func (p *Pool[T]) clearAll() {
	for i := range p.dense {
		for _, fn := range p.destroyFns {
			fn(p.dense[i], &p.items[i])
		}
	}
	for i := range p.sparse {
		p.sparse[i] = absent
	}
	p.dense = p.dense[:0]
	p.items = p.items[:0]
}

func (p *Pool[T]) borrow() *borrowFlag { return &p.flag }

func (p *Pool[T]) mutationScope() []storage { return p.scope }

func (p *Pool[T]) groupOwner() *group { return p.owner }

func (p *Pool[T]) setGroupOwner(g *group) { p.owner = g }

func (p *Pool[T]) joinGroup(g *group) {
	for _, have := range p.groups {
		if have == g {
			return
		}
	}
	p.groups = append(p.groups, g)
	// Rebuild the mutation scope: this pool plus the owned pools of all
	// member groups, deduplicated, in canonical order.
	seen := map[storage]bool{storage(p): true}
	scope := []storage{p}
	for _, member := range p.groups {
		for _, owned := range member.owned {
			if !seen[owned] {
				seen[owned] = true
				scope = append(scope, owned)
			}
		}
	}
	sortByFingerprint(scope)
	p.scope = scope
}
