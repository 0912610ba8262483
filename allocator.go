package enrs

import "math"

// entitySlot tracks the lifecycle of one entity index.
type entitySlot struct {
	version uint32 // current generation for this index
	alive   bool
}

// entityAllocator issues entity identifiers and recycles destroyed
// indices through a LIFO free list. Recycling most-recently-freed indices
// first keeps hot slots warm in cache at the cost of burning generations
// faster on busy indices; an index whose generation would overflow is
// retired instead of recycled, so stale handles can never alias a live
// entity.
type entityAllocator struct {
	slots   []entitySlot
	freeIDs []uint32 // stack of recycled entity indices
	alive   int
	retired int
}

func newEntityAllocator(capacity int) entityAllocator {
	return entityAllocator{
		slots:   make([]entitySlot, 0, capacity),
		freeIDs: make([]uint32, 0, capacity),
	}
}

// create returns a fresh or recycled entity. Fresh indices start at
// version 1; version 0 is reserved so the zero Entity stays invalid.
func (a *entityAllocator) create() Entity {
	a.alive++
	if n := len(a.freeIDs); n > 0 {
		id := a.freeIDs[n-1]
		a.freeIDs = a.freeIDs[:n-1]
		s := &a.slots[id]
		s.alive = true
		return Entity{ID: id, Version: s.version}
	}
	id := uint32(len(a.slots))
	a.slots = append(a.slots, entitySlot{version: 1, alive: true})
	return Entity{ID: id, Version: 1}
}

// destroy invalidates e and recycles its index. The stored generation is
// bumped first so every outstanding copy of e turns stale immediately.
// Returns false if the index was retired rather than recycled.
func (a *entityAllocator) destroy(e Entity) (recycled bool, err error) {
	if !a.valid(e) {
		return false, ErrInvalidEntity
	}
	s := &a.slots[e.ID]
	s.alive = false
	s.version++
	a.alive--
	if s.version == math.MaxUint32 {
		// Generation space exhausted for this index. Retiring it is not
		// an error: the index simply never re-enters the free list.
		a.retired++
		return false, nil
	}
	a.freeIDs = append(a.freeIDs, e.ID)
	return true, nil
}

func (a *entityAllocator) valid(e Entity) bool {
	if int(e.ID) >= len(a.slots) {
		return false
	}
	s := a.slots[e.ID]
	return s.alive && s.version == e.Version
}

// releaseAll destroys every live entity without touching component
// storage. Callers clear the pools themselves.
func (a *entityAllocator) releaseAll() {
	for i := range a.slots {
		s := &a.slots[i]
		if !s.alive {
			continue
		}
		s.alive = false
		s.version++
		a.alive--
		if s.version == math.MaxUint32 {
			a.retired++
			continue
		}
		a.freeIDs = append(a.freeIDs, uint32(i))
	}
}

// each calls fn for every live entity in index order.
func (a *entityAllocator) each(fn func(Entity)) {
	for i := range a.slots {
		s := a.slots[i]
		if s.alive {
			fn(Entity{ID: uint32(i), Version: s.version})
		}
	}
}
