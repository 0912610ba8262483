package enrs

import (
	"fmt"

	"go.uber.org/zap"
)

// group maintains the contiguous-prefix invariant for a fixed component
// type set. Every pool in owned keeps the group's matching entities in
// positions [0, length) in identical relative order; pools in observed
// gate membership but are never reordered. Maintenance is driven by the
// pools themselves: each structural mutation of a member pool calls back
// into entityAdded or entityRemoved before the invariant could be
// observed broken.
type group struct {
	owned    []storage // canonical order; at least one
	observed []storage
	members  []storage // owned followed by observed

	ownedMask bitmask256
	mask      bitmask256 // owned and observed bits

	length int
}

// Len returns the number of entities currently matching the group.
func (g *group) Len() int { return g.length }

// containsEntity reports whether e currently sits inside the group
// prefix. The first owned pool is authoritative: all owned pools share
// the same prefix ordering.
func (g *group) containsEntity(e Entity) bool {
	idx := g.owned[0].indexOf(e)
	return idx >= 0 && idx < g.length
}

// entityAdded is called by a member pool after inserting a value for e.
// If that insert completed membership, e is swapped to the end of the
// prefix in every owned pool.
func (g *group) entityAdded(e Entity) {
	if g.containsEntity(e) {
		return
	}
	for _, s := range g.members {
		if !s.ContainsEntity(e) {
			return
		}
	}
	for _, s := range g.owned {
		s.swapDense(s.indexOf(e), g.length)
	}
	g.length++
}

// entityRemoved is called by a member pool before removing e's value. If
// e is inside the prefix it is swapped to the last in-group slot of every
// owned pool and the prefix shrinks, so the pool's own swap-remove only
// ever touches out-of-group positions.
func (g *group) entityRemoved(e Entity) {
	idx := g.owned[0].indexOf(e)
	if idx < 0 || idx >= g.length {
		return
	}
	last := g.length - 1
	for _, s := range g.owned {
		s.swapDense(s.indexOf(e), last)
	}
	g.length--
}

// EntityAt returns the group member at prefix position i.
func (g *group) EntityAt(i int) Entity {
	return g.owned[0].EntityAt(i)
}

// groupFor returns the group for the given owned and observed sets,
// declaring it on first request. Re-requesting the same sets returns the
// same group state; requesting ownership of a pool another group already
// owns fails with ErrConflictingGroupOwnership.
func (r *Registry) groupFor(ownedIDs, observedIDs []ComponentID) (*group, error) {
	if len(ownedIDs) == 0 {
		return nil, fmt.Errorf("%w: group needs at least one owned pool", ErrConflictingGroupOwnership)
	}
	for _, id := range append(append([]ComponentID(nil), ownedIDs...), observedIDs...) {
		if r.comps.pools[id] == nil {
			return nil, fmt.Errorf("ecs: unregistered component id %d in group declaration", id)
		}
	}
	var ownedMask, mask bitmask256
	for _, id := range ownedIDs {
		ownedMask.set(id)
		mask.set(id)
	}
	for _, id := range observedIDs {
		if ownedMask.has(id) {
			return nil, fmt.Errorf("%w: %s both owned and observed",
				ErrConflictingGroupOwnership, r.comps.pools[id].ComponentType())
		}
		mask.set(id)
	}
	for _, g := range r.groups {
		if g.ownedMask == ownedMask && g.mask == mask {
			return g, nil
		}
	}

	owned := make([]storage, 0, len(ownedIDs))
	ownedMask.forEach(func(id ComponentID) {
		owned = append(owned, r.comps.pools[id])
	})
	sortByFingerprint(owned)
	var observed []storage
	for _, id := range observedIDs {
		observed = append(observed, r.comps.pools[id])
	}
	sortByFingerprint(observed)

	for _, s := range owned {
		if other := s.groupOwner(); other != nil {
			return nil, fmt.Errorf("%w: %s", ErrConflictingGroupOwnership, s.ComponentType())
		}
	}

	g := &group{
		owned:     owned,
		observed:  observed,
		members:   append(append([]storage(nil), owned...), observed...),
		ownedMask: ownedMask,
		mask:      mask,
	}
	for _, s := range owned {
		s.setGroupOwner(g)
		s.joinGroup(g)
	}
	for _, s := range observed {
		s.joinGroup(g)
	}
	g.init()
	r.groups = append(r.groups, g)
	r.log.Debug("ecs: group declared",
		zap.Int("owned", len(owned)),
		zap.Int("observed", len(observed)),
		zap.Int("initial_len", g.length),
	)
	return g, nil
}

// init absorbs entities that already match the group at declaration
// time. Driving off the smallest member pool minimizes the scan.
func (g *group) init() {
	driver := g.members[0]
	for _, s := range g.members[1:] {
		if s.Len() < driver.Len() {
			driver = s
		}
	}
	snapshot := make([]Entity, driver.Len())
	for i := range snapshot {
		snapshot[i] = driver.EntityAt(i)
	}
	for _, e := range snapshot {
		g.entityAdded(e)
	}
}
