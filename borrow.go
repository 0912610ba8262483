package enrs

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// borrowFlag tracks the lending state of one pool: 0 when free, a
// positive count of shared (read-only) borrowers, or -1 when lent out
// exclusively. Transitions are lock-free; a request that cannot be
// granted fails immediately instead of blocking.
type borrowFlag struct {
	state atomic.Int32
}

func (b *borrowFlag) acquireShared() bool {
	for {
		cur := b.state.Load()
		if cur < 0 {
			return false
		}
		if b.state.CompareAndSwap(cur, cur+1) {
			return true
		}
	}
}

func (b *borrowFlag) releaseShared() {
	b.state.Add(-1)
}

func (b *borrowFlag) acquireExclusive() bool {
	return b.state.CompareAndSwap(0, -1)
}

func (b *borrowFlag) releaseExclusive() {
	b.state.Store(0)
}

// borrowSet is a scoped multi-pool acquisition. Pools are always locked
// in ascending type-fingerprint order so two queries touching the same
// pools can never deadlock against each other, and release undoes exactly
// what acquire granted, on every exit path.
type borrowSet struct {
	exclusive []storage
	shared    []storage
}

// sortByFingerprint orders pools canonically, ties broken by ComponentID
// (only relevant in the astronomically unlikely event of a fingerprint
// collision inside one registry).
func sortByFingerprint(pools []storage) {
	sort.Slice(pools, func(i, j int) bool {
		if pools[i].Fingerprint() != pools[j].Fingerprint() {
			return pools[i].Fingerprint() < pools[j].Fingerprint()
		}
		return pools[i].ID() < pools[j].ID()
	})
}

// acquire grants every borrow in the set or none of them. On conflict the
// partial acquisition is rolled back and ErrBorrowConflict is returned,
// wrapped with the offending component type.
func (s *borrowSet) acquire() (release func(), err error) {
	grantedEx := 0
	grantedSh := 0
	rollback := func() {
		for i := 0; i < grantedEx; i++ {
			s.exclusive[i].borrow().releaseExclusive()
		}
		for i := 0; i < grantedSh; i++ {
			s.shared[i].borrow().releaseShared()
		}
	}
	for _, p := range s.exclusive {
		if !p.borrow().acquireExclusive() {
			rollback()
			return nil, fmt.Errorf("%w: %s", ErrBorrowConflict, p.ComponentType())
		}
		grantedEx++
	}
	for _, p := range s.shared {
		if !p.borrow().acquireShared() {
			rollback()
			return nil, fmt.Errorf("%w: %s", ErrBorrowConflict, p.ComponentType())
		}
		grantedSh++
	}
	return rollback, nil
}

// newBorrowSet builds a canonical-order borrow set. A pool appearing in
// both slices is acquired exclusively only.
func newBorrowSet(exclusive, shared []storage) borrowSet {
	ex := append([]storage(nil), exclusive...)
	sortByFingerprint(ex)
	var sh []storage
	for _, p := range shared {
		dup := false
		for _, e := range ex {
			if e == p {
				dup = true
				break
			}
		}
		if !dup {
			sh = append(sh, p)
		}
	}
	sortByFingerprint(sh)
	return borrowSet{exclusive: ex, shared: sh}
}
