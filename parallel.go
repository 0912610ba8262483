package enrs

import "golang.org/x/sync/errgroup"

// Fork-join parallel iteration. A query's dense range (a group's prefix,
// or a view's collected candidate set) is split into disjoint contiguous
// chunks, one worker per chunk, joined before the call returns. Safety
// rests on two facts: every chunk boundary is exact (each index lands in
// exactly one chunk) and payload cells never alias across dense indices,
// so workers cannot touch the same memory. The query's borrows are held
// for the whole call, which keeps structural mutation out.
//
// The worker count is a hint, not a cap: non-positive values fall back to
// the Registry default. There is no partial completion; if the borrows
// cannot be acquired the call fails before any worker starts.

type chunk struct {
	lo, hi int
}

// splitChunks partitions [0, n) into at most workers contiguous disjoint
// chunks whose union is exactly [0, n).
func splitChunks(n, workers int) []chunk {
	if n <= 0 {
		return nil
	}
	if workers > n {
		workers = n
	}
	chunks := make([]chunk, 0, workers)
	size := n / workers
	rem := n % workers
	lo := 0
	for i := 0; i < workers; i++ {
		hi := lo + size
		if i < rem {
			hi++
		}
		chunks = append(chunks, chunk{lo: lo, hi: hi})
		lo = hi
	}
	return chunks
}

func (r *Registry) workerCount(hint int) int {
	if hint > 0 {
		return hint
	}
	return r.workers
}

// runChunks acquires bs, then sizes the range via prepare (under the
// borrow, so the snapshot cannot race a mutation), forks one worker per
// chunk of [0, n) and joins.
func runChunks(r *Registry, bs borrowSet, hint int, prepare func() int, body func(lo, hi int)) error {
	release, err := bs.acquire()
	if err != nil {
		return err
	}
	defer release()
	n := prepare()
	chunks := splitChunks(n, r.workerCount(hint))
	if len(chunks) <= 1 {
		if len(chunks) == 1 {
			body(0, n)
		}
		return nil
	}
	var eg errgroup.Group
	for _, c := range chunks {
		eg.Go(func() error {
			body(c.lo, c.hi)
			return nil
		})
	}
	return eg.Wait()
}

// EachParallel applies fn to every matching entity across workers
// goroutines (hint; non-positive means the Registry default). Visit order
// is unspecified; the call returns only after every worker finished.
func (v *View[T]) EachParallel(workers int, fn func(Entity, *T)) error {
	var candidates []Entity
	return runChunks(v.reg, v.borrows(), workers, func() int {
		candidates = v.collect()
		return len(candidates)
	}, func(lo, hi int) {
		for _, e := range candidates[lo:hi] {
			fn(e, v.p.Get(e))
		}
	})
}

// EachParallel applies fn to every matching entity across workers.
func (v *View2[T1, T2]) EachParallel(workers int, fn func(Entity, *T1, *T2)) error {
	var candidates []Entity
	return runChunks(v.reg, v.borrows(), workers, func() int {
		candidates = v.collect()
		return len(candidates)
	}, func(lo, hi int) {
		for _, e := range candidates[lo:hi] {
			fn(e, v.p1.Get(e), v.p2.Get(e))
		}
	})
}

// EachParallel applies fn to every matching entity across workers.
func (v *View3[T1, T2, T3]) EachParallel(workers int, fn func(Entity, *T1, *T2, *T3)) error {
	var candidates []Entity
	return runChunks(v.reg, v.borrows(), workers, func() int {
		candidates = v.collect()
		return len(candidates)
	}, func(lo, hi int) {
		for _, e := range candidates[lo:hi] {
			fn(e, v.p1.Get(e), v.p2.Get(e), v.p3.Get(e))
		}
	})
}

// EachParallel applies fn to every matching entity across workers.
func (v *View4[T1, T2, T3, T4]) EachParallel(workers int, fn func(Entity, *T1, *T2, *T3, *T4)) error {
	var candidates []Entity
	return runChunks(v.reg, v.borrows(), workers, func() int {
		candidates = v.collect()
		return len(candidates)
	}, func(lo, hi int) {
		for _, e := range candidates[lo:hi] {
			fn(e, v.p1.Get(e), v.p2.Get(e), v.p3.Get(e), v.p4.Get(e))
		}
	})
}

// EachParallel applies fn to every group member across workers, indexing
// straight into the contiguous prefix.
func (gr *Group[T]) EachParallel(workers int, fn func(Entity, *T)) error {
	bs := newBorrowSet(gr.g.owned, gr.g.observed)
	return runChunks(gr.reg, bs, workers, func() int { return gr.g.length }, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fn(gr.g.EntityAt(i), gr.p.At(i))
		}
	})
}

// EachParallel applies fn to every group member across workers.
func (gr *Group2[T1, T2]) EachParallel(workers int, fn func(Entity, *T1, *T2)) error {
	bs := newBorrowSet(gr.g.owned, gr.g.observed)
	return runChunks(gr.reg, bs, workers, func() int { return gr.g.length }, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fn(gr.g.EntityAt(i), gr.p1.At(i), gr.p2.At(i))
		}
	})
}

// EachParallel applies fn to every group member across workers.
func (gr *Group3[T1, T2, T3]) EachParallel(workers int, fn func(Entity, *T1, *T2, *T3)) error {
	bs := newBorrowSet(gr.g.owned, gr.g.observed)
	return runChunks(gr.reg, bs, workers, func() int { return gr.g.length }, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fn(gr.g.EntityAt(i), gr.p1.At(i), gr.p2.At(i), gr.p3.At(i))
		}
	})
}
