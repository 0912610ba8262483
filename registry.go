package enrs

import (
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry owns the entity allocator, one sparse-set pool per component
// type and every declared group. It is the single mutation entry point:
// all operations validate entity liveness first and fail fast with
// ErrInvalidEntity rather than silently operating on a stale identifier.
//
// A Registry is not a lock; concurrent access is mediated by the per-pool
// borrow flags (see borrow.go) and surfaces as ErrBorrowConflict, never
// as a data race.
type Registry struct {
	id  uuid.UUID
	log *zap.Logger

	alloc  entityAllocator
	comps  componentRegistry
	masks  []bitmask256 // per entity index, which pools hold it
	groups []*group

	res     Resources
	workers int
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithCapacity pre-allocates entity bookkeeping for n entities.
func WithCapacity(n int) Option {
	return func(r *Registry) {
		r.alloc = newEntityAllocator(n)
		r.masks = make([]bitmask256, 0, n)
	}
}

// WithLogger attaches a structured logger. Only structural events (pool
// creation, group declaration, index retirement) are logged, never hot
// paths. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		r.log = l
	}
}

// WithWorkers sets the default worker count for parallel iteration when
// the caller passes a non-positive hint. Defaults to runtime.GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.workers = n
		}
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		id:      uuid.New(),
		log:     zap.NewNop(),
		comps:   newComponentRegistry(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(zap.String("registry", r.id.String()))
	r.log.Debug("ecs: registry created")
	return r
}

// ID returns the unique identity of this Registry instance, as carried in
// its log output.
func (r *Registry) ID() uuid.UUID { return r.id }

// Create returns a new entity with no components.
func (r *Registry) Create() Entity {
	e := r.alloc.create()
	r.ensureMask(e.ID)
	r.masks[e.ID] = bitmask256{}
	return e
}

// CreateN creates count entities with no components.
func (r *Registry) CreateN(count int) []Entity {
	if count <= 0 {
		return nil
	}
	ents := make([]Entity, count)
	for i := range ents {
		ents[i] = r.Create()
	}
	return ents
}

// Destroy removes e and every component attached to it, then recycles its
// index with a bumped generation. Destroying a stale or never-issued
// entity returns ErrInvalidEntity.
func (r *Registry) Destroy(e Entity) error {
	if !r.alloc.valid(e) {
		return ErrInvalidEntity
	}
	var firstErr error
	r.masks[e.ID].forEach(func(id ComponentID) {
		p := r.comps.pools[id]
		release, err := r.acquireScope(p)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		p.eraseEntity(e)
		r.masks[e.ID].unset(id)
		release()
	})
	if firstErr != nil {
		// Partially destroyed: erased pools already dropped their mask
		// bits, so a retry only revisits what is still attached.
		return firstErr
	}
	recycled, err := r.alloc.destroy(e)
	if err == nil && !recycled {
		r.log.Debug("ecs: entity index retired", zap.Uint32("index", e.ID))
	}
	return err
}

// Valid reports whether e is currently alive in this Registry.
func (r *Registry) Valid(e Entity) bool {
	return r.alloc.valid(e)
}

// Alive returns the number of live entities.
func (r *Registry) Alive() int {
	return r.alloc.alive
}

// Retired returns the number of entity indices permanently retired after
// generation exhaustion.
func (r *Registry) Retired() int {
	return r.alloc.retired
}

// Each calls fn for every live entity in index order.
func (r *Registry) Each(fn func(Entity)) {
	r.alloc.each(fn)
}

// Clear destroys every entity and component while keeping pools, groups
// and registered component types. Destroy hooks fire for each dropped
// component. Fails atomically with ErrBorrowConflict if any pool is
// currently lent out.
func (r *Registry) Clear() error {
	bs := newBorrowSet(append([]storage(nil), r.comps.list...), nil)
	release, err := bs.acquire()
	if err != nil {
		return err
	}
	defer release()
	for _, p := range r.comps.list {
		p.clearAll()
	}
	for _, g := range r.groups {
		g.length = 0
	}
	for i := range r.masks {
		r.masks[i] = bitmask256{}
	}
	r.alloc.releaseAll()
	return nil
}

// Workers returns the default parallel iteration worker count.
func (r *Registry) Workers() int { return r.workers }

func (r *Registry) ensureMask(id uint32) {
	for int(id) >= len(r.masks) {
		r.masks = append(r.masks, bitmask256{})
	}
}

// acquireScope exclusively borrows every pool a structural mutation of p
// may reorder.
func (r *Registry) acquireScope(p storage) (func(), error) {
	bs := newBorrowSet(p.mutationScope(), nil)
	return bs.acquire()
}
