package enrs

import (
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// componentRegistry assigns ComponentIDs within one Registry and keeps the
// type-erased pool handles keyed by them.
type componentRegistry struct {
	typeToID map[reflect.Type]ComponentID
	pools    [MaxComponentTypes]storage
	list     []storage // pools in registration order
	nextID   uint16    // counter for assigning new component type IDs
}

func newComponentRegistry() componentRegistry {
	return componentRegistry{
		typeToID: make(map[reflect.Type]ComponentID, 16),
	}
}

// idFor registers or fetches the ComponentID for t.
func (c *componentRegistry) idFor(t reflect.Type) ComponentID {
	if id, ok := c.typeToID[t]; ok {
		return id
	}
	if c.nextID >= MaxComponentTypes {
		panic("ecs: too many component types")
	}
	id := ComponentID(c.nextID)
	c.typeToID[t] = id
	c.nextID++
	return id
}

// typeFingerprint returns a stable 64-bit identity for a component type,
// derived from its fully qualified name. Unlike ComponentID it does not
// depend on registration order, which makes it usable as the canonical
// ordering for multi-pool borrow acquisition.
func typeFingerprint(t reflect.Type) uint64 {
	return xxhash.Sum64String(t.PkgPath() + "." + t.String())
}

// RegisterComponent registers the component type T with the Registry and
// returns its ComponentID, creating the backing pool if needed. Calling it
// again for the same type returns the existing ID.
//
// Registration is implicit in every generic operation; this function only
// exists for APIs that take explicit ComponentID lists, such as view
// exclusions and group observed sets.
func RegisterComponent[T any](r *Registry) ComponentID {
	return poolOf[T](r).id
}

// poolOf returns the concrete pool for T, creating and registering it on
// first use.
func poolOf[T any](r *Registry) *Pool[T] {
	t := reflect.TypeFor[T]()
	if id, ok := r.comps.typeToID[t]; ok {
		p, ok := r.comps.pools[id].(*Pool[T])
		if !ok {
			// Two distinct types can never share an ID, so a failed
			// downcast means corrupted registry state. Fail loudly.
			panic(fmt.Sprintf("ecs: pool for id %d holds %s, requested %s",
				id, r.comps.pools[id].ComponentType(), t))
		}
		return p
	}
	id := r.comps.idFor(t)
	p := &Pool[T]{
		reg: r,
		id:  id,
		typ: t,
		fp:  typeFingerprint(t),
	}
	p.scope = []storage{p}
	r.comps.pools[id] = p
	r.comps.list = append(r.comps.list, p)
	r.log.Debug("ecs: pool created",
		zap.String("component", t.String()),
		zap.Uint64("fingerprint", p.fp),
	)
	return p
}
