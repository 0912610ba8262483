package enrs

import "reflect"

// Resources is a type-keyed store for world-global singletons (time
// steps, asset handles, configuration objects) that do not belong to any
// one entity. At most one value per type is held at a time.
type Resources struct {
	items map[reflect.Type]any
}

// Resources returns the registry's resource store.
func (r *Registry) Resources() *Resources {
	return &r.res
}

// AddResource stores res as the singleton of type T. Panics if a
// resource of that type already exists; replacing a live resource is
// almost always a bug, remove it first.
func AddResource[T any](r *Resources, res *T) {
	if res == nil {
		panic("ecs: cannot add nil resource")
	}
	t := reflect.TypeFor[T]()
	if r.items == nil {
		r.items = make(map[reflect.Type]any, 8)
	}
	if _, ok := r.items[t]; ok {
		panic("ecs: resource of type " + t.String() + " already exists")
	}
	r.items[t] = res
}

// GetResource returns the singleton of type T, or nil if none is stored.
func GetResource[T any](r *Resources) *T {
	if r.items == nil {
		return nil
	}
	if res, ok := r.items[reflect.TypeFor[T]()]; ok {
		return res.(*T)
	}
	return nil
}

// RemoveResource drops the singleton of type T, reporting whether one
// was stored.
func RemoveResource[T any](r *Resources) bool {
	t := reflect.TypeFor[T]()
	if _, ok := r.items[t]; !ok {
		return false
	}
	delete(r.items, t)
	return true
}

// Clear removes every stored resource.
func (r *Resources) Clear() {
	clear(r.items)
}
