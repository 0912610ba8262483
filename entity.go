package enrs

import "fmt"

// Entity represents a unique identifier for an object in a Registry. It
// combines a 32-bit index with a 32-bit version so that recycled indices
// are not confused with the entities that previously used them.
//
// The zero Entity is never issued and is never valid.
type Entity struct {
	// ID is the recyclable slot index of the entity.
	ID uint32
	// Version is a generation counter protecting against stale entity
	// references. It is bumped each time an entity index is destroyed.
	Version uint32
}

// IsZero reports whether e is the zero Entity, which no Registry ever
// issues.
func (e Entity) IsZero() bool {
	return e.Version == 0
}

// String implements fmt.Stringer for log and test output.
func (e Entity) String() string {
	return fmt.Sprintf("entity(%d v%d)", e.ID, e.Version)
}
