package enrs

import "errors"

// Error conditions surfaced by Registry, pool and query operations. All of
// them are recoverable and returned to the caller; nothing in this package
// retries or swallows them.
var (
	// ErrInvalidEntity is returned when an operation receives a stale or
	// never-issued entity identifier.
	ErrInvalidEntity = errors.New("ecs: invalid entity")

	// ErrComponentExists is returned by an insert into a pool that already
	// holds a value for the entity.
	ErrComponentExists = errors.New("ecs: component already present")

	// ErrComponentMissing is returned by a remove or replace against a
	// pool that does not hold the entity.
	ErrComponentMissing = errors.New("ecs: component not present")

	// ErrBorrowConflict is returned when a borrow request would violate
	// the per-pool lending policy (at most one exclusive borrower, or any
	// number of shared borrowers). Retrying is a caller decision.
	ErrBorrowConflict = errors.New("ecs: pool borrow conflict")

	// ErrConflictingGroupOwnership is returned at group declaration time
	// when a requested owned pool is already owned by another group. Two
	// independent reorder policies on one pool cannot both hold; this is a
	// configuration error, not a runtime retry case.
	ErrConflictingGroupOwnership = errors.New("ecs: pool already owned by another group")
)
