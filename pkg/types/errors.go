package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrAlreadyOpen = errors.New("store is already open")
)

// Expected, user-facing misses. Callers distinguish these from storage
// failures with errors.Is and print a helpful message instead of failing hard.
var (
	// ErrNoTree means no registered root is an ancestor of the current
	// directory.
	ErrNoTree = errors.New("no tree root governs this directory")

	// ErrNotFound means no association with the requested name exists for
	// the governing tree.
	ErrNotFound = errors.New("no association with that name")

	// ErrTreeNotFound means the named root path is not registered.
	ErrTreeNotFound = errors.New("tree not found")
)

// Constraint violations.
var (
	// ErrTreeExists is returned by establish when the directory is already
	// a registered root.
	ErrTreeExists = errors.New("tree root already established")

	// ErrNameConflict is returned when an operation would overwrite an
	// existing association and overwriting is disallowed (clone with the
	// fail policy, add with overwrite_on_add disabled, rename onto an
	// existing name).
	ErrNameConflict = errors.New("association name already exists")

	// ErrInvalidName is returned for empty association names.
	ErrInvalidName = errors.New("invalid name")
)
