package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates no normaliser can read an imported file.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// Precondition Errors.

	// ErrSessionComplete indicates an operation that needs a current question
	// was attempted after every question had been studied.
	ErrSessionComplete = errors.New("all questions studied")

	// ErrNoActiveDeck indicates a progress operation was called without a file key.
	ErrNoActiveDeck = errors.New("no active deck")

	// Persistence Errors.

	// ErrPersistence indicates the progress store could not be read or written.
	// In-memory state stays usable but is not guaranteed durable.
	ErrPersistence = errors.New("progress not persisted")
)

// PersistenceWarning wraps a progress store failure.
// It is non-fatal: the operation that returned it has still been applied in memory.
type PersistenceWarning struct {
	// Key is the file key whose progress could not be stored.
	Key string

	// Op is the store operation that failed (get, put, remove).
	Op string

	// Err is the underlying store error.
	Err error
}

// Error implements the error interface.
func (w *PersistenceWarning) Error() string {
	return "progress " + w.Op + " for " + w.Key + ": " + w.Err.Error()
}

// Unwrap exposes both ErrPersistence and the store error to errors.Is.
func (w *PersistenceWarning) Unwrap() []error {
	return []error{ErrPersistence, w.Err}
}

// IsWarning reports whether err is non-fatal to an active study session.
func IsWarning(err error) bool {
	var w *PersistenceWarning
	return errors.As(err, &w)
}
