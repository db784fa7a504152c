// Package entry provides the journal entry use cases: listing, fetching by date,
// create-or-update by date, update and delete by id, content search and statistics.
// Persistence is delegated to a repository.EntryRepository.
package entry

import "errors"

// ErrEntryNotFound indicates that no entry exists for the requested date or id.
var ErrEntryNotFound = errors.New("journal entry not found")

// StoreError wraps a persistence failure. It is never caused by caller input and
// callers should report it without exposing the wrapped error.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
