package database

import "fmt"

// StoreWriteError reports a failed batch insert. The batch runs in a single
// transaction, so none of its rows were persisted.
type StoreWriteError struct {
	Count int
	Err   error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("failed to insert %d episodes: %v", e.Count, e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}
