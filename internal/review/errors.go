package review

import (
	"errors"
	"fmt"
)

// ErrQueueExhausted is returned by Rate when the queue has no current entry.
var ErrQueueExhausted = errors.New("review queue exhausted")

// PersistenceError indicates the progress store failed during load or save.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// InvalidStateError indicates a rating for an item that has neither a
// progress record nor a catalog definition.
type InvalidStateError struct {
	UserID string
	ItemID string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("no progress record or item definition for item %q (user %q)", e.ItemID, e.UserID)
}
