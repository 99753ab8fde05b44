package booking

import (
	"errors"
	"fmt"
)

// ErrUnknownFacility reports a facility name outside the configured set.
var ErrUnknownFacility = errors.New("unknown facility")

// CommitError wraps a store-adapter failure during insert, patch or delete.
// The transaction that hit it remains retryable with identical parameters;
// nothing is assumed partially committed.
type CommitError struct {
	Op  string
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit %s failed: %v", e.Op, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }
