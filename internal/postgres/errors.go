package postgres

import (
	"errors"
	"fmt"
)

// ErrNoActiveConnection is returned when a data operation is attempted
// before a successful Connect (or after Disconnect).
var ErrNoActiveConnection = errors.New("no active connection")

// ConnectionError wraps a transport-level failure to establish a pool.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError wraps a statement execution failure. The message carries the
// driver diagnostic verbatim so it can be shown to the user directly.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query execution failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
