package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotAuthenticated is returned when a write is attempted without a valid session
var ErrNotAuthenticated = errors.New("store: no valid session")

// RemoteWriteError means the server rejected or never received a mutation.
// The snapshot is unchanged when it is returned.
type RemoteWriteError struct {
	Collection Collection
	Action     string
	Err        error
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Action, e.Err)
}

func (e *RemoteWriteError) Unwrap() error { return e.Err }

// Message is the user-facing text for the failed action
func (e *RemoteWriteError) Message() string {
	return "Failed to " + e.Action
}

// RemoteReadError means a reload could not fetch every requested collection.
// Nothing from that reload was applied.
type RemoteReadError struct {
	Collections []Collection
	Err         error
}

func (e *RemoteReadError) Error() string {
	names := make([]string, len(e.Collections))
	for i, c := range e.Collections {
		names[i] = string(c)
	}
	return fmt.Sprintf("reload %s: %v", strings.Join(names, ","), e.Err)
}

func (e *RemoteReadError) Unwrap() error { return e.Err }

// notFound reports whether err is a remote "no such record" answer
func notFound(err error) bool {
	var nf interface{ NotFound() bool }
	return errors.As(err, &nf) && nf.NotFound()
}
