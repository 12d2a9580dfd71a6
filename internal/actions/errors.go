package actions

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when an operation requires a logged-in
// session and none exists.
var ErrUnauthenticated = errors.New("not logged in")

// ValidationError reports malformed user input before any dispatch.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RemoteRejection reports that the wallet accepted the request but the
// user or the chain rejected the operation.
type RemoteRejection struct {
	Op     string
	Reason string
}

func (e *RemoteRejection) Error() string {
	return fmt.Sprintf("%s rejected: %s", e.Op, e.Reason)
}
