package session

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongPhase is returned when an operation is not valid in the
	// session's current phase.
	ErrWrongPhase = errors.New("operation not valid in current phase")

	// ErrClosed is returned by every operation after Complete.
	ErrClosed = errors.New("session is closed")
)

// ValidationError reports an answer value outside yes/no/skip.
// The offending event is a no-op.
type ValidationError struct {
	Input string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid answer %q (want yes, no or skip)", e.Input)
}

// Persistence operations reported by PersistenceError.
const (
	OpLoad       = "load"
	OpCheckpoint = "checkpoint"
	OpInsert     = "insert"
	OpClear      = "clear"
)

// PersistenceError reports a failed store call. The session stays valid
// and usable after one.
type PersistenceError struct {
	Op  string
	Err error
}

var persistenceActions = map[string]string{
	OpLoad:       "load saved progress",
	OpCheckpoint: "save progress checkpoint",
	OpInsert:     "save assessment",
	OpClear:      "clear saved progress",
}

func (e *PersistenceError) Error() string {
	action, ok := persistenceActions[e.Op]
	if !ok {
		action = e.Op
	}
	return fmt.Sprintf("%s: %v", action, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
