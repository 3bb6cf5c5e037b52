package nfa

import (
	"errors"
	"fmt"
)

// Sentinel errors. No function in this package returns either of them:
// ErrUnknownState travels inside the BuildError a builder panics with, and
// ErrRepeatInvalid is only a named value for callers' own checks.
var (
	// ErrRepeatInvalid names an occurrence range that cannot be satisfied
	// (min > max). Repeat does not return it: Repeat treats that range as a
	// silent no-op. The error exists for callers that want to catch the
	// mistake themselves before calling Repeat.
	ErrRepeatInvalid = errors.New("nfa: min_occurs greater than max_occurs")

	// ErrUnknownState is wrapped by BuildError when a StateID does not
	// belong to the NFA it is used against.
	ErrUnknownState = errors.New("nfa: unknown state")
)

// BuildError reports misuse of the construction API: adding a transition
// out of Final, or referencing a state handle that was never allocated by
// this graph. These are programmer errors — spec'd as fatal — so the
// builder panics with one rather than returning it; BuildError exists so
// the panic value carries structured context for whoever recovers it
// (tests, mostly).
type BuildError struct {
	Op    string
	State StateID
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("nfa: %s at state %d: %v", e.Op, e.State, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func panicFromFinal(op string) {
	panic(&BuildError{Op: op, State: Final, Err: errors.New("Final has no outbound transitions")})
}

func panicUnknownState(op string, s StateID) {
	panic(&BuildError{Op: op, State: s, Err: ErrUnknownState})
}
