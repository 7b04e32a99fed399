package coordinator

import (
	"errors"
	"fmt"
)

// Handler-level error kinds. Every error returned by the shared structures
// wraps one of these, so handlers classify with errors.Is and turn the kind
// into an error acknowledgment code for the sender.
var (
	// ErrNotFound means the target id is not live (or not listed, for
	// directory operations).
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the sender is not allowed to act on the target,
	// e.g. messaging a participant who is not their session partner.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict means a defensive invariant check failed. Under the
	// coordinator's serialization this should be unreachable; it is logged
	// and the event dropped, never propagated to other participants.
	ErrConflict = errors.New("conflict")
)

func errSignalTarget(toID string) error {
	return fmt.Errorf("signal to %s: %w", toID, ErrNotFound)
}

func errNotPartner(fromID, toID string) error {
	return fmt.Errorf("%s has no active session with %s: %w", fromID, toID, ErrForbidden)
}

// errorCode maps an error kind to the wire code carried by an error
// acknowledgment.
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrConflict):
		return "conflict"
	}
	return "internal"
}
