package interfaces

import "errors"

// Error taxonomy for registry operations. Every failed operation wraps
// exactly one of these sentinels so callers can classify failures with
// errors.Is. Mutations are all-or-nothing: no partial state change is
// observable once an error is returned.
var (
	// ErrUnauthorized indicates the caller lacks the required role or
	// relationship for the operation.
	ErrUnauthorized = errors.New("caller is not authorized")

	// ErrNotFound indicates the referenced event or ticket does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidArgument indicates malformed input, such as a zero
	// organizer principal.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInactiveResource indicates the operation requires an active event.
	ErrInactiveResource = errors.New("event is not active")

	// ErrCapacityExceeded indicates the event's ticket supply is exhausted.
	ErrCapacityExceeded = errors.New("ticket supply exceeded")
)
