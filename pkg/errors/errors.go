package errors

import "errors"

// ErrImmutableEntry is returned when an update or delete targets an entry
// mirrored from an external calendar. External entries are read-only; the
// refusal happens at the service boundary, not in the UI.
var ErrImmutableEntry = errors.New("entry is synced from an external calendar and cannot be modified")

// ErrInvalidStateTransition is returned when a time-off decision targets a
// request that is no longer pending. Approved and rejected are terminal.
var ErrInvalidStateTransition = errors.New("request has already been decided")
