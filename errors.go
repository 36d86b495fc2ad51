package statebox

import (
	"errors"
	"fmt"
)

type (
	// RejectReason classifies why Process refused an event
	RejectReason int

	// IllegalTransitionError is returned by Process when the current tag
	// has no accepted handling for an event. The Entity is unchanged
	IllegalTransitionError struct {
		Tag    Tag
		Event  EventType
		Reason RejectReason
	}

	// SnapshotMismatchError is returned when a Snapshot is restored
	// against an Entity other than the one it was captured from
	SnapshotMismatchError struct {
		EntityID   EntityID
		SnapshotID EntityID
	}

	// ObserverError captures a single observer failure during fan-out.
	// Position is the observer's insertion position for the subject at
	// the moment the notification was delivered
	ObserverError struct {
		Subject  EntityID
		Position int
		Err      error
	}

	// GuardError wraps a guard expression that failed to compile or did
	// not evaluate to a boolean
	GuardError struct {
		Expr string
		Err  error
	}
)

const (
	// UnknownEvent means the current tag declares transitions, but none
	// for this event
	UnknownEvent RejectReason = iota

	// TerminalState means the current tag declares no transitions at all
	TerminalState

	// GuardRejected means a declared transition's guard declined the event
	GuardRejected
)

var (
	// ErrEmptyHistory indicates Undo was called with no saved Snapshots
	ErrEmptyHistory = errors.New("no snapshots to restore")

	// ErrNilRegistry indicates an Entity was constructed without a Registry
	ErrNilRegistry = errors.New("registry is required")

	// ErrNoInitialTag indicates a Registry was declared without an
	// initial tag
	ErrNoInitialTag = errors.New("initial tag is required")

	// ErrUndeclaredTag indicates a transition or initial tag references a
	// tag the Registry does not declare
	ErrUndeclaredTag = errors.New("tag not declared")

	// ErrDuplicateTransition indicates a (tag, event) pair was declared
	// more than once
	ErrDuplicateTransition = errors.New("duplicate transition")

	// ErrUnknownEffect indicates a definition names an effect that was
	// not registered
	ErrUnknownEffect = errors.New("unknown effect")
)

func (r RejectReason) String() string {
	switch r {
	case UnknownEvent:
		return "unknown event"
	case TerminalState:
		return "terminal state"
	case GuardRejected:
		return "guard rejected"
	default:
		return fmt.Sprintf("reject reason %d", int(r))
	}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf(
		"illegal transition: event %q in tag %q: %s", e.Event, e.Tag, e.Reason,
	)
}

func (e *SnapshotMismatchError) Error() string {
	return fmt.Sprintf(
		"snapshot mismatch: snapshot belongs to %q, not %q",
		e.SnapshotID, e.EntityID,
	)
}

func (e *ObserverError) Error() string {
	return fmt.Sprintf(
		"observer %d for subject %q: %v", e.Position, e.Subject, e.Err,
	)
}

func (e *ObserverError) Unwrap() error {
	return e.Err
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("guard %q: %v", e.Expr, e.Err)
}

func (e *GuardError) Unwrap() error {
	return e.Err
}
