package statebox

import "github.com/google/uuid"

type (
	// Tag names a behavioral state an Entity can occupy
	Tag string

	// EventType names a request presented to an Entity
	EventType string

	// EntityID identifies a single Entity and acts as the notification
	// subject for its observers
	EntityID string

	// Event carries an event type and optional caller-supplied data into
	// an Entity operation
	Event struct {
		Type EventType
		Data any
	}

	// Change describes a committed state transition
	Change struct {
		EntityID    EntityID  `json:"entity_id"`
		PreviousTag Tag       `json:"previous_tag"`
		NewTag      Tag       `json:"new_tag"`
		Event       EventType `json:"event"`
	}

	// Result is returned by a successful Process call. Failures holds the
	// per-observer errors collected while fanning out the change
	Result struct {
		Change   *Change
		Failures []*ObserverError
	}
)

// EventRestored is the event type stamped on change records produced by
// Undo and Restore
const EventRestored EventType = "statebox.restored"

// NewEntityID returns a fresh random EntityID
func NewEntityID() EntityID {
	return EntityID(uuid.NewString())
}
