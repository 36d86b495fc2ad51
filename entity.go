package statebox

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Entity is a stateful value whose behavior is governed by a Registry.
// All payload mutation happens through Process, Undo, and Restore; the
// payload is never handed out by reference. A single lock serializes
// Process, Save, Undo, and Restore, so saves can never capture a
// half-applied effect. Fan-out runs after commit, outside the lock, which
// lets observer callbacks re-enter the Entity through the normal path
type Entity[T any] struct {
	id       EntityID
	registry *Registry[T]
	notifier *Notifier
	logger   *zap.Logger
	clone    CloneFunc[T]
	history  *History[T]

	mu      sync.Mutex
	payload T
	tag     Tag
	current atomic.Value
}

// NewEntity creates an Entity at the Registry's initial tag holding the
// given payload. Zero-value Config fields are filled from DefaultConfig
func NewEntity[T any](
	reg *Registry[T], payload T, cfg Config[T],
) (*Entity[T], error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}
	cfg = cfg.withDefaults()

	e := &Entity[T]{
		id:       cfg.ID,
		registry: reg,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		clone:    cfg.Clone,
		history:  newHistory(cfg.ID, cfg.Clone),
		payload:  payload,
		tag:      reg.Initial(),
	}
	e.current.Store(reg.Initial())
	return e, nil
}

// ID returns the Entity's identity
func (e *Entity[_]) ID() EntityID {
	return e.id
}

// CurrentTag returns the committed tag. It never blocks behind an
// in-flight operation; it reports the last commit
func (e *Entity[_]) CurrentTag() Tag {
	return e.current.Load().(Tag)
}

// Registry returns the Registry governing this Entity
func (e *Entity[T]) Registry() *Registry[T] {
	return e.registry
}

// History returns the Entity's snapshot history for inspection
func (e *Entity[T]) History() *History[T] {
	return e.history
}

// Payload returns a deep copy of the current payload
func (e *Entity[T]) Payload() (T, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clone(e.payload)
}

// Process resolves evt against the current tag's declared transitions and,
// when accepted, applies the effect and the tag change as one commit, then
// fans the change out to the Entity's observers. A rejected or failed
// event leaves payload and tag untouched and notifies nobody; rejections
// are reported as IllegalTransitionError values, never panics
func (e *Entity[T]) Process(evt Event) (*Result, error) {
	change, err := e.processLocked(evt)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("state transition",
		zap.String("entity_id", string(e.id)),
		zap.String("event", string(evt.Type)),
		zap.String("previous_tag", string(change.PreviousTag)),
		zap.String("new_tag", string(change.NewTag)),
	)

	return &Result{
		Change:   change,
		Failures: e.notifier.notify(e.id, change),
	}, nil
}

func (e *Entity[T]) processLocked(evt Event) (*Change, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, reject := e.registry.lookup(e.tag, evt.Type)
	if reject != nil {
		return nil, reject
	}

	// Guards and effects run against a scratch copy; the live payload
	// changes only at commit
	scratch := e.payload
	if t.Guard != nil || t.Effect != nil {
		var err error
		if scratch, err = e.clone(e.payload); err != nil {
			return nil, err
		}
	}

	if t.Guard != nil {
		ok, err := t.Guard(scratch, evt)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &IllegalTransitionError{
				Tag:    e.tag,
				Event:  evt.Type,
				Reason: GuardRejected,
			}
		}
	}

	if t.Effect != nil {
		next, err := t.Effect(scratch, evt)
		if err != nil {
			return nil, err
		}
		scratch = next
	}

	previous := e.tag
	e.payload = scratch
	e.tag = t.To
	e.current.Store(t.To)

	return &Change{
		EntityID:    e.id,
		PreviousTag: previous,
		NewTag:      t.To,
		Event:       evt.Type,
	}, nil
}

// Save captures a deep copy of the current payload and tag onto the
// Entity's History
func (e *Entity[T]) Save() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.history.capture(e.payload, e.tag)
	if err != nil {
		return err
	}

	e.logger.Debug("snapshot saved",
		zap.String("entity_id", string(e.id)),
		zap.Int64("sequence", snap.Sequence()),
		zap.String("tag", string(e.tag)),
	)
	return nil
}

// Undo pops the most recent Snapshot and restores its payload and tag.
// With no Snapshot saved it returns ErrEmptyHistory and changes nothing.
// Undo never notifies observers; pass the returned Change to Announce to
// inform them explicitly
func (e *Entity[T]) Undo() (*Change, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.history.pop()
	if err != nil {
		return nil, err
	}

	change, err := e.restoreLocked(snap)
	if err != nil {
		e.history.push(snap)
		return nil, err
	}
	return change, nil
}

// Restore overwrites the Entity's payload and tag from a Snapshot without
// touching the History. Snapshots captured from a different Entity are
// rejected with SnapshotMismatchError
func (e *Entity[T]) Restore(snap *Snapshot[T]) (*Change, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.restoreLocked(snap)
}

func (e *Entity[T]) restoreLocked(snap *Snapshot[T]) (*Change, error) {
	if snap.EntityID() != e.id {
		return nil, &SnapshotMismatchError{
			EntityID:   e.id,
			SnapshotID: snap.EntityID(),
		}
	}

	payload, err := snap.Payload()
	if err != nil {
		return nil, err
	}

	previous := e.tag
	e.payload = payload
	e.tag = snap.Tag()
	e.current.Store(snap.Tag())

	return &Change{
		EntityID:    e.id,
		PreviousTag: previous,
		NewTag:      snap.Tag(),
		Event:       EventRestored,
	}, nil
}

// Announce pushes an explicit change record through the Entity's fan-out
// path, returning any per-observer failures. Use it after Undo or Restore
// when observers should hear about the restoration
func (e *Entity[_]) Announce(ch *Change) []*ObserverError {
	if ch == nil {
		return nil
	}
	return e.notifier.notify(e.id, ch)
}

// Attach registers an observer for this Entity's changes
func (e *Entity[_]) Attach(o Observer) {
	e.notifier.Attach(e.id, o)
}

// Detach removes a previously attached observer
func (e *Entity[_]) Detach(o Observer) {
	e.notifier.Detach(e.id, o)
}
