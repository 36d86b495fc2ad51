package statebox

// Snapshot is an immutable point-in-time capture of an Entity's payload
// and tag, stamped with the owning Entity's identity and a sequence
// number. The payload inside is a deep copy; nothing the live Entity does
// after capture can alter it
type Snapshot[T any] struct {
	entityID EntityID
	sequence int64
	tag      Tag
	payload  T
	clone    CloneFunc[T]
}

// EntityID returns the identity of the Entity the Snapshot was captured
// from
func (s *Snapshot[_]) EntityID() EntityID {
	return s.entityID
}

// Sequence returns the Snapshot's capture sequence number, monotonically
// increasing per Entity
func (s *Snapshot[_]) Sequence() int64 {
	return s.sequence
}

// Tag returns the tag the Entity held at capture time
func (s *Snapshot[_]) Tag() Tag {
	return s.tag
}

// Payload returns a deep copy of the captured payload. Mutating the
// returned value cannot affect the Snapshot
func (s *Snapshot[T]) Payload() (T, error) {
	return s.clone(s.payload)
}
