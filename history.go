package statebox

import "sync"

// History is a per-Entity stack of Snapshots. Save pushes, Undo pops the
// most recent; nothing else removes entries. Mutation happens only through
// the owning Entity, which serializes capture and restore with its own
// operations
type History[T any] struct {
	entityID EntityID
	clone    CloneFunc[T]

	mu      sync.Mutex
	stack   []*Snapshot[T]
	nextSeq int64
}

func newHistory[T any](id EntityID, clone CloneFunc[T]) *History[T] {
	return &History[T]{
		entityID: id,
		clone:    clone,
	}
}

// EntityID returns the identity of the owning Entity
func (h *History[_]) EntityID() EntityID {
	return h.entityID
}

// Depth returns the number of Snapshots currently saved
func (h *History[_]) Depth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack)
}

// NextSequence returns the sequence number the next captured Snapshot
// will carry
func (h *History[_]) NextSequence() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.nextSeq
}

// Latest returns the most recently saved Snapshot without popping it
func (h *History[T]) Latest() (*Snapshot[T], bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.stack) == 0 {
		return nil, false
	}
	return h.stack[len(h.stack)-1], true
}

// capture deep-copies payload and tag into a new Snapshot and pushes it
func (h *History[T]) capture(payload T, tag Tag) (*Snapshot[T], error) {
	copied, err := h.clone(payload)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	snap := &Snapshot[T]{
		entityID: h.entityID,
		sequence: h.nextSeq,
		tag:      tag,
		payload:  copied,
		clone:    h.clone,
	}
	h.stack = append(h.stack, snap)
	h.nextSeq++
	return snap, nil
}

// push restores a previously popped Snapshot to the top of the stack
func (h *History[T]) push(snap *Snapshot[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack = append(h.stack, snap)
}

// pop removes and returns the most recent Snapshot
func (h *History[T]) pop() (*Snapshot[T], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.stack) == 0 {
		return nil, ErrEmptyHistory
	}
	snap := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return snap, nil
}
