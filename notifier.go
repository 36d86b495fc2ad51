package statebox

import (
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"
)

type (
	// Observer receives change records for the subjects it is attached
	// to. Implementations must be comparable values (pointer receivers
	// are the usual case); wrap bare functions with ObserverFunc
	Observer interface {
		OnChange(*Change) error
	}

	// Notifier maps subjects to insertion-ordered observer sets and fans
	// committed changes out to them. A single Notifier may serve any
	// number of entities
	Notifier struct {
		logger *zap.Logger

		mu       sync.Mutex
		subjects map[EntityID][]Observer
	}

	funcObserver struct {
		fn func(*Change) error
	}
)

// ObserverFunc wraps a function in a comparable Observer handle. Each
// call returns a distinct handle; keep it to Detach later
func ObserverFunc(fn func(*Change) error) Observer {
	return &funcObserver{fn: fn}
}

func (o *funcObserver) OnChange(ch *Change) error {
	return o.fn(ch)
}

// NewNotifier creates a Notifier. A nil logger disables logging
func NewNotifier(logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		logger:   logger,
		subjects: map[EntityID][]Observer{},
	}
}

// Attach registers an observer for a subject. Attaching an observer that
// is already registered for the subject is a no-op, so each observer
// receives at most one delivery per change
func (n *Notifier) Attach(subject EntityID, o Observer) {
	if o == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	if slices.Contains(n.subjects[subject], o) {
		return
	}
	n.subjects[subject] = append(n.subjects[subject], o)
}

// Detach removes an observer from a subject, preserving the insertion
// order of the remaining observers. Detaching an unregistered observer is
// a no-op
func (n *Notifier) Detach(subject EntityID, o Observer) {
	n.mu.Lock()
	defer n.mu.Unlock()

	observers := n.subjects[subject]
	i := slices.Index(observers, o)
	if i < 0 {
		return
	}
	n.subjects[subject] = slices.Delete(observers, i, i+1)
	if len(n.subjects[subject]) == 0 {
		delete(n.subjects, subject)
	}
}

// Observers returns the subject's current observer set in delivery order
func (n *Notifier) Observers(subject EntityID) []Observer {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.subjects[subject])
}

// notify delivers ch to the observer set as it existed at invocation, in
// insertion order. Observers that attach or detach mid-delivery affect
// only later notifications. A failing observer is recorded and skipped;
// the rest of the fan-out proceeds
func (n *Notifier) notify(subject EntityID, ch *Change) []*ObserverError {
	n.mu.Lock()
	observers := slices.Clone(n.subjects[subject])
	n.mu.Unlock()

	var failures []*ObserverError
	for i, o := range observers {
		if err := n.deliver(o, ch); err != nil {
			oe := &ObserverError{Subject: subject, Position: i, Err: err}
			failures = append(failures, oe)
			n.logger.Warn("observer failed",
				zap.String("subject", string(subject)),
				zap.Int("position", i),
				zap.String("event", string(ch.Event)),
				zap.Error(err),
			)
		}
	}
	return failures
}

func (n *Notifier) deliver(o Observer, ch *Change) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer panic: %v", r)
		}
	}()
	return o.OnChange(ch)
}
