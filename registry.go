package statebox

import (
	"fmt"
	"slices"
)

type (
	// Effect applies a transition's payload mutation. It receives a
	// scratch copy of the payload and returns the value to commit; an
	// error aborts the transition with nothing applied
	Effect[T any] func(T, Event) (T, error)

	// Guard decides whether a declared transition may fire. Guards must
	// not mutate the payload they are given
	Guard[T any] func(T, Event) (bool, error)

	// Transition declares the outcome for one (tag, event) pair
	Transition[T any] struct {
		On     EventType
		To     Tag
		Effect Effect[T]
		Guard  Guard[T]
	}

	// Registry holds the closed set of declared tags and the transition
	// table between them. It is immutable after construction and shared
	// read-only across every Entity built from it
	Registry[T any] struct {
		initial Tag
		tags    map[Tag]map[EventType]*Transition[T]
		order   []Tag
	}
)

// NewRegistry validates and builds a Registry from a transition table. A
// tag mapped to an empty (or nil) transition list is terminal. Every
// transition target must itself be a declared tag, and no (tag, event)
// pair may be declared twice
func NewRegistry[T any](
	initial Tag, table map[Tag][]Transition[T],
) (*Registry[T], error) {
	if initial == "" {
		return nil, ErrNoInitialTag
	}

	r := &Registry[T]{
		initial: initial,
		tags:    make(map[Tag]map[EventType]*Transition[T], len(table)),
	}

	for tag := range table {
		r.tags[tag] = map[EventType]*Transition[T]{}
		r.order = append(r.order, tag)
	}
	slices.Sort(r.order)

	if _, ok := r.tags[initial]; !ok {
		return nil, fmt.Errorf("initial %q: %w", initial, ErrUndeclaredTag)
	}

	for tag, transitions := range table {
		for i := range transitions {
			t := transitions[i]
			if _, ok := r.tags[t.To]; !ok {
				return nil, fmt.Errorf(
					"%q + %q -> %q: %w", tag, t.On, t.To, ErrUndeclaredTag,
				)
			}
			if _, ok := r.tags[tag][t.On]; ok {
				return nil, fmt.Errorf(
					"%q + %q: %w", tag, t.On, ErrDuplicateTransition,
				)
			}
			r.tags[tag][t.On] = &t
		}
	}

	return r, nil
}

// Initial returns the tag assigned to new Entities
func (r *Registry[_]) Initial() Tag {
	return r.initial
}

// Tags returns the declared tags in sorted order
func (r *Registry[_]) Tags() []Tag {
	return slices.Clone(r.order)
}

// Declared reports whether tag is part of the Registry
func (r *Registry[_]) Declared(tag Tag) bool {
	_, ok := r.tags[tag]
	return ok
}

// Terminal reports whether tag declares no outgoing transitions
func (r *Registry[_]) Terminal(tag Tag) bool {
	transitions, ok := r.tags[tag]
	return ok && len(transitions) == 0
}

// Events returns the event types tag declares transitions for, in sorted
// order
func (r *Registry[T]) Events(tag Tag) []EventType {
	transitions := r.tags[tag]
	events := make([]EventType, 0, len(transitions))
	for evt := range transitions {
		events = append(events, evt)
	}
	slices.Sort(events)
	return events
}

// lookup resolves (tag, event) to exactly one outcome. A tag with no
// transitions at all rejects with TerminalState; a tag that declares
// transitions, but none for this event, rejects with UnknownEvent. An
// undeclared tag is a contract violation, not a runtime condition
func (r *Registry[T]) lookup(
	tag Tag, evt EventType,
) (*Transition[T], *IllegalTransitionError) {
	transitions, ok := r.tags[tag]
	if !ok {
		panic(fmt.Sprintf("statebox: undeclared tag %q", tag))
	}
	if len(transitions) == 0 {
		return nil, &IllegalTransitionError{
			Tag:    tag,
			Event:  evt,
			Reason: TerminalState,
		}
	}
	t, ok := transitions[evt]
	if !ok {
		return nil, &IllegalTransitionError{
			Tag:    tag,
			Event:  evt,
			Reason: UnknownEvent,
		}
	}
	return t, nil
}
