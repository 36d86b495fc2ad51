package statebox

// Handler processes a single change record
type Handler func(*Change) error

// MakeDispatcher builds an Observer that routes change records to
// handlers keyed by event type. Changes with no matching handler are
// ignored
func MakeDispatcher(handlers map[EventType]Handler) Observer {
	return ObserverFunc(func(ch *Change) error {
		if fn, ok := handlers[ch.Event]; ok {
			return fn(ch)
		}
		return nil
	})
}

// MakeTagDispatcher builds an Observer that routes change records to
// handlers keyed by the tag the Entity arrived at
func MakeTagDispatcher(handlers map[Tag]Handler) Observer {
	return ObserverFunc(func(ch *Change) error {
		if fn, ok := handlers[ch.NewTag]; ok {
			return fn(ch)
		}
		return nil
	})
}
