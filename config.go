package statebox

import "go.uber.org/zap"

// Config carries an Entity's collaborators. Every field is optional;
// zero values are filled in by NewEntity. Logging is always an injected
// handle, never process-wide state
type Config[T any] struct {
	// ID is the Entity's identity; a random one is generated when empty
	ID EntityID

	// Clone is the deep-copy function used for snapshots and effect
	// scratch copies; defaults to JSONClone
	Clone CloneFunc[T]

	// Notifier delivers change records to observers. Entities sharing a
	// Notifier share its subject registry; by default each Entity gets
	// its own
	Notifier *Notifier

	// Logger receives transition and fan-out logging; defaults to a nop
	// logger
	Logger *zap.Logger
}

// DefaultConfig returns a Config with every default filled in
func DefaultConfig[T any]() Config[T] {
	return Config[T]{}.withDefaults()
}

func (c Config[T]) withDefaults() Config[T] {
	if c.ID == "" {
		c.ID = NewEntityID()
	}
	if c.Clone == nil {
		c.Clone = JSONClone[T]()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Notifier == nil {
		c.Notifier = NewNotifier(c.Logger)
	}
	return c
}
