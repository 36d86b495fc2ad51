package statebox

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type (
	// Definition is the declarative form of a Registry, suitable for
	// loading from YAML. Effects are referenced by name and bound at
	// build time; guards are expr-lang expressions
	Definition struct {
		Initial Tag                     `yaml:"initial"`
		Tags    map[Tag][]TransitionDef `yaml:"tags"`
	}

	// TransitionDef declares one transition in a Definition
	TransitionDef struct {
		On     EventType `yaml:"on"`
		To     Tag       `yaml:"to"`
		Effect string    `yaml:"effect,omitempty"`
		Guard  string    `yaml:"guard,omitempty"`
	}

	// Effects maps the effect names a Definition may reference to their
	// implementations
	Effects[T any] map[string]Effect[T]
)

// ParseDefinition unmarshals a YAML Registry definition
func ParseDefinition(data []byte) (*Definition, error) {
	d := &Definition{}
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, err
	}
	return d, nil
}

// BuildRegistry binds a Definition's named effects and guard expressions
// and validates the result into a Registry
func BuildRegistry[T any](
	d *Definition, effects Effects[T],
) (*Registry[T], error) {
	table := make(map[Tag][]Transition[T], len(d.Tags))

	for tag, defs := range d.Tags {
		transitions := make([]Transition[T], 0, len(defs))
		for _, def := range defs {
			t := Transition[T]{On: def.On, To: def.To}

			if def.Effect != "" {
				effect, ok := effects[def.Effect]
				if !ok {
					return nil, fmt.Errorf(
						"%q + %q: effect %q: %w",
						tag, def.On, def.Effect, ErrUnknownEffect,
					)
				}
				t.Effect = effect
			}

			if def.Guard != "" {
				guard, err := ExprGuard[T](def.Guard)
				if err != nil {
					return nil, err
				}
				t.Guard = guard
			}

			transitions = append(transitions, t)
		}
		table[tag] = transitions
	}

	return NewRegistry(d.Initial, table)
}

// LoadRegistry parses a YAML definition and builds its Registry
func LoadRegistry[T any](
	data []byte, effects Effects[T],
) (*Registry[T], error) {
	d, err := ParseDefinition(data)
	if err != nil {
		return nil, err
	}
	return BuildRegistry(d, effects)
}
