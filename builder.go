package statebox

// Builder provides a fluent API for declaring a Registry without building
// the transition table map by hand. Declaration problems are collected and
// reported from Build, so call chains stay unconditional
type Builder[T any] struct {
	initial Tag
	table   map[Tag][]*Transition[T]
	errs    []error
}

// TagBuilder declares transitions for a single tag
type TagBuilder[T any] struct {
	b   *Builder[T]
	tag Tag
}

// TransitionBuilder refines the most recently declared transition
type TransitionBuilder[T any] struct {
	tb *TagBuilder[T]
	t  *Transition[T]
}

// NewBuilder creates a Builder whose Registry starts entities at initial
func NewBuilder[T any](initial Tag) *Builder[T] {
	return &Builder[T]{
		initial: initial,
		table:   map[Tag][]*Transition[T]{},
	}
}

// Tag declares a tag, creating it if needed. A tag that is declared but
// given no transitions is terminal
func (b *Builder[T]) Tag(tag Tag) *TagBuilder[T] {
	if _, ok := b.table[tag]; !ok {
		b.table[tag] = []*Transition[T]{}
	}
	return &TagBuilder[T]{b: b, tag: tag}
}

// Build validates the declared table and returns the Registry
func (b *Builder[T]) Build() (*Registry[T], error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	table := make(map[Tag][]Transition[T], len(b.table))
	for tag, transitions := range b.table {
		declared := make([]Transition[T], len(transitions))
		for i, t := range transitions {
			declared[i] = *t
		}
		table[tag] = declared
	}
	return NewRegistry(b.initial, table)
}

// On declares a transition from this tag to target when evt arrives. The
// target tag is declared implicitly
func (tb *TagBuilder[T]) On(evt EventType, target Tag) *TransitionBuilder[T] {
	tb.b.Tag(target)
	t := &Transition[T]{On: evt, To: target}
	tb.b.table[tb.tag] = append(tb.b.table[tb.tag], t)
	return &TransitionBuilder[T]{tb: tb, t: t}
}

// Tag moves declaration to another tag
func (tb *TagBuilder[T]) Tag(tag Tag) *TagBuilder[T] {
	return tb.b.Tag(tag)
}

// Do attaches the transition's effect
func (x *TransitionBuilder[T]) Do(effect Effect[T]) *TransitionBuilder[T] {
	x.t.Effect = effect
	return x
}

// When attaches the transition's guard
func (x *TransitionBuilder[T]) When(guard Guard[T]) *TransitionBuilder[T] {
	x.t.Guard = guard
	return x
}

// WhenExpr attaches a guard compiled from an expression. Compile errors
// surface from Build
func (x *TransitionBuilder[T]) WhenExpr(
	expression string,
) *TransitionBuilder[T] {
	guard, err := ExprGuard[T](expression)
	if err != nil {
		x.tb.b.errs = append(x.tb.b.errs, err)
		return x
	}
	x.t.Guard = guard
	return x
}

// On declares the next transition for the same tag
func (x *TransitionBuilder[T]) On(
	evt EventType, target Tag,
) *TransitionBuilder[T] {
	return x.tb.On(evt, target)
}

// Tag moves declaration to another tag
func (x *TransitionBuilder[T]) Tag(tag Tag) *TagBuilder[T] {
	return x.tb.b.Tag(tag)
}
