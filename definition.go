package tickfsm

import (
	"fmt"
)

// Definition holds the FSM structure before building a Machine.
// S is the state enumeration, D the application data saved alongside the
// current state.
type Definition[S State, D any] struct {
	count    int
	handlers []Handlers[S]
	initial  S
	err      error
}

// NewDefinition creates a new FSM definition builder for count states
func NewDefinition[S State, D any](count int) *Definition[S, D] {
	d := &Definition[S, D]{count: count}
	if count < 1 {
		d.err = fmt.Errorf("%w: %d", ErrInvalidStateCount, count)
		return d
	}
	d.handlers = make([]Handlers[S], count)
	return d
}

// State applies handler options to a state. Options overwrite the slots
// they set; other slots keep their current callbacks.
func (d *Definition[S, D]) State(id S, opts ...StateOption[S]) *Definition[S, D] {
	if !d.check(id, "register handlers for") {
		return d
	}
	for _, opt := range opts {
		opt(&d.handlers[id])
	}
	return d
}

// OnEnter sets the entry action of a state, replacing any previous one
func (d *Definition[S, D]) OnEnter(id S, fn EnterFunc[S]) *Definition[S, D] {
	return d.State(id, WithOnEnter(fn))
}

// OnExit sets the exit action of a state, replacing any previous one
func (d *Definition[S, D]) OnExit(id S, fn ExitFunc[S]) *Definition[S, D] {
	return d.State(id, WithOnExit(fn))
}

// OnUpdate sets the per-tick action of a state, replacing any previous one
func (d *Definition[S, D]) OnUpdate(id S, fn UpdateFunc) *Definition[S, D] {
	return d.State(id, WithOnUpdate[S](fn))
}

// Initial sets the initial state. Defaults to S(0).
func (d *Definition[S, D]) Initial(id S) *Definition[S, D] {
	if !d.check(id, "set initial state") {
		return d
	}
	d.initial = id
	return d
}

// check records the first out-of-range error and reports whether id is usable
func (d *Definition[S, D]) check(id S, action string) bool {
	if d.handlers == nil {
		// invalid count, already reported
		return false
	}
	if !inRange(id, d.count) {
		if d.err == nil {
			d.err = fmt.Errorf("%s state %v: %w (have %d states)", action, id, ErrStateOutOfRange, d.count)
		}
		return false
	}
	return true
}

// Validate checks the definition for errors
func (d *Definition[S, D]) Validate() error {
	return d.err
}

// Build creates a Machine from the definition. The machine takes a copy of
// the handler table, so later changes to the definition do not affect it.
func (d *Definition[S, D]) Build(opts ...MachineOption[S, D]) (*Machine[S, D], error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}

	handlers := make([]Handlers[S], d.count)
	copy(handlers, d.handlers)

	m := &Machine[S, D]{
		handlers:     handlers,
		currentState: d.initial,
		logger:       Logger,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// inRange reports whether id is a valid index into a table of count states
func inRange[S State](id S, count int) bool {
	// id < 0 is always false for unsigned kinds
	if id < 0 {
		return false
	}
	return uint64(id) < uint64(count)
}
