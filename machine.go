package tickfsm

import (
	"fmt"
	"log/slog"
)

// Machine is the runtime FSM instance.
//
// A Machine is not safe for concurrent use. It is meant to be driven by a
// single owner, such as a simulation tick loop.
type Machine[S State, D any] struct {
	handlers     []Handlers[S]
	currentState S
	data         D

	logger              *slog.Logger
	strict              bool
	stateChangeCallback func(from, to S)
}

// MachineOption is a functional option for configuring a Machine
type MachineOption[S State, D any] func(*Machine[S, D])

// WithLogger sets the logger for the machine
func WithLogger[S State, D any](logger *slog.Logger) MachineOption[S, D] {
	return func(m *Machine[S, D]) {
		m.logger = logger
	}
}

// WithData sets the initial application data saved with the machine
func WithData[S State, D any](data D) MachineOption[S, D] {
	return func(m *Machine[S, D]) {
		m.data = data
	}
}

// WithStrictHandlers makes SetState and Update fail with ErrNoHandler when
// a required slot is empty. By default empty slots are no-ops.
func WithStrictHandlers[S State, D any]() MachineOption[S, D] {
	return func(m *Machine[S, D]) {
		m.strict = true
	}
}

// WithStateChangeCallback sets a callback invoked after each state change
func WithStateChangeCallback[S State, D any](fn func(from, to S)) MachineOption[S, D] {
	return func(m *Machine[S, D]) {
		m.stateChangeCallback = fn
	}
}

// OnStateChange sets a callback invoked after each state change
func (m *Machine[S, D]) OnStateChange(fn func(from, to S)) {
	m.stateChangeCallback = fn
}

// CurrentState returns the current state
func (m *Machine[S, D]) CurrentState() S {
	return m.currentState
}

// StateCount returns the number of states the machine was built with
func (m *Machine[S, D]) StateCount() int {
	return len(m.handlers)
}

// SetState leaves the current state and enters next. The exit action of the
// current state receives next, then the entry action of next receives the
// previous state. The current state changes only after both succeed; an
// error from either leaves it untouched.
//
// Transitioning to the current state runs its exit and entry actions.
func (m *Machine[S, D]) SetState(next S) error {
	if !inRange(next, len(m.handlers)) {
		return fmt.Errorf("set state %v: %w", next, ErrStateOutOfRange)
	}

	from := m.currentState
	if err := m.checkHandler(from, HandlerExit); err != nil {
		return err
	}
	if err := m.checkHandler(next, HandlerEnter); err != nil {
		return err
	}

	m.logger.Debug("exiting state", "state", from, "to", next)
	if fn := m.handlers[from].OnExit; fn != nil {
		if err := fn(next); err != nil {
			return fmt.Errorf("exit action failed for %v: %w", from, err)
		}
	}

	m.logger.Debug("entering state", "state", next, "from", from)
	if fn := m.handlers[next].OnEnter; fn != nil {
		if err := fn(from); err != nil {
			return fmt.Errorf("entry action failed for %v: %w", next, err)
		}
	}

	m.currentState = next
	m.logger.Debug("state changed", "from", from, "to", next)

	if m.stateChangeCallback != nil {
		m.stateChangeCallback(from, next)
	}

	return nil
}

// Update runs the update action of the current state once
func (m *Machine[S, D]) Update(deltaSeconds float64) error {
	current := m.currentState
	if err := m.checkHandler(current, HandlerUpdate); err != nil {
		return err
	}

	if fn := m.handlers[current].OnUpdate; fn != nil {
		if err := fn(deltaSeconds); err != nil {
			return fmt.Errorf("update action failed for %v: %w", current, err)
		}
	}
	return nil
}

// checkHandler enforces registered slots in strict mode
func (m *Machine[S, D]) checkHandler(id S, kind HandlerKind) error {
	if !m.strict || m.handlers[id].has(kind) {
		return nil
	}
	return fmt.Errorf("%s handler for state %v: %w", kind, id, ErrNoHandler)
}

// Data returns the application data owned by the machine. It is saved and
// loaded together with the current state.
func (m *Machine[S, D]) Data() *D {
	return &m.data
}
