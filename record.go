package tickfsm

import "fmt"

// Record is the serializable snapshot of a machine: the current state plus
// the application data. Its fields are tagged for the codecs in the codec
// package.
type Record[S State, D any] struct {
	CurrentState S `json:"current_state" msgpack:"current_state" yaml:"current_state"`
	Data         D `json:"data" msgpack:"data" yaml:"data"`
}

// Save returns a snapshot of the machine. The record is a value copy; data
// holding maps, slices or pointers still shares their backing storage.
func (m *Machine[S, D]) Save() Record[S, D] {
	return Record[S, D]{
		CurrentState: m.currentState,
		Data:         m.data,
	}
}

// Load replaces the machine's data with rec.Data and makes rec.CurrentState
// current. No entry or exit actions run. A record with an out-of-range state
// is rejected and the machine is left unchanged.
func (m *Machine[S, D]) Load(rec Record[S, D]) error {
	if !inRange(rec.CurrentState, len(m.handlers)) {
		return fmt.Errorf("load state %v: %w", rec.CurrentState, ErrStateOutOfRange)
	}

	m.logger.Debug("loading state", "state", rec.CurrentState, "previous", m.currentState)
	m.data = rec.Data
	m.currentState = rec.CurrentState
	return nil
}
