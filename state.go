package tickfsm

// EnterFunc runs when a state is entered. from is the state being left.
type EnterFunc[S State] func(from S) error

// ExitFunc runs when a state is left. to is the state being entered.
type ExitFunc[S State] func(to S) error

// UpdateFunc runs once per Update call while its state is current.
// deltaSeconds is passed through unchanged.
type UpdateFunc func(deltaSeconds float64) error

// Handlers holds the callbacks of one state. Nil fields are empty slots.
type Handlers[S State] struct {
	OnEnter  EnterFunc[S]
	OnExit   ExitFunc[S]
	OnUpdate UpdateFunc
}

func (h Handlers[S]) has(kind HandlerKind) bool {
	switch kind {
	case HandlerEnter:
		return h.OnEnter != nil
	case HandlerExit:
		return h.OnExit != nil
	case HandlerUpdate:
		return h.OnUpdate != nil
	}
	return false
}

// StateOption is a functional option for configuring the handlers of a state
type StateOption[S State] func(*Handlers[S])

// WithOnEnter sets the entry action for the state
func WithOnEnter[S State](fn EnterFunc[S]) StateOption[S] {
	return func(h *Handlers[S]) {
		h.OnEnter = fn
	}
}

// WithOnExit sets the exit action for the state
func WithOnExit[S State](fn ExitFunc[S]) StateOption[S] {
	return func(h *Handlers[S]) {
		h.OnExit = fn
	}
}

// WithOnUpdate sets the per-tick action for the state
func WithOnUpdate[S State](fn UpdateFunc) StateOption[S] {
	return func(h *Handlers[S]) {
		h.OnUpdate = fn
	}
}
