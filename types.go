package tickfsm

import (
	"errors"
	"log/slog"
)

// State is the constraint for state identifiers. Values must map densely
// onto 0..N-1, where N is the state count given to NewDefinition.
type State interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// HandlerKind names one of the three callback slots of a state
type HandlerKind string

const (
	HandlerEnter  HandlerKind = "enter"
	HandlerExit   HandlerKind = "exit"
	HandlerUpdate HandlerKind = "update"
)

var (
	// ErrStateOutOfRange is returned for a state outside 0..N-1
	ErrStateOutOfRange = errors.New("state out of range")
	// ErrNoHandler is returned in strict mode when a slot has no callback
	ErrNoHandler = errors.New("no handler registered")
	// ErrInvalidStateCount is returned for a definition with N < 1
	ErrInvalidStateCount = errors.New("invalid state count")
	// ErrInvalidDefinition wraps every error reported by Build
	ErrInvalidDefinition = errors.New("invalid definition")
)

// Logger is the default logger used when none is provided
var Logger = slog.Default()
