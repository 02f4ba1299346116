package eventing

import "errors"

var (
	// ErrUnknownType is wrapped by errors about types outside a vocabulary.
	ErrUnknownType = errors.New("unknown event type")

	// ErrOverlappingTypes is wrapped when two vocabularies share a type.
	ErrOverlappingTypes = errors.New("overlapping event types")

	// ErrReentrantDispatch is returned when a listener dispatches on the bus
	// that is currently delivering to it.
	ErrReentrantDispatch = errors.New("reentrant dispatch")
)

// ConfigurationError reports a bus that is wired inconsistently, such as a
// listener subscribing to a type the bus never emits.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return "eventing: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
