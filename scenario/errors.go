package scenario

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnhandledEvent matches every *UnhandledEventError.
	ErrUnhandledEvent = errors.New("unhandled event")
)

// ConfigurationError reports a controller that is built or used in a way that
// can never work, such as starting before initialization.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scenario: %s: %v", e.Reason, e.Err)
	}

	return "scenario: " + e.Reason
}

// Is makes errors.Is(err, ErrConfiguration) hold.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// UnhandledEventError reports a scenario event that no handler accepted.
type UnhandledEventError struct {
	Event TimedEvent
}

func (e *UnhandledEventError) Error() string {
	return fmt.Sprintf("scenario: event not handled: %s @ %d",
		e.Event.Type(), e.Event.Time())
}

// Is makes errors.Is(err, ErrUnhandledEvent) hold.
func (e *UnhandledEventError) Is(target error) bool {
	return target == ErrUnhandledEvent
}
