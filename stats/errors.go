package stats

import (
	"errors"
	"fmt"

	"github.com/sarchlab/pdpsim/eventing"
)

var (
	// ErrCollaboratorMissing matches every *CollaboratorMissingError.
	ErrCollaboratorMissing = errors.New("collaborator missing")

	// ErrUnexpectedEvent matches every *UnexpectedEventError.
	ErrUnexpectedEvent = errors.New("unexpected event")
)

// CollaboratorMissingError reports a model the tracker needs but that the
// engine does not provide.
type CollaboratorMissingError struct {
	Name string
}

func (e *CollaboratorMissingError) Error() string {
	return "stats: model " + e.Name + " is not registered with the engine"
}

// Is makes errors.Is(err, ErrCollaboratorMissing) hold.
func (e *CollaboratorMissingError) Is(target error) bool {
	return target == ErrCollaboratorMissing
}

// UnexpectedEventError reports an event of a tracked type that does not carry
// the data of that type.
type UnexpectedEventError struct {
	Event eventing.Event
}

func (e *UnexpectedEventError) Error() string {
	return fmt.Sprintf("stats: unexpected %T for event type %s",
		e.Event, e.Event.Type())
}

// Is makes errors.Is(err, ErrUnexpectedEvent) hold.
func (e *UnexpectedEventError) Is(target error) bool {
	return target == ErrUnexpectedEvent
}
