package scenario

import (
	"github.com/sarchlab/pdpsim/eventing"
)

// An EventHandler processes a scenario event. It reports false when it does
// not handle the event, so that the event can fall back to the custom
// handler.
type EventHandler func(evt TimedEvent) (handled bool, err error)

type handlerTable struct {
	byType map[*eventing.Type]EventHandler
	custom EventHandler
}

func (t handlerTable) handle(evt TimedEvent) error {
	if h, found := t.byType[evt.Type()]; found {
		handled, err := h(evt)
		if err != nil {
			return err
		}

		if handled {
			return nil
		}
	}

	if t.custom != nil {
		handled, err := t.custom(evt)
		if err != nil {
			return err
		}

		if handled {
			return nil
		}
	}

	return &UnhandledEventError{Event: evt}
}
