// Package fake implements an input controller whose events are injected with TriggerEvent.
package fake

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/steerlab/fourws/input"
)

type callback struct {
	triggers []input.EventType
	ctrlFunc input.ControlFunction
}

// Controller is an in-memory input controller. Events passed to TriggerEvent are recorded and
// dispatched synchronously to the matching callbacks.
type Controller struct {
	mu        sync.Mutex
	controls  []input.Control
	lastEvent map[input.Control]input.Event
	callbacks map[input.Control]callback
}

// NewController returns a controller providing the given controls.
func NewController(controls ...input.Control) *Controller {
	return &Controller{
		controls:  controls,
		lastEvent: map[input.Control]input.Event{},
		callbacks: map[input.Control]callback{},
	}
}

// Controls lists the inputs.
func (c *Controller) Controls(ctx context.Context) ([]input.Control, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]input.Control(nil), c.controls...), nil
}

// Events returns the last event seen on each control.
func (c *Controller) Events(ctx context.Context) (map[input.Control]input.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[input.Control]input.Event, len(c.lastEvent))
	for control, ev := range c.lastEvent {
		out[control] = ev
	}
	return out, nil
}

// RegisterControlCallback registers a callback function to be executed on the specified control's
// trigger events.
func (c *Controller) RegisterControlCallback(
	ctx context.Context,
	control input.Control,
	triggers []input.EventType,
	ctrlFunc input.ControlFunction,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasControl(control) {
		return errors.Errorf("controller has no control %q", control)
	}
	if ctrlFunc == nil {
		delete(c.callbacks, control)
		return nil
	}
	c.callbacks[control] = callback{triggers: triggers, ctrlFunc: ctrlFunc}
	return nil
}

// TriggerEvent records the event and calls every matching callback.
func (c *Controller) TriggerEvent(ctx context.Context, event input.Event) error {
	c.mu.Lock()
	if !c.hasControl(event.Control) {
		c.mu.Unlock()
		return errors.Errorf("controller has no control %q", event.Control)
	}
	c.lastEvent[event.Control] = event
	cb, ok := c.callbacks[event.Control]
	c.mu.Unlock()

	if !ok {
		return nil
	}
	for _, trigger := range cb.triggers {
		if event.Event.Matches(trigger) {
			cb.ctrlFunc(ctx, event)
			return nil
		}
	}
	return nil
}

func (c *Controller) hasControl(control input.Control) bool {
	for _, have := range c.controls {
		if have == control {
			return true
		}
	}
	return false
}
