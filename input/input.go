// Package input defines the abstract controllers whose events drive a vehicle. Device drivers are
// outside this module; anything able to deliver Events can implement Controller.
package input

import (
	"context"
	"time"
)

// Controller is a logical "container" more than an actual device.
// Could be a single gamepad, or a collection of digitalInterrupts and analogReaders, a keyboard, etc.
type Controller interface {
	// Controls returns a list of Controls provided by the Controller
	Controls(ctx context.Context) ([]Control, error)

	// Events returns most recent Event for each input (which should be the current state)
	Events(ctx context.Context) (map[Control]Event, error)

	// RegisterControlCallback registers a callback function to be executed on the specified trigger Event. A nil
	// ctrlFunc removes the callback for that control.
	RegisterControlCallback(
		ctx context.Context,
		control Control,
		triggers []EventType,
		ctrlFunc ControlFunction,
	) error
}

// Triggerable is used by controllers that can be fed events from outside, such as replayed
// scripts and tests.
type Triggerable interface {
	TriggerEvent(ctx context.Context, event Event) error
}

// ControlFunction is a callback passed to RegisterControlCallback.
type ControlFunction func(ctx context.Context, ev Event)

// EventType represents the type of input event, and is returned by LastEvent() or passed to ControlFunction callbacks.
type EventType string

// EventType list, to be expanded as new input devices are developed.
const (
	// Callbacks registered for this event will be called in ADDITION to other registered event callbacks.
	AllEvents EventType = "AllEvents"
	// Sent at controller initialization, and on reconnects.
	Connect EventType = "Connect"
	// If unplugged, or wireless/network times out.
	Disconnect EventType = "Disconnect"
	// Typical key press.
	ButtonPress EventType = "ButtonPress"
	// Key release.
	ButtonRelease EventType = "ButtonRelease"
	// Both up and down for convenience during registration, not typically emitted.
	ButtonChange EventType = "ButtonChange"
	// Absolute position is reported via Value, a la joysticks.
	PositionChangeAbs EventType = "PositionChangeAbs"
	// Relative position is reported via Value, a la mice, or simulating axes with up/down buttons.
	PositionChangeRel EventType = "PositionChangeRel"
)

// Control identifies the input (specific Axis or Button) of a controller.
type Control string

// Controls, to be expanded as new input devices are developed.
const (
	// Axes.
	AbsoluteX  Control = "AbsoluteX"
	AbsoluteY  Control = "AbsoluteY"
	AbsoluteZ  Control = "AbsoluteZ"
	AbsoluteRX Control = "AbsoluteRX"
	AbsoluteRY Control = "AbsoluteRY"
	AbsoluteRZ Control = "AbsoluteRZ"

	// Buttons.
	ButtonSouth  Control = "ButtonSouth"
	ButtonEast   Control = "ButtonEast"
	ButtonWest   Control = "ButtonWest"
	ButtonNorth  Control = "ButtonNorth"
	ButtonLT     Control = "ButtonLT"
	ButtonRT     Control = "ButtonRT"
	ButtonSelect Control = "ButtonSelect"
	ButtonStart  Control = "ButtonStart"
	ButtonMenu   Control = "ButtonMenu"
)

// Event is passed to the registered ControlFunction or returned by State().
type Event struct {
	Time    time.Time
	Event   EventType
	Control Control // AbsoluteX, ButtonStart, etc.
	Value   float64 // 0 or 1 for buttons, -1.0 to +1.0 for axes
}

// Matches reports whether a callback registered for trigger should receive an event of type et.
func (et EventType) Matches(trigger EventType) bool {
	switch trigger {
	case AllEvents:
		return true
	case ButtonChange:
		return et == ButtonPress || et == ButtonRelease
	default:
		return et == trigger
	}
}
