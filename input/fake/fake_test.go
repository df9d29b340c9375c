package fake

import (
	"context"
	"testing"
	"time"

	"go.viam.com/test"

	"github.com/steerlab/fourws/input"
)

func TestController(t *testing.T) {
	ctx := context.Background()
	c := NewController(input.AbsoluteY, input.ButtonStart)

	controls, err := c.Controls(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, controls, test.ShouldResemble, []input.Control{input.AbsoluteY, input.ButtonStart})

	var got []input.Event
	record := func(ctx context.Context, ev input.Event) {
		got = append(got, ev)
	}
	test.That(t, c.RegisterControlCallback(ctx, input.ButtonStart, []input.EventType{input.ButtonChange}, record),
		test.ShouldBeNil)
	err = c.RegisterControlCallback(ctx, input.ButtonNorth, []input.EventType{input.ButtonPress}, record)
	test.That(t, err, test.ShouldNotBeNil)

	now := time.Now()
	press := input.Event{Time: now, Event: input.ButtonPress, Control: input.ButtonStart, Value: 1}
	test.That(t, c.TriggerEvent(ctx, press), test.ShouldBeNil)
	test.That(t, c.TriggerEvent(ctx, input.Event{Time: now, Event: input.PositionChangeAbs, Control: input.AbsoluteY, Value: -1}),
		test.ShouldBeNil)
	test.That(t, got, test.ShouldResemble, []input.Event{press})

	events, err := c.Events(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, events, test.ShouldHaveLength, 2)
	test.That(t, events[input.AbsoluteY].Value, test.ShouldEqual, -1.0)

	test.That(t, c.RegisterControlCallback(ctx, input.ButtonStart, nil, nil), test.ShouldBeNil)
	test.That(t, c.TriggerEvent(ctx, press), test.ShouldBeNil)
	test.That(t, got, test.ShouldHaveLength, 1)

	test.That(t, c.TriggerEvent(ctx, input.Event{Control: input.ButtonMenu}), test.ShouldNotBeNil)
}
