package input

import (
	"testing"

	"go.viam.com/test"
)

func TestEventTypeMatches(t *testing.T) {
	test.That(t, ButtonPress.Matches(ButtonChange), test.ShouldBeTrue)
	test.That(t, ButtonRelease.Matches(ButtonChange), test.ShouldBeTrue)
	test.That(t, PositionChangeAbs.Matches(ButtonChange), test.ShouldBeFalse)
	test.That(t, PositionChangeAbs.Matches(PositionChangeAbs), test.ShouldBeTrue)
	test.That(t, Connect.Matches(AllEvents), test.ShouldBeTrue)
	test.That(t, ButtonPress.Matches(ButtonRelease), test.ShouldBeFalse)
}
