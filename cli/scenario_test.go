package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.viam.com/test"

	"github.com/steerlab/fourws/components/base/fourws"
	"github.com/steerlab/fourws/config"
	"github.com/steerlab/fourws/logging"
	"github.com/steerlab/fourws/utils"
)

func TestParseScript(t *testing.T) {
	script, err := ParseScript([]byte(`{"steps": [
		{"op": "set_mode", "mode": "pivotal", "angle_offset": 5, "icr_bias": 0.3},
		{"op": "move", "direction": "backward", "step": 2, "repeat": 3},
		{"op": "adjust_angle_offset", "delta": -1.5},
		{"op": "reset"}
	]}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, script.Steps, test.ShouldHaveLength, 4)
	test.That(t, script.Steps[0].Mode, test.ShouldEqual, fourws.Pivotal)
	test.That(t, *script.Steps[0].ICRBias, test.ShouldEqual, 0.3)
	test.That(t, script.Steps[1].Direction, test.ShouldEqual, fourws.Backward)
	test.That(t, script.Steps[1].Repeat, test.ShouldEqual, 3)
	test.That(t, script.Steps[2].Delta, test.ShouldEqual, -1.5)

	_, err = ParseScript([]byte(`{"steps": [{"op": "set_mode", "mode": "hover"}]}`))
	test.That(t, err, test.ShouldNotBeNil)

	_, err = ParseScript([]byte(`{"steps": [{"op": "move", "repeat": -2}]}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "repeat")
}

func TestRunScript(t *testing.T) {
	v, err := fourws.NewVehicle(config.DefaultVehicleConfig(), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	script, err := ParseScript([]byte(`{"steps": [
		{"op": "set_mode", "mode": "curve", "angle_offset": 10},
		{"op": "adjust_icr_bias", "delta": 0.1},
		{"op": "move", "repeat": 4},
		{"op": "preview"}
	]}`))
	test.That(t, err, test.ShouldBeNil)

	var out bytes.Buffer
	test.That(t, RunScript(context.Background(), v, script, &out), test.ShouldBeNil)
	test.That(t, v.Mode(), test.ShouldEqual, fourws.Curve)
	test.That(t, v.ICRBias(), test.ShouldAlmostEqual, 0.6)
	test.That(t, v.Odometer(), test.ShouldBeGreaterThan, 0.0)
	test.That(t, strings.ToLower(out.String()), test.ShouldContainSubstring, "icr: x:")

	t.Run("stops at the failing step", func(t *testing.T) {
		script, err := ParseScript([]byte(`{"steps": [
			{"op": "reset"},
			{"op": "move", "step": 5},
			{"op": "move", "step": -5},
			{"op": "move", "step": 5}
		]}`))
		test.That(t, err, test.ShouldBeNil)
		err = RunScript(context.Background(), v, script, &out)
		test.That(t, errors.Is(err, utils.ErrInvalidArgument), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "step 2 (move)")
		test.That(t, v.Odometer(), test.ShouldAlmostEqual, 5.0)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := RunScript(ctx, v, script, &out)
		test.That(t, err, test.ShouldBeError, context.Canceled)
	})
}

func TestParseDriveLine(t *testing.T) {
	_, ok, err := parseDriveLine("   ")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeFalse)

	line, ok, err := parseDriveLine("AbsoluteRX 0.25")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, line.event.Value, test.ShouldEqual, 0.25)

	line, ok, err = parseDriveLine("ButtonStart")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, line.event.Value, test.ShouldEqual, 1.0)

	line, ok, err = parseDriveLine("sleep 30ms")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, line.event.Control, test.ShouldBeEmpty)
	test.That(t, line.pause.Milliseconds(), test.ShouldEqual, 30)

	_, _, err = parseDriveLine("ButtonNorth")
	test.That(t, err, test.ShouldNotBeNil)
	_, _, err = parseDriveLine("AbsoluteY")
	test.That(t, err, test.ShouldNotBeNil)
	_, _, err = parseDriveLine("sleep soon")
	test.That(t, err, test.ShouldNotBeNil)
}
