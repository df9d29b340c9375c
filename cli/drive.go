package cli

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	clk "github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github.com/steerlab/fourws/input"
)

var driveControls = []input.Control{
	input.AbsoluteY, input.AbsoluteRX,
	input.ButtonSelect, input.ButtonStart, input.ButtonEast, input.ButtonWest,
}

// driveLine is one line of a drive event stream: either a controller event or a pause.
type driveLine struct {
	event input.Event
	pause time.Duration
}

// parseDriveLine parses "<control> <value>", "<button>" or "sleep <duration>". Blank lines and
// lines starting with # yield ok=false.
func parseDriveLine(line string) (driveLine, bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return driveLine{}, false, nil
	}

	if fields[0] == "sleep" {
		if len(fields) != 2 {
			return driveLine{}, false, errors.Errorf("expected sleep <duration>, got %q", line)
		}
		d, err := time.ParseDuration(fields[1])
		if err != nil {
			return driveLine{}, false, errors.Wrapf(err, "bad pause %q", fields[1])
		}
		return driveLine{pause: d}, true, nil
	}

	control := input.Control(fields[0])
	known := false
	for _, c := range driveControls {
		known = known || c == control
	}
	if !known {
		return driveLine{}, false, errors.Errorf("unknown control %q", fields[0])
	}

	ev := input.Event{Control: control, Event: input.ButtonPress, Value: 1}
	if strings.HasPrefix(string(control), "Absolute") {
		if len(fields) != 2 {
			return driveLine{}, false, errors.Errorf("expected %s <value>, got %q", control, line)
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return driveLine{}, false, errors.Wrapf(err, "bad value for %s", control)
		}
		ev.Event = input.PositionChangeAbs
		ev.Value = value
	}
	return driveLine{event: ev}, true, nil
}

// replayDriveEvents feeds the event stream in r to controller, pausing on clock for sleep lines.
func replayDriveEvents(ctx context.Context, r io.Reader, controller input.Triggerable, clock clk.Clock) error {
	scanner := bufio.NewScanner(r)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line, ok, err := parseDriveLine(scanner.Text())
		if err != nil {
			return errors.Wrapf(err, "line %d", lineNum)
		}
		if !ok {
			continue
		}
		if line.event.Control == "" {
			timer := clock.Timer(line.pause)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			continue
		}
		line.event.Time = clock.Now()
		if err := controller.TriggerEvent(ctx, line.event); err != nil {
			return errors.Wrapf(err, "line %d", lineNum)
		}
	}
	return scanner.Err()
}
