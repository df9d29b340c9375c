// Package control produces smooth intermediate vehicle states between two snapshots, for
// animating a command that the engine applies instantaneously.
package control

import (
	"time"

	clk "github.com/benbjohnson/clock"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/steerlab/fourws/components/base/fourws"
	"github.com/steerlab/fourws/spatialmath"
	"github.com/steerlab/fourws/utils"
)

// A Transition interpolates from one vehicle snapshot to another over a fixed duration.
// It never touches the vehicle the snapshots came from.
type Transition struct {
	from, to fourws.Snapshot
	duration time.Duration
	start    time.Time
	clock    clk.Clock
}

// NewTransition starts a transition at the clock's current time. A zero duration completes
// immediately.
func NewTransition(from, to fourws.Snapshot, duration time.Duration, clock clk.Clock) (*Transition, error) {
	if duration < 0 {
		return nil, utils.NewInvalidArgumentError("duration", duration, "must not be negative")
	}
	if from.Name != to.Name {
		return nil, errors.Errorf("cannot transition from vehicle %q to vehicle %q", from.Name, to.Name)
	}
	if clock == nil {
		clock = clk.New()
	}
	return &Transition{from: from, to: to, duration: duration, start: clock.Now(), clock: clock}, nil
}

// Fraction is the share of the duration elapsed so far, in [0, 1].
func (t *Transition) Fraction() float64 {
	if t.duration == 0 {
		return 1
	}
	return utils.Clamp(float64(t.clock.Since(t.start))/float64(t.duration), 0, 1)
}

// Done reports whether the full duration has elapsed.
func (t *Transition) Done() bool {
	return t.Fraction() >= 1
}

// Current samples the transition at the clock's current time.
func (t *Transition) Current() fourws.Snapshot {
	return t.At(t.Fraction())
}

// At returns the snapshot a given fraction of the way through. Positions and scalars move
// linearly, headings along the shorter arc. The discrete state (mode, ICR, reversal flags)
// switches to the target only at fraction 1.
func (t *Transition) At(fraction float64) fourws.Snapshot {
	f := utils.Clamp(fraction, 0, 1)
	switch {
	case f <= 0:
		return t.from
	case f >= 1:
		return t.to
	}

	out := t.from
	out.Pose = spatialmath.Pose2D{
		Position: spatialmath.Lerp(t.from.Pose.Position, t.to.Pose.Position, f),
		Heading:  lerpHeading(t.from.Pose.Heading, t.to.Pose.Heading, f),
	}
	out.AngleOffset = lerp(t.from.AngleOffset, t.to.AngleOffset, f)
	out.ICRBias = lerp(t.from.ICRBias, t.to.ICRBias, f)
	out.Odometer = lerp(t.from.Odometer, t.to.Odometer, f)
	if t.from.ICR != nil {
		icr := *t.from.ICR
		out.ICR = &icr
	}
	for i := range out.Wheels {
		out.Wheels[i].Position = spatialmath.Lerp(t.from.Wheels[i].Position, t.to.Wheels[i].Position, f)
		out.Wheels[i].Heading = lerpHeading(t.from.Wheels[i].Heading, t.to.Wheels[i].Heading, f)
	}
	return out
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}

// lerpHeading turns from a towards b in degrees by the shorter way round. A half turn goes
// counterclockwise.
func lerpHeading(a, b, f float64) float64 {
	return utils.ModAngDeg(a + utils.NormalizeAngleDeg(b-a)*f)
}

// WheelPath returns n+1 evenly spaced positions of wheel i over the transition, ends included.
func (t *Transition) WheelPath(i, n int) ([]r2.Point, error) {
	if i < 0 || i >= fourws.NumWheels {
		return nil, utils.NewInvalidArgumentError("wheel index", i, "is out of range")
	}
	if n < 1 {
		return nil, utils.NewInvalidArgumentError("samples", n, "must be at least 1")
	}
	path := make([]r2.Point, 0, n+1)
	for k := 0; k <= n; k++ {
		path = append(path, t.At(float64(k)/float64(n)).Wheels[i].Position)
	}
	return path, nil
}
