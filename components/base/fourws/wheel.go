package fourws

import (
	"github.com/golang/geo/r2"

	"github.com/steerlab/fourws/spatialmath"
	"github.com/steerlab/fourws/utils"
)

// NumWheels is the number of independently steered wheels.
const NumWheels = 4

// Wheel indices. The front pair is {COL_2, COL_4} and the rear pair is {COL_1, COL_3}.
const (
	Col1 = iota
	Col2
	Col3
	Col4
)

var (
	frontPair = [2]int{Col2, Col4}
	rearPair  = [2]int{Col1, Col3}
)

// Wheel is one steered wheel of a vehicle. RelativePosition never changes after construction and
// Position is always derived from the vehicle pose.
type Wheel struct {
	Name             string
	Column           int
	RelativePosition r2.Point
	Position         r2.Point
	Heading          float64
	ShouldReverse    bool
	AngularLimit     float64
}

func newWheels(length, width, angularLimit float64) [NumWheels]Wheel {
	halfL, halfW := length/2, width/2
	offsets := [NumWheels]r2.Point{
		Col1: {X: -halfW, Y: halfL},
		Col2: {X: halfW, Y: halfL},
		Col3: {X: -halfW, Y: -halfL},
		Col4: {X: halfW, Y: -halfL},
	}
	names := [NumWheels]string{"COL_1", "COL_2", "COL_3", "COL_4"}

	var wheels [NumWheels]Wheel
	for i := range wheels {
		wheels[i] = Wheel{
			Name:             names[i],
			Column:           i + 1,
			RelativePosition: offsets[i],
			AngularLimit:     angularLimit,
		}
	}
	return wheels
}

// columnOneTwo reports whether the wheel's tangent maps onto its heading with +90 rather than -90.
func (w *Wheel) columnOneTwo() bool {
	return w.Column <= 2
}

// RollingHeading is the heading the wheel actually rolls along, accounting for reversal.
func (w *Wheel) RollingHeading() float64 {
	if w.ShouldReverse {
		return utils.ModAngDeg(w.Heading + 180)
	}
	return w.Heading
}

// RollingDirection is the unit vector the wheel travels along when the vehicle moves forward.
func (w *Wheel) RollingDirection() r2.Point {
	return spatialmath.TravelAxis(w.RollingHeading())
}

func (w *Wheel) place(pose spatialmath.Pose2D) {
	w.Position = pose.Transform(w.RelativePosition)
}
