package fourws

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/steerlab/fourws/spatialmath"
	"github.com/steerlab/fourws/utils"
)

// SolveWheelTangent returns the heading that makes the wheel roll tangent to the circle about icr,
// before steering limits are applied.
func SolveWheelTangent(v *Vehicle, wheel Wheel, icr r2.Point) float64 {
	return solveWheelTangent(v.state.pose.Heading, &wheel, icr)
}

func solveWheelTangent(vehicleHeading float64, wheel *Wheel, icr r2.Point) float64 {
	r := wheel.Position.Sub(icr)
	angleR := utils.RadToDeg(math.Atan2(r.Y, r.X))
	cand1 := utils.ModAngDeg(angleR + 90)
	cand2 := utils.ModAngDeg(angleR - 90)

	forward := spatialmath.ForwardAxis(vehicleHeading)
	chosen := cand2
	if spatialmath.UnitVector(cand1).Dot(forward) > spatialmath.UnitVector(cand2).Dot(forward) {
		chosen = cand1
	}

	if wheel.columnOneTwo() {
		return utils.ModAngDeg(chosen + 90)
	}
	return utils.ModAngDeg(chosen - 90)
}

// steerAll solves and limits every wheel about icr.
func (v *Vehicle) steerAll(s *kinematicState, icr r2.Point) {
	for i := range s.wheels {
		wheel := &s.wheels[i]
		desired := solveWheelTangent(s.pose.Heading, wheel, icr)
		v.applyHeading(s, wheel, desired)
	}
}

// applyHeading limits desired for the wheel and stores the result, logging reversal changes.
func (v *Vehicle) applyHeading(s *kinematicState, wheel *Wheel, desired float64) {
	heading, reverse := limitHeading(s.mode, desired, s.pose.Heading, wheel)
	if reverse != wheel.ShouldReverse {
		v.logger.Debugw("wheel reversal changed", "wheel", wheel.Name, "reversed", reverse, "heading", heading)
	}
	wheel.Heading = heading
	wheel.ShouldReverse = reverse
}
