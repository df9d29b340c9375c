package fourws

import (
	"github.com/golang/geo/r2"

	"github.com/steerlab/fourws/spatialmath"
)

// icrRadiusPerOffset scales angle_offset into the distance from the ICR base point to the ICR.
const icrRadiusPerOffset = 10.0

// ComputeICR returns the instantaneous center of rotation for the vehicle's current mode and
// parameters. It is only defined in the curve and pivotal modes.
func ComputeICR(v *Vehicle) (r2.Point, bool) {
	return v.computeICR(&v.state)
}

// PreviewICR intersects the lines through the front wheels and through the rear wheels along each
// wheel's heading. When both pairs intersect the midpoint is returned. It is only used to preview
// trajectories and never drives steering.
func PreviewICR(v *Vehicle) (r2.Point, bool) {
	return previewICR(&v.state)
}

func (v *Vehicle) computeICR(s *kinematicState) (r2.Point, bool) {
	if !s.mode.UsesICR() {
		return r2.Point{}, false
	}
	biasOffset := (s.icrBias - 0.5) * v.width
	base := s.pose.Position.Add(spatialmath.LateralAxis(s.pose.Heading).Mul(biasOffset))
	radius := icrRadiusPerOffset * s.angleOffset
	return base.Sub(spatialmath.ForwardAxis(s.pose.Heading).Mul(radius)), true
}

func previewICR(s *kinematicState) (r2.Point, bool) {
	pairHit := func(pair [2]int) (r2.Point, bool) {
		a, b := s.wheels[pair[0]], s.wheels[pair[1]]
		return spatialmath.LineIntersection(
			a.Position, spatialmath.UnitVector(a.Heading),
			b.Position, spatialmath.UnitVector(b.Heading),
		)
	}

	front, frontOK := pairHit(frontPair)
	rear, rearOK := pairHit(rearPair)
	switch {
	case frontOK && rearOK:
		return spatialmath.Midpoint(front, rear), true
	case frontOK:
		return front, true
	case rearOK:
		return rear, true
	default:
		return r2.Point{}, false
	}
}
