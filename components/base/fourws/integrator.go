package fourws

import (
	"math"

	"github.com/steerlab/fourws/spatialmath"
	"github.com/steerlab/fourws/utils"
)

// minArcRadius is the distance to the ICR below which the vehicle length stands in for the radius.
const minArcRadius = 1e-3

// Move advances the vehicle by step in the given direction according to the current mode.
// In straight and icamento modes the vehicle translates along its travel axis, in diagonal mode
// along the wheels' rolling direction, and in curve and pivotal modes it rotates about the ICR by
// step/length radians.
func (v *Vehicle) Move(direction Direction, step float64) error {
	v.logger.Debugf("received a Move with direction:%s, step:%.2f", direction, step)
	if direction != Forward && direction != Backward {
		return utils.NewInvalidArgumentError("direction", int(direction), "is not forward or backward")
	}
	if !utils.IsFinite(step) {
		return utils.NewInvalidArgumentError("step", step, "must be finite")
	}
	if step <= 0 {
		return utils.NewInvalidArgumentError("step", step, "must be positive")
	}

	s := v.state
	switch s.mode {
	case Straight, Icamento:
		delta := spatialmath.TravelAxis(s.pose.Heading).Mul(step * direction.sign())
		s.pose.Position = s.pose.Position.Add(delta)
		s.odometer += step
	case Diagonal:
		lead := s.wheels[Col1]
		delta := spatialmath.TravelAxis(lead.Heading).Mul(step * direction.sign())
		if lead.ShouldReverse {
			delta = delta.Mul(-1)
		}
		s.pose.Position = s.pose.Position.Add(delta)
		s.odometer += step
	case Curve, Pivotal:
		v.steer(&s)
		v.rotateAboutICR(&s, direction, step)
	}

	v.placeWheels(&s)
	if err := checkFinite(&s); err != nil {
		return err
	}
	v.state = s
	return nil
}

// rotateAboutICR turns the vehicle rigidly about s.icr. Forward motion turns clockwise for a
// non-negative angle offset and counterclockwise for a negative one.
func (v *Vehicle) rotateAboutICR(s *kinematicState, direction Direction, step float64) {
	icr := *s.icr
	r := s.pose.Position.Sub(icr)
	radius := r.Norm()
	if radius < minArcRadius {
		radius = v.length
	}

	dTheta := -step / v.length
	if s.angleOffset < 0 {
		dTheta = -dTheta
	}
	dTheta *= direction.sign()

	s.pose.Position = icr.Add(spatialmath.RotateRad(r, dTheta))
	if v.snapToICR {
		s.pose.Position = icr
	}
	dDeg := utils.RadToDeg(dTheta)
	s.pose.Heading = utils.ModAngDeg(s.pose.Heading + dDeg)
	for i := range s.wheels {
		s.wheels[i].Heading = utils.ModAngDeg(s.wheels[i].Heading + dDeg)
	}
	s.odometer += math.Abs(dTheta) * radius
}
