package fourws

import (
	"math"

	"github.com/steerlab/fourws/utils"
)

// reversedLimitMargin narrows the limit for a reversed wheel so it does not flip back and forth
// around the boundary.
const reversedLimitMargin = 90.0

// LimitHeading keeps a desired wheel heading within the wheel's angular limit relative to the
// vehicle heading, turning the wheel around and marking it reversed when it would exceed it.
// A reversed wheel is returned to normal once it is back within its limit less 90 degrees.
func LimitHeading(desired, vehicleHeading float64, wheel Wheel) (float64, bool) {
	rel := utils.NormalizeAngleDeg(desired - vehicleHeading)
	limit := wheel.AngularLimit
	if wheel.ShouldReverse {
		limit -= reversedLimitMargin
		if math.Abs(rel) < limit {
			return utils.ModAngDeg(desired), false
		}
		return utils.ModAngDeg(desired + 180), true
	}

	if math.Abs(rel) > limit {
		return utils.ModAngDeg(desired + 180), true
	}
	return utils.ModAngDeg(desired), false
}

// limitHeading is LimitHeading except in pivotal mode, where wheels are never reversed.
func limitHeading(mode Mode, desired, vehicleHeading float64, wheel *Wheel) (float64, bool) {
	if mode == Pivotal {
		return utils.ModAngDeg(desired), false
	}
	return LimitHeading(desired, vehicleHeading, *wheel)
}
