package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/steerlab/fourws/utils"
)

// Epsilon is the default tolerance used when comparing planar quantities.
const Epsilon = 1e-6

// NewPoint2 returns a point in the plane.
func NewPoint2(x, y float64) r2.Point {
	return r2.Point{X: x, Y: y}
}

// UnitVector returns the unit vector pointing at the given angle in degrees,
// measured from the +X axis towards the +Y axis.
func UnitVector(angleDeg float64) r2.Point {
	rad := utils.DegToRad(angleDeg)
	return r2.Point{X: math.Cos(rad), Y: math.Sin(rad)}
}

// ForwardAxis is the vehicle's longitudinal reference axis for a heading in degrees.
// ICRs are placed along it and steering tangents are compared against it.
func ForwardAxis(headingDeg float64) r2.Point {
	return UnitVector(headingDeg)
}

// LateralAxis is the forward axis rotated +90 degrees.
func LateralAxis(headingDeg float64) r2.Point {
	return UnitVector(headingDeg + 90)
}

// TravelAxis is the direction a body or wheel rolls when commanded forward: (sin θ, -cos θ).
func TravelAxis(headingDeg float64) r2.Point {
	rad := utils.DegToRad(headingDeg)
	return r2.Point{X: math.Sin(rad), Y: -math.Cos(rad)}
}

// Rotate rotates p about the origin by angleDeg degrees.
func Rotate(p r2.Point, angleDeg float64) r2.Point {
	return RotateRad(p, utils.DegToRad(angleDeg))
}

// RotateRad rotates p about the origin by angle radians.
func RotateRad(p r2.Point, angle float64) r2.Point {
	sin, cos := math.Sincos(angle)
	return r2.Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// RotateAbout rotates p about center by angle radians.
func RotateAbout(p, center r2.Point, angle float64) r2.Point {
	return center.Add(RotateRad(p.Sub(center), angle))
}

// AngleOf returns the angle of v in degrees, in (-180, 180].
func AngleOf(v r2.Point) float64 {
	return utils.RadToDeg(math.Atan2(v.Y, v.X))
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b r2.Point, t float64) r2.Point {
	return a.Add(b.Sub(a).Mul(t))
}

// PointAlmostEqual returns whether two points are equal within epsilon on both coordinates.
func PointAlmostEqual(a, b r2.Point, epsilon float64) bool {
	return scalar.EqualWithinAbs(a.X, b.X, epsilon) && scalar.EqualWithinAbs(a.Y, b.Y, epsilon)
}

// PointIsFinite reports whether neither coordinate of p is NaN or infinite.
func PointIsFinite(p r2.Point) bool {
	return utils.IsFinite(p.X, p.Y)
}
