package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
)

// parallelThreshold is the smallest |d0 x d1| for which two lines are considered to intersect.
const parallelThreshold = 1e-6

// LineIntersection intersects the two lines p0 + t*d0 and p1 + s*d1 using the 2x2 cross product
// determinant. The second return value is false when the lines are parallel or nearly so.
func LineIntersection(p0, d0, p1, d1 r2.Point) (r2.Point, bool) {
	denominator := d0.Cross(d1)
	if math.Abs(denominator) < parallelThreshold {
		return r2.Point{}, false
	}
	t0 := p1.Sub(p0).Cross(d1) / denominator
	return p0.Add(d0.Mul(t0)), true
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b r2.Point) r2.Point {
	return a.Add(b).Mul(0.5)
}
