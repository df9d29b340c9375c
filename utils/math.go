package utils

import (
	"math"

	"github.com/golang/geo/s1"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// AngleDiffDeg returns the closest difference from the two given
// angles. The arguments are commutative.
func AngleDiffDeg(a1, a2 float64) float64 {
	return float64(180) - math.Abs(math.Abs(ModAngDeg(a1)-ModAngDeg(a2))-float64(180))
}

// ModAngDeg wraps an angle in degrees into [0, 360).
func ModAngDeg(ang float64) float64 {
	wrapped := math.Mod(math.Mod(ang, 360)+360, 360)
	if wrapped >= 360 {
		return 0
	}
	return wrapped
}

// NormalizeAngleDeg maps an angle in degrees onto the signed half range (-180, 180].
// It is how angles relative to a heading are compared across the 0/360 wrap.
func NormalizeAngleDeg(theta float64) float64 {
	return (s1.Angle(theta) * s1.Degree).Normalized().Degrees()
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// IsFinite reports whether every value is neither NaN nor infinite.
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
