package fourws

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/steerlab/fourws/spatialmath"
	"github.com/steerlab/fourws/utils"
)

func TestComputeICR(t *testing.T) {
	v := newTestVehicle(t)

	for _, mode := range []Mode{Straight, Diagonal, Icamento} {
		test.That(t, v.SetMode(mode, 10), test.ShouldBeNil)
		_, ok := ComputeICR(v)
		test.That(t, ok, test.ShouldBeFalse)
		_, ok = v.ICR()
		test.That(t, ok, test.ShouldBeFalse)
	}

	for _, tc := range []struct {
		mode        Mode
		angleOffset float64
		expected    r2.Point
	}{
		{Curve, 10, r2.Point{X: -100, Y: 0}},
		{Curve, -10, r2.Point{X: 100, Y: 0}},
		{Curve, 0, r2.Point{}},
		{Pivotal, 0, r2.Point{}},
		{Pivotal, 2.5, r2.Point{X: -25, Y: 0}},
	} {
		test.That(t, v.SetMode(tc.mode, tc.angleOffset), test.ShouldBeNil)
		icr, ok := ComputeICR(v)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, spatialmath.PointAlmostEqual(icr, tc.expected, 1e-9), test.ShouldBeTrue)
		cached, ok := v.ICR()
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, cached, test.ShouldResemble, icr)
	}
}

func TestComputeICRFollowsHeading(t *testing.T) {
	v := newTestVehicle(t)
	test.That(t, v.SetMode(Pivotal, 0), test.ShouldBeNil)
	// A quarter turn: 90 degrees at step/length radians per move.
	quarter := math.Pi / 2 * v.Length() / 18
	for i := 0; i < 18; i++ {
		test.That(t, v.Move(Backward, quarter), test.ShouldBeNil)
	}
	test.That(t, v.Pose().Heading, test.ShouldAlmostEqual, 90.0, 1e-9)

	test.That(t, v.SetMode(Curve, 10), test.ShouldBeNil)
	icr, ok := ComputeICR(v)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, spatialmath.PointAlmostEqual(icr, r2.Point{X: 0, Y: -100}, 1e-9), test.ShouldBeTrue)
}

func TestPreviewICR(t *testing.T) {
	v := newTestVehicle(t)

	t.Run("parallel wheels have no intersection", func(t *testing.T) {
		test.That(t, v.SetMode(Straight, 0), test.ShouldBeNil)
		_, ok := PreviewICR(v)
		test.That(t, ok, test.ShouldBeFalse)

		test.That(t, v.SetMode(Diagonal, 35), test.ShouldBeNil)
		_, ok = PreviewICR(v)
		test.That(t, ok, test.ShouldBeFalse)
	})

	t.Run("steered wheels meet at the steering icr", func(t *testing.T) {
		for _, offset := range []float64{10, -10, 3, -40, 0} {
			test.That(t, v.SetMode(Curve, offset, WithICRBias(0.3)), test.ShouldBeNil)
			preview, ok := PreviewICR(v)
			test.That(t, ok, test.ShouldBeTrue)
			icr, _ := ComputeICR(v)
			test.That(t, spatialmath.PointAlmostEqual(preview, icr, 1e-6), test.ShouldBeTrue)
		}
	})
}

func TestSolveWheelTangent(t *testing.T) {
	// Each wheel ends up rolling tangent to its circle about the ICR: its rolling heading points
	// away from the ICR along the radius, so the travel axis is perpendicular to it.
	assertTangent := func(t *testing.T, v *Vehicle) {
		t.Helper()
		icr, ok := v.ICR()
		test.That(t, ok, test.ShouldBeTrue)
		for _, w := range v.Wheels() {
			radius := w.Position.Sub(icr)
			test.That(t, w.RollingDirection().Dot(radius.Normalize()), test.ShouldAlmostEqual, 0, 1e-9)
			test.That(t, utils.AngleDiffDeg(w.RollingHeading(), spatialmath.AngleOf(radius)), test.ShouldAlmostEqual, 0, 1e-9)
		}
	}

	t.Run("positive angle offset", func(t *testing.T) {
		v := newTestVehicle(t)
		test.That(t, v.SetMode(Curve, 10), test.ShouldBeNil)
		assertTangent(t, v)

		expected := [NumWheels]float64{
			utils.RadToDeg(math.Atan2(162.5, 25)),
			utils.RadToDeg(math.Atan2(162.5, 175)),
			360 - utils.RadToDeg(math.Atan2(162.5, 25)),
			360 - utils.RadToDeg(math.Atan2(162.5, 175)),
		}
		for i, w := range v.Wheels() {
			test.That(t, w.ShouldReverse, test.ShouldBeFalse)
			test.That(t, w.Heading, test.ShouldAlmostEqual, expected[i], 1e-9)
			test.That(t, SolveWheelTangent(v, w, r2.Point{X: -100}), test.ShouldAlmostEqual, expected[i], 1e-9)
		}
	})

	t.Run("negative angle offset", func(t *testing.T) {
		v := newTestVehicle(t)
		test.That(t, v.SetMode(Curve, -10), test.ShouldBeNil)
		assertTangent(t, v)

		// The left wheels point more than 130 degrees off the vehicle heading and are turned around.
		leftAngle := utils.RadToDeg(math.Atan2(162.5, 175))
		rightAngle := utils.RadToDeg(math.Atan2(162.5, 25))
		expected := [NumWheels]float64{360 - leftAngle, 180 - rightAngle, leftAngle, 180 + rightAngle}
		reversed := [NumWheels]bool{true, false, true, false}
		for i, w := range v.Wheels() {
			test.That(t, w.ShouldReverse, test.ShouldEqual, reversed[i])
			test.That(t, w.Heading, test.ShouldAlmostEqual, expected[i], 1e-9)
		}
	})

	t.Run("pivotal", func(t *testing.T) {
		v := newTestVehicle(t)
		test.That(t, v.SetMode(Pivotal, -10), test.ShouldBeNil)
		for _, w := range v.Wheels() {
			test.That(t, w.ShouldReverse, test.ShouldBeFalse)
		}
		// Without reversal every wheel heading itself points away from the ICR.
		icr, _ := v.ICR()
		for _, w := range v.Wheels() {
			test.That(t, utils.AngleDiffDeg(w.Heading, spatialmath.AngleOf(w.Position.Sub(icr))), test.ShouldAlmostEqual, 0, 1e-9)
		}

		test.That(t, v.SetMode(Pivotal, 0), test.ShouldBeNil)
		assertTangent(t, v)
	})

	t.Run("rotated vehicle", func(t *testing.T) {
		v := newTestVehicle(t)
		test.That(t, v.SetMode(Curve, 20, WithICRBias(0.8)), test.ShouldBeNil)
		// Ten moves of 6 degrees each.
		step := math.Pi / 30 * v.Length()
		for i := 0; i < 10; i++ {
			test.That(t, v.Move(Forward, step), test.ShouldBeNil)
		}
		test.That(t, v.Pose().Heading, test.ShouldAlmostEqual, 300.0, 1e-9)
		assertTangent(t, v)
		assertWheelsPlaced(t, v)
	})
}
