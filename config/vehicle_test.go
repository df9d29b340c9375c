package config

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestVehicleConfigDefaults(t *testing.T) {
	cfg := DefaultVehicleConfig()
	test.That(t, cfg.Name, test.ShouldEqual, DefaultName)
	test.That(t, cfg.LengthMM, test.ShouldEqual, 325.0)
	test.That(t, cfg.WidthMM, test.ShouldEqual, 150.0)
	test.That(t, cfg.AngularLimitDeg, test.ShouldEqual, 130.0)
	test.That(t, cfg.Step, test.ShouldEqual, 5.0)
	test.That(t, cfg.Bias(), test.ShouldEqual, 0.5)
	test.That(t, cfg.SnapToICR, test.ShouldBeFalse)

	zero := 0.0
	cfg = VehicleConfig{LengthMM: 1, WidthMM: 1, ICRBias: &zero, Step: 2}.WithDefaults()
	test.That(t, cfg.Bias(), test.ShouldEqual, 0.0)
	test.That(t, cfg.Step, test.ShouldEqual, 2.0)
}

func TestVehicleConfigValidate(t *testing.T) {
	valid := DefaultVehicleConfig()
	test.That(t, valid.Validate("path"), test.ShouldBeNil)

	for _, tc := range []struct {
		name     string
		mutate   func(cfg *VehicleConfig)
		expected string
	}{
		{"missing length", func(cfg *VehicleConfig) { cfg.LengthMM = 0 }, `"length_mm" is required`},
		{"missing width", func(cfg *VehicleConfig) { cfg.WidthMM = 0 }, `"width_mm" is required`},
		{"negative width", func(cfg *VehicleConfig) { cfg.WidthMM = -1 }, "must be positive"},
		{"nan length", func(cfg *VehicleConfig) { cfg.LengthMM = math.NaN() }, "length_mm must be finite"},
		{"inf heading", func(cfg *VehicleConfig) { cfg.InitialHeadingDeg = math.Inf(1) }, "initial_heading_deg must be finite"},
		{"small limit", func(cfg *VehicleConfig) { cfg.AngularLimitDeg = 90 }, "angular_limit_deg must be in (90, 180]"},
		{"large limit", func(cfg *VehicleConfig) { cfg.AngularLimitDeg = 181 }, "angular_limit_deg must be in (90, 180]"},
		{"negative step", func(cfg *VehicleConfig) { cfg.Step = -5 }, "step must be positive"},
		{"bias", func(cfg *VehicleConfig) {
			bias := 1.5
			cfg.ICRBias = &bias
		}, "icr_bias must be in [0, 1]"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultVehicleConfig()
			tc.mutate(&cfg)
			err := cfg.Validate("vehicle")
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.expected)
			test.That(t, err.Error(), test.ShouldContainSubstring, `"vehicle"`)
		})
	}
}
