package config

import (
	"fmt"
	"math"

	"go.viam.com/utils"
)

// Reference vehicle dimensions and motion constants.
const (
	DefaultName            = "fourws"
	DefaultLengthMM        = 325.0
	DefaultWidthMM         = 150.0
	DefaultAngularLimitDeg = 130.0
	DefaultStep            = 5.0
	DefaultICRBias         = 0.5
)

// Point is a world-frame position in a config file.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// VehicleConfig describes the fixed geometry and the initial state of a four-wheel-steered
// vehicle.
type VehicleConfig struct {
	Name               string   `json:"name"`
	LengthMM           float64  `json:"length_mm"`
	WidthMM            float64  `json:"width_mm"`
	AngularLimitDeg    float64  `json:"angular_limit_deg,omitempty"`
	Step               float64  `json:"step,omitempty"`
	SnapToICR          bool     `json:"snap_to_icr,omitempty"`
	InitialPosition    Point    `json:"initial_position"`
	InitialHeadingDeg  float64  `json:"initial_heading_deg,omitempty"`
	ICRBias            *float64 `json:"icr_bias,omitempty"`
	InitialMode        string   `json:"initial_mode,omitempty"`
	InitialAngleOffset float64  `json:"initial_angle_offset,omitempty"`
}

// DefaultVehicleConfig returns the reference 325x150 vehicle at the origin.
func DefaultVehicleConfig() VehicleConfig {
	return VehicleConfig{
		LengthMM: DefaultLengthMM,
		WidthMM:  DefaultWidthMM,
	}.WithDefaults()
}

// WithDefaults returns a copy of the config with every optional field that was left unset filled
// in.
func (cfg VehicleConfig) WithDefaults() VehicleConfig {
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	if cfg.AngularLimitDeg == 0 {
		cfg.AngularLimitDeg = DefaultAngularLimitDeg
	}
	if cfg.Step == 0 {
		cfg.Step = DefaultStep
	}
	if cfg.ICRBias == nil {
		bias := DefaultICRBias
		cfg.ICRBias = &bias
	}
	return cfg
}

// Bias returns the configured ICR bias, or the default one when unset.
func (cfg *VehicleConfig) Bias() float64 {
	if cfg.ICRBias == nil {
		return DefaultICRBias
	}
	return *cfg.ICRBias
}

// Validate ensures all parts of the config are valid.
func (cfg *VehicleConfig) Validate(path string) error {
	if cfg.LengthMM == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "length_mm")
	}
	if cfg.WidthMM == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "width_mm")
	}

	for _, field := range []struct {
		name  string
		value float64
	}{
		{"length_mm", cfg.LengthMM},
		{"width_mm", cfg.WidthMM},
		{"angular_limit_deg", cfg.AngularLimitDeg},
		{"step", cfg.Step},
		{"initial_position.x", cfg.InitialPosition.X},
		{"initial_position.y", cfg.InitialPosition.Y},
		{"initial_heading_deg", cfg.InitialHeadingDeg},
		{"icr_bias", cfg.Bias()},
		{"initial_angle_offset", cfg.InitialAngleOffset},
	} {
		if math.IsNaN(field.value) || math.IsInf(field.value, 0) {
			return utils.NewConfigValidationError(path, fmt.Errorf("%s must be finite, got %v", field.name, field.value))
		}
	}

	if cfg.LengthMM < 0 || cfg.WidthMM < 0 {
		return utils.NewConfigValidationError(path,
			fmt.Errorf("length_mm and width_mm must be positive, not %.2f and %.2f", cfg.LengthMM, cfg.WidthMM))
	}
	// A reversed wheel un-reverses below angular_limit_deg-90, which must stay a usable window.
	if cfg.AngularLimitDeg != 0 && (cfg.AngularLimitDeg <= 90 || cfg.AngularLimitDeg > 180) {
		return utils.NewConfigValidationError(path,
			fmt.Errorf("angular_limit_deg must be in (90, 180], not %.2f", cfg.AngularLimitDeg))
	}
	if cfg.Step < 0 {
		return utils.NewConfigValidationError(path, fmt.Errorf("step must be positive, not %.2f", cfg.Step))
	}
	if bias := cfg.Bias(); bias < 0 || bias > 1 {
		return utils.NewConfigValidationError(path, fmt.Errorf("icr_bias must be in [0, 1], not %.2f", bias))
	}
	return nil
}
