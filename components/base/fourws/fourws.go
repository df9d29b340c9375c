// Package fourws implements the kinematics of a four-wheel independently steered vehicle: the
// instantaneous center of rotation for each steering mode, per-wheel steering with mechanical
// limits and reversal, and pose integration.
//
// A Vehicle is not safe for concurrent use; callers serialize commands per vehicle.
package fourws

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/steerlab/fourws/config"
	"github.com/steerlab/fourws/logging"
	"github.com/steerlab/fourws/spatialmath"
	"github.com/steerlab/fourws/utils"
)

// kinematicState holds everything a command may change. Commands work on a copy and only store it
// back on success.
type kinematicState struct {
	pose        spatialmath.Pose2D
	mode        Mode
	angleOffset float64
	icrBias     float64
	icr         *r2.Point
	wheels      [NumWheels]Wheel
	odometer    float64
}

// Vehicle is a four-wheel-steered vehicle.
type Vehicle struct {
	name         string
	length       float64
	width        float64
	angularLimit float64
	step         float64
	snapToICR    bool

	initial kinematicState
	state   kinematicState
	logger  logging.Logger
}

// NewVehicle returns a vehicle built from cfg, in straight mode unless cfg names an initial mode.
func NewVehicle(cfg config.VehicleConfig, logger logging.Logger) (*Vehicle, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate("vehicle"); err != nil {
		return nil, err
	}

	v := &Vehicle{
		name:         cfg.Name,
		length:       cfg.LengthMM,
		width:        cfg.WidthMM,
		angularLimit: cfg.AngularLimitDeg,
		step:         cfg.Step,
		snapToICR:    cfg.SnapToICR,
		logger:       logger,
	}

	v.initial = kinematicState{
		pose: spatialmath.NewPose2D(
			r2.Point{X: cfg.InitialPosition.X, Y: cfg.InitialPosition.Y},
			cfg.InitialHeadingDeg,
		),
		mode:    Straight,
		icrBias: cfg.Bias(),
		wheels:  newWheels(v.length, v.width, v.angularLimit),
	}
	v.alignWheels(&v.initial, v.initial.pose.Heading)
	v.placeWheels(&v.initial)
	v.state = v.initial

	if cfg.InitialMode != "" {
		mode, err := ParseMode(cfg.InitialMode)
		if err != nil {
			return nil, errors.Wrap(err, "initial_mode")
		}
		if err := v.SetMode(mode, cfg.InitialAngleOffset); err != nil {
			return nil, err
		}
	} else {
		v.state.angleOffset = cfg.InitialAngleOffset
	}
	return v, nil
}

// ModeOption customizes a SetMode call.
type ModeOption func(*modeOptions)

type modeOptions struct {
	icrBias *float64
}

// WithICRBias seeds the ICR bias along with the mode. The bias is clamped to [0, 1].
func WithICRBias(bias float64) ModeOption {
	return func(opts *modeOptions) {
		opts.icrBias = &bias
	}
}

// SetMode switches the steering mode and immediately steers every wheel for it. Wheel reversal
// flags are cleared on entry.
func (v *Vehicle) SetMode(mode Mode, angleOffset float64, opts ...ModeOption) error {
	var options modeOptions
	for _, opt := range opts {
		opt(&options)
	}
	v.logger.Debugf("received a SetMode with mode:%s, angleOffset:%.2f", mode, angleOffset)

	if !mode.Valid() {
		return utils.NewInvalidArgumentError("mode", int(mode), "is not a steering mode")
	}
	if !utils.IsFinite(angleOffset) {
		return utils.NewInvalidArgumentError("angle offset", angleOffset, "must be finite")
	}
	if options.icrBias != nil && !utils.IsFinite(*options.icrBias) {
		return utils.NewInvalidArgumentError("icr bias", *options.icrBias, "must be finite")
	}

	s := v.state
	s.mode = mode
	s.angleOffset = angleOffset
	if options.icrBias != nil {
		s.icrBias = utils.Clamp(*options.icrBias, 0, 1)
	}
	for i := range s.wheels {
		s.wheels[i].ShouldReverse = false
	}
	v.steer(&s)
	if err := checkFinite(&s); err != nil {
		return err
	}
	v.state = s
	return nil
}

// AdjustAngleOffset shifts the angle offset by delta and re-steers the wheels for the current mode.
func (v *Vehicle) AdjustAngleOffset(delta float64) error {
	if !utils.IsFinite(delta) {
		return utils.NewInvalidArgumentError("angle offset delta", delta, "must be finite")
	}
	v.logger.Debugf("received an AdjustAngleOffset with delta:%.2f", delta)

	s := v.state
	s.angleOffset += delta
	v.steer(&s)
	if err := checkFinite(&s); err != nil {
		return err
	}
	v.state = s
	return nil
}

// AdjustIcrBias shifts the ICR bias by delta, clamped to [0, 1], and re-steers the wheels.
func (v *Vehicle) AdjustIcrBias(delta float64) error {
	if !utils.IsFinite(delta) {
		return utils.NewInvalidArgumentError("icr bias delta", delta, "must be finite")
	}
	v.logger.Debugf("received an AdjustIcrBias with delta:%.2f", delta)

	s := v.state
	s.icrBias = utils.Clamp(s.icrBias+delta, 0, 1)
	v.steer(&s)
	if err := checkFinite(&s); err != nil {
		return err
	}
	v.state = s
	return nil
}

// Reset returns the vehicle to its initial pose in straight mode with the wheels aligned, a zero
// angle offset, the configured ICR bias and a zero odometer.
func (v *Vehicle) Reset() {
	v.logger.Debug("received a Reset")
	v.state = v.initial
}

// checkFinite rejects a staged state that overflowed somewhere along a command, so NaN or Inf
// never reaches the committed pose.
func checkFinite(s *kinematicState) error {
	if !spatialmath.PointIsFinite(s.pose.Position) || !utils.IsFinite(s.pose.Heading) {
		return utils.NewInvalidArgumentError("pose", s.pose.String(), "is not finite")
	}
	if !utils.IsFinite(s.angleOffset, icrRadiusPerOffset*s.angleOffset) {
		return utils.NewInvalidArgumentError("angle offset", s.angleOffset, "puts the ICR out of range")
	}
	if s.icr != nil && !spatialmath.PointIsFinite(*s.icr) {
		return utils.NewInvalidArgumentError("icr", *s.icr, "is not finite")
	}
	for _, w := range s.wheels {
		if !spatialmath.PointIsFinite(w.Position) || !utils.IsFinite(w.Heading) {
			return utils.NewInvalidArgumentError(w.Name, w.Heading, "is not finite")
		}
	}
	if !utils.IsFinite(s.odometer) {
		return utils.NewInvalidArgumentError("odometer", s.odometer, "is not finite")
	}
	return nil
}

// steer sets the ICR and wheel headings for s.mode. Reversal flags carry over from s.
func (v *Vehicle) steer(s *kinematicState) {
	switch s.mode {
	case Straight, Icamento:
		s.icr = nil
		v.alignWheels(s, s.pose.Heading)
	case Diagonal:
		s.icr = nil
		desired := utils.ModAngDeg(s.pose.Heading + s.angleOffset)
		for i := range s.wheels {
			v.applyHeading(s, &s.wheels[i], desired)
		}
	case Curve, Pivotal:
		icr, _ := v.computeICR(s)
		s.icr = &icr
		v.steerAll(s, icr)
	}
}

func (v *Vehicle) alignWheels(s *kinematicState, heading float64) {
	for i := range s.wheels {
		s.wheels[i].Heading = utils.ModAngDeg(heading)
		s.wheels[i].ShouldReverse = false
	}
}

func (v *Vehicle) placeWheels(s *kinematicState) {
	for i := range s.wheels {
		s.wheels[i].place(s.pose)
	}
}

// Name returns the vehicle's name.
func (v *Vehicle) Name() string {
	return v.name
}

// Length returns the vehicle's length.
func (v *Vehicle) Length() float64 {
	return v.length
}

// Width returns the vehicle's width.
func (v *Vehicle) Width() float64 {
	return v.width
}

// Step returns the configured default step for a Move.
func (v *Vehicle) Step() float64 {
	return v.step
}

// Pose returns the vehicle's position and heading.
func (v *Vehicle) Pose() spatialmath.Pose2D {
	return v.state.pose
}

// WheelPose returns a copy of the wheel at index i.
func (v *Vehicle) WheelPose(i int) (Wheel, error) {
	if i < 0 || i >= NumWheels {
		return Wheel{}, utils.NewInvalidArgumentError("wheel index", i, "is out of range")
	}
	return v.state.wheels[i], nil
}

// Wheels returns a copy of all four wheels.
func (v *Vehicle) Wheels() [NumWheels]Wheel {
	return v.state.wheels
}

// ICR returns the cached instantaneous center of rotation. It is only set in curve and pivotal
// modes.
func (v *Vehicle) ICR() (r2.Point, bool) {
	if v.state.icr == nil {
		return r2.Point{}, false
	}
	return *v.state.icr, true
}

// Mode returns the current steering mode.
func (v *Vehicle) Mode() Mode {
	return v.state.mode
}

// AngleOffset returns the current angle offset.
func (v *Vehicle) AngleOffset() float64 {
	return v.state.angleOffset
}

// ICRBias returns the current ICR bias.
func (v *Vehicle) ICRBias() float64 {
	return v.state.icrBias
}

// Odometer returns the total distance travelled by the vehicle center since construction or the
// last Reset.
func (v *Vehicle) Odometer() float64 {
	return v.state.odometer
}
