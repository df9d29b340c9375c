// Package baseremotecontrol drives a fourws vehicle from the sticks and buttons of an input
// controller.
package baseremotecontrol

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	clk "github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"github.com/steerlab/fourws/components/base/fourws"
	"github.com/steerlab/fourws/config"
	"github.com/steerlab/fourws/input"
	"github.com/steerlab/fourws/logging"
	rutils "github.com/steerlab/fourws/utils"
)

// Defaults for unset config attributes.
const (
	DefaultDeadzone   = 0.05
	DefaultTickMS     = 50
	DefaultOffsetRate = 1.0
	DefaultBiasStep   = 0.05
)

// Config describes how to configure the service.
type Config struct {
	Deadzone   *float64 `json:"deadzone,omitempty"`
	TickMS     int      `json:"tick_ms,omitempty"`
	Step       float64  `json:"step,omitempty"`
	OffsetRate float64  `json:"offset_rate,omitempty"`
	BiasStep   float64  `json:"bias_step,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	if conf.Deadzone != nil && (*conf.Deadzone < 0 || *conf.Deadzone >= 1) {
		return utils.NewConfigValidationError(path, fmt.Errorf("deadzone must be in [0, 1), not %.2f", *conf.Deadzone))
	}
	if conf.TickMS < 0 {
		return utils.NewConfigValidationError(path, fmt.Errorf("tick_ms must be positive, not %d", conf.TickMS))
	}
	if conf.Step < 0 {
		return utils.NewConfigValidationError(path, fmt.Errorf("step must be positive, not %.2f", conf.Step))
	}
	if conf.BiasStep < 0 || conf.BiasStep > 1 {
		return utils.NewConfigValidationError(path, fmt.Errorf("bias_step must be in [0, 1], not %.2f", conf.BiasStep))
	}
	return nil
}

// NewConfig decodes and validates the service attributes, filling in defaults.
func NewConfig(attributes config.AttributeMap) (*Config, error) {
	decoded, err := config.TransformAttributeMapToStruct(&Config{}, attributes)
	if err != nil {
		return nil, err
	}
	conf, ok := decoded.(*Config)
	if !ok {
		return nil, rutils.NewUnexpectedTypeError[*Config](decoded)
	}
	if err := conf.Validate("remote_control"); err != nil {
		return nil, err
	}
	if conf.Deadzone == nil {
		deadzone := DefaultDeadzone
		conf.Deadzone = &deadzone
	}
	if conf.TickMS == 0 {
		conf.TickMS = DefaultTickMS
	}
	if conf.OffsetRate == 0 {
		conf.OffsetRate = DefaultOffsetRate
	}
	if conf.BiasStep == 0 {
		conf.BiasStep = DefaultBiasStep
	}
	return conf, nil
}

// Vehicle is the part of a fourws vehicle the service commands.
type Vehicle interface {
	SetMode(mode fourws.Mode, angleOffset float64, opts ...fourws.ModeOption) error
	Move(direction fourws.Direction, step float64) error
	AdjustAngleOffset(delta float64) error
	AdjustIcrBias(delta float64) error
	Reset()
	Mode() fourws.Mode
	AngleOffset() float64
	Step() float64
	Snapshot() fourws.Snapshot
}

// A Service maps controller input onto a vehicle until closed.
type Service interface {
	// Snapshot returns the vehicle state, serialized with the service's own commands.
	Snapshot() fourws.Snapshot
	Close(ctx context.Context) error
}

var (
	axisControls   = []input.Control{input.AbsoluteY, input.AbsoluteRX}
	buttonControls = []input.Control{input.ButtonSelect, input.ButtonStart, input.ButtonEast, input.ButtonWest}
)

type remoteService struct {
	mu       sync.Mutex
	vehicle  Vehicle
	throttle float64
	steer    float64

	inputController input.Controller
	config          Config
	logger          logging.Logger

	cancelFunc              func()
	activeBackgroundWorkers sync.WaitGroup
}

// New starts a remote control service for vehicle. Left stick Y moves the vehicle every tick,
// right stick X bends the angle offset, Select cycles the steering mode, Start resets the vehicle
// and East/West shift the ICR bias.
func New(
	ctx context.Context,
	vehicle Vehicle,
	controller input.Controller,
	conf *Config,
	clock clk.Clock,
	logger logging.Logger,
) (Service, error) {
	if conf == nil {
		return nil, errors.New("remote control config is required")
	}
	if conf.TickMS <= 0 {
		return nil, errors.Errorf("tick_ms must be positive, not %d", conf.TickMS)
	}
	if clock == nil {
		clock = clk.New()
	}

	svcConf := *conf
	if svcConf.Deadzone == nil {
		deadzone := DefaultDeadzone
		svcConf.Deadzone = &deadzone
	}

	cancelCtx, cancelFunc := context.WithCancel(context.Background())
	svc := &remoteService{
		vehicle:         vehicle,
		inputController: controller,
		config:          svcConf,
		logger:          logger,
		cancelFunc:      cancelFunc,
	}

	if err := svc.registerCallbacks(ctx); err != nil {
		cancelFunc()
		return nil, multierr.Combine(
			errors.Wrap(err, "error with starting remote control service"),
			svc.unregisterCallbacks(ctx),
		)
	}

	ticker := clock.Ticker(time.Duration(conf.TickMS) * time.Millisecond)
	svc.activeBackgroundWorkers.Add(1)
	utils.PanicCapturingGo(func() {
		defer svc.activeBackgroundWorkers.Done()
		defer ticker.Stop()
		for {
			if cancelCtx.Err() != nil {
				return
			}
			select {
			case <-cancelCtx.Done():
				return
			case <-ticker.C:
				svc.tick()
			}
		}
	})
	return svc, nil
}

func (svc *remoteService) registerCallbacks(ctx context.Context) error {
	for _, control := range axisControls {
		err := svc.inputController.RegisterControlCallback(
			ctx, control, []input.EventType{input.PositionChangeAbs}, svc.onAxis)
		if err != nil {
			return err
		}
	}
	for _, control := range buttonControls {
		err := svc.inputController.RegisterControlCallback(
			ctx, control, []input.EventType{input.ButtonPress}, svc.onButton)
		if err != nil {
			return err
		}
	}
	return nil
}

func (svc *remoteService) unregisterCallbacks(ctx context.Context) error {
	var errs error
	for _, control := range append(append([]input.Control{}, axisControls...), buttonControls...) {
		errs = multierr.Combine(errs, svc.inputController.RegisterControlCallback(ctx, control, nil, nil))
	}
	return errs
}

func (svc *remoteService) onAxis(ctx context.Context, event input.Event) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	switch event.Control {
	case input.AbsoluteY:
		svc.throttle = event.Value
	case input.AbsoluteRX:
		svc.steer = event.Value
	default:
	}
}

func (svc *remoteService) onButton(ctx context.Context, event input.Event) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	var err error
	switch event.Control {
	case input.ButtonSelect:
		next := fourws.NextMode(svc.vehicle.Mode())
		svc.logger.CDebugf(ctx, "switching to %s mode", next)
		err = svc.vehicle.SetMode(next, svc.vehicle.AngleOffset())
	case input.ButtonStart:
		svc.vehicle.Reset()
	case input.ButtonEast:
		err = svc.vehicle.AdjustIcrBias(svc.config.BiasStep)
	case input.ButtonWest:
		err = svc.vehicle.AdjustIcrBias(-svc.config.BiasStep)
	default:
	}
	if err != nil {
		svc.logger.Errorw("error handling button", "control", event.Control, "error", err)
	}
}

// tick applies the current stick deflections once. Deflections within the deadzone are ignored.
func (svc *remoteService) tick() {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if math.Abs(svc.steer) > *svc.config.Deadzone {
		if err := svc.vehicle.AdjustAngleOffset(svc.steer * svc.config.OffsetRate); err != nil {
			svc.logger.Errorw("error adjusting angle offset", "error", err)
		}
	}
	if math.Abs(svc.throttle) <= *svc.config.Deadzone {
		return
	}

	// Pushing the stick away (negative Y) drives forward.
	direction := fourws.Backward
	if svc.throttle < 0 {
		direction = fourws.Forward
	}
	step := svc.config.Step
	if step == 0 {
		step = svc.vehicle.Step()
	}
	if err := svc.vehicle.Move(direction, step*math.Abs(svc.throttle)); err != nil {
		svc.logger.Errorw("error moving vehicle", "error", err)
	}
}

func (svc *remoteService) Snapshot() fourws.Snapshot {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.vehicle.Snapshot()
}

// Close stops the tick loop and removes the controller callbacks.
func (svc *remoteService) Close(ctx context.Context) error {
	svc.cancelFunc()
	svc.activeBackgroundWorkers.Wait()
	return svc.unregisterCallbacks(ctx)
}
