package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"github.com/steerlab/fourws/components/base/fourws"
)

// Op names one scenario step.
type Op string

// The scenario operations.
const (
	OpSetMode           Op = "set_mode"
	OpMove              Op = "move"
	OpAdjustAngleOffset Op = "adjust_angle_offset"
	OpAdjustIcrBias     Op = "adjust_icr_bias"
	OpReset             Op = "reset"
	OpSnapshot          Op = "snapshot"
	OpPreview           Op = "preview"
)

// Step is a single scenario command. Fields that do not apply to Op are ignored.
type Step struct {
	Op          Op               `json:"op"`
	Mode        fourws.Mode      `json:"mode,omitempty"`
	AngleOffset float64          `json:"angle_offset,omitempty"`
	ICRBias     *float64         `json:"icr_bias,omitempty"`
	Direction   fourws.Direction `json:"direction,omitempty"`
	Step        float64          `json:"step,omitempty"`
	Repeat      int              `json:"repeat,omitempty"`
	Delta       float64          `json:"delta,omitempty"`
}

// Script is an ordered list of steps run against a single vehicle.
type Script struct {
	Steps []Step `json:"steps"`
}

// Validate checks every step names a known operation with sane repeat counts.
func (s *Script) Validate() error {
	for i, step := range s.Steps {
		switch step.Op {
		case OpSetMode, OpMove, OpAdjustAngleOffset, OpAdjustIcrBias, OpReset, OpSnapshot, OpPreview:
		default:
			return errors.Errorf("step %d: unknown op %q", i, step.Op)
		}
		if step.Repeat < 0 {
			return errors.Errorf("step %d: repeat must not be negative", i)
		}
	}
	return nil
}

// ReadScript reads a scenario script from path, expanding environment variables.
func ReadScript(path string) (*Script, error) {
	buf, err := envsubst.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read script %q", path)
	}
	return ParseScript(buf)
}

// ParseScript decodes and validates a JSON scenario script.
func ParseScript(data []byte) (*Script, error) {
	var script Script
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, errors.Wrap(err, "cannot parse script")
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}
	return &script, nil
}

// RunScript applies every step to v in order and writes snapshot and preview tables to w. It stops
// at the first failing step; the vehicle keeps the state reached by the steps before it.
func RunScript(ctx context.Context, v *fourws.Vehicle, script *Script, w io.Writer) error {
	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := runStep(v, step, w); err != nil {
			return errors.Wrapf(err, "step %d (%s)", i, step.Op)
		}
	}
	return nil
}

func runStep(v *fourws.Vehicle, step Step, w io.Writer) error {
	switch step.Op {
	case OpSetMode:
		var opts []fourws.ModeOption
		if step.ICRBias != nil {
			opts = append(opts, fourws.WithICRBias(*step.ICRBias))
		}
		return v.SetMode(step.Mode, step.AngleOffset, opts...)
	case OpMove:
		size := step.Step
		if size == 0 {
			size = v.Step()
		}
		repeat := step.Repeat
		if repeat == 0 {
			repeat = 1
		}
		for n := 0; n < repeat; n++ {
			if err := v.Move(step.Direction, size); err != nil {
				return err
			}
		}
		return nil
	case OpAdjustAngleOffset:
		return v.AdjustAngleOffset(step.Delta)
	case OpAdjustIcrBias:
		return v.AdjustIcrBias(step.Delta)
	case OpReset:
		v.Reset()
		return nil
	case OpSnapshot:
		printf(w, "%s", v.Snapshot())
		return nil
	case OpPreview:
		printf(w, "%s", previewTable(v.Preview()))
		return nil
	}
	return errors.Errorf("unknown op %q", step.Op)
}

func formatPoint(x, y float64) string {
	return fmt.Sprintf("X:%.2f, Y:%.2f", x, y)
}
