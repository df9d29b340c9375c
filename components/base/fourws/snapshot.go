package fourws

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/steerlab/fourws/spatialmath"
)

// WheelSnapshot is the externally visible state of one wheel.
type WheelSnapshot struct {
	Name          string   `json:"name"`
	Position      r2.Point `json:"position"`
	Heading       float64  `json:"heading"`
	ShouldReverse bool     `json:"should_reverse"`
}

// Snapshot is a read-only copy of a vehicle's pose, steering and wheels.
type Snapshot struct {
	Name        string                   `json:"name"`
	Mode        Mode                     `json:"mode"`
	Pose        spatialmath.Pose2D       `json:"pose"`
	AngleOffset float64                  `json:"angle_offset"`
	ICRBias     float64                  `json:"icr_bias"`
	ICR         *r2.Point                `json:"icr,omitempty"`
	Odometer    float64                  `json:"odometer"`
	Wheels      [NumWheels]WheelSnapshot `json:"wheels"`
}

// Snapshot returns the vehicle's current state.
func (v *Vehicle) Snapshot() Snapshot {
	snap := Snapshot{
		Name:        v.name,
		Mode:        v.state.mode,
		Pose:        v.state.pose,
		AngleOffset: v.state.angleOffset,
		ICRBias:     v.state.icrBias,
		Odometer:    v.state.odometer,
	}
	if v.state.icr != nil {
		icr := *v.state.icr
		snap.ICR = &icr
	}
	copy(snap.Wheels[:], lo.Map(v.state.wheels[:], func(w Wheel, _ int) WheelSnapshot {
		return WheelSnapshot{
			Name:          w.Name,
			Position:      w.Position,
			Heading:       w.Heading,
			ShouldReverse: w.ShouldReverse,
		}
	}))
	return snap
}

// String returns a table of the vehicle and its wheels.
func (s Snapshot) String() string {
	icr := "-"
	if s.ICR != nil {
		icr = fmt.Sprintf("X:%.2f, Y:%.2f", s.ICR.X, s.ICR.Y)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Position", "Heading", "Reversed"})
	t.AppendRow([]interface{}{
		"0",
		s.Name,
		fmt.Sprintf("X:%.2f, Y:%.2f", s.Pose.Position.X, s.Pose.Position.Y),
		fmt.Sprintf("%.2f", s.Pose.Heading),
		"",
	})
	for i, w := range s.Wheels {
		t.AppendRow([]interface{}{
			fmt.Sprintf("%d", i+1),
			w.Name,
			fmt.Sprintf("X:%.2f, Y:%.2f", w.Position.X, w.Position.Y),
			fmt.Sprintf("%.2f", w.Heading),
			fmt.Sprintf("%t", w.ShouldReverse),
		})
	}
	summary := fmt.Sprintf("%s  mode:%s  offset:%.2f  bias:%.2f  icr:%s  odometer:%.2f",
		s.Name, s.Mode, s.AngleOffset, s.ICRBias, icr, s.Odometer)
	return summary + "\n" + t.Render()
}
