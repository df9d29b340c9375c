package fourws

import (
	"github.com/golang/geo/r2"
	"github.com/montanaflynn/stats"
	"github.com/samber/lo"
)

// PreviewRayLength is the length of each wheel's ray when the trajectory has no ICR.
const PreviewRayLength = 250.0

// Ray is a segment from a wheel along the direction it rolls when moving forward.
type Ray struct {
	Wheel  string
	Origin r2.Point
	End    r2.Point
}

// TrajectoryPreview describes the path the vehicle would follow with its current steering. When
// there is an ICR the vehicle and wheels follow circles about it; otherwise each wheel follows a
// straight ray.
type TrajectoryPreview struct {
	ICR         r2.Point
	HasICR      bool
	MainRadius  float64
	LeftRadius  float64
	RightRadius float64
	Rays        []Ray
}

// Preview returns the trajectory preview for the current state. In curve and pivotal modes the ICR
// is the steering ICR; in the other modes it is the intersection of the wheel heading lines, if
// any.
func (v *Vehicle) Preview() TrajectoryPreview {
	s := &v.state
	icr, ok := v.computeICR(s)
	if !ok {
		icr, ok = previewICR(s)
	}
	if !ok {
		return TrajectoryPreview{
			Rays: lo.Map(s.wheels[:], func(w Wheel, _ int) Ray {
				return Ray{
					Wheel:  w.Name,
					Origin: w.Position,
					End:    w.Position.Add(w.RollingDirection().Mul(PreviewRayLength)),
				}
			}),
		}
	}

	radiusTo := func(w Wheel, _ int) float64 {
		return w.Position.Sub(icr).Norm()
	}
	left := lo.Filter(s.wheels[:], func(w Wheel, _ int) bool { return w.RelativePosition.X < 0 })
	right := lo.Filter(s.wheels[:], func(w Wheel, _ int) bool { return w.RelativePosition.X > 0 })
	return TrajectoryPreview{
		ICR:         icr,
		HasICR:      true,
		MainRadius:  s.pose.Position.Sub(icr).Norm(),
		LeftRadius:  mean(lo.Map(left, radiusTo)),
		RightRadius: mean(lo.Map(right, radiusTo)),
	}
}

// mean is zero for an empty side.
func mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

// PreviewAt returns the trajectory preview the vehicle would have after SetMode(mode, angleOffset)
// without changing the vehicle.
func (v *Vehicle) PreviewAt(mode Mode, angleOffset float64, opts ...ModeOption) (TrajectoryPreview, error) {
	saved := v.state
	defer func() {
		v.state = saved
	}()
	if err := v.SetMode(mode, angleOffset, opts...); err != nil {
		return TrajectoryPreview{}, err
	}
	return v.Preview(), nil
}
