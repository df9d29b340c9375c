package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/steerlab/fourws/utils"
)

// Pose2D is a position in the plane plus a heading in degrees.
type Pose2D struct {
	Position r2.Point
	Heading  float64
}

// NewPose2D returns a pose with its heading wrapped into [0, 360).
func NewPose2D(position r2.Point, headingDeg float64) Pose2D {
	return Pose2D{Position: position, Heading: utils.ModAngDeg(headingDeg)}
}

// Transform maps a point expressed in this pose's local frame into the parent frame.
func (p Pose2D) Transform(local r2.Point) r2.Point {
	return p.Position.Add(Rotate(local, p.Heading))
}

func (p Pose2D) String() string {
	return fmt.Sprintf("(%.3f, %.3f) @ %.3f°", p.Position.X, p.Position.Y, p.Heading)
}

// PoseAlmostEqual compares positions within epsilon and headings within epsilon degrees
// on the circle.
func PoseAlmostEqual(a, b Pose2D, epsilon float64) bool {
	return PointAlmostEqual(a.Position, b.Position, epsilon) &&
		utils.AngleDiffDeg(a.Heading, b.Heading) <= epsilon
}
