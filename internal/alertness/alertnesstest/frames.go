// Package alertnesstest builds landmark frames with known ratios for tests
// of packages that sit on top of the alertness engine.
package alertnesstest

import (
	"DriverGuard/internal/alertness"
	"math"
)

// Face returns a default-topology face whose eyes measure ear and whose
// mouth measures mar under the aspect signal.
func Face(ear, mar float64) []alertness.Point {
	t := alertness.DefaultTopology()
	face := make([]alertness.Point, t.FacePoints)
	for i := range face {
		face[i] = alertness.NewPoint(0.5, 0.5)
	}

	place := func(q alertness.Quad, ratio, cx, cy float64) {
		const vertical = 0.1
		face[q.Top] = alertness.NewPoint(cx, cy)
		face[q.Bottom] = alertness.NewPoint(cx, cy+vertical)
		face[q.Left] = alertness.NewPoint(cx, cy)
		face[q.Right] = alertness.NewPoint(cx+ratio*vertical, cy)
	}

	place(t.LeftEye, ear, 0.6, 0.35)
	place(t.RightEye, ear, 0.3, 0.35)
	place(t.Mouth, mar, 0.45, 0.7)

	return face
}

// Pose returns a default-topology pose with the eye line tilted by degrees.
func Pose(degrees float64) []alertness.Point {
	t := alertness.DefaultTopology()
	pose := make([]alertness.Point, t.PosePoints)
	for i := range pose {
		pose[i] = alertness.NewPoint(0.5, 0.5)
	}

	rad := degrees * math.Pi / 180
	left := alertness.NewPoint(0.4, 0.3)
	pose[t.PoseLeftEye] = left
	pose[t.PoseRightEye] = alertness.NewPoint(left.X+0.2*math.Cos(rad), left.Y+0.2*math.Sin(rad))

	return pose
}

// Canned faces for the default thresholds.
func Open() []alertness.Point { return Face(0.40, 1.0) }

func Closed() []alertness.Point { return Face(0.10, 1.0) }

func Yawning() []alertness.Point { return Face(0.40, 2.5) }
