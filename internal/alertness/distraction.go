package alertness

import "math"

// TiltAngle is the angle in degrees of the line from left to right against
// the image horizontal.
func TiltAngle(left, right Point) float64 {
	return math.Atan2(right.Y-left.Y, right.X-left.X) * 180 / math.Pi
}

// IsDistracted reports a head tilt beyond thresholdDegrees. A single frame is
// enough; there is no debounce on this path.
func IsDistracted(left, right Point, thresholdDegrees float64) bool {
	return math.Abs(TiltAngle(left, right)) > thresholdDegrees
}
