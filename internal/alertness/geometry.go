package alertness

import "math"

// Epsilon guards the denominator of AspectRatio against collapsed landmarks.
const Epsilon = 1e-6

// Point is a landmark position in normalized image coordinates. Z is carried
// through from the model but ignored by every computation here.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

// Scale returns the point with X and Y multiplied by k.
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k, Z: p.Z}
}

func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Distance is the 2-D Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// AspectRatio returns distance(left, right) / distance(top, bottom). All four
// points must share one coordinate space (normalized or pixel).
func AspectRatio(top, bottom, left, right Point) float64 {
	return Distance(left, right) / (Distance(top, bottom) + Epsilon)
}
