package alertness

import "math"

// syntheticFace places each region of the default topology so that its
// aspect ratio is the requested value; everything else sits at the centre.
func syntheticFace(ear, mar float64) LandmarkSet {
	t := DefaultTopology()
	face := make(LandmarkSet, t.FacePoints)
	for i := range face {
		face[i] = NewPoint(0.5, 0.5)
	}

	place := func(q Quad, ratio, cx, cy float64) {
		const vertical = 0.1
		face[q.Top] = NewPoint(cx, cy)
		face[q.Bottom] = NewPoint(cx, cy+vertical)
		face[q.Left] = NewPoint(cx, cy)
		face[q.Right] = NewPoint(cx+ratio*vertical, cy)
	}

	place(t.LeftEye, ear, 0.6, 0.35)
	place(t.RightEye, ear, 0.3, 0.35)
	place(t.Mouth, mar, 0.45, 0.7)

	return face
}

// syntheticPose puts the two pose eye centres on a line tilted by degrees.
func syntheticPose(degrees float64) LandmarkSet {
	t := DefaultTopology()
	pose := make(LandmarkSet, t.PosePoints)
	for i := range pose {
		pose[i] = NewPoint(0.5, 0.5)
	}

	rad := degrees * math.Pi / 180
	left := NewPoint(0.4, 0.3)
	pose[t.PoseLeftEye] = left
	pose[t.PoseRightEye] = NewPoint(left.X+0.2*math.Cos(rad), left.Y+0.2*math.Sin(rad))

	return pose
}
