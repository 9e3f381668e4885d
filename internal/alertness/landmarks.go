package alertness

import "github.com/pkg/errors"

// LandmarkSet is the ordered point list for one detected face or body pose.
// A nil set means the model detected nothing.
type LandmarkSet []Point

// Frame is one landmark-model result.
type Frame struct {
	Face LandmarkSet
	Pose LandmarkSet
}

func (s LandmarkSet) Detected() bool {
	return s != nil
}

func (s LandmarkSet) validate(kind string, expected int) error {
	if len(s) != expected {
		return errors.Wrapf(ErrMalformedLandmarks, "%s: expected %d points, got %d", kind, expected, len(s))
	}
	for i, p := range s {
		if !p.finite() {
			return errors.Wrapf(ErrMalformedLandmarks, "%s: point %d is not finite", kind, i)
		}
	}
	return nil
}

func (s LandmarkSet) quad(q Quad) (top, bottom, left, right Point) {
	return s[q.Top], s[q.Bottom], s[q.Left], s[q.Right]
}

// Validate checks every detected set in f against the topology cardinality.
func (f Frame) Validate(t *Topology) error {
	if f.Face.Detected() {
		if err := f.Face.validate("face", t.FacePoints); err != nil {
			return err
		}
	}
	if f.Pose.Detected() {
		if err := f.Pose.validate("pose", t.PosePoints); err != nil {
			return err
		}
	}
	return nil
}
