package alertness

import (
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Region identifies a facial area measured by a four-point aspect ratio.
type Region int

const (
	LeftEye Region = iota
	RightEye
	Mouth
	regionCount
)

func (r Region) String() string {
	switch r {
	case LeftEye:
		return "left_eye"
	case RightEye:
		return "right_eye"
	case Mouth:
		return "mouth"
	default:
		return "unknown"
	}
}

// Quad holds the landmark indices of a region's aspect-ratio points.
type Quad struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

func (q Quad) indices() []int {
	return []int{q.Top, q.Bottom, q.Left, q.Right}
}

// Topology is the index table published by the landmark model. It is
// configuration: nothing in this package assumes a specific index beyond what
// the table says.
type Topology struct {
	Name       string `json:"name"`
	FacePoints int    `json:"face_points"`
	PosePoints int    `json:"pose_points"`

	LeftEye  Quad `json:"left_eye"`
	RightEye Quad `json:"right_eye"`
	Mouth    Quad `json:"mouth"`

	// Pose indices of the eye centers used by the head-tilt proxy.
	PoseLeftEye  int `json:"pose_left_eye"`
	PoseRightEye int `json:"pose_right_eye"`

	// Six-point eyelid contours: corner, upper, upper, corner, lower, lower.
	LeftEyelid  [6]int `json:"left_eyelid"`
	RightEyelid [6]int `json:"right_eyelid"`
}

// DefaultTopology is the MediaPipe Holistic layout: 468 face mesh points and
// 33 pose points.
func DefaultTopology() *Topology {
	return &Topology{
		Name:         "mediapipe-holistic",
		FacePoints:   468,
		PosePoints:   33,
		LeftEye:      Quad{Top: 386, Bottom: 374, Left: 263, Right: 362},
		RightEye:     Quad{Top: 159, Bottom: 145, Left: 133, Right: 33},
		Mouth:        Quad{Top: 13, Bottom: 14, Left: 78, Right: 308},
		PoseLeftEye:  2,
		PoseRightEye: 5,
		LeftEyelid:   [6]int{33, 160, 158, 133, 153, 144},
		RightEyelid:  [6]int{263, 387, 385, 362, 380, 373},
	}
}

// LoadTopology reads a topology table from a JSON file and validates it.
func LoadTopology(path string) (*Topology, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read topology %s", path)
	}

	var t Topology
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &t); err != nil {
		return nil, errors.Wrapf(err, "decode topology %s", path)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return &t, nil
}

// Quad returns the index quad for r.
func (t *Topology) Quad(r Region) (Quad, error) {
	switch r {
	case LeftEye:
		return t.LeftEye, nil
	case RightEye:
		return t.RightEye, nil
	case Mouth:
		return t.Mouth, nil
	default:
		return Quad{}, errors.Wrapf(ErrInvalidTopology, "unknown region %d", r)
	}
}

func (t *Topology) Validate() error {
	if t.FacePoints <= 0 || t.PosePoints <= 0 {
		return errors.Wrap(ErrInvalidTopology, "point counts must be positive")
	}

	for r := LeftEye; r < regionCount; r++ {
		q, _ := t.Quad(r)
		for _, idx := range q.indices() {
			if idx < 0 || idx >= t.FacePoints {
				return errors.Wrapf(ErrInvalidTopology, "%s index %d outside face set of %d", r, idx, t.FacePoints)
			}
		}
	}

	for _, set := range [][6]int{t.LeftEyelid, t.RightEyelid} {
		for _, idx := range set {
			if idx < 0 || idx >= t.FacePoints {
				return errors.Wrapf(ErrInvalidTopology, "eyelid index %d outside face set of %d", idx, t.FacePoints)
			}
		}
	}

	for _, idx := range []int{t.PoseLeftEye, t.PoseRightEye} {
		if idx < 0 || idx >= t.PosePoints {
			return errors.Wrapf(ErrInvalidTopology, "pose eye index %d outside pose set of %d", idx, t.PosePoints)
		}
	}

	return nil
}
