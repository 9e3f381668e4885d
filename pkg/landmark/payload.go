package landmark

import (
	"DriverGuard/internal/alertness"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Payload is the landmark document exchanged with the inference service and
// accepted inline from clients that run inference themselves. A null list
// means the detector found nothing for that model.
type Payload struct {
	Face []alertness.Point `json:"face_landmarks"`
	Pose []alertness.Point `json:"pose_landmarks"`
}

func (p Payload) Frame() alertness.Frame {
	return alertness.Frame{
		Face: alertness.LandmarkSet(p.Face),
		Pose: alertness.LandmarkSet(p.Pose),
	}
}

func Decode(data []byte) (alertness.Frame, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return alertness.Frame{}, err
	}
	return p.Frame(), nil
}
