package monitor

import (
	"DriverGuard/pkg/landmark"
	"time"
)

// DriverCamera is the only camera tag that is evaluated. Frames from any
// other camera are acknowledged and ignored.
const DriverCamera = "driver"

type FrameMessage struct {
	Camera    string            `json:"camera"`
	Frame     string            `json:"frame,omitempty"`
	Landmarks *landmark.Payload `json:"landmarks,omitempty"`
}

type AlertMessage struct {
	Camera      string    `json:"camera"`
	Status      string    `json:"status"`
	Critical    bool      `json:"critical"`
	Verdict     string    `json:"verdict"`
	SubjectID   string    `json:"subject_id"`
	EyeFrames   int       `json:"eye_frames"`
	YawnFrames  int       `json:"yawn_frames"`
	EAR         *float64  `json:"ear,omitempty"`
	MAR         *float64  `json:"mar,omitempty"`
	TiltDegrees *float64  `json:"tilt_degrees,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type EvaluateRequest struct {
	SubjectID string            `json:"subject_id" validate:"required,max=64"`
	Camera    string            `json:"camera" validate:"required,max=32"`
	Frame     string            `json:"frame" validate:"required_without=Landmarks"`
	Landmarks *landmark.Payload `json:"landmarks"`
}

type EventQuery struct {
	SubjectID string `query:"subject_id" validate:"omitempty,max=64"`
	Verdict   string `query:"verdict" validate:"omitempty,oneof=DISTRACTED DROWSY_EYES DROWSY_YAWN"`
	Since     string `query:"since" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Until     string `query:"until" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Offset    int    `query:"offset" validate:"omitempty,min=0"`
}

type AlertEventResponse struct {
	ID          string   `json:"id"`
	SubjectID   string   `json:"subject_id"`
	Camera      string   `json:"camera"`
	Verdict     string   `json:"verdict"`
	Status      string   `json:"status"`
	EyeFrames   int      `json:"eye_frames"`
	YawnFrames  int      `json:"yawn_frames"`
	EAR         *float64 `json:"ear,omitempty"`
	MAR         *float64 `json:"mar,omitempty"`
	TiltDegrees *float64 `json:"tilt_degrees,omitempty"`
	SnapshotURL string   `json:"snapshot_url,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

type EventListResponse struct {
	Events []AlertEventResponse `json:"events"`
	Count  int                  `json:"count"`
}

type WebSocketError struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
