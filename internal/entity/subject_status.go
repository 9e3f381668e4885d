package entity

import "time"

// SubjectStatus is the last verdict produced for a monitored subject, as
// cached for status lookups.
type SubjectStatus struct {
	SubjectID   string    `json:"subject_id"`
	Verdict     string    `json:"verdict"`
	Status      string    `json:"status"`
	Critical    bool      `json:"critical"`
	EyeFrames   int       `json:"eye_frames"`
	YawnFrames  int       `json:"yawn_frames"`
	EAR         *float64  `json:"ear,omitempty"`
	MAR         *float64  `json:"mar,omitempty"`
	TiltDegrees *float64  `json:"tilt_degrees,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
