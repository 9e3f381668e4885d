package entity

import "time"

type AlertEvent struct {
	ID          string    `db:"id"`
	SubjectID   string    `db:"subject_id"`
	Camera      string    `db:"camera"`
	Verdict     string    `db:"verdict"`
	Status      string    `db:"status"`
	EyeFrames   int       `db:"eye_frames"`
	YawnFrames  int       `db:"yawn_frames"`
	EAR         *float64  `db:"ear"`
	MAR         *float64  `db:"mar"`
	TiltDegrees *float64  `db:"tilt_degrees"`
	SnapshotKey *string   `db:"snapshot_key"`
	CreatedAt   time.Time `db:"created_at"`
}

type AlertEventFilter struct {
	SubjectID string
	Verdict   string
	Since     *time.Time
	Until     *time.Time
	Limit     int
	Offset    int
}
