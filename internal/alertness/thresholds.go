package alertness

const (
	DefaultHeadTiltDegrees = 15
	DefaultEARThreshold    = 0.25
	DefaultMARThreshold    = 1.8
	DefaultFrameLimit      = 6
)

// Thresholds are load-time settings for one pipeline.
type Thresholds struct {
	HeadTiltDegrees float64 `json:"head_tilt_degrees" validate:"gt=0,lte=180"`
	EAR             float64 `json:"ear" validate:"gt=0"`
	MAR             float64 `json:"mar" validate:"gt=0"`
	FrameLimit      int     `json:"frame_limit" validate:"gte=0"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		HeadTiltDegrees: DefaultHeadTiltDegrees,
		EAR:             DefaultEARThreshold,
		MAR:             DefaultMARThreshold,
		FrameLimit:      DefaultFrameLimit,
	}
}
