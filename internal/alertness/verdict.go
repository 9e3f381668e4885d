package alertness

// Verdict is the single alert decision emitted for a frame.
type Verdict int

const (
	Ok Verdict = iota
	Distracted
	DrowsyEyes
	DrowsyYawn
	NoFace
)

func (v Verdict) String() string {
	switch v {
	case Ok:
		return "OK"
	case Distracted:
		return "Distracted (Head Tilt)"
	case DrowsyEyes:
		return "Drowsy: Eyes closed"
	case DrowsyYawn:
		return "Drowsy: Yawning"
	case NoFace:
		return "No face detected"
	default:
		return "Unknown"
	}
}

// Code is the machine-readable form used in JSON payloads and the alert journal.
func (v Verdict) Code() string {
	switch v {
	case Ok:
		return "OK"
	case Distracted:
		return "DISTRACTED"
	case DrowsyEyes:
		return "DROWSY_EYES"
	case DrowsyYawn:
		return "DROWSY_YAWN"
	case NoFace:
		return "NO_FACE"
	default:
		return "UNKNOWN"
	}
}

// Critical reports whether the verdict should be flagged to the driver UI.
// NoFace counts as critical.
func (v Verdict) Critical() bool {
	return v != Ok
}

// IsAlert reports whether the verdict is one of the driver-state alerts.
func (v Verdict) IsAlert() bool {
	return v == Distracted || v == DrowsyEyes || v == DrowsyYawn
}

func ParseVerdictCode(code string) (Verdict, bool) {
	for _, v := range []Verdict{Ok, Distracted, DrowsyEyes, DrowsyYawn, NoFace} {
		if v.Code() == code {
			return v, true
		}
	}
	return Ok, false
}
