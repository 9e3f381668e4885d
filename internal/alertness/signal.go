package alertness

import "github.com/pkg/errors"

const (
	SignalAspect = "aspect"
	SignalEyelid = "eyelid"
)

// Sample is the pair of ratios derived from one face.
type Sample struct {
	EAR float64 `json:"ear"`
	MAR float64 `json:"mar"`
}

// SignalSource turns a validated face landmark set into a Sample.
type SignalSource interface {
	Name() string
	Sample(face LandmarkSet) Sample
}

// NewSignalSource selects a strategy by name. An empty name selects the
// four-point aspect source.
func NewSignalSource(name string, t *Topology) (SignalSource, error) {
	switch name {
	case "", SignalAspect:
		return &aspectSource{topology: t}, nil
	case SignalEyelid:
		return &eyelidSource{topology: t}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownSignal, "%q", name)
	}
}

type aspectSource struct {
	topology *Topology
}

func (s *aspectSource) Name() string {
	return SignalAspect
}

func (s *aspectSource) Sample(face LandmarkSet) Sample {
	left := AspectRatio(face.quad(s.topology.LeftEye))
	right := AspectRatio(face.quad(s.topology.RightEye))

	return Sample{
		EAR: (left + right) / 2,
		MAR: AspectRatio(face.quad(s.topology.Mouth)),
	}
}

// eyelidSource uses the six-point eye aspect ratio: mean eyelid opening over
// corner-to-corner width. The mouth still uses the four-point ratio.
type eyelidSource struct {
	topology *Topology
}

func (s *eyelidSource) Name() string {
	return SignalEyelid
}

func (s *eyelidSource) Sample(face LandmarkSet) Sample {
	left := eyelidRatio(face, s.topology.LeftEyelid)
	right := eyelidRatio(face, s.topology.RightEyelid)

	return Sample{
		EAR: (left + right) / 2,
		MAR: AspectRatio(face.quad(s.topology.Mouth)),
	}
}

func eyelidRatio(face LandmarkSet, idx [6]int) float64 {
	vertical := Distance(face[idx[1]], face[idx[5]]) + Distance(face[idx[2]], face[idx[4]])
	return vertical / (2*Distance(face[idx[0]], face[idx[3]]) + Epsilon)
}
