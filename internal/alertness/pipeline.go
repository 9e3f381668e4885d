package alertness

import "github.com/pkg/errors"

// Config assembles a pipeline. A nil Topology selects DefaultTopology.
type Config struct {
	Thresholds Thresholds
	Topology   *Topology
	Signal     string
}

// Result is everything a pipeline knows about one processed frame.
type Result struct {
	Verdict     Verdict
	Sample      *Sample
	TiltDegrees *float64
	EyeFrames   int
	YawnFrames  int
}

// Pipeline runs the distraction check and then the drowsiness evaluator for
// a single subject. It is not safe for concurrent use; callers serialize
// frames per subject.
type Pipeline struct {
	thresholds Thresholds
	topology   *Topology
	drowsiness *DrowsinessEvaluator
}

func NewPipeline(cfg Config) (*Pipeline, error) {
	topology := cfg.Topology
	if topology == nil {
		topology = DefaultTopology()
	}
	if err := topology.Validate(); err != nil {
		return nil, err
	}

	source, err := NewSignalSource(cfg.Signal, topology)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		thresholds: cfg.Thresholds,
		topology:   topology,
		drowsiness: NewDrowsinessEvaluator(cfg.Thresholds, topology, source),
	}, nil
}

// Process evaluates one frame. Malformed input is rejected before any state
// changes. A distracted frame short-circuits drowsiness, so its counters do
// not move.
func (p *Pipeline) Process(frame Frame) (Result, error) {
	if err := frame.Validate(p.topology); err != nil {
		return p.snapshot(NoFace, nil, nil), errors.WithStack(err)
	}

	var tilt *float64
	if frame.Pose.Detected() {
		left := frame.Pose[p.topology.PoseLeftEye]
		right := frame.Pose[p.topology.PoseRightEye]

		angle := TiltAngle(left, right)
		tilt = &angle

		if IsDistracted(left, right, p.thresholds.HeadTiltDegrees) {
			return p.snapshot(Distracted, nil, tilt), nil
		}
	}

	verdict, err := p.drowsiness.Evaluate(frame.Face)
	if err != nil {
		return p.snapshot(NoFace, nil, tilt), err
	}

	var sample *Sample
	if verdict != NoFace {
		s, _ := p.drowsiness.LastSample()
		sample = &s
	}

	return p.snapshot(verdict, sample, tilt), nil
}

func (p *Pipeline) Counters() (eye, yawn int) {
	return p.drowsiness.Counters()
}

func (p *Pipeline) snapshot(v Verdict, s *Sample, tilt *float64) Result {
	eye, yawn := p.drowsiness.Counters()
	return Result{
		Verdict:     v,
		Sample:      s,
		TiltDegrees: tilt,
		EyeFrames:   eye,
		YawnFrames:  yawn,
	}
}
