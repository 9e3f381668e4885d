package alertness

import "math"

// MetricCounter counts consecutive frames for which a condition held.
type MetricCounter struct {
	n int
}

// Observe advances the counter when cond holds and resets it otherwise.
func (c *MetricCounter) Observe(cond bool) {
	if !cond {
		c.n = 0
		return
	}
	if c.n < math.MaxInt {
		c.n++
	}
}

func (c *MetricCounter) Value() int {
	return c.n
}

// DrowsinessEvaluator holds the eye and yawn hysteresis for one subject.
// It must never be shared between subjects.
type DrowsinessEvaluator struct {
	thresholds Thresholds
	topology   *Topology
	source     SignalSource

	eye  MetricCounter
	yawn MetricCounter

	last    Sample
	hasLast bool
}

func NewDrowsinessEvaluator(thresholds Thresholds, topology *Topology, source SignalSource) *DrowsinessEvaluator {
	return &DrowsinessEvaluator{
		thresholds: thresholds,
		topology:   topology,
		source:     source,
	}
}

// Evaluate samples face and advances the counters. A nil face yields NoFace
// and a malformed one an error; in both cases the counters are left as they were.
func (d *DrowsinessEvaluator) Evaluate(face LandmarkSet) (Verdict, error) {
	if !face.Detected() {
		return NoFace, nil
	}

	if err := face.validate("face", d.topology.FacePoints); err != nil {
		return NoFace, err
	}

	return d.Observe(d.source.Sample(face)), nil
}

// Observe feeds one sample through the counters and returns the verdict.
// Eye closure takes precedence over yawning.
func (d *DrowsinessEvaluator) Observe(s Sample) Verdict {
	d.last = s
	d.hasLast = true

	d.eye.Observe(s.EAR < d.thresholds.EAR)
	d.yawn.Observe(s.MAR > d.thresholds.MAR)

	switch {
	case d.eye.Value() > d.thresholds.FrameLimit:
		return DrowsyEyes
	case d.yawn.Value() > d.thresholds.FrameLimit:
		return DrowsyYawn
	default:
		return Ok
	}
}

// Counters returns the current eye and yawn streaks.
func (d *DrowsinessEvaluator) Counters() (eye, yawn int) {
	return d.eye.Value(), d.yawn.Value()
}

func (d *DrowsinessEvaluator) LastSample() (Sample, bool) {
	return d.last, d.hasLast
}
