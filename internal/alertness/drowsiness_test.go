package alertness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvaluator(t *testing.T) *DrowsinessEvaluator {
	t.Helper()
	topo := DefaultTopology()
	source, err := NewSignalSource(SignalAspect, topo)
	require.NoError(t, err)
	return NewDrowsinessEvaluator(DefaultThresholds(), topo, source)
}

func TestMetricCounter(t *testing.T) {
	var c MetricCounter
	c.Observe(true)
	c.Observe(true)
	assert.Equal(t, 2, c.Value())

	c.Observe(false)
	assert.Equal(t, 0, c.Value())

	c.Observe(false)
	assert.Equal(t, 0, c.Value())

	c.n = math.MaxInt
	c.Observe(true)
	assert.Equal(t, math.MaxInt, c.Value())
}

func TestEyeClosureDebounce(t *testing.T) {
	d := newEvaluator(t)

	for i := 1; i <= DefaultFrameLimit; i++ {
		v := d.Observe(Sample{EAR: 0.10, MAR: 1.0})
		assert.Equal(t, Ok, v, "frame %d", i)
	}

	assert.Equal(t, DrowsyEyes, d.Observe(Sample{EAR: 0.10, MAR: 1.0}))
	eye, _ := d.Counters()
	assert.Equal(t, DefaultFrameLimit+1, eye)
}

func TestEyeCounterResets(t *testing.T) {
	d := newEvaluator(t)

	for i := 0; i < DefaultFrameLimit+1; i++ {
		d.Observe(Sample{EAR: 0.10, MAR: 1.0})
	}
	require.Equal(t, DrowsyEyes, d.Observe(Sample{EAR: 0.10, MAR: 1.0}))

	assert.Equal(t, Ok, d.Observe(Sample{EAR: 0.40, MAR: 1.0}))
	eye, _ := d.Counters()
	assert.Equal(t, 0, eye)

	d.Observe(Sample{EAR: 0.10, MAR: 1.0})
	eye, _ = d.Counters()
	assert.Equal(t, 1, eye)
}

func TestThresholdBoundaries(t *testing.T) {
	d := newEvaluator(t)

	// EAR equal to the threshold is not closed, MAR equal to the threshold is not a yawn.
	for i := 0; i < 10; i++ {
		assert.Equal(t, Ok, d.Observe(Sample{EAR: DefaultEARThreshold, MAR: DefaultMARThreshold}))
	}
	eye, yawn := d.Counters()
	assert.Zero(t, eye)
	assert.Zero(t, yawn)
}

func TestYawnDebounce(t *testing.T) {
	d := newEvaluator(t)

	for i := 1; i <= DefaultFrameLimit; i++ {
		assert.Equal(t, Ok, d.Observe(Sample{EAR: 0.40, MAR: 2.5}), "frame %d", i)
	}
	assert.Equal(t, DrowsyYawn, d.Observe(Sample{EAR: 0.40, MAR: 2.5}))

	assert.Equal(t, Ok, d.Observe(Sample{EAR: 0.40, MAR: 0.5}))
}

func TestEyesTakePrecedenceOverYawn(t *testing.T) {
	d := newEvaluator(t)

	var v Verdict
	for i := 0; i < DefaultFrameLimit+3; i++ {
		v = d.Observe(Sample{EAR: 0.10, MAR: 2.5})
	}

	eye, yawn := d.Counters()
	require.Greater(t, eye, DefaultFrameLimit)
	require.Greater(t, yawn, DefaultFrameLimit)
	assert.Equal(t, DrowsyEyes, v)
}

func TestEvaluateNoFaceKeepsCounters(t *testing.T) {
	d := newEvaluator(t)
	closed := syntheticFace(0.10, 1.0)

	for i := 0; i < 4; i++ {
		v, err := d.Evaluate(closed)
		require.NoError(t, err)
		require.Equal(t, Ok, v)
	}

	v, err := d.Evaluate(nil)
	require.NoError(t, err)
	assert.Equal(t, NoFace, v)
	eye, _ := d.Counters()
	assert.Equal(t, 4, eye)

	for i := 0; i < 2; i++ {
		v, err = d.Evaluate(closed)
		require.NoError(t, err)
		assert.Equal(t, Ok, v)
	}

	v, err = d.Evaluate(closed)
	require.NoError(t, err)
	assert.Equal(t, DrowsyEyes, v)
	eye, _ = d.Counters()
	assert.Equal(t, 7, eye)
}

func TestEvaluateMalformedKeepsCounters(t *testing.T) {
	d := newEvaluator(t)
	closed := syntheticFace(0.10, 1.0)

	for i := 0; i < 3; i++ {
		_, err := d.Evaluate(closed)
		require.NoError(t, err)
	}

	_, err := d.Evaluate(closed[:100])
	assert.ErrorIs(t, err, ErrMalformedLandmarks)

	bad := syntheticFace(0.10, 1.0)
	bad[42] = NewPoint(math.NaN(), 0.5)
	_, err = d.Evaluate(bad)
	assert.ErrorIs(t, err, ErrMalformedLandmarks)

	eye, _ := d.Counters()
	assert.Equal(t, 3, eye)
}

func TestEvaluateUsesSampledRatios(t *testing.T) {
	d := newEvaluator(t)

	_, err := d.Evaluate(syntheticFace(0.30, 2.0))
	require.NoError(t, err)

	s, ok := d.LastSample()
	require.True(t, ok)
	assert.InEpsilon(t, 0.30, s.EAR, 1e-3)
	assert.InEpsilon(t, 2.0, s.MAR, 1e-3)
}
