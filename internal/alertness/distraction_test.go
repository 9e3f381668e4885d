package alertness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTiltAngle(t *testing.T) {
	cases := []struct {
		name        string
		left, right Point
		want        float64
	}{
		{"level", NewPoint(0.4, 0.3), NewPoint(0.6, 0.3), 0},
		{"down right", NewPoint(0, 0), NewPoint(1, 1), 45},
		{"up right", NewPoint(0, 1), NewPoint(1, 0), -45},
		{"reversed", NewPoint(0.6, 0.3), NewPoint(0.4, 0.3), 180},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, TiltAngle(tc.left, tc.right), eps)
		})
	}
}

func TestIsDistracted(t *testing.T) {
	pose := func(deg float64) (Point, Point) {
		p := syntheticPose(deg)
		topo := DefaultTopology()
		return p[topo.PoseLeftEye], p[topo.PoseRightEye]
	}

	cases := []struct {
		degrees float64
		want    bool
	}{
		{0, false},
		{10, false},
		{14.9, false},
		{15.5, true},
		{20, true},
		{-20, true},
		{-10, false},
	}

	for _, tc := range cases {
		l, r := pose(tc.degrees)
		assert.Equal(t, tc.want, IsDistracted(l, r, DefaultHeadTiltDegrees), "tilt %v", tc.degrees)
	}
}
