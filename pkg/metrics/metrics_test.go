package metrics

import (
	"DriverGuard/internal/alertness"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot(t *testing.T) {
	m := New()
	m.RecordVerdict(alertness.Ok, 2*time.Millisecond)
	m.RecordVerdict(alertness.DrowsyEyes, 4*time.Millisecond)
	m.IncrementErrors()
	m.IncrementIgnored()
	m.SetActiveSubjects(3)

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.TotalFrames)
	assert.Equal(t, int64(1), s.TotalErrors)
	assert.Equal(t, int64(1), s.IgnoredFrames)
	assert.Equal(t, 3, s.ActiveSubjects)
	assert.InDelta(t, 3.0, s.AvgLatencyMs, 1e-9)
	assert.Equal(t, int64(1), s.Verdicts["DROWSY_EYES"])
	assert.Equal(t, int64(0), s.Verdicts["NO_FACE"])
}

func TestConcurrentRecording(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordVerdict(alertness.Distracted, time.Millisecond)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(800), m.VerdictCount(alertness.Distracted))
	assert.Equal(t, float64(0), New().GetAvgLatency())
}
