package metrics

import (
	"DriverGuard/internal/alertness"
	"sync/atomic"
	"time"
)

var verdicts = []alertness.Verdict{
	alertness.Ok,
	alertness.Distracted,
	alertness.DrowsyEyes,
	alertness.DrowsyYawn,
	alertness.NoFace,
}

type Metrics struct {
	totalFrames    atomic.Int64
	totalErrors    atomic.Int64
	ignoredFrames  atomic.Int64
	droppedEvents  atomic.Int64
	totalLatency   atomic.Int64
	activeSubjects atomic.Int32
	lastFrameTime  atomic.Int64
	wsConnections  atomic.Int64

	verdictCounts [5]atomic.Int64
}

type Snapshot struct {
	TotalFrames      int64            `json:"total_frames"`
	TotalErrors      int64            `json:"total_errors"`
	IgnoredFrames    int64            `json:"ignored_frames"`
	DroppedEvents    int64            `json:"dropped_events"`
	AvgLatencyMs     float64          `json:"avg_latency_ms"`
	ActiveSubjects   int              `json:"active_subjects"`
	WebSocketClients int64            `json:"websocket_clients"`
	LastFrameTime    int64            `json:"last_frame_time"`
	Verdicts         map[string]int64 `json:"verdicts"`
}

func New() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordVerdict(v alertness.Verdict, latency time.Duration) {
	m.totalFrames.Add(1)
	m.totalLatency.Add(latency.Microseconds())
	m.lastFrameTime.Store(time.Now().Unix())

	if int(v) >= 0 && int(v) < len(m.verdictCounts) {
		m.verdictCounts[v].Add(1)
	}
}

func (m *Metrics) IncrementErrors() {
	m.totalErrors.Add(1)
}

func (m *Metrics) IncrementIgnored() {
	m.ignoredFrames.Add(1)
}

func (m *Metrics) IncrementDroppedEvents() {
	m.droppedEvents.Add(1)
}

func (m *Metrics) SetActiveSubjects(count int) {
	m.activeSubjects.Store(int32(count))
}

func (m *Metrics) IncrementWebSocketConnections() {
	m.wsConnections.Add(1)
}

func (m *Metrics) DecrementWebSocketConnections() {
	m.wsConnections.Add(-1)
}

func (m *Metrics) GetAvgLatency() float64 {
	frames := m.totalFrames.Load()
	if frames == 0 {
		return 0
	}
	return float64(m.totalLatency.Load()) / float64(frames) / 1000
}

func (m *Metrics) VerdictCount(v alertness.Verdict) int64 {
	if int(v) < 0 || int(v) >= len(m.verdictCounts) {
		return 0
	}
	return m.verdictCounts[v].Load()
}

func (m *Metrics) Snapshot() Snapshot {
	counts := make(map[string]int64, len(verdicts))
	for _, v := range verdicts {
		counts[v.Code()] = m.verdictCounts[v].Load()
	}

	return Snapshot{
		TotalFrames:      m.totalFrames.Load(),
		TotalErrors:      m.totalErrors.Load(),
		IgnoredFrames:    m.ignoredFrames.Load(),
		DroppedEvents:    m.droppedEvents.Load(),
		AvgLatencyMs:     m.GetAvgLatency(),
		ActiveSubjects:   int(m.activeSubjects.Load()),
		WebSocketClients: m.wsConnections.Load(),
		LastFrameTime:    m.lastFrameTime.Load(),
		Verdicts:         counts,
	}
}
