package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks event loop timing. It is safe for concurrent use.
type Metrics struct {
	// Frame timing
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64

	// Device event handling
	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64
	unhandled    atomic.Uint64

	reloads      atomic.Uint64
	reloadFailed atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.frameMinNs.Store(1<<63 - 1)
	return m
}

// RecordFrame records the time taken to build and draw one frame.
func (m *Metrics) RecordFrame(d time.Duration) {
	ns := d.Nanoseconds()
	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordEvent records the time the seat took to route one device event.
func (m *Metrics) RecordEvent(d time.Duration) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(d.Nanoseconds())
}

// RecordUnhandled counts a device event no component accepted.
func (m *Metrics) RecordUnhandled() {
	m.unhandled.Add(1)
}

// RecordReload counts a configuration reload.
func (m *Metrics) RecordReload(ok bool) {
	m.reloads.Add(1)
	if !ok {
		m.reloadFailed.Add(1)
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frames := m.frameCount.Load()
	events := m.eventCount.Load()

	var avgFrame, avgEvent time.Duration
	if frames > 0 {
		avgFrame = time.Duration(m.frameTotalNs.Load() / int64(frames))
	}
	if events > 0 {
		avgEvent = time.Duration(m.eventTotalNs.Load() / int64(events))
	}
	minFrame := m.frameMinNs.Load()
	if minFrame == 1<<63-1 {
		minFrame = 0
	}

	return MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		Frames:       frames,
		AvgFrame:     avgFrame,
		MinFrame:     time.Duration(minFrame),
		MaxFrame:     time.Duration(m.frameMaxNs.Load()),
		LastFrame:    time.Duration(m.lastFrameNs.Load()),
		Events:       events,
		AvgEvent:     avgEvent,
		Unhandled:    m.unhandled.Load(),
		Reloads:      m.reloads.Load(),
		ReloadFailed: m.reloadFailed.Load(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.frameCount.Store(0)
	m.frameTotalNs.Store(0)
	m.frameMinNs.Store(1<<63 - 1)
	m.frameMaxNs.Store(0)
	m.lastFrameNs.Store(0)
	m.eventCount.Store(0)
	m.eventTotalNs.Store(0)
	m.unhandled.Store(0)
	m.reloads.Store(0)
	m.reloadFailed.Store(0)
	m.startTime = time.Now()
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime time.Duration

	Frames    uint64
	AvgFrame  time.Duration
	MinFrame  time.Duration
	MaxFrame  time.Duration
	LastFrame time.Duration

	Events    uint64
	AvgEvent  time.Duration
	Unhandled uint64

	Reloads      uint64
	ReloadFailed uint64
}

// Timer measures one operation.
type Timer struct {
	start time.Time
}

// StartTimer starts a timer.
func StartTimer() Timer {
	return Timer{start: time.Now()}
}

// Elapsed returns the time since the timer started.
func (t Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
