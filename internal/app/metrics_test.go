package app

import (
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	s := NewMetrics().Snapshot()
	if s.Frames != 0 || s.MinFrame != 0 {
		t.Errorf("fresh snapshot = %+v", s)
	}
}

func TestMetricsRecordFrame(t *testing.T) {
	m := NewMetrics()
	m.RecordFrame(10 * time.Millisecond)
	m.RecordFrame(20 * time.Millisecond)
	m.RecordFrame(6 * time.Millisecond)

	s := m.Snapshot()
	if s.Frames != 3 {
		t.Errorf("frames = %d, want 3", s.Frames)
	}
	if s.MinFrame != 6*time.Millisecond || s.MaxFrame != 20*time.Millisecond {
		t.Errorf("min %s max %s", s.MinFrame, s.MaxFrame)
	}
	if s.AvgFrame != 12*time.Millisecond {
		t.Errorf("avg = %s, want 12ms", s.AvgFrame)
	}
	if s.LastFrame != 6*time.Millisecond {
		t.Errorf("last = %s", s.LastFrame)
	}
}

func TestMetricsEventsAndReloads(t *testing.T) {
	m := NewMetrics()
	m.RecordEvent(time.Millisecond)
	m.RecordEvent(3 * time.Millisecond)
	m.RecordUnhandled()
	m.RecordReload(true)
	m.RecordReload(false)

	s := m.Snapshot()
	if s.Events != 2 || s.AvgEvent != 2*time.Millisecond {
		t.Errorf("events = %d avg %s", s.Events, s.AvgEvent)
	}
	if s.Unhandled != 1 || s.Reloads != 2 || s.ReloadFailed != 1 {
		t.Errorf("snapshot = %+v", s)
	}

	m.Reset()
	if s := m.Snapshot(); s.Events != 0 || s.Reloads != 0 || s.MinFrame != 0 {
		t.Errorf("after reset = %+v", s)
	}
}

func TestMetricsConcurrent(t *testing.T) {
	m := NewMetrics()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				m.RecordFrame(time.Duration(j) * time.Microsecond)
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	if s := m.Snapshot(); s.Frames != 800 || s.MaxFrame != 99*time.Microsecond {
		t.Errorf("frames = %d max %s", s.Frames, s.MaxFrame)
	}
}
