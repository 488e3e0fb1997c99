package dispatcher

import (
	"cmp"
	"slices"
	"time"

	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/dispatcher/handler"
)

// KindStats counts the dispatches of one action kind by outcome.
type KindStats struct {
	Kind     action.Kind
	Runs     uint64
	Statuses [handler.StatusCancelled + 1]uint64
	Panics   uint64
	Total    time.Duration
	Slowest  time.Duration
}

// Average is the mean handler time of the kind.
func (ks KindStats) Average() time.Duration {
	if ks.Runs == 0 {
		return 0
	}
	return ks.Total / time.Duration(ks.Runs)
}

// Metrics collects dispatch statistics per action kind. The dispatcher
// only touches it from the event loop, so it is not locked.
type Metrics struct {
	kinds map[action.Kind]*KindStats
}

// MetricsSnapshot sums all kinds.
type MetricsSnapshot struct {
	Dispatches uint64
	Errors     uint64
	NoOps      uint64
	Pending    uint64
	Panics     uint64
	Average    time.Duration
}

func NewMetrics() *Metrics {
	return &Metrics{kinds: make(map[action.Kind]*KindStats)}
}

func (m *Metrics) stats(k action.Kind) *KindStats {
	ks := m.kinds[k]
	if ks == nil {
		ks = &KindStats{Kind: k}
		m.kinds[k] = ks
	}
	return ks
}

// RecordDispatch counts one finished action.
func (m *Metrics) RecordDispatch(k action.Kind, d time.Duration, status handler.ResultStatus) {
	ks := m.stats(k)
	ks.Runs++
	if int(status) < len(ks.Statuses) {
		ks.Statuses[status]++
	}
	ks.Total += d
	ks.Slowest = max(ks.Slowest, d)
}

// RecordPanic counts a recovered handler panic. The dispatch itself is
// recorded as an error afterwards.
func (m *Metrics) RecordPanic(k action.Kind) {
	m.stats(k).Panics++
}

// Stats returns a copy of the counters of k.
func (m *Metrics) Stats(k action.Kind) (KindStats, bool) {
	ks, ok := m.kinds[k]
	if !ok {
		return KindStats{Kind: k}, false
	}
	return *ks, true
}

// Busiest returns up to n kinds ordered by dispatch count, ties by name.
func (m *Metrics) Busiest(n int) []KindStats {
	out := make([]KindStats, 0, len(m.kinds))
	for _, ks := range m.kinds {
		out = append(out, *ks)
	}
	slices.SortFunc(out, func(a, b KindStats) int {
		if c := cmp.Compare(b.Runs, a.Runs); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind.String(), b.Kind.String())
	})
	return out[:min(n, len(out))]
}

// Snapshot sums the counters of every kind.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var s MetricsSnapshot
	var total time.Duration
	for _, ks := range m.kinds {
		s.Dispatches += ks.Runs
		s.Errors += ks.Statuses[handler.StatusError]
		s.NoOps += ks.Statuses[handler.StatusNoOp]
		s.Pending += ks.Statuses[handler.StatusPending]
		s.Panics += ks.Panics
		total += ks.Total
	}
	if s.Dispatches > 0 {
		s.Average = total / time.Duration(s.Dispatches)
	}
	return s
}

func (m *Metrics) Reset() {
	clear(m.kinds)
}
