package seat

// DefaultResizeCeilingHz bounds the resize rate when an output does not
// report its refresh rate.
const DefaultResizeCeilingHz = 250

// rateLimiter admits at most one event per output refresh interval,
// comparing monotonic event timestamps.
type rateLimiter struct {
	last  uint32
	armed bool
}

// allow reports whether an event at now (ms) may be applied on an output
// refreshing at refreshMHz millihertz, falling back to ceilingHz.
func (r *rateLimiter) allow(now uint32, refreshMHz, ceilingHz int) bool {
	if ceilingHz <= 0 {
		ceilingHz = DefaultResizeCeilingHz
	}
	interval := 1000 / float64(ceilingHz)
	if refreshMHz > 0 {
		interval = 1e6 / float64(refreshMHz)
	}
	if r.armed && float64(now-r.last) < interval {
		return false
	}
	r.last = now
	r.armed = true
	return true
}

func (r *rateLimiter) reset() {
	r.armed = false
	r.last = 0
}
