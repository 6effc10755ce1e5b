package reveal

import "time"

// FrameKey identifies the logical source of a frame request: one effect kind
// on one node, driven by one input source. At most one request per key is
// pending at any time.
type FrameKey struct {
	NodeID uint32
	Kind   EffectKind
	Source Source
}

// FrameRequest is a token for one pending callback. The zero value refers
// to nothing and is safe to cancel.
type FrameRequest struct {
	key FrameKey
	seq uint64
}

type frameEntry struct {
	key       FrameKey
	seq       uint64
	fn        func()
	debounced bool
	deadline  float64 // seconds on the scheduler clock; debounced entries only
	canceled  bool
}

// FrameScheduler coalesces bursts of input events into bounded per-frame
// work. Callbacks run at the frame boundary (Flush). Debounced callbacks use
// the scheduler's own clock, which only advances with frame deltas, so
// timing is deterministic and no goroutines are involved.
type FrameScheduler struct {
	now     float64
	seq     uint64
	pending map[FrameKey]*frameEntry
	order   []*frameEntry
	running []*frameEntry
}

// NewFrameScheduler creates an empty scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{pending: make(map[FrameKey]*frameEntry)}
}

// Schedule registers fn to run at the next frame boundary. A pending request
// with the same key is superseded: only the newest callback runs.
func (f *FrameScheduler) Schedule(key FrameKey, fn func()) FrameRequest {
	e := f.entry(key)
	e.fn = fn
	e.debounced = false
	e.deadline = 0
	return FrameRequest{key: key, seq: e.seq}
}

// Debounce registers fn to run once delay has elapsed with no further
// trigger for the same key (trailing edge). Each call pushes the deadline
// back.
func (f *FrameScheduler) Debounce(key FrameKey, delay time.Duration, fn func()) FrameRequest {
	e := f.entry(key)
	e.fn = fn
	e.debounced = true
	e.deadline = f.now + delay.Seconds()
	return FrameRequest{key: key, seq: e.seq}
}

// entry returns the pending entry for key, creating it if needed, and stamps
// it with a fresh sequence number.
func (f *FrameScheduler) entry(key FrameKey) *frameEntry {
	f.seq++
	e, ok := f.pending[key]
	if !ok {
		e = &frameEntry{key: key}
		f.pending[key] = e
		f.order = append(f.order, e)
	}
	e.seq = f.seq
	return e
}

// Cancel drops the request if it is still pending. Returns true if a
// callback was cancelled. A request superseded by a newer one for the same
// key is no longer cancellable through the old token.
func (f *FrameScheduler) Cancel(req FrameRequest) bool {
	if req.seq == 0 {
		return false
	}
	if e, ok := f.pending[req.key]; ok && e.seq == req.seq {
		e.canceled = true
		delete(f.pending, req.key)
		return true
	}
	for _, e := range f.running {
		if e.seq == req.seq && !e.canceled {
			e.canceled = true
			return true
		}
	}
	return false
}

// Pending returns the number of callbacks waiting to run.
func (f *FrameScheduler) Pending() int {
	return len(f.pending)
}

// Now returns the scheduler clock: the sum of all flushed frame deltas.
func (f *FrameScheduler) Now() time.Duration {
	return time.Duration(f.now * float64(time.Second))
}

// Flush advances the clock by dt seconds and runs every due callback in
// scheduling order. Callbacks scheduled while flushing run on the next
// frame. Returns the number of callbacks run.
func (f *FrameScheduler) Flush(dt float64) int {
	f.now += dt

	running := f.running[:0]
	kept := f.order[:0]
	for _, e := range f.order {
		if e.canceled {
			continue
		}
		if e.debounced && e.deadline > f.now+1e-9 {
			kept = append(kept, e)
			continue
		}
		delete(f.pending, e.key)
		running = append(running, e)
	}
	for i := len(kept); i < len(f.order); i++ {
		f.order[i] = nil
	}
	f.order = kept
	f.running = running

	ran := 0
	for _, e := range running {
		if e.canceled {
			continue
		}
		e.fn()
		ran++
	}
	clear(f.running)
	f.running = f.running[:0]
	return ran
}
