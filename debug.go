package reveal

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugOut receives debug output. Tests swap it for a buffer.
var debugOut io.Writer = os.Stderr

// frameStats holds per-frame scheduler and observation metrics.
// Only populated when Scene.debug is true.
type frameStats struct {
	frame    uint64
	scrolled bool
	pending  int // requests queued before the flush
	ran      int // callbacks run by the flush
	deferred int // requests left for the next frame
	trackers int
	effects  int
	elapsed  time.Duration
}

// debugf prints a single prefixed line to debugOut.
func (s *Scene) debugf(format string, args ...any) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[reveal] "+format+"\n", args...)
}

// warnf prints a prefixed warning regardless of debug mode.
func (s *Scene) warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(debugOut, "[reveal] warning: "+format+"\n", args...)
}

// debugFrame prints scheduler stats for frames that did any work. Idle
// frames are skipped to keep the log readable at 60 TPS.
func (s *Scene) debugFrame(stats frameStats) {
	if !s.debug {
		return
	}
	if !stats.scrolled && stats.ran == 0 && stats.deferred == 0 {
		return
	}
	s.debugf("frame %d | scrolled: %t | pending: %d | ran: %d | deferred: %d | %v",
		stats.frame, stats.scrolled, stats.pending, stats.ran, stats.deferred, stats.elapsed)
	s.debugf("trackers: %d | effects: %d | listeners: scroll=%d pointer=%d",
		stats.trackers, stats.effects, s.subs.Count(SourceScroll), s.subs.Count(SourcePointer))
}

// LastFrameStats returns a one-line summary of the last frame's scheduler
// activity. Only populated in debug mode.
func (s *Scene) LastFrameStats() string {
	st := s.stats
	return fmt.Sprintf("frame %d: pending %d, ran %d, deferred %d, trackers %d, effects %d",
		st.frame, st.pending, st.ran, st.deferred, st.trackers, st.effects)
}
