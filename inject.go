package reveal

type syntheticKind uint8

const (
	syntheticScrollBy syntheticKind = iota
	syntheticScrollTo
	syntheticPointer
)

// syntheticEvent represents a single injected input event. Pointer
// coordinates are in viewport space, identical to real cursor input.
type syntheticEvent struct {
	kind syntheticKind
	x, y float64
}

// InjectScroll queues a relative scroll. Each injected event is consumed on
// its own frame, replacing real input for that frame.
func (s *Scene) InjectScroll(dx, dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticScrollBy, x: dx, y: dy})
}

// InjectScrollTo queues a jump to the given scroll offsets.
func (s *Scene) InjectScrollTo(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticScrollTo, x: x, y: y})
}

// InjectPointer queues a pointer move to (x, y).
func (s *Scene) InjectPointer(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticPointer, x: x, y: y})
}

// InjectPointerPath queues a pointer move from (fromX, fromY) to (toX, toY)
// over the given number of frames, linearly interpolated. Minimum frames is 2.
func (s *Scene) InjectPointerPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectPointer(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// processInjectedInput pops one event from the inject queue and applies it.
// Returns true if an event was consumed (real input should be skipped).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticScrollBy:
		if s.viewport != nil {
			s.viewport.ScrollBy(evt.x, evt.y)
		}
	case syntheticScrollTo:
		if s.viewport != nil {
			s.viewport.SetScroll(evt.x, evt.y)
		}
	case syntheticPointer:
		s.setPointer(evt.x, evt.y)
	}
	return true
}
