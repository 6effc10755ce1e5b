package reveal

// DefaultRootMargin extends the relevant zone 600 pixels past the bottom of
// the viewport so scroll effects are armed before their node scrolls in.
var DefaultRootMargin = Margin{Bottom: 600}

type visibilityListener struct {
	id uint32
	fn func(VisibilityState)
}

// VisibilityTracker observes one node against the scene viewport expanded by
// the scene's root margin. Any overlap, even a shared edge, counts as
// visible. Observations happen once per frame in Scene.Update; listeners are
// notified only when the state changes.
//
// A scene without a viewport has nothing to observe against: its trackers
// report VisibilityVisible for as long as they are connected.
type VisibilityTracker struct {
	node      *Node
	scene     *Scene
	state     VisibilityState
	listeners []visibilityListener
	nextID    uint32
	connected bool
}

// CallbackHandle allows removing a registered visibility listener.
type CallbackHandle struct {
	id      uint32
	tracker *VisibilityTracker
}

// Remove unregisters the listener. Safe to call more than once.
func (h CallbackHandle) Remove() {
	if h.tracker == nil {
		return
	}
	l := h.tracker.listeners
	for i := range l {
		if l[i].id == h.id {
			copy(l[i:], l[i+1:])
			l[len(l)-1] = visibilityListener{}
			h.tracker.listeners = l[:len(l)-1]
			return
		}
	}
}

// Observe starts tracking node. The first observation is made on the next
// frame; until then the state is VisibilityUnobserved (or VisibilityVisible
// when the scene has no viewport). Panics if node is nil.
func (s *Scene) Observe(node *Node) *VisibilityTracker {
	if node == nil {
		panic("reveal: cannot observe nil node")
	}
	t := &VisibilityTracker{node: node, scene: s, connected: true}
	if s.viewport == nil {
		t.state = VisibilityVisible
	}
	s.trackers = append(s.trackers, t)
	return t
}

// Node returns the observed node.
func (t *VisibilityTracker) Node() *Node {
	return t.node
}

// State returns the current observation state.
func (t *VisibilityTracker) State() VisibilityState {
	return t.state
}

// Visible reports whether the node is within the expanded viewport.
func (t *VisibilityTracker) Visible() bool {
	return t.state == VisibilityVisible
}

// Connected reports whether the tracker is still observing.
func (t *VisibilityTracker) Connected() bool {
	return t.connected
}

// OnChange registers fn to be called with the new state on every transition.
func (t *VisibilityTracker) OnChange(fn func(VisibilityState)) CallbackHandle {
	t.nextID++
	t.listeners = append(t.listeners, visibilityListener{id: t.nextID, fn: fn})
	return CallbackHandle{id: t.nextID, tracker: t}
}

// Disconnect stops observation and drops all listeners. The state returns
// to VisibilityUnobserved without notifying listeners. Safe to call more
// than once.
func (t *VisibilityTracker) Disconnect() {
	if !t.connected {
		return
	}
	t.connected = false
	t.state = VisibilityUnobserved
	clear(t.listeners)
	t.listeners = nil
	t.scene.removeTracker(t)
}

// check observes the node once against the scene viewport.
func (t *VisibilityTracker) check() {
	s := t.scene
	if s.viewport == nil {
		t.setState(VisibilityVisible)
		return
	}
	n := t.node
	if n.disposed || !n.isUnder(s.root) {
		t.setState(VisibilityHidden)
		return
	}
	zone := s.viewport.VisibleBounds().Expand(s.rootMargin)
	if n.LayoutBounds().Intersects(zone) {
		t.setState(VisibilityVisible)
	} else {
		t.setState(VisibilityHidden)
	}
}

func (t *VisibilityTracker) setState(st VisibilityState) {
	if st == t.state {
		return
	}
	prev := t.state
	t.state = st
	t.scene.visibilityChanged(t.node, prev, st)

	if len(t.listeners) == 0 {
		return
	}
	buf := make([]visibilityListener, len(t.listeners))
	copy(buf, t.listeners)
	for _, l := range buf {
		if !t.connected {
			return
		}
		l.fn(st)
	}
}

// observe runs one observation pass over every connected tracker.
func (s *Scene) observe() {
	if len(s.trackers) == 0 {
		return
	}
	buf := append(s.trackerBuf[:0], s.trackers...)
	for _, t := range buf {
		if t.connected {
			t.check()
		}
	}
	clear(buf)
	s.trackerBuf = buf[:0]
}

func (s *Scene) removeTracker(t *VisibilityTracker) {
	for i, c := range s.trackers {
		if c == t {
			copy(s.trackers[i:], s.trackers[i+1:])
			s.trackers[len(s.trackers)-1] = nil
			s.trackers = s.trackers[:len(s.trackers)-1]
			return
		}
	}
}
