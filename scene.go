package reveal

import (
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, visibility and listener lifecycle events are
// forwarded to the ECS.
type EntityStore interface {
	EmitVisibility(event VisibilityEvent)
	EmitEffect(event EffectEvent)
}

// VisibilityEvent reports a tracker state change.
type VisibilityEvent struct {
	NodeID uint32
	Name   string
	From   VisibilityState
	To     VisibilityState
}

// EffectEvent reports an effect attaching to or detaching from its source.
type EffectEvent struct {
	NodeID   uint32
	Name     string
	Kind     EffectKind
	Source   Source
	Attached bool
}

// Scene is the top-level object that owns the node tree, the viewport,
// visibility trackers, source subscriptions, and the frame scheduler.
type Scene struct {
	root       *Node
	viewport   *Viewport
	rootMargin Margin
	store      EntityStore
	debug      bool

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color

	// WheelStep is the scroll distance in pixels per wheel notch.
	WheelStep float64

	// ScreenshotDir is where Screenshot writes PNGs. Defaults to "screenshots".
	ScreenshotDir string

	scheduler  *FrameScheduler
	subs       SubscriptionManager
	trackers   []*VisibilityTracker
	trackerBuf []*VisibilityTracker
	effects    []*Effect
	rng        *rand.Rand

	// Window size used for geometry when there is no viewport.
	windowW, windowH float64

	pointer     pointerState
	injectQueue []syntheticEvent
	testRunner  *TestRunner

	commands    []drawCommand
	screenshots []screenshotRequest

	frame uint64
	stats frameStats
}

// NewScene creates a new scene with a pre-created root container and no
// viewport.
func NewScene() *Scene {
	s := &Scene{
		root:          NewContainer("root"),
		rootMargin:    DefaultRootMargin,
		WheelStep:     defaultWheelStep,
		ScreenshotDir: defaultScreenshotDir,
		scheduler:     NewFrameScheduler(),
		rng:           rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
	s.subs.onDispatcher = s.dispatcherChanged
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetViewport sets the scroll viewport. A nil viewport disables visibility
// observation: every tracker reports visible.
func (s *Scene) SetViewport(v *Viewport) {
	s.viewport = v
}

// Viewport returns the scroll viewport, or nil.
func (s *Scene) Viewport() *Viewport {
	return s.viewport
}

// SetRootMargin replaces the margin that expands the viewport for
// visibility observation. Defaults to DefaultRootMargin.
func (s *Scene) SetRootMargin(m Margin) {
	s.rootMargin = m
}

// RootMargin returns the visibility margin.
func (s *Scene) RootMargin() Margin {
	return s.rootMargin
}

// SetWindowSize sets the window size used for effect geometry when the
// scene has no viewport. Draw updates it from the screen size.
func (s *Scene) SetWindowSize(w, h float64) {
	s.windowW, s.windowH = w, h
}

// Scheduler returns the scene's frame scheduler.
func (s *Scene) Scheduler() *FrameScheduler {
	return s.scheduler
}

// Subscriptions returns the scene's source subscription manager.
func (s *Scene) Subscriptions() *SubscriptionManager {
	return &s.subs
}

// Effects returns the mounted effects. The returned slice MUST NOT be mutated.
func (s *Scene) Effects() []*Effect {
	return s.effects
}

// SetRand replaces the random source used by jitter effects.
func (s *Scene) SetRand(r *rand.Rand) {
	s.rng = r
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, visibility
// transitions, dispatcher changes, and per-frame scheduler stats are logged
// to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Update processes input and advances one frame at the ebiten tick rate.
func (s *Scene) Update() {
	dt := 1.0 / float64(ebiten.TPS())

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if !s.processInjectedInput() {
		s.pollInput()
	}
	s.update(dt)
}

// update runs one frame: scroll, transforms, visibility, event dispatch,
// the frame boundary, then style transitions.
func (s *Scene) update(dt float64) {
	s.frame++
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	scrolled := s.viewport != nil && s.viewport.update(float32(dt))

	updateWorldTransform(s.root, identityTransform, 1.0, false)

	s.observe()

	if scrolled {
		s.subs.dispatch(Event{Source: SourceScroll, ScrollX: s.viewport.ScrollX, ScrollY: s.viewport.ScrollY})
	}
	if s.pointer.moved {
		s.pointer.moved = false
		s.subs.dispatch(Event{Source: SourcePointer, PointerX: s.pointer.x, PointerY: s.pointer.y})
	}

	pending := s.scheduler.Pending()
	ran := s.scheduler.Flush(dt)

	updateTweens(s.root, float32(dt))

	if s.debug {
		s.stats = frameStats{
			frame:    s.frame,
			scrolled: scrolled,
			pending:  pending,
			ran:      ran,
			deferred: s.scheduler.Pending(),
			trackers: len(s.trackers),
			effects:  len(s.effects),
			elapsed:  time.Since(t0),
		}
		s.debugFrame(s.stats)
	}
}

// hostReady reports whether n can be measured: attached to this scene,
// not disposed, and laid out with a positive width and height.
func (s *Scene) hostReady(n *Node) bool {
	if n.disposed || !n.isUnder(s.root) {
		return false
	}
	return n.Width > 0 && n.Height > 0
}

// geometry reads the node's current layout box and the viewport.
func (s *Scene) geometry(n *Node) Geometry {
	b := n.LayoutBounds()
	g := Geometry{
		Top:          b.Y,
		Left:         b.X,
		Width:        b.Width,
		Height:       b.Height,
		WindowWidth:  s.windowW,
		WindowHeight: s.windowH,
	}
	if v := s.viewport; v != nil {
		g.ScrollX, g.ScrollY = v.ScrollX, v.ScrollY
		g.Top -= v.ScrollY
		g.Left -= v.ScrollX
		g.WindowWidth, g.WindowHeight = v.Width, v.Height
	}
	return g
}

// input snapshots the pointer for handlers.
func (s *Scene) input() Input {
	return Input{
		PointerX:   s.pointer.x,
		PointerY:   s.pointer.y,
		HasPointer: s.pointer.has,
		Rand:       s.rng,
	}
}

func (s *Scene) visibilityChanged(n *Node, from, to VisibilityState) {
	if s.debug {
		s.debugf("visibility %q (%d): %s -> %s", n.Name, n.ID, from, to)
	}
	if s.store != nil {
		s.store.EmitVisibility(VisibilityEvent{NodeID: n.ID, Name: n.Name, From: from, To: to})
	}
}

func (s *Scene) effectAttached(e *Effect, attached bool) {
	if s.debug {
		verb := "detached from"
		if attached {
			verb = "attached to"
		}
		s.debugf("%s on %q %s %s", e.kind, e.node.Name, verb, e.spec.source)
	}
	if s.store != nil {
		s.store.EmitEffect(EffectEvent{
			NodeID:   e.node.ID,
			Name:     e.node.Name,
			Kind:     e.kind,
			Source:   e.spec.source,
			Attached: attached,
		})
	}
}

func (s *Scene) dispatcherChanged(src Source, attached bool) {
	if !s.debug {
		return
	}
	if attached {
		s.debugf("%s dispatcher attached", src)
	} else {
		s.debugf("%s dispatcher detached", src)
	}
}
