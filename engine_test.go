package reveal

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestMountAppliesHiddenInitial(t *testing.T) {
	s := newTestScene(800, 600)
	n := addBox(s, "n", 0, 555, 100, 100)
	e := s.Mount(n, EffectFadeBottomRight, EffectConfig{})

	assertNear(t, "opacity", n.Style.Opacity, 0)
	assertNear(t, "tx", n.Style.TranslateX, 50)
	if e.Attached() {
		t.Error("gated effect attached before the first observation")
	}
	if e.State() != VisibilityUnobserved {
		t.Errorf("state = %s", e.State())
	}
}

func TestScrollEffectRevealsPartially(t *testing.T) {
	s := newTestScene(800, 600)
	// trigger 0.3 on a 100px box: y 555 leaves transition 25 of 50.
	n := addBox(s, "n", 0, 555, 100, 100)
	e := s.Mount(n, EffectFadeBottomRight, EffectConfig{})
	settle(s)

	if !e.Attached() || e.Runs() != 1 {
		t.Fatalf("attached = %v, runs = %d", e.Attached(), e.Runs())
	}
	assertNear(t, "opacity", n.Style.Opacity, 0.5)
	assertNear(t, "tx", n.Style.TranslateX, 25)
	assertNear(t, "ty", n.Style.TranslateY, 25)
	if n.Animating() {
		t.Error("transition still running after settle")
	}
}

func TestGatedEffectAttachesOnScroll(t *testing.T) {
	s := newTestScene(800, 600)
	n := addBox(s, "n", 0, 2000, 100, 100)
	e := s.Mount(n, EffectFade, EffectConfig{})
	runFrames(s, 5)

	if e.Attached() || e.Runs() != 0 {
		t.Fatalf("hidden effect attached = %v, runs = %d", e.Attached(), e.Runs())
	}
	if s.Subscriptions().Attached(SourceScroll) {
		t.Fatal("scroll dispatcher attached with no visible effects")
	}

	s.InjectScrollTo(0, 1500)
	settle(s)
	if !e.Attached() || e.State() != VisibilityVisible {
		t.Fatalf("attached = %v, state = %s", e.Attached(), e.State())
	}
	if !s.Subscriptions().Attached(SourceScroll) {
		t.Error("scroll dispatcher not attached")
	}
	assertNear(t, "opacity", n.Style.Opacity, 1)

	s.InjectScrollTo(0, 0)
	runFrames(s, 2)
	if e.Attached() {
		t.Error("effect still attached after leaving the viewport")
	}
	if s.Subscriptions().Count(SourceScroll) != 0 {
		t.Errorf("scroll listeners = %d, want 0", s.Subscriptions().Count(SourceScroll))
	}
	assertNear(t, "opacity kept", n.Style.Opacity, 1)
}

func TestAtMostOneRunPerFrame(t *testing.T) {
	s := newTestScene(800, 600)
	n := addBox(s, "n", 0, 300, 100, 100)
	e := s.Mount(n, EffectSlideInRight, EffectConfig{})
	runFrames(s, 1)
	if e.Runs() != 1 {
		t.Fatalf("first frame runs = %d, want 1", e.Runs())
	}
	for i := 0; i < 10; i++ {
		s.InjectScroll(0, 1)
		before := e.Runs()
		runFrames(s, 1)
		if d := e.Runs() - before; d != 1 {
			t.Fatalf("frame %d ran %d times", i, d)
		}
	}
	runFrames(s, 5)
	if e.Runs() != 11 {
		t.Errorf("idle frames ran the effect: runs = %d", e.Runs())
	}
}

func TestUngatedEffectAttachesOnMount(t *testing.T) {
	s := newTestScene(800, 600)
	n := addBox(s, "card", 0, 5000, 200, 200)
	e := s.Mount(n, EffectPerspectiveCard, EffectConfig{})
	if !e.Attached() {
		t.Fatal("ungated effect should attach immediately")
	}
	if e.State() != VisibilityVisible {
		t.Errorf("state = %s", e.State())
	}
	if !s.Subscriptions().Attached(SourcePointer) {
		t.Error("pointer dispatcher not attached")
	}
	if len(s.trackers) != 0 {
		t.Error("ungated effect created a tracker")
	}
}

func TestGateOverride(t *testing.T) {
	s := newTestScene(800, 600)
	n := addBox(s, "card", 0, 5000, 200, 200)
	e := s.Mount(n, EffectPerspectiveCard, EffectConfig{GateOnVisibility: Ptr(true)})
	runFrames(s, 2)
	if e.Attached() {
		t.Error("gated card attached while far outside the viewport")
	}
}

func TestPointerEffectFollowsCursor(t *testing.T) {
	s := newTestScene(800, 600)
	n := addBox(s, "card", 100, 100, 200, 200)
	e := s.Mount(n, EffectPerspectiveCard, EffectConfig{})

	s.InjectPointer(250, 150)
	settle(s)
	assertNear(t, "rotateX", n.Style.RotateX, -2.5)
	assertNear(t, "rotateY", n.Style.RotateY, -2.5)
	assertNear(t, "perspective", n.Style.Perspective, 1000)

	s.InjectPointer(700, 500)
	settle(s)
	assertNear(t, "rotateX after leave", n.Style.RotateX, 0)
	if e.Last().Transform.RotateY != 0 {
		t.Errorf("last patch = %v", e.Last())
	}
}

func TestPointerEffectWithScrolledViewport(t *testing.T) {
	s := newTestScene(800, 600)
	n := addBox(s, "card", 100, 1100, 200, 200)
	s.Mount(n, EffectPerspectiveCard, EffectConfig{})
	s.InjectScrollTo(0, 1000)
	// The card now sits at viewport (100, 100); pointer coordinates are
	// viewport-relative.
	s.InjectPointer(250, 150)
	settle(s)
	assertNear(t, "rotateX", n.Style.RotateX, -2.5)
}

func TestTiltScrollThroughScene(t *testing.T) {
	s := newTestScene(800, 600)
	n := addBox(s, "n", 0, 650, 400, 200)
	e := s.Mount(n, EffectTiltScroll, EffectConfig{})
	assertNear(t, "initial opacity", n.Style.Opacity, 0)

	s.InjectScrollTo(0, 150)
	settle(s)
	if !e.Active() {
		t.Fatal("expected active")
	}
	assertNear(t, "rotateX", n.Style.RotateX, 18)
	assertNear(t, "scale", n.Style.Scale, 0.82)
	assertNear(t, "opacity", n.Style.Opacity, 1)

	// Past the threshold the rotation resets, opacity stays.
	s.InjectScrollTo(0, 500)
	settle(s)
	if e.Active() {
		t.Fatal("expected inactive")
	}
	assertNear(t, "rotateX", n.Style.RotateX, 0)
	assertNear(t, "scale", n.Style.Scale, 1)
	assertNear(t, "opacity", n.Style.Opacity, 1)
}

func TestTiltScrollMountedPastThresholdIsRevealed(t *testing.T) {
	s := newTestScene(800, 600)
	// Top 50 is already above distanceTop 200 at every scroll offset.
	n := addBox(s, "hero", 0, 50, 400, 200)
	e := s.Mount(n, EffectTiltScroll, EffectConfig{})
	assertNear(t, "initial opacity", n.Style.Opacity, 0)

	settle(s)
	if e.Active() {
		t.Fatal("expected inactive")
	}
	assertNear(t, "opacity", n.Style.Opacity, 1)
	assertNear(t, "rotateX", n.Style.RotateX, 0)

	s.InjectScrollTo(0, 300)
	settle(s)
	s.InjectScrollTo(0, 0)
	settle(s)
	assertNear(t, "opacity after scrolling back", n.Style.Opacity, 1)
}

func TestZeroHeightNodeIsSkipped(t *testing.T) {
	s := newTestScene(800, 600)
	n := addBox(s, "line", 0, 100, 100, 0)
	e := s.Mount(n, EffectPerspectiveImage, EffectConfig{})
	s.InjectPointer(50, 100)
	settle(s)

	if e.Runs() != 0 {
		t.Errorf("runs = %d, want 0 for a node with no height", e.Runs())
	}
	if math.IsNaN(n.Style.TranslateY) {
		t.Error("NaN translate")
	}
}

func TestJitterDebouncedThroughScene(t *testing.T) {
	s := newTestScene(800, 600)
	s.SetRand(rand.New(rand.NewPCG(7, 11)))
	n := addBox(s, "n", 0, 100, 100, 100)
	e := s.Mount(n, EffectMoveScrollRandom, EffectConfig{})

	runFrames(s, 10)
	if e.Runs() != 1 {
		t.Fatalf("runs = %d after idle, want 1", e.Runs())
	}
	for i := 0; i < 20; i++ {
		s.InjectScroll(0, 1)
		runFrames(s, 1)
	}
	if e.Runs() != 1 {
		t.Fatalf("jitter ran during continuous scrolling: runs = %d", e.Runs())
	}
	runFrames(s, 10)
	if e.Runs() != 2 {
		t.Errorf("runs = %d after scrolling stopped, want 2", e.Runs())
	}
	tr := e.Last().Transform
	if tr.TranslateX < -10 || tr.TranslateX > 10 || tr.TranslateY < -10 || tr.TranslateY > 10 {
		t.Errorf("jitter offset out of range: %v", tr)
	}
}

func TestUnmount(t *testing.T) {
	s := newTestScene(800, 600)
	n := addBox(s, "n", 0, 100, 100, 100)
	e := s.Mount(n, EffectFade, EffectConfig{})
	runFrames(s, 1)

	e.Unmount()
	e.Unmount()
	if e.Mounted() || e.Attached() {
		t.Error("effect still mounted or attached")
	}
	if e.State() != VisibilityUnobserved {
		t.Errorf("state = %s", e.State())
	}
	if len(s.Effects()) != 0 || len(n.Effects()) != 0 || len(s.trackers) != 0 {
		t.Error("effect not removed from scene and node")
	}
	if s.Subscriptions().Attached(SourceScroll) {
		t.Error("dispatcher not detached")
	}
}

func TestUnmountCancelsPendingWork(t *testing.T) {
	s := newTestScene(800, 600)
	n := addBox(s, "card", 0, 0, 100, 100)
	e := s.Mount(n, EffectPerspectiveCard, EffectConfig{})
	if s.Scheduler().Pending() != 1 {
		t.Fatalf("pending = %d, want the attach request", s.Scheduler().Pending())
	}
	e.Unmount()
	runFrames(s, 2)
	if e.Runs() != 0 {
		t.Error("unmounted effect ran")
	}
}

func TestDisposeUnmountsEffects(t *testing.T) {
	s := newTestScene(800, 600)
	parent := addBox(s, "parent", 0, 0, 300, 300)
	child := NewBox("child", 50, 50, ColorWhite)
	parent.AddChild(child)
	a := s.Mount(parent, EffectFade, EffectConfig{})
	b := s.Mount(child, EffectMoveMouse, EffectConfig{})
	c := s.Mount(child, EffectTiltMouse, EffectConfig{})
	runFrames(s, 1)

	parent.Dispose()
	for _, e := range []*Effect{a, b, c} {
		if e.Mounted() {
			t.Errorf("%s still mounted after Dispose", e.Kind())
		}
	}
	if s.Subscriptions().Count(SourceScroll)+s.Subscriptions().Count(SourcePointer) != 0 {
		t.Error("listeners leaked after Dispose")
	}
	runFrames(s, 1)
}

func TestMultipleEffectsOnOneNode(t *testing.T) {
	s := newTestScene(800, 600)
	n := addBox(s, "n", 100, 100, 200, 200)
	fade := s.Mount(n, EffectFade, EffectConfig{})
	move := s.Mount(n, EffectMoveMouse, EffectConfig{})
	s.InjectPointer(800, 300)
	settle(s)
	if fade.Runs() == 0 || move.Runs() == 0 {
		t.Fatalf("runs fade=%d move=%d", fade.Runs(), move.Runs())
	}
	assertNear(t, "opacity", n.Style.Opacity, 1)
	assertNear(t, "tx", n.Style.TranslateX, 10)
	if len(n.Effects()) != 2 {
		t.Errorf("node effects = %d", len(n.Effects()))
	}
}

func TestMissingHostSkipsComputation(t *testing.T) {
	s := NewScene()
	detached := NewBox("detached", 100, 100, ColorWhite)
	e := s.Mount(detached, EffectPerspectiveCard, EffectConfig{})
	runFrames(s, 3)
	if e.Runs() != 0 {
		t.Errorf("detached host computed %d times", e.Runs())
	}

	empty := NewContainer("empty")
	s.Root().AddChild(empty)
	e2 := s.Mount(empty, EffectFade, EffectConfig{})
	runFrames(s, 3)
	if e2.Runs() != 0 {
		t.Errorf("unsized host computed %d times", e2.Runs())
	}

	// Without a viewport there is no scroll source to retrigger it.
	empty.SetSize(100, 100)
	s.InjectScroll(0, 40)
	runFrames(s, 1)
	if e2.Runs() != 0 {
		t.Errorf("scroll without a viewport should not dispatch")
	}
}

func TestWrap(t *testing.T) {
	s := newTestScene(800, 600)
	wrapper := addBox(s, "wrapper", 0, 0, 0, 0)
	child := NewBox("child", 100, 100, ColorWhite)
	wrapper.AddChild(child)
	e := s.Wrap(wrapper, EffectFade, EffectConfig{})
	if e.Node() != child {
		t.Error("Wrap should mount on the single child")
	}

	assertPanics(t, "empty wrapper", func() { s.Wrap(NewContainer("w"), EffectFade, EffectConfig{}) })
	two := NewContainer("two")
	two.AddChild(NewBox("a", 1, 1, ColorWhite))
	two.AddChild(NewBox("b", 1, 1, ColorWhite))
	assertPanics(t, "two children", func() { s.Wrap(two, EffectFade, EffectConfig{}) })
}

func TestMountPanics(t *testing.T) {
	s := newTestScene(800, 600)
	assertPanics(t, "nil node", func() { s.Mount(nil, EffectFade, EffectConfig{}) })
	assertPanics(t, "unknown kind", func() { s.Mount(NewBox("b", 1, 1, ColorWhite), EffectKind(99), EffectConfig{}) })
	d := NewBox("d", 1, 1, ColorWhite)
	d.Dispose()
	assertPanics(t, "disposed node", func() { s.Mount(d, EffectFade, EffectConfig{}) })
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
