package reveal

import (
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// styleField indexes the animatable fields of Style.
type styleField uint8

const (
	fieldOpacity styleField = iota
	fieldTranslateX
	fieldTranslateY
	fieldScale
	fieldRotate
	fieldRotateX
	fieldRotateY
	fieldPerspective
	numStyleFields
)

// ptr returns the address of field f in s.
func (f styleField) ptr(s *Style) *float64 {
	switch f {
	case fieldOpacity:
		return &s.Opacity
	case fieldTranslateX:
		return &s.TranslateX
	case fieldTranslateY:
		return &s.TranslateY
	case fieldScale:
		return &s.Scale
	case fieldRotate:
		return &s.Rotate
	case fieldRotateX:
		return &s.RotateX
	case fieldRotateY:
		return &s.RotateY
	default:
		return &s.Perspective
	}
}

// styleTween animates Style fields toward the targets of the last applied
// patch. There is no global animation manager; Scene.Update advances each
// node's tween with the frame delta.
type styleTween struct {
	tweens  [numStyleFields]*gween.Tween
	targets [numStyleFields]float64
}

// easeFuncs maps transition ease names to gween easing functions.
var easeFuncs = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
	"out-expo":     ease.OutExpo,
	"out-back":     ease.OutBack,
	"out-bounce":   ease.OutBounce,
}

// EaseNames returns the accepted transition ease names, sorted.
func EaseNames() []string {
	names := make([]string, 0, len(easeFuncs))
	for n := range easeFuncs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func easeFunc(name string) ease.TweenFunc {
	if fn, ok := easeFuncs[name]; ok {
		return fn
	}
	return ease.Linear
}

// ApplyPatch writes p to the node's style. With a positive transition
// duration each changed field is tweened from its current value; otherwise
// the values are set immediately. Applying the same patch again is a no-op,
// so repeated application within a frame never accumulates. Disposed and nil
// nodes are ignored.
func ApplyPatch(n *Node, p StylePatch) {
	if n == nil || n.disposed {
		return
	}
	if p.HasOpacity {
		n.applyField(fieldOpacity, clamp(p.Opacity, 0, 1), p.Transition)
	}
	if p.HasTransform {
		t := p.Transform
		n.applyField(fieldTranslateX, t.TranslateX, p.Transition)
		n.applyField(fieldTranslateY, t.TranslateY, p.Transition)
		n.applyField(fieldScale, t.Scale, p.Transition)
		n.applyField(fieldRotate, t.Rotate, p.Transition)
		n.applyField(fieldRotateX, t.RotateX, p.Transition)
		n.applyField(fieldRotateY, t.RotateY, p.Transition)
		// The projection distance is not animated.
		n.applyField(fieldPerspective, t.Perspective, Transition{})
	}
	n.MarkDirty()
}

func (n *Node) applyField(f styleField, target float64, tr Transition) {
	cur := f.ptr(&n.Style)
	tw := &n.tween
	if tw.tweens[f] != nil {
		if tw.targets[f] == target {
			return
		}
	} else if *cur == target {
		return
	}
	if tr.Duration <= 0 {
		tw.tweens[f] = nil
		*cur = target
		return
	}
	tw.tweens[f] = gween.New(float32(*cur), float32(target), float32(tr.Duration), easeFunc(tr.Ease))
	tw.targets[f] = target
}

// Animating reports whether any style transition is still running.
func (n *Node) Animating() bool {
	for _, t := range n.tween.tweens {
		if t != nil {
			return true
		}
	}
	return false
}

// updateTween advances the node's style transitions by dt seconds.
func (n *Node) updateTween(dt float32) {
	tw := &n.tween
	moved := false
	for f := styleField(0); f < numStyleFields; f++ {
		t := tw.tweens[f]
		if t == nil {
			continue
		}
		val, finished := t.Update(dt)
		cur := f.ptr(&n.Style)
		if finished {
			// Land exactly on the target; float32 tweening drifts.
			*cur = tw.targets[f]
			tw.tweens[f] = nil
		} else {
			*cur = float64(val)
		}
		moved = true
	}
	if moved {
		n.MarkDirty()
	}
}

// updateTweens advances style transitions for n and its subtree.
func updateTweens(n *Node, dt float32) {
	n.updateTween(dt)
	for _, child := range n.children {
		updateTweens(child, dt)
	}
}
