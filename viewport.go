package reveal

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for the X and Y scroll offsets.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Viewport is the visible scroll region of the scene. ScrollX and ScrollY are
// the scene-space coordinates shown at the viewport's top-left corner.
type Viewport struct {
	ScrollX, ScrollY float64
	Width, Height    float64

	// BoundsEnabled clamps the scroll offsets so the visible area stays
	// within Bounds (the content extent).
	BoundsEnabled bool
	Bounds        Rect

	// lastX and lastY are the offsets seen by the previous frame.
	lastX, lastY float64
	settled      bool

	scrollTween *scrollAnim
}

// NewViewport creates a viewport of the given size scrolled to the origin.
func NewViewport(w, h float64) *Viewport {
	return &Viewport{Width: w, Height: h}
}

// SetScroll jumps to the given scroll offsets, cancelling any ScrollTo
// animation.
func (v *Viewport) SetScroll(x, y float64) {
	v.scrollTween = nil
	v.ScrollX = x
	v.ScrollY = y
	v.ClampToBounds()
}

// ScrollBy moves the scroll offsets by (dx, dy), cancelling any ScrollTo
// animation.
func (v *Viewport) ScrollBy(dx, dy float64) {
	v.SetScroll(v.ScrollX+dx, v.ScrollY+dy)
}

// ScrollTo animates the scroll offsets to (x, y) over duration seconds.
func (v *Viewport) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.ScrollX), float32(x), duration, easeFn),
		tweenY: gween.New(float32(v.ScrollY), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// SetBounds enables scroll clamping to the given content extent.
func (v *Viewport) SetBounds(bounds Rect) {
	v.BoundsEnabled = true
	v.Bounds = bounds
	v.clampToBounds()
}

// ClearBounds disables scroll clamping.
func (v *Viewport) ClearBounds() {
	v.BoundsEnabled = false
}

// ClampToBounds immediately clamps the scroll offsets. No-op if
// BoundsEnabled is false.
func (v *Viewport) ClampToBounds() {
	if v.BoundsEnabled {
		v.clampToBounds()
	}
}

// update advances the scroll animation and clamping, and reports whether the
// scroll offsets differ from the previous frame. Called from Scene.Update.
func (v *Viewport) update(dt float32) bool {
	if v.scrollTween != nil {
		if !v.scrollTween.doneX {
			val, done := v.scrollTween.tweenX.Update(dt)
			v.ScrollX = float64(val)
			v.scrollTween.doneX = done
		}
		if !v.scrollTween.doneY {
			val, done := v.scrollTween.tweenY.Update(dt)
			v.ScrollY = float64(val)
			v.scrollTween.doneY = done
		}
		if v.scrollTween.doneX && v.scrollTween.doneY {
			v.scrollTween = nil
		}
	}

	if v.BoundsEnabled {
		v.clampToBounds()
	}

	changed := !v.settled || v.ScrollX != v.lastX || v.ScrollY != v.lastY
	v.lastX, v.lastY = v.ScrollX, v.ScrollY
	v.settled = true
	return changed
}

// clampToBounds restricts the scroll offsets so the visible area stays within Bounds.
func (v *Viewport) clampToBounds() {
	maxX := v.Bounds.X + v.Bounds.Width - v.Width
	maxY := v.Bounds.Y + v.Bounds.Height - v.Height

	// Content smaller than the viewport pins to the content origin.
	if maxX < v.Bounds.X {
		v.ScrollX = v.Bounds.X
	} else {
		v.ScrollX = math.Max(v.Bounds.X, math.Min(v.ScrollX, maxX))
	}
	if maxY < v.Bounds.Y {
		v.ScrollY = v.Bounds.Y
	} else {
		v.ScrollY = math.Max(v.Bounds.Y, math.Min(v.ScrollY, maxY))
	}
}

// WorldToScreen converts scene coordinates to viewport coordinates.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return wx - v.ScrollX, wy - v.ScrollY
}

// ScreenToWorld converts viewport coordinates to scene coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return sx + v.ScrollX, sy + v.ScrollY
}

// VisibleBounds returns the scene-space rectangle currently in view.
func (v *Viewport) VisibleBounds() Rect {
	return Rect{X: v.ScrollX, Y: v.ScrollY, Width: v.Width, Height: v.Height}
}

// viewMatrix returns the scene-to-screen affine matrix.
func (v *Viewport) viewMatrix() [6]float64 {
	return [6]float64{1, 0, 0, 1, -v.ScrollX, -v.ScrollY}
}
