package reveal

import "github.com/hajimehoshi/ebiten/v2"

const defaultWheelStep = 40.0 // pixels per wheel notch

// pointerState is the last known pointer position in viewport space.
type pointerState struct {
	x, y  float64
	has   bool
	moved bool // changed since the last pointer dispatch
}

// Pointer returns the last known pointer position and whether the pointer
// has been seen at all.
func (s *Scene) Pointer() (x, y float64, ok bool) {
	return s.pointer.x, s.pointer.y, s.pointer.has
}

// setPointer records a pointer position, flagging a move when it differs
// from the last one.
func (s *Scene) setPointer(x, y float64) {
	if s.pointer.has && s.pointer.x == x && s.pointer.y == y {
		return
	}
	s.pointer.x, s.pointer.y = x, y
	s.pointer.has = true
	s.pointer.moved = true
}

// pollInput reads real input from ebiten. The wheel scrolls the viewport;
// the cursor is only read while a pointer dispatcher is attached.
func (s *Scene) pollInput() {
	if s.viewport != nil {
		wx, wy := ebiten.Wheel()
		if wx != 0 || wy != 0 {
			s.viewport.ScrollBy(-wx*s.WheelStep, -wy*s.WheelStep)
		}
	}
	if s.subs.Attached(SourcePointer) {
		cx, cy := ebiten.CursorPosition()
		s.setPointer(float64(cx), float64(cy))
	}
}
