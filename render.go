package reveal

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// color32 is a compact premultiplied RGBA color, for draw commands only.
type color32 struct {
	R, G, B, A float32
}

// drawCommand is a single quad emitted during traversal.
type drawCommand struct {
	transform [6]float32 // screen-space, already scaled to the node size
	color     color32
	nodeID    uint32
}

// whitePixel is the 1x1 source image every quad is drawn from.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// affine32 converts a [6]float64 affine matrix to [6]float32.
func affine32(m [6]float64) [6]float32 {
	return [6]float32{float32(m[0]), float32(m[1]), float32(m[2]), float32(m[3]), float32(m[4]), float32(m[5])}
}

// Draw renders every visible, sized node as a tinted quad. Effects are
// visible through each node's world transform and alpha. The screen size
// becomes the window size used for effect geometry when there is no viewport.
func (s *Scene) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	s.SetWindowSize(float64(b.Dx()), float64(b.Dy()))
	if s.viewport != nil && (s.viewport.Width == 0 || s.viewport.Height == 0) {
		s.viewport.Width, s.viewport.Height = float64(b.Dx()), float64(b.Dy())
	}

	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	defer s.flushScreenshots(screen)

	s.commands = s.collectCommands(s.commands[:0])
	if len(s.commands) == 0 {
		return
	}
	src := ensureWhitePixel()
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		t := cmd.transform
		op.GeoM.Reset()
		op.GeoM.SetElement(0, 0, float64(t[0]))
		op.GeoM.SetElement(1, 0, float64(t[1]))
		op.GeoM.SetElement(0, 1, float64(t[2]))
		op.GeoM.SetElement(1, 1, float64(t[3]))
		op.GeoM.SetElement(0, 2, float64(t[4]))
		op.GeoM.SetElement(1, 2, float64(t[5]))
		op.ColorScale.Reset()
		op.ColorScale.Scale(cmd.color.R, cmd.color.G, cmd.color.B, cmd.color.A)
		screen.DrawImage(src, &op)
	}
}

// collectCommands walks the tree depth-first and appends a quad per visible,
// sized node. World transforms must be current.
func (s *Scene) collectCommands(buf []drawCommand) []drawCommand {
	view := identityTransform
	if s.viewport != nil {
		view = s.viewport.viewMatrix()
	}
	return s.collectNode(s.root, view, buf)
}

func (s *Scene) collectNode(n *Node, view [6]float64, buf []drawCommand) []drawCommand {
	if !n.Visible || n.worldAlpha <= 0 {
		return buf
	}
	if n.Width > 0 && n.Height > 0 {
		// Stretch the unit quad to the node size, then place it.
		size := [6]float64{n.Width, 0, 0, n.Height, 0, 0}
		m := multiplyAffine(multiplyAffine(view, n.worldTransform), size)
		a := float32(n.Color.A * n.worldAlpha)
		buf = append(buf, drawCommand{
			transform: affine32(m),
			color: color32{
				R: float32(n.Color.R) * a,
				G: float32(n.Color.G) * a,
				B: float32(n.Color.B) * a,
				A: a,
			},
			nodeID: n.ID,
		})
	}
	for _, c := range n.children {
		buf = s.collectNode(c, view, buf)
	}
	return buf
}

// NodeAt returns the topmost visible, sized node under the screen point
// (sx, sy), or nil.
func (s *Scene) NodeAt(sx, sy float64) *Node {
	wx, wy := sx, sy
	if s.viewport != nil {
		wx, wy = s.viewport.ScreenToWorld(sx, sy)
	}
	return nodeAt(s.root, wx, wy)
}

func nodeAt(n *Node, wx, wy float64) *Node {
	if !n.Visible {
		return nil
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit := nodeAt(n.children[i], wx, wy); hit != nil {
			return hit
		}
	}
	if n.Width <= 0 || n.Height <= 0 {
		return nil
	}
	lx, ly := n.WorldToLocal(wx, wy)
	if lx >= 0 && ly >= 0 && lx <= n.Width && ly <= n.Height {
		return n
	}
	return nil
}
