package reveal

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// layout and style. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-pivot) -> Scale(style, foreshortened) -> Rotate -> Translate(pivot + layout + style offset)
//
// RotateX and RotateY foreshorten the matching axis. With a Perspective
// distance the tilted edges also move toward or away from the viewer, which
// an affine matrix can only express as their averaged extent (see
// foreshorten).
func computeLocalTransform(n *Node) [6]float64 {
	s := n.Style
	sx := s.Scale * foreshorten(s.RotateY, n.Width*s.Scale/2, s.Perspective)
	sy := s.Scale * foreshorten(s.RotateX, n.Height*s.Scale/2, s.Perspective)

	sin, cos := math.Sincos(degToRad(s.Rotate))

	px := n.PivotX * n.Width
	py := n.PivotY * n.Height

	// After Scale * Translate(-pivot):
	//   a=sx, b=0, c=0, d=sy, tx=-px*sx, ty=-py*sy
	preTx := -px * sx
	preTy := -py * sy

	// After Rotate:
	ra := cos * sx
	rb := sin * sx
	rc := -sin * sy
	rd := cos * sy
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	// After Translate(pivot + position + offset):
	return [6]float64{
		ra, rb, rc, rd,
		rtx + px + n.X + s.TranslateX,
		rty + py + n.Y + s.TranslateY,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform recomputes a node's worldTransform and worldAlpha.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * clamp(n.Style.Opacity, 0, 1)
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// LocalToWorld converts a local-space point to scene space using the
// transform computed on the last frame, style included.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform, lx, ly)
}

// WorldToLocal converts a scene-space point to this node's local space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return transformPoint(invertAffine(n.worldTransform), wx, wy)
}

// maxDepthRatio caps how close a tilted edge may come to the viewer, as a
// fraction of the projection distance.
const maxDepthRatio = 0.9

// foreshorten returns the projected size factor of an axis of half-length
// half tilted by deg degrees and viewed from distance d. The edges sit at
// depth ±half·sin(deg); projecting both and averaging gives
//
//	cos(deg) / (1 - (half·sin(deg)/d)²)
//
// d <= 0 is orthographic: plain cos(deg).
func foreshorten(deg, half, d float64) float64 {
	sin, cos := math.Sincos(degToRad(deg))
	if d <= 0 {
		return cos
	}
	r := math.Min(math.Abs(half*sin)/d, maxDepthRatio)
	return cos / (1 - r*r)
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}
