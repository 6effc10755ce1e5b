package reveal

// nodeIDCounter is a plain counter; reveal is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Style is the visual state effects write to. It is composed on top of the
// node's layout geometry and never feeds back into it, so effects always read
// the untransformed layout box.
type Style struct {
	Opacity    float64
	TranslateX float64
	TranslateY float64
	Scale      float64
	Rotate     float64 // degrees, around the pivot
	RotateX    float64 // degrees, 3-D tilt around the horizontal axis
	RotateY    float64 // degrees, 3-D tilt around the vertical axis
	// Perspective is the projection distance in pixels used for RotateX and
	// RotateY: the closer it is, the larger a tilted node projects. Zero
	// means orthographic.
	Perspective float64
}

// DefaultStyle returns the identity style: fully opaque, no transform.
func DefaultStyle() Style {
	return Style{Opacity: 1, Scale: 1}
}

// Node is a host visual element. A single flat struct is used for all
// elements; a node with a zero size is a pure container.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout (local to the parent's top-left corner)
	X, Y          float64
	Width, Height float64

	// PivotX and PivotY are the transform origin as a fraction of the size.
	PivotX, PivotY float64

	Color   Color
	Visible bool

	// Style is written by effects. Write it directly only for nodes that
	// carry no effect, then call MarkDirty.
	Style Style

	UserData any

	// Computed during traversal
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	effects []*Effect
	tween   styleTween

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.PivotX = 0.5
	n.PivotY = 0.5
	n.Color = ColorWhite
	n.Visible = true
	n.Style = DefaultStyle()
	n.worldAlpha = 1
	n.transformDirty = true
}

// NewContainer creates a node with no size. Containers group and offset
// their children but draw nothing.
func NewContainer(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewBox creates a solid-color node of the given size.
func NewBox(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = c
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil, disposed, or an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("reveal: cannot add nil child")
	}
	if child.disposed || n.disposed {
		panic("reveal: AddChild on disposed node")
	}
	if isAncestor(child, n) {
		panic("reveal: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("reveal: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Effects returns the effects mounted on this node. The returned slice MUST
// NOT be mutated by the caller.
func (n *Node) Effects() []*Effect {
	return n.effects
}

// --- Geometry ---

// SetPosition sets the node's layout position and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	markSubtreeDirty(n)
}

// SetSize sets the node's layout size and marks it dirty.
func (n *Node) SetSize(w, h float64) {
	n.Width = w
	n.Height = h
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// LayoutBounds returns the node's layout box in scene coordinates. Style
// transforms are not included. The result is read fresh on every call so
// layout changes between frames are always observed.
func (n *Node) LayoutBounds() Rect {
	x, y := n.X, n.Y
	for p := n.Parent; p != nil; p = p.Parent {
		x += p.X
		y += p.Y
	}
	return Rect{X: x, Y: y, Width: n.Width, Height: n.Height}
}

// isUnder reports whether root is n or one of its ancestors.
func (n *Node) isUnder(root *Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

// --- Disposal ---

// Dispose removes this node from its parent, unmounts its effects, marks it
// as disposed, and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	if len(n.effects) > 0 {
		mounted := make([]*Effect, len(n.effects))
		copy(mounted, n.effects)
		for _, e := range mounted {
			e.Unmount()
		}
	}
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.effects = nil
	n.tween = styleTween{}
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// removeEffect drops e from the node's mounted list.
func (n *Node) removeEffect(e *Effect) {
	for i, m := range n.effects {
		if m == e {
			copy(n.effects[i:], n.effects[i+1:])
			n.effects[len(n.effects)-1] = nil
			n.effects = n.effects[:len(n.effects)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
