package reveal

import "testing"

// --- Constructors ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("c")
	assertNodeDefaults(t, n, "c")
	if n.Width != 0 || n.Height != 0 {
		t.Errorf("container size = %vx%v", n.Width, n.Height)
	}
}

func TestNewBoxDefaults(t *testing.T) {
	c := Color{R: 0.2, G: 0.4, B: 0.6, A: 1}
	n := NewBox("b", 30, 40, c)
	assertNodeDefaults(t, n, "b")
	if n.Width != 30 || n.Height != 40 || n.Color != c {
		t.Errorf("box = %vx%v %v", n.Width, n.Height, n.Color)
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string) {
	t.Helper()
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if !n.Visible {
		t.Error("Visible should default to true")
	}
	if n.PivotX != 0.5 || n.PivotY != 0.5 {
		t.Errorf("pivot = (%v,%v), want centered", n.PivotX, n.PivotY)
	}
	if n.Style != DefaultStyle() {
		t.Errorf("Style = %+v, want identity", n.Style)
	}
	if !n.transformDirty {
		t.Error("new node should be dirty")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewBox("c", 1, 1, ColorWhite)
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs should be unique: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

// --- Tree manipulation ---

func TestAddChildReparent(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	child := NewContainer("child")

	p1.AddChild(child)
	p2.AddChild(child)
	if p1.NumChildren() != 0 || p2.NumChildren() != 1 || child.Parent != p2 {
		t.Errorf("reparent failed: p1=%d p2=%d", p1.NumChildren(), p2.NumChildren())
	}
}

func TestAddChildPanics(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	assertPanics(t, "nil", func() { parent.AddChild(nil) })
	assertPanics(t, "cycle", func() { child.AddChild(parent) })
	assertPanics(t, "self", func() { parent.AddChild(parent) })
	d := NewContainer("d")
	d.Dispose()
	assertPanics(t, "disposed", func() { parent.AddChild(d) })
}

func TestRemoveChild(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	parent.AddChild(a)
	parent.AddChild(b)
	parent.RemoveChild(a)
	if parent.NumChildren() != 1 || parent.Children()[0] != b || a.Parent != nil {
		t.Error("RemoveChild left the tree inconsistent")
	}
	assertPanics(t, "wrong parent", func() { parent.RemoveChild(a) })

	b.RemoveFromParent()
	b.RemoveFromParent()
	if parent.NumChildren() != 0 {
		t.Error("RemoveFromParent failed")
	}
}

// --- Geometry ---

func TestLayoutBoundsSumsAncestors(t *testing.T) {
	root := NewContainer("root")
	section := NewContainer("section")
	section.SetPosition(0, 1000)
	card := NewBox("card", 200, 100, ColorWhite)
	card.SetPosition(40, 60)
	root.AddChild(section)
	section.AddChild(card)

	card.Style.TranslateX = 500
	card.Style.Scale = 3
	got := card.LayoutBounds()
	want := Rect{X: 40, Y: 1060, Width: 200, Height: 100}
	if got != want {
		t.Errorf("LayoutBounds = %v, want %v", got, want)
	}
}

func TestSetPositionMarksSubtreeDirty(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	updateWorldTransform(parent, identityTransform, 1, false)
	parent.SetPosition(5, 5)
	if !parent.transformDirty || !child.transformDirty {
		t.Error("SetPosition should dirty the subtree")
	}
}

func TestIsUnder(t *testing.T) {
	root := NewContainer("root")
	mid := NewContainer("mid")
	leaf := NewContainer("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)
	if !leaf.isUnder(root) || !root.isUnder(root) {
		t.Error("isUnder should include ancestors and self")
	}
	if root.isUnder(leaf) {
		t.Error("root is not under leaf")
	}
}

// --- Disposal ---

func TestDispose(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)

	child.Dispose()
	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("Dispose should recurse")
	}
	if parent.NumChildren() != 0 {
		t.Error("disposed child still attached")
	}
	if child.ID != 0 || child.NumChildren() != 0 {
		t.Error("disposed node retains identity or children")
	}
	child.Dispose()
}
