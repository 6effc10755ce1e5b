package reveal

// moveMouseHandler translates the node toward the pointer, measured from
// the viewport center and capped at Radius on each axis.
func moveMouseHandler(g Geometry, in Input, cfg EffectConfig) StylePatch {
	tr := IdentityTransform()
	p := StylePatch{Transition: timing(cfg)}
	if !in.HasPointer {
		return p.withTransform(tr)
	}
	cx, cy := g.WindowWidth/2, g.WindowHeight/2
	tr.TranslateX = clamp((in.PointerX-cx)/nonZero(cx), -1, 1) * cfg.Radius
	tr.TranslateY = clamp((in.PointerY-cy)/nonZero(cy), -1, 1) * cfg.Radius
	if cfg.Reverse {
		tr.TranslateX, tr.TranslateY = -tr.TranslateX, -tr.TranslateY
	}
	return p.withTransform(tr)
}

// pointerDegrees returns the tilt toward (px, py) around (cx, cy):
//
//	degreeX = (pointerY - centerY) * kX
//	degreeY = (pointerX - centerX) * kY
//
// each capped at ±limit degrees.
func pointerDegrees(in Input, cx, cy, kX, kY, limit float64) (degX, degY float64) {
	degX = clamp((in.PointerY-cy)*kX, -limit, limit)
	degY = clamp((in.PointerX-cx)*kY, -limit, limit)
	return degX, degY
}

// tiltMouseHandler tilts the node toward the pointer around the viewport
// center.
func tiltMouseHandler(g Geometry, in Input, cfg EffectConfig) StylePatch {
	tr := IdentityTransform()
	tr.Perspective = cfg.Perspective
	p := StylePatch{Transition: timing(cfg)}
	if !in.HasPointer {
		return p.withTransform(tr)
	}
	k := cfg.TiltFactor
	if cfg.Reverse {
		k = -k
	}
	tr.RotateX, tr.RotateY = pointerDegrees(in, g.WindowWidth/2, g.WindowHeight/2, -k, k, cfg.Radius)
	return p.withTransform(tr)
}

// elementCenter returns the node center in viewport space and whether the
// pointer is over the node.
func elementCenter(g Geometry, in Input) (cx, cy float64, over bool) {
	cx = g.Left + g.Width/2
	cy = g.Top + g.Height/2
	over = in.HasPointer && Rect{X: g.Left, Y: g.Top, Width: g.Width, Height: g.Height}.Contains(in.PointerX, in.PointerY)
	return cx, cy, over
}

// perspectiveCardHandler tilts a card around its own center while the
// pointer is over it and returns it flat otherwise.
func perspectiveCardHandler(g Geometry, in Input, cfg EffectConfig) StylePatch {
	tr := IdentityTransform()
	tr.Perspective = cfg.Perspective
	p := StylePatch{Transition: timing(cfg)}
	cx, cy, over := elementCenter(g, in)
	if !over {
		return p.withTransform(tr)
	}
	k := cfg.TiltFactor
	if cfg.Reverse {
		k = -k
	}
	tr.RotateX, tr.RotateY = pointerDegrees(in, cx, cy, k, -k, cfg.Radius)
	return p.withTransform(tr)
}

// perspectiveImageHandler tilts like a card and adds a parallax shift away
// from the pointer plus a slight zoom while hovered.
func perspectiveImageHandler(g Geometry, in Input, cfg EffectConfig) StylePatch {
	tr := IdentityTransform()
	tr.Perspective = cfg.Perspective
	p := StylePatch{Transition: timing(cfg)}
	cx, cy, over := elementCenter(g, in)
	if !over {
		return p.withTransform(tr)
	}
	k := cfg.TiltFactor
	shift := cfg.Radius / 2
	if cfg.Reverse {
		k, shift = -k, -shift
	}
	tr.RotateX, tr.RotateY = pointerDegrees(in, cx, cy, k, -k, cfg.Radius)
	tr.TranslateX = -clamp((in.PointerX-cx)/nonZero(g.Width/2), -1, 1) * shift
	tr.TranslateY = -clamp((in.PointerY-cy)/nonZero(g.Height/2), -1, 1) * shift
	tr.Scale = 1.05
	return p.withTransform(tr)
}
