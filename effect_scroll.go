package reveal

import "math"

// scrollProgress computes the clamped reveal distance for the scroll-position
// families and the matching opacity.
//
//	actionPoint  = height * trigger
//	elementTop   = top + scrollY - actionPoint
//	baselineLine = windowHeight - height + scrollY
//	transition   = clamp(elementTop - baselineLine, 0, maxTranslate)
//	opacity      = clamp(1 - transition/maxTranslate, 0, 1)
func scrollProgress(g Geometry, cfg EffectConfig) (transition, ratio, opacity float64) {
	maxT := nonZero(cfg.MaxTranslate)
	actionPoint := g.Height * cfg.Trigger
	elementTop := g.Top + g.ScrollY - actionPoint
	baseline := g.WindowHeight - g.Height + g.ScrollY
	transition = clamp(elementTop-baseline, 0, maxT)
	ratio = transition / maxT
	opacity = clamp(1-ratio, 0, 1)
	return transition, ratio, opacity
}

func timing(cfg EffectConfig) Transition {
	return Transition{Duration: cfg.Duration, Ease: cfg.Ease}
}

func fadeHandler(g Geometry, _ Input, cfg EffectConfig) StylePatch {
	_, _, opacity := scrollProgress(g, cfg)
	return StylePatch{Transition: timing(cfg)}.withOpacity(opacity)
}

func fadeBottomRightHandler(g Geometry, _ Input, cfg EffectConfig) StylePatch {
	t, _, opacity := scrollProgress(g, cfg)
	tr := IdentityTransform()
	tr.TranslateX, tr.TranslateY = t, t
	return StylePatch{Transition: timing(cfg)}.withOpacity(opacity).withTransform(tr)
}

func slideInRightHandler(g Geometry, _ Input, cfg EffectConfig) StylePatch {
	t, _, opacity := scrollProgress(g, cfg)
	tr := IdentityTransform()
	tr.TranslateX = t
	return StylePatch{Transition: timing(cfg)}.withOpacity(opacity).withTransform(tr)
}

func slideInTopLeftHandler(g Geometry, _ Input, cfg EffectConfig) StylePatch {
	t, _, opacity := scrollProgress(g, cfg)
	tr := IdentityTransform()
	tr.TranslateX, tr.TranslateY = -t, -t
	return StylePatch{Transition: timing(cfg)}.withOpacity(opacity).withTransform(tr)
}

func scaleUpHandler(g Geometry, _ Input, cfg EffectConfig) StylePatch {
	_, ratio, opacity := scrollProgress(g, cfg)
	tr := IdentityTransform()
	tr.Scale = 1 - ratio*0.5
	return StylePatch{Transition: timing(cfg)}.withOpacity(opacity).withTransform(tr)
}

func scaleUpBottomHandler(g Geometry, _ Input, cfg EffectConfig) StylePatch {
	t, ratio, opacity := scrollProgress(g, cfg)
	tr := IdentityTransform()
	tr.TranslateY = t
	tr.Scale = 1 - ratio*0.2
	return StylePatch{Transition: timing(cfg)}.withOpacity(opacity).withTransform(tr)
}

func scaleUpTopLeftHandler(g Geometry, _ Input, cfg EffectConfig) StylePatch {
	t, ratio, opacity := scrollProgress(g, cfg)
	tr := IdentityTransform()
	tr.TranslateX, tr.TranslateY = -t, -t
	tr.Scale = 1 - ratio*0.2
	return StylePatch{Transition: timing(cfg)}.withOpacity(opacity).withTransform(tr)
}

// hiddenInitial returns the pre-reveal patch for a scroll-position handler:
// the handler's output at full transition, applied without timing.
func hiddenInitial(h Handler) func(EffectConfig) StylePatch {
	return func(cfg EffectConfig) StylePatch {
		// A node this far below the fold sits at full transition.
		g := Geometry{Top: 2 * (cfg.MaxTranslate + 1), Height: 1, WindowHeight: 1}
		p := h(g, Input{}, cfg)
		p.Transition = Transition{}
		return p
	}
}

// --- Lateral scroll family ---

// lateralOffset is proportional to the node's distance from the vertical
// viewport center, scaled so a node at either edge moves radius/2.
func lateralOffset(g Geometry, cfg EffectConfig) float64 {
	center := g.WindowHeight / 2
	norm := clamp((g.Top-center)/nonZero(center), -1, 1)
	off := norm * cfg.Radius / 2
	if cfg.Reverse {
		off = -off
	}
	return off
}

func moveScrollXHandler(g Geometry, _ Input, cfg EffectConfig) StylePatch {
	tr := IdentityTransform()
	tr.TranslateX = lateralOffset(g, cfg)
	return StylePatch{Transition: timing(cfg)}.withTransform(tr)
}

func moveScrollYHandler(g Geometry, _ Input, cfg EffectConfig) StylePatch {
	tr := IdentityTransform()
	tr.TranslateY = lateralOffset(g, cfg)
	return StylePatch{Transition: timing(cfg)}.withTransform(tr)
}

// moveScrollRandomHandler draws two independent offsets in
// [-radius/2, radius/2].
func moveScrollRandomHandler(_ Geometry, in Input, cfg EffectConfig) StylePatch {
	half := cfg.Radius / 2
	tr := IdentityTransform()
	tr.TranslateX = (in.float64()*2 - 1) * half
	tr.TranslateY = (in.float64()*2 - 1) * half
	return StylePatch{Transition: timing(cfg)}.withTransform(tr)
}

// --- Tilt on scroll ---

// tiltThreshold returns the node's scene-space top pulled up by DistanceTop.
func tiltThreshold(g Geometry, cfg EffectConfig) float64 {
	return g.Top + g.ScrollY - cfg.DistanceTop
}

// tiltActive reports whether the tilt is engaged: the threshold has not yet
// scrolled above the current scroll position.
func tiltActive(g Geometry, cfg EffectConfig) bool {
	return tiltThreshold(g, cfg) >= g.ScrollY
}

// tiltScrollHandler tilts the node back while it is below the threshold and
// flattens it as it rises. Scale follows the rotation linearly from 100% at
// rest to 70% at MaxRotate. Past the threshold the rotation resets and the
// node is revealed too, so a node mounted already past it is never left
// hidden. Neither branch hides a revealed node again.
func tiltScrollHandler(g Geometry, _ Input, cfg EffectConfig) StylePatch {
	tr := IdentityTransform()
	tr.Perspective = cfg.Perspective
	p := StylePatch{Transition: timing(cfg)}.withOpacity(1)
	if !tiltActive(g, cfg) {
		return p.withTransform(tr)
	}
	maxR := nonZero(cfg.MaxRotate)
	deg := clamp((g.ScrollY-tiltThreshold(g, cfg))*-cfg.Offset, -maxR, maxR)
	tr.RotateX = deg
	tr.Scale = 1 - 0.3*math.Abs(deg)/maxR
	return p.withTransform(tr)
}

func tiltScrollInitial(EffectConfig) StylePatch {
	return StylePatch{}.withOpacity(0)
}
