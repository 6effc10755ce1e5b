package reveal

import (
	"fmt"
	"strconv"
	"strings"
)

// Transform is the transform component of a style patch. The zero value is
// not the identity; use IdentityTransform.
type Transform struct {
	Perspective float64
	TranslateX  float64
	TranslateY  float64
	Scale       float64
	Rotate      float64
	RotateX     float64
	RotateY     float64
}

// IdentityTransform returns a transform that leaves the node untouched.
func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// String renders the transform in CSS transform syntax, omitting identity
// components. The identity renders as "none".
func (t Transform) String() string {
	var parts []string
	if t.Perspective != 0 {
		parts = append(parts, "perspective("+px(t.Perspective)+")")
	}
	if t.TranslateX != 0 || t.TranslateY != 0 {
		parts = append(parts, "translate("+px(t.TranslateX)+", "+px(t.TranslateY)+")")
	}
	if t.Scale != 1 {
		parts = append(parts, "scale("+num(t.Scale)+")")
	}
	if t.RotateX != 0 {
		parts = append(parts, "rotateX("+num(t.RotateX)+"deg)")
	}
	if t.RotateY != 0 {
		parts = append(parts, "rotateY("+num(t.RotateY)+"deg)")
	}
	if t.Rotate != 0 {
		parts = append(parts, "rotate("+num(t.Rotate)+"deg)")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// Transition is the timing applied when a patch changes the style.
type Transition struct {
	Duration float64 // seconds; zero applies instantly
	Ease     string
}

// String renders the transition in CSS transition syntax, or "" when the
// patch applies instantly.
func (t Transition) String() string {
	if t.Duration <= 0 {
		return ""
	}
	ease := t.Ease
	if ease == "" {
		ease = "linear"
	}
	return fmt.Sprintf("all %ss %s", num(t.Duration), ease)
}

// StylePatch is an immutable description of a style change. Components with
// their Has flag unset leave the node's current value alone.
type StylePatch struct {
	Opacity    float64
	HasOpacity bool

	Transform    Transform
	HasTransform bool

	Transition Transition
}

// withOpacity returns p with the opacity component set.
func (p StylePatch) withOpacity(v float64) StylePatch {
	p.Opacity = v
	p.HasOpacity = true
	return p
}

// withTransform returns p with the transform component set.
func (p StylePatch) withTransform(t Transform) StylePatch {
	p.Transform = t
	p.HasTransform = true
	return p
}

// String renders the patch as CSS declarations, for diagnostics.
func (p StylePatch) String() string {
	var parts []string
	if p.HasOpacity {
		parts = append(parts, "opacity: "+num(p.Opacity))
	}
	if p.HasTransform {
		parts = append(parts, "transform: "+p.Transform.String())
	}
	if s := p.Transition.String(); s != "" {
		parts = append(parts, "transition: "+s)
	}
	return strings.Join(parts, "; ")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func px(v float64) string {
	return num(v) + "px"
}
