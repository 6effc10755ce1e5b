package reveal

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

// EffectKind selects an effect family. Every kind supplies its own pure
// geometry-to-style function; lifecycle wiring is shared.
type EffectKind uint8

const (
	EffectFade             EffectKind = iota // opacity only, vertical trigger
	EffectFadeBottomRight                    // fade while sliding in from the bottom-right
	EffectSlideInRight                       // fade while sliding in from the right
	EffectSlideInTopLeft                     // fade while sliding in from the top-left
	EffectScaleUp                            // fade while growing from 50%
	EffectScaleUpBottom                      // fade while rising and growing from 80%
	EffectScaleUpTopLeft                     // fade while growing from 80% out of the top-left
	EffectMoveScrollX                        // horizontal drift by distance from viewport center
	EffectMoveScrollY                        // vertical drift by distance from viewport center
	EffectMoveScrollRandom                   // random jitter after scrolling settles
	EffectTiltScroll                         // 3-D tilt that flattens as the element rises
	EffectMoveMouse                          // translate toward the pointer
	EffectTiltMouse                          // 3-D tilt toward the pointer
	EffectPerspectiveCard                    // card tilt around its own center
	EffectPerspectiveImage                   // image tilt plus parallax around its own center
	numEffectKinds
)

var effectKindNames = [numEffectKinds]string{
	"fade",
	"fade-bottom-right",
	"slide-in-right",
	"slide-in-top-left",
	"scale-up",
	"scale-up-bottom",
	"scale-up-top-left",
	"move-scroll-x",
	"move-scroll-y",
	"move-scroll-random",
	"tilt-scroll",
	"move-mouse",
	"tilt-mouse",
	"perspective-card",
	"perspective-image",
}

// String returns the kebab-case kind name.
func (k EffectKind) String() string {
	if k >= numEffectKinds {
		return fmt.Sprintf("EffectKind(%d)", uint8(k))
	}
	return effectKindNames[k]
}

// Valid reports whether k names a registered effect.
func (k EffectKind) Valid() bool {
	return k < numEffectKinds
}

// Source returns the input source that drives the effect.
func (k EffectKind) Source() Source {
	return effectRegistry[k].source
}

// ErrUnknownEffect is returned when an effect name does not match any kind.
var ErrUnknownEffect = errors.New("unknown effect")

// ParseEffectKind parses a kebab-case effect name.
func ParseEffectKind(name string) (EffectKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range effectKindNames {
		if n == name {
			return EffectKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
}

// EffectKinds returns all registered kinds in declaration order.
func EffectKinds() []EffectKind {
	kinds := make([]EffectKind, numEffectKinds)
	for i := range kinds {
		kinds[i] = EffectKind(i)
	}
	return kinds
}

// EffectConfig is the per-mount configuration. Zero fields take the kind's
// defaults when mounted. The config is immutable for the life of a mount.
type EffectConfig struct {
	// Duration is the transition time in seconds for style changes.
	Duration float64 `yaml:"duration,omitempty"`
	// Ease names the transition easing curve (see EaseNames).
	Ease string `yaml:"ease,omitempty"`
	// Trigger is the fraction of the element height at which the reveal
	// completes.
	Trigger float64 `yaml:"trigger,omitempty"`
	// MaxTranslate caps the scroll-driven offset, in pixels.
	MaxTranslate float64 `yaml:"maxTranslate,omitempty"`
	// Radius caps pointer and jitter offsets, in pixels (degrees for the
	// pointer tilt families).
	Radius float64 `yaml:"radius,omitempty"`
	// Perspective is the 3-D projection distance in pixels.
	Perspective float64 `yaml:"perspective,omitempty"`
	// Offset is the tilt-on-scroll sensitivity in degrees per pixel.
	Offset float64 `yaml:"offset,omitempty"`
	// DistanceTop is the tilt-on-scroll activation threshold in pixels.
	DistanceTop float64 `yaml:"distanceTop,omitempty"`
	// MaxRotate caps tilt-on-scroll rotation, in degrees.
	MaxRotate float64 `yaml:"maxRotate,omitempty"`
	// TiltFactor is the pointer tilt sensitivity in degrees per pixel.
	TiltFactor float64 `yaml:"tiltFactor,omitempty"`
	// Reverse flips the sign of lateral and pointer offsets.
	Reverse bool `yaml:"reverse,omitempty"`
	// Debounce is the idle gap before a jitter effect recomputes.
	Debounce time.Duration `yaml:"debounce,omitempty"`
	// GateOnVisibility attaches listeners only while the node is near the
	// viewport. Nil takes the kind's default.
	GateOnVisibility *bool `yaml:"gateOnVisibility,omitempty"`
}

// ErrInvalidConfig is wrapped by Validate errors.
var ErrInvalidConfig = errors.New("invalid effect config")

// Validate checks field ranges. Mount does not call it: out-of-range values
// are tolerated at runtime and clamped where they would divide by zero.
func (c EffectConfig) Validate() error {
	switch {
	case c.Duration < 0:
		return fmt.Errorf("%w: duration %v is negative", ErrInvalidConfig, c.Duration)
	case c.Trigger < 0 || c.Trigger > 1:
		return fmt.Errorf("%w: trigger %v outside [0, 1]", ErrInvalidConfig, c.Trigger)
	case c.MaxTranslate < 0:
		return fmt.Errorf("%w: maxTranslate %v is negative", ErrInvalidConfig, c.MaxTranslate)
	case c.Radius < 0:
		return fmt.Errorf("%w: radius %v is negative", ErrInvalidConfig, c.Radius)
	case c.Perspective < 0:
		return fmt.Errorf("%w: perspective %v is negative", ErrInvalidConfig, c.Perspective)
	case c.MaxRotate < 0:
		return fmt.Errorf("%w: maxRotate %v is negative", ErrInvalidConfig, c.MaxRotate)
	case c.Debounce < 0:
		return fmt.Errorf("%w: debounce %v is negative", ErrInvalidConfig, c.Debounce)
	}
	if c.Ease != "" {
		if _, ok := easeFuncs[c.Ease]; !ok {
			return fmt.Errorf("%w: unknown ease %q", ErrInvalidConfig, c.Ease)
		}
	}
	return nil
}

// withDefaults fills zero fields from the kind's defaults.
func (c EffectConfig) withDefaults(k EffectKind) EffectConfig {
	d := effectRegistry[k].defaults
	fill := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&c.Duration, d.Duration)
	fill(&c.Trigger, d.Trigger)
	fill(&c.MaxTranslate, d.MaxTranslate)
	fill(&c.Radius, d.Radius)
	fill(&c.Perspective, d.Perspective)
	fill(&c.Offset, d.Offset)
	fill(&c.DistanceTop, d.DistanceTop)
	fill(&c.MaxRotate, d.MaxRotate)
	fill(&c.TiltFactor, d.TiltFactor)
	if c.Ease == "" {
		c.Ease = d.Ease
	}
	if c.Debounce == 0 {
		c.Debounce = d.Debounce
	}
	if c.GateOnVisibility == nil {
		gated := effectRegistry[k].gated
		c.GateOnVisibility = &gated
	}
	return c
}

// DefaultConfig returns the fully populated default configuration for k.
func DefaultConfig(k EffectKind) EffectConfig {
	if !k.Valid() {
		return EffectConfig{}
	}
	return EffectConfig{}.withDefaults(k)
}

// Ptr returns a pointer to v. Handy for optional config fields such as
// GateOnVisibility.
func Ptr[T any](v T) *T {
	return &v
}

// Geometry is what handlers read about the node and viewport. Top and Left
// are relative to the viewport's top-left corner, so Top+ScrollY is the
// node's position in the scene.
type Geometry struct {
	Top, Left     float64
	Width, Height float64

	ScrollX, ScrollY float64

	WindowWidth, WindowHeight float64
}

// Input is the live pointer state plus the random source for jitter.
// Pointer coordinates are in viewport space.
type Input struct {
	PointerX, PointerY float64
	HasPointer         bool
	Rand               *rand.Rand
}

// float64 draws from Rand, falling back to the global source.
func (in Input) float64() float64 {
	if in.Rand != nil {
		return in.Rand.Float64()
	}
	return rand.Float64()
}

// Handler maps geometry, input, and configuration to a style patch. Handlers
// are pure apart from jitter's random draws.
type Handler func(g Geometry, in Input, cfg EffectConfig) StylePatch

// effectSpec is the registry entry for one kind.
type effectSpec struct {
	source    Source
	handler   Handler
	initial   func(cfg EffectConfig) StylePatch
	defaults  EffectConfig
	gated     bool
	debounced bool
}

var effectRegistry [numEffectKinds]effectSpec

func init() {
	scroll := func(h Handler, d EffectConfig) effectSpec {
		return effectSpec{source: SourceScroll, handler: h, initial: hiddenInitial(h), defaults: d, gated: true}
	}
	pointer := func(h Handler, d EffectConfig, gated bool) effectSpec {
		return effectSpec{source: SourcePointer, handler: h, defaults: d, gated: gated}
	}

	effectRegistry = [numEffectKinds]effectSpec{
		EffectFade:            scroll(fadeHandler, EffectConfig{Duration: 0.5, Ease: "out-quad", Trigger: 0.5, MaxTranslate: 50}),
		EffectFadeBottomRight: scroll(fadeBottomRightHandler, EffectConfig{Duration: 0.5, Ease: "out-quad", Trigger: 0.3, MaxTranslate: 50}),
		EffectSlideInRight:    scroll(slideInRightHandler, EffectConfig{Duration: 0.6, Ease: "out-cubic", Trigger: 0.3, MaxTranslate: 50}),
		EffectSlideInTopLeft:  scroll(slideInTopLeftHandler, EffectConfig{Duration: 0.6, Ease: "out-cubic", Trigger: 0.3, MaxTranslate: 50}),
		EffectScaleUp:         scroll(scaleUpHandler, EffectConfig{Duration: 0.5, Ease: "out-quad", Trigger: 0.2, MaxTranslate: 50}),
		EffectScaleUpBottom:   scroll(scaleUpBottomHandler, EffectConfig{Duration: 0.5, Ease: "out-quad", Trigger: 0.2, MaxTranslate: 50}),
		EffectScaleUpTopLeft:  scroll(scaleUpTopLeftHandler, EffectConfig{Duration: 0.5, Ease: "out-quad", Trigger: 0.2, MaxTranslate: 50}),
		EffectMoveScrollX:     {source: SourceScroll, handler: moveScrollXHandler, defaults: EffectConfig{Duration: 0.8, Ease: "out-sine", Radius: 20}, gated: true},
		EffectMoveScrollY:     {source: SourceScroll, handler: moveScrollYHandler, defaults: EffectConfig{Duration: 0.8, Ease: "out-sine", Radius: 20}, gated: true},
		EffectMoveScrollRandom: {
			source:    SourceScroll,
			handler:   moveScrollRandomHandler,
			defaults:  EffectConfig{Duration: 1.0, Ease: "in-out-sine", Radius: 20, Debounce: 100 * time.Millisecond},
			gated:     true,
			debounced: true,
		},
		EffectTiltScroll: {
			source:   SourceScroll,
			handler:  tiltScrollHandler,
			initial:  tiltScrollInitial,
			defaults: EffectConfig{Duration: 0.4, Ease: "out-quad", Offset: 0.06, DistanceTop: 200, Perspective: 800, MaxRotate: 30},
			gated:    true,
		},
		EffectMoveMouse:        pointer(moveMouseHandler, EffectConfig{Duration: 0.2, Ease: "out-quad", Radius: 10}, true),
		EffectTiltMouse:        pointer(tiltMouseHandler, EffectConfig{Duration: 0.2, Ease: "out-quad", Radius: 10, Perspective: 1000, TiltFactor: 0.02}, true),
		EffectPerspectiveCard:  pointer(perspectiveCardHandler, EffectConfig{Duration: 0.2, Ease: "out-quad", Radius: 15, Perspective: 1000, TiltFactor: 0.05}, false),
		EffectPerspectiveImage: pointer(perspectiveImageHandler, EffectConfig{Duration: 0.3, Ease: "out-quad", Radius: 10, Perspective: 2000, TiltFactor: 0.03}, false),
	}
}

// HandlerFor returns the style function registered for k, or nil.
func HandlerFor(k EffectKind) Handler {
	if !k.Valid() {
		return nil
	}
	return effectRegistry[k].handler
}

// --- Math helpers ---

// epsilon is the smallest denominator handlers divide by.
const epsilon = 1e-6

// clamp restricts v to [lo, hi]. NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// nonZero returns v, or epsilon when v is not positive.
func nonZero(v float64) float64 {
	if v < epsilon || math.IsNaN(v) {
		return epsilon
	}
	return v
}
