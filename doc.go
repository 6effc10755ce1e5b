// Package reveal is a viewport-reactive animation engine for [Ebitengine].
//
// Reveal attaches effects to nodes. An effect is a pure function from
// geometry (the node's layout box, the scroll offsets, the window size) and
// input (the pointer) to a style patch: opacity, a transform, and a
// transition. Wiring that function to the screen is shared by every effect:
//
//   - A [VisibilityTracker] observes the node against the viewport grown by
//     the scene's root margin (600 pixels below by default).
//   - While the node is visible the effect subscribes to its input source
//     through the [SubscriptionManager]. The first subscriber for a source
//     attaches its dispatcher; the last one to leave detaches it.
//   - Each event requests a computation from the [FrameScheduler]. Requests
//     for the same node and kind collapse to one per frame; jitter effects
//     debounce instead.
//   - The computed patch is applied to [Node.Style], tweened with [gween].
//
// # Quick start
//
//	scene := reveal.NewScene()
//	scene.SetViewport(reveal.NewViewport(800, 600))
//
//	card := reveal.NewBox("card", 200, 120, reveal.ColorWhite)
//	card.SetPosition(300, 900)
//	scene.Root().AddChild(card)
//
//	scene.Mount(card, reveal.EffectFadeBottomRight, reveal.EffectConfig{})
//
//	reveal.Run(scene, reveal.RunConfig{Title: "Reveal", Width: 800, Height: 600})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Effects
//
// Scroll-position effects ([EffectFade] through [EffectScaleUpTopLeft])
// reveal a node as it rises into view. Lateral effects ([EffectMoveScrollX],
// [EffectMoveScrollY]) drift by the node's distance from the viewport
// center. [EffectMoveScrollRandom] jitters once scrolling settles.
// [EffectTiltScroll] flattens a 3-D tilt as the node nears the top.
//
// Pointer effects ([EffectMoveMouse], [EffectTiltMouse],
// [EffectPerspectiveCard], [EffectPerspectiveImage]) follow the cursor. The
// card and image kinds are not gated on visibility by default.
//
// Configurations can be loaded by name from YAML with [LoadPresets].
//
// # Testing
//
// [Scene.InjectScroll], [Scene.InjectScrollTo], and [Scene.InjectPointer]
// replace real input one frame at a time. [LoadTestScript] sequences them
// from JSON.
//
// ECS integration is available via the [Donburi] adapter in reveal/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package reveal
