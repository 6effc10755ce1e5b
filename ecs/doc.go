// Package ecs provides ECS adapters for reveal's visibility and effect
// lifecycle events.
//
// The primary adapter is [NewDonburiStore], which bridges reveal events
// into a [Donburi] world as typed events. Subscribe to [VisibilityEventType]
// or [EffectEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
