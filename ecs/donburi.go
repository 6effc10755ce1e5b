package ecs

import (
	"github.com/phanxgames/reveal"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// VisibilityEventType is the Donburi event type for tracker state changes.
var VisibilityEventType = events.NewEventType[reveal.VisibilityEvent]()

// EffectEventType is the Donburi event type for effects attaching to and
// detaching from their input source.
var EffectEventType = events.NewEventType[reveal.EffectEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Events are queued and delivered by events.ProcessAllEvents or the
// per-type ProcessEvents.
func NewDonburiStore(world donburi.World) reveal.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitVisibility(event reveal.VisibilityEvent) {
	VisibilityEventType.Publish(s.world, event)
}

func (s *donburiStore) EmitEffect(event reveal.EffectEvent) {
	EffectEventType.Publish(s.world, event)
}
