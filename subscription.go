package reveal

// Event is delivered to source subscribers once per frame in which the
// source changed.
type Event struct {
	Source           Source
	ScrollX, ScrollY float64
	PointerX         float64
	PointerY         float64
}

type subscriber struct {
	id uint32
	fn func(Event)
}

// SubscriptionManager keeps one dispatcher per input source, shared by every
// effect in a scene. A dispatcher is attached when its first subscriber
// arrives and detached when the last one leaves; the scene only polls the
// input behind an attached dispatcher.
type SubscriptionManager struct {
	subs     [numSources][]subscriber
	attached [numSources]bool
	nextID   uint32

	// onDispatcher is called whenever a dispatcher attaches or detaches.
	onDispatcher func(src Source, attached bool)

	dispatchBuf []subscriber
}

// Subscription allows removing a registered source listener.
type Subscription struct {
	id     uint32
	source Source
	mgr    *SubscriptionManager
}

// Subscribe registers fn for the given source.
func (m *SubscriptionManager) Subscribe(src Source, fn func(Event)) Subscription {
	if src >= numSources {
		panic("reveal: unknown event source")
	}
	m.nextID++
	id := m.nextID
	m.subs[src] = append(m.subs[src], subscriber{id: id, fn: fn})
	if !m.attached[src] {
		m.attached[src] = true
		if m.onDispatcher != nil {
			m.onDispatcher(src, true)
		}
	}
	return Subscription{id: id, source: src, mgr: m}
}

// Remove unregisters this listener. Removing twice, or removing the zero
// Subscription, is a no-op.
func (h Subscription) Remove() {
	if h.mgr == nil {
		return
	}
	m := h.mgr
	s := m.subs[h.source]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = subscriber{}
			m.subs[h.source] = s[:len(s)-1]
			break
		}
	}
	if len(m.subs[h.source]) == 0 && m.attached[h.source] {
		m.attached[h.source] = false
		if m.onDispatcher != nil {
			m.onDispatcher(h.source, false)
		}
	}
}

// Count returns the number of listeners registered for src.
func (m *SubscriptionManager) Count(src Source) int {
	if src >= numSources {
		return 0
	}
	return len(m.subs[src])
}

// Attached reports whether the dispatcher for src is attached.
func (m *SubscriptionManager) Attached(src Source) bool {
	if src >= numSources {
		return false
	}
	return m.attached[src]
}

// dispatch delivers ev to every listener of its source. Listeners removed
// during dispatch still receive this event; listeners added during dispatch
// do not.
func (m *SubscriptionManager) dispatch(ev Event) {
	if !m.attached[ev.Source] {
		return
	}
	buf := append(m.dispatchBuf[:0], m.subs[ev.Source]...)
	for _, s := range buf {
		s.fn(ev)
	}
	clear(buf)
	m.dispatchBuf = buf[:0]
}
