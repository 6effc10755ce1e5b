package reveal

// Effect is one effect kind mounted on one node. It owns the node's
// visibility tracker (when gated), its source subscription while attached,
// and its pending frame request.
//
// Lifecycle:
//
//	Unobserved ──observe──► Hidden ◄──────► Visible
//	     ▲                    │                │
//	     └──── Unmount ◄──────┴────────────────┘
//
// Listeners attach on entering Visible and detach, cancelling pending work,
// on leaving it and on Unmount. Ungated effects attach on Mount.
type Effect struct {
	scene *Scene
	node  *Node
	kind  EffectKind
	cfg   EffectConfig
	spec  *effectSpec

	tracker   *VisibilityTracker
	visHandle CallbackHandle

	sub      Subscription
	attached bool
	mounted  bool

	req    FrameRequest
	last   StylePatch
	active bool
	runs   int
}

// Mount attaches an effect of the given kind to node and applies its
// initial style. Zero fields in cfg take the kind's defaults. Panics if node
// is nil or disposed, or kind is unknown.
func (s *Scene) Mount(node *Node, kind EffectKind, cfg EffectConfig) *Effect {
	if node == nil {
		panic("reveal: cannot mount effect on nil node")
	}
	if node.disposed {
		panic("reveal: cannot mount effect on disposed node")
	}
	if !kind.Valid() {
		panic("reveal: unknown effect kind " + kind.String())
	}
	e := &Effect{
		scene:   s,
		node:    node,
		kind:    kind,
		cfg:     cfg.withDefaults(kind),
		spec:    &effectRegistry[kind],
		mounted: true,
	}
	node.effects = append(node.effects, e)
	s.effects = append(s.effects, e)

	if e.spec.initial != nil {
		ApplyPatch(node, e.spec.initial(e.cfg))
	}

	if *e.cfg.GateOnVisibility {
		e.tracker = s.Observe(node)
		e.visHandle = e.tracker.OnChange(e.visibilityChanged)
		if e.tracker.Visible() {
			e.attach()
		}
	} else {
		e.attach()
	}
	return e
}

// Wrap mounts an effect on the single child of wrapper. Panics unless
// wrapper has exactly one child.
func (s *Scene) Wrap(wrapper *Node, kind EffectKind, cfg EffectConfig) *Effect {
	if wrapper == nil {
		panic("reveal: cannot wrap nil node")
	}
	if len(wrapper.children) != 1 {
		panic("reveal: wrapper must have exactly one child")
	}
	return s.Mount(wrapper.children[0], kind, cfg)
}

// Unmount detaches listeners, cancels pending work, and disconnects the
// visibility tracker. The node keeps its current style. Safe to call more
// than once.
func (e *Effect) Unmount() {
	if !e.mounted {
		return
	}
	e.detach()
	e.scene.scheduler.Cancel(e.req)
	e.req = FrameRequest{}
	if e.tracker != nil {
		e.visHandle.Remove()
		e.tracker.Disconnect()
	}
	e.mounted = false
	e.node.removeEffect(e)
	e.scene.removeEffect(e)
}

// Kind returns the effect kind.
func (e *Effect) Kind() EffectKind {
	return e.kind
}

// Node returns the host node.
func (e *Effect) Node() *Node {
	return e.node
}

// Config returns the effective configuration, defaults included.
func (e *Effect) Config() EffectConfig {
	return e.cfg
}

// Mounted reports whether the effect is still mounted.
func (e *Effect) Mounted() bool {
	return e.mounted
}

// Attached reports whether the effect is currently listening to its source.
func (e *Effect) Attached() bool {
	return e.attached
}

// State returns the visibility state that gates the effect. Ungated effects
// are Visible for as long as they are mounted.
func (e *Effect) State() VisibilityState {
	if !e.mounted {
		return VisibilityUnobserved
	}
	if e.tracker == nil {
		return VisibilityVisible
	}
	return e.tracker.State()
}

// Active reports the tilt-on-scroll sub-state as of the last computation.
// Always false for other kinds.
func (e *Effect) Active() bool {
	return e.active
}

// Last returns the most recently applied patch.
func (e *Effect) Last() StylePatch {
	return e.last
}

// Runs returns how many times the effect has computed and applied a patch.
func (e *Effect) Runs() int {
	return e.runs
}

func (e *Effect) visibilityChanged(st VisibilityState) {
	if st == VisibilityVisible {
		e.attach()
	} else {
		e.detach()
	}
}

// attach subscribes to the effect's source and schedules an immediate
// computation so the node reflects the current geometry. No-op if already
// attached.
func (e *Effect) attach() {
	if e.attached || !e.mounted {
		return
	}
	e.sub = e.scene.subs.Subscribe(e.spec.source, e.onEvent)
	e.attached = true
	e.scene.effectAttached(e, true)
	e.request()
}

// detach removes the subscription and cancels pending work. No-op if not
// attached.
func (e *Effect) detach() {
	if !e.attached {
		return
	}
	e.sub.Remove()
	e.sub = Subscription{}
	e.scene.scheduler.Cancel(e.req)
	e.req = FrameRequest{}
	e.attached = false
	e.scene.effectAttached(e, false)
}

func (e *Effect) onEvent(Event) {
	if !e.attached {
		return
	}
	e.request()
}

func (e *Effect) request() {
	key := FrameKey{NodeID: e.node.ID, Kind: e.kind, Source: e.spec.source}
	if e.spec.debounced {
		e.req = e.scene.scheduler.Debounce(key, e.cfg.Debounce, e.run)
		return
	}
	e.req = e.scene.scheduler.Schedule(key, e.run)
}

// run computes and applies one patch. A node that is detached, disposed, or
// not yet sized is skipped for this frame.
func (e *Effect) run() {
	e.req = FrameRequest{}
	if !e.mounted || !e.attached {
		return
	}
	if !e.scene.hostReady(e.node) {
		return
	}
	g := e.scene.geometry(e.node)
	in := e.scene.input()
	if e.kind == EffectTiltScroll {
		e.active = tiltActive(g, e.cfg)
	}
	p := e.spec.handler(g, in, e.cfg)
	e.last = p
	e.runs++
	ApplyPatch(e.node, p)
}

func (s *Scene) removeEffect(e *Effect) {
	for i, m := range s.effects {
		if m == e {
			copy(s.effects[i:], s.effects[i+1:])
			s.effects[len(s.effects)-1] = nil
			s.effects = s.effects[:len(s.effects)-1]
			return
		}
	}
}
