package gesture

// TargetEntry is one receiver of a dispatched event: a node, the eventable
// holding its listeners, and extra fields merged onto the event.
type TargetEntry struct {
	Node      any
	Eventable Eventable
	Props     map[string]any
}

// CollectContext is passed to every collector for one occurrence. Collectors
// append to Targets; they run once per node of the target's path.
type CollectContext struct {
	Session     *Session
	Type        EventType
	Pointer     Pointer
	Native      any
	EventTarget any
	// Node is the path node currently being offered.
	Node    any
	Targets []TargetEntry
}

// Collector resolves targets for an occurrence.
type Collector func(ctx *CollectContext)

type collectorEntry struct {
	id uint32
	fn Collector
}

type collectorRegistry struct {
	entries []collectorEntry
	nextID  uint32
}

func (r *collectorRegistry) add(fn Collector) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.entries = append(r.entries, collectorEntry{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r}
}

func (r *collectorRegistry) remove(id uint32) {
	s := r.entries
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = collectorEntry{}
			r.entries = s[:len(s)-1]
			return
		}
	}
}

// OnCollect registers a collector. Collectors run in registration order.
func (s *Session) OnCollect(fn Collector) CallbackHandle {
	if fn == nil {
		return CallbackHandle{}
	}
	return s.collectors.add(fn)
}

// Collect gathers the targets that should receive an event of type t for raw.
// An empty result means the occurrence is dropped.
func (s *Session) Collect(t EventType, raw RawEvent) []TargetEntry {
	ctx := &CollectContext{
		Session:     s,
		Type:        t,
		Pointer:     raw.Pointer,
		Native:      raw.Native,
		EventTarget: raw.Target,
	}
	if len(s.collectors.entries) == 0 {
		return nil
	}
	entries := make([]collectorEntry, len(s.collectors.entries))
	copy(entries, s.collectors.entries)

	for _, node := range s.path(raw.Target) {
		ctx.Node = node
		for _, c := range entries {
			c.fn(ctx)
		}
	}
	return ctx.Targets
}

func (s *Session) path(target any) []any {
	if s.cfg.Path != nil {
		return s.cfg.Path(target)
	}
	return []any{target}
}
