package gesture

import (
	"fmt"
	"maps"
)

// Fire collects targets for an event of type t and dispatches a new event to
// them. It returns the dispatched event, or nil when no target was collected.
func (s *Session) Fire(t EventType, raw RawEvent) *Event {
	raw = s.stamp(raw)
	return s.FireTargets(t, raw, s.Collect(t, raw))
}

// FireTargets dispatches a new event of type t to already collected targets.
// It returns nil without dispatching when targets is empty.
func (s *Session) FireTargets(t EventType, raw RawEvent, targets []TargetEntry) *Event {
	if len(targets) == 0 {
		return nil
	}
	ev := NewEvent(t, s.stamp(raw), s)
	s.FireEvent(ev, targets)
	return ev
}

// FireEvent dispatches a pre-built event to targets, in order. Each target
// gets its own copy with CurrentTarget set to the entry's node and the
// entries' props merged so far; listeners run synchronously. When ev is a
// tap, the session's tap time and previous tap are updated once, after every
// target has been notified.
func (s *Session) FireEvent(ev *Event, targets []TargetEntry) {
	if ev == nil || len(targets) == 0 {
		return
	}
	if ev.prop == nil {
		ev.prop = &propagation{}
	}
	if ev.session == nil {
		ev.session = s
	}

	var props map[string]any
	for i, entry := range targets {
		if len(entry.Props) > 0 {
			if props == nil {
				props = make(map[string]any, len(entry.Props))
			}
			maps.Copy(props, entry.Props)
		}
		if entry.Eventable == nil {
			continue
		}

		e := *ev
		e.CurrentTarget = entry.Node
		e.Props = maps.Clone(props)
		origin := entry.Eventable.Options().Origin
		e.LocalX = ev.Pointer.X - origin.X
		e.LocalY = ev.Pointer.Y - origin.Y

		s.fireEntry(entry.Eventable, e)
		if s.sink != nil {
			s.sink.EmitEvent(e)
		}

		if ev.prop.immediate {
			break
		}
		if ev.prop.stopped && i+1 < len(targets) && !sameTarget(targets[i+1].Node, entry.Node) {
			break
		}
	}

	if s.debug {
		s.debugLog(ev, len(targets))
	}

	if ev.Type == EventTap {
		s.afterTap(ev)
	}
}

// fireEntry isolates one eventable: a panic escaping its Fire is logged and
// delivery continues with the next target.
func (s *Session) fireEntry(eventable Eventable, e Event) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("gesture: eventable panicked",
				"type", e.Type.String(),
				"pointer", int(e.Pointer.ID),
				"panic", fmt.Sprint(r))
		}
	}()
	eventable.Fire(e)
}
