package gesture

import "time"

// Event is a synthesized gesture event. A separate copy is delivered to each
// collected target, differing only in CurrentTarget, LocalX/LocalY and Props.
type Event struct {
	Type    EventType
	Pointer Pointer
	// Target is the raw input target the occurrence was resolved to.
	Target any
	// CurrentTarget is the node whose listeners are receiving this copy.
	CurrentTarget any
	TimeStamp     time.Time
	// LocalX and LocalY are the pointer position relative to the receiving
	// eventable's Options().Origin.
	LocalX, LocalY float64
	Modifiers      KeyModifiers
	// Props holds the extra fields contributed by collected target entries,
	// merged in collection order up to and including the current one.
	Props map[string]any
	// Double is set on a tap that also produced a doubletap.
	Double bool
	// DT is the press duration for taps and the gap since the previous tap
	// for doubletaps.
	DT time.Duration
	// Count numbers hold events for one press, starting at 1.
	Count  int
	Native any

	session *Session
	prop    *propagation
}

type propagation struct {
	stopped   bool
	immediate bool
}

// NewEvent constructs a gesture event of type t for raw. s may be nil; when
// set, taps are classified against its tap history and doubletaps measure DT
// from its last tap. The returned event has not been dispatched.
func NewEvent(t EventType, raw RawEvent, s *Session) *Event {
	ev := &Event{
		Type:      t,
		Pointer:   raw.Pointer,
		Target:    raw.Target,
		TimeStamp: raw.Time,
		Modifiers: raw.Modifiers,
		Native:    raw.Native,
		session:   s,
		prop:      &propagation{},
	}
	if s == nil {
		return ev
	}
	if ev.TimeStamp.IsZero() {
		ev.TimeStamp = s.clock.Now()
	}
	switch t {
	case EventTap:
		if rec := s.pointers.find(raw.Pointer.ID); rec != nil && rec.Down {
			ev.DT = ev.TimeStamp.Sub(rec.DownTime)
		}
		ev.Double = s.isDoubleTap(ev.Target, ev.TimeStamp)
	case EventDoubleTap:
		if !s.tapTime.IsZero() {
			ev.DT = ev.TimeStamp.Sub(s.tapTime)
		}
	}
	return ev
}

// Session returns the session that produced the event, if any.
func (e Event) Session() *Session {
	return e.session
}

// Prop returns an extra field contributed by a target entry.
func (e Event) Prop(name string) (any, bool) {
	v, ok := e.Props[name]
	return v, ok
}

// StopPropagation stops delivery once every entry for the current node has
// been notified.
func (e Event) StopPropagation() {
	if e.prop != nil {
		e.prop.stopped = true
	}
}

// StopImmediatePropagation stops delivery right after the current listener.
func (e Event) StopImmediatePropagation() {
	if e.prop != nil {
		e.prop.stopped = true
		e.prop.immediate = true
	}
}

// PropagationStopped reports whether a listener stopped propagation.
func (e Event) PropagationStopped() bool {
	return e.prop != nil && e.prop.stopped
}

func (e Event) immediateStopped() bool {
	return e.prop != nil && e.prop.immediate
}

func (e *Event) raw() RawEvent {
	return RawEvent{
		Pointer:   e.Pointer,
		Target:    e.Target,
		Time:      e.TimeStamp,
		Modifiers: e.Modifiers,
		Native:    e.Native,
	}
}
