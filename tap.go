package gesture

import "time"

// tapEligible reports whether releasing rec over raw.Target completes a tap:
// the pointer was pressed, stayed within the move tolerance, was not consumed
// by another behavior, and is released over the node it was pressed on.
func (s *Session) tapEligible(rec *PointerRecord, raw RawEvent) bool {
	if !rec.Down || rec.Moved || rec.Consumed {
		return false
	}
	return sameTarget(rec.DownTarget, raw.Target)
}

// isDoubleTap reports whether a tap on target at now pairs with the previous
// tap. Only the single most recent tap is considered.
func (s *Session) isDoubleTap(target any, now time.Time) bool {
	if s.prevTap == nil || s.tapTime.IsZero() {
		return false
	}
	if !sameTarget(s.prevTap.Target, target) {
		return false
	}
	return now.Sub(s.tapTime) <= s.cfg.DoubleTapThreshold
}

// afterTap runs once all targets of a tap have been notified: it dispatches
// the doubletap when the tap paired with the previous one, then records the
// tap as the session's most recent.
func (s *Session) afterTap(ev *Event) {
	if ev.Double {
		s.Fire(EventDoubleTap, ev.raw())
	}
	s.tapTime = ev.TimeStamp
	s.prevTap = ev
}
