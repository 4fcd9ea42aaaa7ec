package gesture

import (
	"sync"
	"time"
)

// holdFire is a hold timer that came due. gen must still match the record's
// token when the fire is delivered, otherwise the fire is stale.
type holdFire struct {
	rec *PointerRecord
	gen uint64
	at  time.Time
}

// holdQueue is the only session state touched from timer goroutines.
type holdQueue struct {
	mu  sync.Mutex
	due []holdFire
}

func (q *holdQueue) push(f holdFire) {
	q.mu.Lock()
	q.due = append(q.due, f)
	q.mu.Unlock()
}

func (q *holdQueue) drain() []holdFire {
	q.mu.Lock()
	due := q.due
	q.due = nil
	q.mu.Unlock()
	return due
}

// startHold picks the shortest hold duration among the hold targets of raw
// and schedules it. Nothing is scheduled when no target wants hold.
func (s *Session) startHold(rec *PointerRecord, raw RawEvent) {
	targets := s.Collect(EventHold, raw)
	if len(targets) == 0 {
		return
	}
	minDuration := HoldInfinite
	for _, t := range targets {
		if t.Eventable == nil {
			continue
		}
		if d := t.Eventable.Options().holdDuration(); d < minDuration {
			minDuration = d
		}
	}
	rec.Hold.Duration = minDuration
	s.scheduleHold(rec, minDuration)
}

// scheduleHold replaces any pending timer on rec with one firing after d.
func (s *Session) scheduleHold(rec *PointerRecord, d time.Duration) {
	s.cancelHold(rec)
	if d == HoldInfinite {
		return
	}
	s.holdGen++
	gen := s.holdGen
	rec.Hold.gen = gen
	rec.Hold.Pending = true
	rec.Hold.start = s.clock.Now()
	rec.Hold.span = d

	clock := s.clock
	rec.Hold.timer = clock.AfterFunc(d, func() {
		s.holds.push(holdFire{rec: rec, gen: gen, at: clock.Now()})
		select {
		case s.wake <- struct{}{}:
		default:
		}
	})
}

// cancelHold stops rec's pending timer. Bumping the token makes a callback
// that already escaped Stop harmless.
func (s *Session) cancelHold(rec *PointerRecord) {
	if rec.Hold.timer != nil {
		rec.Hold.timer.Stop()
		rec.Hold.timer = nil
	}
	if rec.Hold.Pending {
		s.holdGen++
		rec.Hold.gen = s.holdGen
		rec.Hold.Pending = false
	}
}

// Flush delivers hold timers that fired since the last call. Stale fires,
// for pointers released or re-pressed since, are dropped.
func (s *Session) Flush() {
	for _, f := range s.holds.drain() {
		rec := f.rec
		if !rec.Hold.Pending || rec.Hold.gen != f.gen || !s.pointers.contains(rec) {
			continue
		}
		rec.Hold.Pending = false
		rec.Hold.timer = nil
		s.fireHold(rec, f.at)
	}
}

// fireHold dispatches a hold to the targets whose hold duration matches the
// one chosen at press time, then re-arms the timer when any of them repeats.
func (s *Session) fireHold(rec *PointerRecord, at time.Time) {
	raw := RawEvent{
		Pointer:   rec.pointer,
		Target:    rec.DownTarget,
		Time:      at,
		Modifiers: rec.modifiers,
		Native:    rec.native,
	}
	all := s.Collect(EventHold, raw)
	targets := all[:0:0]
	repeat := HoldInfinite
	for _, t := range all {
		if t.Eventable == nil {
			continue
		}
		opts := t.Eventable.Options()
		if opts.holdDuration() != rec.Hold.Duration {
			continue
		}
		targets = append(targets, t)
		if opts.HoldRepeatInterval > 0 && opts.HoldRepeatInterval < repeat {
			repeat = opts.HoldRepeatInterval
		}
	}
	if len(targets) == 0 {
		return
	}

	rec.Hold.count++
	ev := NewEvent(EventHold, raw, s)
	ev.Count = rec.Hold.count
	s.FireEvent(ev, targets)

	// A listener may have released or re-pressed the pointer.
	if repeat != HoldInfinite && !rec.Hold.Pending && s.pointers.contains(rec) && rec.Down {
		s.scheduleHold(rec, repeat)
	}
}
