package gesture

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"
)

// ErrNotRawType is returned by Session.Process for synthesized event types.
var ErrNotRawType = errors.New("gesture: not a raw occurrence type")

// EventSink is an optional bridge that observes every delivered event,
// one call per target.
type EventSink interface {
	EmitEvent(ev Event)
}

// Session is one logical interaction context: it tracks active pointers,
// their hold timers, and tap history, and dispatches gesture events.
//
// A Session is not safe for concurrent use. Call it from one goroutine (the
// game loop, or a Loop); hold timers that fire elsewhere are queued and
// delivered by the next call that processes input, by Flush, or by Update.
type Session struct {
	cfg    Config
	clock  Clock
	logger *slog.Logger
	debug  bool

	pointers   pointerRegistry
	tapTime    time.Time
	prevTap    *Event
	collectors collectorRegistry
	sink       EventSink

	holds   holdQueue
	wake    chan struct{}
	holdGen uint64
}

// NewSession creates a session. Zero Config fields take their defaults.
func NewSession(cfg Config) *Session {
	cfg = cfg.withDefaults()
	return &Session{
		cfg:    cfg,
		clock:  cfg.Clock,
		logger: cfg.Logger,
		wake:   make(chan struct{}, 1),
	}
}

// Clock returns the clock stamping this session's events.
func (s *Session) Clock() Clock {
	return s.clock
}

// SetEventSink sets the optional event bridge. Nil disables it.
func (s *Session) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetDebugMode enables or disables per-dispatch debug logging.
func (s *Session) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetDoubleTapThreshold changes the doubletap window.
func (s *Session) SetDoubleTapThreshold(d time.Duration) {
	if d > 0 {
		s.cfg.DoubleTapThreshold = d
	}
}

// SetMoveTolerance changes how far a down pointer may travel and still tap.
func (s *Session) SetMoveTolerance(pixels float64) {
	if pixels >= 0 {
		s.cfg.MoveTolerance = pixels
	}
}

// Pointers returns a snapshot of the tracked pointers in first-seen order.
func (s *Session) Pointers() []PointerRecord {
	out := make([]PointerRecord, s.pointers.len())
	for i := range out {
		out[i] = *s.pointers.at(i)
	}
	return out
}

// Pointer returns a snapshot of the record for id.
func (s *Session) Pointer(id PointerID) (PointerRecord, bool) {
	rec := s.pointers.find(id)
	if rec == nil {
		return PointerRecord{}, false
	}
	return *rec, true
}

// TapTime returns the timestamp of the last fired tap. ok is false until a
// tap has fired.
func (s *Session) TapTime() (t time.Time, ok bool) {
	return s.tapTime, !s.tapTime.IsZero()
}

// PrevTap returns the last fired tap event, or nil.
func (s *Session) PrevTap() *Event {
	return s.prevTap
}

// ConsumePointer marks a down pointer as taken over by another behavior
// (a drag, a pinch); its release will not produce a tap.
func (s *Session) ConsumePointer(id PointerID) {
	if rec := s.pointers.find(id); rec != nil && rec.Down {
		rec.Consumed = true
	}
}

// HoldProgress reports how far the armed hold timer of pointer id has run,
// in [0, 1]. After the first hold of a repeating press it measures the
// current repeat interval. ok is false when the pointer has no pending hold.
func (s *Session) HoldProgress(id PointerID) (progress float64, ok bool) {
	rec := s.pointers.find(id)
	if rec == nil || !rec.Hold.Pending || rec.Hold.span <= 0 {
		return 0, false
	}
	elapsed := s.clock.Now().Sub(rec.Hold.start)
	return math.Min(1, math.Max(0, float64(elapsed)/float64(rec.Hold.span))), true
}

// Process routes a raw occurrence to the matching Pointer* method.
func (s *Session) Process(t EventType, raw RawEvent) error {
	switch t {
	case EventDown:
		s.PointerDown(raw)
	case EventMove:
		s.PointerMove(raw)
	case EventUp:
		s.PointerUp(raw)
	case EventCancel:
		s.PointerCancel(raw)
	default:
		return fmt.Errorf("process %s: %w", t, ErrNotRawType)
	}
	return nil
}

// PointerDown starts tracking raw.Pointer, restarts its hold timer and
// dispatches down.
func (s *Session) PointerDown(raw RawEvent) {
	s.Flush()
	raw = s.stamp(raw)

	i, _ := s.pointers.upsert(raw.Pointer.ID)
	rec := s.pointers.at(i)
	s.cancelHold(rec)
	rec.Hold = HoldState{Duration: HoldInfinite}
	rec.Down = true
	rec.DownTime = raw.Time
	rec.DownTarget = raw.Target
	rec.StartX, rec.StartY = raw.Pointer.X, raw.Pointer.Y
	rec.Moved = false
	rec.Consumed = false
	s.remember(rec, raw)

	s.startHold(rec, raw)
	s.Fire(EventDown, raw)
}

// PointerMove updates raw.Pointer and dispatches move when it changed
// position. A repeated sample at the same position dispatches nothing.
// The hold timer is left alone.
func (s *Session) PointerMove(raw RawEvent) {
	s.Flush()
	raw = s.stamp(raw)

	i, added := s.pointers.upsert(raw.Pointer.ID)
	rec := s.pointers.at(i)
	if !added && raw.Pointer.X == rec.LastX && raw.Pointer.Y == rec.LastY {
		return
	}
	if rec.Down && !rec.Moved {
		dx := raw.Pointer.X - rec.StartX
		dy := raw.Pointer.Y - rec.StartY
		if math.Sqrt(dx*dx+dy*dy) > s.cfg.MoveTolerance {
			rec.Moved = true
		}
	}
	s.remember(rec, raw)
	s.Fire(EventMove, raw)
}

// PointerUp cancels the hold timer, dispatches up, then tap (and doubletap)
// when the press qualifies, and stops tracking the pointer.
func (s *Session) PointerUp(raw RawEvent) {
	s.Flush()
	raw = s.stamp(raw)

	rec := s.pointers.find(raw.Pointer.ID)
	if rec != nil {
		s.cancelHold(rec)
		s.remember(rec, raw)
	}
	s.Fire(EventUp, raw)
	if rec != nil && s.tapEligible(rec, raw) {
		s.Fire(EventTap, raw)
	}
	s.pointers.remove(raw.Pointer.ID)
}

// PointerCancel cancels the hold timer, dispatches cancel and stops tracking
// the pointer. Cancelled pointers never tap.
func (s *Session) PointerCancel(raw RawEvent) {
	s.Flush()
	raw = s.stamp(raw)

	if rec := s.pointers.find(raw.Pointer.ID); rec != nil {
		s.cancelHold(rec)
	}
	s.Fire(EventCancel, raw)
	s.pointers.remove(raw.Pointer.ID)
}

// CancelAll cancels every tracked pointer that is down, in first-seen order.
func (s *Session) CancelAll(target any) {
	var down []PointerRecord
	for _, rec := range s.pointers.records {
		if rec.Down {
			down = append(down, *rec)
		}
	}
	for _, rec := range down {
		s.PointerCancel(RawEvent{Pointer: rec.pointer, Target: target, Modifiers: rec.modifiers})
	}
}

// Update advances a FrameClock by dt (other clocks ignore dt) and delivers
// any hold timers that came due. Call it once per frame.
func (s *Session) Update(dt time.Duration) {
	if fc, ok := s.clock.(*FrameClock); ok {
		fc.Advance(dt)
	}
	s.Flush()
}

// Wake returns a channel that receives a value whenever a hold timer fires.
// Owners running their own loop should call Flush when it does.
func (s *Session) Wake() <-chan struct{} {
	return s.wake
}

func (s *Session) stamp(raw RawEvent) RawEvent {
	if raw.Time.IsZero() {
		raw.Time = s.clock.Now()
	}
	return raw
}

func (s *Session) remember(rec *PointerRecord, raw RawEvent) {
	rec.LastX, rec.LastY = raw.Pointer.X, raw.Pointer.Y
	rec.pointer = raw.Pointer
	rec.native = raw.Native
	rec.modifiers = raw.Modifiers
}
