package gesture

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

type sinkRecorder struct {
	events []Event
}

func (r *sinkRecorder) EmitEvent(ev Event) { r.events = append(r.events, ev) }

func TestFireEmptyCollectionDropped(t *testing.T) {
	s, _, _ := newTestSession()
	sink := &sinkRecorder{}
	s.SetEventSink(sink)

	if ev := s.Fire(EventDown, rawAt(1, 0, 0, &node{"nobody"})); ev != nil {
		t.Errorf("Fire with no targets = %+v, want nil", ev)
	}
	if len(sink.events) != 0 {
		t.Errorf("sink received %d events, want 0", len(sink.events))
	}
}

func TestFireCurrentTargetAndProps(t *testing.T) {
	child, parent := &node{"child"}, &node{"parent"}
	clock := NewFrameClock(testEpoch)
	s := NewSession(Config{
		Clock: clock,
		Path:  func(any) []any { return []any{child, parent} },
	})
	nt := NewNodeTargets()
	s.OnCollect(nt.Collect)

	lc := NewListeners(Options{Origin: Vec2{X: 10, Y: 20}})
	lp := NewListeners(Options{})
	nt.Add(child, lc, map[string]any{"depth": 0, "child": true})
	nt.Add(parent, lp, map[string]any{"depth": 1})

	var rc, rp recorder
	rc.listen(lc, EventDown)
	rp.listen(lp, EventDown)

	ev := s.Fire(EventDown, rawAt(1, 15, 25, child))
	if ev == nil {
		t.Fatal("Fire returned nil")
	}
	if len(rc.events) != 1 || len(rp.events) != 1 {
		t.Fatalf("deliveries = %d/%d, want 1/1", len(rc.events), len(rp.events))
	}

	ce, pe := rc.events[0], rp.events[0]
	if ce.CurrentTarget != child || pe.CurrentTarget != parent {
		t.Errorf("CurrentTarget = %v/%v, want child/parent", ce.CurrentTarget, pe.CurrentTarget)
	}
	if ce.Target != child || pe.Target != child {
		t.Errorf("Target = %v/%v, want child for both", ce.Target, pe.Target)
	}
	if ce.LocalX != 5 || ce.LocalY != 5 {
		t.Errorf("child local = (%v, %v), want (5, 5)", ce.LocalX, ce.LocalY)
	}
	if pe.LocalX != 15 || pe.LocalY != 25 {
		t.Errorf("parent local = (%v, %v), want (15, 25)", pe.LocalX, pe.LocalY)
	}
	if d, _ := ce.Prop("depth"); d != 0 {
		t.Errorf("child depth = %v, want 0", d)
	}
	if d, _ := pe.Prop("depth"); d != 1 {
		t.Errorf("parent depth = %v, want 1", d)
	}
	if _, ok := pe.Prop("child"); !ok {
		t.Error("props from earlier entries should accumulate")
	}
	if !ce.TimeStamp.Equal(testEpoch) {
		t.Errorf("TimeStamp = %v, want %v", ce.TimeStamp, testEpoch)
	}
	if ce.Session() != s {
		t.Error("Session() not set")
	}
}

func TestFireStopPropagation(t *testing.T) {
	child, parent := &node{"child"}, &node{"parent"}
	s := NewSession(Config{
		Clock: NewFrameClock(testEpoch),
		Path:  func(any) []any { return []any{child, parent} },
	})
	nt := NewNodeTargets()
	s.OnCollect(nt.Collect)

	var order []string
	first := nt.Listen(child)
	first.On(EventDown, func(e Event) {
		order = append(order, "child1")
		e.StopPropagation()
	})
	nt.Listen(child).On(EventDown, func(Event) { order = append(order, "child2") })
	nt.Listen(parent).On(EventDown, func(Event) { order = append(order, "parent") })

	s.Fire(EventDown, rawAt(1, 0, 0, child))
	if strings.Join(order, ",") != "child1,child2" {
		t.Errorf("order = %v, want [child1 child2]", order)
	}
}

func TestFireStopImmediatePropagation(t *testing.T) {
	a := &node{"a"}
	s, _, nt := newTestSession()

	var order []string
	nt.Listen(a).On(EventDown, func(e Event) {
		order = append(order, "first")
		e.StopImmediatePropagation()
	})
	nt.Listen(a).On(EventDown, func(Event) { order = append(order, "second") })

	s.Fire(EventDown, rawAt(1, 0, 0, a))
	if strings.Join(order, ",") != "first" {
		t.Errorf("order = %v, want [first]", order)
	}
}

func TestFirePanicIsolationAcrossTargets(t *testing.T) {
	var buf bytes.Buffer
	clock := NewFrameClock(testEpoch)
	s := NewSession(Config{Clock: clock, Logger: slog.New(slog.NewTextHandler(&buf, nil))})
	nt := NewNodeTargets()
	s.OnCollect(nt.Collect)

	a := &node{"a"}
	nt.Add(a, panicky{}, nil)
	called := false
	nt.Listen(a).On(EventDown, func(Event) { called = true })

	s.Fire(EventDown, rawAt(1, 0, 0, a))
	if !called {
		t.Error("target after a panicking eventable was not notified")
	}
	if !strings.Contains(buf.String(), "eventable panicked") {
		t.Errorf("panic not logged, log = %q", buf.String())
	}
}

type panicky struct{}

func (panicky) On(EventType, Handler) CallbackHandle { return CallbackHandle{} }
func (panicky) Fire(Event)                           { panic("broken eventable") }
func (panicky) Options() Options                     { return Options{} }

func TestFireSink(t *testing.T) {
	a := &node{"a"}
	s, _, nt := newTestSession()
	nt.Listen(a)
	nt.Listen(a)
	sink := &sinkRecorder{}
	s.SetEventSink(sink)

	s.Fire(EventMove, rawAt(1, 0, 0, a))
	if len(sink.events) != 2 {
		t.Fatalf("sink events = %d, want one per target", len(sink.events))
	}
	s.SetEventSink(nil)
	s.Fire(EventMove, rawAt(1, 1, 0, a))
	if len(sink.events) != 2 {
		t.Errorf("sink still receiving after SetEventSink(nil)")
	}
}

func TestFireEventTapUpdatesHistoryOnce(t *testing.T) {
	a := &node{"a"}
	s, _, nt := newTestSession()
	var ra recorder
	ra.listen(nt.Listen(a))
	ra.listen(nt.Listen(a))

	raw := rawAt(1, 0, 0, a)
	raw.Time = testEpoch
	ev := NewEvent(EventTap, raw, s)
	if ev.Double {
		t.Fatal("first tap classified as double")
	}
	s.FireEvent(ev, s.Collect(EventTap, raw))

	if got := ra.count(EventTap); got != 2 {
		t.Errorf("tap deliveries = %d, want 2", got)
	}
	if got := ra.count(EventDoubleTap); got != 0 {
		t.Errorf("doubletap deliveries = %d, want 0", got)
	}
	if s.PrevTap() != ev {
		t.Error("PrevTap is not the fired event")
	}
	if tt, ok := s.TapTime(); !ok || !tt.Equal(testEpoch) {
		t.Errorf("TapTime = (%v, %v), want (%v, true)", tt, ok, testEpoch)
	}
}

func TestFireEventNilSafe(t *testing.T) {
	s, _, _ := newTestSession()
	s.FireEvent(nil, []TargetEntry{{Node: &node{"a"}}})
	s.FireEvent(&Event{Type: EventTap}, nil)
	if s.PrevTap() != nil {
		t.Error("FireEvent with no targets changed tap history")
	}
}

func TestFireSkipsNilEventable(t *testing.T) {
	a := &node{"a"}
	s, _, _ := newTestSession()
	var r recorder
	l := NewListeners(Options{})
	r.listen(l, EventUp)

	ev := NewEvent(EventUp, rawAt(1, 0, 0, a), s)
	s.FireEvent(ev, []TargetEntry{
		{Node: a, Props: map[string]any{"from": "bare"}},
		{Node: a, Eventable: l},
	})
	if len(r.events) != 1 {
		t.Fatalf("deliveries = %d, want 1", len(r.events))
	}
	if v, _ := r.events[0].Prop("from"); v != "bare" {
		t.Errorf("props from a bare entry = %v, want bare", v)
	}
}

func TestDebugModeLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a := &node{"a"}
	s := NewSession(Config{Clock: NewFrameClock(testEpoch), Logger: logger})
	nt := NewNodeTargets()
	s.OnCollect(nt.Collect)
	nt.Listen(a)

	s.Fire(EventDown, rawAt(1, 0, 0, a))
	if buf.Len() != 0 {
		t.Fatalf("logged with debug off: %q", buf.String())
	}
	s.SetDebugMode(true)
	s.Fire(EventDown, rawAt(1, 0, 0, a))
	if !strings.Contains(buf.String(), "type=down") {
		t.Errorf("debug log = %q, want type=down", buf.String())
	}
}

func TestDebugPointerCountWarning(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(Config{
		Clock:  NewFrameClock(testEpoch),
		Logger: slog.New(slog.NewTextHandler(&buf, nil)),
	})
	for id := PointerID(0); id <= debugMaxPointers; id++ {
		s.pointers.upsert(id)
	}
	s.debugCheckPointerCount()
	if !strings.Contains(buf.String(), "exceeds threshold") {
		t.Errorf("no warning logged: %q", buf.String())
	}
}
