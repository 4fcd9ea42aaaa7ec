package gesture

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestListenersOnAndRemove(t *testing.T) {
	l := NewListeners(DefaultOptions())
	var got []string
	h1 := l.On(EventTap, func(Event) { got = append(got, "first") })
	l.On(EventTap, func(Event) { got = append(got, "second") })
	l.On(EventUp, func(Event) { got = append(got, "up") })

	l.Fire(Event{Type: EventTap})
	if strings.Join(got, ",") != "first,second" {
		t.Fatalf("handlers = %v, want [first second]", got)
	}

	got = nil
	h1.Remove()
	h1.Remove()
	l.Fire(Event{Type: EventTap})
	if strings.Join(got, ",") != "second" {
		t.Errorf("after Remove handlers = %v, want [second]", got)
	}
	if n := l.Len(EventTap); n != 1 {
		t.Errorf("Len(EventTap) = %d, want 1", n)
	}
	if n := l.Len(EventUp); n != 1 {
		t.Errorf("Len(EventUp) = %d, want 1", n)
	}
}

func TestListenersRejectsInvalid(t *testing.T) {
	l := NewListeners(DefaultOptions())
	h := l.On(EventType(99), func(Event) {})
	h.Remove()
	if h := l.On(EventTap, nil); h.reg != nil {
		t.Error("On with nil handler should return a zero handle")
	}
	if n := l.Len(EventTap); n != 0 {
		t.Errorf("Len(EventTap) = %d, want 0", n)
	}
	CallbackHandle{}.Remove()
}

func TestListenersPanicIsolation(t *testing.T) {
	var buf bytes.Buffer
	l := NewListeners(DefaultOptions())
	l.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	called := false
	l.On(EventTap, func(Event) { panic("boom") })
	l.On(EventTap, func(Event) { called = true })
	l.Fire(Event{Type: EventTap})

	if !called {
		t.Error("handler after a panicking one was not called")
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("panic not logged, log = %q", buf.String())
	}
}

func TestListenersImmediateStop(t *testing.T) {
	l := NewListeners(DefaultOptions())
	calls := 0
	l.On(EventDown, func(e Event) {
		calls++
		e.StopImmediatePropagation()
	})
	l.On(EventDown, func(Event) { calls++ })

	ev := NewEvent(EventDown, RawEvent{}, nil)
	l.Fire(*ev)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if !ev.PropagationStopped() {
		t.Error("StopImmediatePropagation should also stop propagation")
	}
}

func TestListenersRemoveDuringFire(t *testing.T) {
	l := NewListeners(DefaultOptions())
	calls := 0
	var h CallbackHandle
	h = l.On(EventMove, func(Event) {
		calls++
		h.Remove()
	})
	l.On(EventMove, func(Event) { calls++ })

	l.Fire(Event{Type: EventMove})
	l.Fire(Event{Type: EventMove})
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestListenersOptions(t *testing.T) {
	l := NewListeners(Options{})
	opts := Options{HoldDuration: 5, Origin: Vec2{X: 1, Y: 2}}
	l.SetOptions(opts)
	if got := l.Options(); got != opts {
		t.Errorf("Options() = %+v, want %+v", got, opts)
	}
}
