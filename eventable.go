package gesture

import (
	"fmt"
	"log/slog"
)

// Handler receives a gesture event.
type Handler func(Event)

// Eventable is anything that stores and invokes type-keyed handlers.
// The dispatcher only needs Fire and Options; On is the registration side
// used by application code.
type Eventable interface {
	On(t EventType, fn Handler) CallbackHandle
	Fire(ev Event)
	Options() Options
}

// remover is implemented by every registry that hands out CallbackHandles.
type remover interface {
	remove(id uint32)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id  uint32
	reg remover
}

// Remove unregisters the callback so it no longer fires.
// Removing twice, or removing a zero handle, does nothing.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.remove(h.id)
}

type handlerEntry struct {
	id uint32
	fn Handler
}

// Listeners is the standard Eventable: per-type handler slices in
// registration order.
type Listeners struct {
	opts     Options
	handlers [numEventTypes][]handlerEntry
	nextID   uint32
	logger   *slog.Logger
}

// NewListeners creates an empty handler set with the given options.
func NewListeners(opts Options) *Listeners {
	return &Listeners{opts: opts}
}

// On registers fn for events of type t.
func (l *Listeners) On(t EventType, fn Handler) CallbackHandle {
	if int(t) >= numEventTypes || fn == nil {
		return CallbackHandle{}
	}
	l.nextID++
	id := l.nextID
	l.handlers[t] = append(l.handlers[t], handlerEntry{id: id, fn: fn})
	return CallbackHandle{id: id, reg: l}
}

func (l *Listeners) remove(id uint32) {
	for t := range l.handlers {
		s := l.handlers[t]
		for i := range s {
			if s[i].id == id {
				copy(s[i:], s[i+1:])
				s[len(s)-1] = handlerEntry{}
				l.handlers[t] = s[:len(s)-1]
				return
			}
		}
	}
}

// Fire invokes every handler registered for ev.Type. A panicking handler is
// recovered and logged; the remaining handlers still run unless one of them
// calls StopImmediatePropagation.
func (l *Listeners) Fire(ev Event) {
	if int(ev.Type) >= numEventTypes {
		return
	}
	// Snapshot so handlers may register or remove during dispatch.
	hs := l.handlers[ev.Type]
	if len(hs) == 0 {
		return
	}
	snapshot := make([]handlerEntry, len(hs))
	copy(snapshot, hs)
	for _, h := range snapshot {
		l.call(h.fn, ev)
		if ev.immediateStopped() {
			return
		}
	}
}

func (l *Listeners) call(fn Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			logger := l.logger
			if logger == nil {
				logger = slog.Default()
			}
			logger.Error("gesture: listener panicked",
				"type", ev.Type.String(),
				"panic", fmt.Sprint(r))
		}
	}()
	fn(ev)
}

// Options returns the current options.
func (l *Listeners) Options() Options {
	return l.opts
}

// SetOptions replaces the options. A new hold duration applies from the next press.
func (l *Listeners) SetOptions(opts Options) {
	l.opts = opts
}

// SetLogger sets where recovered handler panics are reported.
// Nil restores slog.Default.
func (l *Listeners) SetLogger(logger *slog.Logger) {
	l.logger = logger
}

// Len returns the number of handlers registered for t.
func (l *Listeners) Len(t EventType) int {
	if int(t) >= numEventTypes {
		return 0
	}
	return len(l.handlers[t])
}
