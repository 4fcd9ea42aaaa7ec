package gesture

import (
	"context"
	"errors"
)

// ErrLoopClosed is returned when sending to a Loop whose Run has returned.
var ErrLoopClosed = errors.New("gesture: loop closed")

// Loop owns a Session on a single goroutine so input can arrive from
// anywhere. Raw occurrences, Do calls and fired hold timers are all handled
// by Run, one at a time.
type Loop struct {
	session *Session
	ops     chan func(*Session)
	done    chan struct{}
}

// NewLoop wraps s. buffer is the number of operations that may be queued
// before Send blocks.
func NewLoop(s *Session, buffer int) *Loop {
	if buffer < 0 {
		buffer = 0
	}
	return &Loop{
		session: s,
		ops:     make(chan func(*Session), buffer),
		done:    make(chan struct{}),
	}
}

// Run processes operations until ctx is done and returns ctx.Err().
// Run must be called exactly once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	s := l.session
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case op := <-l.ops:
			op(s)
		case <-s.Wake():
			s.Flush()
		}
	}
}

// Send queues a raw occurrence. It fails with ErrNotRawType for synthesized
// types, with ErrLoopClosed once Run has returned, or with ctx.Err().
func (l *Loop) Send(ctx context.Context, t EventType, raw RawEvent) error {
	if !t.IsRaw() {
		return ErrNotRawType
	}
	return l.enqueue(ctx, func(s *Session) {
		_ = s.Process(t, raw)
	})
}

// Do runs fn on the loop goroutine and waits for it to return. Use it to
// read session state or register listeners while the loop is running.
func (l *Loop) Do(ctx context.Context, fn func(*Session)) error {
	finished := make(chan struct{})
	err := l.enqueue(ctx, func(s *Session) {
		defer close(finished)
		fn(s)
	})
	if err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		// Run may have exited between accepting fn and running it.
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) enqueue(ctx context.Context, op func(*Session)) error {
	select {
	case <-l.done:
		return ErrLoopClosed
	default:
	}
	select {
	case l.ops <- op:
		return nil
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}
