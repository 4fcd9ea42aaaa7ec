package gesture

import "log/slog"

// debugMaxPointers is the tracked pointer count above which debug mode warns.
// More than this usually means ups or cancels are being lost.
const debugMaxPointers = maxPointers

// debugLog records one dispatch and checks registry growth.
func (s *Session) debugLog(ev *Event, targets int) {
	s.logger.Debug("gesture: dispatched",
		slog.String("type", ev.Type.String()),
		slog.Int("pointer", int(ev.Pointer.ID)),
		slog.Int("targets", targets),
		slog.Bool("stopped", ev.PropagationStopped()),
		slog.Int("tracked", s.pointers.len()))
	s.debugCheckPointerCount()
}

func (s *Session) debugCheckPointerCount() {
	if n := s.pointers.len(); n > debugMaxPointers {
		s.logger.Warn("gesture: tracked pointer count exceeds threshold",
			slog.Int("tracked", n),
			slog.Int("threshold", debugMaxPointers))
	}
}
