package gesture

import (
	"log/slog"
	"time"
)

const (
	defaultHoldDuration       = 600 * time.Millisecond
	defaultDoubleTapThreshold = 500 * time.Millisecond
	defaultMoveTolerance      = 1.0 // pixels
)

// Options configures an Eventable.
type Options struct {
	// HoldDuration is how long a pointer must stay down before a hold event
	// fires for this eventable. Zero or negative disables hold.
	HoldDuration time.Duration
	// HoldRepeatInterval, when positive, keeps firing hold events at this
	// interval while the pointer stays down after the first hold.
	HoldRepeatInterval time.Duration
	// Origin is subtracted from pointer coordinates to produce Event.LocalX/Y.
	Origin Vec2
}

// DefaultOptions returns the options new Listeners start with.
func DefaultOptions() Options {
	return Options{HoldDuration: defaultHoldDuration}
}

// holdDuration maps a configured duration onto the timer domain.
func (o Options) holdDuration() time.Duration {
	if o.HoldDuration <= 0 {
		return HoldInfinite
	}
	return o.HoldDuration
}

// Config configures a Session. Zero fields take their defaults.
type Config struct {
	// DoubleTapThreshold is the longest gap between two taps on the same
	// target that still produces a doubletap.
	DoubleTapThreshold time.Duration
	// MoveTolerance is the distance in pixels a down pointer may travel and
	// still produce a tap on release.
	MoveTolerance float64
	// Path expands a raw target into the nodes offered to collectors, nearest
	// first. Nil means the target alone.
	Path func(target any) []any
	// Clock schedules hold timers and stamps events. Nil means SystemClock.
	Clock Clock
	// Logger receives listener failures and debug traces. Nil means slog.Default.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{
		DoubleTapThreshold: defaultDoubleTapThreshold,
		MoveTolerance:      defaultMoveTolerance,
		Clock:              SystemClock(),
		Logger:             slog.Default(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DoubleTapThreshold <= 0 {
		c.DoubleTapThreshold = d.DoubleTapThreshold
	}
	if c.MoveTolerance <= 0 {
		c.MoveTolerance = d.MoveTolerance
	}
	if c.Clock == nil {
		c.Clock = d.Clock
	}
	if c.Logger == nil {
		c.Logger = d.Logger
	}
	return c
}
