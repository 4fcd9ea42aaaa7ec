package gesture

import (
	"math"
	"reflect"
	"time"
)

// EventType identifies a kind of gesture event.
type EventType uint8

const (
	EventDown      EventType = iota // fires when a pointer is pressed
	EventMove                       // fires when a tracked pointer changes position
	EventUp                         // fires when a pointer is released
	EventCancel                     // fires when the platform aborts a pointer
	EventTap                        // fires on release over the press target without movement
	EventDoubleTap                  // fires after a second tap on the same target within the threshold
	EventHold                       // fires when a pointer stays down for the hold duration

	numEventTypes = iota
)

var eventTypeNames = [numEventTypes]string{
	EventDown:      "down",
	EventMove:      "move",
	EventUp:        "up",
	EventCancel:    "cancel",
	EventTap:       "tap",
	EventDoubleTap: "doubletap",
	EventHold:      "hold",
}

// String returns the lowercase gesture name ("down", "tap", ...).
func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// IsRaw reports whether t is a raw occurrence type (down, move, up, cancel)
// as opposed to a synthesized gesture.
func (t EventType) IsRaw() bool {
	return t <= EventCancel
}

// EventTypes returns every gesture type in dispatch vocabulary order.
func EventTypes() []EventType {
	return []EventType{EventDown, EventMove, EventUp, EventCancel, EventTap, EventDoubleTap, EventHold}
}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// PointerID identifies one physical contact for its whole down→up lifetime.
type PointerID int

// PointerKind distinguishes the device that produced a pointer.
type PointerKind uint8

const (
	PointerMouse PointerKind = iota // mouse or trackpad cursor
	PointerTouch                    // finger on a touch screen
	PointerPen                      // stylus
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Pointer is a single sample of a physical pointer.
type Pointer struct {
	ID     PointerID
	Kind   PointerKind
	X, Y   float64
	Button MouseButton
}

// RawEvent is one raw input occurrence. Target is the already resolved
// raw-input target, typically a pointer. Targets are matched with ==; a
// target of a non-comparable type (a slice, a map) never matches anything,
// itself included, so it can receive events but never taps. A zero Time is
// replaced by the session clock. Native carries the platform event through to collectors untouched.
type RawEvent struct {
	Pointer   Pointer
	Target    any
	Time      time.Time
	Modifiers KeyModifiers
	Native    any
}

// HoldInfinite is the hold duration of a pointer with no hold configured.
// No timer is ever scheduled for it.
const HoldInfinite = time.Duration(math.MaxInt64)

// sameTarget reports whether a and b are the same target. Values of
// non-comparable types never match.
func sameTarget(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
