// Package gesture recognizes pointer gestures for [Ebitengine] games.
//
// It turns raw, possibly multi-touch pointer input into down, move, up,
// cancel, tap, doubletap and hold events, and delivers them to listeners
// attached to your own nodes. Hit testing stays in your code: the package
// only needs the target each sample landed on.
//
// # Quick start
//
// Create a [Session], attach listeners to nodes through a [NodeTargets]
// collector, and feed it from a [Poller] every tick:
//
//	session := gesture.NewSession(gesture.Config{})
//	targets := gesture.NewNodeTargets()
//	session.OnCollect(targets.Collect)
//
//	l := targets.Listen(button)
//	l.On(gesture.EventTap, func(e gesture.Event) { fmt.Println("tap", e.Double) })
//	l.On(gesture.EventHold, func(e gesture.Event) { fmt.Println("hold", e.Count) })
//
//	poller := gesture.NewPoller(session, gesture.EbitenSource(), hitTest)
//
//	func (g *Game) Update() error { g.poller.Update(); return nil }
//
// Without Ebitengine, call [Session.PointerDown], [Session.PointerMove],
// [Session.PointerUp] and [Session.PointerCancel] yourself.
//
// # Timing
//
// Hold timers run on the session [Clock]. [SystemClock] uses wall time and
// fires on timer goroutines; fired timers are queued and delivered on the
// session's goroutine by the next input call, [Session.Flush] or
// [Session.Update]. A [Loop] does this automatically for sessions fed from
// several goroutines. [FrameClock] advances only with the game loop, which
// makes gesture timing deterministic in tests.
//
// # Taps
//
// A release produces a tap when the pointer was pressed on the same target,
// stayed within the move tolerance, and was not claimed with
// [Session.ConsumePointer]. A tap on the same target as the previous tap,
// within the double-tap threshold, is followed by a doubletap. Only the
// previous tap is considered: there is no triple tap.
//
// [Ebitengine]: https://ebitengine.org
package gesture
