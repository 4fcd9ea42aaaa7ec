package gesture

// syntheticPointerEvent represents a single injected pointer sample.
// Screen coordinates are used and converted like real mouse input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	cancel           bool
	button           MouseButton
}

// InjectPress queues a pointer press at the given screen coordinates
// (left button). The event is consumed on the next Update.
func (p *Poller) InjectPress(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectMove queues a pointer sample at the given screen coordinates with
// the button held down.
func (p *Poller) InjectMove(x, y float64) {
	p.InjectPress(x, y)
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (p *Poller) InjectRelease(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: false,
		button:  MouseButtonLeft,
	})
}

// InjectCancel queues a cancel of the injected pointer, as if the platform
// had aborted it.
func (p *Poller) InjectCancel() {
	p.injectQueue = append(p.injectQueue, syntheticPointerEvent{cancel: true})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (p *Poller) InjectClick(x, y float64) {
	p.InjectPress(x, y)
	p.InjectRelease(x, y)
}

// InjectHold queues a press that stays in place for frames frames in total
// before releasing. Minimum frames is 2 (press + release).
func (p *Poller) InjectHold(x, y float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames-1; i++ {
		p.InjectPress(x, y)
	}
	p.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (p *Poller) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	p.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		p.InjectMove(x, y)
	}
	p.InjectRelease(toX, toY)
}

// Pending returns the number of injected events not yet consumed.
func (p *Poller) Pending() int {
	return len(p.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer as pointer 0. Returns true if an event was consumed.
// Real mouse input is skipped for that frame, and for every frame after an
// injected press until the matching release or cancel.
func (p *Poller) processInjectedInput(mods KeyModifiers) bool {
	if len(p.injectQueue) == 0 {
		return false
	}
	evt := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]

	if evt.cancel {
		p.injectHeld = false
		p.cancelSlot(0, mods)
		return true
	}
	p.injectHeld = evt.pressed
	wx, wy := p.screenToWorld(evt.screenX, evt.screenY)
	p.processPointer(0, PointerMouse, wx, wy, evt.pressed, evt.button, mods)
	return true
}
