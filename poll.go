package gesture

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	maxPointers = 10 // pointer 0 = mouse, 1-9 = touch
	defaultTPS  = 60
)

// InputSource is the per-frame input state a Poller reads. EbitenSource
// returns the live implementation; tests substitute their own.
type InputSource interface {
	CursorPosition() (x, y int)
	MouseButtons() (left, right, middle bool)
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (x, y int)
	Modifiers() KeyModifiers
	Focused() bool
	TPS() int
}

type ebitenSource struct{}

// EbitenSource returns an InputSource reading Ebitengine's input state.
func EbitenSource() InputSource {
	return ebitenSource{}
}

func (ebitenSource) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenSource) MouseButtons() (left, right, middle bool) {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
}

func (ebitenSource) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}

func (ebitenSource) TouchPosition(id ebiten.TouchID) (int, int) { return ebiten.TouchPosition(id) }

func (ebitenSource) Focused() bool { return ebiten.IsFocused() }

func (ebitenSource) TPS() int { return ebiten.TPS() }

// Modifiers reads the current keyboard modifier state.
func (ebitenSource) Modifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// Resolver maps a world position to the raw target under it, or nil.
// Hit testing belongs to the caller.
type Resolver func(x, y float64) any

// --- Per-slot state ---

type slotState struct {
	down   bool
	seen   bool
	lastX  float64
	lastY  float64
	button MouseButton // button captured at press time
}

// Poller turns Ebitengine's polled input into raw occurrences for a Session.
// Call Update once per tick from the game's Update.
type Poller struct {
	session *Session
	src     InputSource
	resolve Resolver
	toWorld func(sx, sy float64) (float64, float64)

	slots        [maxPointers]slotState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	injectQueue []syntheticPointerEvent
	injectHeld  bool // an injected press owns pointer 0 until its release
	script      *ScriptRunner
}

// NewPoller creates a poller feeding s from src. resolve may be nil, in which
// case every occurrence has a nil target.
func NewPoller(s *Session, src InputSource, resolve Resolver) *Poller {
	return &Poller{session: s, src: src, resolve: resolve}
}

// Session returns the session the poller feeds.
func (p *Poller) Session() *Session {
	return p.session
}

// SetScreenToWorld installs a screen-to-world conversion (usually a camera's)
// applied to every sampled position before resolving targets.
func (p *Poller) SetScreenToWorld(fn func(sx, sy float64) (float64, float64)) {
	p.toWorld = fn
}

// Update advances the session clock by one tick, then samples the mouse
// (or one injected event) and every touch. Losing window focus cancels all
// pressed pointers.
func (p *Poller) Update() {
	if p.script != nil {
		p.script.step(p)
	}

	tps := p.src.TPS()
	if tps <= 0 {
		tps = defaultTPS
	}
	p.session.Update(time.Second / time.Duration(tps))

	if !p.src.Focused() {
		p.cancelAll()
		return
	}

	mods := p.src.Modifiers()
	if !p.processInjectedInput(mods) && !p.injectHeld {
		p.processMousePointer(mods)
	}
	p.processTouchPointers(mods)
}

func (p *Poller) screenToWorld(sx, sy float64) (float64, float64) {
	if p.toWorld != nil {
		return p.toWorld(sx, sy)
	}
	return sx, sy
}

// processMousePointer handles mouse input (pointer 0).
func (p *Poller) processMousePointer(mods KeyModifiers) {
	mx, my := p.src.CursorPosition()
	wx, wy := p.screenToWorld(float64(mx), float64(my))

	var pressed bool
	var button MouseButton
	left, right, middle := p.src.MouseButtons()
	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	p.processPointer(0, PointerMouse, wx, wy, pressed, button, mods)
}

// processTouchPointers handles touch input (pointers 1-9).
func (p *Poller) processTouchPointers(mods KeyModifiers) {
	touchIDs := p.src.AppendTouchIDs(p.prevTouchIDs[:0])
	p.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := p.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := p.src.TouchPosition(tid)
		wx, wy := p.screenToWorld(float64(tx), float64(ty))
		p.processPointer(slot, PointerTouch, wx, wy, true, MouseButtonLeft, mods)
	}

	// Lifted fingers release at their last position.
	for i := 1; i < maxPointers; i++ {
		if p.touchUsed[i] && !activeSlots[i] {
			st := &p.slots[i]
			if st.down {
				p.processPointer(i, PointerTouch, st.lastX, st.lastY, false, MouseButtonLeft, mods)
			}
			p.slots[i] = slotState{}
			p.touchUsed[i] = false
			p.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (p *Poller) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if p.touchUsed[i] && p.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !p.touchUsed[i] {
			p.touchUsed[i] = true
			p.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer diffs one slot against the previous frame and reports the
// change to the session.
func (p *Poller) processPointer(slot int, kind PointerKind, wx, wy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	st := &p.slots[slot]
	if st.down {
		// Keep the press button for the whole interaction.
		button = st.button
	}
	raw := RawEvent{
		Pointer:   Pointer{ID: PointerID(slot), Kind: kind, X: wx, Y: wy, Button: button},
		Target:    p.target(wx, wy),
		Modifiers: mods,
	}

	switch {
	case pressed && !st.down:
		if st.seen && (wx != st.lastX || wy != st.lastY) {
			p.session.PointerMove(raw)
		}
		st.down = true
		st.button = button
		p.session.PointerDown(raw)
	case !pressed && st.down:
		if wx != st.lastX || wy != st.lastY {
			p.session.PointerMove(raw)
		}
		st.down = false
		p.session.PointerUp(raw)
	default:
		if !st.seen || wx != st.lastX || wy != st.lastY {
			p.session.PointerMove(raw)
		}
	}
	st.seen = true
	st.lastX = wx
	st.lastY = wy
}

func (p *Poller) target(wx, wy float64) any {
	if p.resolve == nil {
		return nil
	}
	return p.resolve(wx, wy)
}

// cancelSlot reports a cancel for slot if it is pressed.
func (p *Poller) cancelSlot(slot int, mods KeyModifiers) {
	st := &p.slots[slot]
	if !st.down {
		return
	}
	kind := PointerMouse
	if slot > 0 {
		kind = PointerTouch
	}
	st.down = false
	p.session.PointerCancel(RawEvent{
		Pointer:   Pointer{ID: PointerID(slot), Kind: kind, X: st.lastX, Y: st.lastY, Button: st.button},
		Target:    p.target(st.lastX, st.lastY),
		Modifiers: mods,
	})
}

// cancelAll cancels every pressed slot and forgets touch mappings.
func (p *Poller) cancelAll() {
	p.injectHeld = false
	for i := 0; i < maxPointers; i++ {
		p.cancelSlot(i, 0)
	}
	for i := 1; i < maxPointers; i++ {
		p.slots[i] = slotState{}
		p.touchUsed[i] = false
		p.touchMap[i] = 0
	}
}
