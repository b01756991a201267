package artistloader

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	wheelZoomStep = 1.1
)

// PointerEvent is one pointer change delivered to a target. X and Y are in
// the receiver's space: screen for overlays, world for the scene, node-local
// for lists and widgets. ScreenX and ScreenY are always screen space.
type PointerEvent struct {
	Kind    PointerKind
	X, Y    float64
	Button  MouseButton
	Time    time.Time
	ScreenX float64
	ScreenY float64
}

// local returns ev with X and Y shifted by (-dx, -dy).
func (ev PointerEvent) local(dx, dy float64) PointerEvent {
	ev.X -= dx
	ev.Y -= dy
	return ev
}

// KeyInput is one frame of keyboard input for text entry.
type KeyInput struct {
	Runes     []rune
	Backspace bool
	Enter     bool
	Escape    bool
}

func (k KeyInput) empty() bool {
	return len(k.Runes) == 0 && !k.Backspace && !k.Enter && !k.Escape
}

// --- Pointer state ---

type captureKind uint8

const (
	captureNone captureKind = iota
	captureNode
	capturePan
	captureOverlay
)

type pointerState struct {
	down      bool
	button    MouseButton // button captured at press time
	lastX     float64     // screen
	lastY     float64
	capture   captureKind
	node      *Node // captured node
	hoverNode *Node
}

// --- Handler registry ---

type callbackKind uint8

const (
	callbackChange callbackKind = iota
	callbackBackground
)

type changeHandler struct {
	id uint32
	fn func(ChangeEvent)
}

type pointerHandler struct {
	id uint32
	fn func(PointerEvent)
}

type handlerRegistry struct {
	change     []changeHandler
	background []pointerHandler
	nextID     uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind callbackKind
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case callbackChange:
		h.reg.change = removeHandler(h.reg.change, func(c changeHandler) bool { return c.id == h.id })
	case callbackBackground:
		h.reg.background = removeHandler(h.reg.background, func(c pointerHandler) bool { return c.id == h.id })
	}
}

func removeHandler[T any](s []T, match func(T) bool) []T {
	for i := range s {
		if match(s[i]) {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// OnChange registers fn for every value or structure change in any node.
func (s *Scene) OnChange(fn func(ChangeEvent)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.change = append(s.handlers.change, changeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: callbackChange}
}

// OnBackgroundPointer registers fn for presses that hit no node. Event
// coordinates are world space.
func (s *Scene) OnBackgroundPointer(fn func(PointerEvent)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.background = append(s.handlers.background, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: callbackBackground}
}

// --- Input processing ---

// processInput is called from Scene.Update. Injected events take priority;
// the real mouse and keyboard are read only for live scenes.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if !s.live {
		return
	}
	mx, my := ebiten.CursorPosition()
	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}
	s.processPointer(float64(mx), float64(my), pressed, button)

	if _, dy := ebiten.Wheel(); dy != 0 {
		s.processWheel(float64(mx), float64(my), dy)
	}
	s.processKeys(readKeys())
}

// readKeys collects this frame's text-entry keys from ebiten.
func readKeys() KeyInput {
	k := KeyInput{Runes: ebiten.AppendInputChars(nil)}
	k.Backspace = inpututil.IsKeyJustPressed(ebiten.KeyBackspace) ||
		inpututil.KeyPressDuration(ebiten.KeyBackspace) > 30 && inpututil.KeyPressDuration(ebiten.KeyBackspace)%3 == 0
	k.Enter = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)
	k.Escape = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	return k
}

// processPointer runs the pointer state machine for the mouse.
func (s *Scene) processPointer(sx, sy float64, pressed bool, button MouseButton) {
	ps := &s.pointer
	moved := sx != ps.lastX || sy != ps.lastY

	switch {
	case pressed && !ps.down:
		if moved {
			s.dispatch(PointerMove, sx, sy, button)
		}
		ps.down = true
		ps.button = button
		s.dispatch(PointerDown, sx, sy, button)
	case !pressed && ps.down:
		if moved {
			s.dispatch(PointerMove, sx, sy, ps.button)
		}
		s.dispatch(PointerUp, sx, sy, ps.button)
		ps.down = false
		ps.capture = captureNone
		ps.node = nil
	case moved:
		s.dispatch(PointerMove, sx, sy, ps.button)
	}
	ps.lastX, ps.lastY = sx, sy
}

// dispatch delivers one pointer change to the top overlay, the captured
// target or whatever lies under the pointer.
func (s *Scene) dispatch(kind PointerKind, sx, sy float64, button MouseButton) {
	s.dirty = true
	ps := &s.pointer
	wx, wy := s.camera.ScreenToWorld(sx, sy)
	ev := PointerEvent{Kind: kind, X: wx, Y: wy, Button: button, Time: s.now, ScreenX: sx, ScreenY: sy}

	if o := s.topOverlay(); o != nil && (ps.capture == captureNone || ps.capture == captureOverlay || kind == PointerDown) {
		if kind == PointerDown {
			s.leaveHover(ev)
			ps.capture = captureOverlay
		}
		sev := ev
		sev.X, sev.Y = sx, sy
		o.HandlePointer(sev)
		s.pruneOverlays()
		return
	}

	switch ps.capture {
	case captureOverlay:
		return
	case capturePan:
		if kind == PointerMove {
			s.camera.Pan(sx-ps.lastX, sy-ps.lastY)
		}
		return
	case captureNode:
		if ps.node != nil && !ps.node.removed {
			ps.node.HandlePointer(ev)
		}
		return
	}

	switch kind {
	case PointerDown:
		n := s.nodeAt(wx, wy)
		if n == nil {
			s.leaveHover(ev)
			s.firePointerBackground(ev)
			if button == MouseButtonLeft {
				ps.capture = capturePan
			}
			return
		}
		s.BringToFront(n)
		ps.capture = captureNode
		ps.node = n
		n.HandlePointer(ev)
	case PointerMove:
		n := s.nodeAt(wx, wy)
		if n != ps.hoverNode {
			s.leaveHover(ev)
			ps.hoverNode = n
		}
		if n != nil {
			n.HandlePointer(ev)
		}
	case PointerUp:
		if n := s.nodeAt(wx, wy); n != nil {
			n.HandlePointer(ev)
		}
	}
}

// leaveHover sends a leave to the node under the pointer, if any.
func (s *Scene) leaveHover(ev PointerEvent) {
	ps := &s.pointer
	if ps.hoverNode == nil {
		return
	}
	n := ps.hoverNode
	ps.hoverNode = nil
	ev.Kind = PointerLeave
	n.HandlePointer(ev)
}

func (s *Scene) firePointerBackground(ev PointerEvent) {
	for _, h := range s.handlers.background {
		h.fn(ev)
	}
}

// processWheel scrolls an open overlay or zooms the camera about the
// pointer.
func (s *Scene) processWheel(sx, sy, dy float64) {
	s.dirty = true
	if o := s.topOverlay(); o != nil {
		o.HandleWheel(dy)
		return
	}
	s.camera.ZoomAt(sx, sy, math.Pow(wheelZoomStep, dy))
}

// processKeys feeds text-entry keys to the top overlay.
func (s *Scene) processKeys(k KeyInput) {
	if k.empty() {
		return
	}
	if o := s.topOverlay(); o != nil {
		s.dirty = true
		o.HandleKeys(k)
		s.pruneOverlays()
	}
}
