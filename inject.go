package artistloader

// syntheticEvent represents a single injected input frame. Screen
// coordinates are used and converted to world coordinates through the
// camera, identical to real mouse input.
type syntheticEvent struct {
	screenX, screenY float64
	pressed          bool
	button           MouseButton
	wheel            float64
	keys             KeyInput
	idle             bool
}

// InjectPress queues a left-button press at the given screen coordinates.
// The event is consumed on the next frame's processInput call.
func (s *Scene) InjectPress(x, y float64) {
	s.injectButton(x, y, true, MouseButtonLeft)
}

// InjectMove queues a pointer move with the button still held (or hovering,
// when no press is pending).
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		screenX: x, screenY: y,
		pressed: s.injectHeld(),
		button:  s.injectButtonHeld(),
	})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectButton(x, y, false, s.injectButtonHeld())
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectRightClick queues a right-button press and release. Consumes two
// frames.
func (s *Scene) InjectRightClick(x, y float64) {
	s.injectButton(x, y, true, MouseButtonRight)
	s.injectButton(x, y, false, MouseButtonRight)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectWheel queues a vertical wheel step at the given screen point.
func (s *Scene) InjectWheel(x, y, dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		screenX: x, screenY: y,
		pressed: s.injectHeld(),
		button:  s.injectButtonHeld(),
		wheel:   dy,
	})
}

// InjectText queues typed characters for the focused prompt.
func (s *Scene) InjectText(text string) {
	s.injectKeys(KeyInput{Runes: []rune(text)})
}

// InjectEnter queues an Enter key press.
func (s *Scene) InjectEnter() { s.injectKeys(KeyInput{Enter: true}) }

// InjectEscape queues an Escape key press.
func (s *Scene) InjectEscape() { s.injectKeys(KeyInput{Escape: true}) }

// InjectBackspace queues a Backspace key press.
func (s *Scene) InjectBackspace() { s.injectKeys(KeyInput{Backspace: true}) }

// InjectWait queues n frames with no input change.
func (s *Scene) InjectWait(n int) {
	for range n {
		s.injectQueue = append(s.injectQueue, syntheticEvent{idle: true})
	}
}

func (s *Scene) injectButton(x, y float64, pressed bool, button MouseButton) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		screenX: x, screenY: y,
		pressed: pressed,
		button:  button,
	})
}

func (s *Scene) injectKeys(k KeyInput) {
	x, y := s.injectPosition()
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		screenX: x, screenY: y,
		pressed: s.injectHeld(),
		button:  s.injectButtonHeld(),
		keys:    k,
	})
}

// injectLast is the pointer state after every queued event has run.
func (s *Scene) injectLast() (syntheticEvent, bool) {
	for i := len(s.injectQueue) - 1; i >= 0; i-- {
		if !s.injectQueue[i].idle {
			return s.injectQueue[i], true
		}
	}
	return syntheticEvent{}, false
}

func (s *Scene) injectHeld() bool {
	if last, ok := s.injectLast(); ok {
		return last.pressed
	}
	return s.pointer.down
}

func (s *Scene) injectButtonHeld() MouseButton {
	if last, ok := s.injectLast(); ok {
		return last.button
	}
	return s.pointer.button
}

func (s *Scene) injectPosition() (float64, float64) {
	if last, ok := s.injectLast(); ok {
		return last.screenX, last.screenY
	}
	return s.pointer.lastX, s.pointer.lastY
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed (real input
// should be skipped).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.idle {
		return true
	}
	s.processPointer(evt.screenX, evt.screenY, evt.pressed, evt.button)
	if evt.wheel != 0 {
		s.processWheel(evt.screenX, evt.screenY, evt.wheel)
	}
	s.processKeys(evt.keys)
	return true
}
