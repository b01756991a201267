package artistloader

import (
	"fmt"
	"log/slog"
)

const (
	strengthPartWidth  = 70.0
	strengthArrowWidth = 15.0
	disabledAlpha      = 0.4
)

// contextStrengths are the fixed-strength shortcuts in the row menu.
var contextStrengths = []float64{0.5, 1.0, 1.5}

// ArtistWidget is one artist row: enable switch, artist name and a
// "< strength >" control. It owns its value and its gesture state.
type ArtistWidget struct {
	rowBand
	list     *ArtistList
	value    ArtistValue
	hits     hitAreas
	gesture  Gesture
	hovering bool
	removed  bool

	// Strength at press time and the screen pixels dragged since. The
	// value is recomputed from both on every move so rounding never
	// accumulates.
	dragBase  float64
	dragTotal float64
}

func newArtistWidget(l *ArtistList, name string) *ArtistWidget {
	return &ArtistWidget{
		rowBand: rowBand{name: name},
		list:    l,
		value:   DefaultArtistValue(),
		gesture: Gesture{Threshold: l.opts.DragThreshold, TapDuration: l.opts.TapDuration},
	}
}

func (w *ArtistWidget) Height() float64    { return rowHeight }
func (w *ArtistWidget) Serializable() bool { return true }

// Value returns a copy of the row's value.
func (w *ArtistWidget) Value() ArtistValue {
	return w.value
}

// SetValue replaces the whole value. Strength is clamped and rounded.
func (w *ArtistWidget) SetValue(v ArtistValue) {
	if v.Artist == "" {
		v.Artist = NoneArtist
	}
	v.Strength = w.list.opts.Range.Normalize(v.Strength)
	w.commit(v)
}

// SetOn sets the enable switch.
func (w *ArtistWidget) SetOn(on bool) {
	v := w.value
	v.On = on
	w.commit(v)
}

// SetArtist selects an artist by name. Names missing from the catalog are
// kept as-is.
func (w *ArtistWidget) SetArtist(name string) {
	if name == "" {
		name = NoneArtist
	}
	v := w.value
	v.Artist = name
	w.commit(v)
}

// SetStrength clamps, rounds and stores s.
func (w *ArtistWidget) SetStrength(s float64) {
	v := w.value
	v.Strength = w.list.opts.Range.Normalize(s)
	w.commit(v)
}

// StepStrength moves the strength one step in dir (-1 or +1).
func (w *ArtistWidget) StepStrength(dir int) {
	w.SetStrength(w.value.Strength + float64(dir)*w.list.opts.Step)
}

// Gesture exposes the drag/tap state for inspection.
func (w *ArtistWidget) Gesture() GesturePhase {
	return w.gesture.Phase()
}

// HitAreas returns the areas laid out by the last Draw.
func (w *ArtistWidget) HitAreas() []HitArea {
	return w.hits.list()
}

// Removed reports whether the row has been taken out of its list.
func (w *ArtistWidget) Removed() bool {
	return w.removed
}

func (w *ArtistWidget) commit(v ArtistValue) {
	if w.removed || v == w.value {
		return
	}
	w.value = v
	w.list.host.MarkDirty()
	w.list.host.Changed(ChangeEvent{Type: ChangeValue, Widget: w.name, Index: w.list.IndexOf(w), Value: v})
}

// detach is called by the list on removal.
func (w *ArtistWidget) detach() {
	if w.hovering {
		w.list.preview.Hide()
	}
	w.removed = true
	w.hovering = false
	w.hits.clear()
	w.gesture.Cancel()
	w.drawn = false
}

// Draw paints the row and records its hit areas in node-local coordinates.
func (w *ArtistWidget) Draw(c Canvas, width, y, height float64) float64 {
	w.place(width, y, height)
	w.hits.clear()
	midY := y + height/2

	c.FillRect(Rect{X: rowMargin, Y: y, Width: width - rowMargin*2, Height: height}, colorRowBg)
	toggle := drawToggle(c, rowMargin, y, height, w.value.On, false)
	w.hits.set(HitToggle, toggle)

	body := c
	if !w.value.On {
		body = faded(c, disabledAlpha)
	}

	dec, val, inc := drawStrengthPart(body, width-rowMargin-rowInnerMargin, y, height, w.value.Strength)
	w.hits.set(HitStrengthDec, dec)
	w.hits.set(HitStrengthValue, val)
	w.hits.set(HitStrengthInc, inc)

	nameX := toggle.X + toggle.Width + rowInnerMargin
	nameW := dec.X - rowInnerMargin - nameX
	if nameW > 0 {
		name, col := w.value.Artist, colorText
		if w.value.IsNone() {
			name, col = NoneArtist, colorTextDim
		} else if _, ok := w.list.catalog.Lookup(name); !ok {
			col = colorTextDim
		}
		body.DrawText(fitString(c.Font(), name, nameW), nameX, midY, TextAlignLeft, col)
		w.hits.set(HitName, Rect{X: nameX, Y: y, Width: nameW, Height: height})
	}
	return height
}

// drawStrengthPart paints "< value >" ending at right and returns the
// decrement, value and increment rects.
func drawStrengthPart(c Canvas, right, y, height, value float64) (dec, val, inc Rect) {
	left := right - strengthPartWidth
	valueW := strengthPartWidth - strengthArrowWidth*2
	top, h := y+2, height-4
	midY := y + height/2

	dec = Rect{X: left, Y: y, Width: strengthArrowWidth, Height: height}
	val = Rect{X: left + strengthArrowWidth, Y: y, Width: valueW, Height: height}
	inc = Rect{X: val.X + valueW, Y: y, Width: strengthArrowWidth, Height: height}

	c.FillRect(Rect{X: dec.X, Y: top, Width: dec.Width, Height: h}, colorArrowBg)
	c.DrawText("<", dec.X+dec.Width/2, midY, TextAlignCenter, colorText)
	c.FillRect(Rect{X: val.X, Y: top, Width: val.Width, Height: h}, colorValueBg)
	col := colorValueDefault
	if value != defaultStrength {
		col = colorValueChanged
	}
	c.DrawText(formatStrength(value), val.X+val.Width/2, midY, TextAlignCenter, col)
	c.FillRect(Rect{X: inc.X, Y: top, Width: inc.Width, Height: h}, colorArrowBg)
	c.DrawText(">", inc.X+inc.Width/2, midY, TextAlignCenter, colorText)
	return dec, val, inc
}

// HandlePointer is the row's only input entry point.
func (w *ArtistWidget) HandlePointer(ev PointerEvent) bool {
	if w.removed {
		return false
	}
	if ev.Kind == PointerUp || ev.Kind == PointerLeave {
		return w.release(ev)
	}
	// A press being tracked keeps receiving events outside the row so a
	// drag can wander off vertically.
	if !w.inBand(ev.Y) && !w.gesture.Active() {
		if ev.Kind == PointerMove {
			w.endHover()
		}
		return false
	}
	switch ev.Kind {
	case PointerDown:
		return w.pointerDown(ev)
	case PointerMove:
		return w.pointerMove(ev)
	}
	return false
}

func (w *ArtistWidget) pointerDown(ev PointerEvent) bool {
	w.endHover()
	w.list.preview.Hide()

	if ev.Button == MouseButtonRight {
		w.gesture.Cancel()
		w.openContextMenu(ev)
		return true
	}
	if ev.Button != MouseButtonLeft {
		return false
	}
	switch w.hits.at(ev.X, ev.Y) {
	case HitToggle:
		w.SetOn(!w.value.On)
	case HitName:
		w.openSelectionMenu(ev)
	case HitStrengthDec:
		w.StepStrength(-1)
	case HitStrengthInc:
		w.StepStrength(1)
	case HitStrengthValue:
		w.dragBase, w.dragTotal = w.value.Strength, 0
		w.gesture.Press(ev.ScreenX, ev.ScreenY, ev.Time)
	default:
		return false
	}
	return true
}

func (w *ArtistWidget) pointerMove(ev PointerEvent) bool {
	if w.gesture.Active() {
		dx, _, dragging := w.gesture.Move(ev.ScreenX, ev.ScreenY)
		if dragging && dx != 0 {
			w.dragTotal += dx
			w.SetStrength(w.dragBase + w.dragTotal*w.list.opts.DragSensitivity)
		}
		return true
	}
	if w.hits.at(ev.X, ev.Y) == HitName && !w.value.IsNone() {
		if !w.hovering {
			w.hovering = true
			w.list.preview.Show(w.value.Artist, ev.ScreenX, ev.ScreenY)
		}
		return false
	}
	w.endHover()
	return false
}

// release clears the gesture unconditionally and fires the tap action for
// a short, still press on the value.
func (w *ArtistWidget) release(ev PointerEvent) bool {
	wasActive := w.gesture.Active()
	if ev.Kind == PointerLeave {
		w.gesture.Cancel()
		w.endHover()
		return wasActive
	}
	if w.gesture.Release(ev.Time) == GestureTap {
		w.openStrengthPrompt()
	}
	return wasActive
}

func (w *ArtistWidget) endHover() {
	if w.hovering {
		w.hovering = false
		w.list.preview.ScheduleHide()
	}
}

func (w *ArtistWidget) openStrengthPrompt() {
	w.list.host.Prompt("Value", formatStrength(w.value.Strength), func(text string) {
		if w.removed {
			return
		}
		v, ok := parseStrength(text)
		if !ok {
			logger().Debug("ignoring non-numeric strength", slog.String("widget", w.name), slog.String("input", text))
			return
		}
		w.SetStrength(v)
	})
}

func (w *ArtistWidget) openSelectionMenu(ev PointerEvent) {
	m := NewSelectionMenu(w.list.catalog.Names(), w.value.Artist, w.SetArtist)
	m.AttachPreview(w.list.preview)
	w.list.host.OpenMenu(m, ev.X, ev.Y)
}

func (w *ArtistWidget) openContextMenu(ev PointerEvent) {
	l := w.list
	m := &Menu{Title: "Artist Options"}
	if w.value.On {
		m.Add("Disable", func() { w.SetOn(false) })
	} else {
		m.Add("Enable", func() { w.SetOn(true) })
	}
	m.AddSeparator()
	m.AddItem(MenuItem{Label: "Move Up", Disabled: !l.CanMoveUp(w), OnSelect: func() { l.MoveUp(w) }})
	m.AddItem(MenuItem{Label: "Move Down", Disabled: !l.CanMoveDown(w), OnSelect: func() { l.MoveDown(w) }})
	m.Add("Remove", func() { l.Remove(w) })
	m.AddSeparator()
	for _, s := range contextStrengths {
		m.AddItem(MenuItem{
			Label:    fmt.Sprintf("Strength %s", formatStrength(s)),
			Selected: w.value.Strength == s,
			OnSelect: func() { w.SetStrength(s) },
		})
	}
	l.host.OpenMenu(m, ev.X, ev.Y)
}
