package artistloader

const (
	rowHeight      = 25.0
	headerHeight   = 22.0
	rowMargin      = 10.0
	rowInnerMargin = rowMargin * 0.33
)

var (
	colorRowBg        = Color{0, 0, 0, 0.2}
	colorText         = ColorWhite
	colorTextDim      = RGB(0x99, 0x99, 0x99)
	colorToggleOn     = RGB(0x4c, 0xaf, 0x50)
	colorToggleOnRim  = RGB(0x66, 0xbb, 0x6a)
	colorToggleOff    = RGB(0x44, 0x44, 0x44)
	colorToggleOffRim = RGB(0x66, 0x66, 0x66)
	colorArrowBg      = RGB(0x66, 0x66, 0x66)
	colorValueBg      = RGB(0x44, 0x44, 0x44)
	colorValueChanged = RGB(0xff, 0xc1, 0x07)
	colorValueDefault = RGB(0xcc, 0xcc, 0xcc)
	colorButtonBg     = RGB(0x55, 0x55, 0x55)
	colorButtonRim    = RGB(0x77, 0x77, 0x77)
	colorDivider      = RGB(0x44, 0x44, 0x44)
)

// Widget is one drawn row of a node. Draw lays the widget out for the frame
// and HandlePointer interprets events against that layout, so a widget must
// have been drawn before it can be hit.
type Widget interface {
	// Name is the widget's stable identity. It is never shown.
	Name() string
	// Height is the row height the node allots to the widget.
	Height() float64
	// Draw paints the widget into the row starting at y and returns the
	// height consumed.
	Draw(c Canvas, width, y, height float64) float64
	// HandlePointer reports whether the event was consumed.
	HandlePointer(ev PointerEvent) bool
	// Serializable reports whether the widget carries a persisted value.
	Serializable() bool
}

// Host is what a list and its widgets call back into. A Node implements it.
type Host interface {
	// MarkDirty requests a redraw.
	MarkDirty()
	// FitHeight grows or shrinks the container so at least minHeight of
	// content fits, never going below the user's own size.
	FitHeight(minHeight float64)
	// OpenMenu presents m anchored at the given node-local point.
	OpenMenu(m *Menu, x, y float64)
	// Prompt asks for a line of text. onConfirm runs at most once, later.
	Prompt(label, current string, onConfirm func(text string))
	// Changed is told about every value or structure change.
	Changed(ev ChangeEvent)
}

// rowBand remembers where a widget was last drawn.
type rowBand struct {
	name  string
	y     float64
	h     float64
	w     float64
	drawn bool
}

func (b *rowBand) Name() string { return b.name }

func (b *rowBand) place(width, y, h float64) {
	b.y, b.h, b.w, b.drawn = y, h, width, true
}

// inBand reports whether y falls inside the row drawn last frame.
func (b *rowBand) inBand(y float64) bool {
	return b.drawn && y >= b.y && y <= b.y+b.h
}

// HeaderWidget is the structural row above the artists with the
// "toggle all" switch and column labels.
type HeaderWidget struct {
	rowBand
	state    func() EnabledState
	onToggle func()
	toggle   Rect
}

func newHeaderWidget(state func() EnabledState, onToggle func()) *HeaderWidget {
	return &HeaderWidget{rowBand: rowBand{name: "header"}, state: state, onToggle: onToggle}
}

func (h *HeaderWidget) Height() float64    { return headerHeight }
func (h *HeaderWidget) Serializable() bool { return false }

// Draw paints the toggle-all switch and the column labels.
func (h *HeaderWidget) Draw(c Canvas, width, y, height float64) float64 {
	h.place(width, y, height)
	midY := y + height/2
	state := h.state()
	h.toggle = drawToggle(c, rowMargin, y, height, state == AllOn, state == Mixed)

	x := h.toggle.X + h.toggle.Width + rowInnerMargin
	c.DrawText("Toggle All", x, midY, TextAlignLeft, colorTextDim)
	c.DrawText("Strength", width-rowMargin-rowInnerMargin-strengthPartWidth/2, midY, TextAlignCenter, colorTextDim)
	return height
}

// HandlePointer toggles every row when the switch or its label is pressed.
func (h *HeaderWidget) HandlePointer(ev PointerEvent) bool {
	if ev.Kind != PointerDown || ev.Button != MouseButtonLeft || !h.inBand(ev.Y) {
		return false
	}
	if ev.X > h.w/2 {
		return false
	}
	h.onToggle()
	return true
}

// DividerWidget is vertical spacing between the artists and the add button.
type DividerWidget struct {
	rowBand
	MarginTop    float64
	MarginBottom float64
	Thickness    float64
}

func newDividerWidget() *DividerWidget {
	return &DividerWidget{rowBand: rowBand{name: "divider"}, MarginTop: 4}
}

func (d *DividerWidget) Height() float64 {
	return d.MarginTop + d.Thickness + d.MarginBottom
}

func (d *DividerWidget) Serializable() bool { return false }

func (d *DividerWidget) Draw(c Canvas, width, y, height float64) float64 {
	d.place(width, y, height)
	if d.Thickness > 0 {
		c.FillRect(Rect{X: rowMargin, Y: y + d.MarginTop, Width: width - 2*rowMargin, Height: d.Thickness}, colorDivider)
	}
	return height
}

func (d *DividerWidget) HandlePointer(PointerEvent) bool { return false }

// ButtonWidget is a full-width push button.
type ButtonWidget struct {
	rowBand
	Label   string
	onPress func()
}

func newButtonWidget(name, label string, onPress func()) *ButtonWidget {
	return &ButtonWidget{rowBand: rowBand{name: name}, Label: label, onPress: onPress}
}

func (b *ButtonWidget) Height() float64    { return rowHeight }
func (b *ButtonWidget) Serializable() bool { return false }

func (b *ButtonWidget) Draw(c Canvas, width, y, height float64) float64 {
	b.place(width, y, height)
	r := Rect{X: rowMargin, Y: y + 2, Width: width - rowMargin*2, Height: height - 4}
	c.FillRect(r, colorButtonBg)
	c.StrokeRect(r, 1, colorButtonRim)
	c.DrawText(b.Label, width/2, y+height/2, TextAlignCenter, colorText)
	return height
}

// HandlePointer fires the button on a left press inside the row.
func (b *ButtonWidget) HandlePointer(ev PointerEvent) bool {
	if ev.Kind != PointerDown || ev.Button != MouseButtonLeft || !b.inBand(ev.Y) {
		return false
	}
	if b.onPress != nil {
		b.onPress()
	}
	return true
}

// drawToggle paints the round on/off switch and returns its hit rect.
// mixed draws a half-filled knob for the header's partial state.
func drawToggle(c Canvas, x, y, height float64, on, mixed bool) Rect {
	size := height * 0.6
	left := x + 5
	top := y + (height-size)/2
	cx, cy, r := left+size/2, top+size/2, size/2

	fill, rim := colorToggleOff, colorToggleOffRim
	if on || mixed {
		fill, rim = colorToggleOn, colorToggleOnRim
	}
	c.FillCircle(cx, cy, r, fill)
	c.StrokeCircle(cx, cy, r, 1, rim)
	switch {
	case on:
		c.FillCircle(cx, cy, r-3, colorText)
	case mixed:
		c.FillRect(Rect{X: cx - r + 3, Y: cy - 1, Width: 2*r - 6, Height: 2}, colorText)
	}
	return Rect{X: left, Y: y, Width: size + 10, Height: height}
}
