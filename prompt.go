package artistloader

import "unicode"

const (
	promptWidth   = 160.0
	promptHeight  = 26.0
	promptPadding = 6.0
	promptMaxLen  = 16
)

var (
	colorPromptBg    = RGB(0x22, 0x22, 0x22)
	colorPromptField = RGB(0x11, 0x11, 0x11)
	colorPromptRim   = RGB(0x88, 0x88, 0x88)
)

// Prompter asks the user for a line of text without blocking. onConfirm
// runs at most once, on a later frame, and never on cancel.
type Prompter interface {
	Prompt(label, current string, onConfirm func(text string))
}

// NumberPrompt is a single-line numeric entry overlay. It starts with the
// current value selected so the first keystroke replaces it.
type NumberPrompt struct {
	Label string

	text      []rune
	selectAll bool
	onConfirm func(string)
	done      bool
	x, y      float64
	box       Rect
	drawn     bool
}

// NewNumberPrompt anchors a prompt at screen (x, y).
func NewNumberPrompt(label, current string, x, y float64, onConfirm func(string)) *NumberPrompt {
	return &NumberPrompt{
		Label:     label,
		text:      []rune(current),
		selectAll: current != "",
		onConfirm: onConfirm,
		x:         x,
		y:         y,
	}
}

// Text returns the current entry.
func (p *NumberPrompt) Text() string { return string(p.text) }

// Done reports whether the prompt was confirmed or cancelled.
func (p *NumberPrompt) Done() bool { return p.done }

// Confirm closes the prompt and hands the text to the callback.
func (p *NumberPrompt) Confirm() {
	if p.done {
		return
	}
	p.done = true
	if p.onConfirm != nil {
		p.onConfirm(string(p.text))
	}
}

// Cancel closes the prompt without a callback.
func (p *NumberPrompt) Cancel() {
	p.done = true
}

// accepts limits typing to characters a number can contain.
func accepts(r rune) bool {
	return unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E'
}

// HandleKeys applies one frame of keyboard input.
func (p *NumberPrompt) HandleKeys(k KeyInput) {
	if p.done {
		return
	}
	for _, r := range k.Runes {
		if !accepts(r) {
			continue
		}
		if p.selectAll {
			p.text = p.text[:0]
			p.selectAll = false
		}
		if len(p.text) < promptMaxLen {
			p.text = append(p.text, r)
		}
	}
	if k.Backspace {
		if p.selectAll {
			p.text = p.text[:0]
			p.selectAll = false
		} else if n := len(p.text); n > 0 {
			p.text = p.text[:n-1]
		}
	}
	switch {
	case k.Escape:
		p.Cancel()
	case k.Enter:
		p.Confirm()
	}
}

// HandlePointer cancels on a press outside the box and swallows the rest.
func (p *NumberPrompt) HandlePointer(ev PointerEvent) bool {
	if p.done {
		return true
	}
	if ev.Kind == PointerDown && p.drawn && !p.box.Contains(ev.X, ev.Y) {
		p.Cancel()
	}
	return true
}

// HandleWheel is swallowed while the prompt is open.
func (p *NumberPrompt) HandleWheel(float64) bool { return true }

// Draw paints the prompt inside screen.
func (p *NumberPrompt) Draw(c Canvas, screen Rect) {
	if p.done {
		return
	}
	font := c.Font()
	lw, _ := font.MeasureString(p.Label)
	w := promptWidth + lw + promptPadding
	x, y := p.x, p.y
	if !screen.Empty() {
		x = min(max(x, screen.X), screen.X+screen.Width-w)
		y = min(max(y, screen.Y), screen.Y+screen.Height-promptHeight)
	}
	p.box = Rect{X: x, Y: y, Width: w, Height: promptHeight}
	p.drawn = true

	midY := y + promptHeight/2
	c.FillRect(p.box, colorPromptBg)
	c.StrokeRect(p.box, 1, colorPromptRim)
	c.DrawText(p.Label, x+promptPadding, midY, TextAlignLeft, colorTextDim)

	field := Rect{X: x + lw + promptPadding*2, Y: y + 3, Width: w - lw - promptPadding*3, Height: promptHeight - 6}
	c.FillRect(field, colorPromptField)
	s := string(p.text)
	tw, _ := font.MeasureString(s)
	if p.selectAll && tw > 0 {
		c.FillRect(Rect{X: field.X + 3, Y: field.Y + 2, Width: tw, Height: field.Height - 4}, colorMenuHover)
	}
	c.DrawText(s, field.X+3, midY, TextAlignLeft, colorText)
	if !p.selectAll {
		c.FillRect(Rect{X: field.X + 4 + tw, Y: field.Y + 3, Width: 1, Height: field.Height - 6}, colorText)
	}
}
