package artistloader

import "slices"

const (
	menuItemHeight      = 20.0
	menuSeparatorHeight = 7.0
	menuTitleHeight     = 20.0
	menuPadding         = 6.0
	menuMinWidth        = 120.0
	menuCheckWidth      = 14.0
)

var (
	colorMenuBg       = Color{0.13, 0.13, 0.13, 0.95}
	colorMenuRim      = RGB(0x55, 0x55, 0x55)
	colorMenuHover    = RGB(0x3a, 0x5f, 0x8a)
	colorMenuTitle    = RGB(0x2a, 0x2a, 0x2a)
	colorMenuDisabled = RGB(0x66, 0x66, 0x66)
)

// MenuItem is one entry of a Menu. A Separator item carries nothing else.
type MenuItem struct {
	Label     string
	Value     string
	Selected  bool
	Disabled  bool
	Separator bool
	OnSelect  func()

	// OnHoverStart is called with the item's screen rect when the pointer
	// enters it; OnHoverEnd when it leaves.
	OnHoverStart func(anchor Rect)
	OnHoverEnd   func()
}

func (it MenuItem) selectable() bool {
	return !it.Separator && !it.Disabled
}

// Menu is a list of choices. It resolves exactly once: either Choose runs
// one item's action or Dismiss runs nothing.
type Menu struct {
	Title     string
	Items     []MenuItem
	OnDismiss func()

	preview PreviewService
	done    bool
}

// Add appends an enabled item.
func (m *Menu) Add(label string, onSelect func()) {
	m.Items = append(m.Items, MenuItem{Label: label, OnSelect: onSelect})
}

// AddItem appends it as-is.
func (m *Menu) AddItem(it MenuItem) {
	m.Items = append(m.Items, it)
}

// AddSeparator appends a divider line.
func (m *Menu) AddSeparator() {
	m.Items = append(m.Items, MenuItem{Separator: true})
}

// Done reports whether the menu has been chosen from or dismissed.
func (m *Menu) Done() bool { return m.done }

// Selected returns the index of the item marked Selected, or -1.
func (m *Menu) Selected() int {
	return slices.IndexFunc(m.Items, func(it MenuItem) bool { return it.Selected })
}

// Index returns the first item labelled label, or -1.
func (m *Menu) Index(label string) int {
	return slices.IndexFunc(m.Items, func(it MenuItem) bool { return it.Label == label && !it.Separator })
}

// Choose runs item i's action. It reports false, and does nothing, when
// the menu is already resolved or the item cannot be chosen.
func (m *Menu) Choose(i int) bool {
	if m.done || i < 0 || i >= len(m.Items) || !m.Items[i].selectable() {
		return false
	}
	m.finish()
	if fn := m.Items[i].OnSelect; fn != nil {
		fn()
	}
	return true
}

// Dismiss closes the menu without choosing.
func (m *Menu) Dismiss() {
	if m.done {
		return
	}
	m.finish()
	if m.OnDismiss != nil {
		m.OnDismiss()
	}
}

func (m *Menu) finish() {
	m.done = true
	if m.preview != nil {
		m.preview.Hide()
	}
}

// AttachPreview wires hover hooks on every artist item to p.
func (m *Menu) AttachPreview(p PreviewService) {
	if p == nil {
		return
	}
	m.preview = p
	for i := range m.Items {
		it := &m.Items[i]
		if it.Separator || it.Value == "" || it.Value == NoneArtist {
			continue
		}
		name := it.Value
		it.OnHoverStart = func(anchor Rect) {
			p.Show(name, anchor.X+anchor.Width, anchor.Y)
		}
		it.OnHoverEnd = p.ScheduleHide
	}
}

// NewSelectionMenu lists "None" followed by names in order. The entry
// equal to current is marked Selected. onChoose receives the chosen name.
func NewSelectionMenu(names []string, current string, onChoose func(name string)) *Menu {
	if current == "" {
		current = NoneArtist
	}
	m := &Menu{Title: "Select Artist"}
	add := func(name string) {
		m.AddItem(MenuItem{
			Label:    name,
			Value:    name,
			Selected: name == current,
			OnSelect: func() {
				if onChoose != nil {
					onChoose(name)
				}
			},
		})
	}
	add(NoneArtist)
	for _, name := range names {
		if name == "" || name == NoneArtist {
			continue
		}
		add(name)
	}
	return m
}

// ContextMenu presents a Menu on the canvas in screen space. It captures
// the pointer until the menu resolves.
type ContextMenu struct {
	menu   *Menu
	x, y   float64
	scroll float64

	rects   []Rect
	bounds  Rect
	visible float64
	content float64
	drawn   bool
	hover   int
	pressed int
}

// NewContextMenu anchors m with its top-left corner at screen (x, y).
func NewContextMenu(m *Menu, x, y float64) *ContextMenu {
	return &ContextMenu{menu: m, x: x, y: y, hover: -1, pressed: -1}
}

// Menu returns the presented menu.
func (cm *ContextMenu) Menu() *Menu { return cm.menu }

// Done reports whether the menu has resolved.
func (cm *ContextMenu) Done() bool { return cm.menu.done }

// Cancel dismisses the menu.
func (cm *ContextMenu) Cancel() {
	cm.setHover(-1)
	cm.menu.Dismiss()
}

// ItemRect returns item i's screen rect from the last Draw.
func (cm *ContextMenu) ItemRect(i int) (Rect, bool) {
	if i < 0 || i >= len(cm.rects) || cm.rects[i].Empty() {
		return Rect{}, false
	}
	return cm.rects[i], true
}

func (cm *ContextMenu) layout(font Font, screen Rect) {
	w := menuMinWidth
	if tw, _ := font.MeasureString(cm.menu.Title); tw+menuPadding*2 > w {
		w = tw + menuPadding*2
	}
	h := 0.0
	if cm.menu.Title != "" {
		h += menuTitleHeight
	}
	for _, it := range cm.menu.Items {
		if it.Separator {
			h += menuSeparatorHeight
			continue
		}
		lw, _ := font.MeasureString(it.Label)
		w = max(w, lw+menuPadding*2+menuCheckWidth)
		h += menuItemHeight
	}
	cm.content = h

	x, y := cm.x, cm.y
	if !screen.Empty() {
		if x+w > screen.X+screen.Width {
			x = screen.X + screen.Width - w
		}
		if y+h > screen.Y+screen.Height {
			y = screen.Y + screen.Height - h
		}
		x, y = max(x, screen.X), max(y, screen.Y)
		h = min(h, screen.Y+screen.Height-y)
	}
	cm.visible = h
	cm.scroll = min(max(cm.scroll, 0), max(cm.content-cm.visible, 0))
	cm.bounds = Rect{X: x, Y: y, Width: w, Height: h}
}

// Draw lays the menu out inside screen and paints it.
func (cm *ContextMenu) Draw(c Canvas, screen Rect) {
	if cm.menu.done {
		return
	}
	cm.layout(c.Font(), screen)
	b := cm.bounds
	c.FillRect(b, colorMenuBg)
	c.StrokeRect(b, 1, colorMenuRim)

	y := b.Y - cm.scroll
	if cm.menu.Title != "" {
		if y+menuTitleHeight > b.Y {
			c.FillRect(Rect{X: b.X, Y: max(y, b.Y), Width: b.Width, Height: menuTitleHeight}, colorMenuTitle)
			c.DrawText(cm.menu.Title, b.X+menuPadding, y+menuTitleHeight/2, TextAlignLeft, colorTextDim)
		}
		y += menuTitleHeight
	}

	cm.rects = cm.rects[:0]
	for i, it := range cm.menu.Items {
		h := menuItemHeight
		if it.Separator {
			h = menuSeparatorHeight
		}
		r := Rect{X: b.X, Y: y, Width: b.Width, Height: h}
		y += h
		if r.Y < b.Y || r.Y+r.Height > b.Y+b.Height {
			cm.rects = append(cm.rects, Rect{})
			continue
		}
		cm.rects = append(cm.rects, r)
		if it.Separator {
			c.FillRect(Rect{X: r.X + menuPadding, Y: r.Y + h/2, Width: r.Width - menuPadding*2, Height: 1}, colorMenuRim)
			continue
		}
		if i == cm.hover && it.selectable() {
			c.FillRect(r, colorMenuHover)
		}
		col := colorText
		if it.Disabled {
			col = colorMenuDisabled
		}
		midY := r.Y + h/2
		if it.Selected {
			c.FillCircle(r.X+menuPadding+3, midY, 3, colorValueChanged)
		}
		c.DrawText(it.Label, r.X+menuPadding+menuCheckWidth, midY, TextAlignLeft, col)
	}
	cm.drawn = true
}

func (cm *ContextMenu) itemAt(x, y float64) int {
	if !cm.bounds.Contains(x, y) {
		return -1
	}
	for i, r := range cm.rects {
		if !r.Empty() && r.Contains(x, y) {
			return i
		}
	}
	return -1
}

func (cm *ContextMenu) setHover(i int) {
	if i == cm.hover {
		return
	}
	items := cm.menu.Items
	if cm.hover >= 0 && cm.hover < len(items) && items[cm.hover].OnHoverEnd != nil {
		items[cm.hover].OnHoverEnd()
	}
	cm.hover = i
	if i >= 0 && i < len(items) && items[i].OnHoverStart != nil {
		items[i].OnHoverStart(cm.rects[i])
	}
}

// HandlePointer takes every screen-space event while the menu is open.
// A press outside dismisses; a release on the item pressed chooses it.
func (cm *ContextMenu) HandlePointer(ev PointerEvent) bool {
	if cm.menu.done || !cm.drawn {
		return true
	}
	i := cm.itemAt(ev.X, ev.Y)
	switch ev.Kind {
	case PointerMove:
		cm.setHover(i)
	case PointerDown:
		if !cm.bounds.Contains(ev.X, ev.Y) {
			cm.Cancel()
			return true
		}
		cm.pressed = -1
		if ev.Button == MouseButtonLeft {
			cm.pressed = i
		}
	case PointerUp:
		if i >= 0 && i == cm.pressed {
			cm.setHover(-1)
			cm.menu.Choose(i)
		}
		cm.pressed = -1
	case PointerLeave:
		cm.setHover(-1)
		cm.pressed = -1
	}
	return true
}

// HandleWheel scrolls a menu taller than the screen.
func (cm *ContextMenu) HandleWheel(dy float64) bool {
	if cm.content <= cm.visible {
		return true
	}
	cm.setHover(-1)
	cm.scroll = min(max(cm.scroll-dy*menuItemHeight, 0), cm.content-cm.visible)
	return true
}

// HandleKeys dismisses on Escape.
func (cm *ContextMenu) HandleKeys(k KeyInput) {
	if k.Escape {
		cm.Cancel()
	}
}
