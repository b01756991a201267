package artistloader

const (
	nodeTitleHeight      = 26.0
	nodeWidgetTop        = 6.0
	nodeBottomPad        = 6.0
	nodeResizeGrip       = 10.0
	defaultNodeWidth     = 300.0
	defaultNodeMinHeight = 120.0
	minNodeWidth         = 200.0
	defaultNodeTitle     = "Power Artist Loader"
)

var (
	colorNodeTitle = RGB(0x35, 0x35, 0x35)
	colorNodeBg    = RGB(0x29, 0x29, 0x29)
	colorNodeRim   = RGB(0x1a, 0x1a, 0x1a)
	colorNodeFocus = RGB(0x88, 0x88, 0x88)
	colorNodeDot   = RGB(0x9a, 0x9a, 0x9a)
)

type nodeDragKind uint8

const (
	nodeDragNone nodeDragKind = iota
	nodeDragMove
	nodeDragResize
)

// Node is a graph node hosting one ArtistList. Its origin is the top-left
// of the body; the title bar sits above it at negative y.
type Node struct {
	ID    uint32
	Title string
	X, Y  float64
	// Width and Height are the body size. Height is kept by FitHeight.
	Width  float64
	Height float64
	// MinHeight is the smallest body height.
	MinHeight float64

	scene      *Scene
	list       *ArtistList
	userHeight float64
	drag       nodeDragKind
	dragX      float64
	dragY      float64
	dirty      bool
	removed    bool
}

func newNode(s *Scene, id uint32, x, y float64) *Node {
	n := &Node{
		ID:        id,
		Title:     defaultNodeTitle,
		X:         x,
		Y:         y,
		Width:     s.nodeWidth,
		MinHeight: s.nodeMinHeight,
		scene:     s,
		dirty:     true,
	}
	n.list = NewArtistList(n, s.catalog, s.preview, s.listOptions)
	n.FitHeight(n.list.MinHeight())
	return n
}

// List returns the node's artist list.
func (n *Node) List() *ArtistList { return n.list }

// Values serializes the node's artists.
func (n *Node) Values() []ArtistValue { return Serialize(n.list) }

// SetValues replaces the node's artists with records.
func (n *Node) SetValues(records []ArtistValue) { Deserialize(records, n.list) }

// ComposePrompt builds the output text for base from the enabled artists.
func (n *Node) ComposePrompt(base string) string {
	return ComposePrompt(base, n.Values(), n.list.catalog)
}

// Removed reports whether the node was taken out of its scene.
func (n *Node) Removed() bool { return n.removed }

// Bounds returns the world rect covering title bar and body.
func (n *Node) Bounds() Rect {
	return Rect{X: n.X, Y: n.Y - nodeTitleHeight, Width: n.Width, Height: n.Height + nodeTitleHeight}
}

// SetUserSize records a size chosen by the user. The height never goes
// below what the rows need.
func (n *Node) SetUserSize(width, height float64) {
	n.Width = max(width, minNodeWidth)
	n.userHeight = max(height, 0)
	n.FitHeight(n.list.MinHeight())
}

// --- Host ---

// MarkDirty requests a redraw.
func (n *Node) MarkDirty() {
	n.dirty = true
	if n.scene != nil {
		n.scene.dirty = true
	}
}

// FitHeight sets the body height to the largest of the user's height, the
// rows plus padding and MinHeight.
func (n *Node) FitHeight(content float64) {
	n.Height = max(n.userHeight, content+nodeWidgetTop+nodeBottomPad, n.MinHeight)
	n.MarkDirty()
}

// OpenMenu shows m at the node-local point (x, y).
func (n *Node) OpenMenu(m *Menu, x, y float64) {
	if n.scene == nil {
		return
	}
	sx, sy := n.scene.camera.WorldToScreen(n.X+x, n.Y+y)
	n.scene.OpenMenu(m, sx, sy)
}

// Prompt asks for text next to the pointer.
func (n *Node) Prompt(label, current string, onConfirm func(string)) {
	if n.scene == nil {
		return
	}
	n.scene.Prompt(label, current, onConfirm)
}

// Changed tags ev with the node and forwards it to the scene.
func (n *Node) Changed(ev ChangeEvent) {
	ev.NodeID = n.ID
	if n.scene != nil {
		n.scene.emitChange(ev)
	}
}

// --- Input ---

// HandlePointer takes a world-space event. The title bar and empty body
// drag the node, the bottom-right grip resizes it, right-click on chrome
// opens the node menu and everything else goes to the list.
func (n *Node) HandlePointer(ev PointerEvent) bool {
	if n.removed {
		return false
	}
	lev := ev.local(n.X, n.Y)

	if n.drag != nodeDragNone {
		switch ev.Kind {
		case PointerMove:
			n.continueDrag(ev, lev)
		case PointerUp, PointerLeave:
			n.drag = nodeDragNone
		}
		return true
	}

	if ev.Kind != PointerDown {
		return n.list.HandlePointer(lev)
	}

	if lev.Y < 0 {
		n.chromeDown(ev, lev)
		return true
	}
	if ev.Button == MouseButtonLeft && lev.X >= n.Width-nodeResizeGrip && lev.Y >= n.Height-nodeResizeGrip {
		n.startDrag(nodeDragResize, ev)
		return true
	}
	if n.list.HandlePointer(lev) {
		return true
	}
	n.chromeDown(ev, lev)
	return true
}

func (n *Node) chromeDown(ev, lev PointerEvent) {
	switch ev.Button {
	case MouseButtonLeft:
		n.startDrag(nodeDragMove, ev)
	case MouseButtonRight:
		n.openNodeMenu(lev)
	}
}

func (n *Node) startDrag(kind nodeDragKind, ev PointerEvent) {
	n.drag = kind
	n.dragX, n.dragY = ev.X, ev.Y
}

func (n *Node) continueDrag(ev, lev PointerEvent) {
	switch n.drag {
	case nodeDragMove:
		n.X += ev.X - n.dragX
		n.Y += ev.Y - n.dragY
	case nodeDragResize:
		n.SetUserSize(lev.X, lev.Y)
	}
	n.dragX, n.dragY = ev.X, ev.Y
	n.MarkDirty()
}

func (n *Node) openNodeMenu(lev PointerEvent) {
	m := &Menu{Title: n.Title}
	m.Add("Add Artist", func() { n.list.AddArtist(nil) })
	m.AddItem(MenuItem{Label: "Toggle All", Disabled: n.list.Len() == 0, OnSelect: n.list.ToggleAll})
	m.AddItem(MenuItem{Label: "Clear Artists", Disabled: n.list.Len() == 0, OnSelect: n.list.Clear})
	m.AddSeparator()
	m.Add("Remove Node", func() {
		if n.scene != nil {
			n.scene.RemoveNode(n)
		}
	})
	n.OpenMenu(m, lev.X, lev.Y)
}

// --- Drawing ---

// Draw paints the node onto a world-space canvas.
func (n *Node) Draw(c Canvas, focused bool) {
	c = translated(c, n.X, n.Y)
	midT := -nodeTitleHeight / 2

	c.FillRect(Rect{X: 0, Y: -nodeTitleHeight, Width: n.Width, Height: nodeTitleHeight}, colorNodeTitle)
	c.FillCircle(12, midT, 5, colorNodeDot)
	c.DrawText(fitString(c.Font(), n.Title, n.Width-30), 24, midT, TextAlignLeft, colorText)
	c.FillRect(Rect{X: 0, Y: 0, Width: n.Width, Height: n.Height}, colorNodeBg)

	n.list.Draw(c, n.Width, nodeWidgetTop)

	for i := 1.0; i <= 2; i++ {
		off := i * 4
		c.FillRect(Rect{X: n.Width - off - 1, Y: n.Height - 3, Width: 1, Height: 2}, colorNodeDot)
		c.FillRect(Rect{X: n.Width - 3, Y: n.Height - off - 1, Width: 2, Height: 1}, colorNodeDot)
	}

	rim := colorNodeRim
	if focused {
		rim = colorNodeFocus
	}
	c.StrokeRect(Rect{X: 0, Y: -nodeTitleHeight, Width: n.Width, Height: n.Height + nodeTitleHeight}, 1, rim)
	n.dirty = false
}
