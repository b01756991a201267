package artistloader

import (
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ChangeType classifies a ChangeEvent.
type ChangeType uint8

const (
	ChangeAdded     ChangeType = iota // a row was appended
	ChangeRemoved                     // a row was removed
	ChangeMoved                       // a row swapped places with a neighbour
	ChangeValue                       // a row's value changed
	ChangeToggleAll                   // every row was switched together
	ChangeReset                       // every row was cleared
	ChangeNodeAdded
	ChangeNodeRemoved
)

func (t ChangeType) String() string {
	switch t {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeMoved:
		return "moved"
	case ChangeValue:
		return "value"
	case ChangeToggleAll:
		return "toggle-all"
	case ChangeReset:
		return "reset"
	case ChangeNodeAdded:
		return "node-added"
	case ChangeNodeRemoved:
		return "node-removed"
	default:
		return "unknown"
	}
}

// ChangeEvent reports one change to a node's artists. Index is the row's
// value position after the change, or -1 for whole-list changes. From is
// the position before a move.
type ChangeEvent struct {
	Type   ChangeType
	NodeID uint32
	Widget string
	Index  int
	From   int
	Value  ArtistValue
}

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, change events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event ChangeEvent)
}

// Overlay is a screen-space modal surface such as a menu or prompt. The
// topmost overlay receives all input until it is done.
type Overlay interface {
	Draw(c Canvas, screen Rect)
	HandlePointer(ev PointerEvent) bool
	HandleWheel(dy float64) bool
	HandleKeys(k KeyInput)
	Done() bool
	Cancel()
}

// Scene owns the nodes, the camera, overlays, the preview card and input
// state. All methods must be called from the game loop goroutine.
type Scene struct {
	// ClearColor is painted behind everything each frame.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	camera   *Camera
	nodes    []*Node
	nextID   uint32
	overlays []Overlay

	catalog        *Catalog
	catalogCancel  func()
	catalogChanged atomic.Bool
	preview        *Preview
	font           *TTFFont

	listOptions   ListOptions
	nodeWidth     float64
	nodeMinHeight float64

	store    EntityStore
	handlers handlerRegistry
	pointer  pointerState

	injectQueue     []syntheticEvent
	screenshotQueue []string
	testRunner      *TestRunner
	updateFunc      func() error

	now      time.Time
	frame    uint64
	live     bool
	retained bool
	dirty    bool
	debug    bool
	stats    frameStats
}

// NewScene creates an empty scene choosing artists from catalog. catalog
// may be nil for an empty one.
func NewScene(catalog *Catalog) *Scene {
	if catalog == nil {
		catalog = NewCatalog(nil)
	}
	s := &Scene{
		ClearColor:    RGB(0x20, 0x20, 0x20),
		ScreenshotDir: "screenshots",
		camera:        newCamera(Rect{Width: 1280, Height: 800}),
		catalog:       catalog,
		preview:       NewPreview(catalog, nil),
		listOptions:   DefaultListOptions(),
		nodeWidth:     defaultNodeWidth,
		nodeMinHeight: defaultNodeMinHeight,
		now:           time.Unix(0, 0),
		dirty:         true,
	}
	s.catalogCancel = catalog.OnRefresh(func() { s.catalogChanged.Store(true) })
	return s
}

// Close detaches the scene from its catalog.
func (s *Scene) Close() {
	if s.catalogCancel != nil {
		s.catalogCancel()
		s.catalogCancel = nil
	}
}

// Camera returns the canvas camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Catalog returns the shared catalog.
func (s *Scene) Catalog() *Catalog { return s.catalog }

// Preview returns the preview card.
func (s *Scene) Preview() *Preview { return s.preview }

// SetImageLoader sets how preview images are loaded.
func (s *Scene) SetImageLoader(l ImageLoader) {
	s.preview.loader = l
	s.preview.Invalidate()
}

// SetFont sets the UI font. nil restores the default.
func (s *Scene) SetFont(f *TTFFont) { s.font = f }

// SetListOptions sets the strength options used by nodes added later.
func (s *Scene) SetListOptions(o ListOptions) { s.listOptions = o.withDefaults() }

// SetNodeSize sets the width and minimum height of nodes added later.
func (s *Scene) SetNodeSize(width, minHeight float64) {
	if width > 0 {
		s.nodeWidth = max(width, minNodeWidth)
	}
	if minHeight > 0 {
		s.nodeMinHeight = minHeight
	}
}

// SetViewport resizes the camera viewport, keeping the world point at the
// top-left fixed.
func (s *Scene) SetViewport(width, height float64) {
	vp := s.camera.Viewport
	if vp.Width == width && vp.Height == height {
		return
	}
	wx, wy := s.camera.ScreenToWorld(vp.X, vp.Y)
	s.camera.Viewport = Rect{X: vp.X, Y: vp.Y, Width: width, Height: height}
	nx, ny := s.camera.ScreenToWorld(vp.X, vp.Y)
	s.camera.X += wx - nx
	s.camera.Y += wy - ny
	s.dirty = true
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// stats are logged at Debug level and the package log level is lowered to
// Debug.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	if enabled {
		SetLogLevel(slog.LevelDebug)
	}
}

// Now returns the scene clock, which advances one tick per Update.
func (s *Scene) Now() time.Time { return s.now }

// Frame returns the number of Updates run.
func (s *Scene) Frame() uint64 { return s.frame }

// --- Nodes ---

// AddNode creates an empty node with its body's top-left at world (x, y).
func (s *Scene) AddNode(x, y float64) *Node {
	s.nextID++
	return s.addNode(s.nextID, x, y)
}

func (s *Scene) addNode(id uint32, x, y float64) *Node {
	n := newNode(s, id, x, y)
	s.nodes = append(s.nodes, n)
	s.emitChange(ChangeEvent{Type: ChangeNodeAdded, NodeID: n.ID, Index: -1})
	return n
}

// RemoveNode takes n out of the scene.
func (s *Scene) RemoveNode(n *Node) bool {
	i := slices.Index(s.nodes, n)
	if i < 0 {
		return false
	}
	s.nodes = slices.Delete(s.nodes, i, i+1)
	n.list.Clear()
	n.removed = true
	if s.pointer.hoverNode == n {
		s.pointer.hoverNode = nil
	}
	if s.pointer.node == n {
		s.pointer.node = nil
	}
	s.dirty = true
	s.emitChange(ChangeEvent{Type: ChangeNodeRemoved, NodeID: n.ID, Index: -1})
	return true
}

// Nodes returns the nodes in draw order, back to front.
func (s *Scene) Nodes() []*Node {
	return slices.Clone(s.nodes)
}

// NodeByID returns the node with id, or nil.
func (s *Scene) NodeByID(id uint32) *Node {
	for _, n := range s.nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// BringToFront draws n above every other node.
func (s *Scene) BringToFront(n *Node) {
	i := slices.Index(s.nodes, n)
	if i < 0 || i == len(s.nodes)-1 {
		return
	}
	s.nodes = append(slices.Delete(s.nodes, i, i+1), n)
	s.dirty = true
}

// nodeAt returns the topmost node under world (x, y).
func (s *Scene) nodeAt(x, y float64) *Node {
	for i := len(s.nodes) - 1; i >= 0; i-- {
		if s.nodes[i].Bounds().Contains(x, y) {
			return s.nodes[i]
		}
	}
	return nil
}

func (s *Scene) emitChange(ev ChangeEvent) {
	s.dirty = true
	if s.store != nil {
		s.store.EmitEvent(ev)
	}
	for _, h := range slices.Clone(s.handlers.change) {
		h.fn(ev)
	}
}

// --- Overlays ---

// OpenMenu presents m with its top-left at screen (x, y). Any open
// overlay is cancelled first.
func (s *Scene) OpenMenu(m *Menu, x, y float64) *ContextMenu {
	cm := NewContextMenu(m, x, y)
	s.pushOverlay(cm)
	return cm
}

// Prompt opens a numeric prompt next to the pointer. It implements
// Prompter.
func (s *Scene) Prompt(label, current string, onConfirm func(string)) {
	s.pushOverlay(NewNumberPrompt(label, current, s.pointer.lastX, s.pointer.lastY, onConfirm))
}

func (s *Scene) pushOverlay(o Overlay) {
	s.CloseOverlays()
	s.overlays = append(s.overlays, o)
	s.dirty = true
}

// CloseOverlays cancels every open menu and prompt.
func (s *Scene) CloseOverlays() {
	for len(s.overlays) > 0 {
		o := s.overlays[len(s.overlays)-1]
		s.overlays = s.overlays[:len(s.overlays)-1]
		o.Cancel()
	}
}

// Overlays returns the open overlays, bottom to top.
func (s *Scene) Overlays() []Overlay {
	return slices.Clone(s.overlays)
}

func (s *Scene) topOverlay() Overlay {
	s.pruneOverlays()
	if len(s.overlays) == 0 {
		return nil
	}
	return s.overlays[len(s.overlays)-1]
}

func (s *Scene) pruneOverlays() {
	s.overlays = slices.DeleteFunc(s.overlays, Overlay.Done)
}

// --- Frame ---

func frameTime() time.Duration {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

// Update processes input and advances the preview, tweens and clock by one
// tick.
func (s *Scene) Update() {
	start := time.Now()
	dt := frameTime()
	s.now = s.now.Add(dt)
	s.frame++

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if s.catalogChanged.Swap(false) {
		s.preview.Invalidate()
		for _, n := range s.nodes {
			n.MarkDirty()
		}
		logger().Debug("catalog changed", slog.Int("artists", s.catalog.Len()))
	}

	s.processInput()
	s.preview.Update(dt)
	s.camera.update(float32(dt.Seconds()))
	if s.preview.Visible() || s.preview.Pending() || s.camera.Scrolling() {
		s.dirty = true
	}
	s.stats.updateTime = time.Since(start)
}

// Dirty reports whether anything changed since the last Draw.
func (s *Scene) Dirty() bool { return s.dirty }

// Draw paints the nodes through the camera, then overlays and the preview
// in screen space. When the screen is retained between frames an
// unchanged scene is not repainted.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.retained && !s.dirty && len(s.screenshotQueue) == 0 {
		return
	}
	start := time.Now()
	screen.Fill(s.ClearColor.toRGBA())

	tx, ty := s.camera.offset()
	world := newEbitenCanvas(screen, s.font, s.camera.Zoom, tx, ty)
	flat := newEbitenCanvas(screen, s.font, 1, 0, 0)
	s.drawTo(world, flat)

	s.flushScreenshots(screen)
	s.stats.drawTime = time.Since(start)
	s.debugLog(s.stats)
}

// drawTo paints everything onto the given world and screen canvases.
func (s *Scene) drawTo(world, screen Canvas) {
	widgets := 0
	for i, n := range s.nodes {
		if s.camera.culled(n.Bounds()) {
			continue
		}
		n.Draw(world, i == len(s.nodes)-1)
		widgets += len(n.list.widgets)
	}
	vp := s.camera.Viewport
	for _, o := range s.overlays {
		if !o.Done() {
			o.Draw(screen, vp)
		}
	}
	s.preview.Draw(screen, vp)

	s.stats.nodes = len(s.nodes)
	s.stats.widgets = widgets
	s.stats.overlays = len(s.overlays)
	s.dirty = false
}
