package artistloader

import (
	"slices"
	"testing"
)

func newTestScene(t *testing.T) *Scene {
	t.Helper()
	s := NewScene(NewStaticCatalog(testEntries))
	t.Cleanup(s.Close)
	return s
}

// runFrames updates and draws n frames. The returned canvas holds the last
// frame.
func runFrames(s *Scene, n int) *recordCanvas {
	c := newRecordCanvas()
	for range n {
		s.Update()
		c.reset()
		s.drawTo(c, c)
	}
	return c
}

// settle runs until every injected event is consumed, plus one frame.
func settle(s *Scene) *recordCanvas {
	return runFrames(s, len(s.injectQueue)+1)
}

// rowPoint returns the screen center of a row's hit area.
func rowPoint(t *testing.T, s *Scene, n *Node, w *ArtistWidget, role HitRole) (float64, float64) {
	t.Helper()
	x, y := hitCenter(t, w, role)
	return s.Camera().WorldToScreen(n.X+x, n.Y+y)
}

// sceneWithRow returns a scene holding one node at (40, 60) with a single
// drawn row.
func sceneWithRow(t *testing.T, v ArtistValue) (*Scene, *Node, *ArtistWidget) {
	t.Helper()
	s := newTestScene(t)
	n := s.AddNode(40, 60)
	w := n.List().AddArtist(&v)
	runFrames(s, 1)
	return s, n, w
}

func topContextMenu(t *testing.T, s *Scene) *ContextMenu {
	t.Helper()
	o := s.Overlays()
	if len(o) == 0 {
		t.Fatal("no overlay open")
	}
	cm, ok := o[len(o)-1].(*ContextMenu)
	if !ok {
		t.Fatalf("top overlay is %T, want *ContextMenu", o[len(o)-1])
	}
	return cm
}

// clickMenuItem clicks the item labeled label in the top menu.
func clickMenuItem(t *testing.T, s *Scene, label string) {
	t.Helper()
	cm := topContextMenu(t, s)
	i := cm.Menu().Index(label)
	r, ok := cm.ItemRect(i)
	if !ok {
		t.Fatalf("menu item %q has no rect", label)
	}
	s.InjectClick(r.X+r.Width/2, r.Y+r.Height/2)
	settle(s)
}

func TestScene_ClickToggles(t *testing.T) {
	s, n, w := sceneWithRow(t, ArtistValue{Artist: "Akira Toriyama", Strength: 1})
	var events []ChangeEvent
	s.OnChange(func(ev ChangeEvent) { events = append(events, ev) })

	s.InjectClick(rowPoint(t, s, n, w, HitToggle))
	settle(s)

	if !w.Value().On {
		t.Fatal("row is still off after a click on its toggle")
	}
	if len(events) != 1 || events[0].Type != ChangeValue || events[0].NodeID != n.ID {
		t.Errorf("events = %+v, want one value change from node %d", events, n.ID)
	}
	if n.X != 40 || n.Y != 60 {
		t.Errorf("node moved to (%v, %v)", n.X, n.Y)
	}
}

func TestScene_DragStrength(t *testing.T) {
	s, n, w := sceneWithRow(t, ArtistValue{On: true, Artist: "Akira Toriyama", Strength: 1})
	x, y := rowPoint(t, s, n, w, HitStrengthValue)

	s.InjectDrag(x, y, x+60, y, 7)
	settle(s)

	if got := w.Value().Strength; !approxEqual(got, 1.6, epsilon) {
		t.Errorf("Strength = %v, want 1.6", got)
	}
	if len(s.Overlays()) != 0 {
		t.Error("a drag opened an overlay")
	}
	if w.Gesture() != GestureIdle {
		t.Errorf("Gesture = %v after release, want idle", w.Gesture())
	}
	if n.X != 40 {
		t.Errorf("node X = %v, want 40", n.X)
	}
}

func TestScene_DragStrengthZoomed(t *testing.T) {
	// Three of the sixty 1px moves are spent crossing the drag threshold.
	for _, zoom := range []float64{1, 1.5, 2.5, 4} {
		s, n, w := sceneWithRow(t, ArtistValue{On: true, Artist: "Akira Toriyama", Strength: 1})
		s.Camera().Zoom = zoom
		x, y := rowPoint(t, s, n, w, HitStrengthValue)

		s.InjectPress(x, y)
		for i := 1; i <= 60; i++ {
			s.InjectMove(x+float64(i), y)
		}
		s.InjectRelease(x+60, y)
		settle(s)

		if got := w.Value().Strength; !approxEqual(got, 1.57, epsilon) {
			t.Errorf("zoom %v: Strength = %v, want 1.57", zoom, got)
		}
	}
}

func TestScene_TapOpensPrompt(t *testing.T) {
	s, n, w := sceneWithRow(t, ArtistValue{On: true, Artist: "Akira Toriyama", Strength: 1})

	s.InjectClick(rowPoint(t, s, n, w, HitStrengthValue))
	settle(s)

	o := s.Overlays()
	if len(o) != 1 {
		t.Fatalf("overlays = %d, want 1", len(o))
	}
	p, ok := o[0].(*NumberPrompt)
	if !ok {
		t.Fatalf("overlay is %T, want *NumberPrompt", o[0])
	}
	if p.Text() != "1.00" {
		t.Errorf("prompt text = %q, want 1.00", p.Text())
	}

	s.InjectText("2.25")
	s.InjectEnter()
	settle(s)

	if got := w.Value().Strength; !approxEqual(got, 2.25, epsilon) {
		t.Errorf("Strength = %v, want 2.25", got)
	}
	if len(s.Overlays()) != 0 {
		t.Error("prompt still open after Enter")
	}
}

func TestScene_EscapeCancelsPrompt(t *testing.T) {
	s, n, w := sceneWithRow(t, ArtistValue{On: true, Artist: "Akira Toriyama", Strength: 1})

	s.InjectClick(rowPoint(t, s, n, w, HitStrengthValue))
	s.InjectText("3")
	s.InjectEscape()
	settle(s)

	if got := w.Value().Strength; got != 1 {
		t.Errorf("Strength = %v after Escape, want 1", got)
	}
	if len(s.Overlays()) != 0 {
		t.Error("prompt still open after Escape")
	}
}

func TestScene_SelectArtist(t *testing.T) {
	s, n, w := sceneWithRow(t, DefaultArtistValue())

	s.InjectClick(rowPoint(t, s, n, w, HitName))
	settle(s)
	clickMenuItem(t, s, "Hayao Miyazaki")

	if got := w.Value().Artist; got != "Hayao Miyazaki" {
		t.Errorf("Artist = %q, want Hayao Miyazaki", got)
	}
	if len(s.Overlays()) != 0 {
		t.Error("selection menu still open")
	}
}

func TestScene_ContextMenuRemove(t *testing.T) {
	s := newTestScene(t)
	n := s.AddNode(40, 60)
	first := n.List().AddArtist(&ArtistValue{Artist: "Akira Toriyama", Strength: 1})
	second := n.List().AddArtist(&ArtistValue{Artist: "Greg Rutkowski", Strength: 1})
	runFrames(s, 1)

	s.InjectRightClick(rowPoint(t, s, n, first, HitName))
	settle(s)
	clickMenuItem(t, s, "Remove")

	if got := n.List().Artists(); len(got) != 1 || got[0] != second {
		t.Fatalf("rows after Remove = %d, want only the second", len(got))
	}
	if !first.Removed() {
		t.Error("removed row not marked removed")
	}
	checkSync(t, n.List())
}

func TestScene_PressOutsideMenuDismisses(t *testing.T) {
	s, n, w := sceneWithRow(t, ArtistValue{Artist: "Akira Toriyama", Strength: 1})

	s.InjectRightClick(rowPoint(t, s, n, w, HitName))
	settle(s)
	topContextMenu(t, s)

	// The press lands on the row's toggle but only closes the menu.
	s.InjectClick(rowPoint(t, s, n, w, HitToggle))
	settle(s)

	if len(s.Overlays()) != 0 {
		t.Error("menu still open after a press outside")
	}
	if w.Value().On {
		t.Error("press that closed the menu also reached the row")
	}
}

func TestScene_HoverPreview(t *testing.T) {
	s, n, w := sceneWithRow(t, ArtistValue{On: true, Artist: "Hayao Miyazaki", Strength: 1})
	p := s.Preview()

	s.InjectMove(rowPoint(t, s, n, w, HitName))
	runFrames(s, 1)
	if p.Visible() || p.Target() != "Hayao Miyazaki" {
		t.Fatalf("after hover: visible %v target %q, want pending Hayao Miyazaki", p.Visible(), p.Target())
	}

	c := runFrames(s, 40)
	if !p.Visible() {
		t.Fatal("preview not shown after the delay")
	}
	if _, ok := c.text("studio ghibli"); !ok {
		t.Error("preview card does not show the keywords")
	}

	s.InjectMove(5, 5)
	runFrames(s, 1)
	if !p.Visible() {
		t.Error("preview hid before the hide delay")
	}
	runFrames(s, 40)
	if p.Visible() {
		t.Error("preview still visible after leaving the node")
	}
}

func TestScene_TitleDragMovesNode(t *testing.T) {
	s, n, _ := sceneWithRow(t, DefaultArtistValue())
	x, y := s.Camera().WorldToScreen(n.X+100, n.Y-nodeTitleHeight/2)

	s.InjectDrag(x, y, x+50, y+30, 4)
	settle(s)

	if !approxEqual(n.X, 90, epsilon) || !approxEqual(n.Y, 90, epsilon) {
		t.Errorf("node at (%v, %v), want (90, 90)", n.X, n.Y)
	}
}

func TestScene_ResizeGrip(t *testing.T) {
	s, n, _ := sceneWithRow(t, DefaultArtistValue())
	h := n.Height
	x, y := s.Camera().WorldToScreen(n.X+n.Width-3, n.Y+n.Height-3)

	s.InjectDrag(x, y, x+100, y+80, 3)
	settle(s)

	if !approxEqual(n.Width, 397, epsilon) {
		t.Errorf("Width = %v, want 397", n.Width)
	}
	if !approxEqual(n.Height, h+77, epsilon) {
		t.Errorf("Height = %v, want %v", n.Height, h+77)
	}
}

func TestScene_BackgroundPan(t *testing.T) {
	s, n, _ := sceneWithRow(t, DefaultArtistValue())
	var presses int
	handle := s.OnBackgroundPointer(func(PointerEvent) { presses++ })
	bx, by := s.Camera().WorldToScreen(n.X, n.Y)

	s.InjectDrag(1000, 700, 900, 650, 3)
	settle(s)

	ax, ay := s.Camera().WorldToScreen(n.X, n.Y)
	if !approxEqual(ax-bx, -100, epsilon) || !approxEqual(ay-by, -50, epsilon) {
		t.Errorf("node moved on screen by (%v, %v), want (-100, -50)", ax-bx, ay-by)
	}
	if presses != 1 {
		t.Errorf("background presses = %d, want 1", presses)
	}

	handle.Remove()
	s.InjectClick(1000, 700)
	settle(s)
	if presses != 1 {
		t.Errorf("removed handler fired: presses = %d", presses)
	}
}

func TestScene_WheelZoom(t *testing.T) {
	s := newTestScene(t)
	wx, wy := s.Camera().ScreenToWorld(640, 400)

	s.InjectWheel(640, 400, 1)
	settle(s)

	if !approxEqual(s.Camera().Zoom, wheelZoomStep, epsilon) {
		t.Errorf("Zoom = %v, want %v", s.Camera().Zoom, wheelZoomStep)
	}
	ax, ay := s.Camera().ScreenToWorld(640, 400)
	if !approxEqual(ax, wx, 1e-6) || !approxEqual(ay, wy, 1e-6) {
		t.Errorf("point under the cursor moved from (%v, %v) to (%v, %v)", wx, wy, ax, ay)
	}
}

func TestScene_NodeMenuRemovesNode(t *testing.T) {
	s, n, w := sceneWithRow(t, DefaultArtistValue())
	var types []ChangeType
	s.OnChange(func(ev ChangeEvent) { types = append(types, ev.Type) })

	x, y := s.Camera().WorldToScreen(n.X+100, n.Y-nodeTitleHeight/2)
	s.InjectRightClick(x, y)
	settle(s)
	if got := topContextMenu(t, s).Menu().Title; got != n.Title {
		t.Errorf("menu title = %q, want %q", got, n.Title)
	}
	clickMenuItem(t, s, "Remove Node")

	if len(s.Nodes()) != 0 {
		t.Fatalf("nodes = %d, want 0", len(s.Nodes()))
	}
	if !n.Removed() || !w.Removed() {
		t.Error("node or its row not marked removed")
	}
	if !slices.Contains(types, ChangeNodeRemoved) {
		t.Errorf("events = %v, want a node removal", types)
	}
	if n.HandlePointer(pointerAt(PointerDown, n.X+10, n.Y+10, 0)) {
		t.Error("removed node consumed input")
	}
}

func TestScene_PressBringsToFront(t *testing.T) {
	s := newTestScene(t)
	back := s.AddNode(0, 100)
	front := s.AddNode(200, 100)
	runFrames(s, 1)
	if s.Nodes()[1] != front {
		t.Fatal("newest node is not on top")
	}

	x, y := s.Camera().WorldToScreen(back.X+50, back.Y-nodeTitleHeight/2)
	s.InjectClick(x, y)
	settle(s)

	if got := s.Nodes(); got[len(got)-1] != back {
		t.Error("pressed node not brought to front")
	}
}

func TestScene_OnChangeRemove(t *testing.T) {
	s := newTestScene(t)
	var a, b int
	ha := s.OnChange(func(ChangeEvent) { a++ })
	s.OnChange(func(ChangeEvent) { b++ })

	n := s.AddNode(0, 0)
	ha.Remove()
	n.List().AddArtist(nil)

	if a != 1 || b != 2 {
		t.Errorf("handler calls = %d, %d; want 1, 2", a, b)
	}
	CallbackHandle{}.Remove()
}

type recordStore struct {
	events []ChangeEvent
}

func (r *recordStore) EmitEvent(ev ChangeEvent) { r.events = append(r.events, ev) }

func TestScene_EntityStore(t *testing.T) {
	s := newTestScene(t)
	store := &recordStore{}
	s.SetEntityStore(store)

	n := s.AddNode(0, 0)
	w := n.List().AddArtist(nil)
	w.SetStrength(2)
	s.RemoveNode(n)

	want := []ChangeType{ChangeNodeAdded, ChangeAdded, ChangeValue, ChangeReset, ChangeNodeRemoved}
	got := make([]ChangeType, len(store.events))
	for i, ev := range store.events {
		got[i] = ev.Type
		if ev.NodeID != n.ID {
			t.Errorf("event %d NodeID = %d, want %d", i, ev.NodeID, n.ID)
		}
	}
	if !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestScene_NodeByID(t *testing.T) {
	s := newTestScene(t)
	a := s.AddNode(0, 0)
	b := s.AddNode(400, 0)
	if a.ID == b.ID {
		t.Fatal("node ids collide")
	}
	if s.NodeByID(b.ID) != b || s.NodeByID(99) != nil {
		t.Error("NodeByID lookup wrong")
	}
	if !s.RemoveNode(a) {
		t.Fatal("RemoveNode returned false")
	}
	if s.RemoveNode(a) {
		t.Error("second RemoveNode returned true")
	}
}

func TestScene_ClockAdvancesPerUpdate(t *testing.T) {
	s := newTestScene(t)
	start := s.Now()
	runFrames(s, 3)
	if s.Frame() != 3 {
		t.Errorf("Frame = %d, want 3", s.Frame())
	}
	if got := s.Now().Sub(start); got != 3*frameTime() {
		t.Errorf("clock advanced %v, want %v", got, 3*frameTime())
	}
}

func TestScene_DirtyTracking(t *testing.T) {
	s := newTestScene(t)
	s.AddNode(0, 0)
	runFrames(s, 1)
	s.Update()
	if s.Dirty() {
		t.Error("idle frame marked dirty")
	}
	s.InjectMove(10, 10)
	s.Update()
	if !s.Dirty() {
		t.Error("pointer move did not mark dirty")
	}
}

func TestScene_CatalogRefreshMarksNodes(t *testing.T) {
	cat := NewCatalog(StaticSource(testEntries))
	s := NewScene(cat)
	t.Cleanup(s.Close)
	n := s.AddNode(0, 0)
	runFrames(s, 1)
	if n.dirty {
		t.Fatal("node dirty after draw")
	}

	if err := cat.Refresh(); err != nil {
		t.Fatal(err)
	}
	s.Update()
	if !n.dirty || !s.Dirty() {
		t.Error("catalog refresh did not mark the node dirty")
	}

	s.Close()
	runFrames(s, 1)
	if err := cat.Refresh(); err != nil {
		t.Fatal(err)
	}
	s.Update()
	if n.dirty {
		t.Error("closed scene still follows its catalog")
	}
}

func TestScene_SetViewportKeepsTopLeft(t *testing.T) {
	s := newTestScene(t)
	s.Camera().Pan(-30, -20)
	wx, wy := s.Camera().ScreenToWorld(0, 0)

	s.SetViewport(640, 480)

	if vp := s.Camera().Viewport; vp.Width != 640 || vp.Height != 480 {
		t.Errorf("Viewport = %+v", vp)
	}
	ax, ay := s.Camera().ScreenToWorld(0, 0)
	if !approxEqual(ax, wx, 1e-6) || !approxEqual(ay, wy, 1e-6) {
		t.Errorf("top-left moved from (%v, %v) to (%v, %v)", wx, wy, ax, ay)
	}
}

func TestScene_DrawCullsOffscreenNodes(t *testing.T) {
	s := newTestScene(t)
	s.AddNode(40, 60)
	far := s.AddNode(10000, 10000)
	far.Title = "Far Away"

	c := runFrames(s, 1)

	if _, ok := c.text(defaultNodeTitle); !ok {
		t.Error("visible node not drawn")
	}
	if _, ok := c.text("Far Away"); ok {
		t.Error("offscreen node drawn")
	}
}
