package artistloader

import (
	"math"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// fixedFont measures every rune as 6 pixels wide.
type fixedFont struct{}

func (fixedFont) MeasureString(s string) (float64, float64) {
	return float64(utf8.RuneCountInString(s)) * 6, 14
}

func (fixedFont) LineHeight() float64 { return 14 }

type drawOp struct {
	kind  string
	rect  Rect
	text  string
	x, y  float64
	color Color
}

// recordCanvas remembers every draw call instead of painting.
type recordCanvas struct {
	ops []drawOp
}

func newRecordCanvas() *recordCanvas { return &recordCanvas{} }

func (c *recordCanvas) FillRect(r Rect, col Color) {
	c.ops = append(c.ops, drawOp{kind: "fill", rect: r, color: col})
}

func (c *recordCanvas) StrokeRect(r Rect, _ float64, col Color) {
	c.ops = append(c.ops, drawOp{kind: "stroke", rect: r, color: col})
}

func (c *recordCanvas) FillCircle(cx, cy, _ float64, col Color) {
	c.ops = append(c.ops, drawOp{kind: "circle", x: cx, y: cy, color: col})
}

func (c *recordCanvas) StrokeCircle(cx, cy, _, _ float64, col Color) {
	c.ops = append(c.ops, drawOp{kind: "ring", x: cx, y: cy, color: col})
}

func (c *recordCanvas) DrawText(s string, x, midY float64, _ TextAlign, col Color) {
	c.ops = append(c.ops, drawOp{kind: "text", text: s, x: x, y: midY, color: col})
}

func (c *recordCanvas) DrawImage(_ *ebiten.Image, x, y, alpha float64) {
	c.ops = append(c.ops, drawOp{kind: "image", x: x, y: y, color: Color{A: alpha}})
}

func (c *recordCanvas) Font() Font { return fixedFont{} }

func (c *recordCanvas) reset() { c.ops = c.ops[:0] }

// text returns the first text op drawing s.
func (c *recordCanvas) text(s string) (drawOp, bool) {
	for _, op := range c.ops {
		if op.kind == "text" && op.text == s {
			return op, true
		}
	}
	return drawOp{}, false
}

func (c *recordCanvas) count(kind string) int {
	n := 0
	for _, op := range c.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

type promptCall struct {
	label     string
	current   string
	onConfirm func(string)
}

type menuCall struct {
	menu *Menu
	x, y float64
}

// recordHost is a Host that records every callback.
type recordHost struct {
	dirty   int
	fit     float64
	menus   []menuCall
	prompts []promptCall
	events  []ChangeEvent
}

func (h *recordHost) MarkDirty()             { h.dirty++ }
func (h *recordHost) FitHeight(h2 float64)   { h.fit = h2 }
func (h *recordHost) Changed(ev ChangeEvent) { h.events = append(h.events, ev) }
func (h *recordHost) OpenMenu(m *Menu, x, y float64) {
	h.menus = append(h.menus, menuCall{menu: m, x: x, y: y})
}

func (h *recordHost) Prompt(label, current string, onConfirm func(string)) {
	h.prompts = append(h.prompts, promptCall{label: label, current: current, onConfirm: onConfirm})
}

func (h *recordHost) lastMenu(t *testing.T) *Menu {
	t.Helper()
	if len(h.menus) == 0 {
		t.Fatal("no menu was opened")
	}
	return h.menus[len(h.menus)-1].menu
}

func (h *recordHost) eventTypes() []ChangeType {
	out := make([]ChangeType, len(h.events))
	for i, ev := range h.events {
		out[i] = ev.Type
	}
	return out
}

// fakePreview records preview requests.
type fakePreview struct {
	calls []string
}

func (p *fakePreview) Show(name string, _, _ float64) { p.calls = append(p.calls, "show:"+name) }
func (p *fakePreview) ScheduleHide()                  { p.calls = append(p.calls, "schedule-hide") }
func (p *fakePreview) CancelHide()                    { p.calls = append(p.calls, "cancel-hide") }
func (p *fakePreview) Hide()                          { p.calls = append(p.calls, "hide") }

func (p *fakePreview) has(call string) bool {
	for _, c := range p.calls {
		if c == call {
			return true
		}
	}
	return false
}

var testEntries = []Entry{
	{Name: "Akira Toriyama", Keywords: "akira toriyama, dragon ball style"},
	{Name: "Hayao Miyazaki", Keywords: "studio ghibli"},
	{Name: "Greg Rutkowski", Keywords: "greg rutkowski, artstation"},
}

const testListWidth = 300.0

// newTestList builds a list over testEntries with a recording host and
// preview.
func newTestList() (*ArtistList, *recordHost, *fakePreview) {
	host := &recordHost{}
	preview := &fakePreview{}
	l := NewArtistList(host, NewStaticCatalog(testEntries), preview, DefaultListOptions())
	return l, host, preview
}

// drawList lays the list out at the origin.
func drawList(l *ArtistList) *recordCanvas {
	c := newRecordCanvas()
	l.Draw(c, testListWidth, 0)
	return c
}

func hitCenter(t *testing.T, w *ArtistWidget, role HitRole) (float64, float64) {
	t.Helper()
	r, ok := w.hits.get(role)
	if !ok {
		t.Fatalf("%s has no %v area", w.Name(), role)
	}
	return r.X + r.Width/2, r.Y + r.Height/2
}

var testEpoch = time.Unix(0, 0)

func pointerAt(kind PointerKind, x, y float64, at time.Duration) PointerEvent {
	return PointerEvent{Kind: kind, X: x, Y: y, Button: MouseButtonLeft, Time: testEpoch.Add(at), ScreenX: x, ScreenY: y}
}

func rightPointerAt(kind PointerKind, x, y float64, at time.Duration) PointerEvent {
	ev := pointerAt(kind, x, y, at)
	ev.Button = MouseButtonRight
	return ev
}

// checkSync fails unless the artist rows in render order match value order.
func checkSync(t *testing.T, l *ArtistList) {
	t.Helper()
	var rendered []*ArtistWidget
	for _, w := range l.widgets {
		if aw, ok := w.(*ArtistWidget); ok {
			rendered = append(rendered, aw)
		}
	}
	if len(rendered) != len(l.artists) {
		t.Fatalf("rendered %d artist rows, list holds %d", len(rendered), len(l.artists))
	}
	for i := range rendered {
		if rendered[i] != l.artists[i] {
			t.Fatalf("row %d: render order has %s, value order has %s", i, rendered[i].Name(), l.artists[i].Name())
		}
	}
	if l.widgets[0] != Widget(l.header) {
		t.Fatal("header is not first")
	}
	n := len(l.widgets)
	if l.widgets[n-2] != Widget(l.divider) || l.widgets[n-1] != Widget(l.addButton) {
		t.Fatal("divider and add button are not last")
	}
}
