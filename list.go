package artistloader

import (
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// EnabledState summarizes the On flags of a list's rows.
type EnabledState uint8

const (
	AllOff EnabledState = iota // every row off, or no rows
	AllOn                      // every row on
	Mixed                      // some of each
)

func (s EnabledState) String() string {
	switch s {
	case AllOn:
		return "all-on"
	case Mixed:
		return "mixed"
	default:
		return "all-off"
	}
}

// ListOptions tune a list's strength control. They are fixed for the life
// of the list.
type ListOptions struct {
	Range           StrengthRange
	Step            float64
	// DragSensitivity is strength per screen pixel; the camera zoom does
	// not change it.
	DragSensitivity float64
	DragThreshold   float64 // screen pixels
	TapDuration     time.Duration
}

// DefaultListOptions returns the stock strength behaviour.
func DefaultListOptions() ListOptions {
	return ListOptions{
		Range:           DefaultStrengthRange,
		Step:            defaultStrengthStep,
		DragSensitivity: defaultDragSensitivity,
		DragThreshold:   defaultDragThreshold,
		TapDuration:     defaultTapDuration,
	}
}

func (o ListOptions) withDefaults() ListOptions {
	d := DefaultListOptions()
	if !o.Range.Valid() {
		o.Range = d.Range
	}
	if o.Step <= 0 {
		o.Step = d.Step
	}
	if o.DragSensitivity <= 0 {
		o.DragSensitivity = d.DragSensitivity
	}
	if o.DragThreshold <= 0 {
		o.DragThreshold = d.DragThreshold
	}
	if o.TapDuration <= 0 {
		o.TapDuration = d.TapDuration
	}
	return o
}

// ArtistList keeps the rendered widget sequence and the artist value
// sequence in step. Render order is header, artists, divider, add button.
type ArtistList struct {
	host    Host
	catalog *Catalog
	preview PreviewService
	opts    ListOptions

	header    *HeaderWidget
	divider   *DividerWidget
	addButton *ButtonWidget

	widgets []Widget
	artists []*ArtistWidget
	counter int

	// active is the widget that consumed the current press.
	active Widget
}

// NewArtistList creates an empty list. Any of host, catalog and preview may
// be nil.
func NewArtistList(host Host, catalog *Catalog, preview PreviewService, opts ListOptions) *ArtistList {
	if host == nil {
		host = nopHost{}
	}
	if catalog == nil {
		catalog = NewCatalog(nil)
	}
	if preview == nil {
		preview = nopPreview{}
	}
	l := &ArtistList{host: host, catalog: catalog, preview: preview, opts: opts.withDefaults()}
	l.header = newHeaderWidget(l.EnabledState, l.ToggleAll)
	l.divider = newDividerWidget()
	l.addButton = newButtonWidget("add_artist", "+ Add Artist", func() { l.AddArtist(nil) })
	l.widgets = []Widget{l.header, l.divider, l.addButton}
	return l
}

// Options returns the list's strength options.
func (l *ArtistList) Options() ListOptions { return l.opts }

// Catalog returns the catalog rows choose from.
func (l *ArtistList) Catalog() *Catalog { return l.catalog }

// Len returns the number of artist rows.
func (l *ArtistList) Len() int { return len(l.artists) }

// Artists returns the artist rows in value order.
func (l *ArtistList) Artists() []*ArtistWidget {
	return slices.Clone(l.artists)
}

// Widgets returns every row in render order.
func (l *ArtistList) Widgets() []Widget {
	return slices.Clone(l.widgets)
}

// Values returns a copy of every artist value in order.
func (l *ArtistList) Values() []ArtistValue {
	out := make([]ArtistValue, len(l.artists))
	for i, w := range l.artists {
		out[i] = w.value
	}
	return out
}

// IndexOf returns w's value position, or -1.
func (l *ArtistList) IndexOf(w *ArtistWidget) int {
	return slices.Index(l.artists, w)
}

func (l *ArtistList) renderIndex(w Widget) int {
	return slices.Index(l.widgets, w)
}

// AddArtist appends a row just above the add control. A nil initial value
// uses the default {off, "None", 1.0}.
func (l *ArtistList) AddArtist(initial *ArtistValue) *ArtistWidget {
	l.counter++
	w := newArtistWidget(l, fmt.Sprintf("artist_%d", l.counter))
	if initial != nil {
		v := *initial
		if v.Artist == "" {
			v.Artist = NoneArtist
		}
		v.Strength = l.opts.Range.Normalize(v.Strength)
		w.value = v
	}

	l.widgets = slices.Insert(l.widgets, l.renderIndex(l.divider), Widget(w))
	l.artists = append(l.artists, w)

	l.resized()
	l.host.Changed(ChangeEvent{Type: ChangeAdded, Widget: w.name, Index: len(l.artists) - 1, Value: w.value})
	return w
}

// Remove takes w out of both sequences. Positions of the rows after it
// shift by one; nothing else changes.
func (l *ArtistList) Remove(w *ArtistWidget) bool {
	i := l.IndexOf(w)
	if i < 0 {
		return false
	}
	l.artists = slices.Delete(l.artists, i, i+1)
	if ri := l.renderIndex(w); ri >= 0 {
		l.widgets = slices.Delete(l.widgets, ri, ri+1)
	}
	if l.active == Widget(w) {
		l.active = nil
	}
	w.detach()

	l.resized()
	l.host.Changed(ChangeEvent{Type: ChangeRemoved, Widget: w.name, Index: i, Value: w.value})
	return true
}

// CanMoveUp reports whether w has a row above it.
func (l *ArtistList) CanMoveUp(w *ArtistWidget) bool {
	return l.IndexOf(w) > 0
}

// CanMoveDown reports whether w has a row below it.
func (l *ArtistList) CanMoveDown(w *ArtistWidget) bool {
	i := l.IndexOf(w)
	return i >= 0 && i < len(l.artists)-1
}

// MoveUp swaps w with the row above. It is a no-op for the first row.
func (l *ArtistList) MoveUp(w *ArtistWidget) bool {
	if !l.CanMoveUp(w) {
		return false
	}
	i := l.IndexOf(w)
	l.swap(i, i-1)
	return true
}

// MoveDown swaps w with the row below. It is a no-op for the last row.
func (l *ArtistList) MoveDown(w *ArtistWidget) bool {
	if !l.CanMoveDown(w) {
		return false
	}
	i := l.IndexOf(w)
	l.swap(i, i+1)
	return true
}

// swap exchanges two artists in value order and in render order together.
func (l *ArtistList) swap(i, j int) {
	a, b := l.artists[i], l.artists[j]
	ri, rj := l.renderIndex(a), l.renderIndex(b)
	l.artists[i], l.artists[j] = b, a
	l.widgets[ri], l.widgets[rj] = b, a

	l.host.MarkDirty()
	l.host.Changed(ChangeEvent{Type: ChangeMoved, Widget: a.name, Index: j, From: i, Value: a.value})
}

// EnabledState reports whether all, none or some rows are on. An empty
// list is AllOff.
func (l *ArtistList) EnabledState() EnabledState {
	on := 0
	for _, w := range l.artists {
		if w.value.On {
			on++
		}
	}
	switch {
	case on == 0:
		return AllOff
	case on == len(l.artists):
		return AllOn
	default:
		return Mixed
	}
}

// ToggleAll turns every row off when all are on, otherwise turns every row
// on.
func (l *ArtistList) ToggleAll() {
	target := l.EnabledState() != AllOn
	for _, w := range l.artists {
		w.value.On = target
	}
	l.host.MarkDirty()
	l.host.Changed(ChangeEvent{Type: ChangeToggleAll, Index: -1, Value: ArtistValue{On: target}})
}

// Clear removes every artist row. Structural rows stay. The identity
// counter is not reset so names are never reused.
func (l *ArtistList) Clear() {
	if len(l.artists) == 0 {
		return
	}
	for _, w := range l.artists {
		w.detach()
	}
	l.widgets = slices.DeleteFunc(l.widgets, func(w Widget) bool {
		_, ok := w.(*ArtistWidget)
		return ok
	})
	l.artists = nil
	l.active = nil

	l.resized()
	l.host.Changed(ChangeEvent{Type: ChangeReset, Index: -1})
}

// MinHeight is the content height of every row.
func (l *ArtistList) MinHeight() float64 {
	h := 0.0
	for _, w := range l.widgets {
		h += w.Height()
	}
	return h
}

func (l *ArtistList) resized() {
	l.host.FitHeight(l.MinHeight())
	l.host.MarkDirty()
}

// Draw lays out and paints every row top-down from y and returns the total
// height used.
func (l *ArtistList) Draw(c Canvas, width, y float64) float64 {
	top := y
	for _, w := range l.widgets {
		y += w.Draw(c, width, y, w.Height())
	}
	return y - top
}

// HandlePointer routes one node-local event. The widget that consumes a
// press receives every event until the pointer is released.
func (l *ArtistList) HandlePointer(ev PointerEvent) bool {
	if l.active != nil {
		w := l.active
		consumed := w.HandlePointer(ev)
		if ev.Kind == PointerUp || ev.Kind == PointerLeave {
			l.active = nil
			if ev.Kind == PointerLeave {
				l.broadcast(ev, w)
			}
		}
		return consumed
	}

	switch ev.Kind {
	case PointerDown:
		for _, w := range l.widgets {
			if w.HandlePointer(ev) {
				if l.renderIndex(w) >= 0 {
					l.active = w
				}
				return true
			}
		}
		return false
	case PointerMove:
		consumed := false
		for _, w := range l.widgets {
			if w.HandlePointer(ev) {
				consumed = true
			}
		}
		return consumed
	default:
		l.broadcast(ev, nil)
		return false
	}
}

func (l *ArtistList) broadcast(ev PointerEvent, skip Widget) {
	for _, w := range slices.Clone(l.widgets) {
		if w != skip {
			w.HandlePointer(ev)
		}
	}
}

// nopHost is used by lists created without a node.
type nopHost struct{}

func (nopHost) MarkDirty()                       {}
func (nopHost) FitHeight(float64)                {}
func (nopHost) OpenMenu(*Menu, float64, float64) {}
func (nopHost) Changed(ChangeEvent)              {}

func (nopHost) Prompt(label, _ string, _ func(string)) {
	logger().Debug("prompt requested without a host", slog.String("label", label))
}
