package artistloader

import (
	"errors"
	"image"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
)

type fakeLoader struct {
	err   error
	calls map[string]int
}

func (l *fakeLoader) Load(e Entry) (image.Image, error) {
	if l.calls == nil {
		l.calls = map[string]int{}
	}
	l.calls[e.Name]++
	if l.err != nil {
		return nil, l.err
	}
	return image.NewNRGBA(image.Rect(0, 0, 40, 30)), nil
}

func newTestPreview(loader ImageLoader) *Preview {
	return NewPreview(NewStaticCatalog(testEntries), loader)
}

func TestPreview_ShowAfterDelay(t *testing.T) {
	p := newTestPreview(nil)
	p.Show("Hayao Miyazaki", 100, 100)
	if p.Visible() || !p.Pending() || p.Target() != "Hayao Miyazaki" {
		t.Fatalf("after Show: visible=%v pending=%v target=%q", p.Visible(), p.Pending(), p.Target())
	}
	p.Update(400 * time.Millisecond)
	if p.Visible() {
		t.Fatal("visible before the delay")
	}
	p.Update(100 * time.Millisecond)
	if !p.Visible() || p.Pending() {
		t.Fatalf("visible=%v pending=%v after the delay", p.Visible(), p.Pending())
	}
	if p.Target() != "Hayao Miyazaki" {
		t.Errorf("Target = %q", p.Target())
	}
}

func TestPreview_UnknownNameIgnored(t *testing.T) {
	p := newTestPreview(nil)
	p.Show("Nobody", 0, 0)
	p.Update(time.Second)
	if p.Visible() || p.Pending() {
		t.Error("unknown name scheduled a card")
	}
}

func TestPreview_ScheduleHide(t *testing.T) {
	p := newTestPreview(nil)
	p.Show("Hayao Miyazaki", 0, 0)
	p.Update(p.ShowDelay)

	p.ScheduleHide()
	p.Update(200 * time.Millisecond)
	if !p.Visible() {
		t.Fatal("hidden before the hide delay")
	}
	p.CancelHide()
	p.Update(time.Second)
	if !p.Visible() {
		t.Fatal("CancelHide did not keep the card")
	}

	p.ScheduleHide()
	p.Show("Hayao Miyazaki", 0, 0)
	p.Update(time.Second)
	if !p.Visible() {
		t.Fatal("Show did not cancel the pending hide")
	}

	p.ScheduleHide()
	p.Update(p.HideDelay)
	if p.Visible() {
		t.Error("still visible after the hide delay")
	}
}

func TestPreview_ScheduleHideDropsPendingShow(t *testing.T) {
	p := newTestPreview(nil)
	p.Show("Hayao Miyazaki", 0, 0)
	p.Update(200 * time.Millisecond)
	p.ScheduleHide()
	p.Update(time.Second)
	if p.Visible() || p.Target() != "" {
		t.Errorf("visible=%v target=%q", p.Visible(), p.Target())
	}
}

func TestPreview_Hide(t *testing.T) {
	p := newTestPreview(nil)
	p.Show("Hayao Miyazaki", 0, 0)
	p.Update(p.ShowDelay)
	p.Show("Greg Rutkowski", 0, 0)
	p.Hide()
	p.Update(time.Second)
	if p.Visible() || p.Pending() {
		t.Error("Hide left something behind")
	}
}

func TestPreview_FadeIn(t *testing.T) {
	p := newTestPreview(nil)
	p.ShowDelay = 0
	p.Show("Hayao Miyazaki", 0, 0)
	if !p.Visible() || p.alpha != 0 {
		t.Fatalf("visible=%v alpha=%v", p.Visible(), p.alpha)
	}
	p.Update(50 * time.Millisecond)
	if p.alpha <= 0 || p.alpha >= 1 {
		t.Errorf("alpha mid-fade = %v", p.alpha)
	}
	p.Update(200 * time.Millisecond)
	if p.alpha != 1 || p.fade != nil {
		t.Errorf("alpha after fade = %v", p.alpha)
	}
}

func TestPreview_LoaderCached(t *testing.T) {
	l := &fakeLoader{err: errors.New("boom")}
	p := newTestPreview(l)
	p.ShowDelay = 0

	p.Show("Hayao Miyazaki", 0, 0)
	p.Hide()
	p.Show("Hayao Miyazaki", 0, 0)
	if n := l.calls["Hayao Miyazaki"]; n != 1 {
		t.Errorf("loader calls = %d, want 1", n)
	}

	p.Hide()
	p.Invalidate()
	p.Show("Hayao Miyazaki", 0, 0)
	if n := l.calls["Hayao Miyazaki"]; n != 2 {
		t.Errorf("loader calls after Invalidate = %d, want 2", n)
	}
}

func TestPreview_DrawTextOnly(t *testing.T) {
	p := newTestPreview(&fakeLoader{err: ErrNoImage})
	p.ShowDelay = 0
	p.Show("Greg Rutkowski", 790, 100)
	p.Update(time.Second)

	c := newRecordCanvas()
	p.Draw(c, testScreen)
	if c.count("image") != 0 {
		t.Error("drew an image for an entry without one")
	}
	if _, ok := c.text("Greg Rutkowski"); !ok {
		t.Error("name not drawn")
	}
	if _, ok := c.text("greg rutkowski, artstation"); !ok {
		t.Error("keywords not drawn")
	}
	box := c.ops[0].rect
	if box.X < 0 || box.X+box.Width > testScreen.Width {
		t.Errorf("card %+v leaves the screen", box)
	}
	if box.X+box.Width > 790 {
		t.Errorf("card %+v should flip to the left of the pointer", box)
	}
}

func TestPreview_DrawHidden(t *testing.T) {
	p := newTestPreview(nil)
	c := newRecordCanvas()
	p.Draw(c, testScreen)
	if len(c.ops) != 0 {
		t.Errorf("hidden card drew %d ops", len(c.ops))
	}
}

func TestDirImageLoader(t *testing.T) {
	dir := t.TempDir()
	if err := imaging.Save(image.NewNRGBA(image.Rect(0, 0, 400, 300)), filepath.Join(dir, "big.png")); err != nil {
		t.Fatal(err)
	}
	if err := imaging.Save(image.NewNRGBA(image.Rect(0, 0, 50, 80)), filepath.Join(dir, "small.png")); err != nil {
		t.Fatal(err)
	}
	l := DirImageLoader{Dir: dir, MaxSize: 200}

	tests := []struct {
		image string
		w, h  int
	}{
		{"big.png", 200, 150},
		{"small.png", 50, 80},
	}
	for _, tt := range tests {
		img, err := l.Load(Entry{Name: tt.image, Image: tt.image})
		if err != nil {
			t.Fatalf("Load(%s): %v", tt.image, err)
		}
		if b := img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
			t.Errorf("Load(%s) size = %dx%d, want %dx%d", tt.image, b.Dx(), b.Dy(), tt.w, tt.h)
		}
	}

	if _, err := l.Load(Entry{Name: "x"}); !errors.Is(err, ErrNoImage) {
		t.Errorf("no image: err = %v, want ErrNoImage", err)
	}
	if _, err := l.Load(Entry{Name: "x", Image: "missing.png"}); err == nil {
		t.Error("missing file: no error")
	}
}
