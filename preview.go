package artistloader

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	defaultPreviewShowDelay = 500 * time.Millisecond
	defaultPreviewHideDelay = 300 * time.Millisecond
	defaultPreviewMaxSize   = 200
	previewFadeDuration     = 0.15 // seconds
	previewOffset           = 15.0
	previewPadding          = 6.0
)

// ErrNoImage is returned by loaders for entries without an image path.
var ErrNoImage = errors.New("artistloader: entry has no image")

// PreviewService shows an artist preview near a screen point. Show and
// ScheduleHide are deferred; Hide is immediate.
type PreviewService interface {
	Show(name string, x, y float64)
	ScheduleHide()
	CancelHide()
	Hide()
}

// ImageLoader fetches the preview image for a catalog entry.
type ImageLoader interface {
	Load(e Entry) (image.Image, error)
}

// DirImageLoader opens entry images relative to Dir and fits them inside
// MaxSize×MaxSize.
type DirImageLoader struct {
	Dir     string
	MaxSize int
}

// Load decodes and downsizes e's image.
func (l DirImageLoader) Load(e Entry) (image.Image, error) {
	if e.Image == "" {
		return nil, ErrNoImage
	}
	path := e.Image
	if !filepath.IsAbs(path) && l.Dir != "" {
		path = filepath.Join(l.Dir, path)
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("artistloader: open preview %q: %w", e.Name, err)
	}
	size := l.MaxSize
	if size <= 0 {
		size = defaultPreviewMaxSize
	}
	b := img.Bounds()
	if b.Dx() <= size && b.Dy() <= size {
		return img, nil
	}
	return imaging.Fit(img, size, size, imaging.Lanczos), nil
}

// previewImage is a cached load result. A nil img records a failed load.
type previewImage struct {
	img image.Image
	tex *ebiten.Image
}

// Preview is the on-canvas preview card. All methods run on the game loop;
// timing advances through Update.
type Preview struct {
	ShowDelay time.Duration
	HideDelay time.Duration

	catalog *Catalog
	loader  ImageLoader
	cache   map[string]*previewImage

	showTimer deferred
	hideTimer deferred

	pending string
	visible bool
	entry   Entry
	x, y    float64
	fade    *gween.Tween
	alpha   float64
}

// NewPreview creates a preview card reading entries from catalog. loader
// may be nil for text-only cards.
func NewPreview(catalog *Catalog, loader ImageLoader) *Preview {
	return &Preview{
		ShowDelay: defaultPreviewShowDelay,
		HideDelay: defaultPreviewHideDelay,
		catalog:   catalog,
		loader:    loader,
		cache:     make(map[string]*previewImage),
	}
}

// Show schedules the card for name at (x, y). Unknown names are ignored.
// Showing cancels a pending hide.
func (p *Preview) Show(name string, x, y float64) {
	p.hideTimer.cancel()
	if p.visible && p.entry.Name == name {
		return
	}
	entry, ok := p.catalog.Lookup(name)
	if !ok {
		logger().Debug("no preview for artist", slog.String("artist", name))
		return
	}
	p.pending = name
	p.showTimer.schedule(p.ShowDelay, func() { p.open(entry, x, y) })
}

// ScheduleHide hides the card after HideDelay unless Show or CancelHide
// intervenes. A show still waiting is dropped.
func (p *Preview) ScheduleHide() {
	p.showTimer.cancel()
	p.pending = ""
	if p.visible {
		p.hideTimer.schedule(p.HideDelay, p.Hide)
	}
}

// CancelHide keeps a visible card open.
func (p *Preview) CancelHide() {
	p.hideTimer.cancel()
}

// Hide closes the card now and drops anything pending.
func (p *Preview) Hide() {
	p.showTimer.cancel()
	p.hideTimer.cancel()
	p.pending = ""
	p.visible = false
	p.fade = nil
}

// Visible reports whether the card is showing.
func (p *Preview) Visible() bool { return p.visible }

// Target returns the name shown, or the name waiting to be shown.
func (p *Preview) Target() string {
	if p.visible {
		return p.entry.Name
	}
	return p.pending
}

// Pending reports whether a show or hide is scheduled.
func (p *Preview) Pending() bool {
	return p.showTimer.pending() || p.hideTimer.pending()
}

// Invalidate forgets cached images, e.g. after a catalog refresh.
func (p *Preview) Invalidate() {
	for _, c := range p.cache {
		if c.tex != nil {
			c.tex.Deallocate()
		}
	}
	clear(p.cache)
}

func (p *Preview) open(e Entry, x, y float64) {
	p.pending = ""
	p.visible = true
	p.entry = e
	p.x, p.y = x, y
	p.alpha = 0
	p.fade = gween.New(0, 1, previewFadeDuration, ease.OutQuad)
	p.load(e)
}

func (p *Preview) load(e Entry) *previewImage {
	if c, ok := p.cache[e.Name]; ok {
		return c
	}
	c := &previewImage{}
	if p.loader != nil {
		img, err := p.loader.Load(e)
		switch {
		case errors.Is(err, ErrNoImage):
		case err != nil:
			logger().Warn("preview image unavailable", slog.String("artist", e.Name), slog.Any("error", err))
		default:
			c.img = img
		}
	}
	p.cache[e.Name] = c
	return c
}

// Update advances the deferred show/hide and the fade.
func (p *Preview) Update(dt time.Duration) {
	p.showTimer.tick(dt)
	p.hideTimer.tick(dt)
	if p.fade != nil {
		a, done := p.fade.Update(float32(dt.Seconds()))
		p.alpha = float64(a)
		if done {
			p.fade = nil
		}
	}
}

// Draw paints the card in screen space, kept inside screen.
func (p *Preview) Draw(c Canvas, screen Rect) {
	if !p.visible {
		return
	}
	c = faded(c, p.alpha)
	font := c.Font()
	lh := font.LineHeight()

	var tex *ebiten.Image
	imgW, imgH := 0.0, 0.0
	if pi := p.cache[p.entry.Name]; pi != nil && pi.img != nil {
		if pi.tex == nil {
			pi.tex = ebiten.NewImageFromImage(pi.img)
		}
		tex = pi.tex
		b := pi.img.Bounds()
		imgW, imgH = float64(b.Dx()), float64(b.Dy())
	}

	nameW, _ := font.MeasureString(p.entry.Name)
	kw := fitString(font, p.entry.Keywords, defaultPreviewMaxSize)
	kwW, _ := font.MeasureString(kw)
	w := max(imgW, nameW, kwW) + previewPadding*2
	h := imgH + lh*2 + previewPadding*3
	if tex == nil {
		h = lh*2 + previewPadding*2
	}

	x, y := p.x+previewOffset, p.y
	if x+w > screen.X+screen.Width {
		x = p.x - previewOffset - w
	}
	if y+h > screen.Y+screen.Height {
		y = screen.Y + screen.Height - h
	}
	x, y = max(x, screen.X), max(y, screen.Y)

	box := Rect{X: x, Y: y, Width: w, Height: h}
	c.FillRect(box, colorMenuBg)
	c.StrokeRect(box, 1, colorMenuRim)
	ty := y + previewPadding
	if tex != nil {
		c.DrawImage(tex, x+(w-imgW)/2, ty, 1)
		ty += imgH + previewPadding
	}
	c.DrawText(p.entry.Name, x+previewPadding, ty+lh/2, TextAlignLeft, colorText)
	if kw != "" {
		c.DrawText(kw, x+previewPadding, ty+lh*1.5, TextAlignLeft, colorTextDim)
	}
}

// nopPreview is used by lists created without a preview.
type nopPreview struct{}

func (nopPreview) Show(string, float64, float64) {}
func (nopPreview) ScheduleHide()                 {}
func (nopPreview) CancelHide()                   {}
func (nopPreview) Hide()                         {}
