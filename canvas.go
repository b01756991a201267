package artistloader

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas is the immediate-mode drawing context widgets paint into. All
// coordinates are in the caller's space; implementations map them to pixels.
type Canvas interface {
	FillRect(r Rect, c Color)
	StrokeRect(r Rect, width float64, c Color)
	FillCircle(cx, cy, radius float64, c Color)
	StrokeCircle(cx, cy, radius, width float64, c Color)
	// DrawText draws a single line vertically centered on midY.
	DrawText(s string, x, midY float64, align TextAlign, c Color)
	// DrawImage draws img with its top-left corner at (x, y).
	DrawImage(img *ebiten.Image, x, y, alpha float64)
	Font() Font
}

// translated returns a Canvas that offsets every coordinate by (dx, dy).
func translated(c Canvas, dx, dy float64) Canvas {
	if dx == 0 && dy == 0 {
		return c
	}
	if t, ok := c.(*offsetCanvas); ok {
		return &offsetCanvas{inner: t.inner, dx: t.dx + dx, dy: t.dy + dy}
	}
	return &offsetCanvas{inner: c, dx: dx, dy: dy}
}

type offsetCanvas struct {
	inner  Canvas
	dx, dy float64
}

func (o *offsetCanvas) FillRect(r Rect, c Color) { o.inner.FillRect(r.Offset(o.dx, o.dy), c) }
func (o *offsetCanvas) StrokeRect(r Rect, w float64, c Color) {
	o.inner.StrokeRect(r.Offset(o.dx, o.dy), w, c)
}
func (o *offsetCanvas) FillCircle(cx, cy, radius float64, c Color) {
	o.inner.FillCircle(cx+o.dx, cy+o.dy, radius, c)
}
func (o *offsetCanvas) StrokeCircle(cx, cy, radius, w float64, c Color) {
	o.inner.StrokeCircle(cx+o.dx, cy+o.dy, radius, w, c)
}
func (o *offsetCanvas) DrawText(s string, x, midY float64, align TextAlign, c Color) {
	o.inner.DrawText(s, x+o.dx, midY+o.dy, align, c)
}
func (o *offsetCanvas) DrawImage(img *ebiten.Image, x, y, alpha float64) {
	o.inner.DrawImage(img, x+o.dx, y+o.dy, alpha)
}
func (o *offsetCanvas) Font() Font { return o.inner.Font() }

// faded returns a Canvas that multiplies the alpha of everything drawn.
func faded(c Canvas, alpha float64) Canvas {
	if alpha >= 1 {
		return c
	}
	return &alphaCanvas{inner: c, alpha: alpha}
}

type alphaCanvas struct {
	inner Canvas
	alpha float64
}

func (a *alphaCanvas) FillRect(r Rect, c Color) { a.inner.FillRect(r, c.WithAlpha(a.alpha)) }
func (a *alphaCanvas) StrokeRect(r Rect, w float64, c Color) {
	a.inner.StrokeRect(r, w, c.WithAlpha(a.alpha))
}
func (a *alphaCanvas) FillCircle(cx, cy, radius float64, c Color) {
	a.inner.FillCircle(cx, cy, radius, c.WithAlpha(a.alpha))
}
func (a *alphaCanvas) StrokeCircle(cx, cy, radius, w float64, c Color) {
	a.inner.StrokeCircle(cx, cy, radius, w, c.WithAlpha(a.alpha))
}
func (a *alphaCanvas) DrawText(s string, x, midY float64, align TextAlign, c Color) {
	a.inner.DrawText(s, x, midY, align, c.WithAlpha(a.alpha))
}
func (a *alphaCanvas) DrawImage(img *ebiten.Image, x, y, alpha float64) {
	a.inner.DrawImage(img, x, y, alpha*a.alpha)
}
func (a *alphaCanvas) Font() Font { return a.inner.Font() }

// ebitenCanvas draws onto an ebiten image through a uniform scale and
// translation (the camera's view of the graph canvas).
type ebitenCanvas struct {
	dst   *ebiten.Image
	font  *TTFFont
	scale float64
	tx    float64
	ty    float64
}

// NewEbitenCanvas wraps dst. font may be nil to use DefaultFont.
func NewEbitenCanvas(dst *ebiten.Image, font *TTFFont) Canvas {
	return newEbitenCanvas(dst, font, 1, 0, 0)
}

func newEbitenCanvas(dst *ebiten.Image, font *TTFFont, scale, tx, ty float64) *ebitenCanvas {
	if font == nil {
		font = DefaultFont()
	}
	if scale <= 0 {
		scale = 1
	}
	return &ebitenCanvas{dst: dst, font: font, scale: scale, tx: tx, ty: ty}
}

func (e *ebitenCanvas) pt(x, y float64) (float32, float32) {
	return float32(x*e.scale + e.tx), float32(y*e.scale + e.ty)
}

func (e *ebitenCanvas) FillRect(r Rect, c Color) {
	x, y := e.pt(r.X, r.Y)
	vector.DrawFilledRect(e.dst, x, y, float32(r.Width*e.scale), float32(r.Height*e.scale), c.toRGBA(), true)
}

func (e *ebitenCanvas) StrokeRect(r Rect, w float64, c Color) {
	x, y := e.pt(r.X, r.Y)
	vector.StrokeRect(e.dst, x, y, float32(r.Width*e.scale), float32(r.Height*e.scale), float32(w*e.scale), c.toRGBA(), true)
}

func (e *ebitenCanvas) FillCircle(cx, cy, radius float64, c Color) {
	x, y := e.pt(cx, cy)
	vector.DrawFilledCircle(e.dst, x, y, float32(radius*e.scale), c.toRGBA(), true)
}

func (e *ebitenCanvas) StrokeCircle(cx, cy, radius, w float64, c Color) {
	x, y := e.pt(cx, cy)
	vector.StrokeCircle(e.dst, x, y, float32(radius*e.scale), float32(w*e.scale), c.toRGBA(), true)
}

func (e *ebitenCanvas) DrawText(s string, x, midY float64, align TextAlign, c Color) {
	if s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Scale(e.scale, e.scale)
	px, py := e.pt(x, midY)
	op.GeoM.Translate(float64(px), float64(py))
	op.ColorScale.ScaleWithColor(c.toRGBA())
	op.LineSpacing = e.font.lh
	switch align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
	default:
		op.PrimaryAlign = text.AlignStart
	}
	op.SecondaryAlign = text.AlignCenter
	text.Draw(e.dst, s, e.font.face, op)
}

func (e *ebitenCanvas) DrawImage(img *ebiten.Image, x, y, alpha float64) {
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(e.scale, e.scale)
	px, py := e.pt(x, y)
	op.GeoM.Translate(float64(px), float64(py))
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	e.dst.DrawImage(img, op)
}

func (e *ebitenCanvas) Font() Font { return e.font }
