package artistloader

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	defaultFontSize = 12
	ellipsis        = "..."
)

// Font is the interface for text measurement.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	size float64
	lh   float64
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("artistloader: parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFont{face: face, size: size, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

var (
	defaultFontOnce sync.Once
	defaultFont     *TTFFont
)

// DefaultFont returns the Go Regular face at the UI size. It panics only if
// the embedded font data is corrupt.
func DefaultFont() *TTFFont {
	defaultFontOnce.Do(func() {
		f, err := LoadTTFFont(goregular.TTF, defaultFontSize)
		if err != nil {
			panic(err)
		}
		defaultFont = f
	})
	return defaultFont
}

// fitString truncates s with a trailing ellipsis so it measures no wider
// than maxWidth. At least three runes are kept before the ellipsis.
func fitString(f Font, s string, maxWidth float64) string {
	if w, _ := f.MeasureString(s); w <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 3 {
		if w, _ := f.MeasureString(string(runes) + ellipsis); w <= maxWidth {
			break
		}
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ellipsis
}
