package tonesplit

import (
	"image"
	"image/color"

	"github.com/disintegration/gift"
)

// FillMode selects what replaces a matching pixel in a layer.
type FillMode int

const (
	// ModeDelta fills with the tone delta, opaque.
	ModeDelta FillMode = iota
	// ModeGrey fills with the greyscale of the source pixel, alpha kept.
	ModeGrey
)

func (m FillMode) String() string {
	switch m {
	case ModeGrey:
		return "grey"
	default:
		return "delta"
	}
}

// Layer is an RGBA image with signed channels. Values outside 0..255 are
// kept as is; they are only clamped when the layer is read through At.
type Layer struct {
	// Pix holds R, G, B, A interleaved, len = 4*W*H.
	Pix  []int16
	Rect image.Rectangle
}

func NewLayer(r image.Rectangle) *Layer {
	return &Layer{
		Pix:  make([]int16, 4*r.Dx()*r.Dy()),
		Rect: r,
	}
}

func (l *Layer) offset(x, y int) int {
	return ((y-l.Rect.Min.Y)*l.Rect.Dx() + (x - l.Rect.Min.X)) * 4
}

// Set stores the raw channel values of (x, y).
func (l *Layer) Set(x, y int, d Delta, a uint8) {
	if !(image.Point{x, y}.In(l.Rect)) {
		return
	}
	off := l.offset(x, y)
	l.Pix[off] = int16(d.R)
	l.Pix[off+1] = int16(d.G)
	l.Pix[off+2] = int16(d.B)
	l.Pix[off+3] = int16(a)
}

// ValueAt returns the unclamped channels and the alpha of (x, y).
func (l *Layer) ValueAt(x, y int) (Delta, uint8) {
	if !(image.Point{x, y}.In(l.Rect)) {
		return Delta{}, 0
	}
	off := l.offset(x, y)
	return Delta{R: int(l.Pix[off]), G: int(l.Pix[off+1]), B: int(l.Pix[off+2])}, uint8(l.Pix[off+3])
}

func (l *Layer) ColorModel() color.Model { return color.NRGBAModel }

func (l *Layer) Bounds() image.Rectangle { return l.Rect }

func (l *Layer) At(x, y int) color.Color {
	return l.NRGBAAt(x, y)
}

func (l *Layer) NRGBAAt(x, y int) color.NRGBA {
	d, a := l.ValueAt(x, y)
	return color.NRGBA{R: clamp8(d.R), G: clamp8(d.G), B: clamp8(d.B), A: a}
}

func clamp8(v int) uint8 {
	return uint8(max(0, min(255, v)))
}

// Filter builds a layer where every pixel equal to target is replaced and
// every other pixel is fully transparent.
func Filter(src *image.NRGBA, target color.NRGBA, fill Delta, mode FillMode) *Layer {
	if mode == ModeGrey {
		return filterGrey(src, target)
	}
	b := src.Bounds()
	layer := NewLayer(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if src.NRGBAAt(x, y) == target {
				layer.Set(x, y, fill, 255)
			}
		}
	}
	return layer
}

func filterGrey(src *image.NRGBA, target color.NRGBA) *Layer {
	b := src.Bounds()
	isolated := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if src.NRGBAAt(x, y) == target {
				isolated.SetNRGBA(x, y, target)
			}
		}
	}

	g := gift.New(gift.Grayscale())
	grey := image.NewNRGBA(g.Bounds(b))
	g.Draw(grey, isolated)

	// gift output starts at the origin.
	layer := NewLayer(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := grey.NRGBAAt(x-b.Min.X, y-b.Min.Y)
			if c.A == 0 {
				continue
			}
			layer.Set(x, y, Delta{R: int(c.R), G: int(c.G), B: int(c.B)}, c.A)
		}
	}
	return layer
}
