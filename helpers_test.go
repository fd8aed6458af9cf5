package tonesplit

import (
	"image"
	"image/color"
)

var (
	transparent = color.NRGBA{}
	dark        = color.NRGBA{R: 20, G: 30, B: 40, A: 255}
	mid         = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	light       = color.NRGBA{R: 200, G: 180, B: 160, A: 255}
)

// sprite builds an image from rows of palette indices.
func sprite(palette []color.NRGBA, rows ...string) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, ch := range row {
			img.SetNRGBA(x, y, palette[ch-'0'])
		}
	}
	return img
}
