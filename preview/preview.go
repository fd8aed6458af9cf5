// Package preview draws small images on a terminal.
package preview

import (
	"fmt"
	"image"
	ic "image/color"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

type Mode int

const (
	ModeNone Mode = iota
	// Mode24bit paints cell backgrounds with true color escapes.
	Mode24bit
	// Mode256 lets gookit/color pick the closest supported color.
	Mode256
	// ModeRaster sends the image inline (kitty, iTerm/WezTerm or sixel).
	ModeRaster
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return ModeNone, nil
	case "24bit":
		return Mode24bit, nil
	case "256":
		return Mode256, nil
	case "raster":
		return ModeRaster, nil
	}
	return ModeNone, errors.Errorf("unknown preview mode %q", s)
}

// Print draws img on w, shrunk to at most maxWidth cells wide.
func Print(w io.Writer, img image.Image, mode Mode, maxWidth int) error {
	if mode == ModeNone {
		return nil
	}
	img = Shrink(img, maxWidth)
	if mode == ModeRaster {
		return printRaster(w, img)
	}

	var sb strings.Builder
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sb.WriteString(cell(img.At(x, y), mode))
		}
		sb.WriteString("\x1b[0m\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func cell(col ic.Color, mode Mode) string {
	c := ic.NRGBAModel.Convert(col).(ic.NRGBA)
	if c.A == 0 {
		return "\x1b[0m  "
	}
	if mode == Mode24bit {
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  ", c.R, c.G, c.B)
	}
	return color.RGB(c.R, c.G, c.B, true).Sprintf("  ")
}

// Shrink scales img down with nearest neighbour sampling so pixel art stays
// crisp. Images narrower than maxWidth are returned unchanged.
func Shrink(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	return resize.Thumbnail(uint(maxWidth), uint(b.Dy()), img, resize.NearestNeighbor)
}
