package tonesplit

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/setanarut/tonesplit/utils"
)

// ErrUnsupportedPalette is returned when an image does not carry exactly 2 or 3 colors.
var ErrUnsupportedPalette = errors.New("unsupported palette size")

// Delta is a signed channel-wise difference between two colors. It is never clamped.
type Delta struct {
	R, G, B int
}

// Sub returns a - b per channel, ignoring alpha.
func Sub(a, b color.NRGBA) Delta {
	return Delta{
		R: int(a.R) - int(b.R),
		G: int(a.G) - int(b.G),
		B: int(a.B) - int(b.B),
	}
}

func (d Delta) String() string {
	return fmt.Sprintf("(%d, %d, %d)", d.R, d.G, d.B)
}

// Tones is the classification of a 2 or 3 color palette.
type Tones struct {
	// Palette holds the unique colors, darkest first.
	Palette []color.NRGBA

	Lightest     color.NRGBA
	LightestBase color.NRGBA
	Darkest      color.NRGBA
	DarkestBase  color.NRGBA

	// LightestDelta is Lightest - LightestBase.
	LightestDelta Delta
	// DarkestDelta is DarkestBase - Darkest.
	DarkestDelta Delta
}

// UniqueColors returns the distinct colors of img in scan order. Fully
// transparent pixels are skipped unless keepTransparent is set.
func UniqueColors(img *image.NRGBA, keepTransparent bool) []color.NRGBA {
	b := img.Bounds()
	seen := make(map[color.NRGBA]struct{})
	var out []color.NRGBA
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if c.A == 0 && !keepTransparent {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// Classify ranks the unique colors of img and picks the lightest and darkest
// tones together with the base each one is measured against.
//
// With two colors each extreme uses the other as base. With three the
// middle color is the base for both.
func Classify(img *image.NRGBA, keepTransparent bool) (Tones, error) {
	palette := UniqueColors(img, keepTransparent)
	utils.SortByAverage(palette)

	t := Tones{Palette: palette}
	switch len(palette) {
	case 2:
		t.Lightest, t.LightestBase = palette[1], palette[0]
		t.Darkest, t.DarkestBase = palette[0], palette[1]
	case 3:
		t.Lightest, t.LightestBase = palette[2], palette[1]
		t.Darkest, t.DarkestBase = palette[0], palette[1]
	default:
		return t, errors.Wrapf(ErrUnsupportedPalette, "found %d colors, want 2 or 3", len(palette))
	}
	t.LightestDelta = Sub(t.Lightest, t.LightestBase)
	t.DarkestDelta = Sub(t.DarkestBase, t.Darkest)
	return t, nil
}

func formatColor(c color.NRGBA) string {
	return fmt.Sprintf("(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}

// WriteReport prints the detected colors and deltas, one field per line.
func (t Tones) WriteReport(w io.Writer) error {
	names := make([]string, len(t.Palette))
	for i, c := range t.Palette {
		names[i] = formatColor(c)
	}
	_, err := fmt.Fprintf(w,
		"unique colors: [%s]\n"+
			"lightest color: %s\n"+
			"lightest base color: %s\n"+
			"lightest color difference: %s\n"+
			"darkest color: %s\n"+
			"darkest base color: %s\n"+
			"darkest color difference: %s\n",
		strings.Join(names, ", "),
		formatColor(t.Lightest),
		formatColor(t.LightestBase),
		t.LightestDelta,
		formatColor(t.Darkest),
		formatColor(t.DarkestBase),
		t.DarkestDelta,
	)
	return err
}
